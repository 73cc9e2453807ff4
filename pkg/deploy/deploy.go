package deploy

import (
	"path/filepath"
	"time"

	"github.com/arthur-debert/dotdeploy/pkg/config"
	"github.com/arthur-debert/dotdeploy/pkg/errors"
	"github.com/arthur-debert/dotdeploy/pkg/executor"
	"github.com/arthur-debert/dotdeploy/pkg/filesystem"
	"github.com/arthur-debert/dotdeploy/pkg/logging"
	"github.com/arthur-debert/dotdeploy/pkg/paths"
	"github.com/arthur-debert/dotdeploy/pkg/plan"
	"github.com/arthur-debert/dotdeploy/pkg/profile"
	"github.com/arthur-debert/dotdeploy/pkg/report"
	"github.com/arthur-debert/dotdeploy/pkg/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Options defines the options of a deployment run
type Options struct {
	// ProfilePath is the profile file to deploy
	ProfilePath string

	// Settings are the tool settings; defaults when nil
	Settings *config.Settings

	// Policy, when set, overrides every group and profile policy
	Policy types.Policy

	DryRun     bool
	Strict     bool
	CreateDirs bool

	// RunID identifies the run in logs and reports; generated when empty
	RunID string

	FS       types.FS
	Resolver *paths.Resolver
	Now      func() time.Time
	Logger   zerolog.Logger
}

// Prepared is a loaded profile with its plan
type Prepared struct {
	RunID   string
	Profile *profile.Profile
	Plan    *types.Plan
}

// Result is the outcome of Apply
type Result struct {
	Prepared

	Outcomes []types.Outcome
	Summary  report.Summary
	Strict   bool
	Duration time.Duration
}

// ExitCode returns the process exit status for the run
func (r *Result) ExitCode() int {
	return r.Summary.ExitCode(r.Strict)
}

// Prepare loads, validates and plans a profile without touching any
// destination
func Prepare(opts Options) (*Prepared, error) {
	return prepare(withDefaults(opts))
}

func prepare(opts Options) (*Prepared, error) {
	logger := logging.Component(opts.Logger, "deploy")
	defer logging.LogOperationStart(logger, "prepare")()

	p, err := loadProfile(opts.FS, opts.ProfilePath)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Str("profile", p.Path).
		Int("groups", len(p.Groups)).
		Int("entries", p.EntryCount()).
		Msg("Profile loaded")

	pl, err := plan.Build(p, plan.Options{
		FS:       opts.FS,
		Resolver: opts.Resolver,
		Logger:   opts.Logger,
	})
	if err != nil {
		logger.Debug().Err(err).Msg("Plan rejected")
		return nil, err
	}
	logger.Info().Int("actions", pl.Len()).Msg("Plan built")

	return &Prepared{RunID: opts.RunID, Profile: p, Plan: pl}, nil
}

// Apply prepares the profile, executes its plan and summarizes the
// outcomes. Plan-time errors are returned before any mutation; action
// failures are reported through the Result.
func Apply(opts Options) (*Result, error) {
	opts = withDefaults(opts)
	start := time.Now()

	prepared, err := prepare(opts)
	if err != nil {
		return nil, err
	}

	s := opts.Settings
	policy := s.Policy()
	if opts.Policy.IsSet() {
		policy = opts.Policy
	}

	exec := executor.New(opts.FS, executor.Options{
		Policy:           policy,
		OverridePolicy:   opts.Policy.IsSet(),
		DryRun:           opts.DryRun,
		CreateDirs:       opts.CreateDirs,
		BackupSuffix:     s.Backup.Suffix,
		BackupTimeFormat: s.Backup.TimeFormat,
		Now:              opts.Now,
		Logger:           opts.Logger,
	})

	outcomes := exec.Execute(prepared.Plan)
	summary := report.Summarize(outcomes)

	result := &Result{
		Prepared: *prepared,
		Outcomes: outcomes,
		Summary:  summary,
		Strict:   opts.Strict,
		Duration: time.Since(start),
	}

	logger := logging.Component(opts.Logger, "deploy")
	logger.Info().
		Bool("dryRun", opts.DryRun).
		Int("applied", summary.Count(types.StatusApplied)).
		Int("unchanged", summary.Count(types.StatusSkippedUnchanged)).
		Int("conflicts", summary.Count(types.StatusSkippedConflict)).
		Int("failed", summary.Count(types.StatusFailed)).
		Dur("duration", result.Duration).
		Msg("Deployment finished")

	return result, nil
}

func withDefaults(opts Options) Options {
	if opts.Settings == nil {
		opts.Settings = config.Defaults()
	}
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	opts.Logger = opts.Logger.With().Str("run", opts.RunID).Logger()
	return opts
}

// loadProfile reads the profile through fsys so in-memory filesystems work
func loadProfile(fsys types.FS, path string) (*profile.Profile, error) {
	if path == "" {
		return nil, errors.New(errors.ErrInvalidInput, "no profile given")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid profile path %s", path)
	}

	data, err := fsys.ReadFile(abs)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read profile %s", path).
			WithDetail(errors.DetailPath, abs)
	}

	p, err := profile.Parse(data)
	if err != nil {
		return nil, err
	}
	p.Path = abs
	return p, nil
}
