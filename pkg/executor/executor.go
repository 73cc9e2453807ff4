package executor

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/dotdeploy/pkg/errors"
	"github.com/arthur-debert/dotdeploy/pkg/filesystem"
	"github.com/arthur-debert/dotdeploy/pkg/internal/hashutil"
	"github.com/arthur-debert/dotdeploy/pkg/types"
	"github.com/rs/zerolog"
)

// Backup naming defaults: <dest>.<20060102-150405>.bak
const (
	DefaultBackupSuffix     = "bak"
	DefaultBackupTimeFormat = "20060102-150405"
)

const tempSuffix = ".dotdeploy-tmp"

// Options contains configuration for the executor
type Options struct {
	// Policy is the conflict policy for actions that carry none
	Policy types.Policy

	// OverridePolicy makes Policy win over per-action policies
	OverridePolicy bool

	DryRun bool

	// CreateDirs creates missing parent directories of destinations
	CreateDirs bool

	BackupSuffix     string
	BackupTimeFormat string

	// Now is the clock used for backup names
	Now func() time.Time

	Logger zerolog.Logger
}

// Executor applies actions through a types.FS
type Executor struct {
	fs     types.FS
	opts   Options
	logger zerolog.Logger
}

// run holds state shared by the actions of one Execute call
type run struct {
	stamp    string
	reserved map[string]bool
}

// New creates a new executor instance
func New(fsys types.FS, opts Options) *Executor {
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	if !opts.Policy.IsSet() {
		opts.Policy = types.DefaultPolicy
	}
	opts.BackupSuffix = strings.TrimPrefix(opts.BackupSuffix, ".")
	if opts.BackupSuffix == "" {
		opts.BackupSuffix = DefaultBackupSuffix
	}
	if opts.BackupTimeFormat == "" {
		opts.BackupTimeFormat = DefaultBackupTimeFormat
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Executor{
		fs:     fsys,
		opts:   opts,
		logger: opts.Logger.With().Str("component", "executor").Logger(),
	}
}

// Execute applies every action of the plan in order and returns one
// Outcome per action.
func (e *Executor) Execute(plan *types.Plan) []types.Outcome {
	r := &run{
		stamp:    e.opts.Now().Format(e.opts.BackupTimeFormat),
		reserved: make(map[string]bool),
	}

	actions := plan.Actions()
	outcomes := make([]types.Outcome, 0, len(actions))
	for _, action := range actions {
		outcome := e.executeAction(r, action)
		outcome.DryRun = e.opts.DryRun
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

// PolicyFor returns the conflict policy that applies to an action
func (e *Executor) PolicyFor(a types.Action) types.Policy {
	if e.opts.OverridePolicy {
		return e.opts.Policy
	}
	return a.Policy.Or(e.opts.Policy)
}

func (e *Executor) executeAction(r *run, a types.Action) types.Outcome {
	logger := e.logger.With().
		Str("group", a.Group).
		Str("entry", a.Entry).
		Str("dest", a.Dest).
		Str("kind", string(a.Kind)).
		Logger()
	logger.Debug().Bool("dryRun", e.opts.DryRun).Msg("Executing action")

	if _, err := e.fs.Stat(a.Source); err != nil {
		return e.fail(logger, a, "source is not readable", err)
	}

	info, err := e.fs.Lstat(a.Dest)
	if err != nil {
		if !errors.IsNotExist(err) {
			return e.fail(logger, a, "cannot inspect destination", err)
		}
		if err := e.place(a, false); err != nil {
			return e.fail(logger, a, "cannot create destination", err)
		}
		logger.Info().Msg("Applied")
		return types.Outcome{Action: a, Status: types.StatusApplied, Message: a.Kind.Verb()}
	}

	same, err := e.matches(a, info)
	if err != nil {
		return e.fail(logger, a, "cannot compare destination", err)
	}
	if same {
		logger.Debug().Msg("Destination already up to date")
		return types.Outcome{Action: a, Status: types.StatusSkippedUnchanged, Message: "up to date"}
	}

	policy := e.PolicyFor(a)
	logger.Debug().Str("policy", string(policy)).Msg("Destination conflicts")

	switch policy {
	case types.PolicySkip:
		return types.Outcome{Action: a, Status: types.StatusSkippedConflict, Message: "destination differs, left untouched"}

	case types.PolicyOverwrite:
		if info.IsDir() {
			return e.fail(logger, a, "refusing to overwrite a directory", fs.ErrExist)
		}
		if err := e.place(a, true); err != nil {
			return e.fail(logger, a, "cannot replace destination", err)
		}
		logger.Info().Msg("Overwrote destination")
		return types.Outcome{Action: a, Status: types.StatusApplied, Message: "replaced existing destination"}

	default:
		backup, err := e.backupPath(r, a.Dest)
		if err != nil {
			return e.fail(logger, a, "cannot choose backup path", err)
		}
		if !e.opts.DryRun {
			if err := e.fs.Rename(a.Dest, backup); err != nil {
				return e.fail(logger, a, "cannot back up destination", err)
			}
		}
		if err := e.place(a, false); err != nil {
			if e.opts.DryRun {
				return e.fail(logger, a, "cannot create destination", err)
			}
			// Put the previous destination back so a failed action leaves
			// the path as it found it.
			if rerr := e.fs.Rename(backup, a.Dest); rerr != nil {
				logger.Error().Err(rerr).Str("backup", backup).Msg("Could not restore backup")
				out := e.fail(logger, a, "could not place source, previous destination kept at backup path", err)
				out.BackupPath = backup
				return out
			}
			return e.fail(logger, a, "could not place source, destination restored", err)
		}
		logger.Info().Str("backup", backup).Msg("Backed up destination")
		return types.Outcome{
			Action:     a,
			Status:     types.StatusApplied,
			Message:    a.Kind.Verb() + ", previous destination backed up",
			BackupPath: backup,
		}
	}
}

// matches reports whether the destination already holds what the action
// would place there.
func (e *Executor) matches(a types.Action, info fs.FileInfo) (bool, error) {
	switch a.Kind {
	case types.KindSymlink:
		if info.Mode()&fs.ModeSymlink == 0 {
			return false, nil
		}
		target, err := e.fs.Readlink(a.Dest)
		if err != nil {
			return false, err
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(a.Dest), target)
		}
		return filepath.Clean(target) == filepath.Clean(a.Source), nil

	default:
		if !info.Mode().IsRegular() {
			return false, nil
		}
		return hashutil.SameContent(e.fs, a.Source, a.Dest)
	}
}

// place puts the action's source at its destination. replace means an
// existing destination is swapped out atomically.
func (e *Executor) place(a types.Action, replace bool) error {
	if err := e.ensureParent(a.Dest); err != nil {
		return err
	}
	if e.opts.DryRun {
		return nil
	}

	if a.Kind == types.KindCopy {
		return e.copyFile(a.Source, a.Dest)
	}

	if !replace {
		return e.fs.Symlink(a.Source, a.Dest)
	}
	tmp := a.Dest + tempSuffix
	if err := e.fs.Remove(tmp); err != nil && !errors.IsNotExist(err) {
		return err
	}
	if err := e.fs.Symlink(a.Source, tmp); err != nil {
		return err
	}
	if err := e.fs.Rename(tmp, a.Dest); err != nil {
		_ = e.fs.Remove(tmp)
		return err
	}
	return nil
}

func (e *Executor) ensureParent(dest string) error {
	parent := filepath.Dir(dest)
	info, err := e.fs.Stat(parent)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("parent %s is not a directory", parent)
		}
		return nil
	}
	if !errors.IsNotExist(err) {
		return err
	}
	if !e.opts.CreateDirs {
		return fmt.Errorf("parent directory %s does not exist: %w", parent, err)
	}
	if e.opts.DryRun {
		return nil
	}
	return e.fs.MkdirAll(parent, 0755)
}

// copyFile writes src to a temporary sibling of dest, then renames it
// into place. The source permission bits are kept.
func (e *Executor) copyFile(src, dest string) (err error) {
	info, err := e.fs.Stat(src)
	if err != nil {
		return err
	}

	in, err := e.fs.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	tmp, err := e.fs.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = e.fs.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = e.fs.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
		return err
	}
	return e.fs.Rename(tmp.Name(), dest)
}

// backupPath returns <dest>.<stamp>.<suffix>, appending .N when that name
// is taken on disk or earlier in this run.
func (e *Executor) backupPath(r *run, dest string) (string, error) {
	base := fmt.Sprintf("%s.%s.%s", dest, r.stamp, e.opts.BackupSuffix)
	candidate := base
	for n := 1; ; n++ {
		if !r.reserved[candidate] {
			_, err := e.fs.Lstat(candidate)
			if errors.IsNotExist(err) {
				break
			}
			if err != nil {
				return "", err
			}
		}
		candidate = fmt.Sprintf("%s.%d", base, n)
	}
	r.reserved[candidate] = true
	return candidate, nil
}

func (e *Executor) actionError(a types.Action, step string, err error) error {
	return errors.Wrapf(err, errors.ErrActionFailed, "%s: %s", step, a.Dest).
		WithDetail(errors.DetailGroup, a.Group).
		WithDetail(errors.DetailEntry, a.Entry).
		WithDetail(errors.DetailPath, a.Dest)
}

func (e *Executor) fail(logger zerolog.Logger, a types.Action, step string, err error) types.Outcome {
	wrapped := e.actionError(a, step, err)
	logger.Warn().Err(err).Msg(step)
	return types.Outcome{
		Action:  a,
		Status:  types.StatusFailed,
		Message: step,
		Err:     wrapped,
	}
}
