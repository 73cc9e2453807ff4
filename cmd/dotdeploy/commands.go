package dotdeploy

import (
	"fmt"
	"io"

	"github.com/arthur-debert/dotdeploy/internal/version"
	"github.com/arthur-debert/dotdeploy/pkg/config"
	"github.com/arthur-debert/dotdeploy/pkg/deploy"
	"github.com/arthur-debert/dotdeploy/pkg/display"
	"github.com/arthur-debert/dotdeploy/pkg/errors"
	"github.com/arthur-debert/dotdeploy/pkg/logging"
	"github.com/arthur-debert/dotdeploy/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// ExitError ends the process with Code. The command has already reported
// what went wrong.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// app holds the global flags and what PersistentPreRunE derives from them
type app struct {
	verbosity  int
	configPath string
	output     string
	noColor    bool

	settings *config.Settings
	format   display.Format
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "dotdeploy",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVarP(&a.output, "output", "o", string(display.FormatAuto), MsgFlagOutput)
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, MsgFlagNoColor)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetHelpCommandGroupID("misc")
	rootCmd.SetUsageTemplate(MsgUsageTemplate)
	rootCmd.SetVersionTemplate(fmt.Sprintf(MsgVersionTemplate, version.Commit, version.Date))

	rootCmd.AddCommand(newApplyCmd(a))
	rootCmd.AddCommand(newValidateCmd(a))
	rootCmd.AddCommand(newPlanCmd(a))
	rootCmd.AddCommand(newWatchCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newFormatCmd(a))
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// setup loads the tool settings, configures logging and picks the output
// format
func (a *app) setup(cmd *cobra.Command) error {
	s, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf(MsgErrLoadSettings, err)
	}
	a.settings = s

	noColor := a.noColor || s.Output.NoColor
	logging.SetupLogger(logging.Options{
		Verbosity: a.verbosity,
		LogToFile: s.Log.File,
		Console:   cmd.ErrOrStderr(),
		NoColor:   noColor,
	})

	formatName := s.Output.Format
	if cmd.Flags().Changed("output") {
		formatName = a.output
	}
	f, err := display.ParseFormat(formatName)
	if err != nil {
		return err
	}
	a.format = display.Resolve(f, cmd.OutOrStdout(), noColor)

	log.Debug().
		Str("command", cmd.Name()).
		Str("format", string(a.format)).
		Str("settings", s.Source).
		Msg("Command started")
	return nil
}

func (a *app) renderer(w io.Writer) display.Renderer {
	r, err := display.New(a.format, w)
	if err != nil {
		return display.NewTextRenderer(w)
	}
	return r
}

// fail reports a fatal error and turns it into exit status 1. Structured
// formats write the error document to stdout so it can be parsed.
func (a *app) fail(cmd *cobra.Command, err error) error {
	log.Debug().Err(err).Str("code", string(errors.GetErrorCode(err))).Msg("Command failed")

	w := cmd.ErrOrStderr()
	if a.format.Structured() {
		w = cmd.OutOrStdout()
	}
	if rerr := a.renderer(w).RenderError(err); rerr != nil {
		return err
	}
	return &ExitError{Code: 1}
}

// runFlags are shared by apply and watch
type runFlags struct {
	dryRun bool
	policy string
	strict bool
	mkdir  bool
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.dryRun, "dry-run", "n", false, MsgFlagDryRun)
	cmd.Flags().StringVar(&f.policy, "policy", "", MsgFlagPolicy)
	cmd.Flags().BoolVar(&f.strict, "strict", false, MsgFlagStrict)
	cmd.Flags().BoolVar(&f.mkdir, "mkdir", false, MsgFlagMkdir)

	_ = cmd.RegisterFlagCompletionFunc("policy", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(types.Policies))
		for i, p := range types.Policies {
			names[i] = string(p)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}

// deployOptions combines flags and settings into deploy options
func (a *app) deployOptions(profilePath string, f runFlags) (deploy.Options, error) {
	opts := deploy.Options{
		ProfilePath: profilePath,
		Settings:    a.settings,
		DryRun:      f.dryRun,
		Strict:      f.strict || a.settings.Apply.Strict,
		CreateDirs:  f.mkdir || a.settings.Apply.CreateDirs,
		Logger:      log.Logger,
	}
	if f.policy != "" {
		p, ok := types.ParsePolicy(f.policy)
		if !ok {
			return opts, errors.Newf(errors.ErrInvalidInput, "invalid policy %q: must be one of backup, overwrite, skip", f.policy)
		}
		opts.Policy = p
	}
	return opts, nil
}

// renderResult prints an apply result and returns its exit status as an
// error
func (a *app) renderResult(w io.Writer, result *deploy.Result) error {
	rep := display.NewReport(result.Summary, display.Meta{
		Command: "apply",
		RunID:   result.RunID,
		Profile: result.Profile.Path,
		Strict:  result.Strict,
	})
	if err := a.renderer(w).RenderReport(rep); err != nil {
		return err
	}
	if code := result.ExitCode(); code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}

func newApplyCmd(a *app) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:     "apply <profile>",
		Short:   MsgApplyShort,
		Long:    MsgApplyLong,
		Example: MsgApplyExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.deployOptions(args[0], flags)
			if err != nil {
				return err
			}

			result, err := deploy.Apply(opts)
			if err != nil {
				return a.fail(cmd, err)
			}
			return a.renderResult(cmd.OutOrStdout(), result)
		},
	}

	flags.register(cmd)
	return cmd
}

func newValidateCmd(a *app) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:     "validate <profile>",
		Short:   MsgValidateShort,
		Long:    MsgValidateLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prepared, err := deploy.Prepare(deploy.Options{
				ProfilePath: args[0],
				Settings:    a.settings,
				Logger:      log.Logger,
			})
			if err != nil {
				if quiet {
					return &ExitError{Code: 1}
				}
				return a.fail(cmd, err)
			}
			if quiet {
				return nil
			}
			msg := fmt.Sprintf(MsgProfileValid, prepared.Profile.Path, len(prepared.Profile.Groups), prepared.Plan.Len())
			return a.renderer(cmd.OutOrStdout()).RenderMessage(msg)
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, MsgFlagQuiet)
	return cmd
}

func newPlanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "plan <profile>",
		Short:   MsgPlanShort,
		Long:    MsgPlanLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prepared, err := deploy.Prepare(deploy.Options{
				ProfilePath: args[0],
				Settings:    a.settings,
				Logger:      log.Logger,
			})
			if err != nil {
				return a.fail(cmd, err)
			}
			doc := display.NewPlanDocument(prepared.Profile.Path, prepared.Plan, a.settings.Policy())
			return a.renderer(cmd.OutOrStdout()).RenderPlan(doc)
		},
	}
}
