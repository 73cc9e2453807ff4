package dotdeploy

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arthur-debert/dotdeploy/pkg/config"
	"github.com/arthur-debert/dotdeploy/pkg/deploy"
	"github.com/arthur-debert/dotdeploy/pkg/display"
	"github.com/arthur-debert/dotdeploy/pkg/docs"
	"github.com/arthur-debert/dotdeploy/pkg/watch"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		flags    runFlags
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:     "watch <profile>",
		Short:   MsgWatchShort,
		Long:    MsgWatchLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.deployOptions(args[0], flags)
			if err != nil {
				return err
			}

			w, err := watch.New(watch.Options{Path: args[0], Debounce: debounce, Logger: opts.Logger})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.ErrOrStderr(), MsgWatching+"\n", w.Path())
			return w.Run(ctx, func(ctx context.Context) error {
				result, err := deploy.Apply(opts)
				if err != nil {
					_ = a.renderer(cmd.ErrOrStderr()).RenderError(err)
					return err
				}
				return a.renderResult(cmd.OutOrStdout(), result)
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, MsgFlagDebounce)
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if defaults {
				_, err := fmt.Fprint(out, config.DefaultsContent())
				return err
			}

			text, err := a.settings.TOML()
			if err != nil {
				return err
			}
			if a.settings.Source != "" {
				fmt.Fprintf(out, MsgSettingsSource, a.settings.Source)
			} else {
				fmt.Fprint(out, MsgNoSettingsFile)
			}
			_, err = fmt.Fprint(out, text)
			return err
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newFormatCmd(a *app) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:     "format",
		Short:   MsgFormatShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.format.Structured() {
				_, err := fmt.Fprint(cmd.OutOrStdout(), docs.ProfileReference())
				return err
			}
			text, err := docs.Render(width, a.format != display.FormatRich)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, MsgFlagWidth)
	return cmd
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf(MsgErrUnknownShell, args[0])
			}
		},
	}
}
