package dotdeploy

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Deploy dotfiles from a declarative profile"
	MsgApplyShort      = "Deploy the entries of a profile"
	MsgValidateShort   = "Check a profile without deploying it"
	MsgPlanShort       = "Show the actions a profile resolves to"
	MsgPlanLong        = "Plan resolves every group and entry of the profile and prints the resulting actions in execution order."
	MsgWatchShort      = "Apply a profile again whenever it changes"
	MsgConfigShort     = "Print the effective tool settings"
	MsgConfigLong      = "Config prints the settings in effect after merging the built-in defaults, the settings file and DOTDEPLOY_* environment variables."
	MsgFormatShort     = "Show the profile format reference"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgProfileValid    = "Profile %s is valid: %d groups, %d actions"
	MsgWatching        = "Watching %s, press Ctrl-C to stop"
	MsgSettingsSource  = "# settings file: %s\n"
	MsgNoSettingsFile  = "# no settings file, using defaults\n"
	MsgVersionTemplate = "dotdeploy {{.Version}} (commit %s, built %s)\n"

	// Error messages
	MsgErrLoadSettings = "failed to load settings: %w"
	MsgErrUnknownShell = "unsupported shell %q"
	MsgErrNoCommand    = "no command specified"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig   = "Settings file (default $XDG_CONFIG_HOME/dotdeploy/config.toml)"
	MsgFlagOutput   = "Output format: auto, text, rich, json, yaml, xml"
	MsgFlagNoColor  = "Disable colored output"
	MsgFlagDryRun   = "Preview changes without executing them"
	MsgFlagPolicy   = "Conflict policy for every entry: backup, overwrite, skip"
	MsgFlagStrict   = "Fail when a destination is left untouched because of a conflict"
	MsgFlagMkdir    = "Create missing parent directories of destinations"
	MsgFlagQuiet    = "Print nothing, report through the exit status only"
	MsgFlagDefaults = "Print the commented default settings file"
	MsgFlagWidth    = "Wrap the reference at this width (0 for the default)"
	MsgFlagDebounce = "Quiet period after a change before applying"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/apply-long.txt
	msgApplyLongRaw string
	MsgApplyLong = strings.TrimSpace(msgApplyLongRaw)

	//go:embed msgs/apply-example.txt
	msgApplyExampleRaw string
	MsgApplyExample = strings.TrimRight(msgApplyExampleRaw, "\n")

	//go:embed msgs/validate-long.txt
	msgValidateLongRaw string
	MsgValidateLong = strings.TrimSpace(msgValidateLongRaw)

	//go:embed msgs/watch-long.txt
	msgWatchLongRaw string
	MsgWatchLong = strings.TrimSpace(msgWatchLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate = strings.TrimSpace(msgUsageTemplateRaw)
)
