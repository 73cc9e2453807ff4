package config

import (
	"strings"
	"time"

	"github.com/arthur-debert/dotdeploy/pkg/errors"
	"github.com/arthur-debert/dotdeploy/pkg/types"
	"github.com/pelletier/go-toml/v2"
)

// OutputFormats lists the accepted values of output.format
var OutputFormats = []string{"auto", "text", "rich", "json", "yaml", "xml"}

// Settings is the effective tool configuration
type Settings struct {
	Apply  ApplySettings  `koanf:"apply" toml:"apply"`
	Backup BackupSettings `koanf:"backup" toml:"backup"`
	Output OutputSettings `koanf:"output" toml:"output"`
	Log    LogSettings    `koanf:"log" toml:"log"`

	// Source is the user file that was merged, if any
	Source string `koanf:"-" toml:"-"`
}

// ApplySettings holds defaults for the apply command
type ApplySettings struct {
	Policy     string `koanf:"policy" toml:"policy"`
	Strict     bool   `koanf:"strict" toml:"strict"`
	CreateDirs bool   `koanf:"create_dirs" toml:"create_dirs"`
}

// BackupSettings controls backup file names
type BackupSettings struct {
	Suffix     string `koanf:"suffix" toml:"suffix"`
	TimeFormat string `koanf:"time_format" toml:"time_format"`
}

// OutputSettings controls how results are printed
type OutputSettings struct {
	Format  string `koanf:"format" toml:"format"`
	NoColor bool   `koanf:"no_color" toml:"no_color"`
}

// LogSettings controls the log file
type LogSettings struct {
	File bool `koanf:"file" toml:"file"`
}

// Policy returns the configured conflict policy. Call Validate first.
func (s *Settings) Policy() types.Policy {
	p, _ := types.ParsePolicy(s.Apply.Policy)
	return p
}

// Validate checks every setting and reports the first invalid one
func (s *Settings) Validate() error {
	if _, ok := types.ParsePolicy(s.Apply.Policy); !ok {
		return invalid("apply.policy", s.Apply.Policy, "must be one of backup, overwrite, skip")
	}

	suffix := strings.TrimPrefix(s.Backup.Suffix, ".")
	if suffix == "" {
		return invalid("backup.suffix", s.Backup.Suffix, "must not be empty")
	}
	if strings.ContainsAny(suffix, `/\`) {
		return invalid("backup.suffix", s.Backup.Suffix, "must not contain path separators")
	}

	if s.Backup.TimeFormat == "" {
		return invalid("backup.time_format", s.Backup.TimeFormat, "must not be empty")
	}
	if stamp := time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC).Format(s.Backup.TimeFormat); strings.ContainsAny(stamp, `/\`) {
		return invalid("backup.time_format", s.Backup.TimeFormat, "must not produce path separators")
	}

	if !isOutputFormat(s.Output.Format) {
		return invalid("output.format", s.Output.Format, "must be one of "+strings.Join(OutputFormats, ", "))
	}
	return nil
}

// TOML renders the settings as a TOML document
func (s *Settings) TOML() (string, error) {
	data, err := toml.Marshal(s)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render settings")
	}
	return string(data), nil
}

func isOutputFormat(format string) bool {
	for _, f := range OutputFormats {
		if strings.EqualFold(f, format) {
			return true
		}
	}
	return false
}

func invalid(key, value, reason string) error {
	return errors.Newf(errors.ErrSettings, "invalid setting %s = %q: %s", key, value, reason).
		WithDetail("key", key).
		WithDetail(errors.DetailReason, reason)
}
