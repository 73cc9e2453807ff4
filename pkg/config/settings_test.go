package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotdeploy/pkg/errors"
	"github.com/arthur-debert/dotdeploy/pkg/paths"
	"github.com/arthur-debert/dotdeploy/pkg/types"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the settings directory at an empty temp dir
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(paths.EnvConfigDir, dir)
	return dir
}

func writeSettings(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, paths.SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "backup", s.Apply.Policy)
	assert.Equal(t, types.PolicyBackup, s.Policy())
	assert.False(t, s.Apply.Strict)
	assert.False(t, s.Apply.CreateDirs)
	assert.Equal(t, "bak", s.Backup.Suffix)
	assert.Equal(t, "20060102-150405", s.Backup.TimeFormat)
	assert.Equal(t, "auto", s.Output.Format)
	assert.False(t, s.Log.File)
	assert.Empty(t, s.Source)

	assert.Equal(t, Defaults(), s)
}

func TestLoadUserFile(t *testing.T) {
	dir := isolate(t)
	path := writeSettings(t, dir, `
[apply]
policy = "skip"
create_dirs = true

[backup]
suffix = "orig"
`)

	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, path, s.Source)
	assert.Equal(t, types.PolicySkip, s.Policy())
	assert.True(t, s.Apply.CreateDirs)
	assert.Equal(t, "orig", s.Backup.Suffix)
	assert.Equal(t, "20060102-150405", s.Backup.TimeFormat, "untouched keys keep their defaults")
}

func TestLoadExplicitPath(t *testing.T) {
	isolate(t)
	other := t.TempDir()
	path := writeSettings(t, other, "[output]\nformat = \"json\"\n")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", s.Output.Format)

	_, err = Load(filepath.Join(other, "missing.toml"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoadEnvironmentWins(t *testing.T) {
	dir := isolate(t)
	writeSettings(t, dir, "[apply]\npolicy = \"skip\"\n")

	t.Setenv("DOTDEPLOY_APPLY_POLICY", "overwrite")
	t.Setenv("DOTDEPLOY_APPLY_STRICT", "true")
	t.Setenv("DOTDEPLOY_BACKUP_TIME_FORMAT", "2006-01-02")

	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, types.PolicyOverwrite, s.Policy())
	assert.True(t, s.Apply.Strict)
	assert.Equal(t, "2006-01-02", s.Backup.TimeFormat)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.ErrorCode
	}{
		{"bad policy", "[apply]\npolicy = \"merge\"\n", errors.ErrSettings},
		{"unknown key", "[apply]\npolcy = \"skip\"\n", errors.ErrSettings},
		{"empty suffix", "[backup]\nsuffix = \"\"\n", errors.ErrSettings},
		{"suffix with separator", "[backup]\nsuffix = \"a/b\"\n", errors.ErrSettings},
		{"time format with separator", "[backup]\ntime_format = \"2006/01/02\"\n", errors.ErrSettings},
		{"bad format", "[output]\nformat = \"html\"\n", errors.ErrSettings},
		{"toml syntax", "[apply\n", errors.ErrConfigLoad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			writeSettings(t, dir, tt.content)

			_, err := Load("")
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "apply.policy", envKey("DOTDEPLOY_APPLY_POLICY"))
	assert.Equal(t, "apply.create_dirs", envKey("DOTDEPLOY_APPLY_CREATE_DIRS"))
	assert.Equal(t, "output.no_color", envKey("DOTDEPLOY_OUTPUT_NO_COLOR"))
	assert.Equal(t, "", envKey("DOTDEPLOY_CONFIG_DIR"))
	assert.Equal(t, "", envKey("DOTDEPLOY_APPLY"))
}

func TestUnrelatedEnvironmentIgnored(t *testing.T) {
	isolate(t)
	t.Setenv("DOTDEPLOY_SOMETHING_ELSE", "x")

	_, err := Load("")
	require.NoError(t, err)
}

func TestTOML(t *testing.T) {
	s := Defaults()
	s.Apply.Policy = "skip"
	s.Source = "/somewhere/config.toml"

	out, err := s.TOML()
	require.NoError(t, err)
	assert.Contains(t, out, "[apply]")
	assert.Contains(t, out, "create_dirs")
	assert.NotContains(t, out, "/somewhere")

	var decoded Settings
	require.NoError(t, toml.Unmarshal([]byte(out), &decoded))
	decoded.Source = s.Source
	assert.Equal(t, *s, decoded)
}

func TestDefaultsContent(t *testing.T) {
	assert.Contains(t, DefaultsContent(), "DOTDEPLOY_<SECTION>_<KEY>")
}
