package paths

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		wantErr     bool
		errContains string
	}{
		{
			name:        "empty path",
			path:        "",
			wantErr:     true,
			errContains: "path cannot be empty",
		},
		{
			name:    "valid path",
			path:    "/home/user/file.txt",
			wantErr: false,
		},
		{
			name:        "path with null bytes",
			path:        "/home/user\x00/file.txt",
			wantErr:     true,
			errContains: "null bytes",
		},
		{
			name:        "excessively long path",
			path:        "/" + strings.Repeat("a", 4097),
			wantErr:     true,
			errContains: "exceeds maximum length",
		},
		{
			name:    "path at max length",
			path:    "/" + strings.Repeat("a", 4095),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestHasParentTraversal(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"vimrc", false},
		{"colors/dark.vim", false},
		{"..vimrc", false},
		{"a..b/c", false},
		{"../vimrc", true},
		{"../../etc/passwd", true},
		{"colors/../../x", true},
		{"colors/..", true},
		{`..\windows`, true},
		{"..", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, HasParentTraversal(tt.path))
		})
	}
}

func TestContainsPath(t *testing.T) {
	assert.True(t, ContainsPath("/home/me", "/home/me/.vimrc"))
	assert.True(t, ContainsPath("/home/me", "/home/me"))
	assert.False(t, ContainsPath("/home/me", "/home/meh/.vimrc"))
	assert.False(t, ContainsPath("/home/me", "/etc/passwd"))
	assert.True(t, ContainsPath("/home/me/", "/home/me/..data/x"))
}

func TestCleanRelative(t *testing.T) {
	assert.Equal(t, "colors", CleanRelative("colors/"))
	assert.Equal(t, filepath.Join("a", "b"), CleanRelative("./a//b"))
	assert.Equal(t, "", CleanRelative("."))
}

func TestIsAbsolutePath(t *testing.T) {
	assert.True(t, IsAbsolutePath("/etc/passwd"))
	assert.True(t, IsAbsolutePath(`\share`))
	assert.False(t, IsAbsolutePath("etc/passwd"))
}

func TestSettingsFile(t *testing.T) {
	t.Run("explicit override", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/opt/dd")
		assert.Equal(t, "/opt/dd/config.toml", SettingsFile())
	})

	t.Run("xdg config home", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "")
		t.Setenv("XDG_CONFIG_HOME", "/home/me/.config")
		assert.Equal(t, "/home/me/.config/dotdeploy/config.toml", SettingsFile())
	})
}
