package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for dotdeploy
	EnvConfigDir = "DOTDEPLOY_CONFIG_DIR"
)

const (
	// AppDirName is the directory name used under XDG base directories
	AppDirName = "dotdeploy"

	// SettingsFileName is the name of the user settings file
	SettingsFileName = "config.toml"
)

// ConfigDir returns the directory holding the user settings file.
// DOTDEPLOY_CONFIG_DIR wins, then XDG_CONFIG_HOME, then the platform default.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppDirName)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// SettingsFile returns the default path of the user settings file
func SettingsFile() string {
	return filepath.Join(ConfigDir(), SettingsFileName)
}
