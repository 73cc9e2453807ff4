// Package config handles the tool settings of dotdeploy.
// Settings are layered from embedded defaults, the user's TOML file and
// DOTDEPLOY_* environment variables. Profiles are handled by package profile.
package config
