package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/dotdeploy/pkg/errors"
	"github.com/arthur-debert/dotdeploy/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment overrides: DOTDEPLOY_<SECTION>_<KEY>
const EnvPrefix = "DOTDEPLOY_"

// Load builds the effective settings. Layers, later ones winning:
//  1. embedded defaults
//  2. the user file: path if given, else the XDG settings file when it exists
//  3. DOTDEPLOY_<SECTION>_<KEY> environment variables
//
// An explicit path that does not exist is an error.
func Load(path string) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load default settings")
	}

	source, err := userFile(path)
	if err != nil {
		return nil, err
	}
	if source != "" {
		if err := k.Load(file.Provider(source), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load settings from %s", source).
				WithDetail(errors.DetailPath, source)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load settings from environment")
	}

	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrSettings, "failed to decode settings")
	}
	s.Source = source

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Defaults returns the embedded default settings
func Defaults() *Settings {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		panic(fmt.Sprintf("embedded defaults are invalid: %v", err))
	}
	var s Settings
	if err := k.UnmarshalWithConf("", &s, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		panic(fmt.Sprintf("embedded defaults are invalid: %v", err))
	}
	return &s
}

func userFile(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "settings file %s is not readable", path).
				WithDetail(errors.DetailPath, path)
		}
		return path, nil
	}

	path = paths.SettingsFile()
	if _, err := os.Stat(path); err != nil {
		return "", nil
	}
	return path, nil
}

// sections are the top-level tables environment variables may target
var sections = map[string]bool{"apply": true, "backup": true, "output": true, "log": true}

// envKey maps DOTDEPLOY_BACKUP_TIME_FORMAT to backup.time_format: the first
// underscore separates the section, the rest belong to the key. Variables
// outside the known sections, like DOTDEPLOY_CONFIG_DIR, map to "" and are
// ignored.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, rest, ok := strings.Cut(key, "_")
	if !ok || rest == "" || !sections[section] {
		return ""
	}
	return section + "." + rest
}
