package profile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotdeploy/pkg/errors"
	"github.com/arthur-debert/dotdeploy/pkg/types"
	"gopkg.in/ini.v1"
)

const (
	// SettingsSection holds profile-wide defaults
	SettingsSection = "settings"

	// GroupSettingsSuffix marks a per-group settings section
	GroupSettingsSuffix = ".settings"
)

// Settings are the profile-wide defaults from the [settings] section
type Settings struct {
	// Mode is the default action kind
	Mode types.Kind

	// Policy is the profile conflict policy; empty defers to the tool settings
	Policy types.Policy

	// GroupsDirectory is the base of group source roots, relative to the
	// profile's directory
	GroupsDirectory string

	// Dest is the default destination root
	Dest string

	// Recursive is the default directory expansion
	Recursive bool
}

// DefaultSettings returns the settings of a profile without a [settings]
// section
func DefaultSettings() Settings {
	return Settings{
		Mode:            types.KindSymlink,
		GroupsDirectory: ".",
		Dest:            "~",
	}
}

// Profile is the validated, strongly-typed form of a profile file
type Profile struct {
	// Path is the file the profile was loaded from, empty for Parse
	Path string

	Settings Settings

	// Groups in profile order
	Groups []types.Group
}

// Dir returns the directory relative paths in the profile are anchored to
func (p *Profile) Dir() string {
	if p.Path == "" {
		return ""
	}
	return filepath.Dir(p.Path)
}

// Group looks up a group by name
func (p *Profile) Group(name string) (types.Group, bool) {
	for _, g := range p.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return types.Group{}, false
}

// EntryCount returns the number of entries over all groups
func (p *Profile) EntryCount() int {
	n := 0
	for _, g := range p.Groups {
		n += len(g.Entries)
	}
	return n
}

var loadOptions = ini.LoadOptions{
	KeyValueDelimiters:  "=",
	IgnoreInlineComment: true,
}

// Load reads and parses a profile file
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read profile %s", path).
			WithDetail(errors.DetailPath, path)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	p.Path = abs
	return p, nil
}

// Parse parses and validates profile text. The whole profile is rejected
// on the first invalid group, entry or setting.
func Parse(data []byte) (*Profile, error) {
	cfg, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "profile syntax error").
			WithDetail(errors.DetailReason, err.Error())
	}
	return fromINI(cfg)
}

func fromINI(cfg *ini.File) (*Profile, error) {
	if keys := cfg.Section(ini.DefaultSection).Keys(); len(keys) > 0 {
		return nil, errors.NewConfigValidation("", keys[0].Name(), "key outside of any section")
	}

	var groupSections []*ini.Section
	groupNames := make(map[string]bool)
	var settingsSection *ini.Section
	groupSettings := make(map[string]*ini.Section)
	var groupSettingsOrder []string

	for _, sec := range cfg.Sections() {
		name := sec.Name()
		switch {
		case name == ini.DefaultSection:
			continue
		case name == SettingsSection:
			settingsSection = sec
		case name == GroupSettingsSuffix:
			return nil, errors.NewConfigValidation("", "", "settings section ["+name+"] names no group")
		case strings.HasSuffix(name, GroupSettingsSuffix):
			group := strings.TrimSuffix(name, GroupSettingsSuffix)
			groupSettings[group] = sec
			groupSettingsOrder = append(groupSettingsOrder, group)
		default:
			groupSections = append(groupSections, sec)
			groupNames[name] = true
		}
	}

	for _, group := range groupSettingsOrder {
		if !groupNames[group] {
			return nil, errors.NewConfigValidation(group, "", "settings section without a matching group")
		}
	}

	if len(groupSections) == 0 {
		return nil, errors.NewConfigValidation("", "", "profile defines no groups")
	}

	settings := DefaultSettings()
	if settingsSection != nil {
		ov, err := parseOverrides(settingsSection, profileSettingKeys, "")
		if err != nil {
			return nil, err
		}
		ov.applyTo(&settings)
	}

	p := &Profile{Settings: settings}
	for _, sec := range groupSections {
		var ov overrides
		if gs, ok := groupSettings[sec.Name()]; ok {
			parsed, err := parseOverrides(gs, groupSettingKeys, sec.Name())
			if err != nil {
				return nil, err
			}
			ov = parsed
		}

		group, err := buildGroup(sec, ov, settings)
		if err != nil {
			return nil, err
		}
		p.Groups = append(p.Groups, group)
	}

	return p, nil
}

func buildGroup(sec *ini.Section, ov overrides, settings Settings) (types.Group, error) {
	g := types.Group{
		Name:      sec.Name(),
		Source:    sec.Name(),
		Dest:      settings.Dest,
		Kind:      settings.Mode,
		Policy:    settings.Policy,
		Recursive: settings.Recursive,
	}
	if ov.source != nil {
		g.Source = *ov.source
	}
	if ov.dest != nil {
		g.Dest = *ov.dest
	}
	if ov.mode != "" {
		g.Kind = ov.mode
	}
	if p := ov.policy(); p.IsSet() {
		g.Policy = p
	}
	if ov.recursive != nil {
		g.Recursive = *ov.recursive
	}

	seen := make(map[string]string)
	for _, key := range sec.Keys() {
		entry, err := parseEntry(g, key.Name(), key.Value())
		if err != nil {
			return types.Group{}, err
		}
		if prev, dup := seen[entry.Path]; dup {
			return types.Group{}, errors.NewConfigValidation(g.Name, key.Name(), "same path as entry "+prev)
		}
		seen[entry.Path] = key.Name()
		g.Entries = append(g.Entries, entry)
	}

	return g, nil
}
