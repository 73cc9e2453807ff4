package profile

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/dotdeploy/pkg/errors"
	"github.com/arthur-debert/dotdeploy/pkg/paths"
	"github.com/arthur-debert/dotdeploy/pkg/types"
	"gopkg.in/ini.v1"
)

// Entry value annotations
const (
	AnnotationRecursive = "recursive"
)

var profileSettingKeys = map[string]bool{
	"mode":             true,
	"policy":           true,
	"backup":           true,
	"groups_directory": true,
	"dest":             true,
	"recursive":        true,
}

var groupSettingKeys = map[string]bool{
	"source":    true,
	"dest":      true,
	"mode":      true,
	"policy":    true,
	"backup":    true,
	"recursive": true,
}

// overrides holds the keys actually present in a settings section
type overrides struct {
	source    *string
	dest      *string
	groupsDir *string
	mode      types.Kind
	explicit  types.Policy
	backup    *bool
	recursive *bool
}

// policy resolves policy and the legacy backup flag; policy wins
func (o overrides) policy() types.Policy {
	if o.explicit.IsSet() {
		return o.explicit
	}
	if o.backup != nil {
		if *o.backup {
			return types.PolicyBackup
		}
		return types.PolicyOverwrite
	}
	return ""
}

func (o overrides) applyTo(s *Settings) {
	if o.mode != "" {
		s.Mode = o.mode
	}
	if p := o.policy(); p.IsSet() {
		s.Policy = p
	}
	if o.groupsDir != nil {
		s.GroupsDirectory = *o.groupsDir
	}
	if o.dest != nil {
		s.Dest = *o.dest
	}
	if o.recursive != nil {
		s.Recursive = *o.recursive
	}
}

func parseOverrides(sec *ini.Section, allowed map[string]bool, group string) (overrides, error) {
	var ov overrides
	fail := func(reason string) (overrides, error) {
		return overrides{}, errors.NewConfigValidation(group, "", "["+sec.Name()+"] "+reason)
	}

	for _, key := range sec.Keys() {
		name := key.Name()
		value := strings.TrimSpace(key.Value())
		if !allowed[name] {
			return fail(fmt.Sprintf("unknown setting %q", name))
		}
		if strings.Contains(value, "\x00") {
			return fail(fmt.Sprintf("setting %q contains a NUL byte", name))
		}

		switch name {
		case "mode":
			kind, ok := types.ParseKind(value)
			if !ok {
				return fail(fmt.Sprintf("invalid mode %q (want link or copy)", value))
			}
			ov.mode = kind
		case "policy":
			policy, ok := types.ParsePolicy(value)
			if !ok {
				return fail(fmt.Sprintf("invalid policy %q (want backup, overwrite or skip)", value))
			}
			ov.explicit = policy
		case "backup", "recursive":
			b, ok := parseBool(value)
			if !ok {
				return fail(fmt.Sprintf("invalid boolean %q for %s", value, name))
			}
			if name == "backup" {
				ov.backup = &b
			} else {
				ov.recursive = &b
			}
		case "source":
			if value == "" {
				return fail("source root is empty")
			}
			ov.source = &value
		case "dest":
			if value == "" {
				return fail("destination root is empty")
			}
			ov.dest = &value
		case "groups_directory":
			if value == "" {
				return fail("groups_directory is empty")
			}
			ov.groupsDir = &value
		}
	}

	return ov, nil
}

// parseEntry validates an entry path and splits its value into an
// optional destination override and annotations.
func parseEntry(g types.Group, rawPath, value string) (types.Entry, error) {
	fail := func(reason string) (types.Entry, error) {
		return types.Entry{}, errors.NewConfigValidation(g.Name, rawPath, reason)
	}

	if reason := checkEntryPath(rawPath); reason != "" {
		return fail(reason)
	}
	cleaned := paths.CleanRelative(rawPath)
	if cleaned == "" {
		return fail("entry path names the source root itself")
	}

	entry := types.Entry{
		Path:      cleaned,
		Kind:      g.Kind,
		Recursive: g.Recursive,
	}

	var annotated types.Kind
	var annotatedWord string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		word := strings.ToLower(part)
		if kind, ok := types.ParseKind(word); ok {
			if annotated != "" && annotated != kind {
				return fail(fmt.Sprintf("conflicting annotations %q and %q", annotatedWord, part))
			}
			annotated, annotatedWord = kind, part
			continue
		}
		if word == AnnotationRecursive {
			entry.Recursive = true
			continue
		}

		if entry.Dest != "" {
			return fail(fmt.Sprintf("several destinations (%q and %q)", entry.Dest, part))
		}
		if strings.Contains(part, "\x00") {
			return fail("destination contains a NUL byte")
		}
		entry.Dest = part
	}

	if annotated != "" {
		entry.Kind = annotated
	}
	return entry, nil
}

// checkEntryPath returns the reason rawPath is not a valid entry path, or ""
func checkEntryPath(rawPath string) string {
	switch {
	case strings.TrimSpace(rawPath) == "":
		return "entry path is empty"
	case strings.Contains(rawPath, "\x00"):
		return "entry path contains a NUL byte"
	case len(rawPath) > paths.MaxPathLength:
		return "entry path exceeds maximum length"
	case paths.IsAbsolutePath(rawPath):
		return "entry path must be relative to the source root"
	case paths.HasParentTraversal(rawPath):
		return "entry path must not contain '..' segments"
	}
	return ""
}

// parseBool accepts the usual ini spellings of booleans
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "1", "yes", "true", "on":
		return true, true
	case "0", "no", "false", "off":
		return false, true
	}
	return false, false
}
