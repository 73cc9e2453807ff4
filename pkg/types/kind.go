package types

import "strings"

// Kind is the way an Action places its source at the destination
type Kind string

const (
	// KindSymlink creates a symbolic link pointing at the source
	KindSymlink Kind = "symlink"

	// KindCopy copies the source content to the destination
	KindCopy Kind = "copy"
)

// ParseKind maps the profile spellings (link, symlink, copy, cp) to a Kind
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "link", "symlink":
		return KindSymlink, true
	case "copy", "cp":
		return KindCopy, true
	}
	return "", false
}

// Verb is the past tense used in messages ("linked", "copied")
func (k Kind) Verb() string {
	if k == KindCopy {
		return "copied"
	}
	return "linked"
}

// Policy governs what happens when a destination exists and differs
// from what the Action would place there.
type Policy string

const (
	// PolicyBackup renames the existing destination aside, then applies
	PolicyBackup Policy = "backup"

	// PolicyOverwrite replaces the existing destination
	PolicyOverwrite Policy = "overwrite"

	// PolicySkip leaves the existing destination untouched
	PolicySkip Policy = "skip"
)

// DefaultPolicy is used when nothing else selects one
const DefaultPolicy = PolicyBackup

// Policies lists the valid policies in display order
var Policies = []Policy{PolicyBackup, PolicyOverwrite, PolicySkip}

// ParsePolicy validates a policy name
func ParsePolicy(s string) (Policy, bool) {
	p := Policy(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range Policies {
		if p == valid {
			return p, true
		}
	}
	return "", false
}

// IsSet reports whether a policy was chosen
func (p Policy) IsSet() bool {
	return p != ""
}

// Or returns p, or fallback when p is unset
func (p Policy) Or(fallback Policy) Policy {
	if p.IsSet() {
		return p
	}
	return fallback
}
