package types

// Group is a named collection of entries sharing a source root and a
// destination root. Groups are built once by the profile parser and are
// read-only afterwards.
type Group struct {
	// Name is the profile section naming the group
	Name string

	// Source is the unresolved source root (default: the group name,
	// relative to the profile's groups directory)
	Source string

	// Dest is the unresolved destination root (default: ~)
	Dest string

	// Kind is the default action kind for entries without an annotation
	Kind Kind

	// Policy is the conflict policy chosen by the profile; empty defers to
	// the executor's policy
	Policy Policy

	// Recursive makes directory entries expand into nested directories
	Recursive bool

	// Entries in profile order
	Entries []Entry
}

// Entry is one file or directory to deploy from a group's source root
type Entry struct {
	// Path is relative to the group's source root. It is never empty,
	// never absolute and never contains a ".." segment.
	Path string

	// Dest overrides the destination. Relative overrides are resolved
	// against the group's destination root.
	Dest string

	// Kind is the effective action kind
	Kind Kind

	// Recursive is the effective recursion flag for directory entries
	Recursive bool
}

// HasDestOverride reports whether the entry names its own destination
func (e Entry) HasDestOverride() bool {
	return e.Dest != ""
}
