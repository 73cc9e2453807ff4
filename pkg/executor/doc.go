// Package executor applies a Plan to the filesystem.
//
// Actions run strictly in plan order, one at a time. For each action the
// executor compares the destination with what the action would place there
// (symlink target or content checksum), applies the conflict policy when
// they differ, and records exactly one Outcome. Filesystem failures become
// failed outcomes and never stop the run.
//
// In dry-run mode every comparison and policy decision is made but no
// mutation is issued.
package executor
