// Package testutil provides utilities for testing dotdeploy components.
//
// Key components:
//   - TestEnvironment: a dotfiles directory plus a home directory, either in
//     memory or under t.TempDir, with HOME pointed at it
//   - FileTree: declarative setup of source files
//   - Snapshot: a path -> content listing used to prove nothing changed
//   - MockFS: a testify mock of types.FS for failure injection
//
// Usage guidelines:
//   - Copy-only scenarios should use EnvMemoryOnly for speed and isolation
//   - Symlink scenarios need EnvIsolated (the in-memory FS has no symlinks)
//   - Each test should be completely isolated with no shared state
package testutil
