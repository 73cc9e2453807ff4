package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/arthur-debert/dotdeploy/pkg/filesystem"
	"github.com/arthur-debert/dotdeploy/pkg/paths"
	"github.com/arthur-debert/dotdeploy/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// ProfileName is the file WriteProfile creates in the dotfiles root
const ProfileName = "profile.ini"

// TestEnvironment provides a dotfiles root and a home directory
type TestEnvironment struct {
	DotfilesRoot string
	HomeDir      string

	FS   types.FS
	Type EnvType

	t *testing.T
}

// FileTree maps a relative path to file content. A nested FileTree
// creates a directory.
type FileTree map[string]interface{}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	switch envType {
	case EnvMemoryOnly:
		env.DotfilesRoot = "/virtual/dotfiles"
		env.HomeDir = "/virtual/home"
		env.FS = filesystem.NewMemory()
	case EnvIsolated:
		tempDir := t.TempDir()
		env.DotfilesRoot = filepath.Join(tempDir, "dotfiles")
		env.HomeDir = filepath.Join(tempDir, "home")
		env.FS = filesystem.NewOS()
	}

	for _, dir := range []string{env.DotfilesRoot, env.HomeDir} {
		if err := env.FS.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	t.Setenv("HOME", env.HomeDir)

	return env
}

// Resolver returns a path resolver whose home is the environment's home
// directory
func (env *TestEnvironment) Resolver() *paths.Resolver {
	return paths.NewResolver(env.HomeDir, os.LookupEnv)
}

// WithFileTree creates a file tree below the dotfiles root
func (env *TestEnvironment) WithFileTree(tree FileTree) {
	env.t.Helper()
	createFileTree(env.t, env.FS, env.DotfilesRoot, tree)
}

// WriteFile creates a file, and its parent directories, at an absolute path
func (env *TestEnvironment) WriteFile(path, content string) {
	env.t.Helper()
	if err := env.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := env.FS.WriteFile(path, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

// WriteProfile writes profile text to the dotfiles root and returns its path
func (env *TestEnvironment) WriteProfile(content string) string {
	env.t.Helper()
	path := filepath.Join(env.DotfilesRoot, ProfileName)
	env.WriteFile(path, content)
	return path
}

// Home joins parts onto the home directory
func (env *TestEnvironment) Home(parts ...string) string {
	return filepath.Join(append([]string{env.HomeDir}, parts...)...)
}

// Dotfiles joins parts onto the dotfiles root
func (env *TestEnvironment) Dotfiles(parts ...string) string {
	return filepath.Join(append([]string{env.DotfilesRoot}, parts...)...)
}

// Snapshot lists the whole environment, dotfiles and home
func (env *TestEnvironment) Snapshot() map[string]string {
	env.t.Helper()
	out := Snapshot(env.t, env.FS, env.DotfilesRoot)
	for k, v := range Snapshot(env.t, env.FS, env.HomeDir) {
		out[k] = v
	}
	return out
}

func createFileTree(t *testing.T, fs types.FS, basePath string, tree FileTree) {
	t.Helper()

	names := make([]string, 0, len(tree))
	for name := range tree {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(basePath, name)
		switch v := tree[name].(type) {
		case string:
			if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
				t.Fatalf("Failed to create directory for %s: %v", path, err)
			}
			if err := fs.WriteFile(path, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", path, err)
			}
		case FileTree:
			if err := fs.MkdirAll(path, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", path, err)
			}
			createFileTree(t, fs, path, v)
		default:
			t.Fatalf("Unsupported FileTree value for %s: %T", path, v)
		}
	}
}
