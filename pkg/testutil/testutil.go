package testutil

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/arthur-debert/dotdeploy/pkg/types"
)

// Snapshot walks root and returns every path mapped to a description of it:
// file content, "<dir>", or "-> target" for symlinks. Comparing two
// snapshots shows whether anything changed on disk.
func Snapshot(t *testing.T, fsys types.FS, root string) map[string]string {
	t.Helper()

	out := make(map[string]string)
	items, err := fsys.ReadDir(root)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", root, err)
	}

	for _, item := range items {
		path := filepath.Join(root, item.Name())
		switch {
		case item.Type()&fs.ModeSymlink != 0:
			target, err := fsys.Readlink(path)
			if err != nil {
				t.Fatalf("Failed to read link %s: %v", path, err)
			}
			out[path] = "-> " + target
		case item.IsDir():
			out[path] = "<dir>"
			for k, v := range Snapshot(t, fsys, path) {
				out[k] = v
			}
		default:
			data, err := fsys.ReadFile(path)
			if err != nil {
				t.Fatalf("Failed to read %s: %v", path, err)
			}
			out[path] = string(data)
		}
	}

	return out
}

// AssertFileContent checks that path is a file holding expected
func AssertFileContent(t *testing.T, fsys types.FS, path, expected string) {
	t.Helper()

	data, err := fsys.ReadFile(path)
	if err != nil {
		t.Errorf("Failed to read %s: %v", path, err)
		return
	}
	if string(data) != expected {
		t.Errorf("File %s content mismatch:\nExpected: %q\nActual: %q", path, expected, string(data))
	}
}

// AssertSymlink checks that link is a symlink pointing at expectedTarget
func AssertSymlink(t *testing.T, fsys types.FS, link, expectedTarget string) {
	t.Helper()

	info, err := fsys.Lstat(link)
	if err != nil {
		t.Errorf("Failed to lstat %s: %v", link, err)
		return
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		t.Errorf("%s is not a symlink (mode %s)", link, info.Mode())
		return
	}

	target, err := fsys.Readlink(link)
	if err != nil {
		t.Errorf("Failed to read link %s: %v", link, err)
		return
	}
	if target != expectedTarget {
		t.Errorf("Symlink %s points to %s, expected %s", link, target, expectedTarget)
	}
}

// AssertNoFile checks that nothing exists at path
func AssertNoFile(t *testing.T, fsys types.FS, path string) {
	t.Helper()

	if _, err := fsys.Lstat(path); err == nil {
		t.Errorf("Expected %s not to exist", path)
	}
}

// Backups returns the snapshot keys that look like backup files
func Backups(snapshot map[string]string) []string {
	var backups []string
	for path := range snapshot {
		if strings.HasSuffix(path, ".bak") || strings.Contains(path, ".bak.") {
			backups = append(backups, path)
		}
	}
	sort.Strings(backups)
	return backups
}
