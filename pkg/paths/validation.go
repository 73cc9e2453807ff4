package paths

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotdeploy/pkg/errors"
)

// MaxPathLength is the common filesystem limit enforced by ValidatePath
const MaxPathLength = 4096

// ValidatePath performs basic validation on a path.
// It checks for:
// - Empty paths
// - Null bytes
// - Excessive path length
func ValidatePath(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	if strings.Contains(path, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	if len(path) > MaxPathLength {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}

	return nil
}

// HasParentTraversal reports whether any segment of path is "..".
// Both separators are checked so profiles written on one platform are
// rejected consistently on another.
func HasParentTraversal(path string) bool {
	segments := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	for _, segment := range segments {
		if segment == ".." {
			return true
		}
	}
	return false
}

// IsAbsolutePath returns true if the path is absolute.
// A leading backslash counts as absolute as well.
func IsAbsolutePath(path string) bool {
	return filepath.IsAbs(path) || strings.HasPrefix(path, "/") || strings.HasPrefix(path, `\`)
}

// ContainsPath checks if child is contained within parent.
// Both paths are cleaned before comparison; no home expansion happens.
func ContainsPath(parent, child string) bool {
	parent = filepath.Clean(parent)
	child = filepath.Clean(child)

	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// CleanRelative normalizes a relative entry path: separators, "." segments
// and trailing slashes are removed.
func CleanRelative(path string) string {
	cleaned := filepath.Clean(filepath.FromSlash(path))
	if cleaned == "." {
		return ""
	}
	return cleaned
}
