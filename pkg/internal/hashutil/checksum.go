package hashutil

import (
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/arthur-debert/dotdeploy/pkg/types"
)

// CalculateFileChecksum calculates the SHA256 checksum of a file
func CalculateFileChecksum(fsys types.FS, path string) (string, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = file.Close()
	}()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return fmt.Sprintf("sha256:%x", hash.Sum(nil)), nil
}

// SameContent reports whether two files have identical checksums
func SameContent(fsys types.FS, a, b string) (bool, error) {
	sumA, err := CalculateFileChecksum(fsys, a)
	if err != nil {
		return false, err
	}
	sumB, err := CalculateFileChecksum(fsys, b)
	if err != nil {
		return false, err
	}
	return sumA == sumB, nil
}
