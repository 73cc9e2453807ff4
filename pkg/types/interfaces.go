package types

import (
	"io"
	"io/fs"
)

// FS is the filesystem interface required for dotdeploy operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Open(name string) (io.ReadCloser, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Chmod(name string, mode fs.FileMode) error

	// CreateTemp creates a new file in dir whose name starts from pattern,
	// the same way os.CreateTemp does
	CreateTemp(dir, pattern string) (TempFile, error)

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
	Lstat(name string) (fs.FileInfo, error)

	// Other operations
	Rename(oldpath, newpath string) error
	Remove(name string) error
	RemoveAll(path string) error
}

// TempFile is the writable handle returned by FS.CreateTemp
type TempFile interface {
	io.WriteCloser
	Name() string
}
