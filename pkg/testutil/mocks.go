package testutil

import (
	"io"
	"io/fs"
	"time"

	"github.com/arthur-debert/dotdeploy/pkg/types"
	"github.com/stretchr/testify/mock"
)

// MockFS implements types.FS for testing
type MockFS struct {
	mock.Mock
}

var _ types.FS = (*MockFS)(nil)

func (m *MockFS) Stat(name string) (fs.FileInfo, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(fs.FileInfo), args.Error(1)
}

func (m *MockFS) Lstat(name string) (fs.FileInfo, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(fs.FileInfo), args.Error(1)
}

func (m *MockFS) Open(name string) (io.ReadCloser, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockFS) ReadFile(name string) ([]byte, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	args := m.Called(name, data, perm)
	return args.Error(0)
}

func (m *MockFS) Chmod(name string, mode fs.FileMode) error {
	args := m.Called(name, mode)
	return args.Error(0)
}

func (m *MockFS) CreateTemp(dir, pattern string) (types.TempFile, error) {
	args := m.Called(dir, pattern)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(types.TempFile), args.Error(1)
}

func (m *MockFS) MkdirAll(path string, perm fs.FileMode) error {
	args := m.Called(path, perm)
	return args.Error(0)
}

func (m *MockFS) ReadDir(name string) ([]fs.DirEntry, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fs.DirEntry), args.Error(1)
}

func (m *MockFS) Symlink(oldname, newname string) error {
	args := m.Called(oldname, newname)
	return args.Error(0)
}

func (m *MockFS) Readlink(name string) (string, error) {
	args := m.Called(name)
	return args.String(0), args.Error(1)
}

func (m *MockFS) Rename(oldpath, newpath string) error {
	args := m.Called(oldpath, newpath)
	return args.Error(0)
}

func (m *MockFS) Remove(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func (m *MockFS) RemoveAll(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

// MockFileInfo is a fixed fs.FileInfo for mock filesystems
type MockFileInfo struct {
	FileName string
	FileMode fs.FileMode
	FileSize int64
}

func (fi MockFileInfo) Name() string       { return fi.FileName }
func (fi MockFileInfo) Size() int64        { return fi.FileSize }
func (fi MockFileInfo) Mode() fs.FileMode  { return fi.FileMode }
func (fi MockFileInfo) ModTime() time.Time { return time.Time{} }
func (fi MockFileInfo) IsDir() bool        { return fi.FileMode.IsDir() }
func (fi MockFileInfo) Sys() interface{}   { return nil }

// FileInfo returns a MockFileInfo for a regular file
func FileInfo(name string) MockFileInfo {
	return MockFileInfo{FileName: name, FileMode: 0644}
}

// DirInfo returns a MockFileInfo for a directory
func DirInfo(name string) MockFileInfo {
	return MockFileInfo{FileName: name, FileMode: fs.ModeDir | 0755}
}
