package filesystem

import (
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSSymlinks(t *testing.T) {
	dir := t.TempDir()
	fsys := NewOS()

	source := filepath.Join(dir, "vimrc")
	link := filepath.Join(dir, ".vimrc")
	require.NoError(t, fsys.WriteFile(source, []byte("syntax on\n"), 0644))
	require.NoError(t, fsys.Symlink(source, link))

	target, err := fsys.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, source, target)

	info, err := fsys.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&fs.ModeSymlink)

	info, err = fsys.Stat(link)
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
}

func TestMemorySymlinksUnsupported(t *testing.T) {
	fsys := NewMemory()

	err := fsys.Symlink("/a", "/b")
	require.Error(t, err)
	assert.True(t, errors.Is(err, afero.ErrNoSymlink))

	_, err = fsys.Readlink("/b")
	require.Error(t, err)
	assert.True(t, errors.Is(err, afero.ErrNoReadlink))
}

func TestCreateTempAndRename(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, fsys.MkdirAll("/home/me", 0755))

	tmp, err := fsys.CreateTemp("/home/me", ".gitconfig.tmp-*")
	require.NoError(t, err)
	_, err = tmp.Write([]byte("[user]\n"))
	require.NoError(t, err)
	require.NoError(t, tmp.Close())
	tmpName := tmp.Name()
	assert.Equal(t, "/home/me", filepath.Dir(tmpName))

	require.NoError(t, fsys.Rename(tmpName, "/home/me/.gitconfig"))

	data, err := fsys.ReadFile("/home/me/.gitconfig")
	require.NoError(t, err)
	assert.Equal(t, "[user]\n", string(data))

	_, err = fsys.Stat(tmpName)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestOpenAndReadDir(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, fsys.WriteFile("/src/b", []byte("b"), 0644))
	require.NoError(t, fsys.WriteFile("/src/a", []byte("a"), 0644))
	require.NoError(t, fsys.MkdirAll("/src/sub", 0755))

	entries, err := fsys.ReadDir("/src")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "a", entries[0].Name())
	assert.Equal(t, "b", entries[1].Name())
	assert.True(t, entries[2].IsDir())

	f, err := fsys.Open("/src/a")
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, "a", string(data))

	_, err = fsys.ReadFile("/src/sub")
	assert.Error(t, err)
}

func TestChmod(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, fsys.WriteFile("/script", []byte("#!/bin/sh\n"), 0644))
	require.NoError(t, fsys.Chmod("/script", 0755))

	info, err := fsys.Stat("/script")
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0755), info.Mode().Perm())
}
