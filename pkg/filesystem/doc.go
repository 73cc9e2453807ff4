// Package filesystem provides filesystem implementations for dotdeploy.
//
// Every implementation of the types.FS interface in this package is backed
// by spf13/afero: NewOS wraps the real filesystem, NewMemory an in-memory
// one. Symbolic links are only available when the underlying afero.Fs
// supports them (the OS filesystem does, MemMapFs does not).
package filesystem
