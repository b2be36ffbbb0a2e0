package fileinfo

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
)

// VFS is the minimal provider surface the picker needs: metadata lookups.
// Listing is left to the host chooser.
type VFS interface {
	Stat(path string) (os.FileInfo, error)
	// Base returns the last element of a provider-native path
	Base(p string) string
}

// LocalFS implements VFS using the host OS.
type LocalFS struct{}

func (LocalFS) Stat(path string) (os.FileInfo, error) { return os.Stat(path) }
func (LocalFS) Base(p string) string                  { return filepath.Base(p) }

func isNotDir(err error) bool {
	return errors.Is(err, syscall.ENOTDIR)
}
