package fileinfo

import (
	"os"
	"path"
	"path/filepath"
)

// Entry is a reference to a filesystem node produced by a Finder.
// Callers only query it; they never create or release the underlying node.
type Entry interface {
	Name() string
	IsDir() bool
	CanonicalPath() string
	Exists() bool
}

// node is an Entry resolved by a Finder at lookup time.
type node struct {
	name      string
	canonical string
	dir       bool
}

func (n *node) Name() string          { return n.name }
func (n *node) IsDir() bool           { return n.dir }
func (n *node) CanonicalPath() string { return n.canonical }
func (n *node) Exists() bool          { return true }

func (n *node) String() string { return n.canonical }

// NewEntry builds an Entry for a node known to exist. Adapters use it when
// the host already holds a resolved path (dialog results, dropped URIs).
func NewEntry(canonical string, dir bool) Entry {
	return &node{name: BaseName(canonical), canonical: canonical, dir: dir}
}

// FileRef is a lazy reference to a path that may or may not exist. It is what
// selection listeners receive: no lookup happens until a method asks for it.
type FileRef struct {
	p string
}

// NewFileRef wraps p without touching the filesystem.
func NewFileRef(p string) *FileRef {
	return &FileRef{p: p}
}

func (f *FileRef) Name() string {
	if IsSMBDisplay(f.p) {
		return BaseName(f.p)
	}
	return path.Base(filepath.ToSlash(f.p))
}

// CanonicalPath returns the wrapped path as given.
func (f *FileRef) CanonicalPath() string { return f.p }

func (f *FileRef) IsDir() bool {
	fi, err := StatPortable(f.p)
	return err == nil && fi.IsDir()
}

func (f *FileRef) Exists() bool {
	_, err := StatPortable(f.p)
	return err == nil
}

func (f *FileRef) String() string { return f.p }

// canonicalLocal returns the absolute, symlink-free, slash-separated form of
// a local path. Symlink resolution failures fall back to the absolute path.
func canonicalLocal(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		abs = p
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	return filepath.ToSlash(abs)
}

// isMissing reports whether a stat error means "no such node" rather than a
// failure worth surfacing.
func isMissing(err error) bool {
	return os.IsNotExist(err) || isNotDir(err)
}
