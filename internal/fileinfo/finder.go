package fileinfo

import (
	"errors"
	"os"
	"runtime"
	"strings"
	"sync"
)

// Finder looks up filesystem nodes by path. A miss is (nil, nil); an error
// means the lookup itself failed.
type Finder interface {
	FindByPath(p string) (Entry, error)
}

// PortableFinder resolves local paths through the OS and smb:// paths through
// an SMB provider (or the UNC redirector on Windows).
type PortableFinder struct {
	keys *Keychain
}

// NewPortableFinder creates a finder; keys may be nil for anonymous SMB access.
func NewPortableFinder(keys *Keychain) *PortableFinder {
	if keys == nil {
		keys = NewKeychain(nil, nil)
	}
	return &PortableFinder{keys: keys}
}

// FindByPath stats p and returns an Entry carrying its canonical path.
func (f *PortableFinder) FindByPath(p string) (Entry, error) {
	if strings.TrimSpace(p) == "" {
		return nil, nil
	}
	fi, parsed, err := f.stat(p)
	if err != nil {
		if errors.Is(err, errIncompleteSMB) || isMissing(err) {
			return nil, nil
		}
		return nil, err
	}
	canonical := parsed.Display
	if parsed.Scheme == SchemeFile {
		canonical = canonicalLocal(parsed.Native)
	}
	return &node{name: BaseName(canonical), canonical: canonical, dir: fi.IsDir()}, nil
}

func (f *PortableFinder) stat(p string) (os.FileInfo, Parsed, error) {
	vfs, parsed, err := f.resolve(p)
	if err != nil {
		return nil, parsed, err
	}
	fi, err := vfs.Stat(parsed.Native)
	return fi, parsed, err
}

// resolve maps input onto the provider that can stat it.
func (f *PortableFinder) resolve(input string) (VFS, Parsed, error) {
	parsed, err := parse(input)
	if err != nil {
		return nil, parsed, err
	}
	if parsed.Scheme == SchemeFile || runtime.GOOS == "windows" {
		return LocalFS{}, parsed, nil
	}
	if parsed.User != "" || parsed.Password != "" || parsed.Domain != "" {
		f.keys.Put(parsed.Host, parsed.Share, Credentials{
			Domain:   parsed.Domain,
			Username: parsed.User,
			Password: parsed.Password,
		})
	}
	return NewSMBFS(parsed.Host, parsed.Share, f.keys), parsed, nil
}

var (
	defaultMu     sync.RWMutex
	defaultFinder = NewPortableFinder(nil)
)

// SetDefaultFinder replaces the finder used by FileRef lookups.
func SetDefaultFinder(f *PortableFinder) {
	defaultMu.Lock()
	defaultFinder = f
	defaultMu.Unlock()
}

// StatPortable resolves the input path to a suitable provider and performs Stat.
func StatPortable(p string) (os.FileInfo, error) {
	defaultMu.RLock()
	f := defaultFinder
	defaultMu.RUnlock()
	fi, _, err := f.stat(p)
	return fi, err
}
