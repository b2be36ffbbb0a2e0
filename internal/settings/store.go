// Package settings persists per-project picker state in fyne preferences.
// Paths are stored with macros collapsed and expanded again on read.
package settings

import (
	"fyne.io/fyne/v2"
	"github.com/rs/zerolog/log"

	"filebrowser/internal/constants"
	apperrors "filebrowser/internal/errors"
	"filebrowser/internal/fileinfo"
	"filebrowser/internal/macro"
	"filebrowser/internal/project"
)

// Store is the settings for one project.
type Store struct {
	prefs  fyne.Preferences
	prefix string
	scope  *macro.Scope
	finder fileinfo.Finder

	// OnSaved is called with every expanded path passed to SaveLastDirectory.
	OnSaved func(path string)
}

// NewStore creates a store keyed by p's name. scope may be nil, in which case
// paths are stored verbatim.
func NewStore(prefs fyne.Preferences, p *project.Project, scope *macro.Scope, finder fileinfo.Finder) *Store {
	prefix := ""
	if p != nil {
		prefix = p.Name + "."
	}
	return &Store{prefs: prefs, prefix: prefix, scope: scope, finder: finder}
}

// LastDirectory returns the remembered directory as stored (macros intact).
func (s *Store) LastDirectory() string {
	return s.prefs.String(s.key(constants.PrefLastImageFolder))
}

// SaveLastDirectory remembers path.
func (s *Store) SaveLastDirectory(path string) {
	s.prefs.SetString(s.key(constants.PrefLastImageFolder), s.collapse(path))
	if s.OnSaved != nil {
		s.OnSaved(path)
	}
}

// ResourceRoot returns the stored resource root when it still names an
// existing directory. Stale or unexpandable values yield nil.
func (s *Store) ResourceRoot() (fileinfo.Entry, error) {
	raw := s.prefs.String(s.key(constants.PrefResourceRoot))
	if raw == "" {
		return nil, nil
	}
	expanded := raw
	if s.scope != nil {
		var ok bool
		if expanded, ok = s.scope.Expand(raw); !ok {
			log.Debug().Str("path", raw).Msg("stored resource root names an unknown macro")
			return nil, nil
		}
	}
	if s.finder == nil {
		return nil, nil
	}
	e, err := s.finder.FindByPath(expanded)
	if err != nil {
		return nil, apperrors.NewSettingsError("resourceRoot", raw, "lookup failed", err)
	}
	if e == nil || !e.IsDir() {
		return nil, nil
	}
	return e, nil
}

// SaveResourceRoot remembers path as the resource root. An empty path clears it.
func (s *Store) SaveResourceRoot(path string) {
	key := s.key(constants.PrefResourceRoot)
	if path == "" {
		s.prefs.RemoveValue(key)
		return
	}
	s.prefs.SetString(key, s.collapse(path))
}

func (s *Store) key(name string) string {
	return s.prefix + name
}

func (s *Store) collapse(path string) string {
	if s.scope == nil {
		return path
	}
	return s.scope.Collapse(path)
}
