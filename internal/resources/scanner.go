// Package resources finds candidate resource folders inside a module.
package resources

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	apperrors "filebrowser/internal/errors"
	"filebrowser/internal/fileinfo"
	"filebrowser/internal/project"
)

// Scanner evaluates module-relative globs and keeps the directories they name.
type Scanner struct {
	globs  []string
	finder fileinfo.Finder
}

// NewScanner validates globs and returns a scanner resolving matches through
// finder.
func NewScanner(globs []string, finder fileinfo.Finder) (*Scanner, error) {
	for _, g := range globs {
		if !doublestar.ValidatePattern(g) {
			return nil, apperrors.NewConfigError("resourceGlobs", "invalid pattern "+g, doublestar.ErrBadPattern)
		}
	}
	return &Scanner{globs: globs, finder: finder}, nil
}

// ResourceFolders returns the existing directories matched by any glob,
// sorted by canonical path without duplicates.
func (s *Scanner) ResourceFolders(m *project.Module) ([]fileinfo.Entry, error) {
	if m == nil || len(s.globs) == 0 {
		return nil, nil
	}
	fsys := os.DirFS(m.Dir)

	p := pool.NewWithResults[[]string]().WithErrors()
	for _, g := range s.globs {
		p.Go(func() ([]string, error) {
			return doublestar.Glob(fsys, g)
		})
	}
	batches, err := p.Wait()
	if err != nil {
		return nil, apperrors.NewFileSystemError("scan", m.Dir, "resource folder glob failed", err)
	}

	seen := make(map[string]bool)
	var found []fileinfo.Entry
	for _, batch := range batches {
		for _, rel := range batch {
			e, err := s.finder.FindByPath(fileinfo.JoinPath(m.Dir, filepath.FromSlash(rel)))
			if err != nil {
				return nil, err
			}
			if e == nil || !e.IsDir() || seen[e.CanonicalPath()] {
				continue
			}
			seen[e.CanonicalPath()] = true
			found = append(found, e)
		}
	}
	sort.Slice(found, func(i, j int) bool {
		return found[i].CanonicalPath() < found[j].CanonicalPath()
	})

	log.Debug().Str("module", m.Name).Int("found", len(found)).Msg("resource folders scanned")
	return found, nil
}
