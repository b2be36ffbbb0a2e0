// Package macro expands and collapses path macros of the form $NAME$.
//
// Stored paths keep macros so they survive a project moving on disk; every
// path handed to the filesystem is expanded first.
package macro

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "filebrowser/internal/errors"
	"filebrowser/internal/project"
)

// Built-in macro names.
const (
	ProjectDir  = "PROJECT_DIR"
	ProjectName = "PROJECT_NAME"
	ModuleDir   = "MODULE_DIR"
	UserHome    = "USER_HOME"
)

// Expander expands a macro-bearing path. ok is false when the path names a
// macro with no value in scope.
type Expander interface {
	Expand(p string) (expanded string, ok bool)
}

// Service holds the process-wide macro definitions and hands out
// project-scoped expanders.
type Service struct {
	global map[string]string
}

// NewService creates a service with USER_HOME plus the given definitions.
// Names must be non-empty and must not contain '$'.
func NewService(defs map[string]string) (*Service, error) {
	s := &Service{global: make(map[string]string)}
	if home, err := os.UserHomeDir(); err == nil {
		s.global[UserHome] = normalize(home)
	}
	for name, value := range defs {
		if name == "" || strings.ContainsRune(name, '$') {
			return nil, apperrors.NewMacroError("define", name, "invalid macro name", nil)
		}
		s.global[name] = normalize(value)
	}
	return s, nil
}

// ForProject returns an expander scoped to p (and optionally one module).
func (s *Service) ForProject(p *project.Project, m *project.Module) *Scope {
	vars := make(map[string]string, len(s.global)+3)
	for k, v := range s.global {
		vars[k] = v
	}
	if p != nil {
		vars[ProjectDir] = normalize(p.BaseDir)
		vars[ProjectName] = p.Name
	}
	if m != nil {
		vars[ModuleDir] = normalize(m.Dir)
	}
	return &Scope{vars: vars}
}

// Scope is a fixed set of macro values. It is immutable once built.
type Scope struct {
	vars map[string]string
}

// Expand replaces every $NAME$ token. A '$' that does not open a well-formed
// token is kept literally; a well-formed token without a value fails.
func (sc *Scope) Expand(p string) (string, bool) {
	if !strings.ContainsRune(p, '$') {
		return p, true
	}
	var b strings.Builder
	rest := p
	for {
		start := strings.IndexByte(rest, '$')
		if start < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[start+1:], '$')
		if end < 0 {
			b.WriteString(rest)
			break
		}
		name := rest[start+1 : start+1+end]
		if !isMacroName(name) {
			b.WriteString(rest[:start+1])
			rest = rest[start+1:]
			continue
		}
		value, ok := sc.vars[name]
		if !ok {
			return "", false
		}
		b.WriteString(rest[:start])
		b.WriteString(value)
		rest = rest[start+1+end+1:]
	}
	return b.String(), true
}

// Collapse replaces the longest macro value that prefixes p on a segment
// boundary with its token. Paths outside every macro are returned unchanged.
func (sc *Scope) Collapse(p string) string {
	slashed := normalize(p)
	names := make([]string, 0, len(sc.vars))
	for name, v := range sc.vars {
		if name == ProjectName || v == "" || v == "/" {
			continue
		}
		names = append(names, name)
	}
	// longest value first; ties broken by name for stable output
	sort.Slice(names, func(i, j int) bool {
		li, lj := len(sc.vars[names[i]]), len(sc.vars[names[j]])
		if li != lj {
			return li > lj
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		v := sc.vars[name]
		if slashed == v {
			return "$" + name + "$"
		}
		if strings.HasPrefix(slashed, v+"/") {
			return "$" + name + "$" + slashed[len(v):]
		}
	}
	return p
}

// Value returns the value of a single macro.
func (sc *Scope) Value(name string) (string, bool) {
	v, ok := sc.vars[name]
	return v, ok
}

func isMacroName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z'):
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func normalize(p string) string {
	return strings.TrimRight(filepath.ToSlash(p), "/")
}
