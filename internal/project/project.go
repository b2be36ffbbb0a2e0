// Package project models the host containers a picker is scoped to: a
// project (macro scope, preference namespace) and its modules (where
// resource folders live).
package project

import (
	"path/filepath"
)

// Project is a workspace the picker operates in.
type Project struct {
	Name    string
	BaseDir string
}

// Module is a unit inside a project that owns resource folders.
type Module struct {
	Name    string
	Dir     string
	Project *Project
}

// New creates a project rooted at dir, named after its last path element.
func New(dir string) *Project {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	return &Project{Name: filepath.Base(abs), BaseDir: abs}
}

// Module returns a module at rel inside the project. An empty rel (or ".")
// means the project root doubles as the only module.
func (p *Project) Module(rel string) *Module {
	dir := p.BaseDir
	name := p.Name
	if rel != "" && rel != "." {
		dir = filepath.Join(p.BaseDir, rel)
		name = filepath.Base(dir)
	}
	return &Module{Name: name, Dir: dir, Project: p}
}
