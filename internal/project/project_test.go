package project

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAndModule(t *testing.T) {
	dir := t.TempDir()
	p := New(dir)
	assert.Equal(t, filepath.Base(dir), p.Name)
	assert.True(t, filepath.IsAbs(p.BaseDir))

	root := p.Module("")
	assert.Equal(t, p.BaseDir, root.Dir)
	assert.Equal(t, p.Name, root.Name)
	assert.Same(t, p, root.Project)

	app := p.Module("app")
	assert.Equal(t, filepath.Join(p.BaseDir, "app"), app.Dir)
	assert.Equal(t, "app", app.Name)
}
