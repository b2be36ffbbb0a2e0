package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filebrowser/internal/fileinfo"
	"filebrowser/internal/macro"
	"filebrowser/internal/project"
)

type failingFinder struct{ err error }

func (f failingFinder) FindByPath(string) (fileinfo.Entry, error) { return nil, f.err }

func newScope(t *testing.T, p *project.Project) *macro.Scope {
	t.Helper()
	svc, err := macro.NewService(nil)
	require.NoError(t, err)
	return svc.ForProject(p, nil)
}

func realDir(t *testing.T) string {
	t.Helper()
	d, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return d
}

func TestLastDirectoryCollapsesMacros(t *testing.T) {
	app := test.NewTempApp(t)
	root := realDir(t)
	p := project.New(root)
	s := NewStore(app.Preferences(), p, newScope(t, p), fileinfo.NewPortableFinder(nil))

	var saved []string
	s.OnSaved = func(path string) { saved = append(saved, path) }

	full := filepath.ToSlash(filepath.Join(root, "res", "icons"))
	s.SaveLastDirectory(full)

	assert.Equal(t, "$PROJECT_DIR$/res/icons", s.LastDirectory())
	assert.Equal(t, []string{full}, saved)
	assert.Equal(t, "$PROJECT_DIR$/res/icons", app.Preferences().String(p.Name+".lastImageFolder"))
}

func TestModuleScopedPathsExpandBack(t *testing.T) {
	app := test.NewTempApp(t)
	root := realDir(t)
	resDir := filepath.Join(root, "res")
	require.NoError(t, os.Mkdir(resDir, 0o755))
	p := project.New(root)
	svc, err := macro.NewService(nil)
	require.NoError(t, err)
	scope := svc.ForProject(p, p.Module(""))
	s := NewStore(app.Preferences(), p, scope, fileinfo.NewPortableFinder(nil))

	s.SaveLastDirectory(filepath.ToSlash(filepath.Join(resDir, "icons")))
	expanded, ok := scope.Expand(s.LastDirectory())
	require.True(t, ok)
	assert.Equal(t, filepath.ToSlash(filepath.Join(resDir, "icons")), expanded)

	s.SaveResourceRoot(filepath.ToSlash(resDir))
	e, err := s.ResourceRoot()
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, filepath.ToSlash(resDir), e.CanonicalPath())
}

func TestLastDirectoryScopedPerProject(t *testing.T) {
	app := test.NewTempApp(t)
	a := NewStore(app.Preferences(), &project.Project{Name: "a", BaseDir: "/a"}, nil, nil)
	b := NewStore(app.Preferences(), &project.Project{Name: "b", BaseDir: "/b"}, nil, nil)

	a.SaveLastDirectory("/somewhere")

	assert.Equal(t, "/somewhere", a.LastDirectory())
	assert.Equal(t, "", b.LastDirectory())
}

func TestResourceRootRoundTrip(t *testing.T) {
	app := test.NewTempApp(t)
	root := realDir(t)
	resDir := filepath.Join(root, "res")
	require.NoError(t, os.Mkdir(resDir, 0o755))
	p := project.New(root)
	s := NewStore(app.Preferences(), p, newScope(t, p), fileinfo.NewPortableFinder(nil))

	e, err := s.ResourceRoot()
	require.NoError(t, err)
	assert.Nil(t, e)

	s.SaveResourceRoot(filepath.ToSlash(resDir))
	assert.Equal(t, "$PROJECT_DIR$/res", app.Preferences().String(p.Name+".resourceRoot"))

	e, err = s.ResourceRoot()
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, filepath.ToSlash(resDir), e.CanonicalPath())

	s.SaveResourceRoot("")
	e, err = s.ResourceRoot()
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestResourceRootStaleOrFileIsNil(t *testing.T) {
	app := test.NewTempApp(t)
	root := realDir(t)
	file := filepath.Join(root, "res")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	p := project.New(root)
	s := NewStore(app.Preferences(), p, newScope(t, p), fileinfo.NewPortableFinder(nil))

	s.SaveResourceRoot(filepath.ToSlash(file))
	e, err := s.ResourceRoot()
	require.NoError(t, err)
	assert.Nil(t, e)

	s.SaveResourceRoot(filepath.ToSlash(filepath.Join(root, "gone")))
	e, err = s.ResourceRoot()
	require.NoError(t, err)
	assert.Nil(t, e)

	s.SaveResourceRoot("$NOT_DEFINED$/res")
	e, err = s.ResourceRoot()
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestResourceRootLookupError(t *testing.T) {
	app := test.NewTempApp(t)
	boom := errors.New("share unreachable")
	s := NewStore(app.Preferences(), &project.Project{Name: "p", BaseDir: "/p"}, nil, failingFinder{err: boom})

	s.SaveResourceRoot("smb://host/share/res")
	_, err := s.ResourceRoot()

	assert.ErrorIs(t, err, boom)
}
