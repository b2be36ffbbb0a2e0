package picker

import (
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filebrowser/internal/fileinfo"
	"filebrowser/internal/macro"
	"filebrowser/internal/project"
	"filebrowser/internal/settings"
)

// The module dir equals the project dir, so stored paths collapse to
// $MODULE_DIR$; browsing must still find their closest existing ancestor.
func TestBrowseReadsBackStoredModuleScopedDirectory(t *testing.T) {
	app := test.NewTempApp(t)
	base, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	drawable := filepath.Join(base, "res", "drawable")
	require.NoError(t, os.MkdirAll(drawable, 0o755))

	svc, err := macro.NewService(nil)
	require.NoError(t, err)
	proj := project.New(base)
	scope := svc.ForProject(proj, proj.Module(""))
	finder := fileinfo.NewPortableFinder(nil)
	store := settings.NewStore(app.Preferences(), proj, scope, finder)

	ch := &fakeChooser{}
	c := New(folderDescriptor(), Host{Finder: finder, Macros: scope, Chooser: ch})
	c.Init(proj, store)

	store.SaveLastDirectory(filepath.ToSlash(filepath.Join(drawable, "gone")))
	require.Contains(t, store.LastDirectory(), "$")

	require.NoError(t, c.OnBrowseRequested())

	require.Equal(t, 1, ch.calls)
	require.NotNil(t, ch.initial)
	assert.Equal(t, filepath.ToSlash(drawable), ch.initial.CanonicalPath())
}
