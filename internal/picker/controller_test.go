package picker

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filebrowser/internal/descriptor"
	"filebrowser/internal/fileinfo"
	"filebrowser/internal/macro"
	"filebrowser/internal/notify"
	"filebrowser/internal/project"
)

type mapFinder struct {
	dirs  map[string]bool
	err   error
	tried []string
}

func (f *mapFinder) FindByPath(p string) (fileinfo.Entry, error) {
	f.tried = append(f.tried, p)
	if f.err != nil {
		return nil, f.err
	}
	if f.dirs[p] {
		return fileinfo.NewEntry(p, true), nil
	}
	return nil, nil
}

type fakeSettings struct {
	last    string
	saved   []string
	root    fileinfo.Entry
	rootErr error
}

func (s *fakeSettings) LastDirectory() string                 { return s.last }
func (s *fakeSettings) SaveLastDirectory(p string)            { s.saved = append(s.saved, p) }
func (s *fakeSettings) ResourceRoot() (fileinfo.Entry, error) { return s.root, s.rootErr }

type fakeChooser struct {
	calls   int
	initial fileinfo.Entry
	result  []fileinfo.Entry
}

func (c *fakeChooser) Choose(_ *descriptor.Descriptor, initial fileinfo.Entry, done func([]fileinfo.Entry)) {
	c.calls++
	c.initial = initial
	done(c.result)
}

type fakeDialog struct {
	calls      int
	candidates []fileinfo.Entry
	done       func(fileinfo.Entry)
}

func (d *fakeDialog) ChooseResourceDir(candidates []fileinfo.Entry, done func(fileinfo.Entry)) {
	d.calls++
	d.candidates = candidates
	d.done = done
}

type fakeResources struct {
	found []fileinfo.Entry
	err   error
}

func (r *fakeResources) ResourceFolders(*project.Module) ([]fileinfo.Entry, error) {
	return r.found, r.err
}

type collector struct{ got []string }

func (c *collector) FileSelected(f fileinfo.Entry) { c.got = append(c.got, f.CanonicalPath()) }

func dir(p string) fileinfo.Entry { return fileinfo.NewEntry(p, true) }

func folderDescriptor() *descriptor.Descriptor {
	return &descriptor.Descriptor{Title: "Select", SelectFolders: true}
}

func TestDropKeepsFirstEntryOnly(t *testing.T) {
	c := New(folderDescriptor(), Host{})
	l := &collector{}
	c.SetSelectionListener(l)

	c.OnFilesDropped([]fileinfo.Entry{dir("/x/a"), dir("/x/b"), dir("/x/c")})

	assert.Equal(t, "/x/a", c.Text())
	assert.Equal(t, []string{"/x/a"}, l.got)
}

func TestDropNothingIsNoop(t *testing.T) {
	c := New(folderDescriptor(), Host{})
	c.SetText("/keep")

	c.DropFiles(nil)

	assert.Equal(t, "/keep", c.Text())
}

func TestDropSavesLastDirectory(t *testing.T) {
	s := &fakeSettings{}
	c := New(folderDescriptor(), Host{})
	c.Init(project.New("/p"), s)

	c.OnFilesDropped([]fileinfo.Entry{dir("/x/a")})

	assert.Equal(t, []string{"/x/a"}, s.saved)
}

func TestListenerReplaysCurrentValue(t *testing.T) {
	c := New(folderDescriptor(), Host{})
	c.SetText("/already")

	l := &collector{}
	c.SetSelectionListener(l)

	assert.Equal(t, []string{"/already"}, l.got)
}

func TestEmptyTextIsNotDelivered(t *testing.T) {
	c := New(folderDescriptor(), Host{})
	l := &collector{}
	c.SetSelectionListener(l)

	c.SetText("")

	assert.Empty(t, l.got)
	assert.Equal(t, "", c.Text())
}

func TestReplacedListenerStopsReceiving(t *testing.T) {
	c := New(folderDescriptor(), Host{})
	first, second := &collector{}, &collector{}
	c.SetSelectionListener(first)
	c.SetSelectionListener(second)

	c.SetText("/v")

	assert.Empty(t, first.got)
	assert.Equal(t, []string{"/v"}, second.got)
}

func TestSameValueIsDeliveredTwice(t *testing.T) {
	c := New(folderDescriptor(), Host{})
	l := &collector{}
	c.SetSelectionListener(notify.ListenerFunc(l.FileSelected))

	c.SetText("/v")
	c.SetText("/v")

	assert.Equal(t, []string{"/v", "/v"}, l.got)
}

func TestBrowseConfirmSavesAndSets(t *testing.T) {
	finder := &mapFinder{dirs: map[string]bool{"/home/u": true}}
	ch := &fakeChooser{result: []fileinfo.Entry{dir("/home/u/pics"), dir("/home/u/other")}}
	s := &fakeSettings{last: "/home/u/gone/deeper"}
	c := New(folderDescriptor(), Host{Finder: finder, Chooser: ch})
	c.Init(project.New("/p"), s)

	require.NoError(t, c.OnBrowseRequested())

	assert.Equal(t, 1, ch.calls)
	require.NotNil(t, ch.initial)
	assert.Equal(t, "/home/u", ch.initial.CanonicalPath())
	assert.Equal(t, "/home/u/pics", c.Text())
	assert.Equal(t, []string{"/home/u/pics"}, s.saved)
}

func TestBrowseCancelChangesNothing(t *testing.T) {
	ch := &fakeChooser{}
	s := &fakeSettings{}
	c := New(folderDescriptor(), Host{Finder: &mapFinder{}, Chooser: ch})
	c.Init(project.New("/p"), s)
	c.SetText("/before")
	l := &collector{}
	c.SetSelectionListener(l)

	require.NoError(t, c.OnBrowseRequested())

	assert.Equal(t, "/before", c.Text())
	assert.Empty(t, s.saved)
	assert.Equal(t, []string{"/before"}, l.got)
}

func TestBrowseStartsAtCurrentValue(t *testing.T) {
	finder := &mapFinder{dirs: map[string]bool{"/cur": true, "/last": true}}
	ch := &fakeChooser{}
	c := New(folderDescriptor(), Host{Finder: finder, Chooser: ch})
	c.Init(project.New("/p"), &fakeSettings{last: "/last"})
	c.SetText("/cur")

	require.NoError(t, c.OnBrowseRequested())

	require.NotNil(t, ch.initial)
	assert.Equal(t, "/cur", ch.initial.CanonicalPath())
}

func TestBrowseExpandsRememberedMacro(t *testing.T) {
	svc, err := macro.NewService(nil)
	require.NoError(t, err)
	finder := &mapFinder{dirs: map[string]bool{"/work/app/res": true}}
	ch := &fakeChooser{}
	p := project.New("/work/app")
	c := New(folderDescriptor(), Host{Finder: finder, Macros: svc.ForProject(p, nil), Chooser: ch})
	c.Init(p, &fakeSettings{last: "$PROJECT_DIR$/res/icons"})

	require.NoError(t, c.OnBrowseRequested())

	require.NotNil(t, ch.initial)
	assert.Equal(t, "/work/app/res", ch.initial.CanonicalPath())
}

func TestBrowseLookupErrorPropagates(t *testing.T) {
	boom := errors.New("lookup failed")
	ch := &fakeChooser{}
	c := New(folderDescriptor(), Host{Finder: &mapFinder{err: boom}, Chooser: ch})
	c.Init(project.New("/p"), &fakeSettings{last: "/a/b"})

	err := c.OnBrowseRequested()

	assert.ErrorIs(t, err, boom)
	assert.Zero(t, ch.calls)
}

func TestResourceRootFromSettings(t *testing.T) {
	dlg := &fakeDialog{}
	res := &fakeResources{found: []fileinfo.Entry{dir("/m/res")}}
	c := New(folderDescriptor(), Host{Dialogs: dlg, Resources: res})
	p := project.New("/m")

	require.NoError(t, c.InitWithResourceRoot(p, p.Module(""), &fakeSettings{root: dir("/m/stored")}))

	assert.Equal(t, StateResolved, c.ResourceRootState())
	assert.Equal(t, "/m/stored", c.Text())
	assert.Zero(t, dlg.calls)
}

func TestResourceRootCardinality(t *testing.T) {
	tests := []struct {
		name        string
		found       []fileinfo.Entry
		wantState   ResourceRootState
		wantText    string
		wantDialogs int
	}{
		{name: "none", wantState: StateEmpty},
		{name: "one", found: []fileinfo.Entry{dir("/m/res")}, wantState: StateAutoSelected, wantText: "/m/res"},
		{name: "two", found: []fileinfo.Entry{dir("/m/a/res"), dir("/m/b/res")}, wantState: StateAwaitingUserChoice, wantDialogs: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dlg := &fakeDialog{}
			c := New(folderDescriptor(), Host{Dialogs: dlg, Resources: &fakeResources{found: tt.found}})
			p := project.New("/m")

			require.NoError(t, c.InitWithResourceRoot(p, p.Module(""), &fakeSettings{}))

			assert.Equal(t, tt.wantState, c.ResourceRootState())
			assert.Equal(t, tt.wantText, c.Text())
			assert.Equal(t, tt.wantDialogs, dlg.calls)
		})
	}
}

func TestResourceRootUserChoice(t *testing.T) {
	dlg := &fakeDialog{}
	found := []fileinfo.Entry{dir("/m/a/res"), dir("/m/b/res")}
	c := New(folderDescriptor(), Host{Dialogs: dlg, Resources: &fakeResources{found: found}})
	l := &collector{}
	c.SetSelectionListener(l)
	p := project.New("/m")
	require.NoError(t, c.InitWithResourceRoot(p, p.Module(""), &fakeSettings{}))
	require.Len(t, dlg.candidates, 2)

	dlg.done(found[1])

	assert.Equal(t, StateUserSelected, c.ResourceRootState())
	assert.Equal(t, "/m/b/res", c.Text())
	assert.Equal(t, []string{"/m/b/res"}, l.got)
}

func TestResourceRootDialogDismissed(t *testing.T) {
	dlg := &fakeDialog{}
	found := []fileinfo.Entry{dir("/m/a/res"), dir("/m/b/res")}
	c := New(folderDescriptor(), Host{Dialogs: dlg, Resources: &fakeResources{found: found}})
	p := project.New("/m")
	require.NoError(t, c.InitWithResourceRoot(p, p.Module(""), &fakeSettings{}))

	dlg.done(nil)

	assert.Equal(t, StateAbandoned, c.ResourceRootState())
	assert.Equal(t, "", c.Text())
}

func TestStaleResourceChoiceIgnored(t *testing.T) {
	dlg := &fakeDialog{}
	res := &fakeResources{found: []fileinfo.Entry{dir("/m/a/res"), dir("/m/b/res")}}
	c := New(folderDescriptor(), Host{Dialogs: dlg, Resources: res})
	p := project.New("/m")
	require.NoError(t, c.InitWithResourceRoot(p, p.Module(""), &fakeSettings{}))
	stale := dlg.done

	require.NoError(t, c.InitWithResourceRoot(p, p.Module(""), &fakeSettings{}))
	stale(dir("/m/a/res"))

	assert.Equal(t, StateAwaitingUserChoice, c.ResourceRootState())
	assert.Equal(t, "", c.Text())
}

func TestResourceRootErrorsPropagate(t *testing.T) {
	boom := errors.New("scan failed")
	p := project.New("/m")

	c := New(folderDescriptor(), Host{Resources: &fakeResources{err: boom}})
	assert.ErrorIs(t, c.InitWithResourceRoot(p, p.Module(""), &fakeSettings{}), boom)

	c = New(folderDescriptor(), Host{})
	assert.ErrorIs(t, c.InitWithResourceRoot(p, p.Module(""), &fakeSettings{rootErr: boom}), boom)
}

func TestStateNames(t *testing.T) {
	assert.Equal(t, "awaiting-user-choice", StateAwaitingUserChoice.String())
	assert.True(t, StateAbandoned.Terminal())
	assert.False(t, StateEnumerating.Terminal())
}

func TestOnChangedSeesEveryValue(t *testing.T) {
	c := New(folderDescriptor(), Host{})
	var seen []string
	c.OnChanged = func(v string) { seen = append(seen, v) }

	c.SetText("/a")
	c.SetText("")

	assert.Equal(t, []string{"/a", ""}, seen)
}
