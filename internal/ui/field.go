package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog/log"

	"filebrowser/internal/fileinfo"
	"filebrowser/internal/picker"
)

// FileBrowserField is a read-only path entry with a browse button. The text
// changes only through browse, drop or the controller.
type FileBrowserField struct {
	widget.BaseWidget
	ctrl   *picker.Controller
	parent fyne.Window
	finder fileinfo.Finder

	entry  *widget.Entry
	button *widget.Button
}

// NewFileBrowserField creates a field driving ctrl. It takes over
// ctrl.OnChanged to keep the entry in sync.
func NewFileBrowserField(ctrl *picker.Controller, parent fyne.Window, finder fileinfo.Finder) *FileBrowserField {
	f := &FileBrowserField{ctrl: ctrl, parent: parent, finder: finder}

	f.entry = widget.NewEntry()
	f.entry.SetText(ctrl.Text())
	f.entry.Disable()
	if d := ctrl.Descriptor(); d != nil {
		f.entry.SetPlaceHolder(d.Title)
	}

	f.button = widget.NewButtonWithIcon("", theme.FolderOpenIcon(), f.Browse)
	ctrl.OnChanged = func(v string) { f.entry.SetText(v) }

	f.ExtendBaseWidget(f)
	return f
}

// CreateRenderer creates the widget renderer
func (f *FileBrowserField) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewBorder(nil, nil, nil, f.button, f.entry))
}

// Text returns the displayed path.
func (f *FileBrowserField) Text() string {
	return f.entry.Text
}

// Browse opens the chooser; lookup failures are reported in a dialog.
func (f *FileBrowserField) Browse() {
	if err := f.ctrl.OnBrowseRequested(); err != nil {
		ShowErrorDialog(f.parent, "browse", err)
	}
}

// DropURIs delivers dropped URIs the descriptor accepts. When none qualify the
// value is left alone and the user is told why.
func (f *FileBrowserField) DropURIs(uris []fyne.URI) {
	entries := droppedEntries(f.ctrl, f.finder, uris)
	if len(entries) == 0 && len(uris) > 0 {
		ShowMessageDialog(f.parent, f.title(), "Nothing that was dropped can be used here.")
		return
	}
	f.ctrl.DropFiles(entries)
}

func (f *FileBrowserField) title() string {
	if d := f.ctrl.Descriptor(); d != nil && d.Title != "" {
		return d.Title
	}
	return "Drop"
}

func (f *FileBrowserField) contains(pos fyne.Position) bool {
	app := fyne.CurrentApp()
	if app == nil {
		return false
	}
	origin := app.Driver().AbsolutePositionForObject(f)
	size := f.Size()
	return pos.X >= origin.X && pos.Y >= origin.Y &&
		pos.X < origin.X+size.Width && pos.Y < origin.Y+size.Height
}

// droppedEntries resolves dropped URIs and keeps the ones target's descriptor
// would list and allow selecting, in drop order.
func droppedEntries(target picker.DropTarget, finder fileinfo.Finder, uris []fyne.URI) []fileinfo.Entry {
	d := target.Descriptor()
	var out []fileinfo.Entry
	for _, uri := range uris {
		e := entryForURI(finder, uri, false)
		if e == nil {
			continue
		}
		if d != nil && (!d.IsVisible(e, target.IsHiddenShown()) || !d.IsSelectable(e)) {
			log.Debug().Str("path", e.CanonicalPath()).Msg("drop rejected by descriptor")
			continue
		}
		out = append(out, e)
	}
	return out
}

// InstallDropHandler routes window drops to the field under the pointer.
// With a single field every drop goes to it.
func InstallDropHandler(win fyne.Window, fields ...*FileBrowserField) {
	win.SetOnDropped(func(pos fyne.Position, uris []fyne.URI) {
		if len(fields) == 1 {
			fields[0].DropURIs(uris)
			return
		}
		for _, f := range fields {
			if f.contains(pos) {
				f.DropURIs(uris)
				return
			}
		}
		log.Debug().Int("uris", len(uris)).Msg("drop outside any picker")
	})
}
