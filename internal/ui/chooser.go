package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"github.com/rs/zerolog/log"

	"filebrowser/internal/descriptor"
	apperrors "filebrowser/internal/errors"
	"filebrowser/internal/fileinfo"
)

// FyneChooser opens fyne's file or folder dialog for a descriptor.
// Descriptors that select files open the file dialog even when they also
// accept folders; folders still arrive by drop.
type FyneChooser struct {
	parent fyne.Window
	finder fileinfo.Finder
}

func NewFyneChooser(parent fyne.Window, finder fileinfo.Finder) *FyneChooser {
	return &FyneChooser{parent: parent, finder: finder}
}

// Choose shows the dialog at initial and calls done with the confirmed entry,
// or with nothing on cancel.
func (fc *FyneChooser) Choose(d *descriptor.Descriptor, initial fileinfo.Entry, done func([]fileinfo.Entry)) {
	var fd *dialog.FileDialog
	if d.FoldersOnly() {
		fd = dialog.NewFolderOpen(func(dir fyne.ListableURI, err error) {
			if err != nil || dir == nil {
				fc.cancelled(err, done)
				return
			}
			fc.deliver(d, dir, true, done)
		}, fc.parent)
	} else {
		fd = dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil || rc == nil {
				fc.cancelled(err, done)
				return
			}
			uri := rc.URI()
			rc.Close()
			fc.deliver(d, uri, false, done)
		}, fc.parent)
		fd.SetFilter(descriptorFilter{d: d})
	}

	if loc := locationFor(initial); loc != nil {
		fd.SetLocation(loc)
	}
	if fc.parent != nil {
		fd.Resize(fc.parent.Canvas().Size())
	}
	fd.Show()
}

func (fc *FyneChooser) cancelled(err error, done func([]fileinfo.Entry)) {
	if err != nil {
		ShowErrorDialog(fc.parent, "choose", apperrors.NewUIError("choose", "file dialog failed", err))
	}
	done(nil)
}

func (fc *FyneChooser) deliver(d *descriptor.Descriptor, uri fyne.URI, dir bool, done func([]fileinfo.Entry)) {
	e := entryForURI(fc.finder, uri, dir)
	if e == nil || !d.IsSelectable(e) {
		ShowMessageDialog(fc.parent, d.Title, uri.Name()+" cannot be used here.")
		done(nil)
		return
	}
	done([]fileinfo.Entry{e})
}

// entryForURI resolves a local URI through finder; nil means the node is
// gone or not local. Without a finder the URI is trusted as is.
func entryForURI(finder fileinfo.Finder, uri fyne.URI, dir bool) fileinfo.Entry {
	if uri == nil || uri.Scheme() != "file" {
		return nil
	}
	if finder == nil {
		return fileinfo.NewEntry(uri.Path(), dir)
	}
	e, err := finder.FindByPath(uri.Path())
	if err != nil {
		log.Debug().Err(err).Str("path", uri.Path()).Msg("lookup failed")
		return nil
	}
	return e
}

// locationFor returns the folder the dialog should open in: initial itself
// when it is a folder, else its parent. Only local folders qualify.
func locationFor(initial fileinfo.Entry) fyne.ListableURI {
	if initial == nil || fileinfo.IsSMBDisplay(initial.CanonicalPath()) {
		return nil
	}
	dir := initial.CanonicalPath()
	if !initial.IsDir() {
		dir = fileinfo.ParentPath(dir)
	}
	lister, err := storage.ListerForURI(storage.NewFileURI(dir))
	if err != nil {
		log.Debug().Err(err).Str("path", dir).Msg("cannot open chooser at location")
		return nil
	}
	return lister
}

// descriptorFilter adapts a descriptor to fyne's file filter. fyne only
// filters files; folders are always listed.
type descriptorFilter struct {
	d *descriptor.Descriptor
}

func (f descriptorFilter) Matches(uri fyne.URI) bool {
	e := fileinfo.NewEntry(uri.Path(), false)
	return f.d.IsVisible(e, f.d.ShowHidden) && f.d.IsSelectable(e)
}
