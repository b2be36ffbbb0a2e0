// Package descriptor describes what a chooser may show and select.
//
// Descriptors are values built once at startup and shared read-only between
// every picker and chooser. Nothing mutates a Descriptor after construction;
// derive a new one with With* instead.
package descriptor

import (
	"strings"

	"filebrowser/internal/constants"
	"filebrowser/internal/fileinfo"
)

// Filter decides whether an entry is acceptable.
type Filter func(fileinfo.Entry) bool

// Descriptor configures a chooser.
type Descriptor struct {
	Title         string
	SelectFiles   bool
	SelectFolders bool
	MultiSelect   bool
	ShowHidden    bool
	// Filter, when set, must accept an entry for it to be visible (files) or
	// selectable (files and folders).
	Filter Filter
}

// IsVisible reports whether e should be listed. Folders stay visible so the
// user can navigate through them.
func (d *Descriptor) IsVisible(e fileinfo.Entry, showHidden bool) bool {
	if !showHidden && isHidden(e) {
		return false
	}
	if e.IsDir() {
		return true
	}
	return d.SelectFiles && d.accepts(e)
}

// IsSelectable reports whether e may be confirmed as a choice.
func (d *Descriptor) IsSelectable(e fileinfo.Entry) bool {
	if e.IsDir() {
		if !d.SelectFolders {
			return false
		}
	} else if !d.SelectFiles {
		return false
	}
	return d.accepts(e)
}

// FoldersOnly reports whether the descriptor can only ever yield folders.
func (d *Descriptor) FoldersOnly() bool {
	return d.SelectFolders && !d.SelectFiles
}

// WithFilter returns a copy whose filter also requires extra.
func (d *Descriptor) WithFilter(extra Filter) *Descriptor {
	if extra == nil {
		return d
	}
	cp := *d
	base := d.Filter
	cp.Filter = func(e fileinfo.Entry) bool {
		if base != nil && !base(e) {
			return false
		}
		return extra(e)
	}
	return &cp
}

// WithShowHidden returns a copy with hidden entries toggled.
func (d *Descriptor) WithShowHidden(show bool) *Descriptor {
	cp := *d
	cp.ShowHidden = show
	return &cp
}

func (d *Descriptor) accepts(e fileinfo.Entry) bool {
	return d.Filter == nil || d.Filter(e)
}

func isHidden(e fileinfo.Entry) bool {
	name := e.Name()
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// Defaults is the set of built-in descriptors used by the host.
type Defaults struct {
	ResourceDir      *Descriptor
	ImageFile        *Descriptor
	ImageFilesFolder *Descriptor
}

// NewDefaults builds the built-in descriptors around an "is image" predicate.
// Image descriptors accept folders unconditionally and files only when
// isImage holds.
func NewDefaults(isImage Filter) *Defaults {
	imageOrDir := func(e fileinfo.Entry) bool {
		if e.IsDir() {
			return true
		}
		return isImage != nil && isImage(e)
	}
	return &Defaults{
		ResourceDir: &Descriptor{
			Title:         constants.ResourceDirTitle,
			SelectFolders: true,
		},
		ImageFile: &Descriptor{
			Title:       constants.ImageFileTitle,
			SelectFiles: true,
			Filter:      imageOrDir,
		},
		ImageFilesFolder: &Descriptor{
			Title:         constants.ImageFilesFolderTitle,
			SelectFiles:   true,
			SelectFolders: true,
			MultiSelect:   true,
			Filter:        imageOrDir,
		},
	}
}
