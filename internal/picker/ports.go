package picker

import (
	"filebrowser/internal/descriptor"
	"filebrowser/internal/fileinfo"
	"filebrowser/internal/macro"
	"filebrowser/internal/project"
)

// Settings persists picker state for one project.
type Settings interface {
	// LastDirectory returns the remembered directory, possibly macro-collapsed.
	LastDirectory() string
	SaveLastDirectory(path string)
	// ResourceRoot returns the stored resource root, nil when none is set.
	ResourceRoot() (fileinfo.Entry, error)
}

// Chooser shows a modal file chooser. done receives the confirmed entries,
// or none when the user cancels. It is called on the UI goroutine.
type Chooser interface {
	Choose(d *descriptor.Descriptor, initial fileinfo.Entry, done func(chosen []fileinfo.Entry))
}

// ResourceDialog asks the user to pick one of several resource folders.
// done receives nil when the dialog is dismissed without a choice.
type ResourceDialog interface {
	ChooseResourceDir(candidates []fileinfo.Entry, done func(choice fileinfo.Entry))
}

// ResourceFolders enumerates candidate resource folders of a module.
type ResourceFolders interface {
	ResourceFolders(m *project.Module) ([]fileinfo.Entry, error)
}

// DropTarget is what drag-and-drop delivery talks to.
type DropTarget interface {
	Descriptor() *descriptor.Descriptor
	IsHiddenShown() bool
	DropFiles(entries []fileinfo.Entry)
}

// Host bundles the collaborators a Controller calls into. Any field may be
// nil; the matching flow then degrades to a no-op.
//
// Macros must be the scope the Settings collapse paths with, or remembered
// directories will not expand back.
type Host struct {
	Finder    fileinfo.Finder
	Macros    macro.Expander
	Chooser   Chooser
	Dialogs   ResourceDialog
	Resources ResourceFolders
}
