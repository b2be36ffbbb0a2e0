package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog/log"

	"filebrowser/internal/constants"
	"filebrowser/internal/fileinfo"
	"filebrowser/internal/keymanager"
	"filebrowser/internal/macro"
)

// ResourcesDialog lets the user pick one of several resource folders. Typing
// narrows the list; Enter accepts, Escape dismisses.
type ResourcesDialog struct {
	parent     fyne.Window
	keyManager *keymanager.KeyManager
	scope      *macro.Scope // for display only; nil shows canonical paths

	candidates    []fileinfo.Entry
	filtered      []fileinfo.Entry
	filter        string
	selectedIndex int

	list        *widget.List
	filterLabel *widget.Label
	emptyLabel  *widget.Label
	dialog      dialog.Dialog
	sink        *KeySink
	done        func(fileinfo.Entry)
	closed      bool
}

// NewResourcesDialog creates a dialog bound to parent.
func NewResourcesDialog(parent fyne.Window, km *keymanager.KeyManager, scope *macro.Scope) *ResourcesDialog {
	return &ResourcesDialog{parent: parent, keyManager: km, scope: scope, selectedIndex: -1}
}

// ChooseResourceDir shows candidates and reports the choice through done,
// or nil when dismissed. Calling it again replaces an open dialog.
func (rd *ResourcesDialog) ChooseResourceDir(candidates []fileinfo.Entry, done func(fileinfo.Entry)) {
	if rd.dialog != nil && !rd.closed {
		rd.CancelDialog()
	}
	rd.candidates = candidates
	rd.done = done
	rd.closed = false
	rd.filter = ""

	rd.createWidgets()
	rd.updateFiltered()

	rd.keyManager.PushHandler(keymanager.NewResourcesDialogKeyHandler(rd))

	scroll := container.NewVScroll(rd.list)
	content := container.NewBorder(rd.filterLabel, nil, nil, nil, container.NewStack(scroll, rd.emptyLabel))
	rd.sink = NewKeySink(content, rd.keyManager)

	rd.dialog = dialog.NewCustomConfirm(
		constants.ResourceDirTitle,
		"OK",
		"Cancel",
		rd.sink,
		func(ok bool) {
			if ok {
				rd.AcceptSelection()
			} else {
				rd.CancelDialog()
			}
		},
		rd.parent,
	)
	rd.dialog.Resize(fyne.NewSize(constants.ResourcesDialogWidth, constants.ResourcesDialogHeight))
	rd.dialog.Show()
	rd.focusSink()
}

func (rd *ResourcesDialog) createWidgets() {
	rd.filterLabel = widget.NewLabel("")
	rd.emptyLabel = widget.NewLabel("No matching folders")
	rd.emptyLabel.Alignment = fyne.TextAlignCenter
	rd.emptyLabel.Hide()

	rd.list = widget.NewList(
		func() int { return len(rd.filtered) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < len(rd.filtered) {
				obj.(*widget.Label).SetText(rd.display(rd.filtered[id]))
			}
		},
	)
	rd.list.OnSelected = func(id widget.ListItemID) {
		if id < len(rd.filtered) {
			rd.selectedIndex = id
			rd.focusSink()
		}
	}
}

func (rd *ResourcesDialog) display(e fileinfo.Entry) string {
	if rd.scope == nil {
		return e.CanonicalPath()
	}
	return rd.scope.Collapse(e.CanonicalPath())
}

func (rd *ResourcesDialog) updateFiltered() {
	query := strings.ToLower(rd.filter)
	rd.filtered = rd.filtered[:0]
	for _, e := range rd.candidates {
		if query == "" || strings.Contains(strings.ToLower(rd.display(e)), query) {
			rd.filtered = append(rd.filtered, e)
		}
	}

	if rd.filter == "" {
		rd.filterLabel.SetText("Several resource folders found. Type to filter.")
	} else {
		rd.filterLabel.SetText("Filter: " + rd.filter)
	}
	if len(rd.filtered) == 0 {
		rd.emptyLabel.Show()
	} else {
		rd.emptyLabel.Hide()
	}
	rd.list.Refresh()

	if len(rd.filtered) > 0 {
		rd.selectedIndex = 0
		rd.list.Select(0)
	} else {
		rd.selectedIndex = -1
		rd.list.UnselectAll()
	}
}

// Selected returns the highlighted folder, nil when the list is empty.
func (rd *ResourcesDialog) Selected() fileinfo.Entry {
	if rd.selectedIndex < 0 || rd.selectedIndex >= len(rd.filtered) {
		return nil
	}
	return rd.filtered[rd.selectedIndex]
}

// MoveUp moves the selection up
func (rd *ResourcesDialog) MoveUp() {
	if rd.selectedIndex > 0 {
		rd.list.Select(rd.selectedIndex - 1)
	}
}

// MoveDown moves the selection down
func (rd *ResourcesDialog) MoveDown() {
	if rd.selectedIndex >= 0 && rd.selectedIndex < len(rd.filtered)-1 {
		rd.list.Select(rd.selectedIndex + 1)
	}
}

// MoveToTop selects the first folder
func (rd *ResourcesDialog) MoveToTop() {
	if len(rd.filtered) > 0 {
		rd.list.Select(0)
	}
}

// MoveToBottom selects the last folder
func (rd *ResourcesDialog) MoveToBottom() {
	if len(rd.filtered) > 0 {
		rd.list.Select(len(rd.filtered) - 1)
	}
}

// AppendToFilter narrows the list
func (rd *ResourcesDialog) AppendToFilter(char string) {
	rd.filter += char
	rd.updateFiltered()
}

// BackspaceFilter removes the last filter character
func (rd *ResourcesDialog) BackspaceFilter() {
	if rd.filter == "" {
		return
	}
	r := []rune(rd.filter)
	rd.filter = string(r[:len(r)-1])
	rd.updateFiltered()
}

// ClearFilter shows every candidate again
func (rd *ResourcesDialog) ClearFilter() {
	rd.filter = ""
	rd.updateFiltered()
}

// AcceptSelection reports the highlighted folder and closes the dialog
func (rd *ResourcesDialog) AcceptSelection() {
	rd.close(rd.Selected())
}

// CancelDialog closes the dialog without a choice
func (rd *ResourcesDialog) CancelDialog() {
	rd.close(nil)
}

func (rd *ResourcesDialog) close(choice fileinfo.Entry) {
	if rd.closed {
		return
	}
	rd.closed = true
	rd.keyManager.PopHandler()

	// Hide re-enters the confirm callback; closed stops the second pass
	if rd.dialog != nil {
		rd.dialog.Hide()
	}
	if rd.parent != nil {
		rd.parent.Canvas().Unfocus()
	}

	if choice != nil {
		log.Debug().Str("path", choice.CanonicalPath()).Msg("resource folder chosen")
	}
	if rd.done != nil {
		rd.done(choice)
	}
}

func (rd *ResourcesDialog) focusSink() {
	if rd.parent != nil && rd.sink != nil {
		rd.parent.Canvas().Focus(rd.sink)
	}
}
