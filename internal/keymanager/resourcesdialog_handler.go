package keymanager

import (
	"unicode"

	"fyne.io/fyne/v2"
	"github.com/rs/zerolog/log"
)

// ResourcesDialogInterface defines the interface needed by ResourcesDialogKeyHandler
type ResourcesDialogInterface interface {
	MoveUp()
	MoveDown()
	MoveToTop()
	MoveToBottom()

	AppendToFilter(char string)
	BackspaceFilter()
	ClearFilter()

	AcceptSelection()
	CancelDialog()
}

// ResourcesDialogKeyHandler handles keyboard events for the resource folder chooser
type ResourcesDialogKeyHandler struct {
	dialog ResourcesDialogInterface
}

// NewResourcesDialogKeyHandler creates a new resources dialog key handler
func NewResourcesDialogKeyHandler(d ResourcesDialogInterface) *ResourcesDialogKeyHandler {
	return &ResourcesDialogKeyHandler{dialog: d}
}

// GetName returns the name of this handler
func (rh *ResourcesDialogKeyHandler) GetName() string {
	return "ResourcesDialog"
}

// OnKeyDown handles key press events
func (rh *ResourcesDialogKeyHandler) OnKeyDown(ev *fyne.KeyEvent, modifiers ModifierState) bool {
	return false
}

// OnKeyUp handles key release events
func (rh *ResourcesDialogKeyHandler) OnKeyUp(ev *fyne.KeyEvent, modifiers ModifierState) bool {
	return false
}

// OnTypedKey handles typed key events
func (rh *ResourcesDialogKeyHandler) OnTypedKey(ev *fyne.KeyEvent, modifiers ModifierState) bool {
	log.Trace().Str("key", string(ev.Name)).Msg("resources dialog key")

	switch ev.Name {
	case fyne.KeyUp:
		if modifiers.ShiftPressed {
			rh.dialog.MoveToTop()
		} else {
			rh.dialog.MoveUp()
		}
		return true

	case fyne.KeyDown:
		if modifiers.ShiftPressed {
			rh.dialog.MoveToBottom()
		} else {
			rh.dialog.MoveDown()
		}
		return true

	case fyne.KeyHome:
		rh.dialog.MoveToTop()
		return true

	case fyne.KeyEnd:
		rh.dialog.MoveToBottom()
		return true

	case fyne.KeyReturn, fyne.KeyEnter:
		rh.dialog.AcceptSelection()
		return true

	case fyne.KeyEscape:
		rh.dialog.CancelDialog()
		return true

	case fyne.KeyBackspace:
		rh.dialog.BackspaceFilter()
		return true

	case fyne.KeyDelete:
		rh.dialog.ClearFilter()
		return true
	}

	return false
}

// OnTypedRune narrows the candidate list
func (rh *ResourcesDialogKeyHandler) OnTypedRune(r rune, modifiers ModifierState) bool {
	if unicode.IsPrint(r) && !unicode.IsControl(r) {
		rh.dialog.AppendToFilter(string(r))
		return true
	}
	return false
}
