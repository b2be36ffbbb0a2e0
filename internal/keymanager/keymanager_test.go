package keymanager

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/stretchr/testify/assert"
)

type recordingHandler struct {
	name  string
	typed []fyne.KeyName
	runes []rune
	mods  []ModifierState
}

func (h *recordingHandler) OnKeyDown(*fyne.KeyEvent, ModifierState) bool { return false }
func (h *recordingHandler) OnKeyUp(*fyne.KeyEvent, ModifierState) bool   { return false }
func (h *recordingHandler) OnTypedKey(ev *fyne.KeyEvent, m ModifierState) bool {
	h.typed = append(h.typed, ev.Name)
	h.mods = append(h.mods, m)
	return true
}
func (h *recordingHandler) OnTypedRune(r rune, _ ModifierState) bool {
	h.runes = append(h.runes, r)
	return true
}
func (h *recordingHandler) GetName() string { return h.name }

func TestOnlyTopHandlerReceivesEvents(t *testing.T) {
	km := NewKeyManager()
	bottom := &recordingHandler{name: "bottom"}
	top := &recordingHandler{name: "top"}
	km.PushHandler(bottom)
	km.PushHandler(top)

	km.HandleTypedKey(&fyne.KeyEvent{Name: fyne.KeyDown})
	km.HandleTypedRune('r')

	assert.Equal(t, []fyne.KeyName{fyne.KeyDown}, top.typed)
	assert.Equal(t, []rune{'r'}, top.runes)
	assert.Empty(t, bottom.typed)
	assert.Equal(t, []string{"bottom", "top"}, km.ListHandlers())

	assert.Same(t, top, km.PopHandler())
	km.HandleTypedKey(&fyne.KeyEvent{Name: fyne.KeyUp})
	assert.Equal(t, []fyne.KeyName{fyne.KeyUp}, bottom.typed)
}

func TestPopEmptyStack(t *testing.T) {
	km := NewKeyManager()
	assert.Nil(t, km.PopHandler())
	assert.Nil(t, km.GetCurrentHandler())
	assert.Equal(t, 0, km.GetStackSize())

	// no handler: events are dropped
	km.HandleTypedKey(&fyne.KeyEvent{Name: fyne.KeyReturn})
}

func TestModifierTracking(t *testing.T) {
	km := NewKeyManager()
	h := &recordingHandler{name: "h"}
	km.PushHandler(h)

	km.HandleKeyDown(&fyne.KeyEvent{Name: desktop.KeyShiftLeft})
	km.HandleTypedKey(&fyne.KeyEvent{Name: fyne.KeyUp})
	km.HandleKeyUp(&fyne.KeyEvent{Name: desktop.KeyShiftLeft})
	km.HandleTypedKey(&fyne.KeyEvent{Name: fyne.KeyUp})

	assert.True(t, h.mods[0].ShiftPressed)
	assert.False(t, h.mods[1].ShiftPressed)
	assert.Equal(t, ModifierState{}, km.Modifiers())
}

type fakeResourcesDialog struct{ calls []string }

func (f *fakeResourcesDialog) MoveUp()                 { f.calls = append(f.calls, "up") }
func (f *fakeResourcesDialog) MoveDown()               { f.calls = append(f.calls, "down") }
func (f *fakeResourcesDialog) MoveToTop()              { f.calls = append(f.calls, "top") }
func (f *fakeResourcesDialog) MoveToBottom()           { f.calls = append(f.calls, "bottom") }
func (f *fakeResourcesDialog) AppendToFilter(c string) { f.calls = append(f.calls, "+"+c) }
func (f *fakeResourcesDialog) BackspaceFilter()        { f.calls = append(f.calls, "bs") }
func (f *fakeResourcesDialog) ClearFilter()            { f.calls = append(f.calls, "clear") }
func (f *fakeResourcesDialog) AcceptSelection()        { f.calls = append(f.calls, "accept") }
func (f *fakeResourcesDialog) CancelDialog()           { f.calls = append(f.calls, "cancel") }

func TestResourcesDialogKeyHandler(t *testing.T) {
	tests := []struct {
		key  fyne.KeyName
		mods ModifierState
		want string
	}{
		{fyne.KeyUp, ModifierState{}, "up"},
		{fyne.KeyDown, ModifierState{}, "down"},
		{fyne.KeyUp, ModifierState{ShiftPressed: true}, "top"},
		{fyne.KeyDown, ModifierState{ShiftPressed: true}, "bottom"},
		{fyne.KeyReturn, ModifierState{}, "accept"},
		{fyne.KeyEscape, ModifierState{}, "cancel"},
		{fyne.KeyBackspace, ModifierState{}, "bs"},
		{fyne.KeyDelete, ModifierState{}, "clear"},
	}
	for _, tt := range tests {
		d := &fakeResourcesDialog{}
		h := NewResourcesDialogKeyHandler(d)
		assert.True(t, h.OnTypedKey(&fyne.KeyEvent{Name: tt.key}, tt.mods), tt.key)
		assert.Equal(t, []string{tt.want}, d.calls, tt.key)
	}

	d := &fakeResourcesDialog{}
	h := NewResourcesDialogKeyHandler(d)
	assert.False(t, h.OnTypedKey(&fyne.KeyEvent{Name: fyne.KeyF5}, ModifierState{}))
	assert.True(t, h.OnTypedRune('m', ModifierState{}))
	assert.False(t, h.OnTypedRune('\t', ModifierState{}))
	assert.Equal(t, []string{"+m"}, d.calls)
}
