package keymanager

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/rs/zerolog/log"
)

// ModifierState is the modifier keys held while an event is delivered.
type ModifierState struct {
	ShiftPressed bool
	CtrlPressed  bool
	AltPressed   bool
}

// KeyHandler defines the interface for handling keyboard events
type KeyHandler interface {
	// OnKeyDown handles key press events
	OnKeyDown(ev *fyne.KeyEvent, modifiers ModifierState) bool // returns true if handled

	// OnKeyUp handles key release events
	OnKeyUp(ev *fyne.KeyEvent, modifiers ModifierState) bool

	// OnTypedKey handles typed key events
	OnTypedKey(ev *fyne.KeyEvent, modifiers ModifierState) bool

	// OnTypedRune handles text input
	OnTypedRune(r rune, modifiers ModifierState) bool

	// GetName returns a descriptive name for this handler (for debugging)
	GetName() string
}

// KeyManager manages a stack of key handlers. Only the top handler sees
// events; modifier state is tracked here for all of them.
type KeyManager struct {
	handlers  []KeyHandler
	modifiers ModifierState
	mutex     sync.RWMutex
}

// NewKeyManager creates a new KeyManager instance
func NewKeyManager() *KeyManager {
	return &KeyManager{handlers: make([]KeyHandler, 0)}
}

// PushHandler adds a new key handler to the top of the stack
func (km *KeyManager) PushHandler(handler KeyHandler) {
	km.mutex.Lock()
	defer km.mutex.Unlock()

	km.handlers = append(km.handlers, handler)
	log.Debug().Str("handler", handler.GetName()).Int("depth", len(km.handlers)).Msg("key handler pushed")
}

// PopHandler removes the top key handler from the stack
func (km *KeyManager) PopHandler() KeyHandler {
	km.mutex.Lock()
	defer km.mutex.Unlock()

	if len(km.handlers) == 0 {
		log.Debug().Msg("key handler pop on empty stack")
		return nil
	}

	handler := km.handlers[len(km.handlers)-1]
	km.handlers = km.handlers[:len(km.handlers)-1]
	log.Debug().Str("handler", handler.GetName()).Int("depth", len(km.handlers)).Msg("key handler popped")
	return handler
}

// GetCurrentHandler returns the top handler without removing it
func (km *KeyManager) GetCurrentHandler() KeyHandler {
	km.mutex.RLock()
	defer km.mutex.RUnlock()
	return km.top()
}

// Modifiers returns the modifier keys currently held.
func (km *KeyManager) Modifiers() ModifierState {
	km.mutex.RLock()
	defer km.mutex.RUnlock()
	return km.modifiers
}

// HandleKeyDown updates modifier state and routes the event to the top handler
func (km *KeyManager) HandleKeyDown(ev *fyne.KeyEvent) {
	km.setModifier(ev.Name, true)
	h, mods := km.snapshot()
	if h == nil {
		return
	}
	handled := h.OnKeyDown(ev, mods)
	log.Trace().Str("handler", h.GetName()).Str("key", string(ev.Name)).Bool("handled", handled).Msg("key down")
}

// HandleKeyUp updates modifier state and routes the event to the top handler
func (km *KeyManager) HandleKeyUp(ev *fyne.KeyEvent) {
	km.setModifier(ev.Name, false)
	h, mods := km.snapshot()
	if h == nil {
		return
	}
	h.OnKeyUp(ev, mods)
}

// HandleTypedKey routes typed key events to the current top handler
func (km *KeyManager) HandleTypedKey(ev *fyne.KeyEvent) {
	h, mods := km.snapshot()
	if h == nil {
		log.Trace().Str("key", string(ev.Name)).Msg("no key handler")
		return
	}
	handled := h.OnTypedKey(ev, mods)
	log.Trace().Str("handler", h.GetName()).Str("key", string(ev.Name)).Bool("handled", handled).Msg("typed key")
}

// HandleTypedRune routes text input to the current top handler
func (km *KeyManager) HandleTypedRune(r rune) {
	h, mods := km.snapshot()
	if h == nil {
		return
	}
	h.OnTypedRune(r, mods)
}

// GetStackSize returns the current number of handlers in the stack
func (km *KeyManager) GetStackSize() int {
	km.mutex.RLock()
	defer km.mutex.RUnlock()
	return len(km.handlers)
}

// ListHandlers returns the names of all handlers in the stack (for debugging)
func (km *KeyManager) ListHandlers() []string {
	km.mutex.RLock()
	defer km.mutex.RUnlock()

	names := make([]string, len(km.handlers))
	for i, handler := range km.handlers {
		names[i] = handler.GetName()
	}
	return names
}

func (km *KeyManager) top() KeyHandler {
	if len(km.handlers) == 0 {
		return nil
	}
	return km.handlers[len(km.handlers)-1]
}

// snapshot reads the handler under the lock; handlers run unlocked so they
// may push or pop.
func (km *KeyManager) snapshot() (KeyHandler, ModifierState) {
	km.mutex.RLock()
	defer km.mutex.RUnlock()
	return km.top(), km.modifiers
}

func (km *KeyManager) setModifier(name fyne.KeyName, down bool) {
	km.mutex.Lock()
	defer km.mutex.Unlock()

	switch name {
	case desktop.KeyShiftLeft, desktop.KeyShiftRight:
		km.modifiers.ShiftPressed = down
	case desktop.KeyControlLeft, desktop.KeyControlRight:
		km.modifiers.CtrlPressed = down
	case desktop.KeyAltLeft, desktop.KeyAltRight:
		km.modifiers.AltPressed = down
	}
}
