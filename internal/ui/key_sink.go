package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// keyTarget receives the key events a KeySink collects. *keymanager.KeyManager
// satisfies it.
type keyTarget interface {
	HandleTypedKey(ev *fyne.KeyEvent)
	HandleTypedRune(r rune)
	HandleKeyDown(ev *fyne.KeyEvent)
	HandleKeyUp(ev *fyne.KeyEvent)
}

// KeySink is the focusable wrapper a dialog puts around its content so that
// keys reach the handler stack instead of the list or filter entry. It keeps
// Tab, so focus cannot wander off the sink while the dialog is open.
type KeySink struct {
	widget.BaseWidget
	Content fyne.CanvasObject
	target  keyTarget
}

func NewKeySink(content fyne.CanvasObject, target keyTarget) *KeySink {
	k := &KeySink{Content: content, target: target}
	k.ExtendBaseWidget(k)
	return k
}

func (k *KeySink) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(k.Content)
}

func (k *KeySink) FocusGained() {}
func (k *KeySink) FocusLost()   {}
func (k *KeySink) AcceptsTab() bool { return true }

func (k *KeySink) TypedKey(ev *fyne.KeyEvent) {
	if k.target != nil {
		k.target.HandleTypedKey(ev)
	}
}

func (k *KeySink) TypedRune(r rune) {
	if k.target != nil {
		k.target.HandleTypedRune(r)
	}
}

func (k *KeySink) KeyDown(ev *fyne.KeyEvent) {
	if k.target != nil {
		k.target.HandleKeyDown(ev)
	}
}

func (k *KeySink) KeyUp(ev *fyne.KeyEvent) {
	if k.target != nil {
		k.target.HandleKeyUp(ev)
	}
}
