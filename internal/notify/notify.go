// Package notify delivers picker selections to a single subscriber.
package notify

import (
	"filebrowser/internal/fileinfo"
)

// Listener receives the file a picker now points at.
type Listener interface {
	FileSelected(file fileinfo.Entry)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(file fileinfo.Entry)

// FileSelected calls f(file).
func (f ListenerFunc) FileSelected(file fileinfo.Entry) { f(file) }

// Notifier holds at most one listener; registering another replaces it.
// It is not safe for concurrent use; callers serialize on the UI goroutine.
type Notifier struct {
	listener Listener
}

// SetListener replaces the listener and immediately replays current to it,
// so a late subscriber observes the present value. A nil listener clears the
// slot.
func (n *Notifier) SetListener(l Listener, current string) {
	n.listener = l
	n.Notify(current)
}

// Notify delivers value to the listener. Empty values and an empty slot are
// ignored; identical consecutive values are each delivered.
func (n *Notifier) Notify(value string) {
	if n.listener == nil || value == "" {
		return
	}
	n.listener.FileSelected(fileinfo.NewFileRef(value))
}

// HasListener reports whether a listener is registered.
func (n *Notifier) HasListener() bool {
	return n.listener != nil
}
