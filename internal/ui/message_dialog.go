package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"github.com/rs/zerolog/log"

	apperrors "filebrowser/internal/errors"
)

// ShowMessageDialog shows an OK dialog and returns at once.
func ShowMessageDialog(parent fyne.Window, title, message string) {
	log.Info().Str("title", title).Msg(message)
	if parent == nil {
		return
	}
	dialog.NewInformation(title, message, parent).Show()
}

// ShowErrorDialog logs err and reports it to the user.
func ShowErrorDialog(parent fyne.Window, op string, err error) {
	ev := log.Error().Err(err).Str("op", op)
	if kind, ok := apperrors.KindOf(err); ok {
		ev = ev.Stringer("kind", kind)
	}
	ev.Msg("picker operation failed")
	if parent == nil {
		return
	}
	dialog.ShowError(err, parent)
}
