package ui

import (
	"errors"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog/log"

	"filebrowser/internal/constants"
	"filebrowser/internal/fileinfo"
)

// ErrCredentialsPending is returned while the login form for a share is open.
// Lookups fail until the user submits it; the next lookup uses the answer.
var ErrCredentialsPending = errors.New("smb credentials requested")

// SMBCredentialsProvider prompts the user for SMB credentials without
// blocking the caller, so lookups made on the UI goroutine stay safe.
type SMBCredentialsProvider struct {
	parent fyne.Window

	mu      sync.Mutex
	pending map[string]bool

	// OnCredentials receives submitted credentials, typically Keychain.Put.
	OnCredentials func(host, share string, c fileinfo.Credentials)
}

func NewSMBCredentialsProvider(parent fyne.Window) *SMBCredentialsProvider {
	return &SMBCredentialsProvider{parent: parent, pending: make(map[string]bool)}
}

// Get opens the login form for host/share once and returns ErrCredentialsPending.
func (p *SMBCredentialsProvider) Get(host, share, _ string) (fileinfo.Credentials, error) {
	key := host + "/" + share
	p.mu.Lock()
	if p.pending[key] {
		p.mu.Unlock()
		return fileinfo.Credentials{}, ErrCredentialsPending
	}
	p.pending[key] = true
	p.mu.Unlock()

	fyne.Do(func() { p.showForm(host, share, key) })
	return fileinfo.Credentials{}, ErrCredentialsPending
}

func (p *SMBCredentialsProvider) showForm(host, share, key string) {
	userEntry := widget.NewEntry()
	passEntry := widget.NewPasswordEntry()
	domainEntry := widget.NewEntry()
	saveCheck := widget.NewCheck("Remember on this device (keyring)", nil)
	userEntry.SetPlaceHolder("username")
	domainEntry.SetPlaceHolder("domain (optional)")

	form := dialog.NewForm(
		"SMB Login: "+key,
		"Login",
		"Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Domain", domainEntry),
			widget.NewFormItem("Username", userEntry),
			widget.NewFormItem("Password", passEntry),
			widget.NewFormItem("", saveCheck),
		},
		func(ok bool) {
			p.mu.Lock()
			delete(p.pending, key)
			p.mu.Unlock()
			if !ok {
				log.Debug().Str("share", key).Msg("smb login cancelled")
				return
			}
			if p.OnCredentials != nil {
				p.OnCredentials(host, share, fileinfo.Credentials{
					Domain:   domainEntry.Text,
					Username: userEntry.Text,
					Password: passEntry.Text,
					Persist:  saveCheck.Checked,
				})
			}
		},
		p.parent,
	)
	form.Resize(fyne.NewSize(constants.LoginDialogWidth, constants.LoginDialogHeight))
	form.Show()
}
