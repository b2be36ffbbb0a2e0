package fileinfo

import (
	"net"
	"os"
	"path"
	"strings"
	"time"

	"github.com/hirochachacha/go-smb2"

	"filebrowser/internal/constants"
)

// SMBFS implements VFS for direct SMB access. Each call opens its own
// session; lookups are rare (one browse click) so no pooling is kept.
type SMBFS struct {
	host  string
	share string
	keys  *Keychain
}

// NewSMBFS creates a provider for host/share resolving credentials via keys.
func NewSMBFS(host, share string, keys *Keychain) SMBFS {
	return SMBFS{host: host, share: share, keys: keys}
}

// Stat returns file info for a path relative to the share (leading separators allowed).
func (s SMBFS) Stat(relPath string) (os.FileInfo, error) {
	var fi os.FileInfo
	err := s.withShare(relPath, func(share *smb2.Share, p string) error {
		var err error
		fi, err = share.Stat(p)
		return err
	})
	return fi, err
}

// Base returns last element after splitting by '/'.
func (SMBFS) Base(p string) string {
	return path.Base("/" + strings.Trim(p, "/"))
}

// withShare dials, authenticates and mounts the share, then runs fn with the
// share-relative form of relPath. go-smb2 forbids leading separators and wants
// "." for the share root.
func (s SMBFS) withShare(relPath string, fn func(*smb2.Share, string) error) error {
	creds := Credentials{}
	if s.keys != nil {
		creds = s.keys.Get(s.host, s.share, relPath)
	}

	d := &smb2.Dialer{
		Initiator: &smb2.NTLMInitiator{
			User:     creds.Username,
			Password: creds.Password,
			Domain:   creds.Domain,
		},
	}

	conn, err := net.DialTimeout("tcp", net.JoinHostPort(s.host, constants.SMBPort), 5*time.Second)
	if err != nil {
		return err
	}
	defer conn.Close()

	sess, err := d.Dial(conn)
	if err != nil {
		s.forgetOnAuth(err)
		return err
	}
	defer sess.Logoff()

	share, err := sess.Mount(s.share)
	if err != nil {
		s.forgetOnAuth(err)
		return err
	}
	defer share.Umount()

	if s.keys != nil {
		s.keys.persist(s.host, s.share, creds)
	}

	p := strings.TrimLeft(strings.ReplaceAll(relPath, "\\", "/"), "/")
	if p == "" {
		p = "."
	}
	if err := fn(share, p); err != nil {
		s.forgetOnAuth(err)
		return err
	}
	return nil
}

func (s SMBFS) forgetOnAuth(err error) {
	if s.keys != nil && isAuthError(err) {
		s.keys.Forget(s.host, s.share)
	}
}

func isAuthError(err error) bool {
	if err == nil {
		return false
	}
	e := strings.ToLower(err.Error())
	for _, marker := range []string{
		"logon is invalid",
		"bad username",
		"authentication",
		"status_logon_failure",
		"access is denied",
	} {
		if strings.Contains(e, marker) {
			return true
		}
	}
	return false
}
