package secret

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/99designs/keyring"

	"filebrowser/internal/constants"
)

const serviceName = constants.ApplicationName + ".smb"

type keyringStore struct {
	ring keyring.Keyring
}

// NewKeyringStore tries to open the OS keyring via 99designs/keyring.
// If it fails, returns an error so callers can fall back to NewMemoryStore.
func NewKeyringStore() (Store, error) {
	r, err := keyring.Open(keyring.Config{ServiceName: serviceName})
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	return &keyringStore{ring: r}, nil
}

func makeKey(host, share string) string { return host + "|" + share }

func (s *keyringStore) Get(host, share string) (domain, user, pass string, found bool, err error) {
	item, err := s.ring.Get(makeKey(host, share))
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", "", "", false, nil
		}
		return "", "", "", false, err
	}
	// Description holds "domain\user" or "user"; Data holds the password
	domain, user = splitAccount(item.Description)
	return domain, user, string(item.Data), true, nil
}

func (s *keyringStore) Set(host, share, domain, user, pass string) error {
	return s.ring.Set(keyring.Item{
		Key:         makeKey(host, share),
		Data:        []byte(pass),
		Description: joinAccount(domain, user),
		Label:       serviceName,
	})
}

func (s *keyringStore) Delete(host, share string) error {
	return s.ring.Remove(makeKey(host, share))
}

func joinAccount(domain, user string) string {
	if domain == "" {
		return user
	}
	return domain + `\` + user
}

func splitAccount(desc string) (domain, user string) {
	if i := strings.IndexAny(desc, `\;`); i >= 0 {
		return desc[:i], desc[i+1:]
	}
	return "", desc
}

// memoryStore keeps credentials for the session only.
type memoryStore struct {
	mu    sync.RWMutex
	items map[string][3]string
}

// NewMemoryStore returns a process-local Store, used when no keyring backend
// is available.
func NewMemoryStore() Store {
	return &memoryStore{items: make(map[string][3]string)}
}

func (m *memoryStore) Get(host, share string) (string, string, string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[makeKey(host, share)]
	return v[0], v[1], v[2], ok, nil
}

func (m *memoryStore) Set(host, share, domain, user, pass string) error {
	m.mu.Lock()
	m.items[makeKey(host, share)] = [3]string{domain, user, pass}
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) Delete(host, share string) error {
	m.mu.Lock()
	delete(m.items, makeKey(host, share))
	m.mu.Unlock()
	return nil
}
