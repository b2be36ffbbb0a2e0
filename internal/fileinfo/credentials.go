package fileinfo

import (
	"sync"

	"github.com/rs/zerolog/log"

	"filebrowser/internal/secret"
)

// Credentials represents SMB authentication parameters.
type Credentials struct {
	Domain   string
	Username string
	Password string
	Persist  bool
}

func (c Credentials) empty() bool {
	return c.Username == "" && c.Password == "" && c.Domain == ""
}

// CredentialsProvider can interactively or programmatically provide credentials.
type CredentialsProvider interface {
	Get(host, share, relPath string) (Credentials, error)
}

// Keychain resolves SMB credentials in order: in-memory cache, secret store,
// then the interactive provider. Safe for concurrent use.
type Keychain struct {
	mu       sync.RWMutex
	cache    map[string]Credentials
	store    secret.Store
	provider CredentialsProvider
}

// NewKeychain creates a keychain. store and provider may be nil.
func NewKeychain(store secret.Store, provider CredentialsProvider) *Keychain {
	return &Keychain{
		cache:    make(map[string]Credentials),
		store:    store,
		provider: provider,
	}
}

func credKey(host, share string) string { return host + "\x00" + share }

// Get returns credentials for host/share; the zero value means anonymous.
func (k *Keychain) Get(host, share, rel string) Credentials {
	if c, ok := k.Cached(host, share); ok {
		return c
	}
	if k.store != nil {
		d, u, p, found, err := k.store.Get(host, share)
		if err != nil {
			log.Debug().Err(err).Str("host", host).Str("share", share).Msg("keyring lookup failed")
		}
		if found {
			c := Credentials{Domain: d, Username: u, Password: p}
			k.Put(host, share, c)
			return c
		}
	}
	if k.provider == nil {
		return Credentials{}
	}
	c, err := k.provider.Get(host, share, rel)
	if err != nil {
		log.Debug().Err(err).Str("host", host).Str("share", share).Msg("credentials not provided")
		return Credentials{}
	}
	k.Put(host, share, c)
	return c
}

// Cached returns in-memory credentials without consulting store or provider.
func (k *Keychain) Cached(host, share string) (Credentials, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	c, ok := k.cache[credKey(host, share)]
	if !ok || c.empty() {
		return Credentials{}, false
	}
	return c, true
}

// Put seeds the memory cache (e.g., from credentials embedded in a URL).
func (k *Keychain) Put(host, share string, c Credentials) {
	k.mu.Lock()
	k.cache[credKey(host, share)] = c
	k.mu.Unlock()
}

// Forget drops cached credentials after an authentication failure.
func (k *Keychain) Forget(host, share string) {
	k.mu.Lock()
	delete(k.cache, credKey(host, share))
	k.mu.Unlock()
}

// persist writes credentials to the secret store when the user asked for it.
func (k *Keychain) persist(host, share string, c Credentials) {
	if !c.Persist || k.store == nil {
		return
	}
	if err := k.store.Set(host, share, c.Domain, c.Username, c.Password); err != nil {
		log.Warn().Err(err).Str("host", host).Msg("failed to persist SMB credentials")
	}
}
