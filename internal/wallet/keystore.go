package wallet

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/99designs/keyring"
)

const keychainService = "w3ico"

// ErrKeyNotFound is returned when no key is stored under a reference.
var ErrKeyNotFound = errors.New("key not found")

// KeyStore persists private keys outside of wallets.json.
type KeyStore interface {
	Store(name, hexKey string) (ref string, err error)
	Retrieve(ref string) (string, error)
	Delete(ref string) error
}

// KeyRef is the reference a wallet name's key is stored under.
func KeyRef(name string) string { return keychainService + "." + name }

// Keystore is a KeyStore backed by the OS keychain, consulting an optional
// session cache first so unlocked wallets sign without a keychain prompt.
type Keystore struct {
	ring    keyring.Keyring
	session *Session
}

// DefaultKeystore opens the OS keychain. On Linux without a desktop keyring
// it falls back to an encrypted file keyring under fileDir.
func DefaultKeystore(fileDir string, session *Session) *Keystore {
	cfg := keyring.Config{
		ServiceName:              keychainService,
		KeychainTrustApplication: true,
		FileDir:                  fileDir,
		FilePasswordFunc:         keyring.TerminalPrompt,
	}
	if runtime.GOOS == "linux" {
		cfg.AllowedBackends = []keyring.BackendType{
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.FileBackend,
		}
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		cfg.AllowedBackends = []keyring.BackendType{keyring.FileBackend}
		ring, _ = keyring.Open(cfg)
	}
	return &Keystore{ring: ring, session: session}
}

// NewKeystore wraps an already opened keyring. Tests pass keyring.NewArrayKeyring.
func NewKeystore(ring keyring.Keyring, session *Session) *Keystore {
	return &Keystore{ring: ring, session: session}
}

// Store saves hexKey in the keychain and returns its reference.
func (k *Keystore) Store(name, hexKey string) (string, error) {
	if k.ring == nil {
		return "", fmt.Errorf("keychain not available")
	}
	ref := KeyRef(name)
	if err := k.ring.Set(keyring.Item{Key: ref, Data: []byte(hexKey), Label: "w3ico wallet " + name}); err != nil {
		return "", fmt.Errorf("keychain store: %w", err)
	}
	return ref, nil
}

// Retrieve fetches a private key, preferring the session cache.
func (k *Keystore) Retrieve(ref string) (string, error) {
	if k.session != nil {
		if v, ok := k.session.Get(ref); ok {
			return v, nil
		}
	}
	if k.ring == nil {
		return "", fmt.Errorf("keychain not available")
	}
	item, err := k.ring.Get(ref)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, ref)
	}
	if err != nil {
		return "", fmt.Errorf("keychain retrieve: %w", err)
	}
	return string(item.Data), nil
}

// Delete removes a key from the keychain and the session cache.
func (k *Keystore) Delete(ref string) error {
	if k.session != nil {
		k.session.Remove(ref)
	}
	if k.ring == nil {
		return nil
	}
	if err := k.ring.Remove(ref); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}

// MemKeyStore keeps keys in memory.
type MemKeyStore struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemKeyStore creates an empty in-memory key store.
func NewMemKeyStore() *MemKeyStore {
	return &MemKeyStore{data: make(map[string]string)}
}

func (k *MemKeyStore) Store(name, hexKey string) (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	ref := KeyRef(name)
	k.data[ref] = hexKey
	return ref, nil
}

func (k *MemKeyStore) Retrieve(ref string) (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, ok := k.data[ref]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, ref)
	}
	return v, nil
}

func (k *MemKeyStore) Delete(ref string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.data, ref)
	return nil
}
