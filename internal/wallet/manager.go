package wallet

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Wallet types.
const (
	TypeWatchOnly = "watch-only"
	TypeSigning   = "signing"
)

var (
	ErrWalletNotFound = errors.New("wallet not found")
	ErrWalletExists   = errors.New("wallet already exists")
	ErrInvalidKey     = errors.New("invalid private key")
	ErrWatchOnly      = errors.New("wallet is watch-only")
)

// Wallet is a named account. Private keys are never stored here, only a
// reference into the KeyStore.
type Wallet struct {
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Type      string    `json:"type"`
	KeyRef    string    `json:"key_ref,omitempty"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

// Addr returns the wallet address as a common.Address.
func (w *Wallet) Addr() common.Address { return common.HexToAddress(w.Address) }

// CanSign reports whether the wallet has a stored key.
func (w *Wallet) CanSign() bool { return w.Type == TypeSigning && w.KeyRef != "" }

// Store persists wallet metadata.
type Store interface {
	Load() ([]*Wallet, error)
	Save([]*Wallet) error
}

// Manager manages wallets.
type Manager struct {
	mu      sync.Mutex
	store   Store
	keys    KeyStore
	wallets []*Wallet
}

// Option configures a Manager.
type Option func(*Manager)

// WithStore sets the metadata store.
func WithStore(s Store) Option { return func(m *Manager) { m.store = s } }

// WithKeyStore sets where private keys are kept.
func WithKeyStore(k KeyStore) Option { return func(m *Manager) { m.keys = k } }

// NewManager creates a manager. Without options it keeps everything in memory.
func NewManager(opts ...Option) *Manager {
	m := &Manager{store: &memStore{}, keys: NewMemKeyStore()}
	for _, o := range opts {
		o(m)
	}
	if ws, err := m.store.Load(); err == nil {
		m.wallets = ws
	}
	return m
}

// Keys returns the manager's key store.
func (m *Manager) Keys() KeyStore { return m.keys }

// Add registers a watch-only wallet.
func (m *Manager) Add(name string, w *Wallet) error {
	if !common.IsHexAddress(w.Address) {
		return fmt.Errorf("invalid address %q", w.Address)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.find(name) != nil {
		return fmt.Errorf("%w: %s", ErrWalletExists, name)
	}
	w.Name = name
	w.Address = common.HexToAddress(w.Address).Hex()
	if w.Type == "" {
		w.Type = TypeWatchOnly
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now().UTC()
	}
	if len(m.wallets) == 0 {
		w.IsDefault = true
	}
	m.wallets = append(m.wallets, w)
	return m.store.Save(m.wallets)
}

// AddWithKey imports a private key (hex, with or without 0x) as a signing wallet.
func (m *Manager) AddWithKey(name, hexKey string) (*Wallet, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	m.mu.Lock()
	exists := m.find(name) != nil
	m.mu.Unlock()
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrWalletExists, name)
	}

	ref, err := m.keys.Store(name, hexKey)
	if err != nil {
		return nil, err
	}
	w := &Wallet{
		Address: crypto.PubkeyToAddress(key.PublicKey).Hex(),
		Type:    TypeSigning,
		KeyRef:  ref,
	}
	if err := m.Add(name, w); err != nil {
		_ = m.keys.Delete(ref)
		return nil, err
	}
	return w, nil
}

// Generate creates a fresh key and stores it as a signing wallet. The hex
// key is returned so the caller can show it once for backup.
func (m *Manager) Generate(name string) (*Wallet, string, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, "", err
	}
	hexKey := hex.EncodeToString(crypto.FromECDSA(key))
	w, err := m.AddWithKey(name, hexKey)
	if err != nil {
		return nil, "", err
	}
	return w, hexKey, nil
}

// Get returns a wallet by name.
func (m *Manager) Get(name string) (*Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w := m.find(name)
	if w == nil {
		return nil, fmt.Errorf("%w: %s", ErrWalletNotFound, name)
	}
	return w, nil
}

// List returns wallets sorted by name.
func (m *Manager) List() []*Wallet {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Wallet, len(m.wallets))
	copy(out, m.wallets)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Remove deletes a wallet and its stored key.
func (m *Manager) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, w := range m.wallets {
		if w.Name != name {
			continue
		}
		if w.KeyRef != "" {
			if err := m.keys.Delete(w.KeyRef); err != nil {
				return err
			}
		}
		m.wallets = append(m.wallets[:i], m.wallets[i+1:]...)
		if w.IsDefault && len(m.wallets) > 0 {
			m.wallets[0].IsDefault = true
		}
		return m.store.Save(m.wallets)
	}
	return fmt.Errorf("%w: %s", ErrWalletNotFound, name)
}

// SetDefault marks one wallet as the default.
func (m *Manager) SetDefault(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	target := m.find(name)
	if target == nil {
		return fmt.Errorf("%w: %s", ErrWalletNotFound, name)
	}
	for _, w := range m.wallets {
		w.IsDefault = w == target
	}
	return m.store.Save(m.wallets)
}

// Default returns the default wallet, or nil when there are none.
func (m *Manager) Default() *Wallet {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.wallets {
		if w.IsDefault {
			return w
		}
	}
	return nil
}

// Resolve returns the named wallet, or the default when name is empty.
func (m *Manager) Resolve(name string) (*Wallet, error) {
	if name != "" {
		return m.Get(name)
	}
	if w := m.Default(); w != nil {
		return w, nil
	}
	return nil, fmt.Errorf("%w: no default wallet, run `w3ico wallet add`", ErrWalletNotFound)
}

func (m *Manager) find(name string) *Wallet {
	for _, w := range m.wallets {
		if w.Name == name {
			return w
		}
	}
	return nil
}

type memStore struct{ wallets []*Wallet }

func (s *memStore) Load() ([]*Wallet, error) { return s.wallets, nil }
func (s *memStore) Save(ws []*Wallet) error  { s.wallets = ws; return nil }

// JSONStore stores wallet metadata in a JSON file.
type JSONStore struct {
	path string
}

// NewJSONStore creates a store at path.
func NewJSONStore(path string) *JSONStore { return &JSONStore{path: path} }

// Load reads wallets; a missing file yields none.
func (s *JSONStore) Load() ([]*Wallet, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var ws []*Wallet
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return ws, nil
}

// Save writes wallets with 0600 permissions.
func (s *JSONStore) Save(ws []*Wallet) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(ws, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
