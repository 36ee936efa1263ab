package wallet

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Session caches unlocked private keys in a 0600 file under the user cache
// directory so consecutive commands sign without keychain prompts.
//
//	macOS:   ~/Library/Caches/w3ico/session.json
//	Linux:   ~/.cache/w3ico/session.json
//	Windows: %LocalAppData%\w3ico\session.json
type Session struct {
	path string
}

// DefaultSession returns the per-user session.
func DefaultSession() *Session {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return NewSession(filepath.Join(dir, "w3ico", "session.json"))
}

// NewSession returns a session stored at path.
func NewSession(path string) *Session { return &Session{path: path} }

// load returns the key map; never nil.
func (s *Session) load() map[string]string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return make(map[string]string)
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil || m == nil {
		return make(map[string]string)
	}
	return m
}

func (s *Session) save(m map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return err
	}
	return os.Chmod(s.path, 0o600)
}

// Get returns a cached key for ref.
func (s *Session) Get(ref string) (string, bool) {
	v, ok := s.load()[ref]
	return v, ok
}

// Put caches keys in a single read+write.
func (s *Session) Put(keys map[string]string) error {
	if len(keys) == 0 {
		return nil
	}
	m := s.load()
	for ref, k := range keys {
		m[ref] = k
	}
	return s.save(m)
}

// Remove evicts one key.
func (s *Session) Remove(ref string) {
	m := s.load()
	if _, ok := m[ref]; !ok {
		return
	}
	delete(m, ref)
	_ = s.save(m)
}

// Clear deletes the session file.
func (s *Session) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Active reports whether any key is cached.
func (s *Session) Active() bool { return len(s.load()) > 0 }

// Unlocked reports whether the named wallet's key is cached.
func (s *Session) Unlocked(name string) bool {
	_, ok := s.Get(KeyRef(name))
	return ok
}
