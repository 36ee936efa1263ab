package wallet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "w3ico", "session.json")
	s := NewSession(path)
	assert.False(t, s.Active())

	require.NoError(t, s.Put(map[string]string{KeyRef("a"): "k1", KeyRef("b"): "k2"}))
	assert.True(t, s.Active())
	assert.True(t, s.Unlocked("a"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	s.Remove(KeyRef("a"))
	assert.False(t, s.Unlocked("a"))
	assert.True(t, s.Unlocked("b"))

	require.NoError(t, s.Clear())
	assert.False(t, s.Active())
	require.NoError(t, s.Clear())
}

func TestSessionCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0o600))
	s := NewSession(path)
	assert.False(t, s.Active())
	require.NoError(t, s.Put(map[string]string{"x": "y"}))
	v, ok := s.Get("x")
	assert.True(t, ok)
	assert.Equal(t, "y", v)
}
