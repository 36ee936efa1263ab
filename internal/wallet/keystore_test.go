package wallet

import (
	"path/filepath"
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeystoreRoundTrip(t *testing.T) {
	ks := NewKeystore(keyring.NewArrayKeyring(nil), nil)

	ref, err := ks.Store("deployer", "abc")
	require.NoError(t, err)
	assert.Equal(t, "w3ico.deployer", ref)

	got, err := ks.Retrieve(ref)
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	require.NoError(t, ks.Delete(ref))
	_, err = ks.Retrieve(ref)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestKeystorePrefersSession(t *testing.T) {
	session := NewSession(filepath.Join(t.TempDir(), "session.json"))
	ks := NewKeystore(keyring.NewArrayKeyring(nil), session)

	require.NoError(t, session.Put(map[string]string{KeyRef("hot"): "cached"}))
	got, err := ks.Retrieve(KeyRef("hot"))
	require.NoError(t, err)
	assert.Equal(t, "cached", got)

	require.NoError(t, ks.Delete(KeyRef("hot")))
	assert.False(t, session.Unlocked("hot"))
}

func TestMemKeyStoreMissing(t *testing.T) {
	_, err := NewMemKeyStore().Retrieve("nothing")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
