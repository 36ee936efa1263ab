package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	c := defaults(t.TempDir())

	require.NoError(t, c.Set(KeyRPCAlgorithm, "failover"))
	assert.Equal(t, "failover", c.RPCAlgorithm)
	assert.Error(t, c.Set(KeyRPCAlgorithm, "random"))

	require.NoError(t, c.Set(KeyLogLevel, "debug"))
	assert.Equal(t, "debug", c.LogLevel)
	assert.Error(t, c.Set(KeyLogLevel, "chatty"))

	require.NoError(t, c.Set(KeyDefaultWallet, "deployer"))
	assert.Equal(t, "deployer", c.DefaultWallet)

	assert.Error(t, c.Set("color", "pink"))
}

func TestSettingsSorted(t *testing.T) {
	s := defaults(t.TempDir()).Settings()
	require.Len(t, s, 4)
	assert.Equal(t, KeyDefaultNetwork, s[0][0])
	assert.Equal(t, "goerli", s[0][1])
	assert.Equal(t, KeyRPCAlgorithm, s[3][0])
}
