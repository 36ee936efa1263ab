package config_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/Mohsinsiddi/w3ico/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.ProjectFile)
	p, err := config.LoadProject(path)
	require.NoError(t, err)
	assert.Equal(t, path, p.Path())
	assert.Empty(t, p.NFTContract)
}

func TestProjectRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.ProjectFile)
	p, err := config.LoadProject(path)
	require.NoError(t, err)

	p.Network = "goerli"
	p.NFTContract = "0x1111111111111111111111111111111111111111"
	p.TokenContract = "0x2222222222222222222222222222222222222222"
	require.NoError(t, p.Save())

	loaded, err := config.LoadProject(path)
	require.NoError(t, err)
	assert.Equal(t, "goerli", loaded.Network)
	assert.Equal(t, p.NFTContract, loaded.NFTContract)
	assert.Equal(t, p.TokenContract, loaded.TokenContract)
}

func TestProjectEnvOverrides(t *testing.T) {
	t.Setenv(config.EnvNetwork, "sepolia")
	t.Setenv(config.EnvNFTContract, "0xaaaa")
	t.Setenv(config.EnvTokenContract, "0xbbbb")

	p := &config.Project{Network: "goerli", NFTContract: "0x1", TokenContract: "0x2"}
	p.ApplyEnv()

	assert.Equal(t, "sepolia", p.Network)
	assert.Equal(t, "0xaaaa", p.NFTContract)
	assert.Equal(t, "0xbbbb", p.TokenContract)
}

func TestProjectRequireAddresses(t *testing.T) {
	p := &config.Project{}

	_, err := p.RequireNFT()
	assert.True(t, errors.Is(err, config.ErrNoContract))
	_, err = p.RequireToken()
	assert.True(t, errors.Is(err, config.ErrNoContract))

	p.NFTContract = "0xnft"
	p.TokenContract = "0xtoken"
	nft, err := p.RequireNFT()
	require.NoError(t, err)
	assert.Equal(t, "0xnft", nft)
	tok, err := p.RequireToken()
	require.NoError(t, err)
	assert.Equal(t, "0xtoken", tok)
}
