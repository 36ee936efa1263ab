package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohsinsiddi/w3ico/internal/config"
	"github.com/Mohsinsiddi/w3ico/internal/ico"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "1", want: 1},
		{in: " 250 ", want: 250},
		{in: "0", wantErr: true},
		{in: "-3", wantErr: true},
		{in: "1.5", wantErr: true},
		{in: "ten", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ico.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Int64())
		})
	}
}

func TestResolveNetworkPrecedence(t *testing.T) {
	isolate(t)
	var err error
	cfg, err = config.Load(t.TempDir())
	require.NoError(t, err)
	project = &config.Project{}

	n, err := resolveNetwork()
	require.NoError(t, err)
	assert.Equal(t, "goerli", n.Name)

	project.Network = "sepolia"
	n, err = resolveNetwork()
	require.NoError(t, err)
	assert.Equal(t, "sepolia", n.Name)

	networkFlag = "Hardhat"
	n, err = resolveNetwork()
	require.NoError(t, err)
	assert.Equal(t, int64(31337), n.ChainID)

	networkFlag = "atlantis"
	_, err = resolveNetwork()
	assert.Error(t, err)
}

func TestParseAddress(t *testing.T) {
	a, err := parseAddress("nft", "0xe7f1725e7734ce288f8367e1bb143e90bb3f0512")
	require.NoError(t, err)
	assert.Equal(t, "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512", a.Hex())

	_, err = parseAddress("nft", "0x123")
	assert.ErrorContains(t, err, "invalid nft address")
}
