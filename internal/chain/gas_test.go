package chain

import (
	"context"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestFeesLondon(t *testing.T) {
	node := newFakeNode(t)
	node.result("eth_gasPrice", "0x77359400")                                          // 2 gwei
	node.result("eth_getBlockByNumber", map[string]any{"baseFeePerGas": "0x3b9aca00"}) // 1 gwei

	fees, err := NewEVMClient(node.srv.URL).SuggestFees(context.Background())
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1_000_000_000), fees.BaseFee)
	assert.Equal(t, big.NewInt(1_000_000_000), fees.GasTipCap)
	assert.Equal(t, big.NewInt(3_000_000_000), fees.GasFeeCap)
}

func TestSuggestFeesLegacyChain(t *testing.T) {
	node := newFakeNode(t)
	node.result("eth_gasPrice", "0x3b9aca00")
	node.on("eth_getBlockByNumber", func([]json.RawMessage) (any, *RPCError) {
		return map[string]any{"number": "0x1"}, nil
	})

	fees, err := NewEVMClient(node.srv.URL).SuggestFees(context.Background())
	require.NoError(t, err)
	assert.Nil(t, fees.BaseFee)
	assert.Equal(t, fees.GasTipCap, fees.GasFeeCap)
}

func TestFeesFromMinimumTip(t *testing.T) {
	// gas price below base fee: tip falls back to 1 gwei.
	fees := feesFrom(big.NewInt(500), big.NewInt(1000))
	assert.Equal(t, big.NewInt(1_000_000_000), fees.GasTipCap)
	assert.Equal(t, big.NewInt(1_000_002_000), fees.GasFeeCap)
}

func TestMaxCost(t *testing.T) {
	fees := &Fees{GasFeeCap: big.NewInt(10)}
	assert.Equal(t, big.NewInt(1000), fees.MaxCost(100, nil))
	assert.Equal(t, big.NewInt(1005), fees.MaxCost(100, big.NewInt(5)))
}
