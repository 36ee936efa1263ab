package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinsRegistered(t *testing.T) {
	all := AllBuiltins()
	require.Len(t, all, 2)
	assert.Equal(t, BuiltinNFT, all[0].ID)
	assert.Equal(t, BuiltinToken, all[1].ID)
}

func TestTokenABIHasICOFunctions(t *testing.T) {
	a := TokenABI()
	for _, name := range []string{"mint", "claim", "withdraw", "tokenIdsClaimed", "balanceOf", "totalSupply", "owner"} {
		_, ok := a.Methods[name]
		assert.True(t, ok, name)
	}
	assert.True(t, a.Methods["mint"].IsPayable())
	assert.False(t, a.Methods["claim"].IsPayable())
	require.Len(t, a.Constructor.Inputs, 1)
	assert.Equal(t, "address", a.Constructor.Inputs[0].Type.String())
}

func TestNFTABIHasEnumerable(t *testing.T) {
	a := NFTABI()
	m, ok := a.Methods["tokenOfOwnerByIndex"]
	require.True(t, ok)
	assert.Equal(t, "tokenOfOwnerByIndex(address,uint256)", m.Sig)
}

func TestGetBuiltinUnknown(t *testing.T) {
	_, ok := GetBuiltin("erc1155")
	assert.False(t, ok)
}

func TestRegisterBuiltinPanicsOnBadJSON(t *testing.T) {
	assert.Panics(t, func() {
		RegisterBuiltin(Builtin{ID: "broken", JSON: "{not an abi"})
	})
}
