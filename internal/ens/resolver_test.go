package ens

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohsinsiddi/w3ico/internal/chain"
)

var (
	publicResolver = common.HexToAddress("0x231b0Ee14048e9dCcD1d247744d114a4EB5E8E63")
	alice          = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
)

// fakeENS answers registry and resolver calls from maps keyed by node.
type fakeENS struct {
	resolvers map[common.Hash]common.Address
	addrs     map[common.Hash]common.Address
	names     map[common.Hash]string
	err       error
}

func (f *fakeENS) CallContract(_ context.Context, msg chain.CallMsg) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	m, err := ensABI.MethodById(msg.Data[:4])
	if err != nil {
		return nil, err
	}
	in, err := m.Inputs.Unpack(msg.Data[4:])
	if err != nil {
		return nil, err
	}
	node := common.Hash(in[0].([32]byte))
	var out any
	switch {
	case m.Name == "resolver" && *msg.To == RegistryAddress:
		out = f.resolvers[node]
	case m.Name == "addr" && *msg.To == publicResolver:
		out = f.addrs[node]
	case m.Name == "name" && *msg.To == publicResolver:
		out = f.names[node]
	default:
		return nil, errors.New("execution reverted")
	}
	return abi.Arguments(m.Outputs).Pack(out)
}

func newFakeENS() *fakeENS {
	return &fakeENS{
		resolvers: map[common.Hash]common.Address{},
		addrs:     map[common.Hash]common.Address{},
		names:     map[common.Hash]string{},
	}
}

func TestNamehash(t *testing.T) {
	assert.Equal(t, common.Hash{}, Namehash(""))
	assert.Equal(t, "0x93cdeb708b7545dc668eb9280176169d1c33cfd8ed6f04690a0bcc88a93fc4ae", Namehash("eth").Hex())
	assert.Equal(t, "0xde9b09fd7c5f901e23a3f19fecc54828e9c848539801e86591bd9801b019f84f", Namehash("foo.eth").Hex())
	assert.Equal(t, Namehash("foo.eth"), Namehash("FOO.eth"))
}

func TestIsName(t *testing.T) {
	assert.True(t, IsName("alice.eth"))
	assert.False(t, IsName("alice"))
	assert.False(t, IsName(alice.Hex()))
}

func TestResolve(t *testing.T) {
	f := newFakeENS()
	node := Namehash("alice.eth")
	f.resolvers[node] = publicResolver
	f.addrs[node] = alice

	got, err := Resolve(context.Background(), f, "alice.eth")
	require.NoError(t, err)
	assert.Equal(t, alice, got)
}

func TestResolveMissing(t *testing.T) {
	f := newFakeENS()
	_, err := Resolve(context.Background(), f, "nobody.eth")
	assert.ErrorIs(t, err, ErrNotFound)

	f.resolvers[Namehash("empty.eth")] = publicResolver
	_, err = Resolve(context.Background(), f, "empty.eth")
	assert.ErrorIs(t, err, ErrNotFound)

	f.err = errors.New("connection refused")
	_, err = Resolve(context.Background(), f, "alice.eth")
	assert.ErrorContains(t, err, "connection refused")
}

func TestReverse(t *testing.T) {
	f := newFakeENS()
	node := Namehash("f39fd6e51aad88f6f4ce6ab8827279cfffb92266.addr.reverse")
	f.resolvers[node] = publicResolver
	f.names[node] = "alice.eth"

	name, err := Reverse(context.Background(), f, alice)
	require.NoError(t, err)
	assert.Equal(t, "alice.eth", name)

	_, err = Reverse(context.Background(), f, publicResolver)
	assert.ErrorIs(t, err, ErrNotFound)
}
