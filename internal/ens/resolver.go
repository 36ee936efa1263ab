// Package ens resolves ENS names so a wallet can be given as name.eth.
package ens

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/Mohsinsiddi/w3ico/internal/chain"
)

// RegistryAddress is the ENS registry, deployed at the same address on
// mainnet and the public testnets.
var RegistryAddress = common.HexToAddress("0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e")

// ErrNotFound is returned when a name or address has no record.
var ErrNotFound = errors.New("ens record not found")

const ensABIJSON = `[
  {"type":"function","name":"resolver","stateMutability":"view","inputs":[{"name":"node","type":"bytes32"}],"outputs":[{"name":"","type":"address"}]},
  {"type":"function","name":"addr","stateMutability":"view","inputs":[{"name":"node","type":"bytes32"}],"outputs":[{"name":"","type":"address"}]},
  {"type":"function","name":"name","stateMutability":"view","inputs":[{"name":"node","type":"bytes32"}],"outputs":[{"name":"","type":"string"}]}
]`

var ensABI = func() abi.ABI {
	a, err := abi.JSON(strings.NewReader(ensABIJSON))
	if err != nil {
		panic(err)
	}
	return a
}()

// Caller executes read-only contract calls.
type Caller interface {
	CallContract(ctx context.Context, msg chain.CallMsg) ([]byte, error)
}

// IsName reports whether s looks like an ENS name rather than an address.
func IsName(s string) bool {
	return strings.Contains(s, ".") && !common.IsHexAddress(s)
}

// Namehash implements the EIP-137 namehash.
func Namehash(name string) common.Hash {
	var node common.Hash
	if name == "" {
		return node
	}
	labels := strings.Split(strings.ToLower(name), ".")
	for i := len(labels) - 1; i >= 0; i-- {
		node = crypto.Keccak256Hash(node[:], crypto.Keccak256([]byte(labels[i])))
	}
	return node
}

// Resolve returns the address a name points to.
func Resolve(ctx context.Context, c Caller, name string) (common.Address, error) {
	node := Namehash(name)
	resolver, err := resolverFor(ctx, c, node)
	if err != nil {
		return common.Address{}, fmt.Errorf("resolving %q: %w", name, err)
	}
	var addr common.Address
	if err := call(ctx, c, resolver, "addr", node, &addr); err != nil {
		return common.Address{}, fmt.Errorf("resolving %q: %w", name, err)
	}
	if addr == (common.Address{}) {
		return common.Address{}, fmt.Errorf("%w: no address for %q", ErrNotFound, name)
	}
	return addr, nil
}

// Reverse returns the primary name of addr.
func Reverse(ctx context.Context, c Caller, addr common.Address) (string, error) {
	node := Namehash(strings.ToLower(addr.Hex()[2:]) + ".addr.reverse")
	resolver, err := resolverFor(ctx, c, node)
	if err != nil {
		return "", fmt.Errorf("reverse lookup %s: %w", addr.Hex(), err)
	}
	var name string
	if err := call(ctx, c, resolver, "name", node, &name); err != nil {
		return "", fmt.Errorf("reverse lookup %s: %w", addr.Hex(), err)
	}
	if name == "" {
		return "", fmt.Errorf("%w: no name for %s", ErrNotFound, addr.Hex())
	}
	return name, nil
}

func resolverFor(ctx context.Context, c Caller, node common.Hash) (common.Address, error) {
	var resolver common.Address
	if err := call(ctx, c, RegistryAddress, "resolver", node, &resolver); err != nil {
		return common.Address{}, err
	}
	if resolver == (common.Address{}) {
		return common.Address{}, fmt.Errorf("%w: no resolver", ErrNotFound)
	}
	return resolver, nil
}

func call(ctx context.Context, c Caller, to common.Address, method string, node common.Hash, out any) error {
	data, err := ensABI.Pack(method, node)
	if err != nil {
		return err
	}
	res, err := c.CallContract(ctx, chain.CallMsg{To: &to, Data: data})
	if err != nil {
		return err
	}
	return ensABI.UnpackIntoInterface(out, method, res)
}
