package contract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Builtin is a contract ABI compiled into the binary. Each one registers
// itself from init() in its own <name>_abi.go file.
type Builtin struct {
	ID          string // machine key, e.g. "token"
	Name        string // human label
	Description string
	JSON        string
	ABI         abi.ABI
}

var builtinRegistry = map[string]Builtin{}

// RegisterBuiltin parses b.JSON and adds it to the registry. It panics on a
// malformed ABI since built-ins are compiled in.
func RegisterBuiltin(b Builtin) {
	parsed, err := abi.JSON(strings.NewReader(b.JSON))
	if err != nil {
		panic(fmt.Sprintf("builtin ABI %s: %v", b.ID, err))
	}
	b.ABI = parsed
	builtinRegistry[b.ID] = b
}

// GetBuiltin returns a built-in by ID.
func GetBuiltin(id string) (Builtin, bool) {
	b, ok := builtinRegistry[id]
	return b, ok
}

// AllBuiltins returns all registered built-ins sorted by ID.
func AllBuiltins() []Builtin {
	out := make([]Builtin, 0, len(builtinRegistry))
	for _, b := range builtinRegistry {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// TokenABI is the parsed ZeroDot618 token ABI.
func TokenABI() abi.ABI { return builtinRegistry[BuiltinToken].ABI }

// NFTABI is the parsed ERC-721 enumerable subset used for claim lookups.
func NFTABI() abi.ABI { return builtinRegistry[BuiltinNFT].ABI }
