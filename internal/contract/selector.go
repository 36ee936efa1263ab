package contract

import (
	"encoding/hex"
	"sort"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"golang.org/x/crypto/sha3"
)

// MethodInfo is one function of an ABI with its 4-byte selector.
type MethodInfo struct {
	Signature       string // e.g. "mint(uint256)"
	Selector        string // e.g. "0xa0712d68"
	StateMutability string
}

// Selector returns the 0x-prefixed 4-byte selector of a canonical signature.
func Selector(sig string) string {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(sig))
	return "0x" + hex.EncodeToString(h.Sum(nil)[:4])
}

// Methods lists every function of a in signature order.
func Methods(a abi.ABI) []MethodInfo {
	out := make([]MethodInfo, 0, len(a.Methods))
	for _, m := range a.Methods {
		out = append(out, MethodInfo{
			Signature:       m.Sig,
			Selector:        Selector(m.Sig),
			StateMutability: m.StateMutability,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Signature < out[j].Signature })
	return out
}
