package chain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/params"
)

var (
	weiPerEther = big.NewInt(params.Ether)
	weiPerGwei  = big.NewInt(params.GWei)
)

// FormatEther renders an 18-decimal amount the way ethers.js formatEther does:
// trailing zeros are trimmed but at least one fractional digit remains
// ("1.0", "0.001", "10000.0").
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0.0"
	}
	neg := wei.Sign() < 0
	abs := new(big.Int).Abs(wei)

	whole, frac := new(big.Int).QuoRem(abs, weiPerEther, new(big.Int))
	fracStr := strings.TrimRight(fmt.Sprintf("%018s", frac.String()), "0")
	if fracStr == "" {
		fracStr = "0"
	}
	out := whole.String() + "." + fracStr
	if neg {
		out = "-" + out
	}
	return out
}

// WeiToGwei converts wei to whole gwei, rounding down.
func WeiToGwei(wei *big.Int) uint64 {
	if wei == nil {
		return 0
	}
	return new(big.Int).Quo(wei, weiPerGwei).Uint64()
}
