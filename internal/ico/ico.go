// Package ico reads and drives the ZeroDot618 token sale: balances, the
// minted total, NFT-based claims, paid mints and the owner withdrawal.
package ico

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/params"
)

const (
	// MaxTotalSupply is the token cap, in whole tokens.
	MaxTotalSupply = 10000
	// TokensPerNFT is how many tokens one unclaimed NFT is worth.
	TokensPerNFT = 10
)

var (
	ErrWrongNetwork   = errors.New("wrong network")
	ErrNotOwner       = errors.New("connected wallet is not the contract owner")
	ErrNothingToClaim = errors.New("no unclaimed NFTs for this wallet")
	ErrInvalidAmount  = errors.New("amount must be a positive whole number of tokens")
	ErrReadOnly       = errors.New("read-only wallet cannot send transactions")
)

// TokenPrice returns the price of one token in wei (0.001 ether).
func TokenPrice() *big.Int {
	return big.NewInt(params.Ether / 1000)
}

// MintCost is the ether value that must accompany mint(amount).
func MintCost(amount *big.Int) (*big.Int, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	return new(big.Int).Mul(amount, TokenPrice()), nil
}

// ClaimableTokens converts an unclaimed NFT count into tokens.
func ClaimableTokens(nfts int64) int64 { return nfts * TokensPerNFT }
