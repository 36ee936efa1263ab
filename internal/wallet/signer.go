package wallet

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer signs transactions for one wallet.
type Signer struct {
	wallet *Wallet
	keys   KeyStore
}

// NewSigner returns a signer for w. Watch-only wallets are rejected.
func NewSigner(w *Wallet, keys KeyStore) (*Signer, error) {
	if !w.CanSign() {
		return nil, fmt.Errorf("%w: %s", ErrWatchOnly, w.Name)
	}
	return &Signer{wallet: w, keys: keys}, nil
}

// Address returns the signing address.
func (s *Signer) Address() common.Address { return s.wallet.Addr() }

// SignTx signs tx for chainID.
func (s *Signer) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	key, err := s.key()
	if err != nil {
		return nil, err
	}
	return types.SignTx(tx, types.LatestSignerForChainID(chainID), key)
}

func (s *Signer) key() (*ecdsa.PrivateKey, error) {
	hexKey, err := s.keys.Retrieve(s.wallet.KeyRef)
	if err != nil {
		return nil, fmt.Errorf("loading key for %s: %w", s.wallet.Name, err)
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	if crypto.PubkeyToAddress(key.PublicKey) != s.wallet.Addr() {
		return nil, fmt.Errorf("stored key does not match wallet %s", s.wallet.Name)
	}
	return key, nil
}
