// Package transact builds, signs and broadcasts EIP-1559 transactions.
package transact

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/Mohsinsiddi/w3ico/internal/chain"
	"github.com/Mohsinsiddi/w3ico/internal/config"
)

// Backend is the subset of chain.EVMClient needed to send transactions.
type Backend interface {
	ChainID(ctx context.Context) (int64, error)
	PendingNonce(ctx context.Context, addr common.Address) (uint64, error)
	SuggestFees(ctx context.Context) (*chain.Fees, error)
	EstimateGas(ctx context.Context, msg chain.CallMsg) (uint64, error)
	SendRawTransaction(ctx context.Context, raw []byte) (common.Hash, error)
	WaitForReceipt(ctx context.Context, hash common.Hash, timeout, poll time.Duration) (*chain.Receipt, error)
}

// Signer signs transactions for a single address. *wallet.Signer implements it.
type Signer interface {
	Address() common.Address
	SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

// Request describes a transaction to build. A nil To creates a contract.
type Request struct {
	To    *common.Address
	Data  []byte
	Value *big.Int
	// FallbackGas is used when estimation fails. Zero makes estimation
	// failures fatal.
	FallbackGas uint64
}

// Plan is a built but unsigned transaction together with its cost.
type Plan struct {
	Tx        *types.Transaction
	ChainID   *big.Int
	From      common.Address
	Fees      *chain.Fees
	Estimated bool
}

// MaxCost is the worst-case amount debited from the sender.
func (p *Plan) MaxCost() *big.Int {
	return p.Fees.MaxCost(p.Tx.Gas(), p.Tx.Value())
}

// Transactor sends transactions from one signer.
type Transactor struct {
	backend Backend
	signer  Signer
	log     *zap.Logger
	poll    time.Duration
}

// New creates a Transactor.
func New(backend Backend, signer Signer, log *zap.Logger) *Transactor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Transactor{backend: backend, signer: signer, log: log, poll: config.ReceiptPoll}
}

// From returns the sending address.
func (t *Transactor) From() common.Address { return t.signer.Address() }

// Prepare fills nonce, fees and gas for req.
func (t *Transactor) Prepare(ctx context.Context, req Request) (*Plan, error) {
	from := t.signer.Address()
	value := req.Value
	if value == nil {
		value = new(big.Int)
	}

	id, err := t.backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("chain id: %w", err)
	}
	nonce, err := t.backend.PendingNonce(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}
	fees, err := t.backend.SuggestFees(ctx)
	if err != nil {
		return nil, fmt.Errorf("fees: %w", err)
	}

	estimated := true
	gas, err := t.backend.EstimateGas(ctx, chain.CallMsg{From: from, To: req.To, Data: req.Data, Value: value})
	switch {
	case err == nil:
		gas += gas / 5
	case req.FallbackGas > 0:
		t.log.Warn("gas estimation failed, using fallback",
			zap.Error(err), zap.Uint64("gas", req.FallbackGas))
		gas, estimated = req.FallbackGas, false
	default:
		return nil, fmt.Errorf("estimate gas: %w", err)
	}

	chainID := big.NewInt(id)
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: fees.GasTipCap,
		GasFeeCap: fees.GasFeeCap,
		Gas:       gas,
		To:        req.To,
		Value:     value,
		Data:      req.Data,
	})
	return &Plan{Tx: tx, ChainID: chainID, From: from, Fees: fees, Estimated: estimated}, nil
}

// Send signs and broadcasts a prepared transaction.
func (t *Transactor) Send(ctx context.Context, p *Plan) (common.Hash, error) {
	signed, err := t.signer.SignTx(p.Tx, p.ChainID)
	if err != nil {
		return common.Hash{}, fmt.Errorf("sign: %w", err)
	}
	raw, err := signed.MarshalBinary()
	if err != nil {
		return common.Hash{}, err
	}
	hash, err := t.backend.SendRawTransaction(ctx, raw)
	if err != nil {
		return common.Hash{}, fmt.Errorf("broadcast: %w", err)
	}
	t.log.Info("transaction sent",
		zap.Stringer("hash", hash),
		zap.Uint64("nonce", p.Tx.Nonce()),
		zap.Uint64("gas", p.Tx.Gas()))
	return hash, nil
}

// Wait blocks until hash is mined. A reverted receipt is returned together
// with chain.ErrReverted.
func (t *Transactor) Wait(ctx context.Context, hash common.Hash, timeout time.Duration) (*chain.Receipt, error) {
	rcpt, err := t.backend.WaitForReceipt(ctx, hash, timeout, t.poll)
	if rcpt != nil {
		t.log.Debug("receipt",
			zap.Stringer("hash", hash),
			zap.Uint64("block", rcpt.BlockNumber),
			zap.Uint64("status", rcpt.Status))
	}
	return rcpt, err
}
