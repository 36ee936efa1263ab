package ico

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/Mohsinsiddi/w3ico/internal/chain"
	"github.com/Mohsinsiddi/w3ico/internal/config"
	"github.com/Mohsinsiddi/w3ico/internal/transact"
)

// Sender builds and submits transactions for one wallet.
// *transact.Transactor implements it.
type Sender interface {
	From() common.Address
	Prepare(ctx context.Context, req transact.Request) (*transact.Plan, error)
	Send(ctx context.Context, p *transact.Plan) (common.Hash, error)
	Wait(ctx context.Context, hash common.Hash, timeout time.Duration) (*chain.Receipt, error)
}

// Result is the outcome of a write followed by a refresh.
type Result struct {
	Receipt  *chain.Receipt
	Snapshot Snapshot
}

// Service combines reads with the mint, claim and withdraw writes.
type Service struct {
	*Reader
	sender  Sender
	timeout time.Duration
	ids     ChainIDReader
	network *chain.Network
}

// NewService creates a Service sending from sender.
func NewService(r *Reader, sender Sender) *Service {
	return &Service{Reader: r, sender: sender, timeout: config.TxConfirmTimeout}
}

// Expect makes Connect verify that ids serves network.
func (s *Service) Expect(ids ChainIDReader, network *chain.Network) *Service {
	s.ids, s.network = ids, network
	return s
}

// Connect checks the network, when one is expected, and reads the
// connected wallet's first snapshot.
func (s *Service) Connect(ctx context.Context) (Snapshot, error) {
	if s.ids != nil && s.network != nil {
		if err := CheckNetwork(ctx, s.ids, s.network); err != nil {
			return Snapshot{}, err
		}
	}
	return s.Reload(ctx), nil
}

// Reload re-reads the connected wallet's snapshot.
func (s *Service) Reload(ctx context.Context) Snapshot {
	return s.Refresh(ctx, s.Wallet())
}

// Wallet returns the connected wallet address.
func (s *Service) Wallet() common.Address { return s.sender.From() }

// MintData encodes mint(amount).
func (s *Service) MintData(amount *big.Int) ([]byte, error) {
	return s.tokenABI.Pack("mint", amount)
}

// PlanMint prepares mint(amount) paying amount × 0.001 ether.
func (s *Service) PlanMint(ctx context.Context, amount *big.Int) (*transact.Plan, error) {
	value, err := MintCost(amount)
	if err != nil {
		return nil, err
	}
	data, err := s.MintData(amount)
	if err != nil {
		return nil, err
	}
	return s.sender.Prepare(ctx, transact.Request{
		To:          &s.token,
		Data:        data,
		Value:       value,
		FallbackGas: config.GasLimitMint,
	})
}

// PlanClaim prepares claim(). It fails with ErrNothingToClaim when every
// NFT held by the wallet has already been claimed.
func (s *Service) PlanClaim(ctx context.Context) (*transact.Plan, error) {
	n, err := s.Unclaimed(ctx, s.Wallet())
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNothingToClaim
	}
	data, err := s.tokenABI.Pack("claim")
	if err != nil {
		return nil, err
	}
	return s.sender.Prepare(ctx, transact.Request{
		To:          &s.token,
		Data:        data,
		FallbackGas: config.GasLimitClaim,
	})
}

// PlanWithdraw prepares withdraw(). Only the contract owner may call it.
func (s *Service) PlanWithdraw(ctx context.Context) (*transact.Plan, error) {
	owner, err := s.OwnerAddress(ctx)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(owner.Hex(), s.Wallet().Hex()) {
		return nil, fmt.Errorf("%w (owner is %s)", ErrNotOwner, owner.Hex())
	}
	data, err := s.tokenABI.Pack("withdraw")
	if err != nil {
		return nil, err
	}
	return s.sender.Prepare(ctx, transact.Request{
		To:          &s.token,
		Data:        data,
		FallbackGas: config.GasLimitWithdraw,
	})
}

// Execute sends a prepared plan, waits for it to be mined and refreshes
// the wallet's snapshot. A reverted transaction still refreshes.
func (s *Service) Execute(ctx context.Context, p *transact.Plan) (*Result, error) {
	hash, err := s.sender.Send(ctx, p)
	if err != nil {
		return nil, err
	}
	rcpt, err := s.sender.Wait(ctx, hash, s.timeout)
	if err != nil && !errors.Is(err, chain.ErrReverted) {
		return &Result{Receipt: rcpt}, err
	}
	s.log.Debug("refreshing after write", zap.Stringer("tx", hash))
	return &Result{Receipt: rcpt, Snapshot: s.Refresh(ctx, s.Wallet())}, err
}

// Mint plans and executes mint(amount).
func (s *Service) Mint(ctx context.Context, amount *big.Int) (*Result, error) {
	p, err := s.PlanMint(ctx, amount)
	if err != nil {
		return nil, err
	}
	return s.Execute(ctx, p)
}

// Claim plans and executes claim().
func (s *Service) Claim(ctx context.Context) (*Result, error) {
	p, err := s.PlanClaim(ctx)
	if err != nil {
		return nil, err
	}
	return s.Execute(ctx, p)
}

// Withdraw plans and executes withdraw().
func (s *Service) Withdraw(ctx context.Context) (*Result, error) {
	p, err := s.PlanWithdraw(ctx)
	if err != nil {
		return nil, err
	}
	return s.Execute(ctx, p)
}
