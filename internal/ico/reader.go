package ico

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Mohsinsiddi/w3ico/internal/chain"
	"github.com/Mohsinsiddi/w3ico/internal/contract"
)

// Caller executes read-only contract calls. *chain.EVMClient implements it.
type Caller interface {
	CallContract(ctx context.Context, msg chain.CallMsg) ([]byte, error)
}

// Reader queries the token and NFT contracts.
type Reader struct {
	caller   Caller
	token    common.Address
	nft      common.Address
	tokenABI abi.ABI
	nftABI   abi.ABI
	log      *zap.Logger
	workers  int
}

// Option configures a Reader.
type Option func(*Reader)

// WithLogger sets the logger read failures go to.
func WithLogger(l *zap.Logger) Option {
	return func(r *Reader) {
		if l != nil {
			r.log = l
		}
	}
}

// WithScanWorkers bounds the number of concurrent lookups during the claim
// scan. Values below 2 keep the scan sequential.
func WithScanWorkers(n int) Option { return func(r *Reader) { r.workers = n } }

// NewReader creates a Reader for the given token and NFT contracts.
func NewReader(c Caller, token, nft common.Address, opts ...Option) *Reader {
	r := &Reader{
		caller:   c,
		token:    token,
		nft:      nft,
		tokenABI: contract.TokenABI(),
		nftABI:   contract.NFTABI(),
		log:      zap.NewNop(),
		workers:  1,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Token returns the token contract address.
func (r *Reader) Token() common.Address { return r.token }

// NFT returns the NFT contract address.
func (r *Reader) NFT() common.Address { return r.nft }

func (r *Reader) call(ctx context.Context, to common.Address, a abi.ABI, method string, args ...any) ([]any, error) {
	data, err := a.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	out, err := r.caller.CallContract(ctx, chain.CallMsg{To: &to, Data: data})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	vals, err := a.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("%s: empty result", method)
	}
	return vals, nil
}

func (r *Reader) callUint(ctx context.Context, to common.Address, a abi.ABI, method string, args ...any) (*big.Int, error) {
	vals, err := r.call(ctx, to, a, method, args...)
	if err != nil {
		return nil, err
	}
	v, ok := vals[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected result type %T", method, vals[0])
	}
	return v, nil
}

// BalanceOf returns token.balanceOf(addr) in base units.
func (r *Reader) BalanceOf(ctx context.Context, addr common.Address) (*big.Int, error) {
	return r.callUint(ctx, r.token, r.tokenABI, "balanceOf", addr)
}

// TotalSupply returns token.totalSupply() in base units.
func (r *Reader) TotalSupply(ctx context.Context) (*big.Int, error) {
	return r.callUint(ctx, r.token, r.tokenABI, "totalSupply")
}

// OwnerAddress returns token.owner().
func (r *Reader) OwnerAddress(ctx context.Context) (common.Address, error) {
	vals, err := r.call(ctx, r.token, r.tokenABI, "owner")
	if err != nil {
		return common.Address{}, err
	}
	owner, ok := vals[0].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("owner: unexpected result type %T", vals[0])
	}
	return owner, nil
}

// Unclaimed counts the NFTs held by addr whose token IDs have not been
// used for a claim yet.
func (r *Reader) Unclaimed(ctx context.Context, addr common.Address) (int64, error) {
	held, err := r.callUint(ctx, r.nft, r.nftABI, "balanceOf", addr)
	if err != nil {
		return 0, err
	}
	if held.Sign() == 0 {
		return 0, nil
	}
	if !held.IsInt64() {
		return 0, fmt.Errorf("nft balance %s out of range", held)
	}
	n := held.Int64()

	if r.workers < 2 {
		var count int64
		for i := int64(0); i < n; i++ {
			claimed, err := r.claimedAt(ctx, addr, i)
			if err != nil {
				return 0, err
			}
			if !claimed {
				count++
			}
		}
		return count, nil
	}

	var count atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i := int64(0); i < n; i++ {
		g.Go(func() error {
			claimed, err := r.claimedAt(gctx, addr, i)
			if err != nil {
				return err
			}
			if !claimed {
				count.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return count.Load(), nil
}

func (r *Reader) claimedAt(ctx context.Context, addr common.Address, index int64) (bool, error) {
	id, err := r.callUint(ctx, r.nft, r.nftABI, "tokenOfOwnerByIndex", addr, big.NewInt(index))
	if err != nil {
		return false, err
	}
	vals, err := r.call(ctx, r.token, r.tokenABI, "tokenIdsClaimed", id)
	if err != nil {
		return false, err
	}
	claimed, ok := vals[0].(bool)
	if !ok {
		return false, fmt.Errorf("tokenIdsClaimed: unexpected result type %T", vals[0])
	}
	return claimed, nil
}

// TokenBalance is BalanceOf with failures logged and reported as zero.
func (r *Reader) TokenBalance(ctx context.Context, addr common.Address) *big.Int {
	v, err := r.BalanceOf(ctx, addr)
	if err != nil {
		r.log.Error("reading token balance", zap.Stringer("address", addr), zap.Error(err))
		return new(big.Int)
	}
	return v
}

// TotalMinted is TotalSupply with failures logged and reported as zero.
func (r *Reader) TotalMinted(ctx context.Context) *big.Int {
	v, err := r.TotalSupply(ctx)
	if err != nil {
		r.log.Error("reading total minted", zap.Error(err))
		return new(big.Int)
	}
	return v
}

// TokensToBeClaimed is Unclaimed with failures logged and reported as zero.
func (r *Reader) TokensToBeClaimed(ctx context.Context, addr common.Address) int64 {
	n, err := r.Unclaimed(ctx, addr)
	if err != nil {
		r.log.Error("reading claimable NFTs", zap.Stringer("address", addr), zap.Error(err))
		return 0
	}
	return n
}

// IsOwner reports whether addr owns the token contract. Failures are
// logged and reported as false.
func (r *Reader) IsOwner(ctx context.Context, addr common.Address) bool {
	owner, err := r.OwnerAddress(ctx)
	if err != nil {
		r.log.Error("reading owner", zap.Error(err))
		return false
	}
	return strings.EqualFold(owner.Hex(), addr.Hex())
}

// Snapshot is everything the page displays for one wallet.
type Snapshot struct {
	Address   common.Address
	Connected bool
	Balance   *big.Int
	Minted    *big.Int
	Claimable int64 // unclaimed NFTs
	Owner     bool
}

// Refresh reads a fresh Snapshot for addr in page order: balance, total
// minted, claimable, owner.
func (r *Reader) Refresh(ctx context.Context, addr common.Address) Snapshot {
	return Snapshot{
		Address:   addr,
		Connected: true,
		Balance:   r.TokenBalance(ctx, addr),
		Minted:    r.TotalMinted(ctx),
		Claimable: r.TokensToBeClaimed(ctx, addr),
		Owner:     r.IsOwner(ctx, addr),
	}
}

// BalanceLine formats the wallet's token balance.
func (s Snapshot) BalanceLine() string {
	return fmt.Sprintf("You have minted %s ZeroDot618 Tokens", chain.FormatEther(orZero(s.Balance)))
}

// MintedLine formats the sale progress against the cap.
func (s Snapshot) MintedLine() string {
	return fmt.Sprintf("Overall %s/%d have been minted!!!", chain.FormatEther(orZero(s.Minted)), MaxTotalSupply)
}

// ClaimLine formats the claimable token count.
func (s Snapshot) ClaimLine() string {
	return fmt.Sprintf("%d Tokens can be claimed!", ClaimableTokens(s.Claimable))
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
