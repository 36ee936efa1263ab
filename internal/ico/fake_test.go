package ico

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/Mohsinsiddi/w3ico/internal/chain"
	"github.com/Mohsinsiddi/w3ico/internal/contract"
	"github.com/Mohsinsiddi/w3ico/internal/transact"
)

var (
	tokenAddr = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	nftAddr   = common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")
	alice     = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	bob       = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
)

// fakeChain answers eth_call for the token and NFT contracts from memory.
type fakeChain struct {
	mu       sync.Mutex
	balances map[common.Address]*big.Int
	supply   *big.Int
	owner    common.Address
	nfts     map[common.Address][]int64
	claimed  map[int64]bool
	fail     map[string]error
	calls    map[string]int
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		balances: map[common.Address]*big.Int{},
		supply:   new(big.Int),
		owner:    bob,
		nfts:     map[common.Address][]int64{},
		claimed:  map[int64]bool{},
		fail:     map[string]error{},
		calls:    map[string]int{},
	}
}

func (f *fakeChain) CallContract(_ context.Context, msg chain.CallMsg) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	a, prefix := contract.TokenABI(), "token."
	if *msg.To == nftAddr {
		a, prefix = contract.NFTABI(), "nft."
	}
	m, err := a.MethodById(msg.Data[:4])
	if err != nil {
		return nil, err
	}
	args, err := m.Inputs.Unpack(msg.Data[4:])
	if err != nil {
		return nil, err
	}
	name := prefix + m.Name
	f.calls[name]++
	if err := f.fail[name]; err != nil {
		return nil, err
	}

	var out any
	switch name {
	case "token.balanceOf":
		out = f.balance(args[0].(common.Address))
	case "token.totalSupply":
		out = f.supply
	case "token.owner":
		out = f.owner
	case "token.tokenIdsClaimed":
		out = f.claimed[args[0].(*big.Int).Int64()]
	case "nft.balanceOf":
		out = big.NewInt(int64(len(f.nfts[args[0].(common.Address)])))
	case "nft.tokenOfOwnerByIndex":
		ids := f.nfts[args[0].(common.Address)]
		i := args[1].(*big.Int).Int64()
		if i >= int64(len(ids)) {
			return nil, errors.New("execution reverted: owner index out of bounds")
		}
		out = big.NewInt(ids[i])
	default:
		return nil, errors.New("unexpected call " + name)
	}
	return m.Outputs.Pack(out)
}

func (f *fakeChain) balance(addr common.Address) *big.Int {
	if b, ok := f.balances[addr]; ok {
		return b
	}
	return new(big.Int)
}

func (f *fakeChain) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

// fakeSender records prepared requests and applies a callback when a
// transaction is mined.
type fakeSender struct {
	from     common.Address
	requests []transact.Request
	onMined  func(transact.Request)
	status   uint64
}

func (s *fakeSender) From() common.Address { return s.from }

func (s *fakeSender) Prepare(_ context.Context, req transact.Request) (*transact.Plan, error) {
	s.requests = append(s.requests, req)
	value := req.Value
	if value == nil {
		value = new(big.Int)
	}
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   big.NewInt(5),
		Nonce:     uint64(len(s.requests)),
		GasTipCap: big.NewInt(1),
		GasFeeCap: big.NewInt(2),
		Gas:       req.FallbackGas,
		To:        req.To,
		Value:     value,
		Data:      req.Data,
	})
	return &transact.Plan{
		Tx:      tx,
		ChainID: big.NewInt(5),
		From:    s.from,
		Fees:    &chain.Fees{GasTipCap: big.NewInt(1), GasFeeCap: big.NewInt(2)},
	}, nil
}

func (s *fakeSender) Send(_ context.Context, p *transact.Plan) (common.Hash, error) {
	return p.Tx.Hash(), nil
}

func (s *fakeSender) Wait(_ context.Context, hash common.Hash, _ time.Duration) (*chain.Receipt, error) {
	if s.status == 0 {
		return &chain.Receipt{Hash: hash}, chain.ErrReverted
	}
	if s.onMined != nil {
		s.onMined(s.requests[len(s.requests)-1])
	}
	return &chain.Receipt{Hash: hash, Status: s.status, BlockNumber: 1}, nil
}

func ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}
