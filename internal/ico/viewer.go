package ico

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Mohsinsiddi/w3ico/internal/chain"
)

// Viewer is a read-only sale for an address without a signing key. It
// offers the same reads as Service and refuses every write.
type Viewer struct {
	*Reader
	addr    common.Address
	ids     ChainIDReader
	network *chain.Network
}

// NewViewer creates a Viewer reading state for addr.
func NewViewer(r *Reader, addr common.Address) *Viewer {
	return &Viewer{Reader: r, addr: addr}
}

// Expect makes Connect verify that ids serves network.
func (v *Viewer) Expect(ids ChainIDReader, network *chain.Network) *Viewer {
	v.ids, v.network = ids, network
	return v
}

// Connect checks the network, when one is expected, and reads the first
// snapshot.
func (v *Viewer) Connect(ctx context.Context) (Snapshot, error) {
	if v.ids != nil && v.network != nil {
		if err := CheckNetwork(ctx, v.ids, v.network); err != nil {
			return Snapshot{}, err
		}
	}
	return v.Reload(ctx), nil
}

// Reload re-reads the snapshot.
func (v *Viewer) Reload(ctx context.Context) Snapshot {
	return v.Refresh(ctx, v.addr)
}

// Wallet returns the viewed address.
func (v *Viewer) Wallet() common.Address { return v.addr }

func (v *Viewer) Mint(context.Context, *big.Int) (*Result, error) { return nil, ErrReadOnly }

func (v *Viewer) Claim(context.Context) (*Result, error) { return nil, ErrReadOnly }

func (v *Viewer) Withdraw(context.Context) (*Result, error) { return nil, ErrReadOnly }
