package ico

import (
	"context"
	"fmt"

	"github.com/Mohsinsiddi/w3ico/internal/chain"
)

// ChainIDReader reports the chain a node is serving.
type ChainIDReader interface {
	ChainID(ctx context.Context) (int64, error)
}

// CheckNetwork verifies that the node serves the expected network.
func CheckNetwork(ctx context.Context, c ChainIDReader, want *chain.Network) error {
	id, err := c.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("reading chain id: %w", err)
	}
	if id == want.ChainID {
		return nil
	}
	serving := fmt.Sprintf("chain %d", id)
	if n, err := chain.NewRegistry().GetByChainID(id); err == nil {
		serving = fmt.Sprintf("%s, chain %d", n.DisplayName, id)
	}
	return fmt.Errorf("%w: change the network to %s (node serves %s)", ErrWrongNetwork, want.DisplayName, serving)
}
