package ico

import "math/big"

// Action is the single control the page offers at a time.
type Action int

const (
	ActionConnect Action = iota
	ActionLoading
	ActionWithdraw
	ActionClaim
	ActionMint
)

func (a Action) String() string {
	switch a {
	case ActionConnect:
		return "Connect your wallet"
	case ActionLoading:
		return "Loading..."
	case ActionWithdraw:
		return "Withdraw coins"
	case ActionClaim:
		return "Claim tokens"
	case ActionMint:
		return "Mint tokens"
	}
	return "unknown"
}

// NextAction picks the control to show. Priority: connect, loading, owner
// withdrawal, claim when NFTs are unclaimed, otherwise mint.
func NextAction(s Snapshot, loading bool) Action {
	switch {
	case !s.Connected:
		return ActionConnect
	case loading:
		return ActionLoading
	case s.Owner:
		return ActionWithdraw
	case s.Claimable > 0:
		return ActionClaim
	default:
		return ActionMint
	}
}

// MintEnabled reports whether the mint control accepts amount.
func MintEnabled(amount *big.Int) bool {
	return amount != nil && amount.Sign() > 0
}
