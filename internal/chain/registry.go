package chain

import (
	"errors"
	"sort"
	"strings"
)

// ErrNetworkNotFound is returned when a network is not in the registry.
var ErrNetworkNotFound = errors.New("network not found")

// Network holds the metadata w3ico needs for one EVM network.
type Network struct {
	Name           string   `json:"name"`
	DisplayName    string   `json:"display_name"`
	ChainID        int64    `json:"chain_id"`
	NativeCurrency string   `json:"native_currency"`
	RPCs           []string `json:"rpcs"`
	Explorer       string   `json:"explorer"`
	FaucetURL      string   `json:"faucet_url,omitempty"`
	Testnet        bool     `json:"testnet"`
}

// Registry is the network registry.
type Registry struct {
	networks []Network
	byName   map[string]*Network
	byID     map[int64]*Network
}

// NewRegistry returns the registry of built-in networks.
func NewRegistry() *Registry {
	nets := allNetworks()
	r := &Registry{
		networks: nets,
		byName:   make(map[string]*Network, len(nets)),
		byID:     make(map[int64]*Network, len(nets)),
	}
	for i := range r.networks {
		n := &r.networks[i]
		r.byName[n.Name] = n
		r.byID[n.ChainID] = n
	}
	return r
}

// All returns every network sorted by name.
func (r *Registry) All() []Network {
	out := make([]Network, len(r.networks))
	copy(out, r.networks)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// GetByName finds a network by its slug (e.g. "goerli").
func (r *Registry) GetByName(name string) (*Network, error) {
	n, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return nil, ErrNetworkNotFound
	}
	return n, nil
}

// GetByChainID finds a network by its numeric chain ID.
func (r *Registry) GetByChainID(id int64) (*Network, error) {
	n, ok := r.byID[id]
	if !ok {
		return nil, ErrNetworkNotFound
	}
	return n, nil
}

// TxURL returns the explorer link for a transaction, or "" without an explorer.
func (n *Network) TxURL(hash string) string {
	if n.Explorer == "" {
		return ""
	}
	return n.Explorer + "/tx/" + hash
}

// AddressURL returns the explorer link for an address, or "" without an explorer.
func (n *Network) AddressURL(addr string) string {
	if n.Explorer == "" {
		return ""
	}
	return n.Explorer + "/address/" + addr
}

func allNetworks() []Network {
	return []Network{
		{
			Name: "goerli", DisplayName: "Goerli", ChainID: 5, NativeCurrency: "ETH", Testnet: true,
			RPCs:      []string{"https://ethereum-goerli-rpc.publicnode.com", "https://rpc.ankr.com/eth_goerli"},
			Explorer:  "https://goerli.etherscan.io",
			FaucetURL: "https://goerlifaucet.com",
		},
		{
			Name: "sepolia", DisplayName: "Sepolia", ChainID: 11155111, NativeCurrency: "ETH", Testnet: true,
			RPCs:      []string{"https://ethereum-sepolia-rpc.publicnode.com", "https://rpc.sepolia.org"},
			Explorer:  "https://sepolia.etherscan.io",
			FaucetURL: "https://sepoliafaucet.com",
		},
		{
			Name: "holesky", DisplayName: "Holesky", ChainID: 17000, NativeCurrency: "ETH", Testnet: true,
			RPCs:     []string{"https://ethereum-holesky-rpc.publicnode.com"},
			Explorer: "https://holesky.etherscan.io",
		},
		{
			Name: "ethereum", DisplayName: "Ethereum", ChainID: 1, NativeCurrency: "ETH",
			RPCs:     []string{"https://eth.llamarpc.com", "https://ethereum-rpc.publicnode.com"},
			Explorer: "https://etherscan.io",
		},
		{
			Name: "hardhat", DisplayName: "Hardhat Local", ChainID: 31337, NativeCurrency: "ETH", Testnet: true,
			RPCs: []string{"http://127.0.0.1:8545"},
		},
	}
}
