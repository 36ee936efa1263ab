package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

// ErrContractNotFound is returned when a contract is not in the registry.
var ErrContractNotFound = errors.New("contract not found")

// Entry is a deployed or imported contract.
type Entry struct {
	Name       string `json:"name"`
	Network    string `json:"network"`
	Address    string `json:"address"`
	BuiltinID  string `json:"builtin_id,omitempty"`
	Deployer   string `json:"deployer,omitempty"`
	TxHash     string `json:"tx_hash,omitempty"`
	DeployedAt string `json:"deployed_at,omitempty"`
}

// Registry stores contract entries in a JSON file.
type Registry struct {
	path      string
	contracts map[string]*Entry // key: "name@network"
}

// NewRegistry creates a Registry backed by path.
func NewRegistry(path string) *Registry {
	return &Registry{path: path, contracts: make(map[string]*Entry)}
}

// Load reads stored contracts from disk. A missing file is an empty registry.
func (r *Registry) Load() error {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parsing %s: %w", r.path, err)
	}
	for i := range entries {
		e := &entries[i]
		r.contracts[key(e.Name, e.Network)] = e
	}
	return nil
}

// Save writes all contracts to disk.
func (r *Registry) Save() error {
	data, err := json.MarshalIndent(r.All(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, data, 0o600)
}

// Add adds or replaces a contract entry.
func (r *Registry) Add(e *Entry) {
	r.contracts[key(e.Name, e.Network)] = e
}

// Get returns a contract by name and network.
func (r *Registry) Get(name, network string) (*Entry, error) {
	e, ok := r.contracts[key(name, network)]
	if !ok {
		return nil, fmt.Errorf("%w: %s on %s", ErrContractNotFound, name, network)
	}
	return e, nil
}

// All returns every entry sorted by network then name.
func (r *Registry) All() []Entry {
	out := make([]Entry, 0, len(r.contracts))
	for _, e := range r.contracts {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Network != out[j].Network {
			return out[i].Network < out[j].Network
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Remove deletes a contract entry.
func (r *Registry) Remove(name, network string) error {
	k := key(name, network)
	if _, ok := r.contracts[k]; !ok {
		return fmt.Errorf("%w: %s on %s", ErrContractNotFound, name, network)
	}
	delete(r.contracts, k)
	return nil
}

func key(name, network string) string {
	return name + "@" + network
}
