// Package rpc picks an RPC endpoint for a network out of its candidate URLs.
package rpc

import (
	"errors"
	"sync"
	"time"
)

// ErrNoHealthyRPC is returned when no healthy RPC endpoint is available.
var ErrNoHealthyRPC = errors.New("no healthy RPC endpoint available")

// Algorithm defines how an RPC endpoint is selected.
type Algorithm string

const (
	AlgorithmFastest    Algorithm = "fastest"
	AlgorithmRoundRobin Algorithm = "round-robin"
	AlgorithmFailover   Algorithm = "failover"

	// Nodes more than this many blocks behind the best are skipped.
	staleBlockThreshold = 3
	cacheTTL            = 5 * time.Minute
)

// ParseAlgorithm maps a config string to an Algorithm. Empty or unknown
// values select AlgorithmFastest.
func ParseAlgorithm(s string) Algorithm {
	switch a := Algorithm(s); a {
	case AlgorithmRoundRobin, AlgorithmFailover:
		return a
	default:
		return AlgorithmFastest
	}
}

// Endpoint is one RPC URL with its measured attributes.
type Endpoint struct {
	URL         string
	Latency     time.Duration
	BlockNumber uint64
	Healthy     bool
}

// Picker selects an endpoint according to its algorithm. It is safe for
// concurrent use.
type Picker struct {
	algo Algorithm

	mu          sync.Mutex
	next        int
	cachedURL   string
	cacheExpiry time.Time
	now         func() time.Time
}

// NewPicker creates a Picker for algo.
func NewPicker(algo Algorithm) *Picker {
	return &Picker{algo: algo, now: time.Now}
}

// Pick returns the selected endpoint from endpoints.
func (p *Picker) Pick(endpoints []Endpoint) (*Endpoint, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.algo {
	case AlgorithmRoundRobin:
		live := usable(endpoints)
		if len(live) == 0 {
			return nil, ErrNoHealthyRPC
		}
		e := live[p.next%len(live)]
		p.next = (p.next + 1) % len(live)
		return e, nil
	case AlgorithmFailover:
		for i := range endpoints {
			if endpoints[i].Healthy {
				return &endpoints[i], nil
			}
		}
		return nil, ErrNoHealthyRPC
	default:
		return p.fastest(endpoints)
	}
}

func (p *Picker) fastest(endpoints []Endpoint) (*Endpoint, error) {
	if p.cachedURL != "" && p.now().Before(p.cacheExpiry) {
		for i := range endpoints {
			if endpoints[i].URL == p.cachedURL && endpoints[i].Healthy {
				return &endpoints[i], nil
			}
		}
	}

	var winner *Endpoint
	for _, e := range usable(endpoints) {
		if winner == nil || e.Latency < winner.Latency {
			winner = e
		}
	}
	if winner == nil {
		return nil, ErrNoHealthyRPC
	}
	p.cachedURL = winner.URL
	p.cacheExpiry = p.now().Add(cacheTTL)
	return winner, nil
}

// usable returns the healthy endpoints that are not lagging the best block.
func usable(endpoints []Endpoint) []*Endpoint {
	var best uint64
	for _, e := range endpoints {
		if e.Healthy && e.BlockNumber > best {
			best = e.BlockNumber
		}
	}
	var out []*Endpoint
	for i := range endpoints {
		e := &endpoints[i]
		if !e.Healthy {
			continue
		}
		if best > 0 && best-e.BlockNumber > staleBlockThreshold {
			continue
		}
		out = append(out, e)
	}
	return out
}
