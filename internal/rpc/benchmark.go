package rpc

import (
	"context"
	"sync"
	"time"

	"github.com/Mohsinsiddi/w3ico/internal/chain"
	"go.uber.org/zap"
)

// Pinger reports latency and head block of one endpoint.
type Pinger interface {
	Ping(ctx context.Context) (time.Duration, uint64, error)
}

// Dialer builds a Pinger for a URL. Tests replace it.
type Dialer func(url string) Pinger

// DefaultDialer pings over JSON-RPC.
func DefaultDialer(url string) Pinger { return chain.NewEVMClient(url) }

// Benchmark pings all urls in parallel.
func Benchmark(ctx context.Context, urls []string, dial Dialer) []Endpoint {
	out := make([]Endpoint, len(urls))
	var wg sync.WaitGroup
	for i, u := range urls {
		wg.Add(1)
		go func() {
			defer wg.Done()
			latency, block, err := dial(u).Ping(ctx)
			out[i] = Endpoint{URL: u, Latency: latency, BlockNumber: block, Healthy: err == nil}
		}()
	}
	wg.Wait()
	return out
}

// Best benchmarks urls and returns the URL chosen by algo. A single URL is
// returned without a round trip.
func Best(ctx context.Context, urls []string, algo Algorithm, dial Dialer, log *zap.Logger) (string, error) {
	switch len(urls) {
	case 0:
		return "", ErrNoHealthyRPC
	case 1:
		return urls[0], nil
	}
	if dial == nil {
		dial = DefaultDialer
	}
	endpoints := Benchmark(ctx, urls, dial)
	if log != nil {
		for _, e := range endpoints {
			log.Debug("rpc benchmark",
				zap.String("url", e.URL),
				zap.Duration("latency", e.Latency),
				zap.Uint64("block", e.BlockNumber),
				zap.Bool("healthy", e.Healthy))
		}
	}
	winner, err := NewPicker(algo).Pick(endpoints)
	if err != nil {
		return "", err
	}
	return winner.URL, nil
}
