package rpc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubPinger struct {
	latency time.Duration
	block   uint64
	err     error
}

func (s stubPinger) Ping(context.Context) (time.Duration, uint64, error) {
	return s.latency, s.block, s.err
}

func stubDialer(m map[string]stubPinger) Dialer {
	return func(url string) Pinger { return m[url] }
}

func TestBenchmarkMarksFailures(t *testing.T) {
	dial := stubDialer(map[string]stubPinger{
		"http://ok":   {latency: 20 * time.Millisecond, block: 50},
		"http://dead": {err: errors.New("connection refused")},
	})
	out := Benchmark(context.Background(), []string{"http://ok", "http://dead"}, dial)
	require.Len(t, out, 2)
	assert.Equal(t, "http://ok", out[0].URL)
	assert.True(t, out[0].Healthy)
	assert.Equal(t, uint64(50), out[0].BlockNumber)
	assert.False(t, out[1].Healthy)
}

func TestBestSingleURLSkipsBenchmark(t *testing.T) {
	dial := func(string) Pinger {
		t.Fatal("single URL must not be pinged")
		return nil
	}
	url, err := Best(context.Background(), []string{"http://only"}, AlgorithmFastest, dial, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://only", url)
}

func TestBestEmpty(t *testing.T) {
	_, err := Best(context.Background(), nil, AlgorithmFastest, nil, nil)
	assert.ErrorIs(t, err, ErrNoHealthyRPC)
}

func TestBestPicksFastestHealthy(t *testing.T) {
	dial := stubDialer(map[string]stubPinger{
		"http://a": {latency: 90 * time.Millisecond, block: 10},
		"http://b": {latency: 15 * time.Millisecond, block: 10},
		"http://c": {latency: 5 * time.Millisecond, err: errors.New("boom")},
	})
	url, err := Best(context.Background(), []string{"http://a", "http://b", "http://c"}, AlgorithmFastest, dial, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "http://b", url)
}
