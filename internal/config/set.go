package config

import (
	"fmt"
	"sort"

	"go.uber.org/zap/zapcore"
)

// Keys settable with Set.
const (
	KeyDefaultNetwork = "default_network"
	KeyDefaultWallet  = "default_wallet"
	KeyRPCAlgorithm   = "rpc_algorithm"
	KeyLogLevel       = "log_level"
)

var rpcAlgorithms = map[string]bool{"fastest": true, "round-robin": true, "failover": true}

// Set updates one setting by its JSON key. Network names are checked by
// the caller, which owns the network registry.
func (c *Config) Set(key, value string) error {
	switch key {
	case KeyDefaultNetwork:
		c.DefaultNetwork = value
	case KeyDefaultWallet:
		c.DefaultWallet = value
	case KeyRPCAlgorithm:
		if !rpcAlgorithms[value] {
			return fmt.Errorf("unknown rpc_algorithm %q (fastest, round-robin, failover)", value)
		}
		c.RPCAlgorithm = value
	case KeyLogLevel:
		if _, err := zapcore.ParseLevel(value); err != nil {
			return fmt.Errorf("log_level: %w", err)
		}
		c.LogLevel = value
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

// Settings lists the settable values sorted by key.
func (c *Config) Settings() [][2]string {
	out := [][2]string{
		{KeyDefaultNetwork, c.DefaultNetwork},
		{KeyDefaultWallet, c.DefaultWallet},
		{KeyRPCAlgorithm, c.RPCAlgorithm},
		{KeyLogLevel, c.LogLevel},
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}
