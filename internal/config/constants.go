package config

import "time"

// Gas limits used as EstimateGas fallbacks when the node cannot simulate the tx.
const (
	GasLimitMint         = uint64(120_000)
	GasLimitClaim        = uint64(300_000) // grows with the number of NFTs held
	GasLimitWithdraw     = uint64(60_000)
	GasLimitTokenDeploy  = uint64(2_500_000)
	GasLimitContractCall = uint64(200_000)
)

const (
	RPCSelectTimeout = 10 * time.Second
	TxConfirmTimeout = 3 * time.Minute
	TxDeployTimeout  = 5 * time.Minute
	ReceiptPoll      = 2 * time.Second
)

// Environment variables that override config and project values.
const (
	EnvConfigDir     = "W3ICO_CONFIG_DIR"
	EnvNetwork       = "W3ICO_NETWORK"
	EnvNFTContract   = "W3ICO_NFT_CONTRACT"
	EnvTokenContract = "W3ICO_TOKEN_CONTRACT"
)
