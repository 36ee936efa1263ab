package config

// Config holds all w3ico configuration.
type Config struct {
	DefaultNetwork string              `json:"default_network"`
	DefaultWallet  string              `json:"default_wallet"`
	RPCAlgorithm   string              `json:"rpc_algorithm"` // "fastest" | "round-robin" | "failover"
	LogLevel       string              `json:"log_level"`     // zap level name, e.g. "info"
	CustomRPCs     map[string][]string `json:"custom_rpcs"`

	// internal: config dir path used for Save()
	configDir string
}

// Project describes the ICO contracts a working directory operates on.
// It lives in w3ico.yaml next to the Hardhat project.
type Project struct {
	Network       string `yaml:"network"`
	NFTContract   string `yaml:"nft_contract"`
	TokenContract string `yaml:"token_contract,omitempty"`
	Artifact      string `yaml:"artifact,omitempty"`
	DeployTx      string `yaml:"deploy_tx,omitempty"`
	DeployedAt    string `yaml:"deployed_at,omitempty"`
	Deployer      string `yaml:"deployer,omitempty"`

	path string
}
