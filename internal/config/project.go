package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProjectFile is the default project file name, looked up in the working directory.
const ProjectFile = "w3ico.yaml"

// ErrNoContract is returned when a contract address is required but unset.
var ErrNoContract = errors.New("contract address not configured")

// LoadProject reads a project file. A missing file yields an empty project
// bound to path so that Save creates it.
func LoadProject(path string) (*Project, error) {
	p := &Project{path: path}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading project file: %w", err)
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	p.path = path
	return p, nil
}

// Save writes the project file.
func (p *Project) Save() error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o644)
}

// Path returns the file the project was loaded from.
func (p *Project) Path() string { return p.path }

// ApplyEnv overlays the W3ICO_* environment variables onto the project.
func (p *Project) ApplyEnv() {
	if v := os.Getenv(EnvNetwork); v != "" {
		p.Network = v
	}
	if v := os.Getenv(EnvNFTContract); v != "" {
		p.NFTContract = v
	}
	if v := os.Getenv(EnvTokenContract); v != "" {
		p.TokenContract = v
	}
}

// RequireNFT returns the NFT collection address or ErrNoContract.
func (p *Project) RequireNFT() (string, error) {
	if p.NFTContract == "" {
		return "", fmt.Errorf("%w: nft_contract (set it in %s or %s)", ErrNoContract, ProjectFile, EnvNFTContract)
	}
	return p.NFTContract, nil
}

// RequireToken returns the token contract address or ErrNoContract.
func (p *Project) RequireToken() (string, error) {
	if p.TokenContract == "" {
		return "", fmt.Errorf("%w: token_contract (run `w3ico deploy` or set %s)", ErrNoContract, EnvTokenContract)
	}
	return p.TokenContract, nil
}
