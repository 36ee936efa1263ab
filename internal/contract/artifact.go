package contract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ErrNoBytecode is returned for artifacts of interfaces or abstract contracts.
var ErrNoBytecode = errors.New("artifact has no deployable bytecode")

// Artifact is a compiled contract loaded from a Hardhat or Foundry JSON file.
type Artifact struct {
	ContractName string
	ABI          abi.ABI
	RawABI       json.RawMessage
	Bytecode     []byte
}

// LoadArtifact reads ABI and creation bytecode from path. Both layouts are
// accepted:
//
//	Hardhat: {"contractName":"...","abi":[...],"bytecode":"0x6080..."}
//	Foundry: {"abi":[...],"bytecode":{"object":"0x6080..."}}
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read artifact file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("artifact file is empty: %s", path)
	}
	return ParseArtifact(data)
}

// ParseArtifact is LoadArtifact for in-memory JSON.
func ParseArtifact(data []byte) (*Artifact, error) {
	var raw struct {
		ContractName string          `json:"contractName"`
		ABI          json.RawMessage `json:"abi"`
		Bytecode     json.RawMessage `json:"bytecode"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid artifact JSON: %w", err)
	}
	if len(raw.ABI) < 2 || raw.ABI[0] != '[' {
		return nil, fmt.Errorf("artifact has no valid \"abi\" array")
	}
	parsed, err := abi.JSON(bytes.NewReader(raw.ABI))
	if err != nil {
		return nil, fmt.Errorf("parsing artifact ABI: %w", err)
	}

	bcHex, err := bytecodeHex(raw.Bytecode)
	if err != nil {
		return nil, err
	}
	if bcHex == "" || bcHex == "0x" {
		return nil, ErrNoBytecode
	}
	if strings.Contains(bcHex, "__") {
		return nil, fmt.Errorf("artifact bytecode has unlinked library placeholders")
	}
	if !strings.HasPrefix(bcHex, "0x") {
		bcHex = "0x" + bcHex
	}
	code, err := hexutil.Decode(bcHex)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode hex in artifact: %w", err)
	}

	return &Artifact{
		ContractName: raw.ContractName,
		ABI:          parsed,
		RawABI:       raw.ABI,
		Bytecode:     code,
	}, nil
}

// DeployData appends the ABI-encoded constructor args to the bytecode.
func (a *Artifact) DeployData(args ...any) ([]byte, error) {
	packed, err := a.ABI.Pack("", args...)
	if err != nil {
		return nil, fmt.Errorf("encoding constructor args: %w", err)
	}
	out := make([]byte, 0, len(a.Bytecode)+len(packed))
	out = append(out, a.Bytecode...)
	return append(out, packed...), nil
}

func bytecodeHex(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", ErrNoBytecode
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s), nil
	}
	var obj struct {
		Object string `json:"object"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return strings.TrimSpace(obj.Object), nil
	}
	return "", fmt.Errorf("bytecode field is neither a hex string nor a {\"object\":\"0x...\"} object")
}
