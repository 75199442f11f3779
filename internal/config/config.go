package config

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/screa/createx-cli/pkg/types"
)

// Config holds the flag values for the createx commands.
type Config struct {
	CreateType         string
	Salt               string
	Nonce              int64 // -1 when not pinned
	Deployer           string
	SenderProtection   bool
	RedeployProtection bool

	// mine
	LeadingZeros  int
	TrailingZeros int
	StartsWith    string
	EndsWith      string
	CaseSensitive bool
	MaxIterations int
	Lanes         int

	// project layout
	ProjectDir string
	DepsDir    string

	// network
	RPCURL         string
	ChainID        int64
	PrivateKey     string
	GasLimit       uint64
	GasFeeCap      int64
	GasTipCap      int64
	TimeoutSeconds int
}

// New creates a configuration with default values.
func New() *Config {
	return &Config{
		CreateType:         string(types.Create2),
		Nonce:              -1,
		SenderProtection:   true,
		RedeployProtection: true,
		MaxIterations:      5000,
		Lanes:              1,
		ProjectDir:         "out",
		DepsDir:            "dependencies",
		GasLimit:           3_000_000,
		GasFeeCap:          2_000_000_000,
		GasTipCap:          1_000_000_000,
		TimeoutSeconds:     600,
	}
}

// CreationType parses the --type flag.
func (c *Config) CreationType() (types.CreationType, error) {
	return types.ParseCreationType(c.CreateType)
}

// SaltBytes decodes --salt. A value that parses as hex (with or without 0x,
// odd lengths padded on the left) yields its bytes; anything else is taken
// as a raw string. Nil when the flag was not given.
func (c *Config) SaltBytes() []byte {
	if c.Salt == "" {
		return nil
	}
	s := strings.TrimPrefix(strings.TrimPrefix(c.Salt, "0x"), "0X")
	if len(s)%2 != 0 {
		s = "0" + s
	}
	if b, err := hex.DecodeString(s); err == nil {
		return b
	}
	return []byte(c.Salt)
}

// DeployerAddress validates and normalizes --deployer.
func (c *Config) DeployerAddress() (common.Address, error) {
	if c.Deployer == "" {
		return common.Address{}, fmt.Errorf("%w: --deployer is required", types.ErrConfig)
	}
	if !common.IsHexAddress(c.Deployer) {
		return common.Address{}, fmt.Errorf("%w: %q is not a valid address", types.ErrValidation, c.Deployer)
	}
	return common.HexToAddress(c.Deployer), nil
}

// PrivateKeyECDSA parses --private-key.
func (c *Config) PrivateKeyECDSA() (*ecdsa.PrivateKey, error) {
	if c.PrivateKey == "" {
		return nil, fmt.Errorf("%w: --private-key is required", types.ErrConfig)
	}
	key, err := gethcrypto.HexToECDSA(strings.TrimPrefix(c.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid private key: %v", types.ErrValidation, err)
	}
	return key, nil
}
