package config

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/screa/createx-cli/pkg/types"
)

func TestSaltBytes(t *testing.T) {
	tests := []struct {
		name     string
		salt     string
		expected []byte
	}{
		{name: "unset", salt: "", expected: nil},
		{name: "hex with prefix", salt: "0xdeadbeef", expected: []byte{0xde, 0xad, 0xbe, 0xef}},
		{name: "hex without prefix", salt: "deadbeef", expected: []byte{0xde, 0xad, 0xbe, 0xef}},
		{name: "odd-length hex left-padded", salt: "0xabc", expected: []byte{0x0a, 0xbc}},
		{name: "raw string fallback", salt: "hello", expected: []byte("hello")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			cfg.Salt = tt.salt
			got := cfg.SaltBytes()
			if tt.expected == nil {
				if got != nil {
					t.Errorf("SaltBytes() = %x, want nil", got)
				}
				return
			}
			if !bytes.Equal(got, tt.expected) {
				t.Errorf("SaltBytes() = %x, want %x", got, tt.expected)
			}
		})
	}
}

func TestDeployerAddress(t *testing.T) {
	cfg := New()

	if _, err := cfg.DeployerAddress(); !errors.Is(err, types.ErrConfig) {
		t.Errorf("missing deployer: error = %v, want config error", err)
	}

	cfg.Deployer = "not-an-address"
	if _, err := cfg.DeployerAddress(); !errors.Is(err, types.ErrValidation) {
		t.Errorf("malformed deployer: error = %v, want validation error", err)
	}

	cfg.Deployer = "0x00000000000000000000000000000000deadbeef"
	addr, err := cfg.DeployerAddress()
	if err != nil {
		t.Fatalf("DeployerAddress() error = %v", err)
	}
	if addr != common.HexToAddress(cfg.Deployer) {
		t.Errorf("DeployerAddress() = %s", addr.Hex())
	}
}

func TestCreationTypeDefault(t *testing.T) {
	cfg := New()
	ct, err := cfg.CreationType()
	if err != nil {
		t.Fatalf("CreationType() error = %v", err)
	}
	if ct != types.Create2 {
		t.Errorf("default creation type = %q, want create2", ct)
	}
}

func TestPrivateKeyECDSA(t *testing.T) {
	cfg := New()
	if _, err := cfg.PrivateKeyECDSA(); !errors.Is(err, types.ErrConfig) {
		t.Errorf("missing key: error = %v, want config error", err)
	}

	cfg.PrivateKey = "zz"
	if _, err := cfg.PrivateKeyECDSA(); !errors.Is(err, types.ErrValidation) {
		t.Errorf("malformed key: error = %v, want validation error", err)
	}

	cfg.PrivateKey = "0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
	key, err := cfg.PrivateKeyECDSA()
	if err != nil {
		t.Fatalf("PrivateKeyECDSA() error = %v", err)
	}
	if key == nil {
		t.Fatal("PrivateKeyECDSA() returned nil key")
	}
}
