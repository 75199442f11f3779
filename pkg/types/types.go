package types

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// CreationType selects which factory scheme derives the deployment address.
type CreationType string

const (
	// Create derives from the deployer account and its nonce.
	Create CreationType = "create"
	// Create2 derives from the factory, a guarded salt and the init code hash.
	Create2 CreationType = "create2"
	// Create3 derives through an intermediate proxy, so the final address
	// depends on the guarded salt only, never on the contract's bytecode.
	Create3 CreationType = "create3"
)

// ParseCreationType parses a --type flag value.
func ParseCreationType(s string) (CreationType, error) {
	switch t := CreationType(strings.ToLower(s)); t {
	case Create, Create2, Create3:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown creation type %q", ErrConfig, s)
}

// CreationParams are the inputs to one address derivation. A value is built
// once per derivation attempt and never mutated.
type CreationParams struct {
	Type         CreationType
	Sender       common.Address // deploying account, create only
	Nonce        uint64         // create only
	Salt         [32]byte       // guarded salt, create2/create3 only
	InitCodeHash common.Hash    // create2 only
}

// Result is a successful mining outcome.
type Result struct {
	Address common.Address
	// Seed is the 11-byte walk seed that produced the match; feeding it back
	// through the salt encoder reproduces Salt and therefore Address.
	Seed []byte
	// Salt is the full guarded salt the derivation consumed.
	Salt       [32]byte
	Iterations int
}
