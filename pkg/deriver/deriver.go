// Package deriver computes deterministic deployment addresses for the
// factory's creation schemes.
package deriver

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/screa/createx-cli/internal/crypto"
	"github.com/screa/createx-cli/pkg/types"
)

// Derive computes the deployment address for the given creation params.
// It is a pure function of its inputs: no I/O, no mutation, safe to call
// from concurrent goroutines.
func Derive(p types.CreationParams) (common.Address, error) {
	switch p.Type {
	case types.Create:
		return crypto.CreateAddress(p.Sender, p.Nonce), nil
	case types.Create2:
		return crypto.Create2Address(p.Salt, p.InitCodeHash), nil
	case types.Create3:
		return crypto.Create3Address(p.Salt), nil
	default:
		return common.Address{}, fmt.Errorf(
			"%w: unsupported creation type %q", types.ErrConfig, p.Type)
	}
}
