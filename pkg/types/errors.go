package types

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Error kinds. Every error the core surfaces wraps exactly one of these, so
// callers can classify with errors.Is.
var (
	// ErrConfig marks invalid or conflicting user options. Always raised
	// before any derivation work starts.
	ErrConfig = errors.New("invalid configuration")
	// ErrValidation marks malformed cryptographic inputs.
	ErrValidation = errors.New("invalid input")
	// ErrLookup marks a contract type or dependency that could not be found.
	ErrLookup = errors.New("lookup failed")
	// ErrExhausted marks a mining run that consumed its iteration budget.
	ErrExhausted = errors.New("search budget exhausted")
)

// ExhaustedError reports how far a mining run got before giving up.
type ExhaustedError struct {
	Iterations int
	Last       common.Address // last candidate tried
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("could not find solution in %d iterations", e.Iterations)
}

func (e *ExhaustedError) Unwrap() error { return ErrExhausted }
