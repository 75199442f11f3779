// Package pattern evaluates candidate addresses against user-specified
// vanity constraints.
package pattern

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/screa/createx-cli/pkg/types"
)

const (
	addressBytes = 20

	// Past this many zero bytes or pattern characters the expected
	// iteration count stops being practical; advisory only.
	convergenceLimit = 8
)

type kind int

const (
	kindLeadingZeros kind = iota
	kindTrailingZeros
	kindStartsWith
	kindEndsWith
)

// Condition is one predicate over a candidate address. Conditions are built
// once from validated flags; a match is the AND across all of them.
type Condition struct {
	kind          kind
	zeros         int
	pattern       string
	caseSensitive bool
}

// Flags carries the raw mine options. The Has* fields record whether the
// zero-count flags were given at all, so an explicit 0 is rejected instead
// of read as unset.
type Flags struct {
	LeadingZeros     int
	HasLeadingZeros  bool
	TrailingZeros    int
	HasTrailingZeros bool
	StartsWith       string
	EndsWith         string
	CaseSensitive    bool
}

// Build validates the flags and returns the active conditions plus any
// advisory warnings. Warnings never fail the build; every hard failure is a
// config error raised before any derivation work.
func Build(f Flags) ([]Condition, []string, error) {
	if f.HasLeadingZeros && f.StartsWith != "" {
		return nil, nil, fmt.Errorf(
			"%w: cannot use both --leading-zeros and --starts-with together", types.ErrConfig)
	}
	if f.HasTrailingZeros && f.EndsWith != "" {
		return nil, nil, fmt.Errorf(
			"%w: cannot use both --trailing-zeros and --ends-with together", types.ErrConfig)
	}

	var (
		conds    []Condition
		warnings []string
	)

	if f.HasLeadingZeros {
		if f.LeadingZeros < 1 {
			return nil, nil, fmt.Errorf("%w: --leading-zeros cannot be less than 1", types.ErrConfig)
		}
		if f.LeadingZeros > convergenceLimit {
			warnings = append(warnings, "--leading-zeros greater than 8 will likely not converge")
		}
		conds = append(conds, Condition{kind: kindLeadingZeros, zeros: f.LeadingZeros})
	}

	if f.StartsWith != "" {
		if !isHex(f.StartsWith) {
			return nil, nil, fmt.Errorf("%w: --starts-with must be valid hex", types.ErrConfig)
		}
		if len(f.StartsWith) > convergenceLimit {
			warnings = append(warnings, "--starts-with pattern size greater than 8 will likely not converge")
		}
		conds = append(conds, Condition{
			kind:          kindStartsWith,
			pattern:       normalize(f.StartsWith, f.CaseSensitive),
			caseSensitive: f.CaseSensitive,
		})
	}

	if f.HasTrailingZeros {
		if f.TrailingZeros < 1 {
			return nil, nil, fmt.Errorf("%w: --trailing-zeros cannot be less than 1", types.ErrConfig)
		}
		if f.TrailingZeros > convergenceLimit {
			warnings = append(warnings, "--trailing-zeros greater than 8 will likely not converge")
		}
		conds = append(conds, Condition{kind: kindTrailingZeros, zeros: f.TrailingZeros})
	}

	if f.EndsWith != "" {
		if !isHex(f.EndsWith) {
			return nil, nil, fmt.Errorf("%w: --ends-with must be valid hex", types.ErrConfig)
		}
		if len(f.EndsWith) > convergenceLimit {
			warnings = append(warnings, "--ends-with pattern size greater than 8 will likely not converge")
		}
		conds = append(conds, Condition{
			kind:          kindEndsWith,
			pattern:       normalize(f.EndsWith, f.CaseSensitive),
			caseSensitive: f.CaseSensitive,
		})
	}

	if len(conds) == 0 {
		return nil, nil, fmt.Errorf(
			"%w: must use one of: --leading-zeros, --trailing-zeros, --starts-with, --ends-with",
			types.ErrConfig)
	}
	return conds, warnings, nil
}

// Matches reports whether addr satisfies every condition, stopping at the
// first failure.
func Matches(addr common.Address, conds []Condition) bool {
	for _, c := range conds {
		if !c.match(addr) {
			return false
		}
	}
	return true
}

func (c Condition) match(addr common.Address) bool {
	switch c.kind {
	case kindLeadingZeros:
		for _, b := range addr[:min(c.zeros, addressBytes)] {
			if b != 0 {
				return false
			}
		}
		return true
	case kindTrailingZeros:
		for _, b := range addr[addressBytes-min(c.zeros, addressBytes):] {
			if b != 0 {
				return false
			}
		}
		return true
	case kindStartsWith:
		return strings.HasPrefix(c.hex(addr), c.pattern)
	case kindEndsWith:
		return strings.HasSuffix(c.hex(addr), c.pattern)
	}
	return false
}

// hex returns the 40 address characters the pattern is compared against:
// the EIP-55 casing when matching case-sensitively, lowercase otherwise.
func (c Condition) hex(addr common.Address) string {
	if c.caseSensitive {
		return addr.Hex()[2:]
	}
	return strings.ToLower(addr.Hex()[2:])
}

func normalize(pattern string, caseSensitive bool) string {
	if caseSensitive {
		return pattern
	}
	return strings.ToLower(pattern)
}

func isHex(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return s != ""
}
