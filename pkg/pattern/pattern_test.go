package pattern

import (
	"errors"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/screa/createx-cli/pkg/types"
)

// EIP-55 reference address; renders as 0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed.
var checksumAddr = common.HexToAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		flags   Flags
		message string
	}{
		{
			name:    "leading zeros and starts-with conflict",
			flags:   Flags{LeadingZeros: 2, HasLeadingZeros: true, StartsWith: "aa"},
			message: "cannot use both --leading-zeros and --starts-with together",
		},
		{
			name:    "trailing zeros and ends-with conflict",
			flags:   Flags{TrailingZeros: 2, HasTrailingZeros: true, EndsWith: "aa"},
			message: "cannot use both --trailing-zeros and --ends-with together",
		},
		{
			name:    "leading zeros of zero",
			flags:   Flags{LeadingZeros: 0, HasLeadingZeros: true},
			message: "--leading-zeros cannot be less than 1",
		},
		{
			name:    "negative leading zeros",
			flags:   Flags{LeadingZeros: -3, HasLeadingZeros: true},
			message: "--leading-zeros cannot be less than 1",
		},
		{
			name:    "trailing zeros of zero",
			flags:   Flags{TrailingZeros: 0, HasTrailingZeros: true},
			message: "--trailing-zeros cannot be less than 1",
		},
		{
			name:    "starts-with not hex",
			flags:   Flags{StartsWith: "zz"},
			message: "--starts-with must be valid hex",
		},
		{
			name:    "ends-with not hex",
			flags:   Flags{EndsWith: "0xab"},
			message: "--ends-with must be valid hex",
		},
		{
			name:    "no conditions",
			flags:   Flags{},
			message: "must use one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Build(tt.flags)
			if !errors.Is(err, types.ErrConfig) {
				t.Fatalf("Build() error = %v, want config error", err)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("Build() error = %q, want it to contain %q", err, tt.message)
			}
		})
	}
}

func TestBuildWarnings(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
		warns int
	}{
		{
			name:  "large zero count warns",
			flags: Flags{LeadingZeros: 9, HasLeadingZeros: true},
			warns: 1,
		},
		{
			name:  "long pattern warns",
			flags: Flags{StartsWith: "012345678"},
			warns: 1,
		},
		{
			name:  "both long",
			flags: Flags{StartsWith: "012345678", TrailingZeros: 12, HasTrailingZeros: true},
			warns: 2,
		},
		{
			name:  "within limits",
			flags: Flags{LeadingZeros: 8, HasLeadingZeros: true},
			warns: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conds, warnings, err := Build(tt.flags)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if len(warnings) != tt.warns {
				t.Errorf("Build() warnings = %v, want %d", warnings, tt.warns)
			}
			if len(conds) == 0 {
				t.Error("Build() returned no conditions")
			}
		})
	}
}

func TestMatches(t *testing.T) {
	leadingZero := common.HexToAddress("0x006a99c1443e694f1d03f232129931054effd593")
	trailingZero := common.HexToAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef000000")

	tests := []struct {
		name     string
		addr     common.Address
		flags    Flags
		expected bool
	}{
		{
			name:     "one leading zero byte",
			addr:     leadingZero,
			flags:    Flags{LeadingZeros: 1, HasLeadingZeros: true},
			expected: true,
		},
		{
			name:     "two leading zero bytes missing",
			addr:     leadingZero,
			flags:    Flags{LeadingZeros: 2, HasLeadingZeros: true},
			expected: false,
		},
		{
			name:     "trailing zero bytes",
			addr:     trailingZero,
			flags:    Flags{TrailingZeros: 3, HasTrailingZeros: true},
			expected: true,
		},
		{
			name:     "trailing zero bytes missing",
			addr:     checksumAddr,
			flags:    Flags{TrailingZeros: 1, HasTrailingZeros: true},
			expected: false,
		},
		{
			name:     "starts-with case-insensitive",
			addr:     checksumAddr,
			flags:    Flags{StartsWith: "5AAE"},
			expected: true,
		},
		{
			name:     "starts-with case-sensitive against checksum",
			addr:     checksumAddr,
			flags:    Flags{StartsWith: "5aAe", CaseSensitive: true},
			expected: true,
		},
		{
			name:     "starts-with case-sensitive wrong casing",
			addr:     checksumAddr,
			flags:    Flags{StartsWith: "5aae", CaseSensitive: true},
			expected: false,
		},
		{
			name:     "ends-with case-insensitive",
			addr:     checksumAddr,
			flags:    Flags{EndsWith: "beaed"},
			expected: true,
		},
		{
			name:     "ends-with case-sensitive against checksum",
			addr:     checksumAddr,
			flags:    Flags{EndsWith: "BeAed", CaseSensitive: true},
			expected: true,
		},
		{
			name:     "odd-length pattern is character granular",
			addr:     checksumAddr,
			flags:    Flags{StartsWith: "5aa"},
			expected: true,
		},
		{
			name:     "conjunction holds",
			addr:     leadingZero,
			flags:    Flags{LeadingZeros: 1, HasLeadingZeros: true, EndsWith: "d593"},
			expected: true,
		},
		{
			name:     "conjunction fails when one side fails",
			addr:     leadingZero,
			flags:    Flags{LeadingZeros: 1, HasLeadingZeros: true, EndsWith: "0000"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conds, _, err := Build(tt.flags)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if got := Matches(tt.addr, conds); got != tt.expected {
				t.Errorf("Matches() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMatchesIsConjunction(t *testing.T) {
	// matches(a, {c1, c2}) must equal matches(a, {c1}) && matches(a, {c2}).
	addr := common.HexToAddress("0x006a99c1443e694f1d03f232129931054effd593")

	zeroCond, _, err := Build(Flags{LeadingZeros: 1, HasLeadingZeros: true})
	if err != nil {
		t.Fatal(err)
	}
	for _, suffix := range []string{"d593", "ffff"} {
		endCond, _, err := Build(Flags{EndsWith: suffix})
		if err != nil {
			t.Fatal(err)
		}
		both := append(append([]Condition{}, zeroCond...), endCond...)
		want := Matches(addr, zeroCond) && Matches(addr, endCond)
		if got := Matches(addr, both); got != want {
			t.Errorf("conjunction mismatch for %s: %v vs %v", suffix, got, want)
		}
	}
}

func TestZeroCountClampsAtAddressWidth(t *testing.T) {
	// 25 zero bytes can never literally exist in a 20-byte address; the
	// all-zero address is the only candidate that satisfies the clamp.
	big, warnings, err := Build(Flags{LeadingZeros: 25, HasLeadingZeros: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 1 {
		t.Errorf("warnings = %v, want 1", warnings)
	}
	if !Matches(common.Address{}, big) {
		t.Error("all-zero address should satisfy a clamped zero count")
	}
	if Matches(common.HexToAddress("0x0000000000000000000000000000000000000001"), big) {
		t.Error("non-zero address should not satisfy a clamped zero count")
	}
}
