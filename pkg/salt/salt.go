package salt

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"

	"github.com/screa/createx-cli/pkg/types"
)

// Protection mode tags written to byte 0 of a guarded salt, matching the
// factory's on-chain convention. The tags combine as a bitmask.
const (
	modeSenderProtected   = 0x01
	modeRedeployProtected = 0x02
)

const (
	// Len is the guarded salt width in bytes.
	Len = 32
	// entropyLen is the user-entropy tail of a protected salt (bytes 22-31).
	entropyLen = 10
)

// Options are the inputs to one salt encoding.
type Options struct {
	// Raw is the user-supplied salt. Nil draws fresh entropy when any
	// protection is on, and is an error otherwise.
	Raw                []byte
	Sender             common.Address
	SenderProtection   bool
	RedeployProtection bool
}

// Encoder builds the 32-byte guarded salts consumed by the salted creation
// schemes. The entropy source is injected so searches can be pinned to a
// fixed seed; a nil source falls back to crypto/rand.
type Encoder struct {
	entropy io.Reader
}

func NewEncoder(entropy io.Reader) *Encoder {
	if entropy == nil {
		entropy = rand.Reader
	}
	return &Encoder{entropy: entropy}
}

// Encode folds the protection flags and user entropy into a guarded salt.
//
// Layout when either protection is on:
//
//	[0]     protection mode tag
//	[1:21]  protecting sender, all-zero when sender protection is off
//	[21]    redeploy protection flag
//	[22:32] low-order 10 bytes of Raw, or fresh entropy when Raw is nil
//
// With both protections off the raw salt is used unmodified, right-padded
// (or truncated) to 32 bytes. Pure apart from the entropy read.
func (e *Encoder) Encode(opts Options) ([Len]byte, error) {
	var out [Len]byte

	if !opts.SenderProtection && !opts.RedeployProtection {
		if opts.Raw == nil {
			return out, fmt.Errorf(
				"%w: a salt is required when sender and redeploy protection are both disabled",
				types.ErrConfig)
		}
		copy(out[:], opts.Raw)
		return out, nil
	}

	if opts.SenderProtection {
		out[0] |= modeSenderProtected
		copy(out[1:21], opts.Sender.Bytes())
	}
	if opts.RedeployProtection {
		out[0] |= modeRedeployProtected
		out[21] = 1
	}

	if opts.Raw == nil {
		if _, err := io.ReadFull(e.entropy, out[Len-entropyLen:]); err != nil {
			return out, fmt.Errorf("read salt entropy: %w", err)
		}
		return out, nil
	}

	raw := opts.Raw
	if len(raw) > entropyLen {
		raw = raw[len(raw)-entropyLen:]
	}
	copy(out[Len-len(raw):], raw)
	return out, nil
}
