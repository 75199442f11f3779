package worker

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/screa/createx-cli/pkg/deriver"
	"github.com/screa/createx-cli/pkg/pattern"
	"github.com/screa/createx-cli/pkg/salt"
	"github.com/screa/createx-cli/pkg/types"
)

// SeedLen is the width of the mutable salt tail the walk iterates over.
const SeedLen = 11

// Config holds the read-only inputs shared by every step of a walk.
type Config struct {
	Type               types.CreationType
	Sender             common.Address
	SenderProtection   bool
	RedeployProtection bool
	InitCodeHash       common.Hash
	Conditions         []pattern.Condition
	MaxIterations      int
}

// Walker runs one salt walk: encode the current seed into a guarded salt,
// derive the candidate address, test it, and on rejection take the first
// 11 bytes of the rejected address as the next seed. The walk is a
// deterministic pseudo-random path, fully reproducible from its first seed;
// it is not i.i.d. sampling, and deliberately so.
type Walker struct {
	cfg  Config
	enc  *salt.Encoder
	seed [SeedLen]byte
}

func NewWalker(cfg Config, enc *salt.Encoder, seed [SeedLen]byte) *Walker {
	return &Walker{cfg: cfg, enc: enc, seed: seed}
}

// Run drives the walk until a match is found or the iteration budget is
// consumed; a budget of k performs at most k+1 derivations. stop may be nil;
// closing it abandons the walk with a nil result (used by racing lanes).
func (w *Walker) Run(stop <-chan struct{}) (*types.Result, error) {
	seed := w.seed
	iterations := 0
	for {
		if stop != nil {
			select {
			case <-stop:
				return nil, nil
			default:
			}
		}

		guarded, err := w.enc.Encode(salt.Options{
			Raw:                seed[:],
			Sender:             w.cfg.Sender,
			SenderProtection:   w.cfg.SenderProtection,
			RedeployProtection: w.cfg.RedeployProtection,
		})
		if err != nil {
			return nil, err
		}

		addr, err := deriver.Derive(types.CreationParams{
			Type:         w.cfg.Type,
			Salt:         guarded,
			InitCodeHash: w.cfg.InitCodeHash,
		})
		if err != nil {
			return nil, err
		}

		if pattern.Matches(addr, w.cfg.Conditions) {
			return &types.Result{
				Address:    addr,
				Seed:       append([]byte(nil), seed[:]...),
				Salt:       guarded,
				Iterations: iterations,
			}, nil
		}

		if iterations >= w.cfg.MaxIterations {
			return nil, &types.ExhaustedError{Iterations: iterations, Last: addr}
		}

		copy(seed[:], addr[:SeedLen])
		iterations++
	}
}
