// Package miner searches the salt space for addresses matching the active
// pattern conditions.
package miner

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"

	"github.com/screa/createx-cli/pkg/salt"
	"github.com/screa/createx-cli/pkg/types"
	"github.com/screa/createx-cli/pkg/worker"
)

// Config configures a search.
type Config struct {
	Walk worker.Config
	// Lanes is the number of independent walks run in parallel. With one
	// lane the search path is fully determined by the initial seed; with
	// more, the first lane to find a match wins and the winning result is
	// legitimately non-deterministic.
	Lanes int
	// Entropy supplies the initial walk seeds. Nil means crypto/rand, which
	// makes results non-reproducible across runs unless pinned.
	Entropy io.Reader
}

// Miner owns the search loop. State between iterations is limited to each
// lane's seed and counter, both private to the lane.
type Miner struct {
	cfg Config
	enc *salt.Encoder
}

func New(cfg Config) *Miner {
	if cfg.Lanes < 1 {
		cfg.Lanes = 1
	}
	if cfg.Entropy == nil {
		cfg.Entropy = rand.Reader
	}
	return &Miner{cfg: cfg, enc: salt.NewEncoder(cfg.Entropy)}
}

// Mine runs the search until a match or budget exhaustion. Exhaustion of
// every lane surfaces as a *types.ExhaustedError.
func (m *Miner) Mine() (*types.Result, error) {
	seeds := make([][worker.SeedLen]byte, m.cfg.Lanes)
	for i := range seeds {
		if _, err := io.ReadFull(m.cfg.Entropy, seeds[i][:]); err != nil {
			return nil, fmt.Errorf("read walk seed: %w", err)
		}
	}

	if m.cfg.Lanes == 1 {
		return worker.NewWalker(m.cfg.Walk, m.enc, seeds[0]).Run(nil)
	}

	var (
		wg      sync.WaitGroup
		done    = make(chan struct{})
		once    sync.Once
		mu      sync.Mutex
		found   *types.Result
		lastErr error
	)
	for _, seed := range seeds {
		wg.Add(1)
		go func(seed [worker.SeedLen]byte) {
			defer wg.Done()
			res, err := worker.NewWalker(m.cfg.Walk, m.enc, seed).Run(done)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case res != nil:
				if found == nil {
					found = res
				}
				once.Do(func() { close(done) })
			case err != nil:
				lastErr = err
			}
		}(seed)
	}
	wg.Wait()

	if found != nil {
		return found, nil
	}
	return nil, lastErr
}
