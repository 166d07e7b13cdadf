package auth

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndavault/nda-vault/internal/api/metrics"
)

// DefaultSweepInterval is how often the reaper asks the registry to drop
// its expired entries when no interval is configured (§6.4 sweep-interval).
const DefaultSweepInterval = time.Hour

// Reaper periodically sweeps a Registry, bounding its memory to the set of
// revocations still within their credential's own lifetime. Its goroutine
// lifecycle mirrors infrastructure/queue.Dispatcher's ctx-cancellable
// worker loop.
type Reaper struct {
	registry *Registry
	interval time.Duration
	log      zerolog.Logger
}

// NewReaper returns a Reaper sweeping registry every interval. A
// non-positive interval falls back to DefaultSweepInterval.
func NewReaper(registry *Registry, interval time.Duration, log zerolog.Logger) *Reaper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Reaper{registry: registry, interval: interval, log: log}
}

// Run blocks, sweeping on each tick until ctx is cancelled.
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := r.registry.Sweep()
			metrics.ReaperSweepsTotal.Inc()
			metrics.ReaperEvictionsTotal.Add(float64(removed))
			metrics.RevocationRegistrySize.Set(float64(r.registry.Size()))
			if removed > 0 {
				r.log.Debug().
					Int("removed", removed).
					Int("remaining", r.registry.Size()).
					Msg("revocation registry swept")
			}
		}
	}
}
