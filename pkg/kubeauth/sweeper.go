package kubeauth

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

// Sweeper periodically drops expired bundles from a Cache. It is optional:
// Cache.Get never returns an expired bundle, the sweeper only keeps idle key
// material from lingering in memory.
type Sweeper struct {
	cache    *Cache
	clock    clock.WithTicker
	interval time.Duration
	log      logrus.FieldLogger
}

func newSweeper(cache *Cache, cfg *config) *Sweeper {
	return &Sweeper{
		cache:    cache,
		clock:    cfg.clock,
		interval: cfg.options.SweepInterval,
		log:      cfg.log,
	}
}

// Run sweeps the cache on every tick until ctx is done. No lock is held while
// waiting for the next tick.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			if n := s.cache.Sweep(); n > 0 {
				s.log.WithField("count", n).Debug("kubeauth: swept expired bundles")
			}
		}
	}
}
