package quota

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultSweepInterval is how often the Reclaimer runs when no interval is
// configured.
const DefaultSweepInterval = 5 * time.Minute

// Reclaimer bounds memory growth by periodically evicting entries whose
// window has fully elapsed. It never grants or denies anything and never
// holds more than one shard lock at a time, so in-flight admission decisions
// are at most briefly delayed.
type Reclaimer struct {
	stores   []*Store
	interval time.Duration
	logger   *zap.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewReclaimer creates a reclaimer sweeping the given stores every interval.
func NewReclaimer(interval time.Duration, logger *zap.Logger, stores ...*Store) *Reclaimer {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	return &Reclaimer{
		stores:   stores,
		interval: interval,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (r *Reclaimer) Start(ctx context.Context) error {
	ctx, r.cancel = context.WithCancel(ctx)

	go r.sweepLoop(ctx)

	return nil
}

func (r *Reclaimer) sweepLoop(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed := r.Sweep(now)
			if removed > 0 {
				r.logger.Debug("reclaimed expired rate limit entries",
					zap.Int("removed", removed),
				)
			}
		}
	}
}

// Sweep removes every entry whose window elapsed before now and returns how
// many were removed. Expiry is re-checked under the key's shard lock at
// deletion time, so an entry renewed by a concurrent Check is never lost.
// Sweeping is idempotent: a second immediate pass removes nothing.
func (r *Reclaimer) Sweep(now time.Time) int {
	removed := 0

	for _, store := range r.stores {
		var expired []string

		store.ForEach(func(key string, e Entry) bool {
			if e.Expired(now) {
				expired = append(expired, key)
			}

			return true
		})

		for _, key := range expired {
			store.Update(key, func(e Entry, ok bool) (Entry, bool) {
				if ok && e.Expired(now) {
					removed++

					return e, false
				}

				return e, ok
			})
		}
	}

	return removed
}

// Shutdown stops the sweep loop and waits for it to exit.
func (r *Reclaimer) Shutdown() error {
	if r.cancel != nil {
		r.cancel()
	}

	<-r.done

	return nil
}
