package quota

import "time"

// Decision is the outcome of a single window check.
type Decision struct {
	Allowed   bool
	Remaining int64
	ResetAt   time.Time
}

// Checker is the atomic check-and-increment primitive for one window class.
// The window duration is fixed per checker; the limit varies per plan and is
// supplied on each call.
type Checker struct {
	store  *Store
	window time.Duration
}

// NewChecker creates a checker over the given store with a fixed window duration.
func NewChecker(store *Store, window time.Duration) *Checker {
	return &Checker{store: store, window: window}
}

// Window returns the checker's window duration.
func (c *Checker) Window() time.Duration {
	return c.window
}

// Check decides whether one more operation is admitted for key under limit.
// When no live entry exists a fresh window starts with count 1. A denied check
// never mutates the entry. The whole sequence runs under the key's shard lock,
// so two callers racing for the last slot can never both be admitted, and two
// callers racing on an expired entry can never create divergent windows.
func (c *Checker) Check(key string, limit int64, now time.Time) Decision {
	var d Decision

	c.store.Update(key, func(e Entry, ok bool) (Entry, bool) {
		if !ok || e.Expired(now) {
			resetAt := now.Add(c.window)
			d = Decision{Allowed: true, Remaining: limit - 1, ResetAt: resetAt}

			return Entry{Count: 1, ResetAt: resetAt}, true
		}

		if e.Count >= limit {
			d = Decision{Allowed: false, Remaining: 0, ResetAt: e.ResetAt}

			return e, true
		}

		e.Count++
		d = Decision{Allowed: true, Remaining: limit - e.Count, ResetAt: e.ResetAt}

		return e, true
	})

	return d
}

// Release undoes one grant previously taken by Check, leaving ResetAt
// untouched. It never drives the count below zero and never resurrects an
// entry whose window has already expired.
func (c *Checker) Release(key string, now time.Time) {
	c.store.Update(key, func(e Entry, ok bool) (Entry, bool) {
		if !ok {
			return e, false
		}

		if e.Expired(now) {
			// Stale entry: leave it for the Reclaimer.
			return e, true
		}

		if e.Count > 0 {
			e.Count--
		}

		return e, true
	})
}
