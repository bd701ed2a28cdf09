package auth

import (
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

// ReplayGuard remembers request signatures for a fixed TTL so a captured request
// cannot be submitted twice while its timestamp is still acceptable.
type ReplayGuard struct {
	ttl  time.Duration
	seen *xsync.MapOf[string, time.Time]
	now  func() time.Time
	// nextSweep is the unix nano time after which expired entries are dropped.
	nextSweep atomic.Int64
}

// NewReplayGuard creates a guard keeping entries for ttl.
func NewReplayGuard(ttl time.Duration) *ReplayGuard {
	return &ReplayGuard{
		ttl:  ttl,
		seen: xsync.NewMapOf[string, time.Time](),
		now:  time.Now,
	}
}

// Check records key and reports false when it was already seen within the TTL.
func (g *ReplayGuard) Check(key string) bool {
	now := g.now()
	fresh := true
	g.seen.Compute(key, func(expiry time.Time, loaded bool) (time.Time, bool) {
		if loaded && now.Before(expiry) {
			fresh = false
			return expiry, false
		}
		return now.Add(g.ttl), false
	})
	g.maybeSweep(now)
	return fresh
}

// Len returns the number of remembered entries, expired ones included.
func (g *ReplayGuard) Len() int {
	return g.seen.Size()
}

func (g *ReplayGuard) maybeSweep(now time.Time) {
	next := g.nextSweep.Load()
	if now.UnixNano() < next || !g.nextSweep.CompareAndSwap(next, now.Add(g.ttl).UnixNano()) {
		return
	}
	g.seen.Range(func(key string, expiry time.Time) bool {
		if !now.Before(expiry) {
			g.seen.Compute(key, func(current time.Time, loaded bool) (time.Time, bool) {
				return current, !loaded || !now.Before(current)
			})
		}
		return true
	})
}
