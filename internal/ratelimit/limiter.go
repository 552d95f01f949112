package ratelimit

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ErrInvalidParams is returned when a check is made with a non-positive
// limit or window.
var ErrInvalidParams = errors.New("ratelimit: limit and window must be positive")

// Key builds a limiter key from a scope name and identifier parts, e.g.
// Key("automod", ruleID, guildID, userID).
func Key(scope string, ids ...int64) string {
	var b strings.Builder
	b.WriteString(scope)
	for _, id := range ids {
		b.WriteByte(':')
		b.WriteString(strconv.FormatInt(id, 10))
	}
	return b.String()
}

// Result is the outcome of a single rate-limit check. ResetAt is always
// populated, including on denial, so callers can surface a retry hint.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Limiter is a process-local sliding-window rate limiter. It keeps, per
// key, the timestamps of events observed inside the trailing window and
// admits a new event only while fewer than limit survive eviction.
//
// State lives entirely in this process and is lost on restart; a
// multi-instance deployment needs a shared counter store instead.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	now func() time.Time

	sweepEvery time.Duration
	idleTTL    time.Duration
	stop       chan struct{}
	stopOnce   sync.Once
}

type bucket struct {
	events  []time.Time
	touched time.Time
}

const (
	defaultSweepInterval = time.Minute
	defaultIdleTTL       = 10 * time.Minute
)

// New creates a Limiter and starts its housekeeping sweep, which evicts
// keys with no recent activity on a fixed interval. Call Stop when done.
func New() *Limiter {
	l := &Limiter{
		buckets:    make(map[string]*bucket),
		now:        time.Now,
		sweepEvery: defaultSweepInterval,
		idleTTL:    defaultIdleTTL,
		stop:       make(chan struct{}),
	}
	go l.janitor()
	return l
}

// Stop halts the housekeeping goroutine. Safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// Check records an event for key if the key is under limit within the
// trailing window, and reports the decision. The whole
// evict-count-append sequence runs under the limiter's lock so two
// concurrent callers can never both consume the final slot.
func (l *Limiter) Check(key string, limit int, window time.Duration) (Result, error) {
	if limit <= 0 || window <= 0 {
		return Result{}, ErrInvalidParams
	}

	now := l.now()
	cutoff := now.Add(-window)

	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.buckets[key]
	if b == nil {
		b = &bucket{}
		l.buckets[key] = b
	}
	b.touched = now

	// Evict events that fell out of the window.
	kept := b.events[:0]
	for _, ts := range b.events {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	b.events = kept

	if len(b.events) >= limit {
		return Result{
			Allowed:   false,
			Remaining: 0,
			ResetAt:   b.events[0].Add(window),
		}, nil
	}

	b.events = append(b.events, now)
	return Result{
		Allowed:   true,
		Remaining: limit - len(b.events),
		ResetAt:   b.events[0].Add(window),
	}, nil
}

func (l *Limiter) janitor() {
	ticker := time.NewTicker(l.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

// sweep drops keys that have been idle long enough that no plausible
// window still covers their events, bounding the map's memory use.
func (l *Limiter) sweep() {
	cutoff := l.now().Add(-l.idleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, b := range l.buckets {
		if b.touched.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}
