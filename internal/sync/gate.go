package sync

import (
	"context"
	gosync "sync"
	"time"
)

// debounceWindow is how long an unchanged payload is suppressed after a
// successful hand-off to transport.
const debounceWindow = 5 * time.Second

// Gate is the injectable debounce state: last sent hash and instant,
// plus the cancel handle of the in-flight delivery. One Gate belongs to
// one Agent; all state lives under a single mutex so the debounce check,
// the hash/timestamp update, and the cancel-and-replace of the running
// attempt happen in one critical section.
type Gate struct {
	now func() time.Time

	mu       gosync.Mutex
	lastHash [32]byte
	lastSent time.Time
	hasSent  bool
	cancel   context.CancelFunc
}

// NewGate builds a gate using the given clock; pass time.Now outside of
// tests.
func NewGate(now func() time.Time) *Gate {
	if now == nil {
		now = time.Now
	}
	return &Gate{now: now}
}

// ShouldSend reports whether a payload with the given content hash is
// worth sending: false only when the hash matches the previous send and
// that send was less than the debounce window ago.
func (g *Gate) ShouldSend(hash [32]byte) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.shouldSendLocked(hash)
}

func (g *Gate) shouldSendLocked(hash [32]byte) bool {
	if !g.hasSent {
		return true
	}
	if hash != g.lastHash {
		return true
	}
	return g.now().Sub(g.lastSent) >= debounceWindow
}

// Admit is ShouldSend plus the state transition: when the payload passes
// the debounce check it records the hash/timestamp, cancels any prior
// in-flight attempt, and returns a context for the new one. The caller
// must call the returned cancel func when the attempt finishes.
func (g *Gate) Admit(parent context.Context, hash [32]byte) (context.Context, context.CancelFunc, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.shouldSendLocked(hash) {
		return nil, nil, false
	}
	ctx, cancel := context.WithCancel(parent)

	// Only the most recent request matters.
	if g.cancel != nil {
		g.cancel()
	}

	g.lastHash = hash
	g.lastSent = g.now()
	g.hasSent = true
	g.cancel = cancel

	// Cancelling a finished context is a no-op, so cleanup is safe even
	// after a newer attempt has replaced g.cancel.
	return ctx, cancel, true
}
