package sync

import (
	"context"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func hashOf(b byte) [32]byte {
	var h [32]byte
	h[0] = b
	return h
}

// ============================================================
// Debounce
// ============================================================

func TestGateFirstSendAlwaysPasses(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	g := NewGate(clock.Now)

	if !g.ShouldSend(hashOf(1)) {
		t.Fatal("first send should always pass")
	}
}

func TestGateSuppressesUnchangedWithinWindow(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	g := NewGate(clock.Now)

	_, done, ok := g.Admit(context.Background(), hashOf(1))
	if !ok {
		t.Fatal("first admit should pass")
	}
	done()

	clock.advance(2 * time.Second)
	if g.ShouldSend(hashOf(1)) {
		t.Fatal("unchanged payload within 5s should be suppressed")
	}
	if _, _, ok := g.Admit(context.Background(), hashOf(1)); ok {
		t.Fatal("admit should also suppress")
	}
}

func TestGatePassesUnchangedAfterWindow(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	g := NewGate(clock.Now)

	_, done, _ := g.Admit(context.Background(), hashOf(1))
	done()

	clock.advance(5 * time.Second)
	if !g.ShouldSend(hashOf(1)) {
		t.Fatal("unchanged payload after the debounce window should pass")
	}
}

func TestGatePassesChangedContentImmediately(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	g := NewGate(clock.Now)

	_, done, _ := g.Admit(context.Background(), hashOf(1))
	done()

	clock.advance(time.Second)
	if !g.ShouldSend(hashOf(2)) {
		t.Fatal("changed content should pass regardless of elapsed time")
	}
}

// ============================================================
// Cancel-and-replace
// ============================================================

func TestGateAdmitCancelsPriorAttempt(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	g := NewGate(clock.Now)

	ctx1, done1, ok := g.Admit(context.Background(), hashOf(1))
	if !ok {
		t.Fatal("first admit should pass")
	}
	defer done1()

	ctx2, done2, ok := g.Admit(context.Background(), hashOf(2))
	if !ok {
		t.Fatal("second admit with new content should pass")
	}
	defer done2()

	select {
	case <-ctx1.Done():
	default:
		t.Fatal("admitting a new attempt should cancel the prior one")
	}
	if ctx2.Err() != nil {
		t.Fatal("new attempt's context should be live")
	}
}
