package pool

import (
	"testing"
	"time"
)

func day(hour, minute int) time.Time {
	return time.Date(2025, 3, 14, hour, minute, 0, 0, time.UTC)
}

// ============================================================
// Window resolution
// ============================================================

func TestResolveWindowSameDay(t *testing.T) {
	w := ResolveWindow(480, 600, day(12, 0)) // 08:00-10:00, resolved at noon

	wantStart := day(8, 0)
	wantEnd := day(10, 0)
	if !w.Start.Equal(wantStart) {
		t.Fatalf("start = %v, want %v", w.Start, wantStart)
	}
	if !w.End.Equal(wantEnd) {
		t.Fatalf("end = %v, want %v", w.End, wantEnd)
	}
}

func TestResolveWindowZeroesSubMinute(t *testing.T) {
	ref := time.Date(2025, 3, 14, 12, 34, 56, 789000000, time.UTC)
	w := ResolveWindow(480, 600, ref)

	if w.Start.Second() != 0 || w.Start.Nanosecond() != 0 {
		t.Fatalf("start not aligned to minute: %v", w.Start)
	}
	if w.End.Second() != 0 || w.End.Nanosecond() != 0 {
		t.Fatalf("end not aligned to minute: %v", w.End)
	}
}

func TestResolveWindowWraparound(t *testing.T) {
	w := ResolveWindow(1320, 120, day(23, 0)) // 22:00-02:00 crosses midnight

	wantStart := day(22, 0)
	wantEnd := time.Date(2025, 3, 15, 2, 0, 0, 0, time.UTC)
	if !w.Start.Equal(wantStart) {
		t.Fatalf("start = %v, want %v", w.Start, wantStart)
	}
	if !w.End.Equal(wantEnd) {
		t.Fatalf("end = %v, want %v", w.End, wantEnd)
	}
	if w.End.Sub(w.Start) != 4*time.Hour {
		t.Fatalf("window length = %v, want 4h", w.End.Sub(w.Start))
	}
}

func TestResolveWindowEqualOffsetsAdvancesDay(t *testing.T) {
	w := ResolveWindow(600, 600, day(9, 0))

	if !w.End.After(w.Start) {
		t.Fatalf("end %v not after start %v", w.End, w.Start)
	}
	if w.End.Sub(w.Start) != 24*time.Hour {
		t.Fatalf("window length = %v, want 24h", w.End.Sub(w.Start))
	}
}

// ============================================================
// Status classification
// ============================================================

func TestClassifyBoundaries(t *testing.T) {
	w := ResolveWindow(480, 600, day(0, 0)) // 08:00-10:00

	cases := []struct {
		name string
		ref  time.Time
		want Status
	}{
		{"well before", day(6, 0), BeforeStart},
		{"millisecond before start", day(8, 0).Add(-time.Millisecond), BeforeStart},
		{"exactly at start", day(8, 0), Active},
		{"inside", day(9, 0), Active},
		{"exactly at end", day(10, 0), Active},
		{"millisecond after end", day(10, 0).Add(time.Millisecond), AfterEnd},
		{"well after", day(13, 0), AfterEnd},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := w.Classify(tc.ref); got != tc.want {
				t.Fatalf("Classify(%v) = %v, want %v", tc.ref, got, tc.want)
			}
		})
	}
}

// ============================================================
// Countdowns
// ============================================================

func TestUntilStartBeforeWindow(t *testing.T) {
	w := ResolveWindow(480, 600, day(0, 0))

	got := w.UntilStart(day(7, 30))
	if got != 30*time.Minute {
		t.Fatalf("UntilStart = %v, want 30m", got)
	}
}

func TestUntilStartRollsForward(t *testing.T) {
	w := ResolveWindow(480, 600, day(0, 0))

	// Inside the window: next start is tomorrow 08:00.
	got := w.UntilStart(day(9, 0))
	if got != 23*time.Hour {
		t.Fatalf("UntilStart inside window = %v, want 23h", got)
	}

	// After the window too.
	got = w.UntilStart(day(20, 0))
	if got != 12*time.Hour {
		t.Fatalf("UntilStart after window = %v, want 12h", got)
	}
}

func TestUntilEndInsideWindow(t *testing.T) {
	w := ResolveWindow(480, 600, day(0, 0))

	got, ok := w.UntilEnd(day(9, 15))
	if !ok {
		t.Fatal("UntilEnd inside window should be defined")
	}
	if got != 45*time.Minute {
		t.Fatalf("UntilEnd = %v, want 45m", got)
	}
}

// UntilEnd is undefined outside the window while UntilStart always
// returns a value. The asymmetry is deliberate; do not "fix" it.
func TestUntilEndUntilStartAsymmetry(t *testing.T) {
	w := ResolveWindow(480, 600, day(0, 0))

	for _, ref := range []time.Time{day(7, 0), day(11, 0)} {
		if _, ok := w.UntilEnd(ref); ok {
			t.Fatalf("UntilEnd(%v) should be undefined outside the window", ref)
		}
		if w.UntilStart(ref) <= 0 {
			t.Fatalf("UntilStart(%v) should always be positive", ref)
		}
	}

	// Boundary instants are inside: defined at both edges.
	if _, ok := w.UntilEnd(day(8, 0)); !ok {
		t.Fatal("UntilEnd at start boundary should be defined")
	}
	if d, ok := w.UntilEnd(day(10, 0)); !ok || d != 0 {
		t.Fatalf("UntilEnd at end boundary = %v,%v, want 0,true", d, ok)
	}
}
