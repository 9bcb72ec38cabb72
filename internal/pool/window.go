// Package pool resolves the recurring daily report window and decides
// which stored report is authoritative for it. Everything here is a pure
// function of its inputs; callers may invoke from any goroutine.
package pool

import "time"

// Status describes where a reference instant falls relative to a window.
type Status int

const (
	BeforeStart Status = iota
	Active
	AfterEnd
)

func (s Status) String() string {
	switch s {
	case BeforeStart:
		return "before_start"
	case Active:
		return "active"
	default:
		return "after_end"
	}
}

// Window is one concrete occurrence of the daily pool.
type Window struct {
	Start time.Time
	End   time.Time
}

// ResolveWindow maps the configured minutes-from-midnight offsets onto the
// calendar day of ref. When the end offset does not land strictly after
// the start offset the window crosses midnight and End advances one
// calendar day, so End is always after Start.
func ResolveWindow(startMinutes, endMinutes int, ref time.Time) Window {
	year, month, day := ref.Date()
	loc := ref.Location()

	start := time.Date(year, month, day, startMinutes/60, startMinutes%60, 0, 0, loc)
	end := time.Date(year, month, day, endMinutes/60, endMinutes%60, 0, 0, loc)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return Window{Start: start, End: end}
}

// Classify places ref relative to the window. Both boundaries are
// inclusive: a reference exactly at Start or End is Active.
func (w Window) Classify(ref time.Time) Status {
	if ref.Before(w.Start) {
		return BeforeStart
	}
	if ref.After(w.End) {
		return AfterEnd
	}
	return Active
}

// UntilStart returns the time until the window's next start. Before the
// window opens this is the time to today's start; at or after the start
// it is the time to tomorrow's occurrence. Always defined.
func (w Window) UntilStart(ref time.Time) time.Duration {
	if ref.Before(w.Start) {
		return w.Start.Sub(ref)
	}
	return w.Start.AddDate(0, 0, 1).Sub(ref)
}

// UntilEnd returns the time remaining in the window, and whether the
// reference is inside it. Outside the window (on either side) there is
// no remaining time to report; this deliberately does not mirror
// UntilStart's roll-forward.
func (w Window) UntilEnd(ref time.Time) (time.Duration, bool) {
	if ref.Before(w.Start) || ref.After(w.End) {
		return 0, false
	}
	return w.End.Sub(ref), true
}

// Contains reports whether t falls inside the window, inclusive at both
// boundaries.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}
