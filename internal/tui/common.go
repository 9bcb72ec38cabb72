package tui

import (
	"fmt"
	"time"

	"github.com/Katapios/lazybones/internal/publish"
	"github.com/Katapios/lazybones/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewPlans
	viewReports
	viewTags
	viewSettings
)

var viewNames = []string{"Dashboard", "Plans", "Reports", "Tags", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type reportSavedMsg struct {
	report *store.Report
}

type publishDoneMsg struct {
	result publish.Result
}

type syncStartedMsg struct {
	sent bool
}

type planPromotedMsg struct {
	count int
}

type exportDoneMsg struct {
	path string
}

type formDoneMsg struct{}

// --- Helpers ---

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// formatClock renders minutes-from-midnight as HH:MM.
func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// parseClock parses HH:MM into minutes from midnight. Out-of-day values
// are passed through for the validator to reject.
func parseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	return h*60 + m, nil
}
