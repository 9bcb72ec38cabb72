package tui

import (
	"testing"
	"time"

	"github.com/Katapios/lazybones/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Clock helpers
// ============================================================

func TestFormatClock(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "00:00"},
		{360, "06:00"},
		{1080, "18:00"},
		{1439, "23:59"},
	}
	for _, c := range cases {
		if got := formatClock(c.minutes); got != c.want {
			t.Errorf("formatClock(%d) = %q, want %q", c.minutes, got, c.want)
		}
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"06:00", 360, false},
		{"18:30", 1110, false},
		{"0:05", 5, false},
		{"noon", 0, true},
		{"", 0, true},
	}
	for _, c := range cases {
		got, err := parseClock(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("parseClock(%q) expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseClock(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("parseClock(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseClockFormatRoundTrip(t *testing.T) {
	for _, minutes := range []int{0, 1, 59, 60, 360, 1080, 1439} {
		got, err := parseClock(formatClock(minutes))
		if err != nil {
			t.Fatalf("round trip %d: %v", minutes, err)
		}
		if got != minutes {
			t.Fatalf("round trip %d = %d", minutes, got)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{90 * time.Second, "00:01:30"},
		{3*time.Hour + 25*time.Minute + 7*time.Second, "03:25:07"},
		{-time.Minute, "00:00:00"},
	}
	for _, c := range cases {
		if got := formatDuration(c.d); got != c.want {
			t.Errorf("formatDuration(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}

// ============================================================
// Settings helpers
// ============================================================

func TestClampOpacity(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"50", 50},
		{"20", 20},
		{"100", 100},
		{"5", 20},
		{"150", 100},
		{"junk", 100},
		{"", 100},
	}
	for _, c := range cases {
		if got := clampOpacity(c.in); got != c.want {
			t.Errorf("clampOpacity(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

// ============================================================
// Dashboard commands
// ============================================================

// Commands run on background goroutines while resolve() keeps reading
// the loaded records on every tick, so a command may never write through
// the pointers the model holds. These tests pin that: the command's
// mutation lands in the store and the in-memory records stay untouched.

func dashboardWithDraft(t *testing.T, s *store.Store, ref time.Time) (dashboardModel, int64) {
	t.Helper()
	draft, err := s.CreateReport(&store.Report{
		Date:      ref,
		GoodItems: []string{"ran"},
		Draft:     true,
	})
	if err != nil {
		t.Fatal(err)
	}

	d := newDashboardModel(s)
	d.reports, err = s.ListReports(store.ReportFilter{})
	if err != nil {
		t.Fatal(err)
	}
	d.resolve(ref)
	if d.current.Draft == nil {
		t.Fatal("draft should classify into the window")
	}
	return d, draft.ID
}

func TestSaveReportLeavesLoadedRecordsUntouched(t *testing.T) {
	s := newTestStore(t)
	ref := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	d, draftID := dashboardWithDraft(t, s, ref)

	msg := d.saveReport()()
	if _, ok := msg.(reportSavedMsg); !ok {
		t.Fatalf("saveReport returned %T: %v", msg, msg)
	}

	if !d.reports[0].Draft {
		t.Fatal("command wrote through the model's loaded record")
	}
	got, err := s.GetReport(draftID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Draft {
		t.Fatal("store row should be saved")
	}
}

func TestAddItemLeavesLoadedRecordsUntouched(t *testing.T) {
	s := newTestStore(t)
	ref := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	d, draftID := dashboardWithDraft(t, s, ref)

	msg := d.addItem("bad", "slept in")()
	if _, ok := msg.(reportSavedMsg); !ok {
		t.Fatalf("addItem returned %T: %v", msg, msg)
	}

	if len(d.reports[0].BadItems) != 0 {
		t.Fatal("command wrote through the model's loaded record")
	}
	got, err := s.GetReport(draftID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.BadItems) != 1 || got.BadItems[0] != "slept in" {
		t.Fatalf("store row items = %v", got.BadItems)
	}
}

func TestAddItemCreatesDraftWhenWindowHasNone(t *testing.T) {
	s := newTestStore(t)
	d := newDashboardModel(s)
	d.resolve(time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC))

	msg := d.addItem("good", "read")()
	saved, ok := msg.(reportSavedMsg)
	if !ok {
		t.Fatalf("addItem returned %T: %v", msg, msg)
	}
	got, err := s.GetReport(saved.report.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Draft || len(got.GoodItems) != 1 {
		t.Fatalf("new draft = %+v", got)
	}
}

// ============================================================
// Reminders
// ============================================================

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 14, hour, minute, 0, 0, time.UTC)
}

func TestReminderDue(t *testing.T) {
	cases := []struct {
		name string
		mode int
		t    time.Time
		want bool
	}{
		{"hourly start of range", notifyHourly, at(17, 0), true},
		{"hourly end of range", notifyHourly, at(21, 0), true},
		{"hourly mid range", notifyHourly, at(19, 0), true},
		{"hourly before range", notifyHourly, at(16, 0), false},
		{"hourly after range", notifyHourly, at(22, 0), false},
		{"hourly off the hour", notifyHourly, at(18, 30), false},
		{"twice daily noon", notifyTwiceDaily, at(12, 0), true},
		{"twice daily evening", notifyTwiceDaily, at(21, 0), true},
		{"twice daily other hour", notifyTwiceDaily, at(18, 0), false},
		{"twice daily off the hour", notifyTwiceDaily, at(12, 30), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := reminderDue(c.mode, c.t); got != c.want {
				t.Fatalf("reminderDue(%d, %v) = %t, want %t", c.mode, c.t, got, c.want)
			}
		})
	}
}

type fakeSettings map[string]int

func (f fakeSettings) GetIntSetting(key string, fallback int) int {
	if v, ok := f[key]; ok {
		return v
	}
	return fallback
}

func TestReminderFiresOncePerSlot(t *testing.T) {
	r := newReminderModel(fakeSettings{"notify_enabled": 1, "notify_mode": notifyHourly})

	if msg := r.check(at(17, 0)); msg == "" {
		t.Fatal("expected a reminder at 17:00")
	}
	// Same slot, later tick: silent.
	if msg := r.check(at(17, 0).Add(time.Second)); msg != "" {
		t.Fatalf("reminder repeated within the slot: %q", msg)
	}
	// Next slot fires again.
	if msg := r.check(at(18, 0)); msg == "" {
		t.Fatal("expected a reminder at 18:00")
	}
}

func TestReminderDisabled(t *testing.T) {
	r := newReminderModel(fakeSettings{"notify_enabled": 0})

	if msg := r.check(at(17, 0)); msg != "" {
		t.Fatalf("disabled reminders fired: %q", msg)
	}
}
