package pool

import (
	"testing"
	"time"

	"github.com/Katapios/lazybones/internal/store"
)

func evalRecord(id int64, date time.Time, draft, published bool, good, bad []string) store.Report {
	return store.Report{
		ID:        id,
		Date:      date,
		GoodItems: good,
		BadItems:  bad,
		GoodCount: len(good),
		BadCount:  len(bad),
		Draft:     draft,
		Published: published,
	}
}

func testWindow() Window {
	return ResolveWindow(480, 600, day(0, 0)) // 08:00-10:00
}

// ============================================================
// Partitioning
// ============================================================

func TestClassifyReportsPartitions(t *testing.T) {
	w := testWindow()
	inside := day(9, 0)

	records := []store.Report{
		evalRecord(1, inside, false, true, []string{"ran"}, nil),
		evalRecord(2, inside, false, false, []string{"read"}, []string{"slept in"}),
		evalRecord(3, inside, true, false, nil, []string{"doomscrolled"}),
	}

	got := ClassifyReports(records, w)
	if got.Published == nil || got.Published.ID != 1 {
		t.Fatalf("published = %+v, want record 1", got.Published)
	}
	if got.Saved == nil || got.Saved.ID != 2 {
		t.Fatalf("saved = %+v, want record 2", got.Saved)
	}
	if got.Draft == nil || got.Draft.ID != 3 {
		t.Fatalf("draft = %+v, want record 3", got.Draft)
	}
}

func TestClassifyReportsWindowMembershipInclusive(t *testing.T) {
	w := testWindow()

	records := []store.Report{
		evalRecord(1, w.Start, false, false, []string{"a"}, nil),
		evalRecord(2, w.End, true, false, []string{"b"}, nil),
		evalRecord(3, w.Start.Add(-time.Millisecond), false, true, []string{"c"}, nil),
		evalRecord(4, w.End.Add(time.Millisecond), false, true, []string{"d"}, nil),
	}

	got := ClassifyReports(records, w)
	if got.Saved == nil || got.Saved.ID != 1 {
		t.Fatalf("record at start boundary should classify, got %+v", got.Saved)
	}
	if got.Draft == nil || got.Draft.ID != 2 {
		t.Fatalf("record at end boundary should classify, got %+v", got.Draft)
	}
	if got.Published != nil {
		t.Fatalf("records outside the window must not classify, got %+v", got.Published)
	}
}

func TestClassifyReportsFirstMatchWins(t *testing.T) {
	w := testWindow()
	inside := day(9, 0)

	// Most-recent-first order: record 20 precedes record 10.
	records := []store.Report{
		evalRecord(20, inside.Add(time.Minute), false, false, []string{"newer"}, nil),
		evalRecord(10, inside, false, false, []string{"older"}, nil),
	}

	got := ClassifyReports(records, w)
	if got.Saved == nil || got.Saved.ID != 20 {
		t.Fatalf("saved = %+v, want the first (most recent) record 20", got.Saved)
	}
}

// ============================================================
// Authoritative priority
// ============================================================

func TestAuthoritativePriority(t *testing.T) {
	w := testWindow()
	inside := day(9, 0)

	draft := evalRecord(1, inside, true, false, []string{"d1"}, nil)
	saved := evalRecord(2, inside, false, false, []string{"s1", "s2"}, []string{"s3"})
	published := evalRecord(3, inside, false, true, []string{"p1", "p2", "p3"}, []string{"p4"})

	cases := []struct {
		name     string
		records  []store.Report
		wantID   int64
		wantGood int
		wantBad  int
	}{
		{"published wins over all", []store.Report{draft, saved, published}, 3, 3, 1},
		{"saved wins over draft", []store.Report{draft, saved}, 2, 2, 1},
		{"draft last resort", []store.Report{draft}, 1, 1, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pr := ClassifyReports(tc.records, w)
			auth := pr.Authoritative()
			if auth == nil || auth.ID != tc.wantID {
				t.Fatalf("authoritative = %+v, want record %d", auth, tc.wantID)
			}
			good, bad := pr.Counts()
			if good != tc.wantGood || bad != tc.wantBad {
				t.Fatalf("counts = %d/%d, want %d/%d", good, bad, tc.wantGood, tc.wantBad)
			}
		})
	}
}

func TestAuthoritativeEmpty(t *testing.T) {
	pr := ClassifyReports(nil, testWindow())
	if pr.Authoritative() != nil {
		t.Fatal("no records should mean no authoritative record")
	}
	good, bad := pr.Counts()
	if good != 0 || bad != 0 {
		t.Fatalf("counts = %d/%d, want 0/0", good, bad)
	}
}

// ============================================================
// Plan / evaluation independence
// ============================================================

// A record with both a checklist and good items is a plan, not an
// evaluation: FindPlan sees it, ClassifyReports never does.
func TestPlanRecordExcludedFromEvaluations(t *testing.T) {
	w := testWindow()
	hybrid := store.Report{
		ID:        7,
		Date:      day(9, 0),
		Checklist: []string{"task one"},
		GoodItems: []string{"also logged"},
		GoodCount: 1,
	}

	records := []store.Report{hybrid}

	if got := FindPlan(records, w); got == nil || got.ID != 7 {
		t.Fatalf("FindPlan = %+v, want the hybrid record", got)
	}

	pr := ClassifyReports(records, w)
	if pr.Published != nil || pr.Saved != nil || pr.Draft != nil {
		t.Fatalf("hybrid record leaked into evaluations: %+v", pr)
	}
}

func TestFindPlan(t *testing.T) {
	w := testWindow()

	records := []store.Report{
		{ID: 1, Date: day(9, 0), Checklist: []string{"inside"}},
		{ID: 2, Date: day(12, 0), Checklist: []string{"outside"}},
		evalRecord(3, day(9, 30), false, false, []string{"eval"}, nil),
	}

	got := FindPlan(records, w)
	if got == nil || got.ID != 1 {
		t.Fatalf("FindPlan = %+v, want record 1", got)
	}

	if got := FindPlan(records[1:2], w); got != nil {
		t.Fatalf("plan outside window should not be found, got %+v", got)
	}
	if got := FindPlan(records[2:], w); got != nil {
		t.Fatalf("evaluation record is not a plan, got %+v", got)
	}
}
