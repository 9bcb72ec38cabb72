package store

import "time"

// Report is one day's plan and/or evaluation. A report with a non-empty
// Checklist is a plan; a report with an empty Checklist and good or bad
// items is a local evaluation.
type Report struct {
	ID         int64
	Date       time.Time
	Content    string
	Checklist  []string
	GoodItems  []string
	BadItems   []string
	GoodCount  int
	BadCount   int
	Published  bool
	Draft      bool
	VoiceNotes []int64
	CreatedAt  time.Time
}

// IsPlan reports whether the record carries a task checklist.
func (r *Report) IsPlan() bool {
	return len(r.Checklist) > 0
}

// IsEvaluation reports whether the record is a local evaluation:
// no checklist, at least one good or bad item.
func (r *Report) IsEvaluation() bool {
	return len(r.Checklist) == 0 && (len(r.GoodItems) > 0 || len(r.BadItems) > 0)
}

// PlanItem is a standalone to-do entry. ReportID links it to the report
// whose checklist it was promoted into; nil while still free-standing.
type PlanItem struct {
	ID        int64
	ReportID  *int64
	Text      string
	Date      time.Time
	CreatedAt time.Time
}

// Tag is a reusable suggestion for the good/bad item pickers.
type Tag struct {
	ID   int64
	Text string
	Kind string // "good" or "bad"
}

type Setting struct {
	Key   string
	Value string
}

// ReportFilter is used to filter reports in queries.
type ReportFilter struct {
	From      *time.Time
	To        *time.Time
	Published *bool
	Draft     *bool
	Limit     int
}

// DailyCounts is aggregated good/bad totals per day for the history chart.
type DailyCounts struct {
	Date      string
	GoodTotal int64
	BadTotal  int64
	Reports   int
}
