package pool

import "github.com/Katapios/lazybones/internal/store"

// PoolReports partitions one window's evaluation records by publication
// state. Each slot holds the first match in the caller's record order;
// the store returns reports most-recent-first, so "first" means the most
// recent one.
type PoolReports struct {
	Published *store.Report
	Saved     *store.Report
	Draft     *store.Report
}

// Authoritative picks the single record that drives displayed counters:
// published over saved over draft. Every caller that needs counters goes
// through this; the priority rule is not re-derived anywhere else.
func (p PoolReports) Authoritative() *store.Report {
	switch {
	case p.Published != nil:
		return p.Published
	case p.Saved != nil:
		return p.Saved
	default:
		return p.Draft
	}
}

// Counts returns the good/bad counters of the authoritative record, or
// zeros when the window has no evaluation yet.
func (p PoolReports) Counts() (good, bad int) {
	r := p.Authoritative()
	if r == nil {
		return 0, 0
	}
	return r.GoodCount, r.BadCount
}

// ClassifyReports filters records to local evaluations dated inside the
// window and fills each publication-state slot with the first match.
// Records carrying a checklist are plans and never land here, even when
// they also carry good/bad items.
func ClassifyReports(records []store.Report, w Window) PoolReports {
	var out PoolReports
	for i := range records {
		r := &records[i]
		if !r.IsEvaluation() || !w.Contains(r.Date) {
			continue
		}
		switch {
		case !r.Draft && r.Published:
			if out.Published == nil {
				out.Published = r
			}
		case !r.Draft:
			if out.Saved == nil {
				out.Saved = r
			}
		default:
			if out.Draft == nil {
				out.Draft = r
			}
		}
	}
	return out
}

// FindPlan returns the first record with a non-empty checklist dated
// inside the window, or nil. Same ordering precondition as
// ClassifyReports.
func FindPlan(records []store.Report, w Window) *store.Report {
	for i := range records {
		r := &records[i]
		if r.IsPlan() && w.Contains(r.Date) {
			return r
		}
	}
	return nil
}
