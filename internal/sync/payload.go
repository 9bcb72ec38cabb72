// Package sync mirrors phone-side state to paired wearable peers: it
// builds the canonical JSON payload, debounces unchanged content, and
// runs the best-effort dual-channel delivery.
package sync

import (
	"crypto/sha256"
	"encoding/json"
	"sort"
	"time"

	"github.com/Katapios/lazybones/internal/store"
)

// Snapshot is everything the wearable needs, captured at one point in
// time. The caller assembles it from the pool classifier's output plus
// the raw record lists.
type Snapshot struct {
	GoodCount    int
	BadCount     int
	ReportStatus string
	PoolStatus   string
	TimerText    string
	GoodItems    []string
	BadItems     []string
	PlanItems    []store.PlanItem
	Reports      []store.Report
}

// Payload is the wire envelope. Field order is fixed by the struct so
// identical snapshots serialize byte-identically.
type Payload struct {
	GoodCount    int           `json:"goodCount"`
	BadCount     int           `json:"badCount"`
	ReportStatus string        `json:"reportStatus,omitempty"`
	PoolStatus   string        `json:"poolStatus,omitempty"`
	TimerText    string        `json:"timerText,omitempty"`
	GoodItems    []string      `json:"goodItems"`
	BadItems     []string      `json:"badItems"`
	Timestamp    int64         `json:"timestamp"`
	Plans        []PlanEntry   `json:"plans"`
	Reports      []ReportEntry `json:"reports"`
}

// PlanEntry links a plan item to its parent report by an explicit
// foreign key; ReportID is zero for free-standing items.
type PlanEntry struct {
	ID       int64  `json:"id"`
	ReportID int64  `json:"reportId"`
	Text     string `json:"text"`
	Date     int64  `json:"date"`
}

type ReportEntry struct {
	ID        int64    `json:"id"`
	Date      int64    `json:"date"`
	GoodCount int      `json:"goodCount"`
	BadCount  int      `json:"badCount"`
	Published bool     `json:"published"`
	GoodItems []string `json:"goodItems"`
	BadItems  []string `json:"badItems"`
	Checklist []string `json:"checklist"`
}

// BuildPayload transforms a snapshot into the wire envelope. Drafts are
// dropped from the report list and the remainder is sorted by date
// descending. Deterministic apart from Timestamp, which carries the
// build instant and is excluded from the debounce hash.
func BuildPayload(snap Snapshot, now time.Time) Payload {
	p := Payload{
		GoodCount:    snap.GoodCount,
		BadCount:     snap.BadCount,
		ReportStatus: snap.ReportStatus,
		PoolStatus:   snap.PoolStatus,
		TimerText:    snap.TimerText,
		GoodItems:    emptyNotNil(snap.GoodItems),
		BadItems:     emptyNotNil(snap.BadItems),
		Timestamp:    now.UnixMilli(),
		Plans:        []PlanEntry{},
		Reports:      []ReportEntry{},
	}

	for _, item := range snap.PlanItems {
		e := PlanEntry{
			ID:   item.ID,
			Text: item.Text,
			Date: item.Date.UnixMilli(),
		}
		if item.ReportID != nil {
			e.ReportID = *item.ReportID
		}
		p.Plans = append(p.Plans, e)
	}

	for _, r := range snap.Reports {
		if r.Draft {
			continue
		}
		p.Reports = append(p.Reports, ReportEntry{
			ID:        r.ID,
			Date:      r.Date.UnixMilli(),
			GoodCount: r.GoodCount,
			BadCount:  r.BadCount,
			Published: r.Published,
			GoodItems: emptyNotNil(r.GoodItems),
			BadItems:  emptyNotNil(r.BadItems),
			Checklist: emptyNotNil(r.Checklist),
		})
	}
	sort.SliceStable(p.Reports, func(i, j int) bool {
		return p.Reports[i].Date > p.Reports[j].Date
	})

	return p
}

// Marshal serializes the payload for transport.
func (p Payload) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

// Hash is the debounce content key: sha256 over the canonical JSON with
// Timestamp zeroed, so two payloads built at different instants from the
// same data compare equal.
func (p Payload) Hash() [32]byte {
	p.Timestamp = 0
	b, _ := json.Marshal(p)
	return sha256.Sum256(b)
}

func emptyNotNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
