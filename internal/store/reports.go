package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// CreateReport inserts a new report. GoodCount/BadCount are derived from
// the item lists; callers never set them independently.
func (s *Store) CreateReport(r *Report) (*Report, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO reports (date, content, checklist, good_items, bad_items, good_count, bad_count, published, draft, voice_notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Date.UTC().Format(time.RFC3339Nano),
		r.Content,
		marshalStrings(r.Checklist),
		marshalStrings(r.GoodItems),
		marshalStrings(r.BadItems),
		len(r.GoodItems),
		len(r.BadItems),
		boolToInt(r.Published),
		boolToInt(r.Draft),
		marshalInts(r.VoiceNotes),
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert report: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetReport(id)
}

// UpdateReport rewrites the mutable fields of an existing report.
func (s *Store) UpdateReport(r *Report) error {
	_, err := s.db.Exec(
		`UPDATE reports SET date = ?, content = ?, checklist = ?, good_items = ?, bad_items = ?,
		 good_count = ?, bad_count = ?, published = ?, draft = ?, voice_notes = ? WHERE id = ?`,
		r.Date.UTC().Format(time.RFC3339Nano),
		r.Content,
		marshalStrings(r.Checklist),
		marshalStrings(r.GoodItems),
		marshalStrings(r.BadItems),
		len(r.GoodItems),
		len(r.BadItems),
		boolToInt(r.Published),
		boolToInt(r.Draft),
		marshalInts(r.VoiceNotes),
		r.ID,
	)
	if err != nil {
		return fmt.Errorf("update report %d: %w", r.ID, err)
	}
	return nil
}

// MarkPublished flips a report to published, non-draft.
func (s *Store) MarkPublished(id int64) error {
	_, err := s.db.Exec(`UPDATE reports SET published = 1, draft = 0 WHERE id = ?`, id)
	return err
}

func (s *Store) GetReport(id int64) (*Report, error) {
	row := s.db.QueryRow(
		`SELECT id, date, content, checklist, good_items, bad_items, good_count, bad_count, published, draft, voice_notes, created_at
		 FROM reports WHERE id = ?`, id,
	)
	r, err := scanReport(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get report %d: %w", id, err)
	}
	return r, nil
}

// ListReports returns reports most-recent-first by date. The pool
// classifier depends on this ordering when picking "first" matches.
func (s *Store) ListReports(f ReportFilter) ([]Report, error) {
	query := `SELECT id, date, content, checklist, good_items, bad_items, good_count, bad_count, published, draft, voice_notes, created_at
	          FROM reports WHERE 1=1`
	var args []any

	if f.From != nil {
		query += ` AND date >= ?`
		args = append(args, f.From.UTC().Format(time.RFC3339Nano))
	}
	if f.To != nil {
		query += ` AND date <= ?`
		args = append(args, f.To.UTC().Format(time.RFC3339Nano))
	}
	if f.Published != nil {
		query += ` AND published = ?`
		args = append(args, boolToInt(*f.Published))
	}
	if f.Draft != nil {
		query += ` AND draft = ?`
		args = append(args, boolToInt(*f.Draft))
	}
	query += ` ORDER BY date DESC, id DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var reports []Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *r)
	}
	return reports, rows.Err()
}

func (s *Store) DeleteReport(id int64) error {
	_, err := s.db.Exec(`DELETE FROM reports WHERE id = ?`, id)
	return err
}

// GetDailyCounts aggregates good/bad totals per calendar day across
// non-draft evaluations in [from, to).
func (s *Store) GetDailyCounts(from, to time.Time) ([]DailyCounts, error) {
	rows, err := s.db.Query(`
		SELECT date(date) AS day, COALESCE(SUM(good_count), 0), COALESCE(SUM(bad_count), 0), COUNT(*)
		FROM reports
		WHERE draft = 0 AND checklist = '[]'
		  AND date >= ? AND date < ?
		GROUP BY day
		ORDER BY day`,
		from.UTC().Format(time.RFC3339Nano), to.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("daily counts: %w", err)
	}
	defer rows.Close()

	var counts []DailyCounts
	for rows.Next() {
		var dc DailyCounts
		if err := rows.Scan(&dc.Date, &dc.GoodTotal, &dc.BadTotal, &dc.Reports); err != nil {
			return nil, err
		}
		counts = append(counts, dc)
	}
	return counts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*Report, error) {
	r := &Report{}
	var date, checklist, goodItems, badItems, voiceNotes, createdAt string
	var published, draft int

	err := row.Scan(&r.ID, &date, &r.Content, &checklist, &goodItems, &badItems,
		&r.GoodCount, &r.BadCount, &published, &draft, &voiceNotes, &createdAt)
	if err != nil {
		return nil, err
	}
	r.Date, _ = time.Parse(time.RFC3339Nano, date)
	r.Checklist = unmarshalStrings(checklist)
	r.GoodItems = unmarshalStrings(goodItems)
	r.BadItems = unmarshalStrings(badItems)
	r.VoiceNotes = unmarshalInts(voiceNotes)
	r.Published = published == 1
	r.Draft = draft == 1
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return r, nil
}

func marshalStrings(v []string) string {
	if len(v) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func unmarshalStrings(s string) []string {
	var v []string
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil
	}
	if len(v) == 0 {
		return nil
	}
	return v
}

func marshalInts(v []int64) string {
	if len(v) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func unmarshalInts(s string) []int64 {
	var v []int64
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil
	}
	if len(v) == 0 {
		return nil
	}
	return v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
