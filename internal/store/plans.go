package store

import (
	"database/sql"
	"fmt"
	"time"
)

func (s *Store) CreatePlanItem(text string, date time.Time) (*PlanItem, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO plan_items (text, date, created_at) VALUES (?, ?, ?)`,
		text, date.UTC().Format(time.RFC3339Nano), now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert plan item: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetPlanItem(id)
}

func (s *Store) GetPlanItem(id int64) (*PlanItem, error) {
	p := &PlanItem{}
	var reportID sql.NullInt64
	var date, createdAt string

	err := s.db.QueryRow(
		`SELECT id, report_id, text, date, created_at FROM plan_items WHERE id = ?`, id,
	).Scan(&p.ID, &reportID, &p.Text, &date, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get plan item %d: %w", id, err)
	}
	if reportID.Valid {
		p.ReportID = &reportID.Int64
	}
	p.Date, _ = time.Parse(time.RFC3339Nano, date)
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return p, nil
}

func (s *Store) ListPlanItems() ([]PlanItem, error) {
	rows, err := s.db.Query(
		`SELECT id, report_id, text, date, created_at FROM plan_items ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list plan items: %w", err)
	}
	defer rows.Close()

	var items []PlanItem
	for rows.Next() {
		var p PlanItem
		var reportID sql.NullInt64
		var date, createdAt string
		if err := rows.Scan(&p.ID, &reportID, &p.Text, &date, &createdAt); err != nil {
			return nil, err
		}
		if reportID.Valid {
			p.ReportID = &reportID.Int64
		}
		p.Date, _ = time.Parse(time.RFC3339Nano, date)
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		items = append(items, p)
	}
	return items, rows.Err()
}

func (s *Store) UpdatePlanItem(id int64, text string) error {
	_, err := s.db.Exec(`UPDATE plan_items SET text = ? WHERE id = ?`, text, id)
	return err
}

func (s *Store) DeletePlanItem(id int64) error {
	_, err := s.db.Exec(`DELETE FROM plan_items WHERE id = ?`, id)
	return err
}

// AttachPlanItems links every free-standing plan item to the report that
// absorbed them into its checklist.
func (s *Store) AttachPlanItems(reportID int64) error {
	_, err := s.db.Exec(`UPDATE plan_items SET report_id = ? WHERE report_id IS NULL`, reportID)
	return err
}

// ClearPlanItems removes all free-standing plan items. Promotion keeps
// items and links them via report_id; this is the bulk discard for
// items never promoted.
func (s *Store) ClearPlanItems() error {
	_, err := s.db.Exec(`DELETE FROM plan_items WHERE report_id IS NULL`)
	return err
}
