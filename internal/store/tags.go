package store

import "fmt"

func (s *Store) CreateTag(text, kind string) (*Tag, error) {
	res, err := s.db.Exec(`INSERT INTO tags (text, kind) VALUES (?, ?)`, text, kind)
	if err != nil {
		return nil, fmt.Errorf("insert tag: %w", err)
	}
	id, _ := res.LastInsertId()
	return &Tag{ID: id, Text: text, Kind: kind}, nil
}

// ListTags returns tags of the given kind, or all tags when kind is empty.
func (s *Store) ListTags(kind string) ([]Tag, error) {
	query := `SELECT id, text, kind FROM tags`
	var args []any
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY text`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Text, &t.Kind); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (s *Store) DeleteTag(id int64) error {
	_, err := s.db.Exec(`DELETE FROM tags WHERE id = ?`, id)
	return err
}
