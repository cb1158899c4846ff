package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pavelanni/commenter/internal/model"
)

// SaveExport records a generation run and returns its id.
func (s *Store) SaveExport(ctx context.Context, e model.CommentExport) (int64, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return 0, fmt.Errorf("encode export: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO comment_exports (template_id, template_name, generated_at, comment_count, missing_count, payload)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.TemplateID, e.TemplateName, e.GeneratedAt.UTC(), len(e.Comments), len(e.MissingData), string(payload),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListExports returns saved runs, newest first.
func (s *Store) ListExports(ctx context.Context, limit int) ([]model.ExportSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, template_id, template_name, generated_at, comment_count, missing_count
		 FROM comment_exports ORDER BY generated_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.ExportSummary
	for rows.Next() {
		var e model.ExportSummary
		var at time.Time
		if err := rows.Scan(&e.ID, &e.TemplateID, &e.TemplateName, &at, &e.CommentCount, &e.MissingCount); err != nil {
			return nil, err
		}
		e.GeneratedAt = at
		list = append(list, e)
	}
	return list, rows.Err()
}

// GetExport returns the full export saved under id.
// Returns sql.ErrNoRows if it does not exist.
func (s *Store) GetExport(ctx context.Context, id int64) (model.CommentExport, error) {
	var payload string
	if err := s.db.QueryRowContext(ctx, `SELECT payload FROM comment_exports WHERE id = ?`, id).Scan(&payload); err != nil {
		return model.CommentExport{}, err
	}
	var e model.CommentExport
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		return model.CommentExport{}, fmt.Errorf("decode export %d: %w", id, err)
	}
	return e, nil
}
