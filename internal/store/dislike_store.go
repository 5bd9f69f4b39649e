package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"larder/internal/domain"
)

// DislikeStore keeps the disliked-recipe deny list. Entries are keyed by
// the case-folded recipe name so "Shepherd's Pie" and "shepherd's pie"
// are the same entry; the display casing of the first addition wins.
type DislikeStore struct {
	db *sql.DB
}

func NewDislikeStore(db *sql.DB) *DislikeStore {
	return &DislikeStore{db: db}
}

func (s *DislikeStore) Add(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO disliked_recipes (name_key, name, created_at) VALUES (?, ?, ?)
		ON CONFLICT (name_key) DO NOTHING
	`, strings.ToLower(name), name, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to add dislike: %w", err)
	}
	return nil
}

func (s *DislikeStore) Remove(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM disliked_recipes WHERE name_key = ?`, strings.ToLower(name))
	if err != nil {
		return fmt.Errorf("failed to remove dislike: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("dislike %q: %w", name, domain.ErrNotFound)
	}
	return nil
}

func (s *DislikeStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM disliked_recipes ORDER BY name_key ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list dislikes: %w", err)
	}
	defer closeRows(rows)

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan dislike: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dislikes: %w", err)
	}
	return names, nil
}
