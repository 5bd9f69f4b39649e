package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"larder/internal/domain"
)

type AreaStore struct {
	db *sql.DB
}

func NewAreaStore(db *sql.DB) *AreaStore {
	return &AreaStore{db: db}
}

const areaColumns = "id, name, icon, color, position, created_at, updated_at"

// defaultAreas seeds an empty install: fridge, freezer, pantry at
// positions 0, 1, 2.
var defaultAreas = []struct {
	name  string
	icon  string
	color string
}{
	{"Fridge", "refrigerator", "blue"},
	{"Freezer", "snowflake", "cyan"},
	{"Pantry", "warehouse", "amber"},
}

// EnsureDefaults inserts the three default areas when no areas exist yet.
// The check and the inserts run in one transaction so a half-seeded set is
// never observable.
func (s *AreaStore) EnsureDefaults(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(tx)

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM storage_areas`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count areas: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	for i, def := range defaultAreas {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO storage_areas (id, name, icon, color, position, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, uuid.NewString(), def.name, def.icon, def.color, i, now, now)
		if err != nil {
			return fmt.Errorf("failed to seed area %q: %w", def.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}

// Create inserts an area at the end of the display order.
func (s *AreaStore) Create(ctx context.Context, name, icon, color string) (*domain.StorageArea, error) {
	id := uuid.NewString()
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(tx)

	var position int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position) + 1, 0) FROM storage_areas`).Scan(&position); err != nil {
		return nil, fmt.Errorf("failed to compute position: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO storage_areas (id, name, icon, color, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, name, icon, color, position, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create area: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *AreaStore) GetByID(ctx context.Context, id string) (*domain.StorageArea, error) {
	area, err := scanArea(s.db.QueryRowContext(ctx, `
		SELECT `+areaColumns+` FROM storage_areas WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("area %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get area: %w", err)
	}
	return area, nil
}

func (s *AreaStore) List(ctx context.Context) ([]*domain.StorageArea, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+areaColumns+` FROM storage_areas ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list areas: %w", err)
	}
	defer closeRows(rows)

	var areas []*domain.StorageArea
	for rows.Next() {
		area, err := scanArea(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan area: %w", err)
		}
		areas = append(areas, area)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating areas: %w", err)
	}
	return areas, nil
}

// Update applies the provided fields; nil means keep the current value. An
// explicitly empty (after trimming) name is treated the same as an omitted
// one: the prior name is retained and the update still succeeds.
func (s *AreaStore) Update(ctx context.Context, id string, name, icon, color *string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(tx)

	current, err := scanArea(tx.QueryRowContext(ctx, `
		SELECT `+areaColumns+` FROM storage_areas WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return fmt.Errorf("area %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get area: %w", err)
	}

	if name != nil {
		if trimmed := strings.TrimSpace(*name); trimmed != "" {
			current.Name = trimmed
		}
	}
	if icon != nil {
		current.Icon = *icon
	}
	if color != nil {
		current.Color = *color
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE storage_areas SET name = ?, icon = ?, color = ?, updated_at = ? WHERE id = ?
	`, current.Name, current.Icon, current.Color, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update area: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// DeleteCascade deletes the area together with every item it contains and
// re-packs the surviving areas' positions to 0..N-1 in their existing
// relative order. All of it lands in one transaction or none of it does.
func (s *AreaStore) DeleteCascade(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(tx)

	if _, err := tx.ExecContext(ctx, `DELETE FROM pantry_items WHERE storage_area_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete items: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM storage_areas WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete area: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("area %s: %w", id, domain.ErrNotFound)
	}

	if err := repackPositions(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Reorder assigns positions 0..len-1 to the given ids in sequence order.
// Areas omitted from the sequence are appended after it, preserving their
// previous relative order, so positions stay a dense 0..N-1 permutation
// even for partial sequences. Unknown ids are ignored.
func (s *AreaStore) Reorder(ctx context.Context, ids []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(tx)

	existing, err := areaIDsByPosition(ctx, tx)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(existing))
	for _, id := range existing {
		known[id] = true
	}

	ordered := make([]string, 0, len(existing))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if known[id] && !seen[id] {
			ordered = append(ordered, id)
			seen[id] = true
		}
	}
	for _, id := range existing {
		if !seen[id] {
			ordered = append(ordered, id)
		}
	}

	now := time.Now().UTC()
	for position, id := range ordered {
		_, err := tx.ExecContext(ctx, `
			UPDATE storage_areas SET position = ?, updated_at = ? WHERE id = ?
		`, position, now, id)
		if err != nil {
			return fmt.Errorf("failed to reorder area %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func repackPositions(ctx context.Context, tx *sql.Tx) error {
	ids, err := areaIDsByPosition(ctx, tx)
	if err != nil {
		return err
	}
	for position, id := range ids {
		_, err := tx.ExecContext(ctx, `UPDATE storage_areas SET position = ? WHERE id = ?`, position, id)
		if err != nil {
			return fmt.Errorf("failed to re-pack position for area %s: %w", id, err)
		}
	}
	return nil
}

func areaIDsByPosition(ctx context.Context, tx *sql.Tx) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id FROM storage_areas ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list area ids: %w", err)
	}
	defer closeRows(rows)

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan area id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating area ids: %w", err)
	}
	return ids, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArea(row rowScanner) (*domain.StorageArea, error) {
	area := &domain.StorageArea{}
	err := row.Scan(&area.ID, &area.Name, &area.Icon, &area.Color, &area.Position, &area.CreatedAt, &area.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return area, nil
}
