package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"larder/internal/domain"
)

type ItemStore struct {
	db *sql.DB
}

func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{db: db}
}

const itemColumns = "id, storage_area_id, name, quantity, is_opened, opened_at, expiry_date, created_at"

// CreateOrMerge folds the requested quantity into an existing unopened item
// in the same area with an equal case-insensitive name and equal expiry
// date (both-absent counts as equal), or inserts a new record when no such
// item exists. The lookup and the write run in one transaction so two
// concurrent adds for the same mergeable key cannot both insert.
//
// A merged record keeps the first occurrence's id, stored casing and
// created_at.
func (s *ItemStore) CreateOrMerge(ctx context.Context, areaID, name string, quantity int, expiry *time.Time) (*domain.PantryItem, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(tx)

	exp := expiryValue(expiry)

	var id string
	var existingQty int
	err = tx.QueryRowContext(ctx, `
		SELECT id, quantity FROM pantry_items
		WHERE storage_area_id = ?
		  AND is_opened = 0
		  AND lower(name) = lower(?)
		  AND ((? IS NULL AND expiry_date IS NULL) OR expiry_date = ?)
	`, areaID, name, exp, exp).Scan(&id, &existingQty)

	switch err {
	case nil:
		_, err = tx.ExecContext(ctx, `UPDATE pantry_items SET quantity = ? WHERE id = ?`, existingQty+quantity, id)
		if err != nil {
			return nil, fmt.Errorf("failed to merge item: %w", err)
		}
	case sql.ErrNoRows:
		id = uuid.NewString()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO pantry_items (id, storage_area_id, name, quantity, is_opened, opened_at, expiry_date, created_at)
			VALUES (?, ?, ?, ?, 0, NULL, ?, ?)
		`, id, areaID, name, quantity, exp, time.Now().UTC())
		if err != nil {
			return nil, fmt.Errorf("failed to create item: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to look up mergeable item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *ItemStore) GetByID(ctx context.Context, id string) (*domain.PantryItem, error) {
	item, err := scanItem(s.db.QueryRowContext(ctx, `
		SELECT `+itemColumns+` FROM pantry_items WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

func (s *ItemStore) ListByArea(ctx context.Context, areaID string) ([]*domain.PantryItem, error) {
	return s.list(ctx, `
		SELECT `+itemColumns+` FROM pantry_items
		WHERE storage_area_id = ?
		ORDER BY name COLLATE NOCASE ASC, created_at ASC
	`, areaID)
}

func (s *ItemStore) List(ctx context.Context) ([]*domain.PantryItem, error) {
	return s.list(ctx, `
		SELECT `+itemColumns+` FROM pantry_items
		ORDER BY name COLLATE NOCASE ASC, created_at ASC
	`)
}

func (s *ItemStore) list(ctx context.Context, query string, args ...any) ([]*domain.PantryItem, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer closeRows(rows)

	var items []*domain.PantryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}
	return items, nil
}

// SetQuantity overwrites the quantity. Callers must not pass values below 1;
// a quantity reaching zero is expressed as Delete, never as a stored zero.
func (s *ItemStore) SetQuantity(ctx context.Context, id string, quantity int) error {
	result, err := s.db.ExecContext(ctx, `UPDATE pantry_items SET quantity = ? WHERE id = ?`, quantity, id)
	if err != nil {
		return fmt.Errorf("failed to set quantity: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Open marks quantityToOpen units of the item as opened at now, applying
// the halved-shelf-life rule to the opened units' expiry.
//
// When quantityToOpen covers the whole record the record itself is opened
// in place and returned alone. Otherwise the record's quantity is reduced
// and a new opened record is split off carrying the original's name, area
// and created_at; both records are returned (unopened first) and their
// quantities sum to the original. Both writes land in one transaction.
func (s *ItemStore) Open(ctx context.Context, id string, quantityToOpen int, now time.Time) ([]*domain.PantryItem, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(tx)

	item, err := scanItem(tx.QueryRowContext(ctx, `
		SELECT `+itemColumns+` FROM pantry_items WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	openedExpiry := expiryValue(domain.OpenedExpiry(now, item.ExpiryDate))

	resultIDs := []string{id}
	if quantityToOpen >= item.Quantity {
		_, err = tx.ExecContext(ctx, `
			UPDATE pantry_items SET is_opened = 1, opened_at = ?, expiry_date = ? WHERE id = ?
		`, now, openedExpiry, id)
		if err != nil {
			return nil, fmt.Errorf("failed to open item: %w", err)
		}
	} else {
		_, err = tx.ExecContext(ctx, `
			UPDATE pantry_items SET quantity = quantity - ? WHERE id = ?
		`, quantityToOpen, id)
		if err != nil {
			return nil, fmt.Errorf("failed to reduce item: %w", err)
		}

		openedID := uuid.NewString()
		_, err = tx.ExecContext(ctx, `
			INSERT INTO pantry_items (id, storage_area_id, name, quantity, is_opened, opened_at, expiry_date, created_at)
			VALUES (?, ?, ?, ?, 1, ?, ?, ?)
		`, openedID, item.StorageAreaID, item.Name, quantityToOpen, now, openedExpiry, item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to split opened item: %w", err)
		}
		resultIDs = append(resultIDs, openedID)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	items := make([]*domain.PantryItem, 0, len(resultIDs))
	for _, rid := range resultIDs {
		it, err := s.GetByID(ctx, rid)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

func (s *ItemStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM pantry_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (s *ItemStore) DeleteByArea(ctx context.Context, areaID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM pantry_items WHERE storage_area_id = ?`, areaID)
	if err != nil {
		return fmt.Errorf("failed to delete items: %w", err)
	}
	return nil
}

// expiryValue converts a day-granular expiry to its nullable storage form.
func expiryValue(expiry *time.Time) sql.NullString {
	if expiry == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: expiry.Format(domain.DateLayout), Valid: true}
}

func scanItem(row rowScanner) (*domain.PantryItem, error) {
	item := &domain.PantryItem{}
	var openedAt sql.NullTime
	var expiry sql.NullString
	err := row.Scan(&item.ID, &item.StorageAreaID, &item.Name, &item.Quantity, &item.IsOpened, &openedAt, &expiry, &item.CreatedAt)
	if err != nil {
		return nil, err
	}
	if openedAt.Valid {
		t := openedAt.Time
		item.OpenedAt = &t
	}
	if expiry.Valid {
		d, err := time.ParseInLocation(domain.DateLayout, expiry.String, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid expiry date %q: %w", expiry.String, err)
		}
		item.ExpiryDate = &d
	}
	return item, nil
}
