package store

import (
	"database/sql"
	"errors"
	"log/slog"
)

// rollback discards tx, tolerating the tx already being committed. Used in
// defers so every early return unwinds cleanly.
func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		slog.Error("failed to roll back transaction", "error", err)
	}
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		slog.Error("failed to close rows", "error", err)
	}
}
