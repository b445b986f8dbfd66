package pgutils

import (
	"context"
	"database/sql"
	"fmt"
)

// WithTx wraps fn in a transaction at the default isolation level:
// commit when fn returns nil, roll back otherwise. Every service
// operation in this codebase is exactly one WithTx body, so a failure
// anywhere inside fn leaves no partial state behind.
func WithTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	err = fn(tx)
	if err != nil {
		rollbackErr := tx.Rollback()
		if rollbackErr != nil {
			return fmt.Errorf("rollback after fn error: %v (fn err: %w)", rollbackErr, err)
		}

		return fmt.Errorf("fn: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}
