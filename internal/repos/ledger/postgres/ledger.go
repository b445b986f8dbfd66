package ledger

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/clubpoker/clubledger/internal/repos/ledger"
	"github.com/jackc/pgx/v5/pgconn"
)

var _ ledger.Ledger = (*ledgerRepo)(nil)

type ledgerRepo struct{ db *sql.DB }

func New(db *sql.DB) *ledgerRepo {
	return &ledgerRepo{db: db}
}

func (r *ledgerRepo) Append(tx *sql.Tx, e ledger.Entry) error {
	_, err := tx.Exec(`
		INSERT INTO wallet_ledger (id, operation_id, wallet_id, tournament_id, kind, amount)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, e.ID, e.OperationID, e.WalletID, e.TournamentID, e.Kind, e.Amount)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation on operation_id
				return ledger.ErrDuplicateOperation
			}
		}

		return fmt.Errorf("append ledger entry: %w", err)
	}

	return nil
}
