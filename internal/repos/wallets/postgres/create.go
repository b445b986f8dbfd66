package wallets

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/clubpoker/clubledger/internal/repos/wallets"
	"github.com/jackc/pgx/v5/pgconn"
)

func (r *walletsRepo) Create(tx *sql.Tx, w wallets.Wallet) error {
	_, err := tx.Exec(`
		INSERT INTO wallets (id, user_id, club_id, balance, points, membership_status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, w.ID, w.UserID, w.ClubID, w.Balance, w.Points, w.Status)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation on (user_id, club_id)
				return wallets.ErrAlreadyMember
			}
		}

		return fmt.Errorf("insert wallet: %w", err)
	}

	return nil
}
