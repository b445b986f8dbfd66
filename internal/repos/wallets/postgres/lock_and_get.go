package wallets

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/clubpoker/clubledger/internal/repos/wallets"
)

func (r *walletsRepo) LockAndGet(tx *sql.Tx, userID uint64, clubID string) (*wallets.Wallet, error) {
	var w wallets.Wallet

	err := tx.QueryRow(`
		SELECT id, user_id, club_id, balance, points, membership_status, created_at
		FROM wallets
		WHERE user_id = $1 AND club_id = $2
		FOR UPDATE
	`, userID, clubID).Scan(&w.ID, &w.UserID, &w.ClubID, &w.Balance, &w.Points, &w.Status, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, wallets.ErrWalletNotFound
		}

		return nil, fmt.Errorf("lock/get wallet: %w", err)
	}

	return &w, nil
}
