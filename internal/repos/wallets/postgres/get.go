package wallets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/clubpoker/clubledger/internal/repos/wallets"
)

func (r *walletsRepo) Get(ctx context.Context, userID uint64, clubID string) (*wallets.Wallet, error) {
	var w wallets.Wallet

	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, club_id, balance, points, membership_status, created_at
		FROM wallets
		WHERE user_id = $1 AND club_id = $2
	`, userID, clubID).Scan(&w.ID, &w.UserID, &w.ClubID, &w.Balance, &w.Points, &w.Status, &w.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, wallets.ErrWalletNotFound
		}

		return nil, fmt.Errorf("get wallet: %w", err)
	}

	return &w, nil
}
