package wallets

import (
	"database/sql"
	"fmt"

	"github.com/clubpoker/clubledger/internal/repos/wallets"
)

// Activate flips membership_status to active. Activating an already
// active wallet is a no-op.
func (r *walletsRepo) Activate(tx *sql.Tx, userID uint64, clubID string) error {
	res, err := tx.Exec(`
		UPDATE wallets
		SET membership_status = 'active'
		WHERE user_id = $1 AND club_id = $2
	`, userID, clubID)
	if err != nil {
		return fmt.Errorf("activate wallet: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return wallets.ErrWalletNotFound
	}

	return nil
}
