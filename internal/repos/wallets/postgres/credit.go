package wallets

import (
	"database/sql"
	"fmt"

	"github.com/clubpoker/clubledger/internal/repos/wallets"
)

func (r *walletsRepo) Credit(tx *sql.Tx, walletID string, amount int64) error {
	res, err := tx.Exec(`
		UPDATE wallets
		SET balance = balance + $2
		WHERE id = $1
	`, walletID, amount)
	if err != nil {
		return fmt.Errorf("credit wallet: %w", err)
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
