package registrations

import (
	"database/sql"
	"fmt"
	"time"
)

// CancelExpiredReserved sweeps reserved seats that were never paid for
// once a tournament's entry window has closed. Reserved rows hold no
// funds, so no wallet mutation is involved.
func (r *registrationsRepo) CancelExpiredReserved(tx *sql.Tx, now time.Time) (int64, error) {
	res, err := tx.Exec(`
		UPDATE registrations reg
		SET status = 'cancelled'
		FROM tournaments t
		WHERE t.id = reg.tournament_id
		  AND reg.status = 'reserved'
		  AND COALESCE(t.late_reg_until, t.start_time) < $1
	`, now)
	if err != nil {
		return 0, fmt.Errorf("cancel expired reservations: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	return affected, nil
}
