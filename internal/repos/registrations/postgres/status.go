package registrations

import (
	"database/sql"
	"fmt"

	"github.com/clubpoker/clubledger/internal/repos/registrations"
)

// MarkPaid upgrades a reserved registration in place. The row id and
// created_at stay the same: an upgrade is not a new entry.
func (r *registrationsRepo) MarkPaid(tx *sql.Tx, id string) error {
	return r.setStatus(tx, id, "paid", "reserved")
}

func (r *registrationsRepo) MarkCancelled(tx *sql.Tx, id string) error {
	return r.setStatus(tx, id, "cancelled", "reserved", "paid")
}

func (r *registrationsRepo) setStatus(tx *sql.Tx, id, to string, from ...string) error {
	res, err := tx.Exec(`
		UPDATE registrations
		SET status = $2
		WHERE id = $1
		  AND status = ANY($3::text[])
	`, id, to, from)
	if err != nil {
		return fmt.Errorf("set registration status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return registrations.ErrNotRegistered
	}

	return nil
}
