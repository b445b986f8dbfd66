package registrations

import (
	"database/sql"
	"fmt"
)

// CountActive counts reserved+paid rows for a tournament. Callers must
// hold the tournament row lock so the count stays valid until commit.
func (r *registrationsRepo) CountActive(tx *sql.Tx, tournamentID string) (int, error) {
	var count int

	err := tx.QueryRow(`
		SELECT COUNT(*)
		FROM registrations
		WHERE tournament_id = $1
		  AND status IN ('reserved', 'paid')
	`, tournamentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count active registrations: %w", err)
	}

	return count, nil
}
