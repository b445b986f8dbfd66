package registrations

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/clubpoker/clubledger/internal/repos/registrations"
)

func (r *registrationsRepo) ActiveForUpdate(tx *sql.Tx, userID uint64, tournamentID string) (*registrations.Registration, error) {
	var reg registrations.Registration

	err := tx.QueryRow(`
		SELECT id, user_id, tournament_id, status, created_at
		FROM registrations
		WHERE user_id = $1
		  AND tournament_id = $2
		  AND status <> 'cancelled'
		FOR UPDATE
	`, userID, tournamentID).Scan(&reg.ID, &reg.UserID, &reg.TournamentID, &reg.Status, &reg.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("lock/get active registration: %w", err)
	}

	return &reg, nil
}
