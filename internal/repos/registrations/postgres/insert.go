package registrations

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/clubpoker/clubledger/internal/repos/registrations"
	"github.com/jackc/pgx/v5/pgconn"
)

func (r *registrationsRepo) Insert(tx *sql.Tx, reg registrations.Registration) error {
	_, err := tx.Exec(`
		INSERT INTO registrations (id, user_id, tournament_id, status)
		VALUES ($1, $2, $3, $4)
	`, reg.ID, reg.UserID, reg.TournamentID, reg.Status)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // partial unique index on active pair
				return registrations.ErrAlreadyRegistered
			}
		}

		return fmt.Errorf("insert registration: %w", err)
	}

	return nil
}
