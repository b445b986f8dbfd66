package tournaments

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/clubpoker/clubledger/internal/repos/tournaments"
)

func (r *tournamentsRepo) LockForEntry(tx *sql.Tx, id string) (*tournaments.Tournament, error) {
	var t tournaments.Tournament

	err := tx.QueryRow(`
		SELECT id, club_id, name, buy_in, fee, max_cap, start_time, late_reg_until
		FROM tournaments
		WHERE id = $1
		FOR UPDATE
	`, id).Scan(&t.ID, &t.ClubID, &t.Name, &t.BuyIn, &t.Fee, &t.MaxCap, &t.StartTime, &t.LateRegUntil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tournaments.ErrTournamentNotFound
		}

		return nil, fmt.Errorf("lock tournament: %w", err)
	}

	return &t, nil
}
