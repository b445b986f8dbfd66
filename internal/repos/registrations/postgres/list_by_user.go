package registrations

import (
	"context"
	"fmt"

	"github.com/clubpoker/clubledger/internal/repos/registrations"
)

func (r *registrationsRepo) ListByUser(ctx context.Context, userID uint64) ([]registrations.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT reg.id, reg.tournament_id, t.name, t.club_id, reg.status,
		       t.buy_in, t.fee, t.start_time, reg.created_at
		FROM registrations reg
		JOIN tournaments t ON t.id = reg.tournament_id
		WHERE reg.user_id = $1
		ORDER BY reg.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var out []registrations.Entry

	for rows.Next() {
		var e registrations.Entry

		err = rows.Scan(&e.RegistrationID, &e.TournamentID, &e.TournamentName, &e.ClubID,
			&e.Status, &e.BuyIn, &e.Fee, &e.StartTime, &e.RegisteredAt)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}

		out = append(out, e)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	return out, nil
}
