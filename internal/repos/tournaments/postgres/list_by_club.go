package tournaments

import (
	"context"
	"fmt"

	"github.com/clubpoker/clubledger/internal/repos/tournaments"
)

// ListByClub returns the club's tournaments ordered by start time.
// reserved_count is recomputed from live registrations on every call,
// never read from a stored column.
func (r *tournamentsRepo) ListByClub(ctx context.Context, clubID string) ([]tournaments.Tournament, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.club_id, t.name, t.buy_in, t.fee, t.max_cap,
		       t.start_time, t.late_reg_until,
		       COUNT(reg.id) AS reserved_count
		FROM tournaments t
		LEFT JOIN registrations reg
		       ON reg.tournament_id = t.id
		      AND reg.status IN ('reserved', 'paid')
		WHERE t.club_id = $1
		GROUP BY t.id
		ORDER BY t.start_time ASC
	`, clubID)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}
	defer rows.Close()

	var out []tournaments.Tournament

	for rows.Next() {
		var t tournaments.Tournament

		err = rows.Scan(&t.ID, &t.ClubID, &t.Name, &t.BuyIn, &t.Fee, &t.MaxCap,
			&t.StartTime, &t.LateRegUntil, &t.ReservedCount)
		if err != nil {
			return nil, fmt.Errorf("scan tournament: %w", err)
		}

		out = append(out, t)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate tournaments: %w", err)
	}

	return out, nil
}
