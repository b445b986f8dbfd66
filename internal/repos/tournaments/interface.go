package tournaments

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrTournamentNotFound = errors.New("tournament not found")

// Tournament is a catalog row. ReservedCount is derived from active
// registrations and only populated by ListByClub; it is never persisted.
type Tournament struct {
	ID            string
	ClubID        string
	Name          string
	BuyIn         int64
	Fee           int64
	MaxCap        int
	StartTime     time.Time
	LateRegUntil  *time.Time
	ReservedCount int
}

// TotalCost is the amount debited on buy-in.
func (t Tournament) TotalCost() int64 {
	return t.BuyIn + t.Fee
}

// EntryClosed reports whether registration is no longer possible:
// past the late-reg deadline when one is set, past start otherwise.
func (t Tournament) EntryClosed(now time.Time) bool {
	if t.LateRegUntil != nil {
		return now.After(*t.LateRegUntil)
	}

	return now.After(t.StartTime)
}

type Tournaments interface {
	// LockForEntry loads the tournament and takes its row lock,
	// serializing the capacity check against concurrent entries.
	LockForEntry(tx *sql.Tx, id string) (*Tournament, error)
	ListByClub(ctx context.Context, clubID string) ([]Tournament, error)
}
