package registrations

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrAlreadyRegistered = errors.New("already registered")
var ErrNotRegistered = errors.New("not registered")

type Status string

const (
	StatusReserved  Status = "reserved"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// Registration ties a user to a tournament. Cancelled rows are kept as
// an audit trail; at most one non-cancelled row may exist per
// (user, tournament) pair, enforced by a partial unique index on top of
// the engine's locked check.
type Registration struct {
	ID           string
	UserID       uint64
	TournamentID string
	Status       Status
	CreatedAt    time.Time
}

// Entry is a row of a user's game history: their registration joined
// with the tournament it belongs to.
type Entry struct {
	RegistrationID string
	TournamentID   string
	TournamentName string
	ClubID         string
	Status         Status
	BuyIn          int64
	Fee            int64
	StartTime      time.Time
	RegisteredAt   time.Time
}

type Registrations interface {
	// ActiveForUpdate returns the non-cancelled registration for the
	// pair with its row locked, or (nil, nil) when there is none.
	ActiveForUpdate(tx *sql.Tx, userID uint64, tournamentID string) (*Registration, error)
	Insert(tx *sql.Tx, reg Registration) error
	MarkPaid(tx *sql.Tx, id string) error
	MarkCancelled(tx *sql.Tx, id string) error
	CountActive(tx *sql.Tx, tournamentID string) (int, error)
	ListByUser(ctx context.Context, userID uint64) ([]Entry, error)
	// CancelExpiredReserved cancels reserved rows of tournaments whose
	// entry window has closed and returns how many were swept.
	CancelExpiredReserved(tx *sql.Tx, now time.Time) (int64, error)
}
