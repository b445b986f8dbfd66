package registration

import "errors"

// Business rejections surfaced by the engine. All leave no partial
// state behind: the enclosing transaction rolls back with them.
var (
	ErrNotAMember         = errors.New("not a member of this club")
	ErrMembershipPending  = errors.New("membership pending approval")
	ErrTournamentFull     = errors.New("tournament full")
	ErrRegistrationClosed = errors.New("registration closed")
)

type Mode string

const (
	ModeReserve Mode = "reserve"
	ModeBuyIn   Mode = "buy-in"
)

// RegisterOp is one registration attempt. OperationID is the
// client-supplied idempotency key; replaying it is rejected without
// effects.
type RegisterOp struct {
	OperationID  string
	UserID       uint64
	TournamentID string
	Mode         Mode
}

type CancelOp struct {
	OperationID  string
	UserID       uint64
	TournamentID string
}
