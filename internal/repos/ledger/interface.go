package ledger

import (
	"database/sql"
	"errors"
	"time"
)

var ErrDuplicateOperation = errors.New("duplicate operation")

type Kind string

const (
	KindDeposit Kind = "deposit"
	KindBuyIn   Kind = "buy_in"
	KindReserve Kind = "reserve"
	KindRefund  Kind = "refund"
	KindCancel  Kind = "cancel"
)

// Entry is one wallet movement. Amount is signed minor units; reserve
// and cancel entries carry amount 0 and exist for the audit trail and
// the idempotency guard only.
type Entry struct {
	ID           string
	OperationID  string
	WalletID     string
	TournamentID *string
	Kind         Kind
	Amount       int64
	CreatedAt    time.Time
}

type Ledger interface {
	// Append inserts the entry inside the caller's transaction. A reused
	// operation id hits the unique index and fails ErrDuplicateOperation,
	// rolling the whole operation back with it.
	Append(tx *sql.Tx, e Entry) error
}
