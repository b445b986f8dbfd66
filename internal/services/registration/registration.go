package registration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clubpoker/clubledger/internal/infra/pgutils"
	"github.com/clubpoker/clubledger/internal/repos/ledger"
	pgledger "github.com/clubpoker/clubledger/internal/repos/ledger/postgres"
	"github.com/clubpoker/clubledger/internal/repos/registrations"
	pgregistrations "github.com/clubpoker/clubledger/internal/repos/registrations/postgres"
	"github.com/clubpoker/clubledger/internal/repos/tournaments"
	pgtournaments "github.com/clubpoker/clubledger/internal/repos/tournaments/postgres"
	"github.com/clubpoker/clubledger/internal/repos/wallets"
	pgwallets "github.com/clubpoker/clubledger/internal/repos/wallets/postgres"
)

// Engine owns the registration state machine and every wallet mutation
// it implies. Each operation is a single DB transaction; locks are
// always taken in the order tournament -> wallet -> registration.
type Engine struct {
	db      *sql.DB
	wallets wallets.Wallets
	tourns  tournaments.Tournaments
	regs    registrations.Registrations
	ledger  ledger.Ledger
	now     func() time.Time
}

func New(db *sql.DB) *Engine {
	return &Engine{
		db:      db,
		wallets: pgwallets.New(db),
		tourns:  pgtournaments.New(db),
		regs:    pgregistrations.New(db),
		ledger:  pgledger.New(db),
		now:     time.Now,
	}
}

// Register runs the full entry flow in one DB transaction:
//
// 1) Lock the tournament row (serializes the capacity check).
// 2) Lock the wallet row, require active membership.
// 3) Resolve the existing active registration: none, upgrade, or reject.
// 4) For buy-in, debit buy_in + fee off the locked wallet.
// 5) Write the registration and the ledger row (idempotency guard).
func (e *Engine) Register(ctx context.Context, op RegisterOp) (*registrations.Registration, error) {
	if op.Mode != ModeReserve && op.Mode != ModeBuyIn {
		return nil, fmt.Errorf("register: invalid mode: %s", op.Mode)
	}

	var result *registrations.Registration

	err := pgutils.WithTx(ctx, e.db, func(tx *sql.Tx) error {
		t, err := e.tourns.LockForEntry(tx, op.TournamentID)
		if err != nil {
			return fmt.Errorf("lock tournament: %w", err)
		}

		if t.EntryClosed(e.now()) {
			return ErrRegistrationClosed
		}

		w, err := e.lockActiveWallet(tx, op.UserID, t.ClubID)
		if err != nil {
			return err
		}

		existing, err := e.regs.ActiveForUpdate(tx, op.UserID, op.TournamentID)
		if err != nil {
			return fmt.Errorf("get active registration: %w", err)
		}

		if existing != nil {
			if existing.Status == registrations.StatusReserved && op.Mode == ModeBuyIn {
				result, err = e.upgrade(tx, op, t, w, existing)
				return err
			}

			return registrations.ErrAlreadyRegistered
		}

		// Capacity is rechecked here under the tournament lock; the
		// insert below is part of the same transaction, so two callers
		// cannot both pass at the cap.
		count, err := e.regs.CountActive(tx, op.TournamentID)
		if err != nil {
			return fmt.Errorf("count active: %w", err)
		}

		if count >= t.MaxCap {
			return ErrTournamentFull
		}

		reg := registrations.Registration{
			ID:           uuid.NewString(),
			UserID:       op.UserID,
			TournamentID: op.TournamentID,
			Status:       registrations.StatusReserved,
		}

		entry := ledger.Entry{
			ID:           uuid.NewString(),
			OperationID:  op.OperationID,
			WalletID:     w.ID,
			TournamentID: &t.ID,
			Kind:         ledger.KindReserve,
			Amount:       0,
		}

		if op.Mode == ModeBuyIn {
			err = e.wallets.Debit(tx, w.ID, t.TotalCost())
			if err != nil {
				return fmt.Errorf("debit buy-in: %w", err)
			}

			reg.Status = registrations.StatusPaid
			entry.Kind = ledger.KindBuyIn
			entry.Amount = -t.TotalCost()
		}

		err = e.regs.Insert(tx, reg)
		if err != nil {
			return fmt.Errorf("insert registration: %w", err)
		}

		err = e.ledger.Append(tx, entry)
		if err != nil {
			return fmt.Errorf("append ledger: %w", err)
		}

		result = &reg

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	return result, nil
}

// upgrade flips an existing reserved registration to paid in place.
// The seat is already held, so capacity is not rechecked.
func (e *Engine) upgrade(tx *sql.Tx, op RegisterOp, t *tournaments.Tournament, w *wallets.Wallet, existing *registrations.Registration) (*registrations.Registration, error) {
	err := e.wallets.Debit(tx, w.ID, t.TotalCost())
	if err != nil {
		return nil, fmt.Errorf("debit upgrade: %w", err)
	}

	err = e.regs.MarkPaid(tx, existing.ID)
	if err != nil {
		return nil, fmt.Errorf("mark paid: %w", err)
	}

	err = e.ledger.Append(tx, ledger.Entry{
		ID:           uuid.NewString(),
		OperationID:  op.OperationID,
		WalletID:     w.ID,
		TournamentID: &t.ID,
		Kind:         ledger.KindBuyIn,
		Amount:       -t.TotalCost(),
	})
	if err != nil {
		return nil, fmt.Errorf("append ledger: %w", err)
	}

	upgraded := *existing
	upgraded.Status = registrations.StatusPaid

	return &upgraded, nil
}

// Cancel voids the user's active registration. Paid entries get the
// buy-in back; the registration fee is kept (online fees are
// non-refundable). Reserved entries move no money.
func (e *Engine) Cancel(ctx context.Context, op CancelOp) error {
	err := pgutils.WithTx(ctx, e.db, func(tx *sql.Tx) error {
		t, err := e.tourns.LockForEntry(tx, op.TournamentID)
		if err != nil {
			return fmt.Errorf("lock tournament: %w", err)
		}

		w, err := e.wallets.LockAndGet(tx, op.UserID, t.ClubID)
		if err != nil {
			return fmt.Errorf("lock wallet: %w", err)
		}

		existing, err := e.regs.ActiveForUpdate(tx, op.UserID, op.TournamentID)
		if err != nil {
			return fmt.Errorf("get active registration: %w", err)
		}

		if existing == nil {
			return registrations.ErrNotRegistered
		}

		entry := ledger.Entry{
			ID:           uuid.NewString(),
			OperationID:  op.OperationID,
			WalletID:     w.ID,
			TournamentID: &t.ID,
			Kind:         ledger.KindCancel,
			Amount:       0,
		}

		if existing.Status == registrations.StatusPaid {
			err = e.wallets.Credit(tx, w.ID, t.BuyIn)
			if err != nil {
				return fmt.Errorf("refund buy-in: %w", err)
			}

			entry.Kind = ledger.KindRefund
			entry.Amount = t.BuyIn
		}

		err = e.regs.MarkCancelled(tx, existing.ID)
		if err != nil {
			return fmt.Errorf("mark cancelled: %w", err)
		}

		err = e.ledger.Append(tx, entry)
		if err != nil {
			return fmt.Errorf("append ledger: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("cancel: %w", err)
	}

	return nil
}

// Entries returns the user's game history, newest first, cancelled
// registrations included.
func (e *Engine) Entries(ctx context.Context, userID uint64) ([]registrations.Entry, error) {
	entries, err := e.regs.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("entries: %w", err)
	}

	return entries, nil
}

func (e *Engine) lockActiveWallet(tx *sql.Tx, userID uint64, clubID string) (*wallets.Wallet, error) {
	w, err := e.wallets.LockAndGet(tx, userID, clubID)
	if err != nil {
		if errors.Is(err, wallets.ErrWalletNotFound) {
			return nil, ErrNotAMember
		}

		return nil, fmt.Errorf("lock wallet: %w", err)
	}

	if w.Status != wallets.StatusActive {
		return nil, ErrMembershipPending
	}

	return w, nil
}
