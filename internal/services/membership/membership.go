package membership

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/clubpoker/clubledger/internal/infra/pgutils"
	"github.com/clubpoker/clubledger/internal/repos/ledger"
	pgledger "github.com/clubpoker/clubledger/internal/repos/ledger/postgres"
	"github.com/clubpoker/clubledger/internal/repos/wallets"
	pgwallets "github.com/clubpoker/clubledger/internal/repos/wallets/postgres"
)

// Service manages club membership: the wallet rows themselves. Balance
// changes tied to tournament entry stay with the registration engine;
// this service only creates, activates, funds and reads wallets.
type Service struct {
	db      *sql.DB
	wallets wallets.Wallets
	ledger  ledger.Ledger
}

func New(db *sql.DB) *Service {
	return &Service{
		db:      db,
		wallets: pgwallets.New(db),
		ledger:  pgledger.New(db),
	}
}

// Join applies for membership: a zero-balance wallet in pending status.
// A second application for the same pair fails ErrAlreadyMember.
func (s *Service) Join(ctx context.Context, userID uint64, clubID string) (*wallets.Wallet, error) {
	w := wallets.Wallet{
		ID:      uuid.NewString(),
		UserID:  userID,
		ClubID:  clubID,
		Balance: 0,
		Points:  0,
		Status:  wallets.StatusPending,
	}

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return s.wallets.Create(tx, w)
	})
	if err != nil {
		return nil, fmt.Errorf("join: %w", err)
	}

	return &w, nil
}

// Activate approves a pending application. Idempotent: activating an
// active wallet changes nothing.
func (s *Service) Activate(ctx context.Context, userID uint64, clubID string) (*wallets.Wallet, error) {
	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return s.wallets.Activate(tx, userID, clubID)
	})
	if err != nil {
		return nil, fmt.Errorf("activate: %w", err)
	}

	return s.GetWallet(ctx, userID, clubID)
}

// GetWallet returns the wallet for the pair; absence means the user is
// not a member of the club.
func (s *Service) GetWallet(ctx context.Context, userID uint64, clubID string) (*wallets.Wallet, error) {
	w, err := s.wallets.Get(ctx, userID, clubID)
	if err != nil {
		return nil, fmt.Errorf("get wallet: %w", err)
	}

	return w, nil
}

// DepositOp books funds onto a wallet. OperationID is the client's
// idempotency key; a replay fails ErrDuplicateOperation with no credit.
type DepositOp struct {
	OperationID string
	UserID      uint64
	ClubID      string
	Amount      int64
}

func (s *Service) Deposit(ctx context.Context, op DepositOp) (*wallets.Wallet, error) {
	var result *wallets.Wallet

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		w, err := s.wallets.LockAndGet(tx, op.UserID, op.ClubID)
		if err != nil {
			return fmt.Errorf("lock wallet: %w", err)
		}

		err = s.wallets.Credit(tx, w.ID, op.Amount)
		if err != nil {
			return fmt.Errorf("credit: %w", err)
		}

		err = s.ledger.Append(tx, ledger.Entry{
			ID:          uuid.NewString(),
			OperationID: op.OperationID,
			WalletID:    w.ID,
			Kind:        ledger.KindDeposit,
			Amount:      op.Amount,
		})
		if err != nil {
			return fmt.Errorf("append ledger: %w", err)
		}

		w.Balance += op.Amount
		result = w

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("deposit: %w", err)
	}

	return result, nil
}
