package wallets

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrWalletNotFound = errors.New("wallet not found")
var ErrAlreadyMember = errors.New("already a member")
var ErrInsufficientFunds = errors.New("insufficient funds")

type MembershipStatus string

const (
	StatusPending MembershipStatus = "pending"
	StatusActive  MembershipStatus = "active"
)

// Wallet is the per (user, club) balance and membership record.
// Balance and Points are minor units; Balance never goes negative.
type Wallet struct {
	ID        string
	UserID    uint64
	ClubID    string
	Balance   int64
	Points    int64
	Status    MembershipStatus
	CreatedAt time.Time
}

type Wallets interface {
	Create(tx *sql.Tx, w Wallet) error
	Get(ctx context.Context, userID uint64, clubID string) (*Wallet, error)
	LockAndGet(tx *sql.Tx, userID uint64, clubID string) (*Wallet, error)
	Credit(tx *sql.Tx, walletID string, amount int64) error
	Debit(tx *sql.Tx, walletID string, amount int64) error
	Activate(tx *sql.Tx, userID uint64, clubID string) error
}
