package registrations

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/clubpoker/clubledger/internal/infra/pgtestutil"
	"github.com/clubpoker/clubledger/internal/repos/registrations"
)

func seedTournament(t *testing.T, db *sql.DB, id, clubID string, startTime time.Time) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO tournaments (id, club_id, name, buy_in, fee, max_cap, start_time)
		VALUES ($1, $2, 'Test Event', 3000, 400, 9, $3)
	`, id, clubID, startTime)
	if err != nil {
		t.Fatalf("seed tournament %s: %v", id, err)
	}
}

func insertReg(t *testing.T, db *sql.DB, repo *registrationsRepo, reg registrations.Registration) error {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}

	err = repo.Insert(tx, reg)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	err = tx.Commit()
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	return nil
}

func TestRegistrations_ActivePairUnique(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	seedTournament(t, db, "t1", "club-a", time.Now().Add(24*time.Hour))

	err := insertReg(t, db, repo, registrations.Registration{
		ID: "r1", UserID: 1, TournamentID: "t1", Status: registrations.StatusReserved,
	})
	if err != nil {
		t.Fatalf("first insert: %v", err)
	}

	// Second active row for the same pair is rejected by the partial index.
	err = insertReg(t, db, repo, registrations.Registration{
		ID: "r2", UserID: 1, TournamentID: "t1", Status: registrations.StatusPaid,
	})
	if !errors.Is(err, registrations.ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got: %v", err)
	}
}

func TestRegistrations_FreshRowAllowedAfterCancel(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	seedTournament(t, db, "t1", "club-a", time.Now().Add(24*time.Hour))

	err := insertReg(t, db, repo, registrations.Registration{
		ID: "r1", UserID: 1, TournamentID: "t1", Status: registrations.StatusReserved,
	})
	if err != nil {
		t.Fatalf("first insert: %v", err)
	}

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}

	err = repo.MarkCancelled(tx, "r1")
	if err != nil {
		t.Fatalf("mark cancelled: %v", err)
	}

	err = tx.Commit()
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	// Cancelled row stays behind, a new one may be created for the pair.
	err = insertReg(t, db, repo, registrations.Registration{
		ID: "r2", UserID: 1, TournamentID: "t1", Status: registrations.StatusReserved,
	})
	if err != nil {
		t.Fatalf("re-register after cancel: %v", err)
	}

	var total int
	err = db.QueryRow(`SELECT COUNT(*) FROM registrations WHERE user_id = 1 AND tournament_id = 't1'`).Scan(&total)
	if err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected cancelled row retained (2 rows), got %d", total)
	}
}

func TestRegistrations_CountActive_ExcludesCancelled(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	seedTournament(t, db, "t1", "club-a", time.Now().Add(24*time.Hour))

	seed := []registrations.Registration{
		{ID: "r1", UserID: 1, TournamentID: "t1", Status: registrations.StatusReserved},
		{ID: "r2", UserID: 2, TournamentID: "t1", Status: registrations.StatusPaid},
		{ID: "r3", UserID: 3, TournamentID: "t1", Status: registrations.StatusCancelled},
	}
	for _, reg := range seed {
		_, err := db.Exec(`
			INSERT INTO registrations (id, user_id, tournament_id, status)
			VALUES ($1, $2, $3, $4)
		`, reg.ID, reg.UserID, reg.TournamentID, reg.Status)
		if err != nil {
			t.Fatalf("seed registration %s: %v", reg.ID, err)
		}
	}

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	count, err := repo.CountActive(tx, "t1")
	if err != nil {
		t.Fatalf("count active: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 active registrations, got %d", count)
	}
}

func TestRegistrations_CancelExpiredReserved(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	repo := New(db)

	seedTournament(t, db, "t-past", "club-a", time.Now().Add(-2*time.Hour))
	seedTournament(t, db, "t-future", "club-a", time.Now().Add(24*time.Hour))

	seed := []struct {
		id, tournament, status string
		user                   uint64
	}{
		{"r1", "t-past", "reserved", 1},
		{"r2", "t-past", "paid", 2},
		{"r3", "t-future", "reserved", 1},
	}
	for _, s := range seed {
		_, err := db.Exec(`
			INSERT INTO registrations (id, user_id, tournament_id, status)
			VALUES ($1, $2, $3, $4)
		`, s.id, s.user, s.tournament, s.status)
		if err != nil {
			t.Fatalf("seed registration %s: %v", s.id, err)
		}
	}

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}

	swept, err := repo.CancelExpiredReserved(tx, time.Now())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}

	err = tx.Commit()
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	if swept != 1 {
		t.Fatalf("expected 1 swept reservation, got %d", swept)
	}

	var status string
	err = db.QueryRow(`SELECT status FROM registrations WHERE id = 'r1'`).Scan(&status)
	if err != nil {
		t.Fatalf("get r1: %v", err)
	}
	if status != "cancelled" {
		t.Fatalf("expected r1 cancelled, got %s", status)
	}

	// Paid entries and open tournaments are untouched.
	err = db.QueryRow(`SELECT status FROM registrations WHERE id = 'r2'`).Scan(&status)
	if err != nil {
		t.Fatalf("get r2: %v", err)
	}
	if status != "paid" {
		t.Fatalf("expected r2 still paid, got %s", status)
	}

	err = db.QueryRow(`SELECT status FROM registrations WHERE id = 'r3'`).Scan(&status)
	if err != nil {
		t.Fatalf("get r3: %v", err)
	}
	if status != "reserved" {
		t.Fatalf("expected r3 still reserved, got %s", status)
	}
}
