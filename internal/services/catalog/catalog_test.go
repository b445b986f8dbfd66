package catalog

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/clubpoker/clubledger/internal/infra/pgtestutil"
)

func seed(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()

	_, err := db.Exec(query, args...)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestService_ListTournaments_DerivedCountAndOrder(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	svc := New(db)

	later := time.Now().Add(48 * time.Hour)
	sooner := time.Now().Add(24 * time.Hour)

	seed(t, db, `
		INSERT INTO tournaments (id, club_id, name, buy_in, fee, max_cap, start_time) VALUES
		('t-late', 'club-a', 'Main Event', 5000, 500, 100, $1),
		('t-soon', 'club-a', 'Turbo', 1000, 100, 9, $2),
		('t-other', 'club-b', 'Elsewhere', 1000, 100, 9, $2)
	`, later, sooner)

	seed(t, db, `
		INSERT INTO registrations (id, user_id, tournament_id, status) VALUES
		('r1', 1, 't-soon', 'reserved'),
		('r2', 2, 't-soon', 'paid'),
		('r3', 3, 't-soon', 'cancelled')
	`)

	list, err := svc.ListTournaments(context.Background(), "club-a")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(list) != 2 {
		t.Fatalf("expected 2 tournaments for club-a, got %d", len(list))
	}

	// Ascending start time: the sooner one first.
	if list[0].ID != "t-soon" || list[1].ID != "t-late" {
		t.Fatalf("unexpected order: %s, %s", list[0].ID, list[1].ID)
	}

	// Cancelled registrations do not count toward occupancy.
	if list[0].ReservedCount != 2 {
		t.Fatalf("expected reserved count 2, got %d", list[0].ReservedCount)
	}
	if list[1].ReservedCount != 0 {
		t.Fatalf("expected reserved count 0, got %d", list[1].ReservedCount)
	}
}

func TestService_ListTournaments_LateRegWindow(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	svc := New(db)

	started := time.Now().Add(-1 * time.Hour)
	lateRegOpen := time.Now().Add(30 * time.Minute)

	// Started, but late registration still open for another half hour.
	seed(t, db, `
		INSERT INTO tournaments (id, club_id, name, buy_in, fee, max_cap, start_time, late_reg_until)
		VALUES ('t1', 'club-a', 'Running Event', 1000, 100, 9, $1, $2)
	`, started, lateRegOpen)

	// Started with no window: closed at start time.
	seed(t, db, `
		INSERT INTO tournaments (id, club_id, name, buy_in, fee, max_cap, start_time)
		VALUES ('t2', 'club-a', 'Closed Event', 1000, 100, 9, $1)
	`, started)

	list, err := svc.ListTournaments(context.Background(), "club-a")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 tournaments, got %d", len(list))
	}

	now := time.Now()
	for _, tt := range list {
		switch tt.ID {
		case "t1":
			if tt.EntryClosed(now) {
				t.Fatalf("t1 late reg should still be open")
			}
		case "t2":
			if !tt.EntryClosed(now) {
				t.Fatalf("t2 should be closed after start")
			}
		}
	}
}
