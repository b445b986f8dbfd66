package sweeper

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/clubpoker/clubledger/internal/infra/pgutils"
	"github.com/clubpoker/clubledger/internal/repos/registrations"
	pgregistrations "github.com/clubpoker/clubledger/internal/repos/registrations/postgres"
)

// Sweeper periodically cancels reserved registrations that were never
// paid for once their tournament's entry window closed, so held seats
// go back to the pool.
type Sweeper struct {
	db    *sql.DB
	regs  registrations.Registrations
	sched gocron.Scheduler
}

func New(db *sql.DB) *Sweeper {
	return &Sweeper{
		db:   db,
		regs: pgregistrations.New(db),
	}
}

// Start schedules the sweep at the given interval and runs it until
// Shutdown is called.
func (s *Sweeper) Start(interval time.Duration) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("new scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			swept, serr := s.Sweep(context.Background())
			if serr != nil {
				slog.Error("reservation sweep failed", "error", serr)
				return
			}

			if swept > 0 {
				slog.Info("swept expired reservations", "count", swept)
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("schedule sweep job: %w", err)
	}

	sched.Start()
	s.sched = sched

	return nil
}

// Sweep runs one pass and returns the number of cancelled reservations.
func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	var swept int64

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error

		swept, err = s.regs.CancelExpiredReserved(tx, time.Now())

		return err
	})
	if err != nil {
		return 0, fmt.Errorf("sweep: %w", err)
	}

	return swept, nil
}

func (s *Sweeper) Shutdown() error {
	if s.sched == nil {
		return nil
	}

	err := s.sched.Shutdown()
	if err != nil {
		return fmt.Errorf("shutdown scheduler: %w", err)
	}

	return nil
}
