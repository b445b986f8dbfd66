package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/clubpoker/clubledger/internal/repos/tournaments"
	pgtournaments "github.com/clubpoker/clubledger/internal/repos/tournaments/postgres"
)

// Service is the read-only tournament catalog.
type Service struct {
	tourns tournaments.Tournaments
}

func New(db *sql.DB) *Service {
	return &Service{tourns: pgtournaments.New(db)}
}

// ListTournaments returns the club's tournaments by start time with a
// live entrant count on each.
func (s *Service) ListTournaments(ctx context.Context, clubID string) ([]tournaments.Tournament, error) {
	list, err := s.tourns.ListByClub(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}

	return list, nil
}
