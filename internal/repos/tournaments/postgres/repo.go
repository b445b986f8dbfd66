package tournaments

import (
	"database/sql"

	"github.com/clubpoker/clubledger/internal/repos/tournaments"
)

var _ tournaments.Tournaments = (*tournamentsRepo)(nil)

type tournamentsRepo struct{ db *sql.DB }

func New(db *sql.DB) *tournamentsRepo {
	return &tournamentsRepo{db: db}
}
