package registrations

import (
	"database/sql"

	"github.com/clubpoker/clubledger/internal/repos/registrations"
)

var _ registrations.Registrations = (*registrationsRepo)(nil)

type registrationsRepo struct{ db *sql.DB }

func New(db *sql.DB) *registrationsRepo {
	return &registrationsRepo{db: db}
}
