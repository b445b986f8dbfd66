package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clubpoker/clubledger/internal/services/catalog"
	"github.com/clubpoker/clubledger/internal/services/membership"
	"github.com/clubpoker/clubledger/internal/services/registration"
)

// NewRouter constructs the chi router with all API endpoints registered.
func NewRouter(members *membership.Service, cat *catalog.Service, engine *registration.Engine) http.Handler {
	h := NewHandler(members, cat, engine)
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/club/{clubId}/member/{userId}", h.JoinHandler)
	r.Post("/club/{clubId}/member/{userId}/activate", h.ActivateHandler)
	r.Get("/club/{clubId}/member/{userId}/wallet", h.GetWalletHandler)
	r.Post("/club/{clubId}/member/{userId}/deposit", h.DepositHandler)
	r.Get("/club/{clubId}/tournaments", h.ListTournamentsHandler)

	r.Post("/user/{userId}/tournament/{tournamentId}/registration", h.RegisterHandler)
	r.Delete("/user/{userId}/tournament/{tournamentId}/registration", h.CancelHandler)
	r.Get("/user/{userId}/entries", h.EntriesHandler)

	return r
}
