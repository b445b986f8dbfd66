package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/clubpoker/clubledger/internal/services/catalog"
	"github.com/clubpoker/clubledger/internal/services/membership"
	"github.com/clubpoker/clubledger/internal/services/registration"
)

// NewServer creates and returns a configured *http.Server for the club API.
func NewServer(port uint16, members *membership.Service, cat *catalog.Service, engine *registration.Engine) *http.Server {
	mux := NewRouter(members, cat, engine)

	addr := fmt.Sprintf(":%d", port)

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
