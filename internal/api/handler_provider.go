package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clubpoker/clubledger/internal/repos/ledger"
	"github.com/clubpoker/clubledger/internal/repos/registrations"
	"github.com/clubpoker/clubledger/internal/repos/tournaments"
	"github.com/clubpoker/clubledger/internal/repos/wallets"
	"github.com/clubpoker/clubledger/internal/services/catalog"
	"github.com/clubpoker/clubledger/internal/services/membership"
	"github.com/clubpoker/clubledger/internal/services/registration"
)

// HandlerProvider wraps the services and exposes HTTP handlers.
type HandlerProvider struct {
	members *membership.Service
	catalog *catalog.Service
	engine  *registration.Engine
}

// NewHandler returns a new handler provider.
func NewHandler(members *membership.Service, cat *catalog.Service, engine *registration.Engine) *HandlerProvider {
	return &HandlerProvider{members: members, catalog: cat, engine: engine}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)

		http.Error(w, `{"error":"internal json encode failure"}`, http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps the engine's and repos' rejection kinds onto
// HTTP statuses. Anything unrecognized is an infrastructure failure
// and comes back as a 500, distinct from every business rejection.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, wallets.ErrWalletNotFound):
		writeError(w, http.StatusNotFound, "not a member of this club")
	case errors.Is(err, tournaments.ErrTournamentNotFound):
		writeError(w, http.StatusNotFound, "tournament not found")
	case errors.Is(err, registrations.ErrNotRegistered):
		writeError(w, http.StatusNotFound, "no active registration")
	case errors.Is(err, wallets.ErrAlreadyMember):
		writeError(w, http.StatusConflict, "already a member")
	case errors.Is(err, registrations.ErrAlreadyRegistered):
		writeError(w, http.StatusConflict, "already registered")
	case errors.Is(err, ledger.ErrDuplicateOperation):
		writeError(w, http.StatusConflict, "duplicate operation")
	case errors.Is(err, wallets.ErrInsufficientFunds):
		writeError(w, http.StatusUnprocessableEntity, "insufficient funds")
	case errors.Is(err, registration.ErrTournamentFull):
		writeError(w, http.StatusUnprocessableEntity, "tournament full")
	case errors.Is(err, registration.ErrNotAMember):
		writeError(w, http.StatusUnprocessableEntity, "not a member of this club")
	case errors.Is(err, registration.ErrMembershipPending):
		writeError(w, http.StatusUnprocessableEntity, "membership pending approval")
	case errors.Is(err, registration.ErrRegistrationClosed):
		writeError(w, http.StatusUnprocessableEntity, "registration closed")
	default:
		slog.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// parseUserIDFromPath reads `{userId}` from chi routes like:
//
//	GET  /club/{clubId}/member/{userId}/wallet
//	POST /user/{userId}/tournament/{tournamentId}/registration
func parseUserIDFromPath(r *http.Request) (uint64, error) {
	idStr := chi.URLParam(r, "userId")
	if idStr == "" {
		return 0, fmt.Errorf("missing userId")
	}

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid userId: %w", err)
	}
	if id == 0 {
		return 0, fmt.Errorf("invalid userId: must be positive")
	}

	return id, nil
}

func parseClubIDFromPath(r *http.Request) (string, error) {
	id := chi.URLParam(r, "clubId")
	if id == "" {
		return "", fmt.Errorf("missing clubId")
	}

	return id, nil
}

// parseOperationID reads the client's idempotency key from the
// Operation-Id header.
func parseOperationID(h http.Header) (string, error) {
	op := strings.TrimSpace(h.Get("Operation-Id"))
	if op == "" {
		return "", fmt.Errorf("missing Operation-Id header")
	}

	return op, nil
}

// parseAmountMinor converts a decimal string with up to 2 fractional
// digits into minor units.
func parseAmountMinor(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("amount required")
	}
	neg := false
	if s[0] == '+' {
		s = s[1:]
	}
	if s != "" && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	if s == "" {
		return 0, fmt.Errorf("invalid amount")
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("invalid amount")
	}
	intPart := parts[0]
	frac := "00"
	if len(parts) == 2 {
		if len(parts[1]) > 2 {
			return 0, fmt.Errorf("amount supports up to 2 decimals")
		}
		frac = parts[1] + strings.Repeat("0", 2-len(parts[1]))
	}
	ip, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount integer")
	}
	fp, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount fractional")
	}
	total := ip*100 + fp
	if neg {
		total = -total
	}
	if total <= 0 {
		return 0, fmt.Errorf("amount must be > 0")
	}
	return total, nil
}

func formatMinor(v int64) string {
	return fmt.Sprintf("%.2f", float64(v)/100.0)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB cap
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty body")
		}

		return fmt.Errorf("invalid JSON")
	}

	return nil
}

func walletResponse(w *wallets.Wallet) map[string]any {
	return map[string]any{
		"userId":           w.UserID,
		"clubId":           w.ClubID,
		"balanceMinor":     w.Balance,
		"balance":          formatMinor(w.Balance),
		"points":           w.Points,
		"membershipStatus": string(w.Status),
	}
}

// --- Membership handlers ---

// JoinHandler handles POST /club/{clubId}/member/{userId}
func (h *HandlerProvider) JoinHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	clubID, err := parseClubIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid clubId in path")
		return
	}

	wallet, err := h.members.Join(r.Context(), userID, clubID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, walletResponse(wallet))
}

// ActivateHandler handles POST /club/{clubId}/member/{userId}/activate
func (h *HandlerProvider) ActivateHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	clubID, err := parseClubIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid clubId in path")
		return
	}

	wallet, err := h.members.Activate(r.Context(), userID, clubID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, walletResponse(wallet))
}

// GetWalletHandler handles GET /club/{clubId}/member/{userId}/wallet
func (h *HandlerProvider) GetWalletHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	clubID, err := parseClubIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid clubId in path")
		return
	}

	wallet, err := h.members.GetWallet(r.Context(), userID, clubID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, walletResponse(wallet))
}

type depositRequest struct {
	Amount string `json:"amount"`
}

// DepositHandler handles POST /club/{clubId}/member/{userId}/deposit
func (h *HandlerProvider) DepositHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	clubID, err := parseClubIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid clubId in path")
		return
	}

	opID, err := parseOperationID(r.Header)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req depositRequest

	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := parseAmountMinor(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	wallet, err := h.members.Deposit(r.Context(), membership.DepositOp{
		OperationID: opID,
		UserID:      userID,
		ClubID:      clubID,
		Amount:      amount,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, walletResponse(wallet))
}

// --- Catalog handlers ---

// ListTournamentsHandler handles GET /club/{clubId}/tournaments
func (h *HandlerProvider) ListTournamentsHandler(w http.ResponseWriter, r *http.Request) {
	clubID, err := parseClubIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid clubId in path")
		return
	}

	list, err := h.catalog.ListTournaments(r.Context(), clubID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	now := time.Now()
	out := make([]map[string]any, 0, len(list))

	for _, t := range list {
		out = append(out, map[string]any{
			"id":            t.ID,
			"clubId":        t.ClubID,
			"name":          t.Name,
			"buyInMinor":    t.BuyIn,
			"buyIn":         formatMinor(t.BuyIn),
			"feeMinor":      t.Fee,
			"fee":           formatMinor(t.Fee),
			"maxCap":        t.MaxCap,
			"startTime":     t.StartTime,
			"reservedCount": t.ReservedCount,
			"lateRegEnded":  t.EntryClosed(now),
		})
	}

	writeJSON(w, http.StatusOK, out)
}

// --- Registration handlers ---

type registerRequest struct {
	Mode string `json:"mode"`
}

func parseMode(s string) (registration.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reserve":
		return registration.ModeReserve, nil
	case "buy-in":
		return registration.ModeBuyIn, nil
	default:
		return "", fmt.Errorf("invalid mode")
	}
}

// RegisterHandler handles POST /user/{userId}/tournament/{tournamentId}/registration
func (h *HandlerProvider) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	tournamentID := chi.URLParam(r, "tournamentId")
	if tournamentID == "" {
		writeError(w, http.StatusBadRequest, "missing tournamentId in path")
		return
	}

	opID, err := parseOperationID(r.Header)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req registerRequest

	err = decodeBody(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	mode, err := parseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid mode")
		return
	}

	reg, err := h.engine.Register(r.Context(), registration.RegisterOp{
		OperationID:  opID,
		UserID:       userID,
		TournamentID: tournamentID,
		Mode:         mode,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"registrationId": reg.ID,
		"tournamentId":   reg.TournamentID,
		"status":         string(reg.Status),
	})
}

// CancelHandler handles DELETE /user/{userId}/tournament/{tournamentId}/registration
func (h *HandlerProvider) CancelHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	tournamentID := chi.URLParam(r, "tournamentId")
	if tournamentID == "" {
		writeError(w, http.StatusBadRequest, "missing tournamentId in path")
		return
	}

	opID, err := parseOperationID(r.Header)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.engine.Cancel(r.Context(), registration.CancelOp{
		OperationID:  opID,
		UserID:       userID,
		TournamentID: tournamentID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// EntriesHandler handles GET /user/{userId}/entries
func (h *HandlerProvider) EntriesHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	entries, err := h.engine.Entries(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]map[string]any, 0, len(entries))

	for _, e := range entries {
		out = append(out, map[string]any{
			"registrationId": e.RegistrationID,
			"tournamentId":   e.TournamentID,
			"tournamentName": e.TournamentName,
			"clubId":         e.ClubID,
			"status":         string(e.Status),
			"buyInMinor":     e.BuyIn,
			"feeMinor":       e.Fee,
			"startTime":      e.StartTime,
			"registeredAt":   e.RegisteredAt,
		})
	}

	writeJSON(w, http.StatusOK, out)
}
