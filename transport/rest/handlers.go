package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/pkg"
)

var errMalformedBody = errors.New("malformed request body")

type gameManager interface {
	StartSession(ctx context.Context, id string) (entity.Session, error)
	GetSession(ctx context.Context, id string) (entity.Session, error)
	MakeTurn(ctx context.Context, id string, cell int) (entity.Session, error)
	NewRound(ctx context.Context, id string) (entity.Session, error)
	SetMode(ctx context.Context, id string, mode entity.Mode) (entity.Session, error)
	SetTheme(ctx context.Context, id string, theme entity.Theme) (entity.Session, error)
	ResetScore(ctx context.Context, id string) (entity.Session, error)
	EndSession(id string) error
}

type handlers struct {
	logger *slog.Logger
	games  gameManager
}

type turnRequest struct {
	Cell *int `json:"cell"`
}

type modeRequest struct {
	Mode entity.Mode `json:"mode"`
}

type themeRequest struct {
	Theme entity.Theme `json:"theme"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *handlers) startSession(w http.ResponseWriter, r *http.Request) {
	id, _ := pkg.SessionIDFromCookie(r)

	session, err := that.games.StartSession(r.Context(), id)
	if err != nil {
		that.writeError(w, "startSession", err)
		return
	}

	http.SetCookie(w, pkg.NewSessionCookie(session.ID))

	that.writeJSON(w, http.StatusOK, session)
}

func (that *handlers) getSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.games.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "getSession", err)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func (that *handlers) endSession(w http.ResponseWriter, r *http.Request) {
	if err := that.games.EndSession(chi.URLParam(r, "id")); err != nil {
		that.writeError(w, "endSession", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) newRound(w http.ResponseWriter, r *http.Request) {
	session, err := that.games.NewRound(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "newRound", err)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func (that *handlers) makeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := decode(r, &req); err != nil {
		that.writeError(w, "makeTurn", err)
		return
	}

	if req.Cell == nil {
		that.writeError(w, "makeTurn", fmt.Errorf("%w: cell is required", apperror.ErrInvalidCell))
		return
	}

	session, err := that.games.MakeTurn(r.Context(), chi.URLParam(r, "id"), *req.Cell)
	if err != nil {
		that.writeError(w, "makeTurn", err)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func (that *handlers) setMode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if err := decode(r, &req); err != nil {
		that.writeError(w, "setMode", err)
		return
	}

	session, err := that.games.SetMode(r.Context(), chi.URLParam(r, "id"), req.Mode)
	if err != nil {
		that.writeError(w, "setMode", err)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func (that *handlers) setTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := decode(r, &req); err != nil {
		that.writeError(w, "setTheme", err)
		return
	}

	session, err := that.games.SetTheme(r.Context(), chi.URLParam(r, "id"), req.Theme)
	if err != nil {
		that.writeError(w, "setTheme", err)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func (that *handlers) resetScore(w http.ResponseWriter, r *http.Request) {
	session, err := that.games.ResetScore(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "resetScore", err)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", errMalformedBody, err)
	}

	return nil
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *handlers) writeError(w http.ResponseWriter, method string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		that.writeJSON(w, status, errorResponse{Error: http.StatusText(status)})
		return
	}

	that.logger.Debug("request rejected", "method", method, "error", err)
	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrCellOccupied):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrInvalidMode),
		errors.Is(err, apperror.ErrInvalidTheme),
		errors.Is(err, errMalformedBody):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
