package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"themeclash/internal/engine"
	"themeclash/internal/store"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// respondWithError maps domain errors onto HTTP status codes and a stable
// machine-readable error kind. Unknown errors become 500 and are logged.
func respondWithError(w http.ResponseWriter, log zerolog.Logger, err error) {
	var (
		status int
		kind   string
		msg    string
	)

	switch {
	case errors.Is(err, store.ErrNotFound):
		status, kind, msg = http.StatusNotFound, "not_found", "no such game"
	case errors.Is(err, engine.ErrInvalidPhase):
		status, kind, msg = http.StatusConflict, "invalid_phase", "that move is not allowed right now"
	case errors.Is(err, engine.ErrNoRevealsLeft):
		status, kind, msg = http.StatusConflict, "no_reveals_left", "no reveal credits left, solve a word to earn one"
	case errors.Is(err, engine.ErrRevealExhausted):
		status, kind, msg = http.StatusConflict, "reveal_exhausted", "only one theme letter can be revealed"
	case errors.Is(err, engine.ErrAllLettersRevealed):
		status, kind, msg = http.StatusConflict, "all_letters_revealed", "every letter is already showing"
	default:
		status, kind, msg = http.StatusInternalServerError, "internal", "something went wrong"
		log.Error().Err(err).Msg("request failed")
	}

	respondWithJSON(w, status, errorResponse{Error: kind, Message: msg})
}

// respondWithJSON writes v as the JSON response body.
func respondWithJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
