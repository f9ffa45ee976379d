// Package handlers exposes the game over HTTP as a small JSON API.
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"themeclash/internal/models"
	"themeclash/internal/session"
)

// GameHandler handles the game API endpoints
type GameHandler struct {
	manager *session.Manager
	log     zerolog.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(manager *session.Manager, log zerolog.Logger) *GameHandler {
	return &GameHandler{manager: manager, log: log}
}

// Routes mounts the game endpoints on the router.
func (h *GameHandler) Routes(r chi.Router) {
	r.Post("/api/game/start", h.StartGame)
	r.Get("/api/game/{gameID}", h.GetGame)
	r.Post("/api/game/{gameID}/answer", h.SubmitAnswer)
	r.Post("/api/game/{gameID}/reveal", h.RevealLetter)
	r.Post("/api/game/{gameID}/skip", h.SkipWord)
	r.Post("/api/game/{gameID}/repeat", h.RepeatClue)
	r.Post("/api/game/{gameID}/giveup", h.GiveUp)
	r.Get("/api/stats/{player}", h.GetStats)
}

type startRequest struct {
	GameType string `json:"game_type"`
	Player   string `json:"player,omitempty"`
}

// StartGame begins or resumes a game for the calling player.
func (h *GameHandler) StartGame(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	// An empty body means a daily game for the identified player.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	kind := models.KindDaily
	switch strings.ToLower(req.GameType) {
	case "", "daily":
	case "bonus":
		kind = models.KindBonus
	default:
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "game_type must be daily or bonus"})
		return
	}

	playerID := req.Player
	if playerID == "" {
		playerID = PlayerFromContext(r.Context())
	}
	if playerID == "" {
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "player could not be determined"})
		return
	}

	snap, err := h.manager.StartGame(r.Context(), playerID, kind)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, snap)
}

// GetGame returns the current game state without changing it.
func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	snap, err := h.manager.GetState(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, snap)
}

type answerRequest struct {
	Answer string `json:"answer"`
}

// SubmitAnswer submits a guess for the current word or the theme.
func (h *GameHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Answer) == "" {
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "answer is required"})
		return
	}

	snap, err := h.manager.Answer(r.Context(), chi.URLParam(r, "gameID"), req.Answer)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, snap)
}

// RevealLetter uncovers one letter of the current word or theme.
func (h *GameHandler) RevealLetter(w http.ResponseWriter, r *http.Request) {
	snap, err := h.manager.Reveal(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, snap)
}

// SkipWord defers the current word to the back of the queue.
func (h *GameHandler) SkipWord(w http.ResponseWriter, r *http.Request) {
	snap, err := h.manager.Skip(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, snap)
}

// RepeatClue re-states the current clue.
func (h *GameHandler) RepeatClue(w http.ResponseWriter, r *http.Request) {
	snap, err := h.manager.Repeat(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, snap)
}

// GiveUp ends the game, revealing the answers.
func (h *GameHandler) GiveUp(w http.ResponseWriter, r *http.Request) {
	snap, err := h.manager.GiveUp(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, snap)
}

// GetStats returns a player's aggregate results.
func (h *GameHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.manager.Stats(r.Context(), chi.URLParam(r, "player"))
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}

// Health reports liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
