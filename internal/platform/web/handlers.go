package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/whackamole/internal/config"
	"github.com/vovakirdan/whackamole/internal/registry"
	"github.com/vovakirdan/whackamole/internal/storage"
)

// maxLimit caps the limit query parameter.
const maxLimit = 100

type gameResponse struct {
	ID    string             `json:"id"`
	Title string             `json:"title"`
	Stats *storage.GameStats `json:"stats,omitempty"`
}

type scoresResponse struct {
	Game       string               `json:"game"`
	Difficulty string               `json:"difficulty,omitempty"`
	Scores     []storage.ScoreEntry `json:"scores"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(); err != nil {
		s.logger.Error("health check", "err", err)
		respondError(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	respondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (s *Server) listGames(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetAllGamesStats()
	if err != nil {
		s.logger.Error("list games", "err", err)
		respondError(w, "cannot load stats", http.StatusInternalServerError)
		return
	}

	games := registry.List()
	resp := make([]gameResponse, 0, len(games))
	for _, g := range games {
		resp = append(resp, gameResponse{ID: g.ID, Title: g.Title, Stats: stats[g.ID]})
	}
	respondJSON(w, resp, http.StatusOK)
}

func (s *Server) topScores(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameParam(w, r)
	if !ok {
		return
	}
	difficulty, ok := difficultyParam(w, r)
	if !ok {
		return
	}
	limit, ok := limitParam(w, r)
	if !ok {
		return
	}

	scores, err := s.store.TopScores(gameID, difficulty, limit)
	if err != nil {
		s.logger.Error("top scores", "game", gameID, "err", err)
		respondError(w, "cannot load scores", http.StatusInternalServerError)
		return
	}
	if scores == nil {
		scores = []storage.ScoreEntry{}
	}

	respondJSON(w, scoresResponse{Game: gameID, Difficulty: difficulty, Scores: scores}, http.StatusOK)
}

func (s *Server) gameStats(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameParam(w, r)
	if !ok {
		return
	}
	difficulty, ok := difficultyParam(w, r)
	if !ok {
		return
	}

	stats, err := s.store.GetGameStats(gameID, difficulty)
	if err != nil {
		s.logger.Error("game stats", "game", gameID, "err", err)
		respondError(w, "cannot load stats", http.StatusInternalServerError)
		return
	}
	respondJSON(w, stats, http.StatusOK)
}

func gameParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "game")
	if !registry.Exists(id) {
		respondError(w, "game not found", http.StatusNotFound)
		return "", false
	}
	return id, true
}

func difficultyParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	p, err := config.ParseDifficultyPreset(r.URL.Query().Get("difficulty"))
	if err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return "", false
	}
	return string(p), true
}

func limitParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return storage.DefaultLimit, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > maxLimit {
		respondError(w, "limit must be between 1 and 100", http.StatusBadRequest)
		return 0, false
	}
	return n, true
}

func respondJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, map[string]string{"error": message}, status)
}
