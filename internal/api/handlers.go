package api

import (
	"encoding/json"
	"net/http"

	"github.com/yugigrid/server/internal/db"
	"github.com/yugigrid/server/internal/validation"
)

// leaderboardSize is how many chain scores the board shows.
const leaderboardSize = 10

// postVote records a community vote for a card in a board cell.
func (s *Server) postVote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Seed   string `json:"seed"`
		Cell   string `json:"cell"`
		CardID int    `json:"cardId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.ValidateSeed(req.Seed); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid seed")
		return
	}
	if err := validation.ValidateCell(req.Cell); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid cell")
		return
	}
	if err := validation.ValidateCardID(req.CardID); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid card ID")
		return
	}

	if err := s.db.RecordVote(req.Seed, req.Cell, req.CardID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true})
}

// getPicks returns the community's top picks per cell for a board.
func (s *Server) getPicks(w http.ResponseWriter, r *http.Request) {
	seed := r.URL.Query().Get("seed")
	if err := validation.ValidateSeed(seed); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid seed")
		return
	}

	top, totals, err := s.db.TopPicks(seed, 3)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load picks")
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"seed":   seed,
			"top3":   top,
			"totals": totals,
		},
	})
}

// getChainTop returns the chain-mode leaderboard.
func (s *Server) getChainTop(w http.ResponseWriter, r *http.Request) {
	scores, err := s.db.TopScores(leaderboardSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load leaderboard")
		return
	}
	if scores == nil {
		scores = []db.ScoreEntry{}
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]interface{}{"scores": scores},
	})
}

// postChainScore stores a chain-mode result. Unusable names are
// replaced with a generated one rather than rejected.
func (s *Server) postChainScore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string `json:"name"`
		Points int    `json:"points"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.ValidatePoints(req.Points); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid points")
		return
	}

	name, err := validation.CleanPlayerName(req.Name)
	if err != nil {
		name = randomPlayerName()
	}

	entry, err := s.db.SubmitScore(name, req.Points)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save score")
		return
	}

	scores, err := s.db.TopScores(leaderboardSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load leaderboard")
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"entry":  entry,
			"scores": scores,
		},
	})
}

// clearChainTop wipes the leaderboard. Admin only.
func (s *Server) clearChainTop(w http.ResponseWriter, r *http.Request) {
	if err := s.db.ClearScores(); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to clear leaderboard")
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true})
}
