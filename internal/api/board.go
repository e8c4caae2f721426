package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/yugigrid/server/internal/engine"
	"github.com/yugigrid/server/internal/validation"
)

// boardView is the generated daily puzzle as served to clients. Cell
// counts go out so the UI can show how many answers each cell has; the
// answers themselves never leave the server.
type boardView struct {
	Seed       string         `json:"seed"`
	DayType    engine.DayType `json:"dayType"`
	Rows       []engine.Rule  `json:"rows"`
	Cols       []engine.Rule  `json:"cols"`
	CellCounts [3][3]int      `json:"cellCounts"`
	Tries      int            `json:"tries"`
}

// getBoard serves the board for a seed, defaulting to today's.
func (s *Server) getBoard(w http.ResponseWriter, r *http.Request) {
	seedStr := r.URL.Query().Get("seed")
	if seedStr == "" {
		seedStr = engine.DateSeed(time.Now().UTC()).S
	}
	if err := validation.ValidateSeed(seedStr); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid seed")
		return
	}
	seed, err := engine.ParseSeed(seedStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid seed")
		return
	}

	board, err := s.boardForSeed(r.Context(), seed)
	if errors.Is(err, context.Canceled) {
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate board")
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    board,
	})
}

// boardForSeed returns the cached board for a seed, generating it on
// first request. Generation is deterministic, so concurrent misses for
// the same seed produce identical boards.
func (s *Server) boardForSeed(ctx context.Context, seed engine.Seed) (*boardView, error) {
	s.boardsMu.RLock()
	cached, ok := s.boards[seed.S]
	s.boardsMu.RUnlock()
	if ok {
		return cached, nil
	}

	// The first draw of the seed's stream decides the day type; the
	// rest drives the board search.
	rand := engine.Mulberry32(seed.N)
	day := engine.DayTypeFromRand(rand)

	pool := s.pools.Monster
	if day == engine.DaySpellTrap {
		pool = s.pools.SpellTrap
	}

	res, err := engine.PickNonCollidingContext(ctx, engine.PickOptions{
		Rand:                rand,
		PoolRows:            pool,
		PoolCols:            pool,
		Cards:               engine.FilterByDay(s.cfg.Cards, day),
		MinSolutionsPerCell: s.cfg.MinSolutionsPerCell,
		MaxTries:            s.cfg.MaxTries,
	})
	if err != nil {
		return nil, err
	}

	board := &boardView{
		Seed:       seed.S,
		DayType:    day,
		Rows:       res.Rows,
		Cols:       res.Cols,
		CellCounts: res.CellCounts,
		Tries:      res.Tries,
	}

	s.boardsMu.Lock()
	s.boards[seed.S] = board
	s.boardsMu.Unlock()
	return board, nil
}
