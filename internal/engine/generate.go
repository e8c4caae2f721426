package engine

import (
	"context"
	"errors"
	"runtime"
)

// ErrExhausted is returned when the board search runs out of tries
// without finding a grid whose nine cells all clear the solution floor.
var ErrExhausted = errors.New("board generation exhausted its try budget")

// Board generation defaults. Callers override them per PickOptions.
const (
	DefaultMinSolutionsPerCell = 20
	DefaultMaxTries            = 12000
	DefaultYieldEvery          = 25
)

// PickOptions configures one board search.
type PickOptions struct {
	// Rand supplies every random draw; required.
	Rand RNG
	// PoolRows and PoolCols are the pools rows and columns draw from.
	// Callers wanting one shared pool pass the same slice to both.
	PoolRows []Rule
	PoolCols []Rule
	// Cards is the day's card universe (already filtered by day type).
	Cards []Card

	// MinSolutionsPerCell is the floor each of the nine cells must
	// clear. Zero means DefaultMinSolutionsPerCell.
	MinSolutionsPerCell int
	// MaxTries bounds the search. Zero means DefaultMaxTries.
	MaxTries int
	// YieldEvery is how many tries run between yield points in
	// PickNonCollidingContext. Zero means DefaultYieldEvery.
	YieldEvery int
	// Yield, when set, runs at each yield point instead of
	// runtime.Gosched.
	Yield func()
}

func (o *PickOptions) withDefaults() PickOptions {
	out := *o
	if out.MinSolutionsPerCell == 0 {
		out.MinSolutionsPerCell = DefaultMinSolutionsPerCell
	}
	if out.MaxTries == 0 {
		out.MaxTries = DefaultMaxTries
	}
	if out.YieldEvery == 0 {
		out.YieldEvery = DefaultYieldEvery
	}
	return out
}

// PickResult is a generated board: three row rules, three column rules,
// the solution count of every cell and how many tries the search spent.
type PickResult struct {
	Rows       []Rule
	Cols       []Rule
	CellCounts [3][3]int
	Tries      int
}

// PickRules draws n distinct rules from the pool by shuffling an index
// permutation with the caller's RNG.
func PickRules(pool []Rule, rand RNG, n int) []Rule {
	idx := make([]int, len(pool))
	for i := range idx {
		idx[i] = i
	}
	for i := len(idx) - 1; i > 0; i-- {
		j := int(rand() * float64(i+1))
		idx[i], idx[j] = idx[j], idx[i]
	}
	if n > len(idx) {
		n = len(idx)
	}
	out := make([]Rule, n)
	for i := 0; i < n; i++ {
		out[i] = pool[idx[i]]
	}
	return out
}

// PickNonColliding searches for a 3x3 board whose nine row/column pairs
// are all compatible and all admit at least the per-cell solution
// floor. The search is deterministic in opts.Rand.
func PickNonColliding(opts PickOptions) (*PickResult, error) {
	return pickNonColliding(context.Background(), opts, false)
}

// PickNonCollidingContext is PickNonColliding with cooperative
// cancellation: every opts.YieldEvery tries it checks the context and
// yields the processor.
func PickNonCollidingContext(ctx context.Context, opts PickOptions) (*PickResult, error) {
	return pickNonColliding(ctx, opts, true)
}

func pickNonColliding(ctx context.Context, raw PickOptions, yielding bool) (*PickResult, error) {
	opts := raw.withDefaults()

	for tries := 0; tries < opts.MaxTries; tries++ {
		if yielding && tries > 0 && tries%opts.YieldEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if opts.Yield != nil {
				opts.Yield()
			} else {
				runtime.Gosched()
			}
		}

		rows := PickRules(opts.PoolRows, opts.Rand, 3)
		cols := PickRules(opts.PoolCols, opts.Rand, 3)
		if len(rows) < 3 || len(cols) < 3 {
			return nil, ErrExhausted
		}

		ok := true
		for r := 0; r < 3 && ok; r++ {
			for c := 0; c < 3 && ok; c++ {
				if !RulesCompatible(rows[r], cols[c]) {
					ok = false
				} else if !HasAtLeastSolutions(opts.Cards, rows[r], cols[c], opts.MinSolutionsPerCell) {
					ok = false
				}
			}
		}
		if ok {
			return &PickResult{
				Rows:       rows,
				Cols:       cols,
				CellCounts: RecomputeAllCellCounts(opts.Cards, rows, cols),
				Tries:      tries,
			}, nil
		}
	}
	return nil, ErrExhausted
}
