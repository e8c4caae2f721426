package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// broadCorpus builds monsters every pool rule below matches, so any
// drawn board is valid and the search behavior stays deterministic.
func broadCorpus(n int) []Card {
	cards := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		cards = append(cards, monster(i+1, fmt.Sprintf("Arcane Beast %d", i), "DARK", "Fiend",
			withLevel(4), withATK(1000+i)))
	}
	return cards
}

// broadPool holds mutually compatible rules: contains rules differ in
// value, ATK ranges all overlap.
func broadPool() []Rule {
	return []Rule{
		rule(KeyName, OpContains, "arcane"),
		rule(KeyName, OpContains, "beast"),
		rule(KeyName, OpContains, "a"),
		rule(KeyATK, OpHigherEq, float64(0)),
		rule(KeyATK, OpLowerEq, float64(99999)),
		rule(KeyATK, OpHigherEq, float64(500)),
	}
}

func TestPickNonCollidingFindsBoard(t *testing.T) {
	cards := broadCorpus(30)
	res, err := PickNonColliding(PickOptions{
		Rand:                Mulberry32(20240307),
		PoolRows:            broadPool(),
		PoolCols:            broadPool(),
		Cards:               cards,
		MinSolutionsPerCell: 20,
	})
	if err != nil {
		t.Fatalf("PickNonColliding: %v", err)
	}
	if len(res.Rows) != 3 || len(res.Cols) != 3 {
		t.Fatalf("board shape %dx%d", len(res.Rows), len(res.Cols))
	}

	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if !RulesCompatible(res.Rows[r], res.Cols[c]) {
				t.Errorf("cell %d,%d pairs incompatible rules", r, c)
			}
			if res.CellCounts[r][c] < 20 {
				t.Errorf("cell %d,%d count %d below floor", r, c, res.CellCounts[r][c])
			}
			if got := CountSolutionsForCell(cards, res.Rows[r], res.Cols[c]); got != res.CellCounts[r][c] {
				t.Errorf("cell %d,%d reported %d, recount %d", r, c, res.CellCounts[r][c], got)
			}
		}
	}
}

func TestPickNonCollidingDeterministic(t *testing.T) {
	opts := func() PickOptions {
		return PickOptions{
			Rand:                Mulberry32(42),
			PoolRows:            broadPool(),
			PoolCols:            broadPool(),
			Cards:               broadCorpus(30),
			MinSolutionsPerCell: 20,
		}
	}
	a, err := PickNonColliding(opts())
	if err != nil {
		t.Fatal(err)
	}
	b, err := PickNonColliding(opts())
	if err != nil {
		t.Fatal(err)
	}
	if a.Tries != b.Tries {
		t.Errorf("tries diverged: %d vs %d", a.Tries, b.Tries)
	}
	for i := 0; i < 3; i++ {
		if !a.Rows[i].Equal(b.Rows[i]) || !a.Cols[i].Equal(b.Cols[i]) {
			t.Fatalf("boards diverged at index %d", i)
		}
	}
}

func TestPickNonCollidingExhausted(t *testing.T) {
	_, err := PickNonColliding(PickOptions{
		Rand:                Mulberry32(7),
		PoolRows:            broadPool(),
		PoolCols:            broadPool(),
		Cards:               broadCorpus(5),
		MinSolutionsPerCell: 50, // more than the corpus holds
		MaxTries:            40,
	})
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("err = %v, want ErrExhausted", err)
	}
}

func TestPickNonCollidingContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	yields := 0
	_, err := PickNonCollidingContext(ctx, PickOptions{
		Rand:                Mulberry32(7),
		PoolRows:            broadPool(),
		PoolCols:            broadPool(),
		Cards:               broadCorpus(5),
		MinSolutionsPerCell: 50,
		YieldEvery:          1,
		Yield:               func() { yields++ },
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if yields != 0 {
		t.Error("a cancelled context should stop before yielding")
	}
}

// Rows and columns draw from separate pools, so a board can restrict
// attributes to rows and levels to columns.
func TestPickNonCollidingSplitPools(t *testing.T) {
	var cards []Card
	id := 1
	for _, attr := range []string{"DARK", "LIGHT", "FIRE"} {
		for _, lvl := range []int{4, 6, 8} {
			for i := 0; i < 2; i++ {
				cards = append(cards, monster(id, fmt.Sprintf("Grid Beast %d", id), attr, "Fiend",
					withLevel(lvl)))
				id++
			}
		}
	}

	rowPool := []Rule{
		rule(KeyAttribute, OpEq, "DARK"),
		rule(KeyAttribute, OpEq, "LIGHT"),
		rule(KeyAttribute, OpEq, "FIRE"),
	}
	colPool := []Rule{
		rule(KeyLevel, OpEq, float64(4)),
		rule(KeyLevel, OpEq, float64(6)),
		rule(KeyLevel, OpEq, float64(8)),
	}

	res, err := PickNonColliding(PickOptions{
		Rand:                Mulberry32(11),
		PoolRows:            rowPool,
		PoolCols:            colPool,
		Cards:               cards,
		MinSolutionsPerCell: 2,
	})
	if err != nil {
		t.Fatalf("PickNonColliding: %v", err)
	}
	for i := 0; i < 3; i++ {
		if res.Rows[i].Key != KeyAttribute {
			t.Errorf("row %d drawn from the wrong pool: key %s", i, res.Rows[i].Key)
		}
		if res.Cols[i].Key != KeyLevel {
			t.Errorf("col %d drawn from the wrong pool: key %s", i, res.Cols[i].Key)
		}
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if res.CellCounts[r][c] != 2 {
				t.Errorf("cell %d,%d count %d, want 2", r, c, res.CellCounts[r][c])
			}
		}
	}
}

func TestPickRules(t *testing.T) {
	pool := broadPool()
	picked := PickRules(pool, Mulberry32(99), 3)
	if len(picked) != 3 {
		t.Fatalf("picked %d rules", len(picked))
	}
	seen := map[string]bool{}
	for _, r := range picked {
		if seen[r.Signature()] {
			t.Error("picked the same pool entry twice")
		}
		seen[r.Signature()] = true
	}

	if got := PickRules(pool[:2], Mulberry32(99), 3); len(got) != 2 {
		t.Errorf("n beyond pool size should clamp, got %d", len(got))
	}
}
