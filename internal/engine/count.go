package engine

// CountSolutionsForCell counts the cards that satisfy both rules of a
// cell.
func CountSolutionsForCell(cards []Card, row, col Rule) int {
	n := 0
	for i := range cards {
		if MatchesCell(&cards[i], row, col) {
			n++
		}
	}
	return n
}

// HasAtLeastSolutions reports whether a cell admits at least min cards,
// stopping as soon as the bar is met.
func HasAtLeastSolutions(cards []Card, row, col Rule, min int) bool {
	if min <= 0 {
		return true
	}
	n := 0
	for i := range cards {
		if MatchesCell(&cards[i], row, col) {
			n++
			if n >= min {
				return true
			}
		}
	}
	return false
}

// RecomputeAllCellCounts fills the 3x3 grid of per-cell solution counts
// for the given row and column rules.
func RecomputeAllCellCounts(cards []Card, rows, cols []Rule) [3][3]int {
	var counts [3][3]int
	for r := 0; r < 3 && r < len(rows); r++ {
		for c := 0; c < 3 && c < len(cols); c++ {
			counts[r][c] = CountSolutionsForCell(cards, rows[r], cols[c])
		}
	}
	return counts
}
