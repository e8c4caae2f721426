package engine

import "sync"

// MatchIndex memoizes, per rule, the sorted list of card indices the
// rule matches, and answers pair-intersection counts without rescanning
// the corpus. Cache entries are keyed by the rule's canonical
// signature, so two structurally equal rules share one entry. Safe for
// concurrent use.
type MatchIndex struct {
	mu    sync.Mutex
	cards []Card
	lists map[string][]int32
}

// NewMatchIndex builds an empty index over the given corpus. Lists are
// computed lazily on first lookup.
func NewMatchIndex(cards []Card) *MatchIndex {
	return &MatchIndex{cards: cards, lists: map[string][]int32{}}
}

// Reset swaps in a new corpus and drops every cached list.
func (ix *MatchIndex) Reset(cards []Card) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.cards = cards
	ix.lists = map[string][]int32{}
}

// MatchList returns the ascending card indices matching the rule.
// Callers must not mutate the returned slice.
func (ix *MatchIndex) MatchList(r Rule) []int32 {
	sig := r.Signature()

	ix.mu.Lock()
	defer ix.mu.Unlock()
	if cached, ok := ix.lists[sig]; ok {
		return cached
	}
	var idxs []int32
	for i := range ix.cards {
		if Matches(&ix.cards[i], r) {
			idxs = append(idxs, int32(i))
		}
	}
	ix.lists[sig] = idxs
	return idxs
}

// PairCountUpTo counts cards matching both rules, stopping at limit.
func (ix *MatchIndex) PairCountUpTo(a, b Rule, limit int) int {
	return intersectCountUpTo(ix.MatchList(a), ix.MatchList(b), limit)
}

// intersectCountUpTo merges two ascending index lists and counts common
// members, bailing out once cnt reaches limit. A negative limit means
// unbounded.
func intersectCountUpTo(a, b []int32, limit int) int {
	if limit == 0 {
		return 0
	}
	i, j, cnt := 0, 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			cnt++
			if limit >= 0 && cnt >= limit {
				return cnt
			}
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return cnt
}
