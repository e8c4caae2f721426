package engine

// Chain session scoring constants. A round is worth 100 points; every
// wrong guess halves the remaining award down to a floor of 1.
const (
	ChainRoundAward = 100
	ChainUsedLimit  = 5
)

// ChainVerdict classifies one chain-mode guess.
type ChainVerdict int

const (
	VerdictWrong ChainVerdict = iota
	VerdictCorrect
	VerdictBlocked
	VerdictUnknownCard
)

// ChainSession runs one chain game: it owns a picker, the current rule
// pair and the score/streak bookkeeping. Not safe for concurrent use.
type ChainSession struct {
	picker *ChainPicker
	byID   map[int]*Card

	pair   ChainPair
	score  int
	streak int
	award  int
	wrong  int
	used   []int
}

// NewChainSession starts a session over the corpus and rule pool and
// picks the opening pair.
func NewChainSession(cards []Card, pool []Rule, rand RNG, opts ChainOptions) (*ChainSession, error) {
	s := &ChainSession{
		picker: NewChainPicker(cards, pool, rand, opts),
		byID:   make(map[int]*Card, len(cards)),
		award:  ChainRoundAward,
	}
	for i := range cards {
		s.byID[cards[i].ID] = &cards[i]
	}
	pair, err := s.picker.PickPair()
	if err != nil {
		return nil, err
	}
	s.pair = pair
	return s, nil
}

// Current returns the rule pair the player is solving.
func (s *ChainSession) Current() ChainPair { return s.pair }

// Score returns the running score.
func (s *ChainSession) Score() int { return s.score }

// Streak returns the count of consecutive clean rounds.
func (s *ChainSession) Streak() int { return s.streak }

// Submit scores one guess. A correct card banks the round award and
// advances to the next pair; a wrong one halves the award; a card used
// in the last few rounds is rejected without penalty.
func (s *ChainSession) Submit(cardID int) (ChainVerdict, error) {
	card, ok := s.byID[cardID]
	if !ok {
		return VerdictUnknownCard, nil
	}
	for _, id := range s.used {
		if id == cardID {
			return VerdictBlocked, nil
		}
	}

	if !MatchesCell(card, s.pair.A, s.pair.B) {
		s.wrong++
		s.award = s.award / 2
		if s.award < 1 {
			s.award = 1
		}
		return VerdictWrong, nil
	}

	s.score += s.award
	if s.wrong == 0 {
		s.streak++
	} else {
		s.streak = 0
	}
	s.used = append(s.used, cardID)
	if len(s.used) > ChainUsedLimit {
		s.used = s.used[len(s.used)-ChainUsedLimit:]
	}

	pair, err := s.picker.PickPair()
	if err != nil {
		return VerdictCorrect, err
	}
	s.pair = pair
	s.award = ChainRoundAward
	s.wrong = 0
	return VerdictCorrect, nil
}
