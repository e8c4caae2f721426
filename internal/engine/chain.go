package engine

import (
	"errors"
	"strings"
)

// Chain mode defaults. The solution band is wide on purpose: pairs in
// it are guessable inside the round timer without being trivial.
const (
	DefaultChainMinSolutions = 80
	DefaultChainMaxSolutions = 2000
	DefaultChainMaxTries     = 2500
	DefaultChainRecentLimit  = 10
)

// ErrEmptyPool is returned when the cleaned chain pool has fewer than
// two rules.
var ErrEmptyPool = errors.New("chain rule pool has fewer than two usable rules")

// ChainOptions tunes the chain-mode pair picker.
type ChainOptions struct {
	// MinSolutions and MaxSolutions bound the target solution band.
	// Zero means the package defaults.
	MinSolutions int
	MaxSolutions int
	// MaxTries bounds the random phase before the exhaustive sweep.
	MaxTries int
	// RecentLimit is how many past rule signatures stay excluded.
	RecentLimit int
	// BlacklistKeys names keys dropped from the pool outright. Nil
	// means the default blacklist (banlist membership and name length,
	// both unguessable under time pressure).
	BlacklistKeys []RuleKey
}

func (o *ChainOptions) withDefaults() ChainOptions {
	out := *o
	if out.MinSolutions == 0 {
		out.MinSolutions = DefaultChainMinSolutions
	}
	if out.MaxSolutions == 0 {
		out.MaxSolutions = DefaultChainMaxSolutions
	}
	if out.MaxTries == 0 {
		out.MaxTries = DefaultChainMaxTries
	}
	if out.RecentLimit == 0 {
		out.RecentLimit = DefaultChainRecentLimit
	}
	if out.BlacklistKeys == nil {
		out.BlacklistKeys = []RuleKey{KeyBanlistEver, KeyNameLength}
	}
	return out
}

// ChainPair is one chain round: two rules and how many cards satisfy
// both. Count is capped at MaxSolutions+1 unless the picker had to fall
// back past the band.
type ChainPair struct {
	A, B  Rule
	Count int
}

// ChainPicker picks successive rule pairs for a chain session. It keeps
// a bounded memory of recently served rules so consecutive rounds feel
// fresh. Not safe for concurrent use; a session owns its picker.
type ChainPicker struct {
	rand  RNG
	index *MatchIndex
	pool  []Rule
	opts  ChainOptions

	recent  []string
	lastA   string
	lastB   string
	hasLast bool
}

// NewChainPicker builds a picker over the corpus and rule pool. The
// pool is cleaned up front: unknown and blacklisted keys go, then
// structural duplicates.
func NewChainPicker(cards []Card, pool []Rule, rand RNG, opts ChainOptions) *ChainPicker {
	o := opts.withDefaults()
	black := make(map[RuleKey]bool, len(o.BlacklistKeys))
	for _, k := range o.BlacklistKeys {
		black[k] = true
	}
	var clean []Rule
	for _, r := range pool {
		if !KnownKeys[r.Key] || black[r.Key] {
			continue
		}
		if unguessableWordCount(r) {
			continue
		}
		clean = append(clean, r)
	}
	return &ChainPicker{
		rand:  rand,
		index: NewMatchIndex(cards),
		pool:  DedupeRules(clean),
		opts:  o,
	}
}

// unguessableWordCount reports whether the rule demands a 4- or 5-word
// name. Nobody recalls names that long under the round timer.
func unguessableWordCount(r Rule) bool {
	if r.Key == KeyName && r.Op == OpWordCount {
		if n, ok := toNum(r.Value); ok && (n == 4 || n == 5) {
			return true
		}
	}
	switch strings.ToLower(strings.TrimSpace(r.Label)) {
	case "4 word card name", "5 word card name":
		return true
	}
	return false
}

// PoolSize reports how many rules survived cleaning.
func (p *ChainPicker) PoolSize() int { return len(p.pool) }

// PickPair returns the next rule pair. It first samples randomly for a
// pair inside the solution band, then sweeps the whole pool; if nothing
// lands in the band it settles for the qualifying pair closest above
// it, and as a last resort serves the first two rules of the pool.
func (p *ChainPicker) PickPair() (ChainPair, error) {
	if len(p.pool) < 2 {
		return ChainPair{}, ErrEmptyPool
	}
	min, max := p.opts.MinSolutions, p.opts.MaxSolutions

	for i := 0; i < p.opts.MaxTries; i++ {
		a := p.pool[int(p.rand()*float64(len(p.pool)))]
		b := p.pool[int(p.rand()*float64(len(p.pool)))]
		if !p.okPair(a, b) {
			continue
		}
		cnt := p.index.PairCountUpTo(a, b, max+1)
		if cnt >= min && cnt <= max {
			return p.accept(ChainPair{A: a, B: b, Count: cnt}), nil
		}
	}

	var best *ChainPair
	for i := range p.pool {
		a := p.pool[i]
		if len(p.index.MatchList(a)) < min {
			continue
		}
		for j := range p.pool {
			if i == j {
				continue
			}
			b := p.pool[j]
			if !p.okPair(a, b) {
				continue
			}
			if len(p.index.MatchList(b)) < min {
				continue
			}
			cnt := p.index.PairCountUpTo(a, b, max+1)
			if cnt < min {
				continue
			}
			if cnt <= max {
				return p.accept(ChainPair{A: a, B: b, Count: cnt}), nil
			}
			if best == nil || cnt < best.Count {
				best = &ChainPair{A: a, B: b, Count: cnt}
			}
		}
	}
	if best != nil {
		return p.accept(*best), nil
	}

	a, b := p.pool[0], p.pool[1]
	cnt := p.index.PairCountUpTo(a, b, -1)
	return p.accept(ChainPair{A: a, B: b, Count: cnt}), nil
}

// okPair enforces pair quality: distinct keys and families, compatible,
// enough solutions, and neither rule served recently.
func (p *ChainPicker) okPair(a, b Rule) bool {
	if a.Key == b.Key {
		return false
	}
	if RuleFamily(a) == RuleFamily(b) {
		return false
	}
	if !RulesCompatible(a, b) {
		return false
	}
	if p.index.PairCountUpTo(a, b, p.opts.MinSolutions) < p.opts.MinSolutions {
		return false
	}

	sa, sb := a.Signature(), b.Signature()
	for _, s := range p.recent {
		if s == sa || s == sb {
			return false
		}
	}
	if p.hasLast {
		if sa == p.lastA || sb == p.lastA || sa == p.lastB || sb == p.lastB {
			return false
		}
	}
	return true
}

// accept records the pair into the recent-rule memory before handing it
// to the caller.
func (p *ChainPicker) accept(pair ChainPair) ChainPair {
	sa, sb := pair.A.Signature(), pair.B.Signature()
	p.recent = append(p.recent, sa, sb)
	if over := len(p.recent) - p.opts.RecentLimit; over > 0 {
		p.recent = p.recent[over:]
	}
	p.lastA, p.lastB = sa, sb
	p.hasLast = true
	return pair
}
