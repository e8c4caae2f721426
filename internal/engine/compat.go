package engine

import "math"

// RulesCompatible reports whether a row rule and a column rule may share
// a cell. It rejects identical rules, structurally contradictory pairs
// (fields that cannot coexist on one card) and same-key numeric ranges
// that do not overlap. The check is symmetric.
func RulesCompatible(a, b Rule) bool {
	if a.Equal(b) {
		return false
	}

	// Two text rules only clash when they hunt the same phrase.
	if a.Key == KeyDesc || b.Key == KeyDesc {
		return encodeOperand(a.Value) != encodeOperand(b.Value)
	}

	if isTypeEqRule(a, "Spell Card") && isTypeEqRule(b, "Trap Card") {
		return false
	}
	if isTypeEqRule(a, "Trap Card") && isTypeEqRule(b, "Spell Card") {
		return false
	}

	// A race rule pins the cell to spells/traps of one subtype; no
	// second constraint leaves enough of the corpus alive.
	if a.Key == KeyRace || b.Key == KeyRace {
		return false
	}

	aST := IsSpellTrapRule(a)
	bST := IsSpellTrapRule(b)

	if excludedPair(a, b, bST) || excludedPair(b, a, aST) {
		return false
	}

	for _, key := range []RuleKey{KeyLevel, KeyATK, KeyDEF} {
		if a.Key != key || b.Key != key {
			continue
		}
		ia, aOK := ruleInterval(a)
		ib, bOK := ruleInterval(b)
		if aOK && bOK && !intervalsOverlap(ia, ib) {
			return false
		}
	}

	return true
}

// excludedPair holds the one-directional exclusion table; callers apply
// it in both directions.
func excludedPair(a, b Rule, bIsSpellTrap bool) bool {
	switch a.Key {
	case KeyLevel:
		if b.Key == KeyRank || b.Key == KeyLinkRating || bIsSpellTrap {
			return true
		}
	case KeyMonsterType:
		if bIsSpellTrap || b.Key == KeyMonsterType {
			return true
		}
	case KeyAttribute:
		if bIsSpellTrap || b.Key == KeyAttribute {
			return true
		}
	case KeyTuner:
		if b.Key == KeyRank || b.Key == KeyLinkRating || b.Key == KeyTuner || bIsSpellTrap {
			return true
		}
	case KeyLinkRating:
		if b.Key == KeyRank || b.Key == KeyLevel || b.Key == KeyTuner || bIsSpellTrap {
			return true
		}
	case KeyEffect:
		if bIsSpellTrap {
			return true
		}
	case KeyRitual:
		if b.Key == KeyRank || b.Key == KeyTuner || bIsSpellTrap {
			return true
		}
	case KeyPendulum:
		if bIsSpellTrap {
			return true
		}
	case KeyFlip:
		if b.Key == KeyRank {
			return true
		}
	case KeySetYear:
		if b.Key == KeyFirstSetYear {
			return true
		}
	case KeyFirstSetYear:
		if b.Key == KeySetYear {
			return true
		}
	}
	if isTypeEqRule(a, "XYZ Monster") && (b.Key == KeyLevel || b.Key == KeyLinkRating) {
		return true
	}
	if isTypeEqRule(a, "Link Monster") && (b.Key == KeyLevel || b.Key == KeyRank) {
		return true
	}
	return false
}

// ruleInterval maps a numeric rule to the closed interval of values it
// accepts. Strict bounds shift by one because the compared fields are
// integers. Ops without an interval reading report false.
func ruleInterval(r Rule) ([2]float64, bool) {
	v1, ok1 := r.Value.(float64)
	if !ok1 {
		if n, ok := r.Value.(int); ok {
			v1, ok1 = float64(n), true
		}
	}
	v2, ok2 := r.Value2.(float64)
	if !ok2 {
		if n, ok := r.Value2.(int); ok {
			v2, ok2 = float64(n), true
		}
	}

	inf := math.Inf(1)
	switch r.Op {
	case OpEq:
		if ok1 {
			return [2]float64{v1, v1}, true
		}
	case OpBetween:
		if ok1 && ok2 {
			return [2]float64{math.Min(v1, v2), math.Max(v1, v2)}, true
		}
	case OpHigher:
		if ok1 {
			return [2]float64{v1 + 1, inf}, true
		}
	case OpHigherEq:
		if ok1 {
			return [2]float64{v1, inf}, true
		}
	case OpLower:
		if ok1 {
			return [2]float64{-inf, v1 - 1}, true
		}
	case OpLowerEq:
		if ok1 {
			return [2]float64{-inf, v1}, true
		}
	}
	return [2]float64{}, false
}

func intervalsOverlap(a, b [2]float64) bool {
	return a[0] <= b[1] && b[0] <= a[1]
}
