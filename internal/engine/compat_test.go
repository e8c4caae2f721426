package engine

import "testing"

func TestCompatIdenticalRule(t *testing.T) {
	a := rule(KeyAttribute, OpEq, "DARK")
	if RulesCompatible(a, a) {
		t.Error("a rule is never compatible with itself")
	}

	// Same constraint under a different label is still the same rule.
	b := a
	b.Label = "DARK cards"
	if RulesCompatible(a, b) {
		t.Error("labels do not change rule identity")
	}
}

func TestCompatSymmetry(t *testing.T) {
	pairs := [][2]Rule{
		{rule(KeyLevel, OpEq, float64(4)), rule(KeyRank, OpEq, float64(4))},
		{rule(KeyAttribute, OpEq, "DARK"), rule(KeyAttribute, OpEq, "LIGHT")},
		{rule(KeyDesc, OpContains, "draw"), rule(KeyATK, OpHigherEq, float64(2000))},
		{rule(KeyTuner, OpEq, true), rule(KeyKind, OpEq, "spell")},
		{rule(KeyMonsterType, OpEq, "Dragon"), rule(KeyLevel, OpHigherEq, float64(7))},
		{rule(KeySetYear, OpEq, float64(2005)), rule(KeyFirstSetYear, OpEq, float64(2005))},
		{rule(KeyType, OpEq, "XYZ Monster"), rule(KeyLevel, OpEq, float64(4))},
	}
	for _, p := range pairs {
		if RulesCompatible(p[0], p[1]) != RulesCompatible(p[1], p[0]) {
			t.Errorf("asymmetric result for %s vs %s", p[0].Signature(), p[1].Signature())
		}
	}
}

func TestCompatDescRules(t *testing.T) {
	a := rule(KeyDesc, OpContains, "destroy")
	b := rule(KeyDesc, OpContains, "draw")
	if !RulesCompatible(a, b) {
		t.Error("desc rules with different phrases are compatible")
	}
	if RulesCompatible(a, rule(KeyLevel, OpContains, "destroy")) {
		t.Error("a desc rule clashes with any rule sharing its value")
	}
	// A desc rule pairs even with otherwise-excluded keys.
	if !RulesCompatible(a, rule(KeyRace, OpEq, "Field")) {
		t.Error("desc vs race should fall through to the value check")
	}
}

func TestCompatStructuralExclusions(t *testing.T) {
	bad := [][2]Rule{
		{rule(KeyType, OpEq, "Spell Card"), rule(KeyType, OpEq, "Trap Card")},
		{rule(KeyRace, OpEq, "Counter"), rule(KeyNameLength, OpHigherEq, float64(10))},
		{rule(KeyLevel, OpEq, float64(4)), rule(KeyRank, OpEq, float64(4))},
		{rule(KeyLevel, OpEq, float64(4)), rule(KeyLinkRating, OpEq, float64(2))},
		{rule(KeyLevel, OpEq, float64(4)), rule(KeyKind, OpEq, "spell")},
		{rule(KeyMonsterType, OpEq, "Dragon"), rule(KeyMonsterType, OpEq, "Zombie")},
		{rule(KeyAttribute, OpEq, "DARK"), rule(KeyAttribute, OpEq, "LIGHT")},
		{rule(KeyTuner, OpEq, true), rule(KeyRank, OpEq, float64(4))},
		{rule(KeyLinkRating, OpEq, float64(2)), rule(KeyTuner, OpEq, true)},
		{rule(KeyEffect, OpEq, true), rule(KeySpellType, OpEq, "Field")},
		{rule(KeyRitual, OpEq, true), rule(KeyRank, OpEq, float64(4))},
		{rule(KeyPendulum, OpEq, true), rule(KeyTrapType, OpEq, "Counter")},
		{rule(KeyFlip, OpEq, true), rule(KeyRank, OpEq, float64(4))},
		{rule(KeyType, OpEq, "XYZ Monster"), rule(KeyLevel, OpEq, float64(4))},
		{rule(KeyType, OpEq, "XYZ Monster"), rule(KeyLinkRating, OpEq, float64(2))},
		{rule(KeyType, OpEq, "Link Monster"), rule(KeyRank, OpEq, float64(4))},
		{rule(KeySetYear, OpEq, float64(2005)), rule(KeyFirstSetYear, OpHigher, float64(2000))},
	}
	for _, p := range bad {
		if RulesCompatible(p[0], p[1]) || RulesCompatible(p[1], p[0]) {
			t.Errorf("%s vs %s should be incompatible", p[0].Signature(), p[1].Signature())
		}
	}

	good := [][2]Rule{
		{rule(KeyAttribute, OpEq, "DARK"), rule(KeyLevel, OpEq, float64(4))},
		{rule(KeyMonsterType, OpEq, "Dragon"), rule(KeyAttribute, OpEq, "LIGHT")},
		{rule(KeyTuner, OpEq, true), rule(KeyLevel, OpLowerEq, float64(4))},
		{rule(KeySpellType, OpEq, "Field"), rule(KeyNameLength, OpHigherEq, float64(10))},
		{rule(KeyType, OpEq, "Link Monster"), rule(KeyATK, OpHigherEq, float64(2000))},
	}
	for _, p := range good {
		if !RulesCompatible(p[0], p[1]) || !RulesCompatible(p[1], p[0]) {
			t.Errorf("%s vs %s should be compatible", p[0].Signature(), p[1].Signature())
		}
	}
}

func TestCompatNumericRanges(t *testing.T) {
	// Disjoint same-key ranges can never share a card.
	lowLevel := Rule{Key: KeyLevel, Op: OpBetween, Value: float64(1), Value2: float64(4)}
	highLevel := rule(KeyLevel, OpHigherEq, float64(7))
	if RulesCompatible(lowLevel, highLevel) {
		t.Error("levels [1,4] and [7,inf) are disjoint")
	}

	// Touching bounds overlap: lower 5 means [min,4].
	upTo4 := rule(KeyLevel, OpLower, float64(5))
	if !RulesCompatible(lowLevel, upTo4) {
		t.Error("levels [1,4] and (-inf,4] overlap")
	}

	atkEq := rule(KeyATK, OpEq, float64(3000))
	atkFloor := rule(KeyATK, OpHigherEq, float64(2500))
	if !RulesCompatible(atkEq, atkFloor) {
		t.Error("ATK 3000 sits inside [2500,inf)")
	}
	atkCap := rule(KeyATK, OpLowerEq, float64(2999))
	if RulesCompatible(atkEq, atkCap) {
		t.Error("ATK 3000 is outside (-inf,2999]")
	}

	defLow := rule(KeyDEF, OpLower, float64(1000))
	defHigh := rule(KeyDEF, OpHigher, float64(999))
	if RulesCompatible(defLow, defHigh) {
		t.Error("DEF (-inf,999] and [1000,inf) are disjoint")
	}

	// Ops without an interval reading never force a rejection.
	named := rule(KeyATK, OpNeq, float64(0))
	if !RulesCompatible(named, atkEq) {
		t.Error("neq carries no interval and stays compatible")
	}
}
