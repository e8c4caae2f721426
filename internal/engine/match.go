package engine

import (
	"regexp"
	"strconv"
	"strings"
)

// spellTrapKeys are the only rule keys evaluated against spells and
// traps; every other key is monster territory and fails outright.
var spellTrapKeys = map[RuleKey]bool{
	KeyDesc: true, KeyDescLength: true, KeyBanlistEver: true,
	KeySetYear: true, KeyFirstSetYear: true, KeyRace: true,
	KeySpellType: true, KeyTrapType: true, KeyHasRarity: true,
	KeyNameLength: true, KeyName: true,
}

var specialChar = regexp.MustCompile(`[^a-zA-Z\s]`)

// Matches reports whether the card satisfies the rule. It is total:
// malformed rules, unknown keys and absent card fields all evaluate to
// false, never panic.
func Matches(card *Card, rule Rule) bool {
	if card.IsSpellOrTrap() && !spellTrapKeys[rule.Key] {
		return false
	}

	switch rule.Key {
	case KeyBanlistEver:
		if want, ok := rule.Value.(bool); ok && !want {
			return !card.BanlistEver
		}
		return card.BanlistEver
	case KeyHasRarity:
		return matchRarity(card, rule)
	}

	v := extractField(card, rule.Key)
	if v == nil {
		return false
	}
	if years, ok := v.([]int); ok {
		return matchYears(years, rule)
	}
	return applyOp(v, rule)
}

// MatchesCell reports whether the card satisfies both the row rule and
// the column rule of a cell.
func MatchesCell(card *Card, row, col Rule) bool {
	return Matches(card, row) && Matches(card, col)
}

// extractField pulls the value a rule key inspects off the card.
// nil means the field is absent for this card.
func extractField(card *Card, key RuleKey) any {
	switch key {
	case KeyLevel:
		return numOrNil(card.Level)
	case KeyRank:
		return numOrNil(card.Rank)
	case KeyLinkRating:
		return numOrNil(card.LinkRating)
	case KeyATK:
		return numOrNil(card.ATK)
	case KeyDEF:
		return numOrNil(card.DEF)
	case KeyType:
		return strOrNil(card.Type)
	case KeyRace:
		if !card.IsSpellOrTrap() {
			return nil
		}
		return strOrNil(card.Race)
	case KeySpellType:
		if card.Type != "Spell Card" {
			return nil
		}
		return strOrNil(card.Race)
	case KeyTrapType:
		if card.Type != "Trap Card" {
			return nil
		}
		return strOrNil(card.Race)
	case KeyMonsterType:
		if card.MonsterType != "" {
			return card.MonsterType
		}
		return strOrNil(card.Race)
	case KeyAttribute:
		return strOrNil(card.Attribute)
	case KeyKind:
		return string(card.Kind)
	case KeyName:
		return card.Name
	case KeyNameLength:
		return float64(len([]rune(card.Name)))
	case KeyDesc:
		return card.Desc
	case KeyDescLength:
		return float64(len([]rune(card.Desc)))
	case KeySetYear:
		if len(card.SetYears) == 0 {
			return nil
		}
		return card.SetYears
	case KeyFirstSetYear:
		if len(card.SetYears) == 0 {
			return nil
		}
		return float64(card.SetYears[0])
	case KeyTuner:
		return card.Tuner
	case KeyEffect:
		return boolOrNil(card.Effect)
	case KeyNormal:
		return boolOrNil(card.Normal)
	case KeyRitual:
		return card.Ritual
	case KeyPendulum:
		return card.Pendulum
	case KeyFlip:
		return card.Flip
	case KeyXyz:
		return card.Xyz
	case KeyFusion:
		return card.Fusion
	case KeySynchro:
		return card.Synchro
	case KeyLink:
		return card.Link
	case KeyExtraDeck:
		return card.ExtraDeck
	case KeyMainDeck:
		return card.MainDeck
	}
	return nil
}

func numOrNil(p *int) any {
	if p == nil {
		return nil
	}
	return float64(*p)
}

func strOrNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolOrNil(p *bool) any {
	if p == nil {
		return nil
	}
	return *p
}

// toNum coerces numbers and numeric strings to float64, so a rule value
// of "3000" compares equal to an ATK of 3000.
func toNum(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// applyOp runs the rule's comparison against an extracted scalar.
func applyOp(v any, rule Rule) bool {
	n, vNum := toNum(v)
	m, rNum := toNum(rule.Value)
	bothNum := vNum && rNum

	switch rule.Op {
	case OpEq:
		if bothNum {
			return n == m
		}
		return looseEqual(v, rule.Value)
	case OpNeq:
		if bothNum {
			return n != m
		}
		return !looseEqual(v, rule.Value)
	case OpLower:
		return bothNum && n < m
	case OpHigher:
		return bothNum && n > m
	case OpLowerEq:
		return bothNum && n <= m
	case OpHigherEq:
		return bothNum && n >= m
	case OpBetween:
		m2, ok := toNum(rule.Value2)
		return bothNum && ok && n >= m && n <= m2
	case OpContains:
		s, ok := v.(string)
		return ok && matchContains(s, rule)
	case OpWordCount:
		s, ok := v.(string)
		return ok && rNum && float64(len(strings.Fields(s))) == m
	case OpSpecial:
		s, ok := v.(string)
		return ok && specialChar.MatchString(s)
	}
	return false
}

// looseEqual compares non-numeric operands: equal strings, equal bools.
func looseEqual(a, b any) bool {
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	}
	return false
}

// matchContains is a case-insensitive substring check, OR-ed over up to
// three needles. Blank needles are skipped.
func matchContains(s string, rule Rule) bool {
	low := strings.ToLower(s)
	for _, nv := range []any{rule.Value, rule.Value2, rule.Value3} {
		needle, ok := nv.(string)
		if !ok || needle == "" {
			continue
		}
		if strings.Contains(low, strings.ToLower(needle)) {
			return true
		}
	}
	return false
}

// matchYears applies a numeric comparison existentially: the rule holds
// if any release year satisfies it.
func matchYears(years []int, rule Rule) bool {
	switch rule.Op {
	case OpEq, OpNeq, OpLower, OpHigher, OpLowerEq, OpHigherEq, OpBetween:
	default:
		return false
	}
	for _, y := range years {
		if applyOp(float64(y), rule) {
			return true
		}
	}
	return false
}

// matchRarity scans the card's printings for the wanted rarity: exact
// match for eq, case-insensitive substring otherwise.
func matchRarity(card *Card, rule Rule) bool {
	want, ok := stringValue(rule.Value)
	if !ok || want == "" {
		return false
	}
	for _, s := range card.Sets {
		if rule.Op == OpEq {
			if s.SetRarity == want {
				return true
			}
		} else if strings.Contains(strings.ToLower(s.SetRarity), strings.ToLower(want)) {
			return true
		}
	}
	return false
}
