package engine

import (
	"fmt"
	"strings"
)

// RuleKey names the card field a rule inspects. The set is closed:
// Matches dispatches over these constants and treats anything else as a
// non-match.
type RuleKey string

const (
	KeyLevel        RuleKey = "level"
	KeyRank         RuleKey = "rank"
	KeyLinkRating   RuleKey = "linkRating"
	KeyATK          RuleKey = "ATK"
	KeyDEF          RuleKey = "DEF"
	KeyType         RuleKey = "type"
	KeyRace         RuleKey = "race"
	KeyMonsterType  RuleKey = "monsterType"
	KeyAttribute    RuleKey = "attribute"
	KeyKind         RuleKey = "kind"
	KeySpellType    RuleKey = "spellType"
	KeyTrapType     RuleKey = "trapType"
	KeyTuner        RuleKey = "tuner"
	KeyEffect       RuleKey = "effect"
	KeyNormal       RuleKey = "normal"
	KeyRitual       RuleKey = "ritual"
	KeyPendulum     RuleKey = "pendulum"
	KeyFlip         RuleKey = "flip"
	KeyXyz          RuleKey = "xyz"
	KeyFusion       RuleKey = "fusion"
	KeySynchro      RuleKey = "synchro"
	KeyLink         RuleKey = "link"
	KeyExtraDeck    RuleKey = "extraDeck"
	KeyMainDeck     RuleKey = "mainDeck"
	KeyName         RuleKey = "name"
	KeyNameLength   RuleKey = "nameLength"
	KeyDesc         RuleKey = "desc"
	KeyDescLength   RuleKey = "descLength"
	KeySetYear      RuleKey = "setYear"
	KeyFirstSetYear RuleKey = "firstSetYear"
	KeyHasRarity    RuleKey = "hasRarity"
	KeyBanlistEver  RuleKey = "banlistEver"
)

// RuleOp is the comparison a rule applies to the extracted field value.
type RuleOp string

const (
	OpEq        RuleOp = "eq"
	OpNeq       RuleOp = "neq"
	OpLower     RuleOp = "lower"
	OpHigher    RuleOp = "higher"
	OpLowerEq   RuleOp = "lowerEq"
	OpHigherEq  RuleOp = "higherEq"
	OpContains  RuleOp = "contains"
	OpBetween   RuleOp = "between"
	OpWordCount RuleOp = "wordCount"
	OpSpecial   RuleOp = "special"
)

// KnownKeys lists every key Matches understands, for pool validation.
var KnownKeys = map[RuleKey]bool{
	KeyLevel: true, KeyRank: true, KeyLinkRating: true, KeyATK: true,
	KeyDEF: true, KeyType: true, KeyRace: true, KeyMonsterType: true,
	KeyAttribute: true, KeyKind: true, KeySpellType: true, KeyTrapType: true,
	KeyTuner: true, KeyEffect: true, KeyNormal: true, KeyRitual: true,
	KeyPendulum: true, KeyFlip: true, KeyXyz: true, KeyFusion: true,
	KeySynchro: true, KeyLink: true, KeyExtraDeck: true, KeyMainDeck: true,
	KeyName: true, KeyNameLength: true, KeyDesc: true, KeyDescLength: true,
	KeySetYear: true, KeyFirstSetYear: true, KeyHasRarity: true,
	KeyBanlistEver: true,
}

// KnownOps lists every comparison operator, for pool validation.
var KnownOps = map[RuleOp]bool{
	OpEq: true, OpNeq: true, OpLower: true, OpHigher: true,
	OpLowerEq: true, OpHigherEq: true, OpContains: true, OpBetween: true,
	OpWordCount: true, OpSpecial: true,
}

// Rule is one constraint over a card field. Value2/Value3 carry the
// upper bound for between and extra needles for contains. Label is
// display-only and never participates in rule identity.
type Rule struct {
	Key    RuleKey `json:"key"`
	Op     RuleOp  `json:"op,omitempty"`
	Value  any     `json:"value,omitempty"`
	Value2 any     `json:"value2,omitempty"`
	Value3 any     `json:"value3,omitempty"`
	Label  string  `json:"label,omitempty"`
}

// Signature returns a canonical string encoding of the rule's identity
// tuple (key, op, value, value2, value3). Two rules with equal
// signatures are the same constraint regardless of label.
func (r Rule) Signature() string {
	return string(r.Key) + "|" + string(r.Op) + "|" +
		encodeOperand(r.Value) + "|" + encodeOperand(r.Value2) + "|" +
		encodeOperand(r.Value3)
}

// Equal reports whether two rules are the same constraint.
func (r Rule) Equal(o Rule) bool {
	return r.Signature() == o.Signature()
}

func encodeOperand(v any) string {
	switch x := v.(type) {
	case nil:
		return "_"
	case string:
		return "s:" + x
	case bool:
		return fmt.Sprintf("b:%t", x)
	case float64:
		return fmt.Sprintf("n:%g", x)
	case int:
		return fmt.Sprintf("n:%g", float64(x))
	default:
		return fmt.Sprintf("x:%v", x)
	}
}

// stringValue returns the rule's value as a string if it is one.
func stringValue(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// isTypeEqRule reports whether r is an eq rule on the raw type field
// with the given value, e.g. type == "Spell Card".
func isTypeEqRule(r Rule, typ string) bool {
	if r.Key != KeyType || r.Op != OpEq {
		return false
	}
	s, ok := stringValue(r.Value)
	return ok && s == typ
}

// isKindEqSpellTrap reports whether r pins the card kind to spell or trap.
func isKindEqSpellTrap(r Rule) bool {
	if r.Key != KeyKind || r.Op != OpEq {
		return false
	}
	s, ok := stringValue(r.Value)
	return ok && (s == string(KindSpell) || s == string(KindTrap))
}

// IsSpellTrapRule reports whether r only makes sense against spells and
// traps: subtype keys, kind pins, or eq rules on the raw Spell/Trap type.
func IsSpellTrapRule(r Rule) bool {
	switch r.Key {
	case KeyRace, KeySpellType, KeyTrapType:
		return true
	}
	return isKindEqSpellTrap(r) ||
		isTypeEqRule(r, "Spell Card") || isTypeEqRule(r, "Trap Card")
}

// isSpellTrapishRule widens IsSpellTrapRule with the keys that are
// equally at home on a spell/trap board (desc).
func isSpellTrapishRule(r Rule) bool {
	return r.Key == KeyDesc || IsSpellTrapRule(r)
}

// RulePools is the rule pool split by day type.
type RulePools struct {
	Monster   []Rule
	SpellTrap []Rule
}

// BuildRulePools partitions a pool into the monster-day and
// spell/trap-day sub-pools. Desc rules appear in both.
func BuildRulePools(pool []Rule) RulePools {
	var p RulePools
	for _, r := range pool {
		if isSpellTrapishRule(r) {
			p.SpellTrap = append(p.SpellTrap, r)
		}
		if !isSpellTrapishRule(r) || r.Key == KeyDesc {
			p.Monster = append(p.Monster, r)
		}
	}
	return p
}

// DedupeRules drops rules whose identity tuple already appeared,
// keeping first occurrences in order.
func DedupeRules(pool []Rule) []Rule {
	seen := make(map[string]bool, len(pool))
	out := make([]Rule, 0, len(pool))
	for _, r := range pool {
		sig := r.Signature()
		if seen[sig] {
			continue
		}
		seen[sig] = true
		out = append(out, r)
	}
	return out
}

// RuleFamily buckets keys that probe the same aspect of a card, used by
// the chain picker to keep the two rules of a pair dissimilar.
func RuleFamily(r Rule) string {
	key := strings.ToLower(string(r.Key))
	label := strings.ToLower(r.Label)
	switch key {
	case "level", "rank", "linkrating", "atk", "def":
		return "numeric"
	case "name", "namelength":
		return "name"
	case "desc", "desclength":
		return "desc"
	}
	for _, p := range []string{"level", "rank", "link"} {
		if strings.HasPrefix(label, p) {
			return "numeric"
		}
	}
	return key
}
