package engine

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// SetYearTable maps a set code prefix (the part of a set code before the
// first hyphen, e.g. "LOB") to the year that set was released.
type SetYearTable map[string]int

// YearsFor returns the distinct release years of the given printings,
// sorted ascending. Printings with unknown set codes are skipped.
func (t SetYearTable) YearsFor(sets []CardSet) []int {
	if len(t) == 0 || len(sets) == 0 {
		return nil
	}
	seen := map[int]bool{}
	var years []int
	for _, s := range sets {
		code := s.SetCode
		if i := strings.IndexByte(code, '-'); i >= 0 {
			code = code[:i]
		}
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		y, ok := t[code]
		if !ok || seen[y] {
			continue
		}
		seen[y] = true
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Normalizer converts raw API card records into engine Cards. It carries
// the static lookup tables the conversion needs so normalization itself
// stays a pure function of its inputs.
type Normalizer struct {
	Years   SetYearTable
	Banlist map[int]bool
}

var enumStrip = regexp.MustCompile(`[^A-Z0-9_]`)

// toEnum canonicalizes a free-form label into an enum token:
// trimmed, uppercased, whitespace collapsed to underscores, everything
// else stripped. Empty input yields the empty string.
func toEnum(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.Join(strings.Fields(s), "_")
	return enumStrip.ReplaceAllString(s, "")
}

// parseStat parses an ATK/DEF value that may arrive as a number or a
// numeric string. "?", "-" and "" all mean unknown and yield nil.
func parseStat(v any) *int {
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		n := int(x)
		return &n
	case int:
		n := x
		return &n
	case string:
		s := strings.TrimSpace(x)
		if s == "" || s == "?" || s == "-" {
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil
		}
		return &n
	default:
		return nil
	}
}

// Normalize converts one raw card record. It is total: any record
// yields a usable Card, with unknown fields left at their zero values.
func (nz *Normalizer) Normalize(raw RawCard) Card {
	t := raw.Type
	kind := KindMonster
	switch t {
	case "Spell Card":
		kind = KindSpell
	case "Trap Card":
		kind = KindTrap
	}
	isMonster := kind == KindMonster

	hasWord := func(w string) bool {
		for _, e := range raw.Typeline {
			if strings.EqualFold(e, w) {
				return true
			}
		}
		return strings.Contains(strings.ToLower(t), strings.ToLower(w))
	}

	c := Card{
		ID:   raw.ID,
		Name: raw.Name,
		Desc: raw.Desc,
		Type: t,
		Race: raw.Race,
		Kind: kind,
	}

	if isMonster {
		c.Xyz = hasWord("Xyz")
		c.Fusion = hasWord("Fusion")
		c.Synchro = hasWord("Synchro")
		c.Link = hasWord("Link")
		c.Ritual = hasWord("Ritual")
		c.Pendulum = hasWord("Pendulum")
		c.Tuner = hasWord("Tuner")
		c.Flip = hasWord("Flip")

		normal := t == "Normal Monster"
		effect := !normal
		c.Normal = &normal
		c.Effect = &effect

		c.Attribute = toEnum(raw.Attribute)
		c.MonsterType = toEnum(raw.Race)
		c.ATK = parseStat(raw.ATK)
		c.DEF = parseStat(raw.DEF)
		c.Level = raw.Level
		c.Rank = raw.Rank
		c.LinkRating = raw.LinkVal

		// Some sources report an Xyz monster's rank in the level field.
		if c.Xyz && c.Rank == nil && c.Level != nil {
			c.Rank = c.Level
			c.Level = nil
		}
		if c.Link {
			c.Level = nil
			c.Rank = nil
			zero := 0
			c.DEF = &zero
		}

		c.ExtraDeck = c.Xyz || c.Fusion || c.Synchro || c.Link
		c.MainDeck = !c.ExtraDeck
	} else {
		c.MainDeck = true
		if kind == KindSpell {
			c.SpellType = toEnum(raw.Race)
		} else {
			c.TrapType = toEnum(raw.Race)
		}
	}

	c.SetYears = nz.Years.YearsFor(raw.CardSets)
	c.Sets = raw.CardSets
	if nz.Banlist != nil {
		c.BanlistEver = nz.Banlist[raw.ID]
	}
	c.Meta = metaLine(&c)
	c.Info = infoLine(&c)
	return c
}

// NormalizeAll converts a full corpus in one pass.
func (nz *Normalizer) NormalizeAll(raws []RawCard) []Card {
	cards := make([]Card, len(raws))
	for i, r := range raws {
		cards[i] = nz.Normalize(r)
	}
	return cards
}

func metaLine(c *Card) string {
	switch c.Kind {
	case KindSpell:
		return "Spell • " + c.Race
	case KindTrap:
		return "Trap • " + c.Race
	}
	var parts []string
	switch {
	case c.LinkRating != nil:
		parts = append(parts, fmt.Sprintf("Link-%d", *c.LinkRating))
	case c.Rank != nil:
		parts = append(parts, fmt.Sprintf("Rank %d", *c.Rank))
	case c.Level != nil:
		parts = append(parts, fmt.Sprintf("Level %d", *c.Level))
	}
	if c.Attribute != "" {
		parts = append(parts, c.Attribute)
	}
	if c.Race != "" {
		parts = append(parts, c.Race)
	}
	return strings.Join(parts, " • ")
}

func infoLine(c *Card) string {
	if c.Kind != KindMonster {
		return c.Type
	}
	a, d := "?", "?"
	if c.ATK != nil {
		a = strconv.Itoa(*c.ATK)
	}
	if c.DEF != nil {
		d = strconv.Itoa(*c.DEF)
	}
	return fmt.Sprintf("ATK %s / DEF %s", a, d)
}
