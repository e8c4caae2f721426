// Package engine implements the pure puzzle logic: the card model, the
// rule predicate language, rule pair compatibility, solution counting and
// the board/pair search. It holds no global state; callers own the card
// universe, the rule pool and the random source.
package engine

// CardKind partitions the corpus into the three top-level card categories.
type CardKind string

const (
	KindMonster CardKind = "monster"
	KindSpell   CardKind = "spell"
	KindTrap    CardKind = "trap"
)

// CardSet is one printing of a card.
type CardSet struct {
	SetName   string `json:"set_name,omitempty"`
	SetCode   string `json:"set_code,omitempty"`
	SetRarity string `json:"set_rarity,omitempty"`
}

// Card is the normalized, immutable card representation the engine
// evaluates rules against. Nullable numeric fields use pointers; a nil
// field never satisfies any predicate.
type Card struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Desc string `json:"desc"`

	Type      string `json:"type,omitempty"`
	Race      string `json:"race,omitempty"`
	Attribute string `json:"attribute,omitempty"`

	// MonsterType is the creature type as an enum token (e.g. DRAGON).
	// Empty for spells and traps.
	MonsterType string `json:"monsterType,omitempty"`

	ATK *int `json:"atk,omitempty"`
	DEF *int `json:"def,omitempty"`

	// Exactly one of Level and Rank is set for non-Link monsters.
	Level      *int `json:"level,omitempty"`
	Rank       *int `json:"rank,omitempty"`
	LinkRating *int `json:"linkRating,omitempty"`

	Xyz      bool `json:"xyz,omitempty"`
	Fusion   bool `json:"fusion,omitempty"`
	Synchro  bool `json:"synchro,omitempty"`
	Link     bool `json:"link,omitempty"`
	Ritual   bool `json:"ritual,omitempty"`
	Pendulum bool `json:"pendulum,omitempty"`
	Tuner    bool `json:"tuner,omitempty"`
	Flip     bool `json:"flip,omitempty"`

	// Effect/Normal are only meaningful for monsters; nil otherwise so
	// monster-only rules never match spells or traps.
	Effect *bool `json:"effect,omitempty"`
	Normal *bool `json:"normal,omitempty"`

	Kind      CardKind `json:"kind"`
	SpellType string   `json:"spellType,omitempty"`
	TrapType  string   `json:"trapType,omitempty"`

	ExtraDeck bool `json:"extraDeck,omitempty"`
	MainDeck  bool `json:"mainDeck,omitempty"`

	// Meta and Info are preformatted display strings; opaque to matching.
	Meta string `json:"meta,omitempty"`
	Info string `json:"info,omitempty"`

	// SetYears holds the distinct release years of the card's printings,
	// sorted ascending. Empty when no printing data is known.
	SetYears []int     `json:"setYears,omitempty"`
	Sets     []CardSet `json:"card_sets,omitempty"`

	// BanlistEver is true if the card id appears in the static set of ids
	// that were restricted at any point in the game's history.
	BanlistEver bool `json:"banlistEver,omitempty"`
}

// IsSpellOrTrap reports whether the card is a spell or trap.
func (c *Card) IsSpellOrTrap() bool {
	return c.Kind == KindSpell || c.Kind == KindTrap
}

// FirstSetYear returns the earliest known printing year, or 0 if none.
func (c *Card) FirstSetYear() int {
	if len(c.SetYears) == 0 {
		return 0
	}
	return c.SetYears[0]
}

// RawCard is the wire shape of one card record from the card database API.
// ATK and DEF stay untyped because the source emits both numbers and
// strings ("?", "-" and "" all mean unknown).
type RawCard struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Desc      string    `json:"desc"`
	Type      string    `json:"type"`
	Race      string    `json:"race"`
	Attribute string    `json:"attribute"`
	ATK       any       `json:"atk"`
	DEF       any       `json:"def"`
	Level     *int      `json:"level"`
	Rank      *int      `json:"rank"`
	LinkVal   *int      `json:"linkval"`
	Typeline  []string  `json:"typeline"`
	CardSets  []CardSet `json:"card_sets"`
}
