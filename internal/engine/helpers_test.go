package engine

// Shared card builders for the package tests.

func intp(n int) *int    { return &n }
func boolp(b bool) *bool { return &b }

type monsterOpt func(*Card)

func withATK(n int) monsterOpt   { return func(c *Card) { c.ATK = intp(n) } }
func withDEF(n int) monsterOpt   { return func(c *Card) { c.DEF = intp(n) } }
func withLevel(n int) monsterOpt { return func(c *Card) { c.Level = intp(n) } }
func withRank(n int) monsterOpt  { return func(c *Card) { c.Rank = intp(n); c.Level = nil; c.Xyz = true } }

func withYears(ys ...int) monsterOpt {
	return func(c *Card) { c.SetYears = ys }
}

func monster(id int, name, attribute, race string, opts ...monsterOpt) Card {
	c := Card{
		ID:          id,
		Name:        name,
		Desc:        "You can Special Summon this card.",
		Type:        "Effect Monster",
		Race:        race,
		Attribute:   attribute,
		MonsterType: race,
		Kind:        KindMonster,
		Effect:      boolp(true),
		Normal:      boolp(false),
		MainDeck:    true,
	}
	for _, o := range opts {
		o(&c)
	}
	if !c.Xyz && c.Level == nil {
		c.Level = intp(4)
	}
	c.ExtraDeck = c.Xyz || c.Fusion || c.Synchro || c.Link
	c.MainDeck = !c.ExtraDeck
	return c
}

func spell(id int, name, subtype string) Card {
	return Card{
		ID:       id,
		Name:     name,
		Desc:     "Draw 2 cards.",
		Type:     "Spell Card",
		Race:     subtype,
		Kind:     KindSpell,
		MainDeck: true,
	}
}

func trap(id int, name, subtype string) Card {
	return Card{
		ID:       id,
		Name:     name,
		Desc:     "Negate the attack.",
		Type:     "Trap Card",
		Race:     subtype,
		Kind:     KindTrap,
		MainDeck: true,
	}
}

func rule(key RuleKey, op RuleOp, value any) Rule {
	return Rule{Key: key, Op: op, Value: value}
}
