package engine

import (
	"reflect"
	"testing"
)

func testNormalizer() *Normalizer {
	return &Normalizer{
		Years: SetYearTable{
			"LOB":  2002,
			"SDK":  2002,
			"MVP1": 2016,
		},
		Banlist: map[int]bool{46986414: true},
	}
}

func TestNormalizeMonster(t *testing.T) {
	nz := testNormalizer()
	c := nz.Normalize(RawCard{
		ID:        46986414,
		Name:      "Dark Magician",
		Desc:      "The ultimate wizard in terms of attack and defense.",
		Type:      "Normal Monster",
		Race:      "Spellcaster",
		Attribute: "DARK",
		ATK:       float64(2500),
		DEF:       float64(2100),
		Level:     intp(7),
		CardSets: []CardSet{
			{SetCode: "LOB-005", SetRarity: "Ultra Rare"},
			{SetCode: "MVP1-EN054", SetRarity: "Ultra Rare"},
			{SetCode: "SDK-XXX", SetRarity: "Common"},
			{SetCode: "ZZZ-001", SetRarity: "Common"},
		},
	})

	if c.Kind != KindMonster {
		t.Fatalf("kind = %q, want monster", c.Kind)
	}
	if c.Normal == nil || !*c.Normal || c.Effect == nil || *c.Effect {
		t.Error("Normal Monster should normalize to normal, not effect")
	}
	if c.Attribute != "DARK" || c.MonsterType != "SPELLCASTER" {
		t.Errorf("enums = %q/%q", c.Attribute, c.MonsterType)
	}
	if c.ATK == nil || *c.ATK != 2500 || c.DEF == nil || *c.DEF != 2100 {
		t.Error("stats should parse from numbers")
	}
	// Unknown set codes are skipped; years are distinct and ascending.
	if want := []int{2002, 2016}; !reflect.DeepEqual(c.SetYears, want) {
		t.Errorf("setYears = %v, want %v", c.SetYears, want)
	}
	if !c.BanlistEver {
		t.Error("id on the banlist table should set BanlistEver")
	}
	if !c.MainDeck || c.ExtraDeck {
		t.Error("a plain monster is main deck")
	}
}

func TestNormalizeXyzLevelBecomesRank(t *testing.T) {
	nz := testNormalizer()
	c := nz.Normalize(RawCard{
		ID:       1,
		Name:     "Number 39: Utopia",
		Type:     "XYZ Monster",
		Race:     "Warrior",
		Level:    intp(4),
		Typeline: []string{"Xyz", "Effect"},
	})

	if !c.Xyz {
		t.Fatal("typeline should mark the card Xyz")
	}
	if c.Level != nil {
		t.Error("Xyz monsters carry no level")
	}
	if c.Rank == nil || *c.Rank != 4 {
		t.Errorf("rank = %v, want 4", c.Rank)
	}
	if !c.ExtraDeck || c.MainDeck {
		t.Error("Xyz monsters are extra deck")
	}
}

func TestNormalizeLink(t *testing.T) {
	nz := testNormalizer()
	c := nz.Normalize(RawCard{
		ID:       2,
		Name:     "Decode Talker",
		Type:     "Link Monster",
		Race:     "Cyberse",
		ATK:      float64(2300),
		LinkVal:  intp(3),
		Typeline: []string{"Link", "Effect"},
	})

	if c.LinkRating == nil || *c.LinkRating != 3 {
		t.Fatalf("linkRating = %v, want 3", c.LinkRating)
	}
	if c.Level != nil || c.Rank != nil {
		t.Error("Link monsters carry neither level nor rank")
	}
	if c.DEF == nil || *c.DEF != 0 {
		t.Error("Link monsters pin DEF to 0")
	}
}

func TestNormalizeSpellAndTrap(t *testing.T) {
	nz := testNormalizer()
	s := nz.Normalize(RawCard{ID: 3, Name: "Raigeki", Type: "Spell Card", Race: "Normal"})
	tr := nz.Normalize(RawCard{ID: 4, Name: "Solemn Judgment", Type: "Trap Card", Race: "Counter"})

	if s.Kind != KindSpell || s.SpellType != "NORMAL" {
		t.Errorf("spell = %q/%q", s.Kind, s.SpellType)
	}
	if tr.Kind != KindTrap || tr.TrapType != "COUNTER" {
		t.Errorf("trap = %q/%q", tr.Kind, tr.TrapType)
	}
	if s.Effect != nil || s.Normal != nil || s.Level != nil {
		t.Error("monster-only fields stay nil on spells")
	}
	if s.Attribute != "" || s.MonsterType != "" {
		t.Error("spells carry no attribute or monster type")
	}
}

func TestParseStat(t *testing.T) {
	cases := []struct {
		in   any
		want *int
	}{
		{float64(1800), intp(1800)},
		{"1800", intp(1800)},
		{"?", nil},
		{"-", nil},
		{"", nil},
		{nil, nil},
		{true, nil},
	}
	for _, tc := range cases {
		got := parseStat(tc.in)
		switch {
		case got == nil && tc.want == nil:
		case got == nil || tc.want == nil || *got != *tc.want:
			t.Errorf("parseStat(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestToEnum(t *testing.T) {
	cases := map[string]string{
		"Quick-Play":     "QUICKPLAY",
		" winged beast ": "WINGED_BEAST",
		"DARK":           "DARK",
		"":               "",
	}
	for in, want := range cases {
		if got := toEnum(in); got != want {
			t.Errorf("toEnum(%q) = %q, want %q", in, got, want)
		}
	}
}
