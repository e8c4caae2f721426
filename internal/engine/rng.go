package engine

import (
	"fmt"
	"strconv"
	"time"
)

// RNG is a deterministic stream of floats in [0, 1). Every random
// choice the engine makes draws from one of these, so a seed fully
// determines a board.
type RNG func() float64

// Mulberry32 returns the mulberry32 generator seeded with a. The same
// seed yields the same stream on every platform; all arithmetic is
// 32-bit.
func Mulberry32(a uint32) RNG {
	return func() float64 {
		a += 0x6D2B79F5
		t := a
		t = (t ^ (t >> 15)) * (t | 1)
		t ^= t + (t^(t>>7))*(t|61)
		t ^= t >> 14
		return float64(t) / 4294967296.0
	}
}

// Seed identifies one puzzle: S is the display form, N seeds the RNG.
type Seed struct {
	S string
	N uint32
}

// DateSeed derives the daily seed from a calendar date, encoded as
// yyyymmdd so a given day produces the same puzzle everywhere.
func DateSeed(t time.Time) Seed {
	s := fmt.Sprintf("%04d%02d%02d", t.Year(), int(t.Month()), t.Day())
	n, _ := strconv.ParseUint(s, 10, 32)
	return Seed{S: s, N: uint32(n)}
}

// ParseSeed parses a forced seed string (decimal digits, 32-bit range).
func ParseSeed(s string) (Seed, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return Seed{}, fmt.Errorf("invalid seed %q", s)
	}
	return Seed{S: s, N: uint32(n)}, nil
}

// DayType selects which half of the corpus a day's puzzle draws from.
type DayType string

const (
	DayMonster   DayType = "Monster"
	DaySpellTrap DayType = "Spell/Trap"
)

// DayTypeFromRand consumes one draw from the seed's stream to decide
// the day type. Roughly one day in five is a spell/trap day.
func DayTypeFromRand(rand RNG) DayType {
	if rand() < 0.20 {
		return DaySpellTrap
	}
	return DayMonster
}

// FilterByDay narrows the corpus to the cards a day type plays with.
func FilterByDay(cards []Card, day DayType) []Card {
	out := make([]Card, 0, len(cards))
	for _, c := range cards {
		if (day == DaySpellTrap) == c.IsSpellOrTrap() {
			out = append(out, c)
		}
	}
	return out
}
