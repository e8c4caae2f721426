package api

import "math/rand"

var nameAdjectives = []string{
	"Shiny", "Cursed", "Ancient", "Swift", "Sneaky", "Mighty",
	"Lucky", "Shadow", "Gilded", "Rusty",
}

var nameNouns = []string{
	"Duelist", "Kuriboh", "Magician", "Dragon", "Scapegoat",
	"Gravekeeper", "Summoner", "Trapmaster", "Gambler", "Archfiend",
}

// randomPlayerName generates a fallback leaderboard name for players
// who submit without a usable one.
func randomPlayerName() string {
	adj := nameAdjectives[rand.Intn(len(nameAdjectives))]
	noun := nameNouns[rand.Intn(len(nameNouns))]
	return adj + " " + noun
}
