package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	seedPattern = regexp.MustCompile(`^[0-9]{1,10}$`)
	cellPattern = regexp.MustCompile(`^[0-2],[0-2]$`)
	namePattern = regexp.MustCompile(`^[a-zA-Z0-9 _-]+$`)
)

// MaxPlayerNameLength is where CleanPlayerName truncates.
const MaxPlayerNameLength = 18

// ValidateSeed validates a puzzle seed string
func ValidateSeed(seed string) error {
	if !seedPattern.MatchString(seed) {
		return fmt.Errorf("seed must be 1-10 digits")
	}
	return nil
}

// ValidateCell validates a board cell reference like "1,2"
func ValidateCell(cell string) error {
	if !cellPattern.MatchString(cell) {
		return fmt.Errorf("cell must be 'row,col' with both in 0-2")
	}
	return nil
}

// ValidateCardID validates a card database ID
func ValidateCardID(id int) error {
	if id <= 0 || id > 999999999 {
		return fmt.Errorf("card ID out of range")
	}
	return nil
}

// ValidatePoints validates a chain-mode score
func ValidatePoints(points int) error {
	if points <= 0 || points > 99999 {
		return fmt.Errorf("points must be between 1 and 99999")
	}
	return nil
}

// CleanPlayerName normalizes a leaderboard name: trims, collapses
// whitespace and truncates. It returns an error when what remains is
// too short or holds characters outside letters, digits, space,
// underscore and hyphen.
func CleanPlayerName(name string) (string, error) {
	name = strings.Join(strings.Fields(strings.TrimSpace(name)), " ")
	if len(name) < 3 {
		return "", fmt.Errorf("name must be at least 3 characters")
	}
	if !namePattern.MatchString(name) {
		return "", fmt.Errorf("name can only contain letters, digits, spaces, hyphens, and underscores")
	}
	if len(name) > MaxPlayerNameLength {
		name = name[:MaxPlayerNameLength]
	}
	return name, nil
}
