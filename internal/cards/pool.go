package cards

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/yugigrid/server/internal/engine"
)

// LoadRulePool reads the rule pool from a JSON file and validates every
// entry against the engine's key and operator sets. Duplicate rules are
// dropped.
func LoadRulePool(path string) ([]engine.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule pool: %w", err)
	}

	var pool []engine.Rule
	if err := json.Unmarshal(data, &pool); err != nil {
		return nil, fmt.Errorf("failed to parse rule pool: %w", err)
	}

	for i, r := range pool {
		if !engine.KnownKeys[r.Key] {
			return nil, fmt.Errorf("rule %d: unknown key %q", i, r.Key)
		}
		if r.Op != "" && !engine.KnownOps[r.Op] {
			return nil, fmt.Errorf("rule %d: unknown op %q", i, r.Op)
		}
	}

	pool = engine.DedupeRules(pool)
	if len(pool) == 0 {
		return nil, fmt.Errorf("rule pool is empty")
	}
	return pool, nil
}

// LoadBanlist reads the set of card ids that were ever restricted,
// stored as a JSON array of ids.
func LoadBanlist(path string) (map[int]bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read banlist: %w", err)
	}

	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("failed to parse banlist: %w", err)
	}

	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
