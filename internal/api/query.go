package api

import (
	"encoding/json"
	"net/http"

	"github.com/expr-lang/expr"

	"github.com/yugigrid/server/internal/engine"
)

// queryCards evaluates an ad-hoc predicate over the corpus. Admin
// tooling uses it to sanity-check candidate rules before they enter the
// pool ("how many cards would this hit?").
func (s *Server) queryCards(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
		Limit int    `json:"limit"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "Missing query")
		return
	}
	if req.Limit <= 0 {
		req.Limit = 20
	}
	if req.Limit > 100 {
		req.Limit = 100
	}

	program, err := expr.Compile(req.Query, expr.AsBool())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid query expression")
		return
	}

	type hit struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	count := 0
	var sample []hit
	for i := range s.cfg.Cards {
		c := &s.cfg.Cards[i]
		out, err := expr.Run(program, cardEnv(c))
		if err != nil {
			continue
		}
		if ok, _ := out.(bool); !ok {
			continue
		}
		count++
		if len(sample) < req.Limit {
			sample = append(sample, hit{ID: c.ID, Name: c.Name})
		}
	}
	if sample == nil {
		sample = []hit{}
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"count":  count,
			"sample": sample,
		},
	})
}

// cardEnv flattens a card into the expression environment. Absent
// numeric fields show up as -1 so queries can distinguish them from
// real zeroes.
func cardEnv(c *engine.Card) map[string]interface{} {
	return map[string]interface{}{
		"id":           c.ID,
		"name":         c.Name,
		"desc":         c.Desc,
		"type":         c.Type,
		"race":         c.Race,
		"attribute":    c.Attribute,
		"monsterType":  c.MonsterType,
		"kind":         string(c.Kind),
		"spellType":    c.SpellType,
		"trapType":     c.TrapType,
		"atk":          orInt(c.ATK),
		"def":          orInt(c.DEF),
		"level":        orInt(c.Level),
		"rank":         orInt(c.Rank),
		"linkRating":   orInt(c.LinkRating),
		"xyz":          c.Xyz,
		"fusion":       c.Fusion,
		"synchro":      c.Synchro,
		"link":         c.Link,
		"ritual":       c.Ritual,
		"pendulum":     c.Pendulum,
		"tuner":        c.Tuner,
		"flip":         c.Flip,
		"effect":       orBool(c.Effect),
		"normal":       orBool(c.Normal),
		"extraDeck":    c.ExtraDeck,
		"mainDeck":     c.MainDeck,
		"banlistEver":  c.BanlistEver,
		"setYears":     c.SetYears,
		"firstSetYear": c.FirstSetYear(),
	}
}

func orInt(p *int) int {
	if p == nil {
		return -1
	}
	return *p
}

func orBool(p *bool) bool {
	return p != nil && *p
}
