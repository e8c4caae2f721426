package cards

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/yugigrid/server/internal/engine"
)

// Cache keys under which raw API payloads are stored.
const (
	cardCacheKey = "ygoprodeck:cards"
	setCacheKey  = "ygoprodeck:sets"
)

// DefaultCacheMaxAge is how long a cached corpus stays fresh.
const DefaultCacheMaxAge = 7 * 24 * time.Hour

// Cache persists raw API payloads between runs.
type Cache interface {
	CacheGet(key string) ([]byte, time.Time, bool, error)
	CachePut(key string, payload []byte) error
}

// Loader produces the normalized card corpus, fetching from the card
// API only when the cached copy is missing or stale.
type Loader struct {
	client *Client
	cache  Cache
	maxAge time.Duration
}

// NewLoader creates a loader. A nil cache disables caching; a zero
// maxAge means DefaultCacheMaxAge.
func NewLoader(client *Client, cache Cache, maxAge time.Duration) *Loader {
	if maxAge == 0 {
		maxAge = DefaultCacheMaxAge
	}
	return &Loader{client: client, cache: cache, maxAge: maxAge}
}

// LoadCards returns the normalized corpus. The banlist maps card ids
// that were ever restricted.
func (l *Loader) LoadCards(ctx context.Context, banlist map[int]bool) ([]engine.Card, error) {
	years, err := l.loadSetYears(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := cachedFetch(ctx, l, cardCacheKey, func(ctx context.Context) ([]engine.RawCard, error) {
		return l.client.FetchAllCards(ctx)
	})
	if err != nil {
		return nil, err
	}

	nz := &engine.Normalizer{Years: years, Banlist: banlist}
	return nz.NormalizeAll(raw), nil
}

// loadSetYears builds the set-code to release-year table.
func (l *Loader) loadSetYears(ctx context.Context) (engine.SetYearTable, error) {
	sets, err := cachedFetch(ctx, l, setCacheKey, func(ctx context.Context) ([]APISet, error) {
		return l.client.FetchCardSets(ctx)
	})
	if err != nil {
		return nil, err
	}
	return SetYearTableFrom(sets), nil
}

// SetYearTableFrom derives the year table from the set list. The first
// listing of a set code wins.
func SetYearTableFrom(sets []APISet) engine.SetYearTable {
	table := engine.SetYearTable{}
	for _, s := range sets {
		if s.SetCode == "" || len(s.TCGDate) < 4 {
			continue
		}
		year, err := strconv.Atoi(s.TCGDate[:4])
		if err != nil || year == 0 {
			continue
		}
		if _, ok := table[s.SetCode]; !ok {
			table[s.SetCode] = year
		}
	}
	return table
}

// cachedFetch serves a payload from the cache when fresh, otherwise
// fetches and rewrites the cache. A failed cache write is not fatal.
func cachedFetch[T any](ctx context.Context, l *Loader, key string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	if l.cache != nil {
		payload, fetchedAt, ok, err := l.cache.CacheGet(key)
		if err != nil {
			return nil, fmt.Errorf("failed to read cache %q: %w", key, err)
		}
		if ok && time.Since(fetchedAt) < l.maxAge {
			var out []T
			if err := json.Unmarshal(payload, &out); err == nil {
				return out, nil
			}
			// Corrupt cache entry: fall through to a fresh fetch.
		}
	}

	out, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		if payload, err := json.Marshal(out); err == nil {
			_ = l.cache.CachePut(key, payload)
		}
	}
	return out, nil
}
