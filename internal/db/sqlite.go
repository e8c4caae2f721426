package db

import (
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// DB wraps database operations
type DB struct {
	conn *sql.DB
	mu   sync.RWMutex
}

// NewDB creates a new database connection
func NewDB(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	db := &DB{conn: conn}

	// Run migrations
	if err := db.migrate(); err != nil {
		return nil, err
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate runs database migrations
func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS votes (
		seed TEXT NOT NULL,
		cell TEXT NOT NULL,
		card_id INTEGER NOT NULL,
		cnt INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (seed, cell, card_id)
	);

	CREATE TABLE IF NOT EXISTS chain_scores (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		points INTEGER NOT NULL,
		ts INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS card_cache (
		cache_key TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		fetched_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_votes_seed ON votes(seed);
	CREATE INDEX IF NOT EXISTS idx_chain_scores_points ON chain_scores(points DESC, ts ASC);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// RecordVote counts one community vote for a card in a board cell.
func (db *DB) RecordVote(seed, cell string, cardID int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.Exec(`
		INSERT INTO votes (seed, cell, card_id, cnt)
		VALUES (?, ?, ?, 1)
		ON CONFLICT(seed, cell, card_id) DO UPDATE SET cnt = cnt + 1
	`, seed, cell, cardID)
	return err
}

// PickCount is one card's vote tally within a cell.
type PickCount struct {
	CardID int `json:"cardId"`
	Count  int `json:"cnt"`
}

// TopPicks returns, for every cell of a board, the n most-voted cards
// and the cell's total vote count.
func (db *DB) TopPicks(seed string, n int) (map[string][]PickCount, map[string]int, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	rows, err := db.conn.Query(`
		SELECT cell, card_id, cnt FROM (
			SELECT cell, card_id, cnt,
			       ROW_NUMBER() OVER (PARTITION BY cell ORDER BY cnt DESC, card_id ASC) AS rn
			FROM votes
			WHERE seed = ?
		)
		WHERE rn <= ?
		ORDER BY cell ASC, cnt DESC, card_id ASC
	`, seed, n)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	top := map[string][]PickCount{}
	for rows.Next() {
		var cell string
		var pc PickCount
		if err := rows.Scan(&cell, &pc.CardID, &pc.Count); err != nil {
			return nil, nil, err
		}
		top[cell] = append(top[cell], pc)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	totalRows, err := db.conn.Query(`
		SELECT cell, SUM(cnt) FROM votes WHERE seed = ? GROUP BY cell
	`, seed)
	if err != nil {
		return nil, nil, err
	}
	defer totalRows.Close()

	totals := map[string]int{}
	for totalRows.Next() {
		var cell string
		var sum int
		if err := totalRows.Scan(&cell, &sum); err != nil {
			return nil, nil, err
		}
		totals[cell] = sum
	}

	return top, totals, totalRows.Err()
}

// ScoreEntry is one chain-mode leaderboard row.
type ScoreEntry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
	TS     int64  `json:"ts"`
}

// SubmitScore stores a chain-mode result and returns the saved entry.
func (db *DB) SubmitScore(name string, points int) (ScoreEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	entry := ScoreEntry{
		ID:     uuid.New().String(),
		Name:   name,
		Points: points,
		TS:     time.Now().UnixMilli(),
	}
	_, err := db.conn.Exec(`
		INSERT INTO chain_scores (id, name, points, ts)
		VALUES (?, ?, ?, ?)
	`, entry.ID, entry.Name, entry.Points, entry.TS)
	return entry, err
}

// TopScores returns the leaderboard: highest points first, earlier
// submissions winning ties.
func (db *DB) TopScores(limit int) ([]ScoreEntry, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	rows, err := db.conn.Query(`
		SELECT id, name, points, ts FROM chain_scores
		ORDER BY points DESC, ts ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Points, &e.TS); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// ClearScores wipes the chain leaderboard.
func (db *DB) ClearScores() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.Exec("DELETE FROM chain_scores")
	return err
}

// CacheGet returns a cached payload and when it was fetched. The bool
// reports whether the key exists.
func (db *DB) CacheGet(key string) ([]byte, time.Time, bool, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var payload []byte
	var fetchedAt int64
	err := db.conn.QueryRow(`
		SELECT payload, fetched_at FROM card_cache WHERE cache_key = ?
	`, key).Scan(&payload, &fetchedAt)

	if err == sql.ErrNoRows {
		return nil, time.Time{}, false, nil
	}
	if err != nil {
		return nil, time.Time{}, false, err
	}
	return payload, time.UnixMilli(fetchedAt), true, nil
}

// CachePut stores a payload under a key, replacing any previous copy.
func (db *DB) CachePut(key string, payload []byte) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO card_cache (cache_key, payload, fetched_at)
		VALUES (?, ?, ?)
	`, key, payload, time.Now().UnixMilli())
	return err
}
