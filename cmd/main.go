package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/yugigrid/server/internal/api"
	"github.com/yugigrid/server/internal/cards"
	"github.com/yugigrid/server/internal/db"
)

func main() {
	// Get configuration from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "yugigrid.db"
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	adminSecret := os.Getenv("ADMIN_SECRET")

	// Initialize database
	database, err := db.NewDB(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Load static data files
	pool, err := cards.LoadRulePool(filepath.Join(dataDir, "rules.json"))
	if err != nil {
		log.Fatalf("Failed to load rule pool: %v", err)
	}

	banlist, err := cards.LoadBanlist(filepath.Join(dataDir, "banlist.json"))
	if err != nil {
		log.Fatalf("Failed to load banlist: %v", err)
	}

	// Load the card corpus, hitting the card API only when the cached
	// copy is stale
	loader := cards.NewLoader(cards.NewClient(os.Getenv("CARD_API_URL")), database, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	corpus, err := loader.LoadCards(ctx, banlist)
	cancel()
	if err != nil {
		log.Fatalf("Failed to load card corpus: %v", err)
	}
	log.Printf("Loaded %d cards, %d rules", len(corpus), len(pool))

	// Create API server
	server := api.NewServer(database, api.Config{
		Cards:       corpus,
		Pool:        pool,
		AdminSecret: adminSecret,
	})

	// Start HTTP server
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting server on %s", addr)

	if err := http.ListenAndServe(addr, server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
