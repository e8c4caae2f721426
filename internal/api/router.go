package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/yugigrid/server/internal/db"
	"github.com/yugigrid/server/internal/engine"
	mw "github.com/yugigrid/server/internal/middleware"
)

// Config carries everything the server needs beyond the database: the
// normalized corpus, the rule pool, and tunables.
type Config struct {
	Cards []engine.Card
	Pool  []engine.Rule

	// AdminSecret signs admin tokens. Empty disables admin endpoints.
	AdminSecret string

	// MinSolutionsPerCell and MaxTries tune board generation. Zero
	// means the engine defaults.
	MinSolutionsPerCell int
	MaxTries            int

	// RateLimit is requests per second per IP. Zero means 100.
	RateLimit rate.Limit
}

// Server handles HTTP requests
type Server struct {
	router      chi.Router
	db          *db.DB
	cfg         Config
	pools       engine.RulePools
	boards      map[string]*boardView
	boardsMu    sync.RWMutex
	rateLimiter *mw.RateLimiter
}

// NewServer creates a new API server
func NewServer(database *db.DB, cfg Config) *Server {
	if cfg.RateLimit == 0 {
		cfg.RateLimit = 100
	}
	s := &Server{
		router:      chi.NewRouter(),
		db:          database,
		cfg:         cfg,
		pools:       engine.BuildRulePools(cfg.Pool),
		boards:      make(map[string]*boardView),
		rateLimiter: mw.NewRateLimiter(cfg.RateLimit, int(cfg.RateLimit)),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.SetHeader("Content-Type", "application/json"))
	s.router.Use(s.rateLimiter.Middleware)
	s.router.Use(mw.SecurityHeadersMiddleware)
	s.router.Use(mw.MaxBodySizeMiddleware(1024 * 1024)) // 1MB max

	// Public endpoints
	s.router.Get("/api/board", s.getBoard)
	s.router.Post("/api/stats", s.postVote)
	s.router.Get("/api/picks", s.getPicks)
	s.router.Get("/api/chain/top", s.getChainTop)
	s.router.Post("/api/chain/top", s.postChainScore)

	// Admin endpoints (token required)
	s.router.Group(func(r chi.Router) {
		r.Use(mw.AdminAuthMiddleware(s.cfg.AdminSecret))
		r.Delete("/api/chain/top", s.clearChainTop)
		r.Post("/api/admin/query", s.queryCards)
	})
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response wraps API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response (sanitized)
func writeError(w http.ResponseWriter, status int, message string) {
	if status >= 500 {
		message = "Internal server error"
	}
	writeJSON(w, status, Response{
		Success: false,
		Error:   message,
	})
}
