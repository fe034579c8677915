// internal/httpserver/server.go
//
// HTTP server wiring for the solver.
// Responsibilities:
//   - Router + middleware (request IDs, access logs, panic recovery, timeouts, JSON, CORS).
//   - Public endpoints: "/", "/health", "/table", POST /sessions.
//   - Session endpoints (bearer token bound to the session): mounted under /sessions/{id}.
//
// Notes:
//   - The score table is loaded once at startup and shared read-only by all requests.
//   - Sessions store only observed constraints; candidates are rebuilt per request.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/table"
)

// Server bundles router, score table, session store, and token issuer.
type Server struct {
	r      *chi.Mux
	cfg    config.Config
	table  *table.Table
	store  store.Store
	tokens *tokenIssuer
	locks  sessionLocks
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, tbl *table.Table, st store.Store) *Server {
	s := &Server{
		r:      chi.NewRouter(),
		cfg:    cfg,
		table:  tbl,
		store:  st,
		tokens: newTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                   // add X-Request-ID
	s.r.Use(chimw.RealIP)                      // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger(log.Logger)...)      // structured access log
	s.r.Use(chimw.Recoverer)                   // recover from panics
	s.r.Use(chimw.Timeout(cfg.RequestTimeout)) // bound handler time; searches observe it
	s.r.Use(jsonContentType)                   // default JSON responses
	s.r.Use(cors(cfg.ClientOrigin))            // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "wordle-solver",
			"endpoints": []string{
				"/health", "/table", "POST /sessions", "GET /sessions/{id}",
				"POST /sessions/{id}/observe", "POST /sessions/{id}/best",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/table", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"words":       s.table.Len(),
			"fingerprint": s.table.Fingerprint(),
		})
	})

	s.mountSessions()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// writeJSON writes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

// writeError writes {"error": code}.
func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
