// internal/httpserver/server.go
//
// HTTP server wiring for the Quordle solver.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words", "/metrics", POST /solve.
//   - Session endpoints: POST /sessions, then (token required)
//     POST /sessions/evaluate and GET /sessions/suggestions.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so the token cookie works).
//   - Sessions live in the store; results are handed to the publisher once the
//     last board of a pass is evaluated.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/robalobadob/quordle/apps/go-solver/internal/board"
	"github.com/robalobadob/quordle/apps/go-solver/internal/store"
)

// Deps are the collaborators a Server needs.
type Deps struct {
	// Evaluator may be nil when no vocabulary could be loaded; boards then
	// get empty suggestions.
	Evaluator *board.Evaluator
	Store     store.Store
	Publisher board.Publisher
	Observer  board.Observer

	// Metrics, when set, is mounted at /metrics.
	Metrics http.Handler

	Auth         AuthConfig
	ClientOrigin string
}

// Server bundles the router and its dependencies.
type Server struct {
	r     *chi.Mux
	eval  *board.Evaluator
	store store.Store
	pub   board.Publisher
	obs   board.Observer
	auth  AuthConfig
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	st := d.Store
	if st == nil {
		st = store.NewMemoryStore()
	}
	s := &Server{
		r:     chi.NewRouter(),
		eval:  d.Evaluator,
		store: st,
		pub:   d.Publisher,
		obs:   d.Observer,
		auth:  d.Auth,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(d.ClientOrigin))            // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"quordle-solver","endpoints":["/health","POST /solve","POST /sessions","POST /sessions/evaluate","GET /sessions/suggestions"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		stats := map[string]int{"words": 0, "length": 0}
		if s.eval != nil {
			v := s.eval.Vocabulary()
			stats["words"], stats["length"] = v.Len(), v.WordLength()
		}
		_ = json.NewEncoder(w).Encode(stats)
	})
	if d.Metrics != nil {
		s.r.Handle("/metrics", d.Metrics)
	}

	s.r.Post("/solve", s.handleSolve)
	s.mountSessions()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
// An empty origin defaults to http://localhost:5173.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
