// internal/httpserver/routes_sessions.go
//
// Session and solve endpoints.
//
//   POST /sessions               -> {sessionId, token, expiresAt}
//   POST /sessions/evaluate      -> {board, suggestions}   (token required)
//   GET  /sessions/suggestions   -> {status, data}         (token required)
//   POST /solve                  -> {count, candidates}
//
// Evaluate accepts a board either as structured cells or as the raw
// accessibility labels scraped from the page, e.g. "'C' (letter 1) is correct".

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/quordle/apps/go-solver/internal/board"
	"github.com/robalobadob/quordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/quordle/apps/go-solver/internal/solver"
)

// mountSessions registers the /sessions routes.
func (s *Server) mountSessions() {
	s.r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleNewSession)
		r.Group(func(r chi.Router) {
			r.Use(s.requireSession())
			r.Post("/evaluate", s.handleEvaluate)
			r.Get("/suggestions", s.handleSuggestions)
		})
	})
}

type newSessionRes struct {
	SessionID string    `json:"sessionId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	if !s.auth.checkAPIKey(r.Header.Get("X-API-Key")) {
		http.Error(w, `{"error":"Invalid API key"}`, http.StatusUnauthorized)
		return
	}

	sess := board.NewSession(uuid.NewString(), s.pub, s.obs)
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	tok, exp, err := s.auth.signToken(sess.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign token")
		http.Error(w, `{"error":"token_failed"}`, http.StatusInternalServerError)
		return
	}
	s.auth.setTokenCookie(w, tok, exp)

	log.Info().Str("session", sess.ID).Msg("session created")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(newSessionRes{SessionID: sess.ID, Token: tok, ExpiresAt: exp.UTC()})
}

// evaluateReq carries one board's feedback. Exactly one of Rows or Labels is
// expected; Labels wins when both are present.
type evaluateReq struct {
	Board  *int              `json:"board"`
	Rows   [][]feedback.Cell `json:"rows"`
	Labels [][]string        `json:"labels"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if req.Board == nil {
		http.Error(w, `{"error":"board required"}`, http.StatusBadRequest)
		return
	}
	sess, err := s.store.Get(r.Context(), sessionID(r))
	if err != nil {
		http.Error(w, `{"error":"session not found"}`, http.StatusNotFound)
		return
	}

	if s.eval == nil {
		if *req.Board < 0 || *req.Board >= board.Boards {
			http.Error(w, `{"error":"board out of range"}`, http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(board.Result{Board: *req.Board, Suggestions: []string{}})
		return
	}

	rows := req.Rows
	if len(req.Labels) > 0 {
		rows = feedback.ParseLabels(req.Labels)
	}
	c, blank := feedback.Extract(rows)

	res, err := s.eval.Evaluate(*req.Board, c, blank)
	if errors.Is(err, board.ErrBoardRange) {
		http.Error(w, `{"error":"board out of range"}`, http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("evaluate board")
		http.Error(w, `{"error":"evaluate_failed"}`, http.StatusInternalServerError)
		return
	}
	sess.Record(r.Context(), res)

	_ = json.NewEncoder(w).Encode(res)
}

type suggestionsRes struct {
	Status string         `json:"status"`
	Data   []board.Result `json:"data"`
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), sessionID(r))
	if err != nil {
		http.Error(w, `{"error":"session not found"}`, http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(suggestionsRes{Status: "suggestions sent", Data: sess.Latest()})
}

// solveReq is a stateless query against the vocabulary. Limit <= 0 returns
// every candidate.
type solveReq struct {
	Green  solver.LetterPositions `json:"green"`
	Yellow solver.LetterPositions `json:"yellow"`
	Grey   solver.LetterPositions `json:"grey"`
	Limit  int                    `json:"limit"`
}

type solveRes struct {
	Count      int      `json:"count"`
	Candidates []string `json:"candidates"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if s.eval == nil {
		_ = json.NewEncoder(w).Encode(solveRes{Count: 0, Candidates: []string{}})
		return
	}
	c := solver.Constraints{
		Green:  lower(req.Green),
		Yellow: lower(req.Yellow),
		Grey:   lower(req.Grey),
	}

	all := s.eval.Candidates(c)
	out := all
	if req.Limit > 0 && len(out) > req.Limit {
		out = out[:req.Limit]
	}
	_ = json.NewEncoder(w).Encode(solveRes{Count: len(all), Candidates: append([]string{}, out...)})
}

// lower normalises client-supplied letters to lowercase.
func lower(lp solver.LetterPositions) solver.LetterPositions {
	out := solver.LetterPositions{}
	for l, ps := range lp {
		for _, p := range ps {
			out.Add(strings.ToLower(l), p)
		}
	}
	return out
}
