// internal/board/session.go
//
// Suggestion aggregation for one observing agent.
//
// A Session keeps the most recent Result of each board. Evaluating the last
// board (index 3) completes a pass and the four results are handed to the
// Publisher; nothing else triggers a delivery. Latest answers the pull-style
// query of a display that asks on demand.

package board

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Publisher delivers a completed pass of suggestions.
type Publisher interface {
	Publish(ctx context.Context, sessionID string, results []Result) error
}

// Session aggregates the latest per-board results.
type Session struct {
	ID string

	mu      sync.Mutex
	results [Boards]*Result

	// deliver serialises completed passes so publishers see them in the
	// order their snapshots were taken.
	deliver sync.Mutex
	pub     Publisher
	obs     Observer
}

// NewSession creates a Session. pub may be nil, in which case completed
// passes are only kept for Latest.
func NewSession(id string, pub Publisher, obs Observer) *Session {
	if obs == nil {
		obs = nopObserver{}
	}
	return &Session{ID: id, pub: pub, obs: obs}
}

// Record stores r and, when r is the last board, publishes all four results.
// Completed passes are published one at a time, in the order their snapshots
// were taken. Delivery errors are logged and never returned.
func (s *Session) Record(ctx context.Context, r Result) {
	if r.Board < 0 || r.Board >= Boards {
		return
	}
	if r.Board == Boards-1 {
		s.deliver.Lock()
		defer s.deliver.Unlock()
	}
	s.mu.Lock()
	cp := r
	cp.Suggestions = append([]string{}, r.Suggestions...)
	s.results[r.Board] = &cp
	var pass []Result
	if r.Board == Boards-1 {
		pass = s.snapshotLocked()
	}
	s.mu.Unlock()

	if pass == nil || s.pub == nil {
		return
	}
	err := s.pub.Publish(ctx, s.ID, pass)
	s.obs.ObserveDelivery(err)
	if err != nil {
		log.Warn().Err(err).Str("session", s.ID).Msg("deliver suggestions")
	}
}

// Latest returns the current results of all four boards, or an empty slice
// if no board has been evaluated yet.
func (s *Session) Latest() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.results {
		if r != nil {
			return s.snapshotLocked()
		}
	}
	return []Result{}
}

// snapshotLocked copies the results; boards never evaluated come back with
// no suggestions. Callers hold s.mu.
func (s *Session) snapshotLocked() []Result {
	out := make([]Result, Boards)
	for i, r := range s.results {
		if r == nil {
			out[i] = Result{Board: i, Suggestions: []string{}}
			continue
		}
		out[i] = Result{Board: i, Suggestions: append([]string{}, r.Suggestions...)}
	}
	return out
}
