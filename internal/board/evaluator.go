// internal/board/evaluator.go
//
// Per-board evaluation.
//
// An Evaluator owns the shared, read-only vocabulary. Every call to Evaluate
// starts again from the full vocabulary with the board's complete accumulated
// constraints, so repeated calls with the same history give the same answer.
// A board with no feedback yet gets a single opening word picked uniformly at
// random instead, without touching the filter.

package board

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/quordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/quordle/apps/go-solver/internal/words"
)

// Boards is the number of boards in a Quordle game.
const Boards = 4

// DefaultLimit is how many suggestions a board gets.
const DefaultLimit = 3

// DefaultOpeners are strong first guesses.
var DefaultOpeners = []string{"crane", "crate", "slant", "trace", "carte", "audio"}

// ErrBoardRange is returned for a board index outside 0..Boards-1.
var ErrBoardRange = errors.New("board index out of range")

// Result is the suggestion list of one board.
type Result struct {
	Board       int      `json:"board"`
	Suggestions []string `json:"suggestions"`
}

// Observer is told about every evaluation and delivery. See internal/metrics.
type Observer interface {
	ObserveEvaluation(board int, opener bool, candidates int)
	ObserveDelivery(err error)
}

type nopObserver struct{}

func (nopObserver) ObserveEvaluation(int, bool, int) {}
func (nopObserver) ObserveDelivery(error)            {}

// Evaluator produces suggestions for a board from its constraints.
type Evaluator struct {
	vocab   *words.Vocabulary
	all     []string
	openers []string
	limit   int
	filter  solver.Options
	intn    func(n int) int
	obs     Observer
}

// Option customises an Evaluator.
type Option func(*Evaluator)

// WithOpeners replaces the opening-word list. An empty list is ignored.
func WithOpeners(ws []string) Option {
	return func(e *Evaluator) {
		if len(ws) > 0 {
			e.openers = append([]string(nil), ws...)
		}
	}
}

// WithLimit sets the number of suggestions per board (default 3).
func WithLimit(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.limit = n
		}
	}
}

// WithRand replaces the random source used to pick an opener.
// intn must return a value in [0, n).
func WithRand(intn func(n int) int) Option {
	return func(e *Evaluator) {
		if intn != nil {
			e.intn = intn
		}
	}
}

// WithFilterOptions selects the filter's grey mode.
func WithFilterOptions(o solver.Options) Option {
	return func(e *Evaluator) { e.filter = o }
}

// WithObserver attaches an Observer.
func WithObserver(o Observer) Option {
	return func(e *Evaluator) {
		if o != nil {
			e.obs = o
		}
	}
}

// NewEvaluator builds an Evaluator over vocab.
func NewEvaluator(vocab *words.Vocabulary, opts ...Option) *Evaluator {
	e := &Evaluator{
		vocab:   vocab,
		all:     vocab.Words(),
		openers: append([]string(nil), DefaultOpeners...),
		limit:   DefaultLimit,
		intn:    cryptoIntn,
		obs:     nopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Vocabulary returns the vocabulary the evaluator filters.
func (e *Evaluator) Vocabulary() *words.Vocabulary { return e.vocab }

// Openers returns a copy of the opening-word list.
func (e *Evaluator) Openers() []string { return append([]string(nil), e.openers...) }

// Evaluate returns the suggestions for board. When blank is true the board has
// no feedback yet and one random opener is returned.
func (e *Evaluator) Evaluate(board int, c solver.Constraints, blank bool) (Result, error) {
	if board < 0 || board >= Boards {
		return Result{}, fmt.Errorf("%w: %d", ErrBoardRange, board)
	}

	if blank {
		w := e.openers[e.intn(len(e.openers))]
		log.Debug().Int("board", board).Str("opener", w).Msg("no guesses yet, suggesting opener")
		e.obs.ObserveEvaluation(board, true, 1)
		return Result{Board: board, Suggestions: []string{w}}, nil
	}

	candidates := e.Candidates(c)
	n := len(candidates)
	if n > e.limit {
		n = e.limit
	}
	log.Debug().
		Int("board", board).
		Int("candidates", len(candidates)).
		Strs("suggestions", candidates[:n]).
		Msg("board evaluated")
	e.obs.ObserveEvaluation(board, false, len(candidates))
	return Result{Board: board, Suggestions: append([]string{}, candidates[:n]...)}, nil
}

// Candidates returns every vocabulary word consistent with c, untruncated.
func (e *Evaluator) Candidates(c solver.Constraints) []string {
	return solver.FilterWith(e.all, c, e.filter)
}

// cryptoIntn returns a uniform int in [0, n) from crypto/rand.
func cryptoIntn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}
