// Package delivery carries completed suggestion passes to whoever displays them.
//
// Every publisher implements board.Publisher. LogPublisher writes a structured
// log line, RedisPublisher pushes the pass onto a pub/sub channel and keeps the
// latest snapshot per session, and Fanout sends to several at once.
package delivery

import (
	"context"
	"errors"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/quordle/apps/go-solver/internal/board"
)

// Message is the wire form of a completed pass.
type Message struct {
	SessionID string         `json:"sessionId"`
	Data      []board.Result `json:"data"`
}

// LogPublisher logs every pass at info level.
type LogPublisher struct {
	logger zerolog.Logger
}

// NewLogPublisher uses the global zerolog logger.
func NewLogPublisher() *LogPublisher {
	return &LogPublisher{logger: log.Logger}
}

// NewLogPublisherWith uses l instead of the global logger.
func NewLogPublisherWith(l zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: l}
}

func (p *LogPublisher) Publish(_ context.Context, sessionID string, results []board.Result) error {
	ev := p.logger.Info().Str("session", sessionID)
	for _, r := range results {
		ev = ev.Strs(boardKey(r.Board), r.Suggestions)
	}
	ev.Msg("suggestions ready")
	return nil
}

func boardKey(i int) string {
	return "board" + strconv.Itoa(i)
}

type fanout []board.Publisher

// Fanout publishes to every non-nil publisher and joins their errors.
func Fanout(ps ...board.Publisher) board.Publisher {
	out := make(fanout, 0, len(ps))
	for _, p := range ps {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (f fanout) Publish(ctx context.Context, sessionID string, results []board.Result) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, sessionID, results); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
