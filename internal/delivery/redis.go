package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/robalobadob/quordle/apps/go-solver/internal/board"
)

// ErrNoSnapshot is returned by Latest when nothing was published for a session.
var ErrNoSnapshot = errors.New("no suggestions published")

// RedisPublisher publishes passes on a Redis channel and stores the latest
// snapshot of each session under prefix+sessionID.
type RedisPublisher struct {
	client  *backend.Client
	channel string
	prefix  string
	ttl     time.Duration
}

// RedisOption customises a RedisPublisher.
type RedisOption func(*RedisPublisher)

// WithChannel sets the pub/sub channel.
func WithChannel(ch string) RedisOption {
	return func(p *RedisPublisher) {
		if ch != "" {
			p.channel = ch
		}
	}
}

// WithPrefix sets the snapshot key prefix.
func WithPrefix(prefix string) RedisOption {
	return func(p *RedisPublisher) { p.prefix = prefix }
}

// WithTTL sets the snapshot expiry. Zero keeps snapshots forever.
func WithTTL(ttl time.Duration) RedisOption {
	return func(p *RedisPublisher) { p.ttl = ttl }
}

// NewRedisPublisher connects to addr.
func NewRedisPublisher(addr, password string, db int, opts ...RedisOption) *RedisPublisher {
	rdb := backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisPublisherFromClient(rdb, opts...)
}

// NewRedisPublisherFromClient wraps an existing client.
func NewRedisPublisherFromClient(client *backend.Client, opts ...RedisOption) *RedisPublisher {
	p := &RedisPublisher{
		client:  client,
		channel: "quordle:suggestions",
		prefix:  "quordle:latest:",
		ttl:     time.Hour,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Channel returns the pub/sub channel name.
func (p *RedisPublisher) Channel() string { return p.channel }

func (p *RedisPublisher) Publish(ctx context.Context, sessionID string, results []board.Result) error {
	data, err := json.Marshal(Message{SessionID: sessionID, Data: results})
	if err != nil {
		return fmt.Errorf("failed to marshal suggestions: %w", err)
	}

	pipe := p.client.TxPipeline()
	pipe.Set(ctx, p.prefix+sessionID, data, p.ttl)
	pipe.Publish(ctx, p.channel, data)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish to redis: %w", err)
	}
	return nil
}

// Latest reads back the last snapshot published for sessionID.
func (p *RedisPublisher) Latest(ctx context.Context, sessionID string) ([]board.Result, error) {
	val, err := p.client.Get(ctx, p.prefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	var msg Message
	if err := json.Unmarshal(val, &msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return msg.Data, nil
}

// Close closes the underlying client.
func (p *RedisPublisher) Close() error { return p.client.Close() }
