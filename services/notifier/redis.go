package notifier

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/redis/go-redis/v9"

	"sjsage522/jackpotworker/pkg/errors"
)

// RedisStream publishes alerts to a Redis stream for other consumers
type RedisStream struct {
	client    *redis.Client
	stream    string
	maxLength int64
	now       func() time.Time
}

// NewRedisStream creates a Redis stream notifier
func NewRedisStream(addr string, db int, stream string, maxLength int64) *RedisStream {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	return &RedisStream{
		client:    client,
		stream:    stream,
		maxLength: maxLength,
		now:       time.Now,
	}
}

// Name implements Notifier
func (r *RedisStream) Name() string {
	return "redis"
}

// Notify publishes the message to the stream.
// The message is base64 encoded before publishing.
func (r *RedisStream) Notify(ctx context.Context, text string) error {
	encoded := base64.StdEncoding.EncodeToString([]byte(text))

	args := &redis.XAddArgs{
		Stream: r.stream,
		Values: map[string]interface{}{
			"b64_alert":  encoded,
			"created_at": r.now().UTC().Format(time.RFC3339),
		},
	}
	if r.maxLength > 0 {
		args.MaxLen = r.maxLength
		args.Approx = true
	}

	if err := r.client.XAdd(ctx, args).Err(); err != nil {
		return errors.NewNotification(r.Name(), "xadd failed", err)
	}
	return nil
}

// Ping checks the connection
func (r *RedisStream) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (r *RedisStream) Close() error {
	return r.client.Close()
}
