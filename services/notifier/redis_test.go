package notifier

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// This test requires a running Redis instance
// If Redis is not available, the test will be skipped
func TestRedisStream(t *testing.T) {
	ctx := context.Background()
	stream := "test_jackpot_alerts"

	r := NewRedisStream("localhost:6379", 0, stream, 10)
	defer r.Close()
	if err := r.Ping(ctx); err != nil {
		t.Skip("Redis is not available, skipping test")
	}

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 0})
	defer client.Close()
	defer client.Del(ctx, stream)

	fixed := time.Date(2026, 1, 4, 9, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	require.NoError(t, r.Notify(ctx, "<b>Jackpot-hälytys</b>"))

	entries, err := client.XRevRangeN(ctx, stream, "+", "-", 1).Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	decoded, err := base64.StdEncoding.DecodeString(entries[0].Values["b64_alert"].(string))
	require.NoError(t, err)
	assert.Equal(t, "<b>Jackpot-hälytys</b>", string(decoded))
	assert.Equal(t, "2026-01-04T09:00:00Z", entries[0].Values["created_at"])
}
