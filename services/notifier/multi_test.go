package notifier

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sjsage522/jackpotworker/config"
	"sjsage522/jackpotworker/services/metrics"
)

type recordingNotifier struct {
	mu       sync.Mutex
	name     string
	err      error
	panics   bool
	messages []string
	deadline bool
	closed   bool
}

func (r *recordingNotifier) Name() string { return r.name }

func (r *recordingNotifier) Notify(ctx context.Context, text string) error {
	if r.panics {
		panic("boom")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, r.deadline = ctx.Deadline()
	r.messages = append(r.messages, text)
	return r.err
}

func (r *recordingNotifier) Close() error {
	r.closed = true
	return nil
}

func TestMultiFansOut(t *testing.T) {
	m := metrics.New()
	failing := &recordingNotifier{name: "discord", err: errors.New("forbidden")}
	ok := &recordingNotifier{name: "telegram"}
	crashing := &recordingNotifier{name: "redis", panics: true}

	multi := NewMulti(time.Second, m, failing, ok, crashing)
	err := multi.Notify(context.Background(), "alert")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forbidden")
	assert.Contains(t, err.Error(), "panic during send")

	assert.Equal(t, []string{"alert"}, failing.messages)
	assert.Equal(t, []string{"alert"}, ok.messages)
	assert.True(t, ok.deadline)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("telegram", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("discord", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("redis", "failure")))
}

func TestMultiCountsUnconfiguredTelegramAsSkipped(t *testing.T) {
	m := metrics.New()
	tg := NewTelegram(TelegramConfig{})
	redisStub := &recordingNotifier{name: "redis"}

	multi := NewMulti(time.Second, m, tg, redisStub)
	require.NoError(t, multi.Notify(context.Background(), "alert"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("telegram", "skipped")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Notifications.WithLabelValues("telegram", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("redis", "success")))
}

func TestMultiAllSucceed(t *testing.T) {
	a, b := &recordingNotifier{name: "a"}, &recordingNotifier{name: "b"}
	multi := NewMulti(0, nil, a, b)

	assert.NoError(t, multi.Notify(context.Background(), "x"))
	assert.Equal(t, []string{"a", "b"}, multi.Channels())
	assert.Equal(t, "multi", multi.Name())

	assert.NoError(t, multi.Close())
	assert.True(t, a.closed)
	assert.True(t, b.closed)
}

func TestFromConfig(t *testing.T) {
	cfg := config.Load()
	cfg.TelegramToken, cfg.TelegramChatID = "", ""
	cfg.DiscordToken, cfg.DiscordChannelID = "", ""
	cfg.RedisAddr = ""
	assert.Equal(t, []string{"telegram"}, FromConfig(cfg, nil).Channels())

	cfg.DiscordToken, cfg.DiscordChannelID = "token", "123"
	cfg.RedisAddr = "localhost:6379"
	multi := FromConfig(cfg, nil)
	defer multi.Close()
	assert.Equal(t, []string{"telegram", "discord", "redis"}, multi.Channels())
}

func TestToMarkdown(t *testing.T) {
	in := "<b>Jackpot-hälytys</b>\n• <b>LOTTO &amp; CO</b>: 3 000 000 € (raja 3 000 000 €)\nhttps://www.veikkaus.fi/fi/lotto"
	want := "**Jackpot-hälytys**\n• **LOTTO & CO**: 3 000 000 € (raja 3 000 000 €)\nhttps://www.veikkaus.fi/fi/lotto"
	assert.Equal(t, want, ToMarkdown(in))
}
