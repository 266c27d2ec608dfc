package notifier

import (
	"context"
	"time"

	"sjsage522/jackpotworker/config"
	"sjsage522/jackpotworker/logger"
	"sjsage522/jackpotworker/pkg/errors"
	"sjsage522/jackpotworker/services/metrics"
)

// Multi fans a message out to every configured channel
type Multi struct {
	notifiers []Notifier
	timeout   time.Duration
	metrics   *metrics.Metrics
	log       *logger.Logger
}

// NewMulti creates a fan-out notifier. Each channel gets its own timeout.
func NewMulti(timeout time.Duration, m *metrics.Metrics, notifiers ...Notifier) *Multi {
	return &Multi{
		notifiers: notifiers,
		timeout:   timeout,
		metrics:   m,
		log:       logger.ForComponent("notifier"),
	}
}

// FromConfig builds the channels enabled in cfg. Telegram is always present
// and turns into a no-op without credentials.
func FromConfig(cfg *config.Config, m *metrics.Metrics) *Multi {
	log := logger.ForComponent("notifier")

	notifiers := []Notifier{NewTelegram(TelegramConfig{
		Token:    cfg.TelegramToken,
		ChatID:   cfg.TelegramChatID,
		Endpoint: cfg.TelegramAPIEndpoint,
		Timeout:  cfg.NotifyTimeout,
	})}

	if cfg.DiscordToken != "" && cfg.DiscordChannelID != "" {
		d, err := NewDiscord(DiscordConfig{
			Token:     cfg.DiscordToken,
			ChannelID: cfg.DiscordChannelID,
			Timeout:   cfg.NotifyTimeout,
		})
		if err != nil {
			log.Warn().Err(err).Msg("Discord disabled")
		} else {
			notifiers = append(notifiers, d)
		}
	}

	if cfg.RedisAddr != "" {
		notifiers = append(notifiers, NewRedisStream(cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream, cfg.RedisStreamMaxLength))
	}

	return NewMulti(cfg.NotifyTimeout, m, notifiers...)
}

// Name implements Notifier
func (n *Multi) Name() string {
	return "multi"
}

// Channels returns the names of the wrapped notifiers
func (n *Multi) Channels() []string {
	names := make([]string, 0, len(n.notifiers))
	for _, child := range n.notifiers {
		names = append(names, child.Name())
	}
	return names
}

// Notify sends text to every channel, one after another. A failing channel
// does not stop the others; all failures are joined.
func (n *Multi) Notify(ctx context.Context, text string) error {
	var errs []error
	for _, child := range n.notifiers {
		err := n.notifyOne(ctx, child, text)
		if c, ok := child.(Configurable); ok && !c.Configured() && err == nil {
			n.metrics.ObserveNotificationSkipped(child.Name())
			continue
		}
		n.metrics.ObserveNotification(child.Name(), err)
		if err != nil {
			n.log.Warn().Err(err).Str("channel", child.Name()).Msg("Notification failed")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (n *Multi) notifyOne(ctx context.Context, child Notifier, text string) (err error) {
	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(errors.ErrorTypeNotification, child.Name(), "panic during send", nil)
		}
	}()
	return child.Notify(ctx, text)
}

// Close releases connections held by the channels
func (n *Multi) Close() error {
	var errs []error
	for _, child := range n.notifiers {
		if c, ok := child.(Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
