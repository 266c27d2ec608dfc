package notifier

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"sjsage522/jackpotworker/logger"
	"sjsage522/jackpotworker/pkg/errors"
)

// TelegramConfig holds the bot credentials and delivery limits
type TelegramConfig struct {
	Token  string
	ChatID string
	// Endpoint is a Bot API format string, tgbotapi.APIEndpoint when empty
	Endpoint string
	Timeout  time.Duration
}

// Telegram sends alerts with the Bot API sendMessage method
type Telegram struct {
	cfg TelegramConfig
	bot *tgbotapi.BotAPI
	log *logger.Logger
}

// NewTelegram creates a Telegram notifier. With missing credentials it is a no-op.
func NewTelegram(cfg TelegramConfig) *Telegram {
	t := &Telegram{cfg: cfg, log: logger.ForComponent("telegram")}
	if !t.Configured() {
		return t
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}

	// built by hand so no getMe round trip happens at startup
	t.bot = &tgbotapi.BotAPI{
		Token:  cfg.Token,
		Client: &http.Client{Timeout: timeout},
		Buffer: 100,
	}
	t.bot.SetAPIEndpoint(endpoint)
	return t
}

// Name implements Notifier
func (t *Telegram) Name() string {
	return "telegram"
}

// Configured reports whether both token and chat id are set
func (t *Telegram) Configured() bool {
	return t.cfg.Token != "" && t.cfg.ChatID != ""
}

// Notify implements Notifier
func (t *Telegram) Notify(ctx context.Context, text string) error {
	if !t.Configured() {
		t.log.Info().Msg("Telegram not configured; skipping notification")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return errors.NewNotification(t.Name(), "cancelled before send", err)
	}

	msg := newMessage(t.cfg.ChatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := t.bot.Send(msg); err != nil {
		return errors.NewNotification(t.Name(), "sendMessage failed", err)
	}
	t.log.Debug().Str("chat_id", t.cfg.ChatID).Msg("Notification sent")
	return nil
}

// newMessage accepts numeric chat ids and @channel names
func newMessage(chatID, text string) tgbotapi.MessageConfig {
	if id, err := strconv.ParseInt(chatID, 10, 64); err == nil {
		return tgbotapi.NewMessage(id, text)
	}
	if !strings.HasPrefix(chatID, "@") {
		chatID = "@" + chatID
	}
	return tgbotapi.NewMessageToChannel(chatID, text)
}
