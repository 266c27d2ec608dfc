package notifier

import (
	"context"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"sjsage522/jackpotworker/logger"
	"sjsage522/jackpotworker/pkg/errors"
)

// DiscordConfig holds the bot token and the target channel
type DiscordConfig struct {
	Token     string
	ChannelID string
	Timeout   time.Duration
}

// Discord posts alerts to a channel through the REST API. No gateway
// connection is opened.
type Discord struct {
	cfg     DiscordConfig
	session *discordgo.Session
	log     *logger.Logger
}

// NewDiscord creates a Discord notifier
func NewDiscord(cfg DiscordConfig) (*Discord, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, errors.NewConfiguration("could not create discord session", err)
	}
	if cfg.Timeout > 0 {
		session.Client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Discord{cfg: cfg, session: session, log: logger.ForComponent("discord")}, nil
}

// Name implements Notifier
func (d *Discord) Name() string {
	return "discord"
}

// Notify implements Notifier
func (d *Discord) Notify(ctx context.Context, text string) error {
	if _, err := d.session.ChannelMessageSend(d.cfg.ChannelID, ToMarkdown(text), discordgo.WithContext(ctx)); err != nil {
		return errors.NewNotification(d.Name(), "channel message failed", err)
	}
	d.log.Debug().Str("channel_id", d.cfg.ChannelID).Msg("Notification sent")
	return nil
}

var markdownReplacer = strings.NewReplacer("<b>", "**", "</b>", "**", "<i>", "*", "</i>", "*")

// ToMarkdown converts the alert HTML subset to Discord markdown
func ToMarkdown(text string) string {
	return html.UnescapeString(markdownReplacer.Replace(text))
}
