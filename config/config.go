package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"sjsage522/jackpotworker/helpers"
	"sjsage522/jackpotworker/pkg/errors"
)

// Browser engines understood by the crawler factory
const (
	EnginePlaywright = "playwright"
	EngineRod        = "rod"
	EngineHTTP       = "http"
)

// Config represents the application configuration
type Config struct {
	// Telegram configuration
	TelegramToken       string
	TelegramChatID      string
	TelegramAPIEndpoint string

	// Discord configuration
	DiscordToken     string
	DiscordChannelID string

	// Redis configuration
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamMaxLength int64

	// Memcache configuration
	MemcacheAddr string
	BlockTime    time.Duration

	// Thresholds in euros
	LimitLotto       int64
	LimitVikinglotto int64
	LimitEurojackpot int64

	// Schedule
	Timezone        string
	SundayHour      int
	WednesdayHour   int
	ThursdayHour    int
	RunOnce         bool
	TestGames       []string
	InitialRun      bool
	InitialRunDelay time.Duration

	// Crawler configuration
	BrowserEngine     string
	ChromePath        string
	NavigationTimeout time.Duration
	SettleDelay       time.Duration
	NotifyTimeout     time.Duration
	TargetsFile       string

	// Observability
	LogLevel    string
	LogFile     string
	MetricsPort int

	// Environment
	Environment string
}

func defaults(v *viper.Viper) {
	v.SetDefault("telegram_bot_token", "")
	v.SetDefault("telegram_chat_id", "")
	v.SetDefault("telegram_api_endpoint", "")
	v.SetDefault("discord_token", "")
	v.SetDefault("discord_channel_id", "")
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_stream", "jackpot:alerts")
	v.SetDefault("redis_stream_max_length", 1000)
	v.SetDefault("memcache_addr", "")
	v.SetDefault("block_time_seconds", 600)
	v.SetDefault("limit_lotto", 3000000)
	v.SetDefault("limit_vikinglotto", 5000000)
	v.SetDefault("limit_eurojackpot", 30000000)
	v.SetDefault("timezone", "Europe/Helsinki")
	v.SetDefault("cron_sun_hour", 9)
	v.SetDefault("cron_wed_hour", 18)
	v.SetDefault("cron_thu_hour", 18)
	v.SetDefault("run_once", false)
	v.SetDefault("test_games", "")
	v.SetDefault("initial_run", true)
	v.SetDefault("initial_run_delay_seconds", 5)
	v.SetDefault("browser_engine", EnginePlaywright)
	v.SetDefault("chrome_path", "")
	v.SetDefault("navigation_timeout_seconds", 60)
	v.SetDefault("settle_delay_ms", 2000)
	v.SetDefault("notify_timeout_seconds", 20)
	v.SetDefault("targets_file", "")
	v.SetDefault("log_level", "")
	v.SetDefault("log_file", "")
	v.SetDefault("metrics_port", 0)
	v.SetDefault("jackpot_environment", "development")
}

// Load reads the configuration from environment variables with defaults
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()
	defaults(v)

	return &Config{
		TelegramToken:        strings.TrimSpace(v.GetString("telegram_bot_token")),
		TelegramChatID:       strings.TrimSpace(v.GetString("telegram_chat_id")),
		TelegramAPIEndpoint:  v.GetString("telegram_api_endpoint"),
		DiscordToken:         strings.TrimSpace(v.GetString("discord_token")),
		DiscordChannelID:     strings.TrimSpace(v.GetString("discord_channel_id")),
		RedisAddr:            v.GetString("redis_addr"),
		RedisDB:              v.GetInt("redis_db"),
		RedisStream:          v.GetString("redis_stream"),
		RedisStreamMaxLength: v.GetInt64("redis_stream_max_length"),
		MemcacheAddr:         v.GetString("memcache_addr"),
		BlockTime:            time.Duration(v.GetInt("block_time_seconds")) * time.Second,
		LimitLotto:           v.GetInt64("limit_lotto"),
		LimitVikinglotto:     v.GetInt64("limit_vikinglotto"),
		LimitEurojackpot:     v.GetInt64("limit_eurojackpot"),
		Timezone:             v.GetString("timezone"),
		SundayHour:           v.GetInt("cron_sun_hour"),
		WednesdayHour:        v.GetInt("cron_wed_hour"),
		ThursdayHour:         v.GetInt("cron_thu_hour"),
		RunOnce:              v.GetBool("run_once"),
		TestGames:            helpers.SplitList(v.GetString("test_games")),
		InitialRun:           v.GetBool("initial_run"),
		InitialRunDelay:      time.Duration(v.GetInt("initial_run_delay_seconds")) * time.Second,
		BrowserEngine:        strings.ToLower(strings.TrimSpace(v.GetString("browser_engine"))),
		ChromePath:           v.GetString("chrome_path"),
		NavigationTimeout:    time.Duration(v.GetInt("navigation_timeout_seconds")) * time.Second,
		SettleDelay:          time.Duration(v.GetInt("settle_delay_ms")) * time.Millisecond,
		NotifyTimeout:        time.Duration(v.GetInt("notify_timeout_seconds")) * time.Second,
		TargetsFile:          v.GetString("targets_file"),
		LogLevel:             v.GetString("log_level"),
		LogFile:              v.GetString("log_file"),
		MetricsPort:          v.GetInt("metrics_port"),
		Environment:          v.GetString("jackpot_environment"),
	}
}

// Validate reports the first invalid setting as a configuration error
func (c *Config) Validate() error {
	limits := map[string]int64{
		"LIMIT_LOTTO":       c.LimitLotto,
		"LIMIT_VIKINGLOTTO": c.LimitVikinglotto,
		"LIMIT_EUROJACKPOT": c.LimitEurojackpot,
	}
	for _, key := range []string{"LIMIT_LOTTO", "LIMIT_VIKINGLOTTO", "LIMIT_EUROJACKPOT"} {
		if limits[key] <= 0 {
			return errors.NewConfiguration(fmt.Sprintf("%s must be positive, got %d", key, limits[key]), nil)
		}
	}

	hours := map[string]int{
		"CRON_SUN_HOUR": c.SundayHour,
		"CRON_WED_HOUR": c.WednesdayHour,
		"CRON_THU_HOUR": c.ThursdayHour,
	}
	for _, key := range []string{"CRON_SUN_HOUR", "CRON_WED_HOUR", "CRON_THU_HOUR"} {
		if h := hours[key]; h < 0 || h > 23 {
			return errors.NewConfiguration(fmt.Sprintf("%s must be between 0 and 23, got %d", key, h), nil)
		}
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	switch c.BrowserEngine {
	case EnginePlaywright, EngineRod, EngineHTTP:
	default:
		return errors.NewConfiguration(fmt.Sprintf("unknown BROWSER_ENGINE %q", c.BrowserEngine), nil)
	}

	if c.NavigationTimeout <= 0 || c.NotifyTimeout <= 0 {
		return errors.NewConfiguration("timeouts must be positive", nil)
	}
	if c.SettleDelay < 0 || c.InitialRunDelay < 0 || c.BlockTime < 0 {
		return errors.NewConfiguration("delays must not be negative", nil)
	}
	return nil
}

// Location resolves the configured time zone
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, errors.NewConfiguration(fmt.Sprintf("invalid TIMEZONE %q", c.Timezone), err)
	}
	return loc, nil
}

// IsProduction reports whether the worker runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
