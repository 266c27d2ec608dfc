package app

import (
	"context"
	"time"

	"sjsage522/jackpotworker/config"
	"sjsage522/jackpotworker/logger"
	"sjsage522/jackpotworker/services/cache"
	"sjsage522/jackpotworker/services/metrics"
	"sjsage522/jackpotworker/services/notifier"
)

// Services holds all the initialized services
type Services struct {
	Cache    cache.CacheService
	Notifier *notifier.Multi
	Metrics  *metrics.Metrics
	Server   *metrics.Server
}

// Cleanup releases all services
func (s *Services) Cleanup() {
	if s.Server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Server.Shutdown(ctx); err != nil {
			logger.LogError("app", err, "Failed to stop metrics server")
		}
	}
	if s.Notifier != nil {
		if err := s.Notifier.Close(); err != nil {
			logger.LogError("app", err, "Failed to close notifiers")
		}
	}
}

// initializeServices wires cache, metrics and notifiers from cfg
func initializeServices(cfg *config.Config) *Services {
	services := &Services{Metrics: metrics.New()}

	if cfg.MemcacheAddr != "" {
		mc := cache.NewMemcacheService(cfg.MemcacheAddr)
		if err := mc.Ping(); err != nil {
			logger.ForComponent("app").Warn().Err(err).Str("addr", cfg.MemcacheAddr).
				Msg("Memcache unreachable; using in-process rate limit cache")
			services.Cache = cache.NewMemoryService()
		} else {
			logger.Info("Connected to Memcache at %s", cfg.MemcacheAddr)
			services.Cache = mc
		}
	} else {
		services.Cache = cache.NewMemoryService()
	}

	services.Notifier = notifier.FromConfig(cfg, services.Metrics)
	logger.ForComponent("app").Info().Strs("channels", services.Notifier.Channels()).Msg("Notifiers ready")

	return services
}
