package crawler

import (
	"fmt"

	"sjsage522/jackpotworker/config"
	"sjsage522/jackpotworker/helpers"
	"sjsage522/jackpotworker/logger"
	"sjsage522/jackpotworker/services/cache"
)

// NewLauncher creates the engine named by cfg.BrowserEngine
func NewLauncher(cfg *config.Config, cacheSvc cache.CacheService) (Launcher, error) {
	switch cfg.BrowserEngine {
	case config.EnginePlaywright, "":
		return &PlaywrightLauncher{ExecutablePath: cfg.ChromePath}, nil
	case config.EngineRod:
		return &RodLauncher{ChromePath: cfg.ChromePath}, nil
	case config.EngineHTTP:
		var guard *cache.RateGuard
		if cacheSvc != nil {
			guard = cache.NewRateGuard(cacheSvc, cfg.BlockTime)
		}
		return &HTTPLauncher{Client: helpers.DefaultClient, Guard: guard}, nil
	}
	return nil, fmt.Errorf("unknown browser engine %q", cfg.BrowserEngine)
}

// NewFetcherFromConfig wires a fetcher for the configured engine
func NewFetcherFromConfig(cfg *config.Config, cacheSvc cache.CacheService) (*Fetcher, error) {
	launcher, err := NewLauncher(cfg, cacheSvc)
	if err != nil {
		return nil, err
	}

	return NewFetcher(launcher, Options{
		NavigationTimeout: cfg.NavigationTimeout,
		SettleDelay:       cfg.SettleDelay,
	}, logger.ForComponent("crawler")), nil
}
