package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"sjsage522/jackpotworker/config"
	"sjsage522/jackpotworker/helpers"
	"sjsage522/jackpotworker/internal/app"
	"sjsage522/jackpotworker/logger"
)

func main() {
	// Load environment variables
	godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		once   bool
		games  string
		engine string
	)

	cmd := &cobra.Command{
		Use:           "jackpotworker",
		Short:         "Watch Veikkaus jackpots and alert when they pass a threshold",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			applyFlags(cmd, cfg, once, games, engine)
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "run one full check and exit")
	cmd.Flags().StringVar(&games, "games", "", "comma-separated games to check once, e.g. LOTTO,EUROJACKPOT")
	cmd.Flags().StringVar(&engine, "engine", "", "browser engine: playwright, rod or http")
	return cmd
}

// applyFlags lets explicit flags override the environment
func applyFlags(cmd *cobra.Command, cfg *config.Config, once bool, games, engine string) {
	if cmd.Flags().Changed("once") {
		cfg.RunOnce = once
	}
	if cmd.Flags().Changed("games") {
		cfg.TestGames = helpers.SplitList(games)
	}
	if cmd.Flags().Changed("engine") {
		cfg.BrowserEngine = strings.ToLower(strings.TrimSpace(engine))
	}
}

func run(parent context.Context, cfg *config.Config) error {
	// Initialize logger first
	logger.Init(logger.Options{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		FilePath:    cfg.LogFile,
	})
	log := logger.Default

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("Invalid configuration")
		return err
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("engine", cfg.BrowserEngine).
		Msg("Starting application")

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg, os.Stdout)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize application")
		return err
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Application exited with error")
		return fmt.Errorf("run: %w", err)
	}

	log.Info().Msg("Shutting down gracefully...")
	return nil
}
