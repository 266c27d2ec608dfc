package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger represents a structured logger
type Logger struct {
	logger zerolog.Logger
}

// Options controls where and how much the logger writes
type Options struct {
	// Level is a zerolog level name; empty falls back to the environment default
	Level string
	// Environment is "production" or anything else (treated as development)
	Environment string
	// FilePath enables an additional JSON log file with rotation
	FilePath string
	// Console is where the human-readable output goes, stdout when nil
	Console io.Writer
}

var (
	// Default is the default logger instance
	Default *Logger
)

// Init initializes the default logger with the given options
func Init(opts Options) {
	level := resolveLevel(opts.Level, opts.Environment)

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(level)

	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.RFC3339,
	}}

	if opts.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0755); err == nil {
			writers = append(writers, &lumberjack.Logger{
				Filename:   opts.FilePath,
				MaxSize:    50,
				MaxBackups: 5,
				MaxAge:     30,
				Compress:   true,
			})
		}
	}

	var output io.Writer = writers[0]
	if len(writers) > 1 {
		output = zerolog.MultiLevelWriter(writers...)
	}

	Default = &Logger{logger: zerolog.New(output).With().Timestamp().Logger()}

	Default.Debug().
		Str("level", level.String()).
		Bool("file", opts.FilePath != "").
		Msg("Logger initialized")
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{logger: zerolog.Nop()}
}

// resolveLevel returns the configured level, or one derived from the environment
func resolveLevel(levelStr, environment string) zerolog.Level {
	if levelStr == "" {
		if environment == "production" {
			return zerolog.InfoLevel
		}
		return zerolog.DebugLevel
	}

	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// WithStr creates a new logger with a single string field
func (l *Logger) WithStr(key, value string) *Logger {
	return &Logger{logger: l.logger.With().Str(key, value).Logger()}
}

// ForTarget narrows l to one lottery target
func (l *Logger) ForTarget(game string) *Logger {
	return l.WithStr("game", game)
}

// Debug returns a debug event
func (l *Logger) Debug() *zerolog.Event {
	return l.logger.Debug()
}

// Info returns an info event
func (l *Logger) Info() *zerolog.Event {
	return l.logger.Info()
}

// Warn returns a warn event
func (l *Logger) Warn() *zerolog.Event {
	return l.logger.Warn()
}

// Error returns an error event
func (l *Logger) Error() *zerolog.Event {
	return l.logger.Error()
}

// Global functions for backward compatibility

func ensure() {
	if Default == nil {
		Init(Options{Level: os.Getenv("LOG_LEVEL"), Environment: os.Getenv("JACKPOT_ENVIRONMENT")})
	}
}

// Info logs an info message
func Info(format string, v ...interface{}) {
	ensure()
	Default.Info().Msgf(format, v...)
}

// Warn logs a warning message
func Warn(format string, v ...interface{}) {
	ensure()
	Default.Warn().Msgf(format, v...)
}

// ForComponent creates a logger for a named component
func ForComponent(component string) *Logger {
	ensure()
	return Default.WithStr("component", component)
}

// LogError is a convenience method for logging errors with context
func LogError(component string, err error, format string, v ...interface{}) {
	ensure()
	msg := fmt.Sprintf(format, v...)
	Default.Error().
		Str("component", component).
		Err(err).
		Msg(msg)
}
