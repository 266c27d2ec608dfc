package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, resolveLevel("", "development"))
	assert.Equal(t, zerolog.InfoLevel, resolveLevel("", "production"))
	assert.Equal(t, zerolog.WarnLevel, resolveLevel("warn", "development"))
	assert.Equal(t, zerolog.InfoLevel, resolveLevel("not-a-level", ""))
}

func TestInitWritesConsoleAndFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "logs", "jackpot.log")
	var console bytes.Buffer

	Init(Options{Level: "info", FilePath: logPath, Console: &console})
	defer func() { Default = nil }()

	ForComponent("checker").ForTarget("LOTTO").Info().Int64("amount", 3000000).Msg("Jackpot extracted")

	assert.Contains(t, console.String(), "Jackpot extracted")
	assert.Contains(t, console.String(), "LOTTO")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"game":"LOTTO"`)
	assert.Contains(t, string(data), `"amount":3000000`)
}

func TestNop(t *testing.T) {
	l := Nop()
	assert.NotPanics(t, func() {
		l.Info().Msg("discarded")
		l.ForTarget("LOTTO").Warn().Msg("discarded")
	})
}
