package errors

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheckErrorMessage(t *testing.T) {
	err := NewNetwork("LOTTO", "fetch failed", fmt.Errorf("connection refused"))
	assert.Equal(t, "[network] LOTTO: fetch failed - connection refused", err.Error())

	err = NewRateLimit("LOTTO", 10*time.Second)
	assert.Equal(t, "[rate_limit] LOTTO: rate limited for 10s", err.Error())
}

func TestCheckErrorIsTimeout(t *testing.T) {
	assert.True(t, NewTimeout("LOTTO", time.Minute, nil).IsTimeout())

	wrapped := NewBrowser("LOTTO", "navigation failed", fmt.Errorf("goto: %w", context.DeadlineExceeded))
	assert.True(t, wrapped.IsTimeout())

	assert.False(t, NewParsing("LOTTO", "bad markup", nil).IsTimeout())
}

func TestTypeOf(t *testing.T) {
	err := fmt.Errorf("cycle: %w", NewParsing("EUROJACKPOT", "no document", nil))
	assert.Equal(t, ErrorTypeParsing, TypeOf(err))
	assert.Equal(t, ErrorType(""), TypeOf(fmt.Errorf("plain")))
}

func TestConfigurationMessage(t *testing.T) {
	err := NewConfiguration("invalid TIMEZONE", fmt.Errorf("unknown time zone"))
	assert.Equal(t, "[configuration] invalid TIMEZONE - unknown time zone", err.Error())
}

func TestIsDeadline(t *testing.T) {
	assert.True(t, IsDeadline(fmt.Errorf("goto: %w", context.DeadlineExceeded)))
	assert.True(t, IsDeadline(fmt.Errorf("cycle: %w", NewTimeout("LOTTO", time.Second, nil))))
	assert.False(t, IsDeadline(NewNetwork("LOTTO", "refused", nil)))
	assert.False(t, IsDeadline(nil))
}
