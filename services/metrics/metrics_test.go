package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveResult(t *testing.T) {
	m := New()

	m.ObserveResult("LOTTO", "ALERT", 4000000, 3000000, true, 3*time.Second)
	m.ObserveResult("EUROJACKPOT", "UNKNOWN", 0, 30000000, false, 0)

	assert.Equal(t, 4000000.0, testutil.ToFloat64(m.JackpotAmount.WithLabelValues("LOTTO")))
	assert.Equal(t, 3000000.0, testutil.ToFloat64(m.JackpotLimit.WithLabelValues("LOTTO")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TargetStatus.WithLabelValues("LOTTO", "ALERT")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.TargetStatus.WithLabelValues("LOTTO", "OK")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TargetStatus.WithLabelValues("EUROJACKPOT", "UNKNOWN")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ChecksTotal.WithLabelValues("EUROJACKPOT", "UNKNOWN")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AlertsTotal))
}

func TestObserveCycleAndNotification(t *testing.T) {
	m := New()
	finished := time.Date(2026, 1, 4, 9, 0, 0, 0, time.UTC)

	m.ObserveCycle(12*time.Second, finished)
	m.ObserveNotification("telegram", nil)
	m.ObserveNotification("telegram", errors.New("boom"))
	m.ObserveNotificationSkipped("telegram")
	m.ObserveRateLimit()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CyclesTotal))
	assert.Equal(t, float64(finished.Unix()), testutil.ToFloat64(m.LastCycle))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("telegram", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("telegram", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("telegram", "skipped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateLimitBlocks))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveResult("LOTTO", "OK", 1, 2, true, time.Second)
		m.ObserveCycle(time.Second, time.Now())
		m.ObserveNotification("telegram", nil)
		m.ObserveNotificationSkipped("telegram")
		m.ObserveRateLimit()
	})
	assert.Nil(t, m.Registry())
}

func TestServerRoutes(t *testing.T) {
	m := New()
	m.ObserveResult("LOTTO", "OK", 1000000, 3000000, true, time.Second)
	srv := httptest.NewServer(NewServer(0, m).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, strings.Contains(string(body), `jackpotworker_jackpot_amount_euros{game="LOTTO"}`))
	assert.True(t, strings.Contains(string(body), "go_goroutines"))
}
