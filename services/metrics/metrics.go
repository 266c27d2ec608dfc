package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "jackpotworker"

// Metrics holds the worker's collectors on a private registry.
// All methods are safe on a nil receiver so callers never need to check.
type Metrics struct {
	registry *prometheus.Registry

	JackpotAmount   *prometheus.GaugeVec
	JackpotLimit    *prometheus.GaugeVec
	TargetStatus    *prometheus.GaugeVec
	ChecksTotal     *prometheus.CounterVec
	FetchDuration   *prometheus.HistogramVec
	CyclesTotal     prometheus.Counter
	CycleDuration   prometheus.Histogram
	AlertsTotal     prometheus.Counter
	LastCycle       prometheus.Gauge
	Notifications   *prometheus.CounterVec
	RateLimitBlocks prometheus.Counter
}

// Statuses is every value of the status label
var Statuses = []string{"OK", "ALERT", "UNKNOWN"}

// New creates the collectors and registers them with a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		JackpotAmount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "jackpot_amount_euros",
			Help:      "Last extracted jackpot per game",
		}, []string{"game"}),
		JackpotLimit: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "jackpot_limit_euros",
			Help:      "Alert threshold per game",
		}, []string{"game"}),
		TargetStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "target_status",
			Help:      "1 for the status of the last check per game, 0 otherwise",
		}, []string{"game", "status"}),
		ChecksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checks_total",
			Help:      "Checks per game and outcome",
		}, []string{"game", "status"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Time to load and extract one page",
			Buckets:   []float64{1, 2.5, 5, 10, 20, 40, 60, 90},
		}, []string{"game"}),
		CyclesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_total",
			Help:      "Completed check cycles",
		}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cycle_duration_seconds",
			Help:      "Duration of a whole check cycle",
			Buckets:   []float64{5, 10, 30, 60, 120, 300},
		}),
		AlertsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_total",
			Help:      "Games found at or above their threshold",
		}),
		LastCycle: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_cycle_timestamp_seconds",
			Help:      "Unix time of the last completed cycle",
		}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notification attempts per channel and result",
		}, []string{"channel", "result"}),
		RateLimitBlocks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Targets skipped or blocked because of rate limiting",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.JackpotAmount,
		m.JackpotLimit,
		m.TargetStatus,
		m.ChecksTotal,
		m.FetchDuration,
		m.CyclesTotal,
		m.CycleDuration,
		m.AlertsTotal,
		m.LastCycle,
		m.Notifications,
		m.RateLimitBlocks,
	)
	return m
}

// Registry exposes the registry for serving and tests
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveResult records the outcome of one target
func (m *Metrics) ObserveResult(game, status string, amount, limit int64, found bool, fetch time.Duration) {
	if m == nil {
		return
	}
	m.ChecksTotal.WithLabelValues(game, status).Inc()
	m.JackpotLimit.WithLabelValues(game).Set(float64(limit))
	if found {
		m.JackpotAmount.WithLabelValues(game).Set(float64(amount))
	}
	for _, s := range Statuses {
		v := 0.0
		if s == status {
			v = 1
		}
		m.TargetStatus.WithLabelValues(game, s).Set(v)
	}
	if fetch > 0 {
		m.FetchDuration.WithLabelValues(game).Observe(fetch.Seconds())
	}
	if status == "ALERT" {
		m.AlertsTotal.Inc()
	}
}

// ObserveCycle records a finished cycle
func (m *Metrics) ObserveCycle(duration time.Duration, finished time.Time) {
	if m == nil {
		return
	}
	m.CyclesTotal.Inc()
	m.CycleDuration.Observe(duration.Seconds())
	m.LastCycle.Set(float64(finished.Unix()))
}

// ObserveNotification counts one delivery attempt
func (m *Metrics) ObserveNotification(channel string, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.Notifications.WithLabelValues(channel, result).Inc()
}

// ObserveNotificationSkipped counts a channel that had nothing to send with
func (m *Metrics) ObserveNotificationSkipped(channel string) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(channel, "skipped").Inc()
}

// ObserveRateLimit counts a rate-limited target
func (m *Metrics) ObserveRateLimit() {
	if m == nil {
		return
	}
	m.RateLimitBlocks.Inc()
}
