package checker

import (
	"fmt"
	"html"
	"strings"
	"time"

	"sjsage522/jackpotworker/helpers"
)

// Status is the classification of one target in a cycle
type Status string

const (
	StatusOK      Status = "OK"
	StatusAlert   Status = "ALERT"
	StatusUnknown Status = "UNKNOWN"
)

// Classify compares an amount against its threshold. Reaching the limit alerts.
func Classify(amount int64, found bool, limit int64) Status {
	switch {
	case !found:
		return StatusUnknown
	case amount >= limit:
		return StatusAlert
	default:
		return StatusOK
	}
}

// Result is the per-target line of a report
type Result struct {
	Game   string
	Amount int64
	Found  bool
	Limit  int64
	URL    string
	Status Status
	Err    error
}

// Alert is a target at or above its threshold
type Alert struct {
	Game   string
	Amount int64
	Limit  int64
	URL    string
}

// Report is the outcome of one cycle
type Report struct {
	CycleID   string
	CheckedAt time.Time
	Results   []Result
	Alerts    []Alert
}

// Text renders the console report
func (r *Report) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Veikkaus jackpot-tarkistus %s", r.CheckedAt.Format("2006-01-02 15:04 MST"))
	for _, res := range r.Results {
		b.WriteString("\n")
		if !res.Found {
			fmt.Fprintf(&b, "• %s: ei lukemaa — %s [%s]", res.Game, res.URL, res.Status)
			continue
		}
		fmt.Fprintf(&b, "• %s: %s (raja %s) [%s]",
			res.Game, helpers.FormatEuros(res.Amount), helpers.FormatEuros(res.Limit), res.Status)
	}
	return b.String()
}

// AlertMessage renders the HTML notification payload, empty without alerts
func (r *Report) AlertMessage() string {
	if len(r.Alerts) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("<b>Jackpot-hälytys</b>")
	for _, a := range r.Alerts {
		fmt.Fprintf(&b, "\n• <b>%s</b>: %s (raja %s)\n%s",
			html.EscapeString(a.Game),
			html.EscapeString(helpers.FormatEuros(a.Amount)),
			html.EscapeString(helpers.FormatEuros(a.Limit)),
			html.EscapeString(a.URL))
	}
	return b.String()
}

// HasAlerts reports whether a notification should be sent
func (r *Report) HasAlerts() bool {
	return len(r.Alerts) > 0
}

// Count returns how many results have status s
func (r *Report) Count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}
