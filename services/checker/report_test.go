package checker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, StatusUnknown, Classify(0, false, 3000000))
	assert.Equal(t, StatusUnknown, Classify(9000000, false, 3000000))
	assert.Equal(t, StatusOK, Classify(2999999, true, 3000000))
	assert.Equal(t, StatusAlert, Classify(3000000, true, 3000000))
	assert.Equal(t, StatusAlert, Classify(3000001, true, 3000000))
}

func sampleReport(t *testing.T) *Report {
	loc, err := time.LoadLocation("Europe/Helsinki")
	if err != nil {
		t.Skip("tzdata not available")
	}
	return &Report{
		CheckedAt: time.Date(2026, 1, 4, 9, 0, 0, 0, loc),
		Results: []Result{
			{Game: "LOTTO", Amount: 3000000, Found: true, Limit: 3000000, URL: "https://www.veikkaus.fi/fi/lotto", Status: StatusAlert},
			{Game: "VIKINGLOTTO", Amount: 2500000, Found: true, Limit: 5000000, URL: "https://www.veikkaus.fi/fi/vikinglotto", Status: StatusOK},
			{Game: "EUROJACKPOT", Limit: 30000000, URL: "https://www.veikkaus.fi/fi/eurojackpot", Status: StatusUnknown},
		},
		Alerts: []Alert{
			{Game: "LOTTO", Amount: 3000000, Limit: 3000000, URL: "https://www.veikkaus.fi/fi/lotto"},
		},
	}
}

func TestReportText(t *testing.T) {
	want := "Veikkaus jackpot-tarkistus 2026-01-04 09:00 EET\n" +
		"• LOTTO: 3 000 000 € (raja 3 000 000 €) [ALERT]\n" +
		"• VIKINGLOTTO: 2 500 000 € (raja 5 000 000 €) [OK]\n" +
		"• EUROJACKPOT: ei lukemaa — https://www.veikkaus.fi/fi/eurojackpot [UNKNOWN]"
	assert.Equal(t, want, sampleReport(t).Text())
}

func TestReportAlertMessage(t *testing.T) {
	r := sampleReport(t)
	want := "<b>Jackpot-hälytys</b>\n" +
		"• <b>LOTTO</b>: 3 000 000 € (raja 3 000 000 €)\n" +
		"https://www.veikkaus.fi/fi/lotto"
	assert.Equal(t, want, r.AlertMessage())
	assert.True(t, r.HasAlerts())
	assert.Equal(t, 1, r.Count(StatusOK))
	assert.Equal(t, 1, r.Count(StatusUnknown))
}

func TestReportAlertMessageEscapes(t *testing.T) {
	r := &Report{Alerts: []Alert{{Game: "<KENO>", Amount: 1, Limit: 1, URL: "https://example.com/?a=1&b=2"}}}
	assert.Equal(t,
		"<b>Jackpot-hälytys</b>\n• <b>&lt;KENO&gt;</b>: 1 € (raja 1 €)\nhttps://example.com/?a=1&amp;b=2",
		r.AlertMessage())
}

func TestReportWithoutAlerts(t *testing.T) {
	r := &Report{CheckedAt: time.Date(2026, 1, 4, 9, 0, 0, 0, time.UTC)}
	assert.Empty(t, r.AlertMessage())
	assert.False(t, r.HasAlerts())
	assert.Equal(t, "Veikkaus jackpot-tarkistus 2026-01-04 09:00 UTC", r.Text())
}
