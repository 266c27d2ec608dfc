package jackpot

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDocument struct {
	texts   map[string][]string
	html    string
	htmlErr error
	queried []string
}

func (f *fakeDocument) Texts(selector string) ([]string, error) {
	f.queried = append(f.queried, selector)
	if selector == "[[bad" {
		return nil, errors.New("invalid selector")
	}
	return f.texts[selector], nil
}

func (f *fakeDocument) HTML() (string, error) {
	return f.html, f.htmlErr
}

var defaultHints = Hints{
	Selectors: []string{".jackpot", "[class*='jackpot']"},
	Keywords:  []string{"Jättipotti", "jackpot"},
}

func TestExtractSelectorWins(t *testing.T) {
	doc := &fakeDocument{
		texts: map[string][]string{
			".jackpot":           {"Jättipotti 7 000 000 €"},
			"[class*='jackpot']": {"Ennakko 9 000 000 €", "Rivihinta 1 €"},
		},
		html: `<p>Jättipotti 1 000 000 €</p><p>50 000 000 €</p>`,
	}

	got, err := Extract(doc, defaultHints)
	require.NoError(t, err)
	assert.Equal(t, Extraction{Amount: 9000000, Found: true, Tier: TierSelector}, got)
	assert.Equal(t, []string{".jackpot", "[class*='jackpot']"}, doc.queried)
}

func TestExtractSelectorIgnoresSmallAmounts(t *testing.T) {
	doc := &fakeDocument{
		texts: map[string][]string{".jackpot": {"Hinta 1 €", "99 999 €"}},
		html:  `<div>Jättipotti 3 000 000 €</div>`,
	}

	got, err := Extract(doc, defaultHints)
	require.NoError(t, err)
	assert.Equal(t, TierKeyword, got.Tier)
	assert.Equal(t, int64(3000000), got.Amount)
}

func TestExtractSkipsBrokenSelectors(t *testing.T) {
	doc := &fakeDocument{
		texts: map[string][]string{".ok": {"5 000 000 €"}},
	}

	got, err := Extract(doc, Hints{Selectors: []string{"[[bad", ".ok"}})
	require.NoError(t, err)
	assert.Equal(t, int64(5000000), got.Amount)
	assert.Equal(t, TierSelector, got.Tier)
}

func TestExtractKeywordProximity(t *testing.T) {
	far := strings.Repeat("x", KeywordWindow+10)
	html := `<div>Jättipotti 3 000 000 €</div>` + far + `<div>Mainos 80 000 000 €</div>`

	doc, err := ParseHTML(html)
	require.NoError(t, err)

	got, err := Extract(doc, Hints{Keywords: []string{"Jättipotti"}})
	require.NoError(t, err)
	assert.Equal(t, Extraction{Amount: 3000000, Found: true, Tier: TierKeyword}, got)
}

func TestExtractKeywordWindowCountsCharacters(t *testing.T) {
	// 300 two-byte letters sit inside the window even though they span 600 bytes
	filler := strings.Repeat("ä", 300)
	doc := &fakeDocument{html: `Jättipotti` + filler + ` 3 000 000 €` + strings.Repeat("x", 2000) + `Mainos 80 000 000 €`}

	got, err := Extract(doc, Hints{Keywords: []string{"Jättipotti"}})
	require.NoError(t, err)
	assert.Equal(t, Extraction{Amount: 3000000, Found: true, Tier: TierKeyword}, got)
}

func TestExtractKeywordWindowBeforeHit(t *testing.T) {
	// the figure precedes the keyword by 480 multi-byte characters
	doc := &fakeDocument{html: `4 000 000 €` + strings.Repeat("ö", 480) + `Jättipotti` + strings.Repeat("y", 2000) + `90 000 000 €`}

	got, err := Extract(doc, Hints{Keywords: []string{"jättipotti"}})
	require.NoError(t, err)
	assert.Equal(t, Extraction{Amount: 4000000, Found: true, Tier: TierKeyword}, got)
}

func TestExtractKeywordWindowExcludesFarMultiByteText(t *testing.T) {
	doc := &fakeDocument{html: `Jättipotti` + strings.Repeat("€", KeywordWindow) + ` 3 000 000 €`}

	got, err := Extract(doc, Hints{Keywords: []string{"Jättipotti"}})
	require.NoError(t, err)
	assert.Equal(t, TierFallback, got.Tier)
	assert.Equal(t, int64(3000000), got.Amount)
}

func TestExtractKeywordIsCaseInsensitive(t *testing.T) {
	doc := &fakeDocument{html: `<h2>JACKPOT</h2><span>12 000 000 €</span>`}

	got, err := Extract(doc, Hints{Keywords: []string{"", "Jackpot"}})
	require.NoError(t, err)
	assert.Equal(t, int64(12000000), got.Amount)
	assert.Equal(t, TierKeyword, got.Tier)
}

func TestExtractKeywordKeepsSmallAmounts(t *testing.T) {
	doc := &fakeDocument{html: `<p>Potti 2 500 €</p>`}

	got, err := Extract(doc, Hints{Keywords: []string{"potti"}})
	require.NoError(t, err)
	assert.Equal(t, Extraction{Amount: 2500, Found: true, Tier: TierKeyword}, got)
}

func TestExtractFallbackPrefersLargeAmounts(t *testing.T) {
	doc, err := ParseHTML(`<p>Toimitus 50000€</p><p>2 000 000 €</p><p>900 000 €</p>`)
	require.NoError(t, err)

	got, err := Extract(doc, defaultHints)
	require.NoError(t, err)
	assert.Equal(t, Extraction{Amount: 2000000, Found: true, Tier: TierFallback}, got)
}

func TestExtractFallbackSmallMaximum(t *testing.T) {
	doc := &fakeDocument{html: `<p>1 €</p><p>5 €</p><p>3 €</p>`}

	got, err := Extract(doc, defaultHints)
	require.NoError(t, err)
	assert.Equal(t, Extraction{Amount: 5, Found: true, Tier: TierFallback}, got)
}

func TestExtractNothingFound(t *testing.T) {
	doc := &fakeDocument{html: `<p>Ei lukuja tänään</p>`}

	got, err := Extract(doc, defaultHints)
	require.NoError(t, err)
	assert.False(t, got.Found)
	assert.Equal(t, TierNone, got.Tier)
}

func TestExtractMarkupError(t *testing.T) {
	doc := &fakeDocument{htmlErr: errors.New("page closed")}

	_, err := Extract(doc, defaultHints)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page closed")
}

func TestHTMLDocumentTexts(t *testing.T) {
	doc, err := ParseHTML(`<div class="big-jackpot">4 000 000 €</div><div id="jackpot-x">x</div><p class="pot-value">1 €</p>`)
	require.NoError(t, err)

	texts, err := doc.Texts("[class*='jackpot']")
	require.NoError(t, err)
	assert.Equal(t, []string{"4 000 000 €"}, texts)

	texts, err = doc.Texts(".pot-value")
	require.NoError(t, err)
	assert.Equal(t, []string{"1 €"}, texts)

	texts, err = doc.Texts("[[[")
	require.NoError(t, err)
	assert.Empty(t, texts)
}
