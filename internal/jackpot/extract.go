package jackpot

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MinJackpot filters out fees and ticket prices.
	MinJackpot int64 = 100000
	// KeywordWindow is how many characters around a keyword hit are searched.
	KeywordWindow = 500
)

// Tier names the extraction stage that produced an amount.
type Tier string

const (
	TierNone     Tier = ""
	TierSelector Tier = "selector"
	TierKeyword  Tier = "keyword"
	TierFallback Tier = "fallback"
)

// Hints are the per-target clues used by Extract.
type Hints struct {
	Selectors []string
	Keywords  []string
}

// Extraction is the outcome of Extract. Found is false when no figure was located.
type Extraction struct {
	Amount int64
	Found  bool
	Tier   Tier
}

// Extract locates the jackpot in doc. Selector matches are authoritative; keyword
// proximity runs only without them, and the page-wide maximum is the last resort.
func Extract(doc Document, hints Hints) (Extraction, error) {
	if v, ok := selectorScan(doc, hints.Selectors); ok {
		return Extraction{Amount: v, Found: true, Tier: TierSelector}, nil
	}

	html, err := doc.HTML()
	if err != nil {
		return Extraction{}, fmt.Errorf("failed to read page markup: %w", err)
	}

	if v, ok := keywordScan(html, hints.Keywords); ok {
		return Extraction{Amount: v, Found: true, Tier: TierKeyword}, nil
	}

	if v, ok := fallbackScan(html); ok {
		return Extraction{Amount: v, Found: true, Tier: TierFallback}, nil
	}

	return Extraction{}, nil
}

func selectorScan(doc Document, selectors []string) (int64, bool) {
	var best int64
	found := false
	for _, sel := range selectors {
		texts, err := doc.Texts(sel)
		if err != nil {
			continue
		}
		for _, text := range texts {
			for _, v := range ParseAmounts(text) {
				if v >= MinJackpot && (!found || v > best) {
					best, found = v, true
				}
			}
		}
	}
	return best, found
}

func keywordScan(html string, keywords []string) (int64, bool) {
	// lower-casing leaves digits and € alone, so windows are cut from the lowered copy
	lower := strings.ToLower(html)
	runes := []rune(lower)

	var best int64
	found := false
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		if kw == "" {
			continue
		}
		// pos is the rune offset of byte offset start
		for start, pos := 0, 0; ; {
			idx := strings.Index(lower[start:], kw)
			if idx < 0 {
				break
			}
			pos += utf8.RuneCountInString(lower[start : start+idx])
			idx += start

			from := max(0, pos-KeywordWindow)
			to := min(len(runes), pos+KeywordWindow)
			if local, ok := maxOf(ParseAmounts(string(runes[from:to]))); ok && (!found || local > best) {
				best, found = local, true
			}

			_, size := utf8.DecodeRuneInString(lower[idx:])
			start = idx + size
			pos++
		}
	}
	return best, found
}

func fallbackScan(html string) (int64, bool) {
	amounts := ParseAmounts(html)

	var large []int64
	for _, v := range amounts {
		if v >= MinJackpot {
			large = append(large, v)
		}
	}
	if v, ok := maxOf(large); ok {
		return v, true
	}
	return maxOf(amounts)
}

func maxOf(values []int64) (int64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	best := values[0]
	for _, v := range values[1:] {
		if v > best {
			best = v
		}
	}
	return best, true
}
