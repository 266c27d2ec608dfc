// Package jackpot turns rendered lottery pages into jackpot amounts.
package jackpot

import (
	"regexp"
	"strconv"
	"strings"
)

// Grouping separators seen on Finnish pages: ASCII space, period, NO-BREAK SPACE,
// NARROW NO-BREAK SPACE, and the entity forms browsers use when serialising markup.
const (
	sepClass   = `(?:[ .\x{00A0}\x{202F}]|&nbsp;|&#160;)`
	spaceClass = `(?:\s|\x{00A0}|\x{202F}|&nbsp;|&#160;)*`
)

var moneyRegex = regexp.MustCompile(`(\d{1,3}(?:` + sepClass + `\d{3})+|\d+)` + spaceClass + `€`)

// ParseAmount returns the first euro amount found in text.
func ParseAmount(text string) (int64, bool) {
	m := moneyRegex.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	return toEuros(m[1])
}

// ParseAmounts returns every euro amount found in text, in order of appearance.
// Matches that overflow int64 are dropped.
func ParseAmounts(text string) []int64 {
	matches := moneyRegex.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	amounts := make([]int64, 0, len(matches))
	for _, m := range matches {
		if v, ok := toEuros(m[1]); ok {
			amounts = append(amounts, v)
		}
	}
	return amounts
}

// toEuros strips grouping separators; jackpots never carry decimals.
func toEuros(group string) (int64, bool) {
	// "&#160;" has digits of its own
	group = strings.ReplaceAll(group, "&#160;", "")
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, group)
	if digits == "" {
		return 0, false
	}

	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
