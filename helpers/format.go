package helpers

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatEuros renders an amount with space-grouped thousands, e.g. "3 000 000 €"
func FormatEuros(amount int64) string {
	return GroupThousands(amount) + " €"
}

// GroupThousands renders n with a space between digit groups
func GroupThousands(n int64) string {
	p := message.NewPrinter(language.English)
	return strings.ReplaceAll(p.Sprintf("%d", n), ",", " ")
}
