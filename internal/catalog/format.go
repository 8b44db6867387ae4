package catalog

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const shortIDLen = 8

// ShortID abbreviates an id for display. The stored id is never shortened.
func ShortID(id string) string {
	r := []rune(id)
	if len(r) <= shortIDLen {
		return id
	}
	return string(r[:shortIDLen])
}

// FormatPrice renders a price with two decimals and thousands separators,
// e.g. "$1,234.50".
func FormatPrice(p float64) string {
	// A Printer keeps per-call state; one per call keeps this goroutine safe.
	return message.NewPrinter(language.English).Sprintf("$%.2f", p)
}
