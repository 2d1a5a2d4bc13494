package common

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
)

var nonNumericRegex = regexp.MustCompile(`[^0-9.]`)
var nonDigitRegex = regexp.MustCompile(`[^0-9]`)

// CleanDecimal parses a string into a decimal.Decimal, removing currency
// codes, commas and other non-numeric characters. Input without any numeric
// content is an error, not zero.
func CleanDecimal(text string) (decimal.Decimal, error) {
	cleanText := nonNumericRegex.ReplaceAllString(text, "")
	if cleanText == "" {
		return decimal.Zero, fmt.Errorf("no numeric content in %q", text)
	}
	amount, err := decimal.NewFromString(cleanText)
	if err != nil {
		return decimal.Zero, err
	}

	return amount, nil
}

// Digits strips everything but decimal digits from a string.
func Digits(text string) string {
	return nonDigitRegex.ReplaceAllString(text, "")
}

// ParseNaturalDate parses a free-form date string permissively. Statement
// locales here are day-first, so "05/06/2024" is the 5th of June.
func ParseNaturalDate(value string) (time.Time, bool) {
	t, err := dateparse.ParseAny(strings.TrimSpace(value), dateparse.PreferMonthFirst(false))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// CleanText drops blank and near-empty lines from extracted text. OCR output
// in particular carries stray one or two character lines.
func CleanText(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) > 2 {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
