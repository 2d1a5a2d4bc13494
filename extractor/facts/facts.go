// Package facts pulls due date, minimum payment, balance and currency out of
// unstructured statement text. Each fact has its own ordered list of pattern
// alternatives; the first alternative that matches anywhere wins for that
// fact. Absence of a match is a normal outcome, never an error.
package facts

import (
	"log"
	"regexp"
	"time"

	"github.com/nbakri/kashf/extractor/common"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

var (
	dhsWord = regexp.MustCompile(`(?i)\bDHS\b`)
	aedWord = regexp.MustCompile(`(?i)\bAED\b`)
)

type config struct {
	dueDate        []*regexp.Regexp
	minimumPayment []*regexp.Regexp
	balance        []*regexp.Regexp
}

func loadConfig() config {
	return config{
		dueDate:        compileAll(viper.GetStringSlice("facts.patterns.due_date")),
		minimumPayment: compileAll(viper.GetStringSlice("facts.patterns.minimum_payment")),
		balance:        compileAll(viper.GetStringSlice("facts.patterns.balance")),
	}
}

// compileAll compiles a configured pattern list, case-insensitive. A broken
// pattern is dropped rather than disabling the whole cascade.
func compileAll(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			log.Printf("Warning: skipping invalid pattern %q: %v", p, err)
			continue
		}
		compiled = append(compiled, re)
	}
	return compiled
}

// DateParser turns a matched date substring into a calendar date.
type DateParser func(string) (time.Time, bool)

// Extractor evaluates the configured pattern cascades against statement text.
type Extractor struct {
	cfg       config
	parseDate DateParser
}

func New() *Extractor {
	return NewWithDateParser(common.ParseNaturalDate)
}

func NewWithDateParser(parse DateParser) *Extractor {
	return &Extractor{cfg: loadConfig(), parseDate: parse}
}

// FromText extracts whatever facts the text contains. Fields the text does
// not carry stay nil; the currency code defaults to AED.
func (e *Extractor) FromText(text string) common.FinancialFacts {
	return common.FinancialFacts{
		DueDate:        e.dueDate(text),
		MinimumPayment: e.amount(text, e.cfg.minimumPayment),
		CurrentBalance: e.amount(text, e.cfg.balance),
		CurrencyCode:   Currency(text),
	}
}

// Currency returns the statement's currency code. DHS takes precedence over
// AED when both appear; neither defaults to AED.
func Currency(text string) string {
	if dhsWord.MatchString(text) {
		return common.CurrencyDHS
	}
	if aedWord.MatchString(text) {
		return common.CurrencyAED
	}
	return common.CurrencyAED
}

func (e *Extractor) dueDate(text string) *time.Time {
	for _, pattern := range e.cfg.dueDate {
		match := pattern.FindStringSubmatch(text)
		if len(match) < 2 {
			continue
		}
		// A matched but unparsable date is a miss for this document,
		// not a fallthrough to the remaining patterns.
		if t, ok := e.parseDate(match[1]); ok {
			return &t
		}
		return nil
	}
	return nil
}

func (e *Extractor) amount(text string, patterns []*regexp.Regexp) *decimal.Decimal {
	for _, pattern := range patterns {
		match := pattern.FindStringSubmatch(text)
		if len(match) < 2 {
			continue
		}
		amount, err := common.CleanDecimal(match[1])
		if err != nil || amount.IsNegative() {
			continue
		}
		return &amount
	}
	return nil
}
