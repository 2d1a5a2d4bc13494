// Package reminder classifies payment urgency, estimates late-fee exposure
// and projects payoff scenarios from a card's extracted facts.
package reminder

import (
	"sort"
	"time"

	"github.com/nbakri/kashf/extractor/common"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Urgency tiers, ordered from most to least pressing.
const (
	UrgencyCritical = "critical"
	UrgencyHigh     = "high"
	UrgencyMedium   = "medium"
	UrgencyLow      = "low"
	UrgencyOverdue  = "overdue"
)

// Urgency classifies how pressing an upcoming due date is. Overdue cards are
// reported through Window as their own tier, not through this function.
func Urgency(daysUntilDue int) string {
	switch {
	case daysUntilDue <= 1:
		return UrgencyCritical
	case daysUntilDue <= 3:
		return UrgencyHigh
	case daysUntilDue <= 7:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

// Window is the reminder view of one card, recomputed on demand from the
// current facts and never cached.
type Window struct {
	CreditCardID     string          `json:"credit_card_id,omitempty"`
	BankName         string          `json:"bank_name"`
	CardLastFour     string          `json:"card_last_four"`
	DueDate          time.Time       `json:"due_date"`
	DaysUntilDue     int             `json:"days_until_due"`
	DaysOverdue      int             `json:"days_overdue,omitempty"`
	Urgency          string          `json:"urgency"`
	MinimumPayment   decimal.Decimal `json:"minimum_payment"`
	CurrentBalance   decimal.Decimal `json:"current_balance"`
	EstimatedLateFee decimal.Decimal `json:"estimated_late_fee"`
	CurrencyCode     string          `json:"currency_code"`
}

// Engine carries the fee tiers and optimization policy. Zero config values
// fall back to the built-in defaults.
type Engine struct {
	lowThreshold        decimal.Decimal
	highThreshold       decimal.Decimal
	lowFee              decimal.Decimal
	baseFee             decimal.Decimal
	highFee             decimal.Decimal
	minOptimizedPayment decimal.Decimal
	defaultAPR          decimal.Decimal
}

func New() *Engine {
	return &Engine{
		lowThreshold:        configDecimal("reminder.late_fee.low_threshold", "370"),
		highThreshold:       configDecimal("reminder.late_fee.high_threshold", "1850"),
		lowFee:              configDecimal("reminder.late_fee.low_fee", "110.00"),
		baseFee:             configDecimal("reminder.late_fee.base_fee", "145.00"),
		highFee:             configDecimal("reminder.late_fee.high_fee", "180.00"),
		minOptimizedPayment: configDecimal("reminder.optimize.minimum_payment", "100"),
		defaultAPR:          configDecimal("reminder.default_apr", "0.1999"),
	}
}

func configDecimal(key, fallback string) decimal.Decimal {
	if s := viper.GetString(key); s != "" {
		if d, err := decimal.NewFromString(s); err == nil {
			return d
		}
	}
	d, _ := decimal.NewFromString(fallback)
	return d
}

// EstimateLateFee returns the flat fee bracket for a minimum payment. The
// two modeled currencies share the same numeric tiers.
func (e *Engine) EstimateLateFee(minimumPayment decimal.Decimal) decimal.Decimal {
	switch {
	case minimumPayment.LessThan(e.lowThreshold):
		return e.lowFee
	case minimumPayment.GreaterThan(e.highThreshold):
		return e.highFee
	default:
		return e.baseFee
	}
}

// Window derives the reminder view for a card as of today. Returns false
// when the card has no known due date.
func (e *Engine) Window(card common.CreditCard, today time.Time) (Window, bool) {
	if card.DueDate == nil {
		return Window{}, false
	}

	due := dateOf(*card.DueDate)
	days := int(due.Sub(dateOf(today)).Hours() / 24)

	w := Window{
		CreditCardID:   card.ID,
		BankName:       card.BankName,
		CardLastFour:   card.CardLastFour,
		DueDate:        due,
		DaysUntilDue:   days,
		Urgency:        Urgency(days),
		MinimumPayment: card.MinimumPayment,
		CurrentBalance: card.CurrentBalance,
		CurrencyCode:   currencyOrDefault(card.CurrencyCode),
	}
	if days < 0 {
		w.Urgency = UrgencyOverdue
		w.DaysOverdue = -days
		w.EstimatedLateFee = e.EstimateLateFee(card.MinimumPayment)
	}
	return w, true
}

// Upcoming lists cards due within daysAhead of today, soonest first.
func (e *Engine) Upcoming(cards []common.CreditCard, today time.Time, daysAhead int) []Window {
	var out []Window
	for _, card := range cards {
		w, ok := e.Window(card, today)
		if !ok {
			continue
		}
		if w.DaysUntilDue >= 0 && w.DaysUntilDue <= daysAhead {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DaysUntilDue < out[j].DaysUntilDue })
	return out
}

// Overdue lists cards past their due date, most overdue first.
func (e *Engine) Overdue(cards []common.CreditCard, today time.Time) []Window {
	var out []Window
	for _, card := range cards {
		w, ok := e.Window(card, today)
		if !ok || w.DaysOverdue == 0 {
			continue
		}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DaysOverdue > out[j].DaysOverdue })
	return out
}

func currencyOrDefault(code string) string {
	if code == "" {
		return common.CurrencyAED
	}
	return code
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
