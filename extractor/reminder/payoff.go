package reminder

import (
	"github.com/nbakri/kashf/extractor/common"
	"github.com/shopspring/decimal"
)

// PayoffNever is the sentinel month count for a payment that can never
// amortize the balance.
const PayoffNever = 999

// maxPayoffMonths bounds the simulation against payment/rate pairs that
// converge asymptotically slowly. A balance still open after 50 years is
// reported as never paying off.
const maxPayoffMonths = 600

// Projection is the outcome of one payoff simulation.
type Projection struct {
	Months        int             `json:"months_to_payoff"`
	TotalInterest decimal.Decimal `json:"total_interest"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	NeverPaysOff  bool            `json:"never_pays_off,omitempty"`
}

// Simulate projects a fixed-payment payoff month by month. When the payment
// does not exceed the first month's interest the balance never shrinks and
// the never-pays-off sentinel is returned instead of looping.
func Simulate(balance, payment, monthlyRate decimal.Decimal) Projection {
	if balance.Sign() <= 0 {
		return Projection{}
	}
	if payment.Cmp(balance.Mul(monthlyRate)) <= 0 {
		return Projection{Months: PayoffNever, NeverPaysOff: true}
	}

	remaining := balance
	totalInterest := decimal.Zero
	months := 0

	for remaining.Sign() > 0 && months < maxPayoffMonths {
		interest := remaining.Mul(monthlyRate)
		principal := payment.Sub(interest)
		totalInterest = totalInterest.Add(interest)
		remaining = remaining.Sub(principal)
		months++
	}
	if remaining.Sign() > 0 {
		return Projection{Months: PayoffNever, NeverPaysOff: true}
	}

	return Projection{
		Months:        months,
		TotalInterest: totalInterest,
		TotalPaid:     balance.Add(totalInterest),
	}
}

// Optimization compares the minimum-payment scenario against a higher
// payment: at least double the minimum, floored at a fixed absolute amount.
type Optimization struct {
	Balance           decimal.Decimal  `json:"balance"`
	MinimumPayment    decimal.Decimal  `json:"minimum_payment"`
	APR               decimal.Decimal  `json:"apr"`
	CurrencyCode      string           `json:"currency_code"`
	MinimumScenario   *Projection      `json:"minimum_payment_scenario,omitempty"`
	OptimizedPayment  decimal.Decimal  `json:"optimized_payment"`
	OptimizedScenario Projection       `json:"optimized_payment_scenario"`
	InterestSaved     *decimal.Decimal `json:"interest_saved,omitempty"`
}

var two = decimal.NewFromInt(2)

// Optimize projects both scenarios for a card. Returns false when there is
// no balance to optimize. InterestSaved stays nil when there is no
// minimum-payment baseline to compare against.
func (e *Engine) Optimize(card common.CreditCard) (Optimization, bool) {
	if card.CurrentBalance.Sign() <= 0 {
		return Optimization{}, false
	}

	apr := card.APR
	if apr.Sign() <= 0 {
		apr = e.defaultAPR
	}
	monthlyRate := apr.Div(decimal.NewFromInt(12))

	opt := Optimization{
		Balance:        card.CurrentBalance,
		MinimumPayment: card.MinimumPayment,
		APR:            apr,
		CurrencyCode:   currencyOrDefault(card.CurrencyCode),
	}

	if card.MinimumPayment.Sign() > 0 {
		p := Simulate(card.CurrentBalance, card.MinimumPayment, monthlyRate)
		opt.MinimumScenario = &p
	}

	opt.OptimizedPayment = decimal.Max(card.MinimumPayment.Mul(two), e.minOptimizedPayment)
	opt.OptimizedScenario = Simulate(card.CurrentBalance, opt.OptimizedPayment, monthlyRate)

	if opt.MinimumScenario != nil && !opt.MinimumScenario.NeverPaysOff && !opt.OptimizedScenario.NeverPaysOff {
		saved := opt.MinimumScenario.TotalInterest.Sub(opt.OptimizedScenario.TotalInterest)
		opt.InterestSaved = &saved
	}

	return opt, true
}
