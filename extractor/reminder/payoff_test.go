package reminder

import (
	"testing"

	"github.com/nbakri/kashf/extractor/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func monthlyRate(apr string) decimal.Decimal {
	return d(apr).Div(decimal.NewFromInt(12))
}

func TestSimulate_PaysOff(t *testing.T) {
	p := Simulate(d("1000"), d("50"), monthlyRate("0.10"))

	assert.False(t, p.NeverPaysOff)
	assert.Greater(t, p.Months, 0)
	assert.Less(t, p.Months, PayoffNever)
	assert.True(t, p.TotalInterest.Sign() > 0)
	assert.True(t, p.TotalPaid.Equal(d("1000").Add(p.TotalInterest)))

	// The payment stream must cover principal plus interest.
	paid := d("50").Mul(decimal.NewFromInt(int64(p.Months)))
	assert.True(t, paid.GreaterThanOrEqual(p.TotalPaid))
}

func TestSimulate_NeverPaysOff(t *testing.T) {
	// First month's interest on 10000 at 2% monthly is 200; a 150 payment
	// never touches principal.
	p := Simulate(d("10000"), d("150"), d("0.02"))

	assert.True(t, p.NeverPaysOff)
	assert.Equal(t, PayoffNever, p.Months)
}

func TestSimulate_CapHitReportsNeverPaysOff(t *testing.T) {
	// 200.0001 barely exceeds the 200 first-month interest on 10000 at 2%
	// monthly; amortization would take over 700 months.
	p := Simulate(d("10000"), d("200.0001"), d("0.02"))

	assert.True(t, p.NeverPaysOff)
	assert.Equal(t, PayoffNever, p.Months)
}

func TestSimulate_ZeroBalance(t *testing.T) {
	p := Simulate(decimal.Zero, d("100"), monthlyRate("0.1999"))

	assert.Equal(t, 0, p.Months)
	assert.False(t, p.NeverPaysOff)
}

func TestSimulate_ZeroRate(t *testing.T) {
	p := Simulate(d("1000"), d("100"), decimal.Zero)

	assert.Equal(t, 10, p.Months)
	assert.True(t, p.TotalInterest.IsZero())
	assert.True(t, p.TotalPaid.Equal(d("1000")))
}

func TestOptimize(t *testing.T) {
	engine := newTestEngine()

	opt, ok := engine.Optimize(common.CreditCard{
		CurrentBalance: d("5000"),
		MinimumPayment: d("250"),
		APR:            d("0.1999"),
	})

	assert.True(t, ok)
	assert.True(t, opt.OptimizedPayment.Equal(d("500")))
	assert.NotNil(t, opt.MinimumScenario)
	assert.Less(t, opt.OptimizedScenario.Months, opt.MinimumScenario.Months)
	if assert.NotNil(t, opt.InterestSaved) {
		assert.True(t, opt.InterestSaved.Sign() > 0)
	}
}

func TestOptimize_SmallMinimumFlooredAtAbsolute(t *testing.T) {
	engine := newTestEngine()

	opt, ok := engine.Optimize(common.CreditCard{
		CurrentBalance: d("400"),
		MinimumPayment: d("20"),
	})

	assert.True(t, ok)
	assert.True(t, opt.OptimizedPayment.Equal(d("100")))
}

func TestOptimize_NoMinimumNoBaseline(t *testing.T) {
	engine := newTestEngine()

	opt, ok := engine.Optimize(common.CreditCard{
		CurrentBalance: d("1000"),
	})

	assert.True(t, ok)
	assert.Nil(t, opt.MinimumScenario)
	assert.Nil(t, opt.InterestSaved)
	assert.True(t, opt.OptimizedPayment.Equal(d("100")))
	// The default APR kicks in when the card carries none.
	assert.True(t, opt.APR.Equal(d("0.1999")))
}

func TestOptimize_NoBalance(t *testing.T) {
	engine := newTestEngine()

	_, ok := engine.Optimize(common.CreditCard{})
	assert.False(t, ok)
}
