package reminder

import (
	"testing"
	"time"

	"github.com/nbakri/kashf/extractor/common"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func newTestEngine() *Engine {
	viper.Reset()
	return New()
}

func d(s string) decimal.Decimal {
	out, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return out
}

func dateAt(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestUrgency(t *testing.T) {
	tests := []struct {
		days     int
		expected string
	}{
		{0, UrgencyCritical},
		{1, UrgencyCritical},
		{2, UrgencyHigh},
		{3, UrgencyHigh},
		{4, UrgencyMedium},
		{7, UrgencyMedium},
		{8, UrgencyLow},
		{30, UrgencyLow},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, Urgency(test.days), "Urgency(%d)", test.days)
	}
}

func TestEstimateLateFee(t *testing.T) {
	engine := newTestEngine()

	tests := []struct {
		minimum  string
		expected string
	}{
		{"100", "110"},
		{"369.99", "110"},
		{"370", "145"},
		{"1000", "145"},
		{"1850", "145"},
		{"1850.01", "180"},
		{"5000", "180"},
	}

	for _, test := range tests {
		fee := engine.EstimateLateFee(d(test.minimum))
		assert.True(t, fee.Equal(d(test.expected)),
			"EstimateLateFee(%s): expected %s, got %s", test.minimum, test.expected, fee)
	}
}

func TestWindow_Upcoming(t *testing.T) {
	engine := newTestEngine()
	today := dateAt(2024, 6, 1)
	due := dateAt(2024, 6, 4)

	card := common.CreditCard{
		BankName:       "Emirates NBD",
		CardLastFour:   "1234",
		DueDate:        &due,
		MinimumPayment: d("250"),
		CurrentBalance: d("5000"),
	}

	w, ok := engine.Window(card, today)
	assert.True(t, ok)
	assert.Equal(t, 3, w.DaysUntilDue)
	assert.Equal(t, UrgencyHigh, w.Urgency)
	assert.Equal(t, 0, w.DaysOverdue)
	assert.True(t, w.EstimatedLateFee.IsZero())
	assert.Equal(t, common.CurrencyAED, w.CurrencyCode)
}

func TestWindow_Overdue(t *testing.T) {
	engine := newTestEngine()
	today := dateAt(2024, 6, 10)
	due := dateAt(2024, 6, 5)

	card := common.CreditCard{
		DueDate:        &due,
		MinimumPayment: d("250"),
	}

	w, ok := engine.Window(card, today)
	assert.True(t, ok)
	assert.Equal(t, UrgencyOverdue, w.Urgency)
	assert.Equal(t, 5, w.DaysOverdue)
	assert.True(t, w.EstimatedLateFee.Equal(d("110")))
}

func TestWindow_NoDueDate(t *testing.T) {
	engine := newTestEngine()

	_, ok := engine.Window(common.CreditCard{}, dateAt(2024, 6, 1))
	assert.False(t, ok)
}

func TestWindow_TimeOfDayIgnored(t *testing.T) {
	engine := newTestEngine()
	today := time.Date(2024, 6, 1, 23, 45, 0, 0, time.UTC)
	due := time.Date(2024, 6, 2, 0, 30, 0, 0, time.UTC)

	w, ok := engine.Window(common.CreditCard{DueDate: &due}, today)
	assert.True(t, ok)
	assert.Equal(t, 1, w.DaysUntilDue)
}

func TestUpcoming_SortedSoonestFirst(t *testing.T) {
	engine := newTestEngine()
	today := dateAt(2024, 6, 1)
	near := dateAt(2024, 6, 2)
	far := dateAt(2024, 6, 6)
	past := dateAt(2024, 5, 20)
	beyond := dateAt(2024, 7, 15)

	cards := []common.CreditCard{
		{CardLastFour: "1111", DueDate: &far},
		{CardLastFour: "2222", DueDate: &near},
		{CardLastFour: "3333", DueDate: &past},
		{CardLastFour: "4444"},
		{CardLastFour: "5555", DueDate: &beyond},
	}

	windows := engine.Upcoming(cards, today, 7)

	assert.Len(t, windows, 2)
	assert.Equal(t, "2222", windows[0].CardLastFour)
	assert.Equal(t, "1111", windows[1].CardLastFour)
}

func TestOverdue_SortedMostOverdueFirst(t *testing.T) {
	engine := newTestEngine()
	today := dateAt(2024, 6, 10)
	recent := dateAt(2024, 6, 8)
	old := dateAt(2024, 5, 1)
	future := dateAt(2024, 6, 20)

	cards := []common.CreditCard{
		{CardLastFour: "1111", DueDate: &recent},
		{CardLastFour: "2222", DueDate: &old},
		{CardLastFour: "3333", DueDate: &future},
	}

	windows := engine.Overdue(cards, today)

	assert.Len(t, windows, 2)
	assert.Equal(t, "2222", windows[0].CardLastFour)
	assert.Equal(t, "1111", windows[1].CardLastFour)
}

func TestEngine_ConfigOverrides(t *testing.T) {
	viper.Reset()
	viper.Set("reminder.late_fee.low_threshold", "500")
	viper.Set("reminder.late_fee.low_fee", "99.00")
	engine := New()

	assert.True(t, engine.EstimateLateFee(d("450")).Equal(d("99")))
}
