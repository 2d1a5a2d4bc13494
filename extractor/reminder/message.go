package reminder

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nbakri/kashf/extractor/common"
	"github.com/shopspring/decimal"
)

// Message renders the notification text for a reminder window.
func Message(w Window) string {
	amount := fmt.Sprintf("%s %s", w.CurrencyCode, w.MinimumPayment.StringFixed(2))
	due := w.DueDate.Format("2006-01-02")

	switch {
	case w.DaysOverdue > 0:
		return fmt.Sprintf("🚨 OVERDUE: Your %s credit card payment of %s was due %d day(s) ago (%s)",
			w.BankName, amount, w.DaysOverdue, due)
	case w.DaysUntilDue == 0:
		return fmt.Sprintf("🚨 URGENT: Your %s credit card payment of %s is due TODAY (%s)",
			w.BankName, amount, due)
	case w.DaysUntilDue == 1:
		return fmt.Sprintf("⚠️ REMINDER: Your %s credit card payment of %s is due TOMORROW (%s)",
			w.BankName, amount, due)
	case w.DaysUntilDue <= 3:
		return fmt.Sprintf("📅 REMINDER: Your %s credit card payment of %s is due in %d days (%s)",
			w.BankName, amount, w.DaysUntilDue, due)
	default:
		return fmt.Sprintf("💳 Upcoming: Your %s credit card payment of %s is due in %d days (%s)",
			w.BankName, amount, w.DaysUntilDue, due)
	}
}

// HistorySummary aggregates a customer's past payment transactions.
type HistorySummary struct {
	TotalPayments   int                  `json:"total_payments"`
	TotalAmountPaid decimal.Decimal      `json:"total_amount_paid"`
	AveragePayment  decimal.Decimal      `json:"average_payment"`
	LargestPayment  decimal.Decimal      `json:"largest_payment"`
	SmallestPayment decimal.Decimal      `json:"smallest_payment"`
	RecentPayments  []common.Transaction `json:"recent_payments"`
}

// AnalyzeHistory summarizes the payment transactions in a history. Only
// transactions whose description mentions a payment count.
func AnalyzeHistory(transactions []common.Transaction) HistorySummary {
	var payments []common.Transaction
	for _, tx := range transactions {
		if strings.Contains(strings.ToLower(tx.Description), "payment") {
			payments = append(payments, tx)
		}
	}
	if len(payments) == 0 {
		return HistorySummary{}
	}

	summary := HistorySummary{
		TotalPayments:   len(payments),
		LargestPayment:  payments[0].Amount,
		SmallestPayment: payments[0].Amount,
	}
	for _, tx := range payments {
		summary.TotalAmountPaid = summary.TotalAmountPaid.Add(tx.Amount)
		summary.LargestPayment = decimal.Max(summary.LargestPayment, tx.Amount)
		summary.SmallestPayment = decimal.Min(summary.SmallestPayment, tx.Amount)
	}
	summary.AveragePayment = summary.TotalAmountPaid.Div(decimal.NewFromInt(int64(len(payments))))

	sort.Slice(payments, func(i, j int) bool { return payments[i].Date.After(payments[j].Date) })
	if len(payments) > 5 {
		payments = payments[:5]
	}
	summary.RecentPayments = payments

	return summary
}
