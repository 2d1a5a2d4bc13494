package common

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency codes recognised on statements. AED is the default when a
// statement carries no recognisable code.
const (
	CurrencyAED = "AED"
	CurrencyDHS = "DHS"
)

// CustomerProfile carries the identifying attributes used for password
// derivation. It is a read-only borrowed view of the persisted customer
// record and is never mutated by the extraction core.
type CustomerProfile struct {
	NameParts     []string `json:"name_parts"`
	PhoneNumber   string   `json:"phone_number"`
	DateOfBirth   string   `json:"date_of_birth"`
	CardLastFours []string `json:"card_last_fours"`
}

// RawDocument is an opaque statement upload. The bytes are consumed once by
// the extraction pipeline and not retained afterwards.
type RawDocument struct {
	Bytes     []byte `json:"-"`
	MediaType string `json:"media_type"`
}

// FinancialFacts holds the fields extracted from a statement. Each field is
// independently optional; nil means the document did not contain it, not
// that it is zero.
type FinancialFacts struct {
	DueDate        *time.Time       `json:"due_date,omitempty"`
	MinimumPayment *decimal.Decimal `json:"minimum_payment,omitempty"`
	CurrentBalance *decimal.Decimal `json:"current_balance,omitempty"`
	CurrencyCode   string           `json:"currency_code"`
}

// CreditCard is the stored card record the facts are written back onto.
type CreditCard struct {
	ID             string          `json:"id,omitempty"`
	CustomerID     string          `json:"customer_id,omitempty"`
	BankName       string          `json:"bank_name"`
	CardLastFour   string          `json:"card_last_four"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
	MinimumPayment decimal.Decimal `json:"minimum_payment"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	APR            decimal.Decimal `json:"apr"`
	CurrencyCode   string          `json:"currency_code"`
}

// Transaction is a single historical card transaction, used for
// payment-history analysis.
type Transaction struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// ApplyFacts copies the found fields onto the card. Fields the extraction
// did not find keep their stored values; a miss never clears known data.
func (c *CreditCard) ApplyFacts(f FinancialFacts) {
	if f.DueDate != nil {
		due := *f.DueDate
		c.DueDate = &due
	}
	if f.MinimumPayment != nil {
		c.MinimumPayment = *f.MinimumPayment
	}
	if f.CurrentBalance != nil {
		c.CurrentBalance = *f.CurrentBalance
	}
	if f.CurrencyCode != "" {
		c.CurrencyCode = f.CurrencyCode
	}
}
