package postgres

import (
	"context"
	"fmt"
	"log"

	"github.com/nbakri/kashf/extractor/common"
	"github.com/shopspring/decimal"
)

// ImportRequest describes one extracted statement to persist.
type ImportRequest struct {
	Profile      common.CustomerProfile
	BankName     string
	CardLastFour string
	Facts        common.FinancialFacts
}

// ImportResult reports what the import touched.
type ImportResult struct {
	CustomerID string
	CardID     string
	ReminderID string
}

// ImportFacts persists an extracted statement: ensures the customer and
// card exist, applies the facts atomically, and schedules a reminder when a
// due date is known.
func (db *DB) ImportFacts(ctx context.Context, req ImportRequest) (ImportResult, error) {
	var result ImportResult

	if req.Profile.PhoneNumber == "" {
		return result, fmt.Errorf("a customer phone number is required for import")
	}
	if req.CardLastFour == "" {
		return result, fmt.Errorf("a card last-four is required for import")
	}

	customerID, err := db.EnsureCustomer(ctx, req.Profile)
	if err != nil {
		return result, err
	}
	result.CustomerID = customerID

	cardID, err := db.EnsureCard(ctx, customerID, req.BankName, req.CardLastFour)
	if err != nil {
		return result, err
	}
	result.CardID = cardID

	if err := db.UpdateCardFacts(ctx, cardID, req.Facts); err != nil {
		return result, err
	}
	log.Printf("\t💾 Updated facts for card ending %s", req.CardLastFour)

	if req.Facts.DueDate != nil {
		amount := decimalOrZero(req.Facts.MinimumPayment)
		reminder, err := db.CreateReminder(ctx, customerID, cardID, *req.Facts.DueDate, amount)
		if err != nil {
			return result, err
		}
		result.ReminderID = reminder.ID
	}

	return result, nil
}

func decimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
