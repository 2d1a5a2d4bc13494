package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nbakri/kashf/extractor/common"
	"github.com/shopspring/decimal"
)

// EnsureCard finds a card by its natural key (customer_id, card_last_four)
// or creates it.
func (db *DB) EnsureCard(ctx context.Context, customerID, bankName, cardLastFour string) (string, error) {
	var id string
	err := db.Pool.QueryRow(ctx, `
		SELECT id FROM credit_cards WHERE customer_id = $1 AND card_last_four = $2
	`, customerID, cardLastFour).Scan(&id)

	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("failed to look up card: %w", err)
	}

	err = db.Pool.QueryRow(ctx, `
		INSERT INTO credit_cards (customer_id, bank_name, card_last_four)
		VALUES ($1, $2, $3)
		RETURNING id
	`, customerID, bankName, cardLastFour).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create card: %w", err)
	}

	return id, nil
}

// UpdateCardFacts writes extracted facts onto a card in one atomic update.
// NULL inputs leave the stored column untouched, so an extraction miss never
// clears previously known values.
func (db *DB) UpdateCardFacts(ctx context.Context, cardID string, facts common.FinancialFacts) error {
	var currency *string
	if facts.CurrencyCode != "" {
		currency = &facts.CurrencyCode
	}

	_, err := db.Pool.Exec(ctx, `
		UPDATE credit_cards SET
			due_date = COALESCE($2, due_date),
			minimum_payment = COALESCE($3, minimum_payment),
			current_balance = COALESCE($4, current_balance),
			currency_code = COALESCE($5, currency_code),
			updated_at = NOW()
		WHERE id = $1
	`, cardID, facts.DueDate, facts.MinimumPayment, facts.CurrentBalance, currency)
	if err != nil {
		return fmt.Errorf("failed to update card facts: %w", err)
	}
	return nil
}

// ListCards returns all cards for a customer.
func (db *DB) ListCards(ctx context.Context, customerID string) ([]common.CreditCard, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, customer_id, bank_name, card_last_four,
		       due_date, minimum_payment, current_balance, apr, currency_code
		FROM credit_cards
		WHERE customer_id = $1
		ORDER BY created_at
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	var cards []common.CreditCard
	for rows.Next() {
		var card common.CreditCard
		var dueDate *time.Time
		var minimumPayment, currentBalance, apr *decimal.Decimal

		if err := rows.Scan(&card.ID, &card.CustomerID, &card.BankName, &card.CardLastFour,
			&dueDate, &minimumPayment, &currentBalance, &apr, &card.CurrencyCode); err != nil {
			return nil, err
		}

		card.DueDate = dueDate
		if minimumPayment != nil {
			card.MinimumPayment = *minimumPayment
		}
		if currentBalance != nil {
			card.CurrentBalance = *currentBalance
		}
		if apr != nil {
			card.APR = *apr
		}
		cards = append(cards, card)
	}

	return cards, rows.Err()
}
