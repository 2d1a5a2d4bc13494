package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Reminder is a scheduled payment reminder row.
type Reminder struct {
	ID           string          `json:"id"`
	CustomerID   string          `json:"customer_id"`
	CreditCardID string          `json:"credit_card_id"`
	DueDate      time.Time       `json:"due_date"`
	Amount       decimal.Decimal `json:"amount"`
	ReminderSent bool            `json:"reminder_sent"`
}

// CreateReminder schedules a reminder for a card's due date. An existing
// unsent reminder for the same card and due date is reused rather than
// duplicated.
func (db *DB) CreateReminder(ctx context.Context, customerID, cardID string, dueDate time.Time, amount decimal.Decimal) (Reminder, error) {
	var r Reminder
	err := db.Pool.QueryRow(ctx, `
		SELECT id, customer_id, credit_card_id, due_date, amount, reminder_sent
		FROM payment_reminders
		WHERE credit_card_id = $1 AND due_date = $2 AND NOT reminder_sent
	`, cardID, dueDate).Scan(&r.ID, &r.CustomerID, &r.CreditCardID, &r.DueDate, &r.Amount, &r.ReminderSent)

	if err == nil {
		return r, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return r, fmt.Errorf("failed to look up reminder: %w", err)
	}

	err = db.Pool.QueryRow(ctx, `
		INSERT INTO payment_reminders (customer_id, credit_card_id, due_date, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, customer_id, credit_card_id, due_date, amount, reminder_sent
	`, customerID, cardID, dueDate, amount).Scan(&r.ID, &r.CustomerID, &r.CreditCardID, &r.DueDate, &r.Amount, &r.ReminderSent)
	if err != nil {
		return r, fmt.Errorf("failed to create reminder: %w", err)
	}

	return r, nil
}

// MarkReminderSent flags a reminder as delivered.
func (db *DB) MarkReminderSent(ctx context.Context, reminderID string) error {
	_, err := db.Pool.Exec(ctx, `
		UPDATE payment_reminders SET reminder_sent = true WHERE id = $1
	`, reminderID)
	if err != nil {
		return fmt.Errorf("failed to mark reminder sent: %w", err)
	}
	return nil
}
