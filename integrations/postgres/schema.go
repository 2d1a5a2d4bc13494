package postgres

import (
	"context"
	"fmt"
)

const ddl = `
-- Customers table
CREATE TABLE IF NOT EXISTS customers (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    full_name VARCHAR(255) NOT NULL,
    phone_number VARCHAR(50) NOT NULL,
    date_of_birth VARCHAR(50) DEFAULT '',
    created_at TIMESTAMPTZ DEFAULT NOW(),

    UNIQUE(phone_number)
);

-- Credit cards table with natural key (customer_id, card_last_four)
CREATE TABLE IF NOT EXISTS credit_cards (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    customer_id UUID NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
    bank_name VARCHAR(255) DEFAULT '',
    card_last_four VARCHAR(4) NOT NULL,
    due_date DATE,
    minimum_payment NUMERIC(18,2),
    current_balance NUMERIC(18,2),
    apr NUMERIC(8,6),
    currency_code VARCHAR(3) NOT NULL DEFAULT 'AED',
    created_at TIMESTAMPTZ DEFAULT NOW(),
    updated_at TIMESTAMPTZ DEFAULT NOW(),

    -- Natural key for deduplication
    UNIQUE(customer_id, card_last_four)
);

-- Payment reminders table
CREATE TABLE IF NOT EXISTS payment_reminders (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    customer_id UUID NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
    credit_card_id UUID NOT NULL REFERENCES credit_cards(id) ON DELETE CASCADE,
    due_date DATE NOT NULL,
    amount NUMERIC(18,2) NOT NULL DEFAULT 0,
    reminder_sent BOOLEAN NOT NULL DEFAULT false,
    created_at TIMESTAMPTZ DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_credit_cards_customer ON credit_cards(customer_id);
CREATE INDEX IF NOT EXISTS idx_reminders_card ON payment_reminders(credit_card_id);
CREATE INDEX IF NOT EXISTS idx_reminders_unsent ON payment_reminders(credit_card_id, due_date) WHERE NOT reminder_sent;
`

// EnsureSchema creates the database schema if it doesn't exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.Pool.Exec(ctx, ddl)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
