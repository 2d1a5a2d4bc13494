package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/nbakri/kashf/extractor/common"
)

// EnsureCustomer finds a customer by phone number or creates one.
func (db *DB) EnsureCustomer(ctx context.Context, profile common.CustomerProfile) (string, error) {
	var id string
	err := db.Pool.QueryRow(ctx, `
		SELECT id FROM customers WHERE phone_number = $1
	`, profile.PhoneNumber).Scan(&id)

	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("failed to look up customer: %w", err)
	}

	err = db.Pool.QueryRow(ctx, `
		INSERT INTO customers (full_name, phone_number, date_of_birth)
		VALUES ($1, $2, $3)
		RETURNING id
	`, strings.Join(profile.NameParts, " "), profile.PhoneNumber, profile.DateOfBirth).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create customer: %w", err)
	}

	return id, nil
}

// GetProfile loads the password-derivation view of a customer, including
// the last-four digits of every card on file.
func (db *DB) GetProfile(ctx context.Context, customerID string) (common.CustomerProfile, error) {
	var fullName string
	profile := common.CustomerProfile{}

	err := db.Pool.QueryRow(ctx, `
		SELECT full_name, phone_number, date_of_birth FROM customers WHERE id = $1
	`, customerID).Scan(&fullName, &profile.PhoneNumber, &profile.DateOfBirth)
	if err != nil {
		return profile, fmt.Errorf("failed to load customer: %w", err)
	}
	profile.NameParts = strings.Fields(fullName)

	rows, err := db.Pool.Query(ctx, `
		SELECT card_last_four FROM credit_cards WHERE customer_id = $1 ORDER BY created_at
	`, customerID)
	if err != nil {
		return profile, fmt.Errorf("failed to load cards: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var lastFour string
		if err := rows.Scan(&lastFour); err != nil {
			return profile, err
		}
		profile.CardLastFours = append(profile.CardLastFours, lastFour)
	}

	return profile, rows.Err()
}
