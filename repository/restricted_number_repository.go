package repository

import (
	"context"
	"fmt"

	"lotobank/domain/entities"

	"github.com/shopspring/decimal"
)

// RestrictedNumberRepository implements restricted-number cap data access
type RestrictedNumberRepository struct {
	q Queryable
}

// NewRestrictedNumberRepositoryWithTx creates a new restricted number repository with a transaction
func NewRestrictedNumberRepositoryWithTx(tx Queryable) *RestrictedNumberRepository {
	return &RestrictedNumberRepository{q: tx}
}

// GetByDrawForUpdate loads the draw-level rows for the given numbers with row
// locks. Rows are locked in number order to keep concurrent reservations from
// deadlocking each other.
func (r *RestrictedNumberRepository) GetByDrawForUpdate(ctx context.Context, drawID int64, numbers []int) ([]*entities.RestrictedNumber, error) {
	if len(numbers) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, draw_id, number, remaining
		FROM restricted_numbers
		WHERE draw_id = $1 AND number = ANY($2)
		ORDER BY number
		FOR UPDATE
	`

	rows, err := r.q.Query(ctx, query, drawID, numbers)
	if err != nil {
		return nil, fmt.Errorf("failed to get restricted numbers for draw %d: %w", drawID, err)
	}
	defer rows.Close()

	var restricted []*entities.RestrictedNumber
	for rows.Next() {
		var rn entities.RestrictedNumber
		if err := rows.Scan(&rn.ID, &rn.DrawID, &rn.Number, &rn.Remaining); err != nil {
			return nil, fmt.Errorf("failed to scan restricted number: %w", err)
		}
		restricted = append(restricted, &rn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate restricted numbers: %w", err)
	}

	return restricted, nil
}

// GetBySellerForUpdate loads the seller-level rows for the given numbers with
// row locks.
func (r *RestrictedNumberRepository) GetBySellerForUpdate(ctx context.Context, drawID, sellerID int64, numbers []int) ([]*entities.SellerRestrictedNumber, error) {
	if len(numbers) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, draw_id, seller_id, number, remaining
		FROM seller_restricted_numbers
		WHERE draw_id = $1 AND seller_id = $2 AND number = ANY($3)
		ORDER BY number
		FOR UPDATE
	`

	rows, err := r.q.Query(ctx, query, drawID, sellerID, numbers)
	if err != nil {
		return nil, fmt.Errorf("failed to get seller restricted numbers for draw %d seller %d: %w", drawID, sellerID, err)
	}
	defer rows.Close()

	var restricted []*entities.SellerRestrictedNumber
	for rows.Next() {
		var rn entities.SellerRestrictedNumber
		if err := rows.Scan(&rn.ID, &rn.DrawID, &rn.SellerID, &rn.Number, &rn.Remaining); err != nil {
			return nil, fmt.Errorf("failed to scan seller restricted number: %w", err)
		}
		restricted = append(restricted, &rn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate seller restricted numbers: %w", err)
	}

	return restricted, nil
}

// Decrement reduces a draw-level row's remaining amount. The CHECK constraint
// on the column backs up the in-service validation.
func (r *RestrictedNumberRepository) Decrement(ctx context.Context, id int64, amount decimal.Decimal) error {
	query := `
		UPDATE restricted_numbers
		SET remaining = remaining - $2
		WHERE id = $1
	`

	result, err := r.q.Exec(ctx, query, id, amount)
	if err != nil {
		return fmt.Errorf("failed to decrement restricted number %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("restricted number with ID %d not found", id)
	}

	return nil
}

// DecrementSeller reduces a seller-level row's remaining amount
func (r *RestrictedNumberRepository) DecrementSeller(ctx context.Context, id int64, amount decimal.Decimal) error {
	query := `
		UPDATE seller_restricted_numbers
		SET remaining = remaining - $2
		WHERE id = $1
	`

	result, err := r.q.Exec(ctx, query, id, amount)
	if err != nil {
		return fmt.Errorf("failed to decrement seller restricted number %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("seller restricted number with ID %d not found", id)
	}

	return nil
}

// Upsert creates or replaces a draw-level cap
func (r *RestrictedNumberRepository) Upsert(ctx context.Context, rn *entities.RestrictedNumber) error {
	query := `
		INSERT INTO restricted_numbers (draw_id, number, remaining)
		VALUES ($1, $2, $3)
		ON CONFLICT (draw_id, number) DO UPDATE
		SET remaining = EXCLUDED.remaining
		RETURNING id
	`

	err := r.q.QueryRow(ctx, query, rn.DrawID, rn.Number, rn.Remaining).Scan(&rn.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert restricted number %d for draw %d: %w", rn.Number, rn.DrawID, err)
	}

	return nil
}

// UpsertSeller creates or replaces a seller-level cap
func (r *RestrictedNumberRepository) UpsertSeller(ctx context.Context, rn *entities.SellerRestrictedNumber) error {
	query := `
		INSERT INTO seller_restricted_numbers (draw_id, seller_id, number, remaining)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (draw_id, seller_id, number) DO UPDATE
		SET remaining = EXCLUDED.remaining
		RETURNING id
	`

	err := r.q.QueryRow(ctx, query, rn.DrawID, rn.SellerID, rn.Number, rn.Remaining).Scan(&rn.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert seller restricted number %d for draw %d seller %d: %w",
			rn.Number, rn.DrawID, rn.SellerID, err)
	}

	return nil
}
