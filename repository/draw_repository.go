package repository

import (
	"context"
	"fmt"

	"lotobank/domain/entities"

	"github.com/jackc/pgx/v5"
)

// DrawRepository implements draw data access with bank scope
type DrawRepository struct {
	q      Queryable
	bankID int64
}

// NewDrawRepositoryScoped creates a new draw repository with bank scope
func NewDrawRepositoryScoped(tx Queryable, bankID int64) *DrawRepository {
	return &DrawRepository{
		q:      tx,
		bankID: bankID,
	}
}

// Create persists a new scheduled draw
func (r *DrawRepository) Create(ctx context.Context, draw *entities.Draw) error {
	query := `
		INSERT INTO draws (lottery_id, bank_id, variant, scheduled_for, closes_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_deleted, is_computed, created_at
	`

	err := r.q.QueryRow(ctx, query,
		draw.LotteryID,
		r.bankID,
		draw.Variant,
		draw.ScheduledFor,
		draw.ClosesAt,
	).Scan(
		&draw.ID,
		&draw.IsDeleted,
		&draw.IsComputed,
		&draw.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create draw: %w", err)
	}

	draw.BankID = r.bankID
	return nil
}

// GetByID retrieves a draw by its ID
func (r *DrawRepository) GetByID(ctx context.Context, id int64) (*entities.Draw, error) {
	query := `
		SELECT id, lottery_id, bank_id, variant, scheduled_for, closes_at,
		       is_deleted, is_computed, created_at
		FROM draws
		WHERE id = $1 AND bank_id = $2
	`

	var draw entities.Draw
	err := r.q.QueryRow(ctx, query, id, r.bankID).Scan(
		&draw.ID,
		&draw.LotteryID,
		&draw.BankID,
		&draw.Variant,
		&draw.ScheduledFor,
		&draw.ClosesAt,
		&draw.IsDeleted,
		&draw.IsComputed,
		&draw.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draw by ID %d: %w", id, err)
	}

	return &draw, nil
}

// GetByIDForUpdate retrieves a draw by ID with row lock for update
func (r *DrawRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Draw, error) {
	query := `
		SELECT id, lottery_id, bank_id, variant, scheduled_for, closes_at,
		       is_deleted, is_computed, created_at
		FROM draws
		WHERE id = $1 AND bank_id = $2
		FOR UPDATE
	`

	var draw entities.Draw
	err := r.q.QueryRow(ctx, query, id, r.bankID).Scan(
		&draw.ID,
		&draw.LotteryID,
		&draw.BankID,
		&draw.Variant,
		&draw.ScheduledFor,
		&draw.ClosesAt,
		&draw.IsDeleted,
		&draw.IsComputed,
		&draw.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draw for update by ID %d: %w", id, err)
	}

	return &draw, nil
}

// MarkComputed transitions is_computed from false to true. The returned bool
// reports whether this call performed the transition; false means another
// settlement got there first.
func (r *DrawRepository) MarkComputed(ctx context.Context, drawID int64) (bool, error) {
	query := `
		UPDATE draws
		SET is_computed = TRUE
		WHERE id = $1
		  AND bank_id = $2
		  AND is_computed = FALSE
	`

	result, err := r.q.Exec(ctx, query, drawID, r.bankID)
	if err != nil {
		return false, fmt.Errorf("failed to mark draw %d computed: %w", drawID, err)
	}

	return result.RowsAffected() > 0, nil
}
