package repository

import (
	"context"
	"fmt"

	"lotobank/domain/entities"
)

// OperationRepository implements manual balance operation data access with
// bank scope
type OperationRepository struct {
	q      Queryable
	bankID int64
}

// NewOperationRepositoryScoped creates a new operation repository with bank scope
func NewOperationRepositoryScoped(tx Queryable, bankID int64) *OperationRepository {
	return &OperationRepository{
		q:      tx,
		bankID: bankID,
	}
}

// Create persists an operation record
func (r *OperationRepository) Create(ctx context.Context, op *entities.Operation) error {
	query := `
		INSERT INTO operations (seller_id, bank_id, kind, amount, performed_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, performed_at
	`

	err := r.q.QueryRow(ctx, query,
		op.SellerID,
		r.bankID,
		op.Kind,
		op.Amount,
		op.PerformedBy,
	).Scan(&op.ID, &op.PerformedAt)
	if err != nil {
		return fmt.Errorf("failed to create operation for seller %d: %w", op.SellerID, err)
	}

	op.BankID = r.bankID
	return nil
}
