package repository

import (
	"context"
	"fmt"

	"lotobank/domain/entities"

	"github.com/jackc/pgx/v5"
)

// BankRepository implements bank data access
type BankRepository struct {
	q Queryable
}

// NewBankRepositoryWithTx creates a new bank repository with a transaction
func NewBankRepositoryWithTx(tx Queryable) *BankRepository {
	return &BankRepository{q: tx}
}

// GetByID retrieves a bank by its ID
func (r *BankRepository) GetByID(ctx context.Context, id int64) (*entities.Bank, error) {
	query := `
		SELECT id, name, owner_id, is_deleted, created_at
		FROM banks
		WHERE id = $1
	`

	var bank entities.Bank
	err := r.q.QueryRow(ctx, query, id).Scan(
		&bank.ID,
		&bank.Name,
		&bank.OwnerID,
		&bank.IsDeleted,
		&bank.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bank by ID %d: %w", id, err)
	}

	return &bank, nil
}
