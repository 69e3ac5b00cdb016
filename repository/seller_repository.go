package repository

import (
	"context"
	"fmt"

	"lotobank/domain/entities"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// SellerRepository implements seller data access with bank scope
type SellerRepository struct {
	q      Queryable
	bankID int64
}

// NewSellerRepositoryScoped creates a new seller repository with bank scope
func NewSellerRepositoryScoped(tx Queryable, bankID int64) *SellerRepository {
	return &SellerRepository{
		q:      tx,
		bankID: bankID,
	}
}

// GetByID retrieves a seller by ID in the current bank
func (r *SellerRepository) GetByID(ctx context.Context, id int64) (*entities.Seller, error) {
	query := `
		SELECT id, bank_id, name, balance, is_deleted, created_at
		FROM sellers
		WHERE id = $1 AND bank_id = $2
	`

	var seller entities.Seller
	err := r.q.QueryRow(ctx, query, id, r.bankID).Scan(
		&seller.ID,
		&seller.BankID,
		&seller.Name,
		&seller.Balance,
		&seller.IsDeleted,
		&seller.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get seller by ID %d: %w", id, err)
	}

	return &seller, nil
}

// GetByIDForUpdate retrieves a seller by ID with row lock for update
func (r *SellerRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Seller, error) {
	query := `
		SELECT id, bank_id, name, balance, is_deleted, created_at
		FROM sellers
		WHERE id = $1 AND bank_id = $2
		FOR UPDATE
	`

	var seller entities.Seller
	err := r.q.QueryRow(ctx, query, id, r.bankID).Scan(
		&seller.ID,
		&seller.BankID,
		&seller.Name,
		&seller.Balance,
		&seller.IsDeleted,
		&seller.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get seller for update by ID %d: %w", id, err)
	}

	return &seller, nil
}

// AdjustBalance atomically increments the seller's balance by delta
func (r *SellerRepository) AdjustBalance(ctx context.Context, sellerID int64, delta decimal.Decimal) error {
	query := `
		UPDATE sellers
		SET balance = balance + $2
		WHERE id = $1 AND bank_id = $3
	`

	result, err := r.q.Exec(ctx, query, sellerID, delta, r.bankID)
	if err != nil {
		return fmt.Errorf("failed to adjust balance for seller %d: %w", sellerID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("seller with ID %d not found", sellerID)
	}

	return nil
}

// SetBalance overwrites the seller's balance
func (r *SellerRepository) SetBalance(ctx context.Context, sellerID int64, balance decimal.Decimal) error {
	query := `
		UPDATE sellers
		SET balance = $2
		WHERE id = $1 AND bank_id = $3
	`

	result, err := r.q.Exec(ctx, query, sellerID, balance, r.bankID)
	if err != nil {
		return fmt.Errorf("failed to set balance for seller %d: %w", sellerID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("seller with ID %d not found", sellerID)
	}

	return nil
}
