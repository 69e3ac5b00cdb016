package repository

import (
	"context"
	"fmt"

	"lotobank/domain/entities"

	"github.com/jackc/pgx/v5"
)

// CommissionRepository implements seller commission agreement data access
type CommissionRepository struct {
	q Queryable
}

// NewCommissionRepositoryWithTx creates a new commission repository with a transaction
func NewCommissionRepositoryWithTx(tx Queryable) *CommissionRepository {
	return &CommissionRepository{q: tx}
}

// GetBySellerAndLottery retrieves one agreement. Returns nil if absent.
func (r *CommissionRepository) GetBySellerAndLottery(ctx context.Context, sellerID, lotteryID int64) (*entities.Commission, error) {
	query := `
		SELECT id, seller_id, lottery_id, percent
		FROM commissions
		WHERE seller_id = $1 AND lottery_id = $2
	`

	var c entities.Commission
	err := r.q.QueryRow(ctx, query, sellerID, lotteryID).Scan(
		&c.ID,
		&c.SellerID,
		&c.LotteryID,
		&c.Percent,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get commission for seller %d lottery %d: %w", sellerID, lotteryID, err)
	}

	return &c, nil
}

// GetForSellers retrieves the agreements of the given sellers for one
// lottery, keyed by seller ID. Sellers without an agreement are absent from
// the map.
func (r *CommissionRepository) GetForSellers(ctx context.Context, lotteryID int64, sellerIDs []int64) (map[int64]*entities.Commission, error) {
	commissions := make(map[int64]*entities.Commission, len(sellerIDs))
	if len(sellerIDs) == 0 {
		return commissions, nil
	}

	query := `
		SELECT id, seller_id, lottery_id, percent
		FROM commissions
		WHERE lottery_id = $1 AND seller_id = ANY($2)
	`

	rows, err := r.q.Query(ctx, query, lotteryID, sellerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get commissions for lottery %d: %w", lotteryID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var c entities.Commission
		if err := rows.Scan(&c.ID, &c.SellerID, &c.LotteryID, &c.Percent); err != nil {
			return nil, fmt.Errorf("failed to scan commission: %w", err)
		}
		commissions[c.SellerID] = &c
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate commissions: %w", err)
	}

	return commissions, nil
}

// Upsert creates or updates an agreement
func (r *CommissionRepository) Upsert(ctx context.Context, commission *entities.Commission) error {
	query := `
		INSERT INTO commissions (seller_id, lottery_id, percent)
		VALUES ($1, $2, $3)
		ON CONFLICT (seller_id, lottery_id) DO UPDATE
		SET percent = EXCLUDED.percent
		RETURNING id
	`

	err := r.q.QueryRow(ctx, query,
		commission.SellerID,
		commission.LotteryID,
		commission.Percent,
	).Scan(&commission.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert commission for seller %d lottery %d: %w",
			commission.SellerID, commission.LotteryID, err)
	}

	return nil
}
