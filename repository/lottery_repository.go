package repository

import (
	"context"
	"fmt"

	"lotobank/domain/entities"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// LotteryRepository implements lottery data access with bank scope
type LotteryRepository struct {
	q      Queryable
	bankID int64
}

// NewLotteryRepositoryScoped creates a new lottery repository with bank scope
func NewLotteryRepositoryScoped(tx Queryable, bankID int64) *LotteryRepository {
	return &LotteryRepository{
		q:      tx,
		bankID: bankID,
	}
}

// GetByID retrieves a lottery by ID with its payout configuration loaded
func (r *LotteryRepository) GetByID(ctx context.Context, id int64) (*entities.Lottery, error) {
	query := `
		SELECT id, bank_id, name, variant, reventado_multiplier, parley_multiplier,
		       is_deleted, created_at
		FROM lotteries
		WHERE id = $1 AND bank_id = $2
	`

	var lottery entities.Lottery
	var reventadoMul, parleyMul *decimal.Decimal
	err := r.q.QueryRow(ctx, query, id, r.bankID).Scan(
		&lottery.ID,
		&lottery.BankID,
		&lottery.Name,
		&lottery.Variant,
		&reventadoMul,
		&parleyMul,
		&lottery.IsDeleted,
		&lottery.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lottery by ID %d: %w", id, err)
	}

	if reventadoMul != nil {
		lottery.ReventadoMultiplier = *reventadoMul
	}
	if parleyMul != nil {
		lottery.ParleyMultiplier = *parleyMul
	}

	if err := r.loadBallTypes(ctx, &lottery); err != nil {
		return nil, err
	}
	if err := r.loadMonazoMultipliers(ctx, &lottery); err != nil {
		return nil, err
	}

	return &lottery, nil
}

func (r *LotteryRepository) loadBallTypes(ctx context.Context, lottery *entities.Lottery) error {
	query := `
		SELECT id, lottery_id, name, multiplier
		FROM lottery_ball_types
		WHERE lottery_id = $1
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query, lottery.ID)
	if err != nil {
		return fmt.Errorf("failed to get ball types for lottery %d: %w", lottery.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var bt entities.BallType
		err := rows.Scan(&bt.ID, &bt.LotteryID, &bt.Name, &bt.Multiplier)
		if err != nil {
			return fmt.Errorf("failed to scan ball type: %w", err)
		}
		lottery.BallTypes = append(lottery.BallTypes, &bt)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate ball types: %w", err)
	}

	return nil
}

func (r *LotteryRepository) loadMonazoMultipliers(ctx context.Context, lottery *entities.Lottery) error {
	query := `
		SELECT monazo_type, multiplier
		FROM lottery_monazo_types
		WHERE lottery_id = $1
	`

	rows, err := r.q.Query(ctx, query, lottery.ID)
	if err != nil {
		return fmt.Errorf("failed to get monazo multipliers for lottery %d: %w", lottery.ID, err)
	}
	defer rows.Close()

	lottery.MonazoMultipliers = make(map[int]decimal.Decimal)
	for rows.Next() {
		var monazoType int
		var multiplier decimal.Decimal
		err := rows.Scan(&monazoType, &multiplier)
		if err != nil {
			return fmt.Errorf("failed to scan monazo multiplier: %w", err)
		}
		lottery.MonazoMultipliers[monazoType] = multiplier
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate monazo multipliers: %w", err)
	}

	return nil
}
