package repository

import (
	"context"
	"fmt"

	"lotobank/domain/entities"

	"github.com/jackc/pgx/v5"
)

// BillingStatementRepository implements billing statement data access with
// bank scope
type BillingStatementRepository struct {
	q      Queryable
	bankID int64
}

// NewBillingStatementRepositoryScoped creates a new billing statement repository with bank scope
func NewBillingStatementRepositoryScoped(tx Queryable, bankID int64) *BillingStatementRepository {
	return &BillingStatementRepository{
		q:      tx,
		bankID: bankID,
	}
}

// Create persists a statement with its seller lines
func (r *BillingStatementRepository) Create(ctx context.Context, statement *entities.BillingStatement) error {
	query := `
		INSERT INTO billing_statements (draw_id, bank_id)
		VALUES ($1, $2)
		RETURNING id, billed_at
	`

	err := r.q.QueryRow(ctx, query, statement.DrawID, r.bankID).Scan(
		&statement.ID,
		&statement.BilledAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create billing statement for draw %d: %w", statement.DrawID, err)
	}
	statement.BankID = r.bankID

	for _, line := range statement.Lines {
		err := r.q.QueryRow(ctx, `
			INSERT INTO billing_statement_lines
				(statement_id, seller_id, quantity_sold, commission_amount, prize_to_be_paid)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, statement.ID, line.SellerID, line.QuantitySold, line.CommissionAmount, line.PrizeToBePaid).Scan(&line.ID)
		if err != nil {
			return fmt.Errorf("failed to create statement line for seller %d: %w", line.SellerID, err)
		}
		line.StatementID = statement.ID
	}

	return nil
}

// GetByDraw retrieves the statement of a draw with its lines. Returns nil if
// the draw has not been settled.
func (r *BillingStatementRepository) GetByDraw(ctx context.Context, drawID int64) (*entities.BillingStatement, error) {
	query := `
		SELECT id, draw_id, bank_id, billed_at
		FROM billing_statements
		WHERE draw_id = $1 AND bank_id = $2
	`

	var statement entities.BillingStatement
	err := r.q.QueryRow(ctx, query, drawID, r.bankID).Scan(
		&statement.ID,
		&statement.DrawID,
		&statement.BankID,
		&statement.BilledAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get billing statement for draw %d: %w", drawID, err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, statement_id, seller_id, quantity_sold, commission_amount, prize_to_be_paid
		FROM billing_statement_lines
		WHERE statement_id = $1
		ORDER BY seller_id
	`, statement.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get statement lines for statement %d: %w", statement.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var line entities.StatementLine
		err := rows.Scan(
			&line.ID,
			&line.StatementID,
			&line.SellerID,
			&line.QuantitySold,
			&line.CommissionAmount,
			&line.PrizeToBePaid,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan statement line: %w", err)
		}
		statement.Lines = append(statement.Lines, &line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate statement lines: %w", err)
	}

	return &statement, nil
}
