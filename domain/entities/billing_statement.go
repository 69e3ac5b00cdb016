package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillingStatement is the persisted record of one settlement of one draw.
// Created once, atomically with the draw, ticket and balance mutations, and
// immutable afterwards.
type BillingStatement struct {
	ID       int64     `db:"id"`
	DrawID   int64     `db:"draw_id"`
	BankID   int64     `db:"bank_id"`
	BilledAt time.Time `db:"billed_at"`

	Lines []*StatementLine
}

// StatementLine summarizes one seller's sales, commission and prize
// liability within a billing statement.
type StatementLine struct {
	ID               int64           `db:"id"`
	StatementID      int64           `db:"statement_id"`
	SellerID         int64           `db:"seller_id"`
	QuantitySold     decimal.Decimal `db:"quantity_sold"`
	CommissionAmount decimal.Decimal `db:"commission_amount"`
	PrizeToBePaid    decimal.Decimal `db:"prize_to_be_paid"`
}

// BalanceDelta is the amount applied to the seller's running balance for
// this line: quantity sold minus commission minus prize liability.
func (l *StatementLine) BalanceDelta() decimal.Decimal {
	return l.QuantitySold.Sub(l.CommissionAmount).Sub(l.PrizeToBePaid)
}

// TotalSold sums quantity sold across all lines.
func (s *BillingStatement) TotalSold() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.Lines {
		total = total.Add(l.QuantitySold)
	}
	return total
}

// TotalPrizes sums prize liability across all lines.
func (s *BillingStatement) TotalPrizes() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.Lines {
		total = total.Add(l.PrizeToBePaid)
	}
	return total
}
