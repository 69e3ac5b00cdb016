package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Seller issues tickets on behalf of a bank and carries a running balance.
// A negative balance means the seller owes the bank; positive means the bank
// owes the seller.
type Seller struct {
	ID        int64           `db:"id"`
	BankID    int64           `db:"bank_id"`
	Name      string          `db:"name"`
	Balance   decimal.Decimal `db:"balance"`
	IsDeleted bool            `db:"is_deleted"`
	CreatedAt time.Time       `db:"created_at"`
}

// OperationKind classifies a manual balance operation.
type OperationKind string

const (
	// OperationPayment: the bank pays out a positive seller balance.
	OperationPayment OperationKind = "payment"
	// OperationCollection: the bank collects a negative seller balance.
	OperationCollection OperationKind = "collection"
)

// Operation records one manual payment or collection that zeroed a seller's
// balance.
type Operation struct {
	ID          int64           `db:"id"`
	SellerID    int64           `db:"seller_id"`
	BankID      int64           `db:"bank_id"`
	Kind        OperationKind   `db:"kind"`
	Amount      decimal.Decimal `db:"amount"`
	PerformedBy int64           `db:"performed_by"`
	PerformedAt time.Time       `db:"performed_at"`
}
