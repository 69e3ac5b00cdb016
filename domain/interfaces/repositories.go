package interfaces

import (
	"context"

	"lotobank/domain/entities"

	"github.com/shopspring/decimal"
)

// BankRepository defines data access for banks
type BankRepository interface {
	// GetByID retrieves a bank by ID. Returns nil if not found.
	GetByID(ctx context.Context, id int64) (*entities.Bank, error)
}

// SellerRepository defines data access for sellers and their balances
type SellerRepository interface {
	// GetByID retrieves a seller by ID. Returns nil if not found.
	GetByID(ctx context.Context, id int64) (*entities.Seller, error)

	// GetByIDForUpdate retrieves a seller with a row lock for update.
	GetByIDForUpdate(ctx context.Context, id int64) (*entities.Seller, error)

	// AdjustBalance atomically increments the seller's balance by delta.
	// Callers are responsible for wrapping it in their own transaction when
	// multiple sellers are adjusted together.
	AdjustBalance(ctx context.Context, sellerID int64, delta decimal.Decimal) error

	// SetBalance overwrites the seller's balance.
	SetBalance(ctx context.Context, sellerID int64, balance decimal.Decimal) error
}

// LotteryRepository defines data access for lotteries and their variant
// configuration (ball types, monazo multipliers).
type LotteryRepository interface {
	// GetByID retrieves a lottery with its payout configuration loaded.
	// Returns nil if not found.
	GetByID(ctx context.Context, id int64) (*entities.Lottery, error)
}

// DrawRepository defines data access for scheduled draws
type DrawRepository interface {
	// Create persists a new scheduled draw.
	Create(ctx context.Context, draw *entities.Draw) error

	// GetByID retrieves a draw by ID. Returns nil if not found.
	GetByID(ctx context.Context, id int64) (*entities.Draw, error)

	// GetByIDForUpdate retrieves a draw with a row lock for update.
	GetByIDForUpdate(ctx context.Context, id int64) (*entities.Draw, error)

	// MarkComputed transitions is_computed from false to true and reports
	// whether this call performed the transition. A false return means a
	// concurrent settlement already claimed the draw.
	MarkComputed(ctx context.Context, drawID int64) (bool, error)
}

// TicketRepository defines data access for tickets and their bet entries
type TicketRepository interface {
	// Create persists a ticket together with its bet entries.
	Create(ctx context.Context, ticket *entities.Ticket) error

	// GetByID retrieves a ticket with bet entries. Returns nil if not found.
	GetByID(ctx context.Context, id int64) (*entities.Ticket, error)

	// GetOutstandingByDraw returns all non-cancelled, non-computed tickets
	// of the draw with their bet entries loaded.
	GetOutstandingByDraw(ctx context.Context, drawID int64) ([]*entities.Ticket, error)

	// MarkComputed sets is_computed on the given tickets.
	MarkComputed(ctx context.Context, ticketIDs []int64) error

	// AddPrize increments the ticket's running prize total.
	AddPrize(ctx context.Context, ticketID int64, amount decimal.Decimal) error

	// Cancel transitions is_cancelled from false to true and reports whether
	// this call performed the transition.
	Cancel(ctx context.Context, ticketID int64) (bool, error)
}

// OutcomeRepository defines data access for declared winning numbers
type OutcomeRepository interface {
	// GetForDraw loads the variant-shaped outcome declared for the draw.
	// The returned outcome is never nil; use Declared to test presence.
	GetForDraw(ctx context.Context, draw *entities.Draw) (*entities.DrawOutcome, error)

	// Replace removes any previous declaration for the draw and records the
	// given outcome.
	Replace(ctx context.Context, variant entities.Variant, outcome *entities.DrawOutcome) error
}

// CommissionRepository defines data access for seller commission agreements
type CommissionRepository interface {
	// GetBySellerAndLottery retrieves one agreement. Returns nil if absent.
	GetBySellerAndLottery(ctx context.Context, sellerID, lotteryID int64) (*entities.Commission, error)

	// GetForSellers retrieves the agreements of the given sellers for one
	// lottery, keyed by seller ID. Absent sellers are absent from the map.
	GetForSellers(ctx context.Context, lotteryID int64, sellerIDs []int64) (map[int64]*entities.Commission, error)

	// Upsert creates or updates an agreement.
	Upsert(ctx context.Context, commission *entities.Commission) error
}

// BillingStatementRepository defines data access for billing statements
type BillingStatementRepository interface {
	// Create persists a statement with its seller lines.
	Create(ctx context.Context, statement *entities.BillingStatement) error

	// GetByDraw retrieves the statement of a draw with its lines.
	// Returns nil if the draw has not been settled.
	GetByDraw(ctx context.Context, drawID int64) (*entities.BillingStatement, error)
}

// RestrictedNumberRepository defines data access for the restricted-number
// caps at draw and seller level
type RestrictedNumberRepository interface {
	// GetByDrawForUpdate loads the draw-level rows for the given numbers
	// with row locks, so validation and decrement form one atomic unit.
	GetByDrawForUpdate(ctx context.Context, drawID int64, numbers []int) ([]*entities.RestrictedNumber, error)

	// GetBySellerForUpdate loads the seller-level rows for the given numbers
	// with row locks.
	GetBySellerForUpdate(ctx context.Context, drawID, sellerID int64, numbers []int) ([]*entities.SellerRestrictedNumber, error)

	// Decrement reduces a draw-level row's remaining amount.
	Decrement(ctx context.Context, id int64, amount decimal.Decimal) error

	// DecrementSeller reduces a seller-level row's remaining amount.
	DecrementSeller(ctx context.Context, id int64, amount decimal.Decimal) error

	// Upsert creates or replaces a draw-level cap.
	Upsert(ctx context.Context, rn *entities.RestrictedNumber) error

	// UpsertSeller creates or replaces a seller-level cap.
	UpsertSeller(ctx context.Context, rn *entities.SellerRestrictedNumber) error
}

// OperationRepository defines data access for manual balance operations
type OperationRepository interface {
	// Create persists an operation record.
	Create(ctx context.Context, op *entities.Operation) error
}
