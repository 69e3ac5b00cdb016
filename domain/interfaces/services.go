package interfaces

import (
	"context"

	"lotobank/domain/entities"
	"lotobank/domain/events"
)

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(event events.Event) error
}

// TransactionalEventPublisher holds events until the owning transaction
// resolves: Flush after commit, Discard after rollback.
type TransactionalEventPublisher interface {
	EventPublisher
	Flush(ctx context.Context) error
	Discard()
}

// SettlementService generates the billing statement for a draw
type SettlementService interface {
	// Settle classifies every outstanding ticket of the draw against the
	// declared winning numbers, accumulates per-seller commission and prize
	// liabilities, and atomically marks the draw and tickets computed,
	// persists the billing statement and adjusts seller balances. The
	// variant must match the draw; a computed draw is rejected.
	Settle(ctx context.Context, drawID int64, variant entities.Variant, actor entities.Actor) (*entities.BillingStatement, error)
}

// RestrictedNumberLedger validates and consumes restricted-number caps
type RestrictedNumberLedger interface {
	// CheckAndReserve validates every requested (number, amount) against
	// both the draw-level and seller-level caps and, only if all pass,
	// decrements the matching rows. A failure leaves no mutation behind.
	CheckAndReserve(ctx context.Context, drawID, sellerID int64, requests []entities.NumberAmount) error

	// Restrict creates or replaces a draw-level cap.
	Restrict(ctx context.Context, actor entities.Actor, rn *entities.RestrictedNumber) error

	// RestrictSeller creates or replaces a seller-level cap.
	RestrictSeller(ctx context.Context, actor entities.Actor, rn *entities.SellerRestrictedNumber) error
}

// SellTicketInput carries one ticket sale request. Exactly one bet slice must
// be populated, matching the draw's variant.
type SellTicketInput struct {
	DrawID     int64
	SellerID   int64
	BuyerName  string
	NumberBets []*entities.NumberBet
	MonazoBets []*entities.MonazoBet
	ParleyBets []*entities.ParleyBet
}

// TicketService sells and cancels tickets
type TicketService interface {
	// Sell validates the draw window, the seller's parametrization and the
	// restricted-number caps, then creates the ticket with its bet entries.
	Sell(ctx context.Context, input SellTicketInput) (*entities.Ticket, error)

	// Cancel marks a ticket cancelled. Only the selling seller or a bank
	// administrator may cancel, and only before the draw's closing time.
	Cancel(ctx context.Context, ticketID int64, actor entities.Actor) error
}

// OutcomeService records the declared winning numbers of a draw
type OutcomeService interface {
	// Declare replaces the draw's outcome. Rejected once the draw is
	// computed.
	Declare(ctx context.Context, drawID int64, actor entities.Actor, outcome *entities.DrawOutcome) error
}

// PaymentService zeroes seller balances through manual operations
type PaymentService interface {
	// SettleBalance zeroes the seller's balance and records an Operation.
	// The operation kind follows the balance sign: positive balances are
	// paid out, negative balances are collected.
	SettleBalance(ctx context.Context, sellerID int64, actor entities.Actor) (*entities.Operation, error)
}
