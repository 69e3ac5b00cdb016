package events

import "github.com/shopspring/decimal"

// EventType represents different types of domain events in the system
type EventType string

const (
	EventTypeTicketSold      EventType = "ticket_sold"
	EventTypeTicketCancelled EventType = "ticket_cancelled"
	EventTypeDrawSettled     EventType = "draw_settled"
	EventTypeOutcomeDeclared EventType = "outcome_declared"
	EventTypeBalanceSettled  EventType = "balance_settled"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// TicketSoldEvent is published after a ticket sale commits.
type TicketSoldEvent struct {
	TicketID   int64
	DrawID     int64
	BankID     int64
	SellerID   int64
	TotalPrice decimal.Decimal
}

func (e TicketSoldEvent) Type() EventType {
	return EventTypeTicketSold
}

// TicketCancelledEvent is published after a ticket cancellation commits.
type TicketCancelledEvent struct {
	TicketID int64
	DrawID   int64
	BankID   int64
	SellerID int64
}

func (e TicketCancelledEvent) Type() EventType {
	return EventTypeTicketCancelled
}

// DrawSettledEvent is published after a settlement transaction commits.
type DrawSettledEvent struct {
	DrawID      int64
	BankID      int64
	StatementID int64
	SellerCount int
	TotalSold   decimal.Decimal
	TotalPrizes decimal.Decimal
}

func (e DrawSettledEvent) Type() EventType {
	return EventTypeDrawSettled
}

// OutcomeDeclaredEvent is published after winning numbers are recorded.
type OutcomeDeclaredEvent struct {
	DrawID int64
	BankID int64
}

func (e OutcomeDeclaredEvent) Type() EventType {
	return EventTypeOutcomeDeclared
}

// BalanceSettledEvent is published after a manual payment or collection
// zeroes a seller's balance.
type BalanceSettledEvent struct {
	SellerID    int64
	BankID      int64
	OperationID int64
	Amount      decimal.Decimal
	Kind        string
}

func (e BalanceSettledEvent) Type() EventType {
	return EventTypeBalanceSettled
}
