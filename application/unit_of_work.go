package application

import (
	"context"

	"lotobank/domain/interfaces"
)

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	BankRepository() interfaces.BankRepository
	SellerRepository() interfaces.SellerRepository
	LotteryRepository() interfaces.LotteryRepository
	DrawRepository() interfaces.DrawRepository
	TicketRepository() interfaces.TicketRepository
	OutcomeRepository() interfaces.OutcomeRepository
	CommissionRepository() interfaces.CommissionRepository
	BillingStatementRepository() interfaces.BillingStatementRepository
	RestrictedNumberRepository() interfaces.RestrictedNumberRepository
	OperationRepository() interfaces.OperationRepository
	EventBus() interfaces.EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// CreateForBank creates a new UnitOfWork instance scoped to a specific bank
	CreateForBank(bankID int64) UnitOfWork
}
