package repository

import (
	"context"
	"fmt"

	"lotobank/application"
	"lotobank/database"
	"lotobank/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the application.UnitOfWork interface
type unitOfWork struct {
	db                     *database.DB
	tx                     pgx.Tx
	ctx                    context.Context
	bankID                 int64
	transactionalPublisher interfaces.TransactionalEventPublisher
	bankRepo               interfaces.BankRepository
	sellerRepo             interfaces.SellerRepository
	lotteryRepo            interfaces.LotteryRepository
	drawRepo               interfaces.DrawRepository
	ticketRepo             interfaces.TicketRepository
	outcomeRepo            interfaces.OutcomeRepository
	commissionRepo         interfaces.CommissionRepository
	statementRepo          interfaces.BillingStatementRepository
	restrictedRepo         interfaces.RestrictedNumberRepository
	operationRepo          interfaces.OperationRepository
}

type unitOfWorkFactory struct {
	db               *database.DB
	publisherFactory func() interfaces.TransactionalEventPublisher
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory. publisherFactory
// produces one transactional publisher per unit of work; its pending events
// are flushed on commit and discarded on rollback.
func NewUnitOfWorkFactory(db *database.DB, publisherFactory func() interfaces.TransactionalEventPublisher) application.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:               db,
		publisherFactory: publisherFactory,
	}
}

// CreateForBank creates a new UnitOfWork scoped to a specific bank
func (f *unitOfWorkFactory) CreateForBank(bankID int64) application.UnitOfWork {
	return &unitOfWork{
		db:                     f.db,
		bankID:                 bankID,
		transactionalPublisher: f.publisherFactory(),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create bank-scoped repositories with the transaction
	u.bankRepo = NewBankRepositoryWithTx(tx)
	u.sellerRepo = NewSellerRepositoryScoped(tx, u.bankID)
	u.lotteryRepo = NewLotteryRepositoryScoped(tx, u.bankID)
	u.drawRepo = NewDrawRepositoryScoped(tx, u.bankID)
	u.ticketRepo = NewTicketRepositoryScoped(tx, u.bankID)
	u.outcomeRepo = NewOutcomeRepositoryWithTx(tx)
	u.commissionRepo = NewCommissionRepositoryWithTx(tx)
	u.statementRepo = NewBillingStatementRepositoryScoped(tx, u.bankID)
	u.restrictedRepo = NewRestrictedNumberRepositoryWithTx(tx)
	u.operationRepo = NewOperationRepositoryScoped(tx, u.bankID)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	// Flush pending events after successful commit
	if u.transactionalPublisher != nil {
		u.transactionalPublisher.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	// Discard pending events on rollback
	if u.transactionalPublisher != nil {
		u.transactionalPublisher.Discard()
	}

	return nil
}

// BankRepository returns the bank repository for this unit of work
func (u *unitOfWork) BankRepository() interfaces.BankRepository {
	if u.bankRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.bankRepo
}

// SellerRepository returns the seller repository for this unit of work
func (u *unitOfWork) SellerRepository() interfaces.SellerRepository {
	if u.sellerRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.sellerRepo
}

// LotteryRepository returns the lottery repository for this unit of work
func (u *unitOfWork) LotteryRepository() interfaces.LotteryRepository {
	if u.lotteryRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.lotteryRepo
}

// DrawRepository returns the draw repository for this unit of work
func (u *unitOfWork) DrawRepository() interfaces.DrawRepository {
	if u.drawRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.drawRepo
}

// TicketRepository returns the ticket repository for this unit of work
func (u *unitOfWork) TicketRepository() interfaces.TicketRepository {
	if u.ticketRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.ticketRepo
}

// OutcomeRepository returns the outcome repository for this unit of work
func (u *unitOfWork) OutcomeRepository() interfaces.OutcomeRepository {
	if u.outcomeRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.outcomeRepo
}

// CommissionRepository returns the commission repository for this unit of work
func (u *unitOfWork) CommissionRepository() interfaces.CommissionRepository {
	if u.commissionRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.commissionRepo
}

// BillingStatementRepository returns the billing statement repository for this unit of work
func (u *unitOfWork) BillingStatementRepository() interfaces.BillingStatementRepository {
	if u.statementRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.statementRepo
}

// RestrictedNumberRepository returns the restricted number repository for this unit of work
func (u *unitOfWork) RestrictedNumberRepository() interfaces.RestrictedNumberRepository {
	if u.restrictedRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.restrictedRepo
}

// OperationRepository returns the operation repository for this unit of work
func (u *unitOfWork) OperationRepository() interfaces.OperationRepository {
	if u.operationRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.operationRepo
}

// EventBus returns the transactional event publisher for this unit of work
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	if u.transactionalPublisher == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalPublisher
}
