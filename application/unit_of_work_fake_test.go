package application

import (
	"context"

	"lotobank/domain/interfaces"
	"lotobank/domain/testhelpers"
)

// fakeUnitOfWork backs handler tests with the repository mocks and records
// the transaction lifecycle.
type fakeUnitOfWork struct {
	banks        *testhelpers.MockBankRepository
	sellers      *testhelpers.MockSellerRepository
	lotteries    *testhelpers.MockLotteryRepository
	draws        *testhelpers.MockDrawRepository
	tickets      *testhelpers.MockTicketRepository
	outcomes     *testhelpers.MockOutcomeRepository
	commissions  *testhelpers.MockCommissionRepository
	statements   *testhelpers.MockBillingStatementRepository
	restrictions *testhelpers.MockRestrictedNumberRepository
	operations   *testhelpers.MockOperationRepository
	publisher    *testhelpers.MockEventPublisher

	beginErr   error
	commitErr  error
	begun      bool
	committed  bool
	rolledBack bool
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{
		banks:        new(testhelpers.MockBankRepository),
		sellers:      new(testhelpers.MockSellerRepository),
		lotteries:    new(testhelpers.MockLotteryRepository),
		draws:        new(testhelpers.MockDrawRepository),
		tickets:      new(testhelpers.MockTicketRepository),
		outcomes:     new(testhelpers.MockOutcomeRepository),
		commissions:  new(testhelpers.MockCommissionRepository),
		statements:   new(testhelpers.MockBillingStatementRepository),
		restrictions: new(testhelpers.MockRestrictedNumberRepository),
		operations:   new(testhelpers.MockOperationRepository),
		publisher:    new(testhelpers.MockEventPublisher),
	}
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error {
	if u.beginErr != nil {
		return u.beginErr
	}
	u.begun = true
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	if u.commitErr != nil {
		return u.commitErr
	}
	u.committed = true
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	if !u.committed {
		u.rolledBack = true
	}
	return nil
}

func (u *fakeUnitOfWork) BankRepository() interfaces.BankRepository         { return u.banks }
func (u *fakeUnitOfWork) SellerRepository() interfaces.SellerRepository     { return u.sellers }
func (u *fakeUnitOfWork) LotteryRepository() interfaces.LotteryRepository   { return u.lotteries }
func (u *fakeUnitOfWork) DrawRepository() interfaces.DrawRepository         { return u.draws }
func (u *fakeUnitOfWork) TicketRepository() interfaces.TicketRepository     { return u.tickets }
func (u *fakeUnitOfWork) OutcomeRepository() interfaces.OutcomeRepository   { return u.outcomes }
func (u *fakeUnitOfWork) CommissionRepository() interfaces.CommissionRepository {
	return u.commissions
}
func (u *fakeUnitOfWork) BillingStatementRepository() interfaces.BillingStatementRepository {
	return u.statements
}
func (u *fakeUnitOfWork) RestrictedNumberRepository() interfaces.RestrictedNumberRepository {
	return u.restrictions
}
func (u *fakeUnitOfWork) OperationRepository() interfaces.OperationRepository {
	return u.operations
}
func (u *fakeUnitOfWork) EventBus() interfaces.EventPublisher { return u.publisher }

// fakeUnitOfWorkFactory hands out one prepared unit of work and remembers
// the bank it was requested for.
type fakeUnitOfWorkFactory struct {
	uow    *fakeUnitOfWork
	bankID int64
}

func (f *fakeUnitOfWorkFactory) CreateForBank(bankID int64) UnitOfWork {
	f.bankID = bankID
	return f.uow
}
