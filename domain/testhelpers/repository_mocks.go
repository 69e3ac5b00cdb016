package testhelpers

import (
	"context"

	"lotobank/domain/entities"
	"lotobank/domain/events"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockBankRepository is a mock implementation of BankRepository
type MockBankRepository struct {
	mock.Mock
}

func (m *MockBankRepository) GetByID(ctx context.Context, id int64) (*entities.Bank, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Bank), args.Error(1)
}

// MockSellerRepository is a mock implementation of SellerRepository
type MockSellerRepository struct {
	mock.Mock
}

func (m *MockSellerRepository) GetByID(ctx context.Context, id int64) (*entities.Seller, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Seller), args.Error(1)
}

func (m *MockSellerRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Seller, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Seller), args.Error(1)
}

func (m *MockSellerRepository) AdjustBalance(ctx context.Context, sellerID int64, delta decimal.Decimal) error {
	args := m.Called(ctx, sellerID, delta)
	return args.Error(0)
}

func (m *MockSellerRepository) SetBalance(ctx context.Context, sellerID int64, balance decimal.Decimal) error {
	args := m.Called(ctx, sellerID, balance)
	return args.Error(0)
}

// MockLotteryRepository is a mock implementation of LotteryRepository
type MockLotteryRepository struct {
	mock.Mock
}

func (m *MockLotteryRepository) GetByID(ctx context.Context, id int64) (*entities.Lottery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Lottery), args.Error(1)
}

// MockDrawRepository is a mock implementation of DrawRepository
type MockDrawRepository struct {
	mock.Mock
}

func (m *MockDrawRepository) Create(ctx context.Context, draw *entities.Draw) error {
	args := m.Called(ctx, draw)
	return args.Error(0)
}

func (m *MockDrawRepository) GetByID(ctx context.Context, id int64) (*entities.Draw, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Draw), args.Error(1)
}

func (m *MockDrawRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Draw, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Draw), args.Error(1)
}

func (m *MockDrawRepository) MarkComputed(ctx context.Context, drawID int64) (bool, error) {
	args := m.Called(ctx, drawID)
	return args.Bool(0), args.Error(1)
}

// MockTicketRepository is a mock implementation of TicketRepository
type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) Create(ctx context.Context, ticket *entities.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockTicketRepository) GetByID(ctx context.Context, id int64) (*entities.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Ticket), args.Error(1)
}

func (m *MockTicketRepository) GetOutstandingByDraw(ctx context.Context, drawID int64) ([]*entities.Ticket, error) {
	args := m.Called(ctx, drawID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Ticket), args.Error(1)
}

func (m *MockTicketRepository) MarkComputed(ctx context.Context, ticketIDs []int64) error {
	args := m.Called(ctx, ticketIDs)
	return args.Error(0)
}

func (m *MockTicketRepository) AddPrize(ctx context.Context, ticketID int64, amount decimal.Decimal) error {
	args := m.Called(ctx, ticketID, amount)
	return args.Error(0)
}

func (m *MockTicketRepository) Cancel(ctx context.Context, ticketID int64) (bool, error) {
	args := m.Called(ctx, ticketID)
	return args.Bool(0), args.Error(1)
}

// MockOutcomeRepository is a mock implementation of OutcomeRepository
type MockOutcomeRepository struct {
	mock.Mock
}

func (m *MockOutcomeRepository) GetForDraw(ctx context.Context, draw *entities.Draw) (*entities.DrawOutcome, error) {
	args := m.Called(ctx, draw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DrawOutcome), args.Error(1)
}

func (m *MockOutcomeRepository) Replace(ctx context.Context, variant entities.Variant, outcome *entities.DrawOutcome) error {
	args := m.Called(ctx, variant, outcome)
	return args.Error(0)
}

// MockCommissionRepository is a mock implementation of CommissionRepository
type MockCommissionRepository struct {
	mock.Mock
}

func (m *MockCommissionRepository) GetBySellerAndLottery(ctx context.Context, sellerID, lotteryID int64) (*entities.Commission, error) {
	args := m.Called(ctx, sellerID, lotteryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Commission), args.Error(1)
}

func (m *MockCommissionRepository) GetForSellers(ctx context.Context, lotteryID int64, sellerIDs []int64) (map[int64]*entities.Commission, error) {
	args := m.Called(ctx, lotteryID, sellerIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]*entities.Commission), args.Error(1)
}

func (m *MockCommissionRepository) Upsert(ctx context.Context, commission *entities.Commission) error {
	args := m.Called(ctx, commission)
	return args.Error(0)
}

// MockBillingStatementRepository is a mock implementation of BillingStatementRepository
type MockBillingStatementRepository struct {
	mock.Mock
}

func (m *MockBillingStatementRepository) Create(ctx context.Context, statement *entities.BillingStatement) error {
	args := m.Called(ctx, statement)
	return args.Error(0)
}

func (m *MockBillingStatementRepository) GetByDraw(ctx context.Context, drawID int64) (*entities.BillingStatement, error) {
	args := m.Called(ctx, drawID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BillingStatement), args.Error(1)
}

// MockRestrictedNumberRepository is a mock implementation of RestrictedNumberRepository
type MockRestrictedNumberRepository struct {
	mock.Mock
}

func (m *MockRestrictedNumberRepository) GetByDrawForUpdate(ctx context.Context, drawID int64, numbers []int) ([]*entities.RestrictedNumber, error) {
	args := m.Called(ctx, drawID, numbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.RestrictedNumber), args.Error(1)
}

func (m *MockRestrictedNumberRepository) GetBySellerForUpdate(ctx context.Context, drawID, sellerID int64, numbers []int) ([]*entities.SellerRestrictedNumber, error) {
	args := m.Called(ctx, drawID, sellerID, numbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SellerRestrictedNumber), args.Error(1)
}

func (m *MockRestrictedNumberRepository) Decrement(ctx context.Context, id int64, amount decimal.Decimal) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

func (m *MockRestrictedNumberRepository) DecrementSeller(ctx context.Context, id int64, amount decimal.Decimal) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

func (m *MockRestrictedNumberRepository) Upsert(ctx context.Context, rn *entities.RestrictedNumber) error {
	args := m.Called(ctx, rn)
	return args.Error(0)
}

func (m *MockRestrictedNumberRepository) UpsertSeller(ctx context.Context, rn *entities.SellerRestrictedNumber) error {
	args := m.Called(ctx, rn)
	return args.Error(0)
}

// MockOperationRepository is a mock implementation of OperationRepository
type MockOperationRepository struct {
	mock.Mock
}

func (m *MockOperationRepository) Create(ctx context.Context, op *entities.Operation) error {
	args := m.Called(ctx, op)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}
