package services

import (
	"context"
	"testing"

	"lotobank/domain/entities"
	"lotobank/domain/errs"
	"lotobank/domain/testhelpers"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type paymentFixture struct {
	sellerRepo    *testhelpers.MockSellerRepository
	bankRepo      *testhelpers.MockBankRepository
	operationRepo *testhelpers.MockOperationRepository
	publisher     *testhelpers.MockEventPublisher
	service       *paymentService
}

func newPaymentFixture() *paymentFixture {
	f := &paymentFixture{
		sellerRepo:    new(testhelpers.MockSellerRepository),
		bankRepo:      new(testhelpers.MockBankRepository),
		operationRepo: new(testhelpers.MockOperationRepository),
		publisher:     new(testhelpers.MockEventPublisher),
	}
	f.service = NewPaymentService(f.sellerRepo, f.bankRepo, f.operationRepo, f.publisher).(*paymentService)
	return f
}

func TestSettleBalance(t *testing.T) {
	ctx := context.Background()
	bank := &entities.Bank{ID: 2, OwnerID: 50}
	owner := entities.Actor{ID: 50, Role: entities.RoleBanker}

	t.Run("positive balance is paid out", func(t *testing.T) {
		f := newPaymentFixture()
		f.sellerRepo.On("GetByIDForUpdate", ctx, int64(100)).Return(&entities.Seller{
			ID: 100, BankID: 2, Balance: dec("35.5"),
		}, nil)
		f.bankRepo.On("GetByID", ctx, int64(2)).Return(bank, nil)
		f.operationRepo.On("Create", ctx, mock.AnythingOfType("*entities.Operation")).Run(func(args mock.Arguments) {
			args.Get(1).(*entities.Operation).ID = 9
		}).Return(nil)
		f.sellerRepo.On("SetBalance", ctx, int64(100), decimalEqual(decimal.Zero)).Return(nil)
		f.publisher.On("Publish", mock.AnythingOfType("events.BalanceSettledEvent")).Return(nil)

		op, err := f.service.SettleBalance(ctx, 100, owner)

		require.NoError(t, err)
		assert.Equal(t, entities.OperationPayment, op.Kind)
		assert.True(t, op.Amount.Equal(dec("35.5")))
		assert.Equal(t, int64(50), op.PerformedBy)
		f.sellerRepo.AssertExpectations(t)
	})

	t.Run("negative balance is collected", func(t *testing.T) {
		f := newPaymentFixture()
		f.sellerRepo.On("GetByIDForUpdate", ctx, int64(100)).Return(&entities.Seller{
			ID: 100, BankID: 2, Balance: dec("-12"),
		}, nil)
		f.bankRepo.On("GetByID", ctx, int64(2)).Return(bank, nil)
		f.operationRepo.On("Create", ctx, mock.AnythingOfType("*entities.Operation")).Return(nil)
		f.sellerRepo.On("SetBalance", ctx, int64(100), decimalEqual(decimal.Zero)).Return(nil)
		f.publisher.On("Publish", mock.AnythingOfType("events.BalanceSettledEvent")).Return(nil)

		op, err := f.service.SettleBalance(ctx, 100, owner)

		require.NoError(t, err)
		assert.Equal(t, entities.OperationCollection, op.Kind)
		assert.True(t, op.Amount.Equal(dec("12")))
	})

	t.Run("zero balance has nothing to settle", func(t *testing.T) {
		f := newPaymentFixture()
		f.sellerRepo.On("GetByIDForUpdate", ctx, int64(100)).Return(&entities.Seller{
			ID: 100, BankID: 2, Balance: decimal.Zero,
		}, nil)
		f.bankRepo.On("GetByID", ctx, int64(2)).Return(bank, nil)

		_, err := f.service.SettleBalance(ctx, 100, owner)

		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		assert.Equal(t, "balance_already_zero", errs.From(err).ClientKey)
		f.operationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("seller may not settle balances", func(t *testing.T) {
		f := newPaymentFixture()
		f.sellerRepo.On("GetByIDForUpdate", ctx, int64(100)).Return(&entities.Seller{
			ID: 100, BankID: 2, Balance: dec("10"),
		}, nil)
		f.bankRepo.On("GetByID", ctx, int64(2)).Return(bank, nil)

		_, err := f.service.SettleBalance(ctx, 100, entities.Actor{ID: 100, Role: entities.RoleSeller})

		assert.Equal(t, errs.KindNotAllowed, errs.KindOf(err))
	})

	t.Run("missing seller", func(t *testing.T) {
		f := newPaymentFixture()
		f.sellerRepo.On("GetByIDForUpdate", ctx, int64(100)).Return(nil, nil)

		_, err := f.service.SettleBalance(ctx, 100, owner)

		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	})
}
