package services

import (
	"context"
	"testing"

	"lotobank/domain/entities"
	"lotobank/domain/errs"
	"lotobank/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type outcomeFixture struct {
	drawRepo    *testhelpers.MockDrawRepository
	bankRepo    *testhelpers.MockBankRepository
	lotteryRepo *testhelpers.MockLotteryRepository
	outcomeRepo *testhelpers.MockOutcomeRepository
	publisher   *testhelpers.MockEventPublisher
	service     *outcomeService
}

func newOutcomeFixture() *outcomeFixture {
	f := &outcomeFixture{
		drawRepo:    new(testhelpers.MockDrawRepository),
		bankRepo:    new(testhelpers.MockBankRepository),
		lotteryRepo: new(testhelpers.MockLotteryRepository),
		outcomeRepo: new(testhelpers.MockOutcomeRepository),
		publisher:   new(testhelpers.MockEventPublisher),
	}
	f.service = NewOutcomeService(f.drawRepo, f.bankRepo, f.lotteryRepo, f.outcomeRepo, f.publisher).(*outcomeService)
	return f
}

func TestDeclare(t *testing.T) {
	ctx := context.Background()
	bank := &entities.Bank{ID: 2, OwnerID: 50}
	owner := entities.Actor{ID: 50, Role: entities.RoleBanker}

	t.Run("common outcome is stored with the draw id", func(t *testing.T) {
		f := newOutcomeFixture()
		draw := &entities.Draw{ID: 10, LotteryID: 4, BankID: 2, Variant: entities.VariantCommon}
		outcome := &entities.DrawOutcome{
			Numbers: []*entities.WinningNumber{{Number: 25, Multiplier: dec("70")}},
		}

		f.drawRepo.On("GetByIDForUpdate", ctx, int64(10)).Return(draw, nil)
		f.bankRepo.On("GetByID", ctx, int64(2)).Return(bank, nil)
		f.outcomeRepo.On("Replace", ctx, entities.VariantCommon, outcome).Return(nil)
		f.publisher.On("Publish", mock.AnythingOfType("events.OutcomeDeclaredEvent")).Return(nil)

		err := f.service.Declare(ctx, 10, owner, outcome)

		require.NoError(t, err)
		assert.Equal(t, int64(10), outcome.DrawID)
		f.outcomeRepo.AssertExpectations(t)
	})

	t.Run("computed draw rejects re-declaration", func(t *testing.T) {
		f := newOutcomeFixture()
		draw := &entities.Draw{ID: 10, BankID: 2, Variant: entities.VariantCommon, IsComputed: true}
		f.drawRepo.On("GetByIDForUpdate", ctx, int64(10)).Return(draw, nil)

		err := f.service.Declare(ctx, 10, owner, &entities.DrawOutcome{})

		assert.Equal(t, errs.KindAlreadySettled, errs.KindOf(err))
	})

	t.Run("outcome shape must match the variant", func(t *testing.T) {
		f := newOutcomeFixture()
		draw := &entities.Draw{ID: 10, BankID: 2, Variant: entities.VariantMonazo}
		f.drawRepo.On("GetByIDForUpdate", ctx, int64(10)).Return(draw, nil)
		f.bankRepo.On("GetByID", ctx, int64(2)).Return(bank, nil)

		err := f.service.Declare(ctx, 10, owner, &entities.DrawOutcome{
			Numbers: []*entities.WinningNumber{{Number: 25, Multiplier: dec("70")}},
		})

		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		assert.Equal(t, "invalid_outcome_shape", errs.From(err).ClientKey)
	})

	t.Run("duplicate winning number is rejected", func(t *testing.T) {
		f := newOutcomeFixture()
		draw := &entities.Draw{ID: 10, BankID: 2, Variant: entities.VariantCommon}
		f.drawRepo.On("GetByIDForUpdate", ctx, int64(10)).Return(draw, nil)
		f.bankRepo.On("GetByID", ctx, int64(2)).Return(bank, nil)

		err := f.service.Declare(ctx, 10, owner, &entities.DrawOutcome{
			Numbers: []*entities.WinningNumber{
				{Number: 25, Multiplier: dec("70")},
				{Number: 25, Multiplier: dec("10")},
			},
		})

		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})

	t.Run("non-positive multiplier is rejected", func(t *testing.T) {
		f := newOutcomeFixture()
		draw := &entities.Draw{ID: 10, BankID: 2, Variant: entities.VariantCommon}
		f.drawRepo.On("GetByIDForUpdate", ctx, int64(10)).Return(draw, nil)
		f.bankRepo.On("GetByID", ctx, int64(2)).Return(bank, nil)

		err := f.service.Declare(ctx, 10, owner, &entities.DrawOutcome{
			Numbers: []*entities.WinningNumber{{Number: 25, Multiplier: dec("0")}},
		})

		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})

	t.Run("reventado ball type must be configured", func(t *testing.T) {
		f := newOutcomeFixture()
		draw := &entities.Draw{ID: 10, LotteryID: 4, BankID: 2, Variant: entities.VariantReventado}
		f.drawRepo.On("GetByIDForUpdate", ctx, int64(10)).Return(draw, nil)
		f.bankRepo.On("GetByID", ctx, int64(2)).Return(bank, nil)
		f.lotteryRepo.On("GetByID", ctx, int64(4)).Return(&entities.Lottery{
			ID:        4,
			BallTypes: []*entities.BallType{{ID: 1, Name: "roja", Multiplier: dec("100")}},
		}, nil)

		err := f.service.Declare(ctx, 10, owner, &entities.DrawOutcome{
			Reventado: &entities.ReventadoResult{Number: 33, BallTypeID: 9},
		})

		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		f.outcomeRepo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unrelated banker may not declare", func(t *testing.T) {
		f := newOutcomeFixture()
		draw := &entities.Draw{ID: 10, BankID: 2, Variant: entities.VariantCommon}
		f.drawRepo.On("GetByIDForUpdate", ctx, int64(10)).Return(draw, nil)
		f.bankRepo.On("GetByID", ctx, int64(2)).Return(bank, nil)

		err := f.service.Declare(ctx, 10, entities.Actor{ID: 51, Role: entities.RoleBanker}, &entities.DrawOutcome{
			Numbers: []*entities.WinningNumber{{Number: 25, Multiplier: dec("70")}},
		})

		assert.Equal(t, errs.KindNotAllowed, errs.KindOf(err))
	})
}
