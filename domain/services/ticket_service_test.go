package services

import (
	"context"
	"testing"
	"time"

	"lotobank/domain/entities"
	"lotobank/domain/errs"
	"lotobank/domain/interfaces"
	"lotobank/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type ticketFixture struct {
	drawRepo       *testhelpers.MockDrawRepository
	bankRepo       *testhelpers.MockBankRepository
	sellerRepo     *testhelpers.MockSellerRepository
	ticketRepo     *testhelpers.MockTicketRepository
	commissionRepo *testhelpers.MockCommissionRepository
	ledger         *testhelpers.MockRestrictedNumberLedger
	publisher      *testhelpers.MockEventPublisher
	service        interfaces.TicketService
}

func newTicketFixture() *ticketFixture {
	f := &ticketFixture{
		drawRepo:       new(testhelpers.MockDrawRepository),
		bankRepo:       new(testhelpers.MockBankRepository),
		sellerRepo:     new(testhelpers.MockSellerRepository),
		ticketRepo:     new(testhelpers.MockTicketRepository),
		commissionRepo: new(testhelpers.MockCommissionRepository),
		ledger:         new(testhelpers.MockRestrictedNumberLedger),
		publisher:      new(testhelpers.MockEventPublisher),
	}
	f.service = NewTicketService(
		f.drawRepo, f.bankRepo, f.sellerRepo, f.ticketRepo, f.commissionRepo,
		f.ledger, f.publisher,
	)
	return f
}

func openDraw(variant entities.Variant) *entities.Draw {
	return &entities.Draw{
		ID:        10,
		LotteryID: 4,
		BankID:    2,
		Variant:   variant,
		ClosesAt:  time.Now().Add(time.Hour),
	}
}

func activeSeller() *entities.Seller {
	return &entities.Seller{ID: 100, BankID: 2, Name: "Marta"}
}

func sellerCommission() *entities.Commission {
	return &entities.Commission{ID: 1, SellerID: 100, LotteryID: 4, Percent: dec("10")}
}

func commonInput() interfaces.SellTicketInput {
	return interfaces.SellTicketInput{
		DrawID:    10,
		SellerID:  100,
		BuyerName: "Luis",
		NumberBets: []*entities.NumberBet{
			{Number: 25, Amount: dec("10")},
			{Number: 25, Amount: dec("5")},
		},
	}
}

func TestSell_CommonTicket(t *testing.T) {
	f := newTicketFixture()
	ctx := context.Background()

	f.drawRepo.On("GetByID", ctx, int64(10)).Return(openDraw(entities.VariantCommon), nil)
	f.sellerRepo.On("GetByID", ctx, int64(100)).Return(activeSeller(), nil)
	f.commissionRepo.On("GetBySellerAndLottery", ctx, int64(100), int64(4)).Return(sellerCommission(), nil)
	f.ledger.On("CheckAndReserve", ctx, int64(10), int64(100), []entities.NumberAmount{
		{Number: 25, Amount: dec("10")},
		{Number: 25, Amount: dec("5")},
	}).Return(nil)
	f.ticketRepo.On("Create", ctx, mock.AnythingOfType("*entities.Ticket")).Run(func(args mock.Arguments) {
		args.Get(1).(*entities.Ticket).ID = 77
	}).Return(nil)
	f.publisher.On("Publish", mock.AnythingOfType("events.TicketSoldEvent")).Return(nil)

	ticket, err := f.service.Sell(ctx, commonInput())

	require.NoError(t, err)
	assert.Equal(t, int64(77), ticket.ID)
	assert.Equal(t, int64(10), ticket.DrawID)
	assert.Equal(t, int64(2), ticket.BankID)
	assert.Equal(t, int64(100), ticket.SellerID)
	assert.True(t, ticket.TotalPrice.Equal(dec("15")))
	f.ticketRepo.AssertExpectations(t)
	f.ledger.AssertExpectations(t)
}

func TestSell_EmptyBuyerName(t *testing.T) {
	f := newTicketFixture()
	input := commonInput()
	input.BuyerName = ""

	_, err := f.service.Sell(context.Background(), input)

	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	assert.Equal(t, "buyer_name_required", errs.From(err).ClientKey)
}

func TestSell_DrawClosed(t *testing.T) {
	f := newTicketFixture()
	ctx := context.Background()
	draw := openDraw(entities.VariantCommon)
	draw.ClosesAt = time.Now().Add(-time.Minute)

	f.drawRepo.On("GetByID", ctx, int64(10)).Return(draw, nil)

	_, err := f.service.Sell(ctx, commonInput())

	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	assert.Equal(t, "draw_closed", errs.From(err).ClientKey)
}

func TestSell_SellerFromAnotherBank(t *testing.T) {
	f := newTicketFixture()
	ctx := context.Background()
	foreign := activeSeller()
	foreign.BankID = 99

	f.drawRepo.On("GetByID", ctx, int64(10)).Return(openDraw(entities.VariantCommon), nil)
	f.sellerRepo.On("GetByID", ctx, int64(100)).Return(foreign, nil)

	_, err := f.service.Sell(ctx, commonInput())

	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	assert.Equal(t, "seller_not_found", errs.From(err).ClientKey)
}

func TestSell_SellerNotParametrized(t *testing.T) {
	f := newTicketFixture()
	ctx := context.Background()

	f.drawRepo.On("GetByID", ctx, int64(10)).Return(openDraw(entities.VariantCommon), nil)
	f.sellerRepo.On("GetByID", ctx, int64(100)).Return(activeSeller(), nil)
	f.commissionRepo.On("GetBySellerAndLottery", ctx, int64(100), int64(4)).Return(nil, nil)

	_, err := f.service.Sell(ctx, commonInput())

	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	assert.Equal(t, "seller_not_parametrized", errs.From(err).ClientKey)
}

func TestSell_RestrictedNumberRejection(t *testing.T) {
	f := newTicketFixture()
	ctx := context.Background()

	f.drawRepo.On("GetByID", ctx, int64(10)).Return(openDraw(entities.VariantCommon), nil)
	f.sellerRepo.On("GetByID", ctx, int64(100)).Return(activeSeller(), nil)
	f.commissionRepo.On("GetBySellerAndLottery", ctx, int64(100), int64(4)).Return(sellerCommission(), nil)
	f.ledger.On("CheckAndReserve", ctx, int64(10), int64(100), mock.Anything).
		Return(errs.NumberNotAllowed(25, "cap exhausted"))

	_, err := f.service.Sell(ctx, commonInput())

	assert.Equal(t, errs.KindNumberNotAllowed, errs.KindOf(err))
	f.ticketRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSell_ReventadoBonusCountsTowardCap(t *testing.T) {
	f := newTicketFixture()
	ctx := context.Background()

	input := interfaces.SellTicketInput{
		DrawID:    10,
		SellerID:  100,
		BuyerName: "Luis",
		NumberBets: []*entities.NumberBet{
			{Number: 25, Amount: dec("10"), BonusAmount: dec("5")},
		},
	}

	f.drawRepo.On("GetByID", ctx, int64(10)).Return(openDraw(entities.VariantReventado), nil)
	f.sellerRepo.On("GetByID", ctx, int64(100)).Return(activeSeller(), nil)
	f.commissionRepo.On("GetBySellerAndLottery", ctx, int64(100), int64(4)).Return(sellerCommission(), nil)
	// The cap sees the full stake on the number, bonus included.
	f.ledger.On("CheckAndReserve", ctx, int64(10), int64(100), mock.MatchedBy(func(reqs []entities.NumberAmount) bool {
		return len(reqs) == 1 && reqs[0].Number == 25 && reqs[0].Amount.Equal(dec("15"))
	})).Return(nil)
	f.ticketRepo.On("Create", ctx, mock.AnythingOfType("*entities.Ticket")).Return(nil)
	f.publisher.On("Publish", mock.AnythingOfType("events.TicketSoldEvent")).Return(nil)

	ticket, err := f.service.Sell(ctx, input)

	require.NoError(t, err)
	assert.True(t, ticket.TotalPrice.Equal(dec("15")))
	f.ledger.AssertExpectations(t)
}

func TestSell_BetShapeValidation(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		variant entities.Variant
		mutate  func(*interfaces.SellTicketInput)
		wantKey string
	}{
		{
			"common draw rejects monazo bets", entities.VariantCommon,
			func(in *interfaces.SellTicketInput) {
				in.MonazoBets = []*entities.MonazoBet{{First: 1, Second: 2, Third: 3, SubType: 1, Amount: dec("1")}}
			},
			"invalid_bet_shape",
		},
		{
			"common draw rejects bonus amounts", entities.VariantCommon,
			func(in *interfaces.SellTicketInput) {
				in.NumberBets[0].BonusAmount = dec("5")
			},
			"invalid_bet_shape",
		},
		{
			"zero amount rejected", entities.VariantCommon,
			func(in *interfaces.SellTicketInput) {
				in.NumberBets[0].Amount = dec("0")
			},
			"invalid_bet_amount",
		},
		{
			"monazo draw rejects number bets", entities.VariantMonazo,
			func(in *interfaces.SellTicketInput) {},
			"invalid_bet_shape",
		},
		{
			"reventado draw accepts nothing without number bets", entities.VariantReventado,
			func(in *interfaces.SellTicketInput) { in.NumberBets = nil },
			"invalid_bet_shape",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newTicketFixture()
			f.drawRepo.On("GetByID", ctx, int64(10)).Return(openDraw(tc.variant), nil)

			input := commonInput()
			tc.mutate(&input)

			_, err := f.service.Sell(ctx, input)

			require.Error(t, err)
			assert.Equal(t, errs.KindValidation, errs.KindOf(err))
			assert.Equal(t, tc.wantKey, errs.From(err).ClientKey)
		})
	}
}

func TestSell_MonazoTicket(t *testing.T) {
	f := newTicketFixture()
	ctx := context.Background()

	input := interfaces.SellTicketInput{
		DrawID:    10,
		SellerID:  100,
		BuyerName: "Luis",
		MonazoBets: []*entities.MonazoBet{
			{First: 1, Second: 2, Third: 3, SubType: entities.MonazoTypeOrder, Amount: dec("2")},
		},
	}

	f.drawRepo.On("GetByID", ctx, int64(10)).Return(openDraw(entities.VariantMonazo), nil)
	f.sellerRepo.On("GetByID", ctx, int64(100)).Return(activeSeller(), nil)
	f.commissionRepo.On("GetBySellerAndLottery", ctx, int64(100), int64(4)).Return(sellerCommission(), nil)
	f.ticketRepo.On("Create", ctx, mock.AnythingOfType("*entities.Ticket")).Return(nil)
	f.publisher.On("Publish", mock.AnythingOfType("events.TicketSoldEvent")).Return(nil)

	ticket, err := f.service.Sell(ctx, input)

	require.NoError(t, err)
	assert.True(t, ticket.TotalPrice.Equal(dec("2")))
	// Monazo bets are outside the restriction scheme.
	f.ledger.AssertNotCalled(t, "CheckAndReserve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSell_ParleyDistinctNumbers(t *testing.T) {
	f := newTicketFixture()
	ctx := context.Background()

	input := interfaces.SellTicketInput{
		DrawID:    10,
		SellerID:  100,
		BuyerName: "Luis",
		ParleyBets: []*entities.ParleyBet{
			{First: 7, Second: 7, Amount: dec("2")},
		},
	}

	f.drawRepo.On("GetByID", ctx, int64(10)).Return(openDraw(entities.VariantParley), nil)

	_, err := f.service.Sell(ctx, input)

	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	assert.Equal(t, "invalid_bet_shape", errs.From(err).ClientKey)
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	sellingSeller := entities.Actor{ID: 100, Role: entities.RoleSeller}

	ticket := func() *entities.Ticket {
		return &entities.Ticket{ID: 77, DrawID: 10, BankID: 2, SellerID: 100}
	}

	t.Run("selling seller cancels own ticket", func(t *testing.T) {
		f := newTicketFixture()
		f.ticketRepo.On("GetByID", ctx, int64(77)).Return(ticket(), nil)
		f.drawRepo.On("GetByID", ctx, int64(10)).Return(openDraw(entities.VariantCommon), nil)
		f.ticketRepo.On("Cancel", ctx, int64(77)).Return(true, nil)
		f.publisher.On("Publish", mock.AnythingOfType("events.TicketCancelledEvent")).Return(nil)

		err := f.service.Cancel(ctx, 77, sellingSeller)

		require.NoError(t, err)
		f.ticketRepo.AssertExpectations(t)
	})

	t.Run("another seller may not cancel", func(t *testing.T) {
		f := newTicketFixture()
		f.ticketRepo.On("GetByID", ctx, int64(77)).Return(ticket(), nil)
		f.drawRepo.On("GetByID", ctx, int64(10)).Return(openDraw(entities.VariantCommon), nil)

		err := f.service.Cancel(ctx, 77, entities.Actor{ID: 101, Role: entities.RoleSeller})

		assert.Equal(t, errs.KindNotAllowed, errs.KindOf(err))
	})

	t.Run("owning banker may cancel", func(t *testing.T) {
		f := newTicketFixture()
		f.ticketRepo.On("GetByID", ctx, int64(77)).Return(ticket(), nil)
		f.drawRepo.On("GetByID", ctx, int64(10)).Return(openDraw(entities.VariantCommon), nil)
		f.bankRepo.On("GetByID", ctx, int64(2)).Return(&entities.Bank{ID: 2, OwnerID: 50}, nil)
		f.ticketRepo.On("Cancel", ctx, int64(77)).Return(true, nil)
		f.publisher.On("Publish", mock.AnythingOfType("events.TicketCancelledEvent")).Return(nil)

		err := f.service.Cancel(ctx, 77, entities.Actor{ID: 50, Role: entities.RoleBanker})

		require.NoError(t, err)
	})

	t.Run("closed draw rejects cancellation", func(t *testing.T) {
		f := newTicketFixture()
		closed := openDraw(entities.VariantCommon)
		closed.ClosesAt = time.Now().Add(-time.Minute)
		f.ticketRepo.On("GetByID", ctx, int64(77)).Return(ticket(), nil)
		f.drawRepo.On("GetByID", ctx, int64(10)).Return(closed, nil)

		err := f.service.Cancel(ctx, 77, sellingSeller)

		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		assert.Equal(t, "draw_closed", errs.From(err).ClientKey)
	})

	t.Run("settled ticket rejects cancellation", func(t *testing.T) {
		f := newTicketFixture()
		settled := ticket()
		settled.IsComputed = true
		f.ticketRepo.On("GetByID", ctx, int64(77)).Return(settled, nil)
		f.drawRepo.On("GetByID", ctx, int64(10)).Return(openDraw(entities.VariantCommon), nil)

		err := f.service.Cancel(ctx, 77, sellingSeller)

		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		assert.Equal(t, "ticket_already_settled", errs.From(err).ClientKey)
	})

	t.Run("repeated cancellation is rejected", func(t *testing.T) {
		f := newTicketFixture()
		f.ticketRepo.On("GetByID", ctx, int64(77)).Return(ticket(), nil)
		f.drawRepo.On("GetByID", ctx, int64(10)).Return(openDraw(entities.VariantCommon), nil)
		f.ticketRepo.On("Cancel", ctx, int64(77)).Return(false, nil)

		err := f.service.Cancel(ctx, 77, sellingSeller)

		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		assert.Equal(t, "ticket_already_cancelled", errs.From(err).ClientKey)
	})

	t.Run("missing ticket", func(t *testing.T) {
		f := newTicketFixture()
		f.ticketRepo.On("GetByID", ctx, int64(77)).Return(nil, nil)

		err := f.service.Cancel(ctx, 77, sellingSeller)

		assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	})
}
