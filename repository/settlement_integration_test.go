package repository

import (
	"context"
	"testing"

	"lotobank/domain/entities"
	"lotobank/domain/errs"
	"lotobank/domain/interfaces"
	"lotobank/domain/services"
	"lotobank/infrastructure"
	"lotobank/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Full settlement of a common draw through real transactions: sell, declare,
// settle, then verify the persisted statement, balances and idempotency.
func TestSettlementEndToEnd(t *testing.T) {
	td := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	bankID := testutil.InsertBank(t, td.DB, "Banca Central", 50)
	marta := testutil.InsertSeller(t, td.DB, bankID, "Marta")
	luis := testutil.InsertSeller(t, td.DB, bankID, "Luis")
	lotteryID := testutil.InsertLottery(t, td.DB, bankID, "Tiempos Tarde", entities.VariantCommon)
	testutil.InsertCommission(t, td.DB, marta, lotteryID, dec("10"))
	testutil.InsertCommission(t, td.DB, luis, lotteryID, dec("10"))
	drawID := testutil.InsertDraw(t, td.DB, lotteryID, bankID, entities.VariantCommon)

	factory := NewUnitOfWorkFactory(td.DB, func() interfaces.TransactionalEventPublisher {
		return infrastructure.NewTransactionalPublisher(infrastructure.NewNoopEventPublisher())
	})
	banker := entities.Actor{ID: 50, Role: entities.RoleBanker}

	// Sell one winning and one losing ticket and declare the outcome.
	uow := factory.CreateForBank(bankID)
	require.NoError(t, uow.Begin(ctx))
	winner := testutil.CreateTestNumberTicket(drawID, marta, 25, dec("10"))
	loser := testutil.CreateTestNumberTicket(drawID, luis, 42, dec("4"))
	require.NoError(t, uow.TicketRepository().Create(ctx, winner))
	require.NoError(t, uow.TicketRepository().Create(ctx, loser))
	require.NoError(t, uow.OutcomeRepository().Replace(ctx, entities.VariantCommon, &entities.DrawOutcome{
		DrawID:  drawID,
		Numbers: []*entities.WinningNumber{{DrawID: drawID, Number: 25, Multiplier: dec("70")}},
	}))
	require.NoError(t, uow.Commit())

	settle := func() (*entities.BillingStatement, error) {
		uow := factory.CreateForBank(bankID)
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		service := services.NewSettlementService(
			uow.DrawRepository(), uow.BankRepository(), uow.LotteryRepository(),
			uow.TicketRepository(), uow.OutcomeRepository(), uow.CommissionRepository(),
			uow.BillingStatementRepository(), uow.SellerRepository(), uow.EventBus(),
			false,
		)
		statement, err := service.Settle(ctx, drawID, entities.VariantCommon, banker)
		if err != nil {
			return nil, err
		}
		return statement, uow.Commit()
	}

	statement, err := settle()
	require.NoError(t, err)
	require.Len(t, statement.Lines, 2)

	// Verify the persisted state in a fresh transaction.
	check := factory.CreateForBank(bankID)
	require.NoError(t, check.Begin(ctx))
	defer check.Rollback()

	stored, err := check.BillingStatementRepository().GetByDraw(ctx, drawID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Len(t, stored.Lines, 2)
	assert.True(t, stored.TotalSold().Equal(dec("14")))
	assert.True(t, stored.TotalPrizes().Equal(dec("700")))

	// Marta: 10 - 1 - 700. Luis: 4 - 0.4 - 0.
	martaRow, err := check.SellerRepository().GetByID(ctx, marta)
	require.NoError(t, err)
	assert.True(t, martaRow.Balance.Equal(dec("-691")), "got %s", martaRow.Balance)

	luisRow, err := check.SellerRepository().GetByID(ctx, luis)
	require.NoError(t, err)
	assert.True(t, luisRow.Balance.Equal(dec("3.6")), "got %s", luisRow.Balance)

	winnerRow, err := check.TicketRepository().GetByID(ctx, winner.ID)
	require.NoError(t, err)
	assert.True(t, winnerRow.IsComputed)
	assert.True(t, winnerRow.Prize.Equal(dec("700")))

	draw, err := check.DrawRepository().GetByID(ctx, drawID)
	require.NoError(t, err)
	assert.True(t, draw.IsComputed)

	// A repeated settlement is rejected and changes nothing.
	_, err = settle()
	assert.Equal(t, errs.KindAlreadySettled, errs.KindOf(err))
}
