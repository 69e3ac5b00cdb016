package repository

import (
	"context"
	"testing"
	"time"

	"lotobank/domain/entities"
	"lotobank/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawRepository(t *testing.T) {
	td := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	bankID := testutil.InsertBank(t, td.DB, "Banca Central", 50)
	otherBankID := testutil.InsertBank(t, td.DB, "Banca Rival", 51)
	lotteryID := testutil.InsertLottery(t, td.DB, bankID, "Tiempos Tarde", entities.VariantCommon)

	repo := NewDrawRepositoryScoped(td.DB, bankID)

	t.Run("create and get round trip", func(t *testing.T) {
		draw := &entities.Draw{
			LotteryID:    lotteryID,
			Variant:      entities.VariantCommon,
			ScheduledFor: time.Now().Add(24 * time.Hour),
			ClosesAt:     time.Now().Add(23 * time.Hour),
		}
		require.NoError(t, repo.Create(ctx, draw))
		require.NotZero(t, draw.ID)
		assert.Equal(t, bankID, draw.BankID)

		got, err := repo.GetByID(ctx, draw.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, draw.ID, got.ID)
		assert.Equal(t, entities.VariantCommon, got.Variant)
		assert.False(t, got.IsComputed)
		assert.False(t, got.IsDeleted)
	})

	t.Run("missing draw returns nil", func(t *testing.T) {
		got, err := repo.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("draws of another bank are invisible", func(t *testing.T) {
		drawID := testutil.InsertDraw(t, td.DB, lotteryID, bankID, entities.VariantCommon)

		foreign := NewDrawRepositoryScoped(td.DB, otherBankID)
		got, err := foreign.GetByID(ctx, drawID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("mark computed transitions exactly once", func(t *testing.T) {
		drawID := testutil.InsertDraw(t, td.DB, lotteryID, bankID, entities.VariantCommon)

		transitioned, err := repo.MarkComputed(ctx, drawID)
		require.NoError(t, err)
		assert.True(t, transitioned)

		transitioned, err = repo.MarkComputed(ctx, drawID)
		require.NoError(t, err)
		assert.False(t, transitioned)

		got, err := repo.GetByID(ctx, drawID)
		require.NoError(t, err)
		assert.True(t, got.IsComputed)
	})
}
