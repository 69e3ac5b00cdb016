package testutil

import (
	"context"
	"testing"
	"time"

	"lotobank/database"
	"lotobank/domain/entities"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// InsertBank seeds a bank row and returns its ID
func InsertBank(t *testing.T, db *database.DB, name string, ownerID int64) int64 {
	var id int64
	err := db.Pool.QueryRow(context.Background(), `
		INSERT INTO banks (name, owner_id) VALUES ($1, $2) RETURNING id
	`, name, ownerID).Scan(&id)
	require.NoError(t, err)
	return id
}

// InsertSeller seeds a seller row and returns its ID
func InsertSeller(t *testing.T, db *database.DB, bankID int64, name string) int64 {
	var id int64
	err := db.Pool.QueryRow(context.Background(), `
		INSERT INTO sellers (bank_id, name) VALUES ($1, $2) RETURNING id
	`, bankID, name).Scan(&id)
	require.NoError(t, err)
	return id
}

// InsertLottery seeds a lottery row and returns its ID
func InsertLottery(t *testing.T, db *database.DB, bankID int64, name string, variant entities.Variant) int64 {
	var id int64
	err := db.Pool.QueryRow(context.Background(), `
		INSERT INTO lotteries (bank_id, name, variant) VALUES ($1, $2, $3) RETURNING id
	`, bankID, name, variant).Scan(&id)
	require.NoError(t, err)
	return id
}

// SetLotteryMultipliers sets the reventado and parley multipliers of a lottery
func SetLotteryMultipliers(t *testing.T, db *database.DB, lotteryID int64, reventado, parley decimal.Decimal) {
	_, err := db.Pool.Exec(context.Background(), `
		UPDATE lotteries SET reventado_multiplier = $2, parley_multiplier = $3 WHERE id = $1
	`, lotteryID, reventado, parley)
	require.NoError(t, err)
}

// InsertBallType seeds a reventado ball type and returns its ID
func InsertBallType(t *testing.T, db *database.DB, lotteryID int64, name string, multiplier decimal.Decimal) int64 {
	var id int64
	err := db.Pool.QueryRow(context.Background(), `
		INSERT INTO lottery_ball_types (lottery_id, name, multiplier) VALUES ($1, $2, $3) RETURNING id
	`, lotteryID, name, multiplier).Scan(&id)
	require.NoError(t, err)
	return id
}

// InsertMonazoType seeds a monazo multiplier row
func InsertMonazoType(t *testing.T, db *database.DB, lotteryID int64, monazoType int, multiplier decimal.Decimal) {
	_, err := db.Pool.Exec(context.Background(), `
		INSERT INTO lottery_monazo_types (lottery_id, monazo_type, multiplier) VALUES ($1, $2, $3)
	`, lotteryID, monazoType, multiplier)
	require.NoError(t, err)
}

// InsertDraw seeds a draw row closing one hour from now and returns its ID
func InsertDraw(t *testing.T, db *database.DB, lotteryID, bankID int64, variant entities.Variant) int64 {
	var id int64
	err := db.Pool.QueryRow(context.Background(), `
		INSERT INTO draws (lottery_id, bank_id, variant, scheduled_for, closes_at)
		VALUES ($1, $2, $3, CURRENT_DATE, $4)
		RETURNING id
	`, lotteryID, bankID, variant, time.Now().Add(time.Hour)).Scan(&id)
	require.NoError(t, err)
	return id
}

// InsertCommission seeds a commission agreement
func InsertCommission(t *testing.T, db *database.DB, sellerID, lotteryID int64, percent decimal.Decimal) {
	_, err := db.Pool.Exec(context.Background(), `
		INSERT INTO commissions (seller_id, lottery_id, percent) VALUES ($1, $2, $3)
	`, sellerID, lotteryID, percent)
	require.NoError(t, err)
}

// CreateTestNumberTicket builds an unsaved ticket with one number bet
func CreateTestNumberTicket(drawID, sellerID int64, number int, amount decimal.Decimal) *entities.Ticket {
	ticket := &entities.Ticket{
		DrawID:    drawID,
		SellerID:  sellerID,
		BuyerName: "Test Buyer",
		NumberBets: []*entities.NumberBet{
			{Number: number, Amount: amount},
		},
	}
	ticket.TotalPrice = ticket.BetTotal()
	return ticket
}

// CreateTestMonazoTicket builds an unsaved ticket with one monazo bet
func CreateTestMonazoTicket(drawID, sellerID int64, first, second, third, subType int, amount decimal.Decimal) *entities.Ticket {
	ticket := &entities.Ticket{
		DrawID:    drawID,
		SellerID:  sellerID,
		BuyerName: "Test Buyer",
		MonazoBets: []*entities.MonazoBet{
			{First: first, Second: second, Third: third, SubType: subType, Amount: amount},
		},
	}
	ticket.TotalPrice = ticket.BetTotal()
	return ticket
}

// CreateTestParleyTicket builds an unsaved ticket with one parley bet
func CreateTestParleyTicket(drawID, sellerID int64, first, second int, amount decimal.Decimal) *entities.Ticket {
	ticket := &entities.Ticket{
		DrawID:    drawID,
		SellerID:  sellerID,
		BuyerName: "Test Buyer",
		ParleyBets: []*entities.ParleyBet{
			{First: first, Second: second, Amount: amount},
		},
	}
	ticket.TotalPrice = ticket.BetTotal()
	return ticket
}
