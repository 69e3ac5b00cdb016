package entities

import "github.com/shopspring/decimal"

// Commission is the percentage agreement between a seller and a lottery,
// established by the parametrization flow before any sales happen. Settlement
// treats a missing row as a hard data-integrity failure.
type Commission struct {
	ID        int64           `db:"id"`
	SellerID  int64           `db:"seller_id"`
	LotteryID int64           `db:"lottery_id"`
	Percent   decimal.Decimal `db:"percent"`
}

// AmountFor computes the commission owed on the given sold quantity.
func (c *Commission) AmountFor(quantity decimal.Decimal) decimal.Decimal {
	return quantity.Mul(c.Percent).Div(decimal.NewFromInt(100))
}
