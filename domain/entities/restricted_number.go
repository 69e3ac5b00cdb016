package entities

import "github.com/shopspring/decimal"

// RestrictedNumber caps the exposure that may be sold against a number for a
// whole draw. Remaining is decremented at sale time and never replenished.
type RestrictedNumber struct {
	ID        int64           `db:"id"`
	DrawID    int64           `db:"draw_id"`
	Number    int             `db:"number"`
	Remaining decimal.Decimal `db:"remaining"`
}

// Allows reports whether the requested amount fits in the remaining cap.
func (r *RestrictedNumber) Allows(amount decimal.Decimal) bool {
	return amount.LessThanOrEqual(r.Remaining)
}

// SellerRestrictedNumber caps exposure per seller within a draw. Where both a
// draw-level and a seller-level restriction exist for a number, each must be
// satisfied independently.
type SellerRestrictedNumber struct {
	ID        int64           `db:"id"`
	DrawID    int64           `db:"draw_id"`
	SellerID  int64           `db:"seller_id"`
	Number    int             `db:"number"`
	Remaining decimal.Decimal `db:"remaining"`
}

// Allows reports whether the requested amount fits in the remaining cap.
func (r *SellerRestrictedNumber) Allows(amount decimal.Decimal) bool {
	return amount.LessThanOrEqual(r.Remaining)
}
