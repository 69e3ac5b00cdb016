package entities

import "time"

// Draw is one scheduled occurrence of a lottery on a given date. It is
// settled at most once: IsComputed transitions to true exactly one time,
// inside the settlement transaction, and draws are never physically deleted.
type Draw struct {
	ID           int64     `db:"id"`
	LotteryID    int64     `db:"lottery_id"`
	BankID       int64     `db:"bank_id"`
	Variant      Variant   `db:"variant"`
	ScheduledFor time.Time `db:"scheduled_for"`
	ClosesAt     time.Time `db:"closes_at"`
	IsDeleted    bool      `db:"is_deleted"`
	IsComputed   bool      `db:"is_computed"`
	CreatedAt    time.Time `db:"created_at"`
}

// IsOpenForSales reports whether tickets may still be sold against the draw.
func (d *Draw) IsOpenForSales(now time.Time) bool {
	return !d.IsDeleted && !d.IsComputed && now.Before(d.ClosesAt)
}

// CanCancelTickets reports whether tickets of this draw may still be
// cancelled. Cancellation follows the same closing-time window as sales.
func (d *Draw) CanCancelTickets(now time.Time) bool {
	return d.IsOpenForSales(now)
}
