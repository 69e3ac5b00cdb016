package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ticket is one sale of one or more bet entries against a draw. Exactly one
// of the bet collections is populated, matching the draw's variant
// (NumberBets serves both common and reventado).
type Ticket struct {
	ID          int64           `db:"id"`
	DrawID      int64           `db:"draw_id"`
	BankID      int64           `db:"bank_id"`
	SellerID    int64           `db:"seller_id"`
	BuyerName   string          `db:"buyer_name"`
	TotalPrice  decimal.Decimal `db:"total_price"`
	Prize       decimal.Decimal `db:"prize"` // running total paid out
	IsCancelled bool            `db:"is_cancelled"`
	IsComputed  bool            `db:"is_computed"`
	PurchasedAt time.Time       `db:"purchased_at"`

	NumberBets []*NumberBet
	MonazoBets []*MonazoBet
	ParleyBets []*ParleyBet
}

// NumberBet is a common or reventado bet entry. BonusAmount is the optional
// reventado bonus-ball side bet; zero for common draws.
type NumberBet struct {
	ID          int64           `db:"id"`
	TicketID    int64           `db:"ticket_id"`
	Number      int             `db:"number"`
	Amount      decimal.Decimal `db:"amount"`
	BonusAmount decimal.Decimal `db:"bonus_amount"`
}

// MonazoBet is a three-digit bet entry with one of the four monazo sub-types.
type MonazoBet struct {
	ID       int64           `db:"id"`
	TicketID int64           `db:"ticket_id"`
	First    int             `db:"first_digit"`
	Second   int             `db:"second_digit"`
	Third    int             `db:"third_digit"`
	SubType  int             `db:"monazo_type"`
	Amount   decimal.Decimal `db:"amount"`
}

// ParleyBet is a two-number bet entry.
type ParleyBet struct {
	ID       int64           `db:"id"`
	TicketID int64           `db:"ticket_id"`
	First    int             `db:"first_number"`
	Second   int             `db:"second_number"`
	Amount   decimal.Decimal `db:"amount"`
}

// BetTotal sums the wagered amounts of whichever bet collection is populated,
// including reventado bonus amounts.
func (t *Ticket) BetTotal() decimal.Decimal {
	total := decimal.Zero
	for _, b := range t.NumberBets {
		total = total.Add(b.Amount).Add(b.BonusAmount)
	}
	for _, b := range t.MonazoBets {
		total = total.Add(b.Amount)
	}
	for _, b := range t.ParleyBets {
		total = total.Add(b.Amount)
	}
	return total
}

// IsOutstanding reports whether the ticket takes part in settlement.
func (t *Ticket) IsOutstanding() bool {
	return !t.IsCancelled && !t.IsComputed
}

// NumberAmount is one (number, amount) pair of requested exposure, used by
// the restricted-number ledger.
type NumberAmount struct {
	Number int
	Amount decimal.Decimal
}
