package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestActorCanAdministerBank(t *testing.T) {
	bank := &Bank{ID: 2, OwnerID: 50}

	assert.True(t, Actor{ID: 1, Role: RoleAdmin}.CanAdministerBank(bank))
	assert.True(t, Actor{ID: 50, Role: RoleBanker}.CanAdministerBank(bank))
	assert.False(t, Actor{ID: 51, Role: RoleBanker}.CanAdministerBank(bank))
	assert.False(t, Actor{ID: 50, Role: RoleSeller}.CanAdministerBank(bank))
}

func TestStatementLineBalanceDelta(t *testing.T) {
	line := &StatementLine{
		QuantitySold:     dec("100"),
		CommissionAmount: dec("10"),
		PrizeToBePaid:    dec("700"),
	}
	assert.True(t, line.BalanceDelta().Equal(dec("-610")))

	noWin := &StatementLine{
		QuantitySold:     dec("100"),
		CommissionAmount: dec("10"),
		PrizeToBePaid:    decimal.Zero,
	}
	assert.True(t, noWin.BalanceDelta().Equal(dec("90")))
}

func TestBillingStatementTotals(t *testing.T) {
	s := &BillingStatement{Lines: []*StatementLine{
		{QuantitySold: dec("10"), PrizeToBePaid: dec("700")},
		{QuantitySold: dec("4"), PrizeToBePaid: decimal.Zero},
	}}
	assert.True(t, s.TotalSold().Equal(dec("14")))
	assert.True(t, s.TotalPrizes().Equal(dec("700")))
}

func TestCommissionAmountFor(t *testing.T) {
	c := &Commission{Percent: dec("7.5")}
	assert.True(t, c.AmountFor(dec("200")).Equal(dec("15")))
}

func TestTicketBetTotal(t *testing.T) {
	t.Run("number bets include bonus amounts", func(t *testing.T) {
		ticket := &Ticket{NumberBets: []*NumberBet{
			{Number: 25, Amount: dec("10"), BonusAmount: dec("5")},
			{Number: 30, Amount: dec("2")},
		}}
		assert.True(t, ticket.BetTotal().Equal(dec("17")))
	})

	t.Run("monazo and parley bets", func(t *testing.T) {
		ticket := &Ticket{
			MonazoBets: []*MonazoBet{{Amount: dec("3")}},
			ParleyBets: []*ParleyBet{{Amount: dec("4")}},
		}
		assert.True(t, ticket.BetTotal().Equal(dec("7")))
	})
}

func TestTicketIsOutstanding(t *testing.T) {
	assert.True(t, (&Ticket{}).IsOutstanding())
	assert.False(t, (&Ticket{IsCancelled: true}).IsOutstanding())
	assert.False(t, (&Ticket{IsComputed: true}).IsOutstanding())
}

func TestDrawIsOpenForSales(t *testing.T) {
	now := time.Now()
	open := &Draw{ClosesAt: now.Add(time.Hour)}

	assert.True(t, open.IsOpenForSales(now))
	assert.False(t, open.IsOpenForSales(now.Add(2*time.Hour)))

	deleted := &Draw{ClosesAt: now.Add(time.Hour), IsDeleted: true}
	assert.False(t, deleted.IsOpenForSales(now))

	computed := &Draw{ClosesAt: now.Add(time.Hour), IsComputed: true}
	assert.False(t, computed.IsOpenForSales(now))
}

func TestVariantValid(t *testing.T) {
	for _, v := range []Variant{VariantCommon, VariantReventado, VariantMonazo, VariantParley} {
		assert.True(t, v.Valid(), "variant %s", v)
	}
	assert.False(t, Variant("bingo").Valid())
}

func TestDrawOutcomeDeclared(t *testing.T) {
	var nilOutcome *DrawOutcome
	assert.False(t, nilOutcome.Declared(VariantCommon))
	assert.False(t, (&DrawOutcome{}).Declared(VariantCommon))
	assert.False(t, (&DrawOutcome{}).Declared(VariantReventado))
	assert.False(t, (&DrawOutcome{}).Declared(VariantMonazo))

	withNumbers := &DrawOutcome{Numbers: []*WinningNumber{{Number: 25}}}
	assert.True(t, withNumbers.Declared(VariantCommon))
	assert.False(t, withNumbers.Declared(VariantParley))

	withTriple := &DrawOutcome{Triple: &WinningTriple{First: 1, Second: 2, Third: 3}}
	assert.True(t, withTriple.Declared(VariantMonazo))
	assert.True(t, withTriple.Declared(VariantParley))
}

func TestWinningTripleContains(t *testing.T) {
	triple := &WinningTriple{First: 10, Second: 20, Third: 30}
	assert.True(t, triple.Contains(10))
	assert.True(t, triple.Contains(30))
	assert.False(t, triple.Contains(40))
}

func TestRestrictedNumberAllows(t *testing.T) {
	rn := &RestrictedNumber{Remaining: dec("5")}
	assert.True(t, rn.Allows(dec("5")))
	assert.True(t, rn.Allows(dec("4.99")))
	assert.False(t, rn.Allows(dec("5.01")))
}
