package services

import (
	"fmt"

	"lotobank/domain/entities"

	"github.com/shopspring/decimal"
)

// payoutFunc evaluates one ticket's bet entries against the declared outcome
// and returns the prize owed. Rules are pure: accumulation and persistence
// belong to the settlement engine.
type payoutFunc func(ticket *entities.Ticket, outcome *entities.DrawOutcome, lottery *entities.Lottery) (decimal.Decimal, error)

// payoutRuleFor selects the rule for a variant. bonusAllTypes switches the
// reventado bonus between paying for every configured ball type (legacy
// behavior) and only for the ball type drawn.
func payoutRuleFor(variant entities.Variant, bonusAllTypes bool) (payoutFunc, error) {
	switch variant {
	case entities.VariantCommon:
		return commonPayout, nil
	case entities.VariantReventado:
		return reventadoPayout(bonusAllTypes), nil
	case entities.VariantMonazo:
		return monazoPayout, nil
	case entities.VariantParley:
		return parleyPayout, nil
	}
	return nil, fmt.Errorf("no payout rule for variant %q", variant)
}

// commonPayout pays each bet entry whose number equals a winning number at
// that winning number's prize-tier multiplier. A bet entry matches at most
// the one winning row carrying the same number.
func commonPayout(ticket *entities.Ticket, outcome *entities.DrawOutcome, _ *entities.Lottery) (decimal.Decimal, error) {
	byNumber := make(map[int]decimal.Decimal, len(outcome.Numbers))
	for _, w := range outcome.Numbers {
		byNumber[w.Number] = w.Multiplier
	}

	prize := decimal.Zero
	for _, bet := range ticket.NumberBets {
		if multiplier, ok := byNumber[bet.Number]; ok {
			prize = prize.Add(bet.Amount.Mul(multiplier))
		}
	}
	return prize, nil
}

// reventadoPayout pays the base prize at the lottery's base multiplier when
// the bet number matches the single winning number, plus the bonus side-bet.
func reventadoPayout(bonusAllTypes bool) payoutFunc {
	return func(ticket *entities.Ticket, outcome *entities.DrawOutcome, lottery *entities.Lottery) (decimal.Decimal, error) {
		result := outcome.Reventado
		prize := decimal.Zero

		for _, bet := range ticket.NumberBets {
			if bet.Number != result.Number {
				continue
			}

			prize = prize.Add(bet.Amount.Mul(lottery.ReventadoMultiplier))

			if bet.BonusAmount.IsZero() {
				continue
			}
			if bonusAllTypes {
				// Legacy mode: the bonus compounds across every configured
				// ball type, not just the one drawn.
				for _, bt := range lottery.BallTypes {
					prize = prize.Add(bet.BonusAmount.Mul(bt.Multiplier))
				}
				continue
			}
			bt, ok := lottery.BallTypeByID(result.BallTypeID)
			if !ok {
				return decimal.Zero, fmt.Errorf("ball type %d not configured for lottery %d", result.BallTypeID, lottery.ID)
			}
			prize = prize.Add(bet.BonusAmount.Mul(bt.Multiplier))
		}
		return prize, nil
	}
}

// monazoPayout dispatches each bet entry on its monazo sub-type. Any-order
// matching compares digit multisets by value.
func monazoPayout(ticket *entities.Ticket, outcome *entities.DrawOutcome, lottery *entities.Lottery) (decimal.Decimal, error) {
	triple := outcome.Triple
	prize := decimal.Zero

	for _, bet := range ticket.MonazoBets {
		orderMultiplier, hasOrder := lottery.MonazoMultiplier(entities.MonazoTypeOrder)
		anyOrderMultiplier, hasAnyOrder := lottery.MonazoMultiplier(entities.MonazoTypeAnyOrder)

		exact := bet.First == triple.First && bet.Second == triple.Second && bet.Third == triple.Third
		anyOrder := sameDigitMultiset(bet, triple)

		switch bet.SubType {
		case entities.MonazoTypeOrder:
			if !hasOrder {
				return decimal.Zero, fmt.Errorf("monazo order multiplier not configured for lottery %d", lottery.ID)
			}
			if exact {
				prize = prize.Add(bet.Amount.Mul(orderMultiplier))
			}

		case entities.MonazoTypeAnyOrder:
			if !hasAnyOrder {
				return decimal.Zero, fmt.Errorf("monazo any-order multiplier not configured for lottery %d", lottery.ID)
			}
			if anyOrder {
				prize = prize.Add(bet.Amount.Mul(anyOrderMultiplier))
			}

		case entities.MonazoTypeComboOrder:
			// Pays the order multiplier on an exact match, otherwise the
			// any-order multiplier on a multiset match.
			if !hasOrder || !hasAnyOrder {
				return decimal.Zero, fmt.Errorf("monazo multipliers not configured for lottery %d", lottery.ID)
			}
			if exact {
				prize = prize.Add(bet.Amount.Mul(orderMultiplier))
			} else if anyOrder {
				prize = prize.Add(bet.Amount.Mul(anyOrderMultiplier))
			}

		case entities.MonazoTypeComboLastTwo:
			// Pays the order multiplier on an exact match, or again on a
			// match of the second and third digits with the first digit free.
			if !hasOrder {
				return decimal.Zero, fmt.Errorf("monazo order multiplier not configured for lottery %d", lottery.ID)
			}
			if exact || (bet.Second == triple.Second && bet.Third == triple.Third) {
				prize = prize.Add(bet.Amount.Mul(orderMultiplier))
			}

		default:
			return decimal.Zero, fmt.Errorf("unknown monazo sub-type %d on bet %d", bet.SubType, bet.ID)
		}
	}
	return prize, nil
}

// sameDigitMultiset reports whether the bet's digits equal the winning
// triple's digits regardless of order, with repeated digits counted.
func sameDigitMultiset(bet *entities.MonazoBet, triple *entities.WinningTriple) bool {
	counts := map[int]int{triple.First: 0, triple.Second: 0, triple.Third: 0}
	counts[triple.First]++
	counts[triple.Second]++
	counts[triple.Third]++

	for _, d := range []int{bet.First, bet.Second, bet.Third} {
		if counts[d] == 0 {
			return false
		}
		counts[d]--
	}
	return true
}

// parleyPayout pays a bet entry when both of its numbers appear among the
// three winning numbers, at the lottery's parley multiplier.
func parleyPayout(ticket *entities.Ticket, outcome *entities.DrawOutcome, lottery *entities.Lottery) (decimal.Decimal, error) {
	triple := outcome.Triple
	prize := decimal.Zero

	for _, bet := range ticket.ParleyBets {
		if triple.Contains(bet.First) && triple.Contains(bet.Second) {
			prize = prize.Add(bet.Amount.Mul(lottery.ParleyMultiplier))
		}
	}
	return prize, nil
}
