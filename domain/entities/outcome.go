package entities

import "github.com/shopspring/decimal"

// WinningNumber is one declared winning number of a common draw, carrying
// the prize-tier multiplier for bets on that number.
type WinningNumber struct {
	ID         int64           `db:"id"`
	DrawID     int64           `db:"draw_id"`
	Number     int             `db:"number"`
	Multiplier decimal.Decimal `db:"multiplier"`
}

// ReventadoResult is the declared outcome of a reventado draw: the winning
// number plus the bonus ball that came out.
type ReventadoResult struct {
	DrawID     int64 `db:"draw_id"`
	Number     int   `db:"number"`
	BallTypeID int64 `db:"ball_type_id"`
}

// WinningTriple is the declared outcome of a monazo or parley draw.
type WinningTriple struct {
	DrawID int64 `db:"draw_id"`
	First  int   `db:"first_number"`
	Second int   `db:"second_number"`
	Third  int   `db:"third_number"`
}

// Contains reports whether n is one of the triple's three numbers.
func (w *WinningTriple) Contains(n int) bool {
	return n == w.First || n == w.Second || n == w.Third
}

// DrawOutcome is the variant-shaped declared outcome for a draw. Exactly one
// of the fields is populated, matching the draw's variant.
type DrawOutcome struct {
	DrawID    int64
	Numbers   []*WinningNumber // common
	Reventado *ReventadoResult // reventado
	Triple    *WinningTriple   // monazo and parley
}

// Declared reports whether the outcome holds any winning-number record for
// the given variant. Settlement requires a declared outcome; an absent one is
// a precondition failure, not an empty-result success.
func (o *DrawOutcome) Declared(v Variant) bool {
	if o == nil {
		return false
	}
	switch v {
	case VariantCommon:
		return len(o.Numbers) > 0
	case VariantReventado:
		return o.Reventado != nil
	case VariantMonazo, VariantParley:
		return o.Triple != nil
	}
	return false
}
