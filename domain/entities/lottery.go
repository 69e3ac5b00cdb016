package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Variant identifies the game type of a lottery and its draws.
type Variant string

const (
	VariantCommon    Variant = "common"
	VariantReventado Variant = "reventado"
	VariantMonazo    Variant = "monazo"
	VariantParley    Variant = "parley"
)

// Valid reports whether v is one of the four known variants.
func (v Variant) Valid() bool {
	switch v {
	case VariantCommon, VariantReventado, VariantMonazo, VariantParley:
		return true
	}
	return false
}

// Monazo sub-types. Sub-types 3 and 4 have no multiplier rows of their own;
// they borrow from 1 and 2.
const (
	MonazoTypeOrder        = 1 // exact order match
	MonazoTypeAnyOrder     = 2 // digits match in any order
	MonazoTypeComboOrder   = 3 // exact order, falling back to any order
	MonazoTypeComboLastTwo = 4 // exact order, falling back to last-two match
)

// BallType is one configured reventado bonus ball for a lottery.
type BallType struct {
	ID         int64           `db:"id"`
	LotteryID  int64           `db:"lottery_id"`
	Name       string          `db:"name"`
	Multiplier decimal.Decimal `db:"multiplier"`
}

// Lottery is a game a bank offers; its draws inherit the variant and the
// variant-specific payout configuration loaded here.
type Lottery struct {
	ID      int64   `db:"id"`
	BankID  int64   `db:"bank_id"`
	Name    string  `db:"name"`
	Variant Variant `db:"variant"`

	// ReventadoMultiplier is the base multiplier of the reventado variant.
	ReventadoMultiplier decimal.Decimal `db:"reventado_multiplier"`
	// ParleyMultiplier is the single multiplier of the parley variant.
	ParleyMultiplier decimal.Decimal `db:"parley_multiplier"`

	// BallTypes holds the configured reventado bonus balls.
	BallTypes []*BallType
	// MonazoMultipliers maps monazo sub-type (1, 2) to its multiplier.
	MonazoMultipliers map[int]decimal.Decimal

	IsDeleted bool      `db:"is_deleted"`
	CreatedAt time.Time `db:"created_at"`
}

// MonazoMultiplier resolves the configured multiplier for sub-type 1 or 2.
// Combo sub-types have no rows of their own; payout rules borrow 1 and 2.
func (l *Lottery) MonazoMultiplier(subType int) (decimal.Decimal, bool) {
	m, ok := l.MonazoMultipliers[subType]
	return m, ok
}

// BallTypeByID finds a configured ball type by its id.
func (l *Lottery) BallTypeByID(id int64) (*BallType, bool) {
	for _, bt := range l.BallTypes {
		if bt.ID == id {
			return bt, true
		}
	}
	return nil, false
}
