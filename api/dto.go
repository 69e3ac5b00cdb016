package api

import (
	"time"

	"lotobank/domain/entities"

	"github.com/shopspring/decimal"
)

type numberBetRequest struct {
	Number      int             `json:"number"`
	Amount      decimal.Decimal `json:"amount"`
	BonusAmount decimal.Decimal `json:"bonus_amount"`
}

type monazoBetRequest struct {
	First   int             `json:"first"`
	Second  int             `json:"second"`
	Third   int             `json:"third"`
	SubType int             `json:"type"`
	Amount  decimal.Decimal `json:"amount"`
}

type parleyBetRequest struct {
	First  int             `json:"first"`
	Second int             `json:"second"`
	Amount decimal.Decimal `json:"amount"`
}

type sellTicketRequest struct {
	DrawID     int64              `json:"draw_id" binding:"required"`
	SellerID   int64              `json:"seller_id" binding:"required"`
	BuyerName  string             `json:"buyer_name"`
	NumberBets []numberBetRequest `json:"number_bets"`
	MonazoBets []monazoBetRequest `json:"monazo_bets"`
	ParleyBets []parleyBetRequest `json:"parley_bets"`
}

type ticketResponse struct {
	ID          int64           `json:"id"`
	DrawID      int64           `json:"draw_id"`
	SellerID    int64           `json:"seller_id"`
	BuyerName   string          `json:"buyer_name"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Prize       decimal.Decimal `json:"prize"`
	IsCancelled bool            `json:"is_cancelled"`
	IsComputed  bool            `json:"is_computed"`
	PurchasedAt time.Time       `json:"purchased_at"`
}

func toTicketResponse(t *entities.Ticket) ticketResponse {
	return ticketResponse{
		ID:          t.ID,
		DrawID:      t.DrawID,
		SellerID:    t.SellerID,
		BuyerName:   t.BuyerName,
		TotalPrice:  t.TotalPrice,
		Prize:       t.Prize,
		IsCancelled: t.IsCancelled,
		IsComputed:  t.IsComputed,
		PurchasedAt: t.PurchasedAt,
	}
}

type winningNumberRequest struct {
	Number     int             `json:"number"`
	Multiplier decimal.Decimal `json:"multiplier"`
}

type reventadoOutcomeRequest struct {
	Number     int   `json:"number"`
	BallTypeID int64 `json:"ball_type_id"`
}

type tripleOutcomeRequest struct {
	First  int `json:"first"`
	Second int `json:"second"`
	Third  int `json:"third"`
}

type declareOutcomeRequest struct {
	Numbers   []winningNumberRequest   `json:"numbers"`
	Reventado *reventadoOutcomeRequest `json:"reventado"`
	Triple    *tripleOutcomeRequest    `json:"triple"`
}

func (r *declareOutcomeRequest) toOutcome(drawID int64) *entities.DrawOutcome {
	outcome := &entities.DrawOutcome{DrawID: drawID}
	for _, wn := range r.Numbers {
		outcome.Numbers = append(outcome.Numbers, &entities.WinningNumber{
			DrawID:     drawID,
			Number:     wn.Number,
			Multiplier: wn.Multiplier,
		})
	}
	if r.Reventado != nil {
		outcome.Reventado = &entities.ReventadoResult{
			DrawID:     drawID,
			Number:     r.Reventado.Number,
			BallTypeID: r.Reventado.BallTypeID,
		}
	}
	if r.Triple != nil {
		outcome.Triple = &entities.WinningTriple{
			DrawID: drawID,
			First:  r.Triple.First,
			Second: r.Triple.Second,
			Third:  r.Triple.Third,
		}
	}
	return outcome
}

type statementLineResponse struct {
	SellerID         int64           `json:"seller_id"`
	QuantitySold     decimal.Decimal `json:"quantity_sold"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	PrizeToBePaid    decimal.Decimal `json:"prize_to_be_paid"`
	BalanceDelta     decimal.Decimal `json:"balance_delta"`
}

type statementResponse struct {
	ID          int64                   `json:"id"`
	DrawID      int64                   `json:"draw_id"`
	BilledAt    time.Time               `json:"billed_at"`
	TotalSold   decimal.Decimal         `json:"total_sold"`
	TotalPrizes decimal.Decimal         `json:"total_prizes"`
	Lines       []statementLineResponse `json:"lines"`
}

func toStatementResponse(s *entities.BillingStatement) statementResponse {
	resp := statementResponse{
		ID:          s.ID,
		DrawID:      s.DrawID,
		BilledAt:    s.BilledAt,
		TotalSold:   s.TotalSold(),
		TotalPrizes: s.TotalPrizes(),
	}
	for _, l := range s.Lines {
		resp.Lines = append(resp.Lines, statementLineResponse{
			SellerID:         l.SellerID,
			QuantitySold:     l.QuantitySold,
			CommissionAmount: l.CommissionAmount,
			PrizeToBePaid:    l.PrizeToBePaid,
			BalanceDelta:     l.BalanceDelta(),
		})
	}
	return resp
}

type restrictNumberRequest struct {
	Number    int             `json:"number"`
	Remaining decimal.Decimal `json:"remaining"`
}

type scheduleDrawRequest struct {
	LotteryID    int64     `json:"lottery_id" binding:"required"`
	ScheduledFor time.Time `json:"scheduled_for" binding:"required"`
	ClosesAt     time.Time `json:"closes_at" binding:"required"`
}

type drawResponse struct {
	ID           int64            `json:"id"`
	LotteryID    int64            `json:"lottery_id"`
	Variant      entities.Variant `json:"variant"`
	ScheduledFor time.Time        `json:"scheduled_for"`
	ClosesAt     time.Time        `json:"closes_at"`
	IsComputed   bool             `json:"is_computed"`
}

func toDrawResponse(d *entities.Draw) drawResponse {
	return drawResponse{
		ID:           d.ID,
		LotteryID:    d.LotteryID,
		Variant:      d.Variant,
		ScheduledFor: d.ScheduledFor,
		ClosesAt:     d.ClosesAt,
		IsComputed:   d.IsComputed,
	}
}

type setCommissionRequest struct {
	SellerID  int64           `json:"seller_id" binding:"required"`
	LotteryID int64           `json:"lottery_id" binding:"required"`
	Percent   decimal.Decimal `json:"percent"`
}

type operationResponse struct {
	ID          int64           `json:"id"`
	SellerID    int64           `json:"seller_id"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	PerformedBy int64           `json:"performed_by"`
	PerformedAt time.Time       `json:"performed_at"`
}

func toOperationResponse(op *entities.Operation) operationResponse {
	return operationResponse{
		ID:          op.ID,
		SellerID:    op.SellerID,
		Kind:        string(op.Kind),
		Amount:      op.Amount,
		PerformedBy: op.PerformedBy,
		PerformedAt: op.PerformedAt,
	}
}
