package api

import (
	"net/http"

	"lotobank/domain/entities"
	"lotobank/domain/errs"
	"lotobank/domain/interfaces"

	"github.com/gin-gonic/gin"
)

func (s *Server) scheduleDraw(c *gin.Context) {
	bankID, ok := pathID(c, "bank_id")
	if !ok {
		respondError(c, s.translator, errs.Validation("bank_not_found", "invalid bank id"))
		return
	}
	actor, ok := requestActor(c)
	if !ok {
		respondError(c, s.translator, errs.NotAllowed("missing or invalid identity headers"))
		return
	}

	var req scheduleDrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, s.translator, errs.Validation("unexpected_error", "malformed request body"))
		return
	}

	draw, err := s.draws.ScheduleDraw(c.Request.Context(), bankID, req.LotteryID, actor, req.ScheduledFor, req.ClosesAt)
	if err != nil {
		respondError(c, s.translator, err)
		return
	}

	c.JSON(http.StatusCreated, toDrawResponse(draw))
}

// settleDraw builds the handler for one variant settlement route. All four
// routes share the same engine; the variant only selects the payout rule the
// caller expects the draw to have.
func (s *Server) settleDraw(variant entities.Variant) gin.HandlerFunc {
	return func(c *gin.Context) {
		bankID, ok := pathID(c, "bank_id")
		if !ok {
			respondError(c, s.translator, errs.Validation("bank_not_found", "invalid bank id"))
			return
		}
		drawID, ok := pathID(c, "draw_id")
		if !ok {
			respondError(c, s.translator, errs.Validation("draw_not_found", "invalid draw id"))
			return
		}
		actor, ok := requestActor(c)
		if !ok {
			respondError(c, s.translator, errs.NotAllowed("missing or invalid identity headers"))
			return
		}

		statement, err := s.settlement.SettleDraw(c.Request.Context(), bankID, drawID, variant, actor)
		if err != nil {
			respondError(c, s.translator, err)
			return
		}

		c.JSON(http.StatusOK, toStatementResponse(statement))
	}
}

func (s *Server) getStatement(c *gin.Context) {
	bankID, ok := pathID(c, "bank_id")
	if !ok {
		respondError(c, s.translator, errs.Validation("bank_not_found", "invalid bank id"))
		return
	}
	drawID, ok := pathID(c, "draw_id")
	if !ok {
		respondError(c, s.translator, errs.Validation("draw_not_found", "invalid draw id"))
		return
	}

	statement, err := s.settlement.GetStatement(c.Request.Context(), bankID, drawID)
	if err != nil {
		respondError(c, s.translator, err)
		return
	}
	if statement == nil {
		respondError(c, s.translator, errs.NotFound("draw_not_found", "draw has not been settled"))
		return
	}

	c.JSON(http.StatusOK, toStatementResponse(statement))
}

func (s *Server) declareOutcome(c *gin.Context) {
	bankID, ok := pathID(c, "bank_id")
	if !ok {
		respondError(c, s.translator, errs.Validation("bank_not_found", "invalid bank id"))
		return
	}
	drawID, ok := pathID(c, "draw_id")
	if !ok {
		respondError(c, s.translator, errs.Validation("draw_not_found", "invalid draw id"))
		return
	}
	actor, ok := requestActor(c)
	if !ok {
		respondError(c, s.translator, errs.NotAllowed("missing or invalid identity headers"))
		return
	}

	var req declareOutcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, s.translator, errs.Validation("invalid_outcome_shape", "malformed request body"))
		return
	}

	if err := s.outcomes.DeclareOutcome(c.Request.Context(), bankID, drawID, actor, req.toOutcome(drawID)); err != nil {
		respondError(c, s.translator, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) sellTicket(c *gin.Context) {
	bankID, ok := pathID(c, "bank_id")
	if !ok {
		respondError(c, s.translator, errs.Validation("bank_not_found", "invalid bank id"))
		return
	}
	actor, ok := requestActor(c)
	if !ok {
		respondError(c, s.translator, errs.NotAllowed("missing or invalid identity headers"))
		return
	}
	var req sellTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, s.translator, errs.Validation("invalid_bet_shape", "malformed request body"))
		return
	}

	// Sellers sell on their own behalf; bank admins may sell for any seller.
	if actor.Role == entities.RoleSeller && actor.ID != req.SellerID {
		respondError(c, s.translator, errs.NotAllowed("sellers may only sell their own tickets"))
		return
	}

	input := interfaces.SellTicketInput{
		DrawID:    req.DrawID,
		SellerID:  req.SellerID,
		BuyerName: req.BuyerName,
	}
	for _, b := range req.NumberBets {
		input.NumberBets = append(input.NumberBets, &entities.NumberBet{
			Number:      b.Number,
			Amount:      b.Amount,
			BonusAmount: b.BonusAmount,
		})
	}
	for _, b := range req.MonazoBets {
		input.MonazoBets = append(input.MonazoBets, &entities.MonazoBet{
			First:   b.First,
			Second:  b.Second,
			Third:   b.Third,
			SubType: b.SubType,
			Amount:  b.Amount,
		})
	}
	for _, b := range req.ParleyBets {
		input.ParleyBets = append(input.ParleyBets, &entities.ParleyBet{
			First:  b.First,
			Second: b.Second,
			Amount: b.Amount,
		})
	}

	ticket, err := s.tickets.SellTicket(c.Request.Context(), bankID, input)
	if err != nil {
		respondError(c, s.translator, err)
		return
	}

	c.JSON(http.StatusCreated, toTicketResponse(ticket))
}

func (s *Server) cancelTicket(c *gin.Context) {
	bankID, ok := pathID(c, "bank_id")
	if !ok {
		respondError(c, s.translator, errs.Validation("bank_not_found", "invalid bank id"))
		return
	}
	ticketID, ok := pathID(c, "ticket_id")
	if !ok {
		respondError(c, s.translator, errs.Validation("ticket_not_found", "invalid ticket id"))
		return
	}
	actor, ok := requestActor(c)
	if !ok {
		respondError(c, s.translator, errs.NotAllowed("missing or invalid identity headers"))
		return
	}

	if err := s.tickets.CancelTicket(c.Request.Context(), bankID, ticketID, actor); err != nil {
		respondError(c, s.translator, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) restrictNumber(c *gin.Context) {
	bankID, ok := pathID(c, "bank_id")
	if !ok {
		respondError(c, s.translator, errs.Validation("bank_not_found", "invalid bank id"))
		return
	}
	drawID, ok := pathID(c, "draw_id")
	if !ok {
		respondError(c, s.translator, errs.Validation("draw_not_found", "invalid draw id"))
		return
	}
	actor, ok := requestActor(c)
	if !ok {
		respondError(c, s.translator, errs.NotAllowed("missing or invalid identity headers"))
		return
	}

	var req restrictNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, s.translator, errs.Validation("invalid_restriction_amount", "malformed request body"))
		return
	}

	rn := &entities.RestrictedNumber{
		DrawID:    drawID,
		Number:    req.Number,
		Remaining: req.Remaining,
	}
	if err := s.restriction.RestrictNumber(c.Request.Context(), bankID, actor, rn); err != nil {
		respondError(c, s.translator, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) restrictSellerNumber(c *gin.Context) {
	bankID, ok := pathID(c, "bank_id")
	if !ok {
		respondError(c, s.translator, errs.Validation("bank_not_found", "invalid bank id"))
		return
	}
	drawID, ok := pathID(c, "draw_id")
	if !ok {
		respondError(c, s.translator, errs.Validation("draw_not_found", "invalid draw id"))
		return
	}
	sellerID, ok := pathID(c, "seller_id")
	if !ok {
		respondError(c, s.translator, errs.Validation("seller_not_found", "invalid seller id"))
		return
	}
	actor, ok := requestActor(c)
	if !ok {
		respondError(c, s.translator, errs.NotAllowed("missing or invalid identity headers"))
		return
	}

	var req restrictNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, s.translator, errs.Validation("invalid_restriction_amount", "malformed request body"))
		return
	}

	rn := &entities.SellerRestrictedNumber{
		DrawID:    drawID,
		SellerID:  sellerID,
		Number:    req.Number,
		Remaining: req.Remaining,
	}
	if err := s.restriction.RestrictNumberForSeller(c.Request.Context(), bankID, actor, rn); err != nil {
		respondError(c, s.translator, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) setCommission(c *gin.Context) {
	bankID, ok := pathID(c, "bank_id")
	if !ok {
		respondError(c, s.translator, errs.Validation("bank_not_found", "invalid bank id"))
		return
	}
	actor, ok := requestActor(c)
	if !ok {
		respondError(c, s.translator, errs.NotAllowed("missing or invalid identity headers"))
		return
	}

	var req setCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, s.translator, errs.Validation("commission_percent_invalid", "malformed request body"))
		return
	}

	commission := &entities.Commission{
		SellerID:  req.SellerID,
		LotteryID: req.LotteryID,
		Percent:   req.Percent,
	}
	if err := s.commissions.SetCommission(c.Request.Context(), bankID, actor, commission); err != nil {
		respondError(c, s.translator, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) settleBalance(c *gin.Context) {
	bankID, ok := pathID(c, "bank_id")
	if !ok {
		respondError(c, s.translator, errs.Validation("bank_not_found", "invalid bank id"))
		return
	}
	sellerID, ok := pathID(c, "seller_id")
	if !ok {
		respondError(c, s.translator, errs.Validation("seller_not_found", "invalid seller id"))
		return
	}
	actor, ok := requestActor(c)
	if !ok {
		respondError(c, s.translator, errs.NotAllowed("missing or invalid identity headers"))
		return
	}

	op, err := s.payments.SettleSellerBalance(c.Request.Context(), bankID, sellerID, actor)
	if err != nil {
		respondError(c, s.translator, err)
		return
	}

	c.JSON(http.StatusOK, toOperationResponse(op))
}
