package application

import (
	"context"
	"fmt"

	"lotobank/domain/entities"
	"lotobank/domain/services"

	log "github.com/sirupsen/logrus"
)

// SettlementHandler drives draw settlement through a unit of work
type SettlementHandler struct {
	uowFactory             UnitOfWorkFactory
	reventadoBonusAllTypes bool
}

// NewSettlementHandler creates a new settlement handler
func NewSettlementHandler(uowFactory UnitOfWorkFactory, reventadoBonusAllTypes bool) *SettlementHandler {
	return &SettlementHandler{
		uowFactory:             uowFactory,
		reventadoBonusAllTypes: reventadoBonusAllTypes,
	}
}

// SettleDraw generates the billing statement for a draw inside one
// transaction. The variant names which payout rule the caller expects; a
// mismatch with the draw is rejected.
func (h *SettlementHandler) SettleDraw(ctx context.Context, bankID, drawID int64, variant entities.Variant, actor entities.Actor) (*entities.BillingStatement, error) {
	uow := h.uowFactory.CreateForBank(bankID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	settlementService := services.NewSettlementService(
		uow.DrawRepository(),
		uow.BankRepository(),
		uow.LotteryRepository(),
		uow.TicketRepository(),
		uow.OutcomeRepository(),
		uow.CommissionRepository(),
		uow.BillingStatementRepository(),
		uow.SellerRepository(),
		uow.EventBus(),
		h.reventadoBonusAllTypes,
	)

	statement, err := settlementService.Settle(ctx, drawID, variant, actor)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit settlement: %w", err)
	}

	log.WithFields(log.Fields{
		"bankID":  bankID,
		"drawID":  drawID,
		"variant": variant,
	}).Info("draw settled")

	return statement, nil
}

// GetStatement returns the billing statement of a settled draw, or nil if
// the draw has not been settled.
func (h *SettlementHandler) GetStatement(ctx context.Context, bankID, drawID int64) (*entities.BillingStatement, error) {
	uow := h.uowFactory.CreateForBank(bankID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.BillingStatementRepository().GetByDraw(ctx, drawID)
}
