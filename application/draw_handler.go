package application

import (
	"context"
	"fmt"
	"time"

	"lotobank/domain/entities"
	"lotobank/domain/errs"
)

// DrawHandler drives draw scheduling through a unit of work
type DrawHandler struct {
	uowFactory UnitOfWorkFactory
}

// NewDrawHandler creates a new draw handler
func NewDrawHandler(uowFactory UnitOfWorkFactory) *DrawHandler {
	return &DrawHandler{uowFactory: uowFactory}
}

// ScheduleDraw creates a draw for a lottery. The draw inherits the lottery's
// variant; only a bank administrator may schedule draws.
func (h *DrawHandler) ScheduleDraw(ctx context.Context, bankID, lotteryID int64, actor entities.Actor, scheduledFor, closesAt time.Time) (*entities.Draw, error) {
	if !closesAt.After(time.Now()) {
		return nil, errs.Validation("closes_at_in_past", "draw closing time is in the past")
	}

	uow := h.uowFactory.CreateForBank(bankID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	bank, err := uow.BankRepository().GetByID(ctx, bankID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bank: %w", err)
	}
	if bank == nil || bank.IsDeleted {
		return nil, errs.NotFound("bank_not_found", fmt.Sprintf("bank %d not found", bankID))
	}
	if !actor.CanAdministerBank(bank) {
		return nil, errs.NotAllowed(fmt.Sprintf("actor %d cannot administer bank %d", actor.ID, bankID))
	}

	lottery, err := uow.LotteryRepository().GetByID(ctx, lotteryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lottery: %w", err)
	}
	if lottery == nil || lottery.IsDeleted {
		return nil, errs.NotFound("lottery_not_found", fmt.Sprintf("lottery %d not found", lotteryID))
	}

	draw := &entities.Draw{
		LotteryID:    lotteryID,
		BankID:       bankID,
		Variant:      lottery.Variant,
		ScheduledFor: scheduledFor,
		ClosesAt:     closesAt,
	}
	if err := uow.DrawRepository().Create(ctx, draw); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit draw: %w", err)
	}

	return draw, nil
}
