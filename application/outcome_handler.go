package application

import (
	"context"
	"fmt"

	"lotobank/domain/entities"
	"lotobank/domain/services"
)

// OutcomeHandler drives winning-number declaration through a unit of work
type OutcomeHandler struct {
	uowFactory UnitOfWorkFactory
}

// NewOutcomeHandler creates a new outcome handler
func NewOutcomeHandler(uowFactory UnitOfWorkFactory) *OutcomeHandler {
	return &OutcomeHandler{uowFactory: uowFactory}
}

// DeclareOutcome records the declared winning numbers of a draw
func (h *OutcomeHandler) DeclareOutcome(ctx context.Context, bankID, drawID int64, actor entities.Actor, outcome *entities.DrawOutcome) error {
	uow := h.uowFactory.CreateForBank(bankID)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	outcomeService := services.NewOutcomeService(
		uow.DrawRepository(),
		uow.BankRepository(),
		uow.LotteryRepository(),
		uow.OutcomeRepository(),
		uow.EventBus(),
	)

	if err := outcomeService.Declare(ctx, drawID, actor, outcome); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit outcome declaration: %w", err)
	}

	return nil
}
