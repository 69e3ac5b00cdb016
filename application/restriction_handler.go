package application

import (
	"context"
	"fmt"

	"lotobank/domain/entities"
	"lotobank/domain/interfaces"
	"lotobank/domain/services"
)

// RestrictionHandler drives restricted-number administration through a unit
// of work
type RestrictionHandler struct {
	uowFactory UnitOfWorkFactory
}

// NewRestrictionHandler creates a new restriction handler
func NewRestrictionHandler(uowFactory UnitOfWorkFactory) *RestrictionHandler {
	return &RestrictionHandler{uowFactory: uowFactory}
}

func (h *RestrictionHandler) newLedger(uow UnitOfWork) interfaces.RestrictedNumberLedger {
	return services.NewRestrictedNumberLedger(
		uow.RestrictedNumberRepository(),
		uow.DrawRepository(),
		uow.BankRepository(),
	)
}

// RestrictNumber creates or replaces a draw-level exposure cap
func (h *RestrictionHandler) RestrictNumber(ctx context.Context, bankID int64, actor entities.Actor, rn *entities.RestrictedNumber) error {
	uow := h.uowFactory.CreateForBank(bankID)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := h.newLedger(uow).Restrict(ctx, actor, rn); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit restriction: %w", err)
	}

	return nil
}

// RestrictNumberForSeller creates or replaces a seller-level exposure cap
func (h *RestrictionHandler) RestrictNumberForSeller(ctx context.Context, bankID int64, actor entities.Actor, rn *entities.SellerRestrictedNumber) error {
	uow := h.uowFactory.CreateForBank(bankID)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := h.newLedger(uow).RestrictSeller(ctx, actor, rn); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit seller restriction: %w", err)
	}

	return nil
}
