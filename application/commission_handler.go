package application

import (
	"context"
	"fmt"

	"lotobank/domain/entities"
	"lotobank/domain/errs"
)

// CommissionHandler drives seller commission parametrization through a unit
// of work
type CommissionHandler struct {
	uowFactory UnitOfWorkFactory
}

// NewCommissionHandler creates a new commission handler
func NewCommissionHandler(uowFactory UnitOfWorkFactory) *CommissionHandler {
	return &CommissionHandler{uowFactory: uowFactory}
}

// SetCommission creates or updates the percentage agreement between a seller
// and a lottery. Only a bank administrator may parametrize sellers.
func (h *CommissionHandler) SetCommission(ctx context.Context, bankID int64, actor entities.Actor, commission *entities.Commission) error {
	if commission.Percent.IsNegative() {
		return errs.Validation("commission_percent_invalid", "commission percent is negative")
	}

	uow := h.uowFactory.CreateForBank(bankID)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	bank, err := uow.BankRepository().GetByID(ctx, bankID)
	if err != nil {
		return fmt.Errorf("failed to get bank: %w", err)
	}
	if bank == nil || bank.IsDeleted {
		return errs.NotFound("bank_not_found", fmt.Sprintf("bank %d not found", bankID))
	}
	if !actor.CanAdministerBank(bank) {
		return errs.NotAllowed(fmt.Sprintf("actor %d cannot administer bank %d", actor.ID, bankID))
	}

	seller, err := uow.SellerRepository().GetByID(ctx, commission.SellerID)
	if err != nil {
		return fmt.Errorf("failed to get seller: %w", err)
	}
	if seller == nil || seller.IsDeleted {
		return errs.NotFound("seller_not_found", fmt.Sprintf("seller %d not found", commission.SellerID))
	}

	lottery, err := uow.LotteryRepository().GetByID(ctx, commission.LotteryID)
	if err != nil {
		return fmt.Errorf("failed to get lottery: %w", err)
	}
	if lottery == nil || lottery.IsDeleted {
		return errs.NotFound("lottery_not_found", fmt.Sprintf("lottery %d not found", commission.LotteryID))
	}

	if err := uow.CommissionRepository().Upsert(ctx, commission); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit commission: %w", err)
	}

	return nil
}
