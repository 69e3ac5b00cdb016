package application

import (
	"context"
	"fmt"

	"lotobank/domain/entities"
	"lotobank/domain/services"
)

// PaymentHandler drives manual balance settlement through a unit of work
type PaymentHandler struct {
	uowFactory UnitOfWorkFactory
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(uowFactory UnitOfWorkFactory) *PaymentHandler {
	return &PaymentHandler{uowFactory: uowFactory}
}

// SettleSellerBalance zeroes a seller's balance and records the manual
// payment or collection that did it.
func (h *PaymentHandler) SettleSellerBalance(ctx context.Context, bankID, sellerID int64, actor entities.Actor) (*entities.Operation, error) {
	uow := h.uowFactory.CreateForBank(bankID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	paymentService := services.NewPaymentService(
		uow.SellerRepository(),
		uow.BankRepository(),
		uow.OperationRepository(),
		uow.EventBus(),
	)

	op, err := paymentService.SettleBalance(ctx, sellerID, actor)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit balance settlement: %w", err)
	}

	return op, nil
}
