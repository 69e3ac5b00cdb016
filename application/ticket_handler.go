package application

import (
	"context"
	"fmt"

	"lotobank/domain/entities"
	"lotobank/domain/interfaces"
	"lotobank/domain/services"
)

// TicketHandler drives ticket sale and cancellation through a unit of work
type TicketHandler struct {
	uowFactory UnitOfWorkFactory
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(uowFactory UnitOfWorkFactory) *TicketHandler {
	return &TicketHandler{uowFactory: uowFactory}
}

func (h *TicketHandler) newService(uow UnitOfWork) interfaces.TicketService {
	ledger := services.NewRestrictedNumberLedger(
		uow.RestrictedNumberRepository(),
		uow.DrawRepository(),
		uow.BankRepository(),
	)
	return services.NewTicketService(
		uow.DrawRepository(),
		uow.BankRepository(),
		uow.SellerRepository(),
		uow.TicketRepository(),
		uow.CommissionRepository(),
		ledger,
		uow.EventBus(),
	)
}

// SellTicket records a sale inside one transaction. The restricted-number
// reservation and the ticket insert commit or roll back together.
func (h *TicketHandler) SellTicket(ctx context.Context, bankID int64, input interfaces.SellTicketInput) (*entities.Ticket, error) {
	uow := h.uowFactory.CreateForBank(bankID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	ticket, err := h.newService(uow).Sell(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit ticket sale: %w", err)
	}

	return ticket, nil
}

// CancelTicket cancels a ticket inside one transaction
func (h *TicketHandler) CancelTicket(ctx context.Context, bankID, ticketID int64, actor entities.Actor) error {
	uow := h.uowFactory.CreateForBank(bankID)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := h.newService(uow).Cancel(ctx, ticketID, actor); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit ticket cancellation: %w", err)
	}

	return nil
}
