package services

import (
	"context"
	"fmt"
	"time"

	"lotobank/domain/entities"
	"lotobank/domain/errs"
	"lotobank/domain/events"
	"lotobank/domain/interfaces"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// ticketService implements ticket sale and cancellation
type ticketService struct {
	drawRepo       interfaces.DrawRepository
	bankRepo       interfaces.BankRepository
	sellerRepo     interfaces.SellerRepository
	ticketRepo     interfaces.TicketRepository
	commissionRepo interfaces.CommissionRepository
	ledger         interfaces.RestrictedNumberLedger
	eventPublisher interfaces.EventPublisher
}

// NewTicketService creates a new ticket service. The repositories and the
// restricted-number ledger must come from one unit of work so the
// reservation and the ticket insert commit together.
func NewTicketService(
	drawRepo interfaces.DrawRepository,
	bankRepo interfaces.BankRepository,
	sellerRepo interfaces.SellerRepository,
	ticketRepo interfaces.TicketRepository,
	commissionRepo interfaces.CommissionRepository,
	ledger interfaces.RestrictedNumberLedger,
	eventPublisher interfaces.EventPublisher,
) interfaces.TicketService {
	return &ticketService{
		drawRepo:       drawRepo,
		bankRepo:       bankRepo,
		sellerRepo:     sellerRepo,
		ticketRepo:     ticketRepo,
		commissionRepo: commissionRepo,
		ledger:         ledger,
		eventPublisher: eventPublisher,
	}
}

// Sell implements interfaces.TicketService
func (s *ticketService) Sell(ctx context.Context, input interfaces.SellTicketInput) (*entities.Ticket, error) {
	if input.BuyerName == "" {
		return nil, errs.Validation("buyer_name_required", "buyer name is empty")
	}

	draw, err := s.drawRepo.GetByID(ctx, input.DrawID)
	if err != nil {
		return nil, fmt.Errorf("failed to get draw: %w", err)
	}
	if draw == nil || draw.IsDeleted {
		return nil, errs.NotFound("draw_not_found", fmt.Sprintf("draw %d not found", input.DrawID))
	}
	if !draw.IsOpenForSales(time.Now()) {
		return nil, errs.Validation("draw_closed", fmt.Sprintf("draw %d is closed for sales", draw.ID))
	}

	if err := validateBetShape(draw.Variant, input); err != nil {
		return nil, err
	}

	seller, err := s.sellerRepo.GetByID(ctx, input.SellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get seller: %w", err)
	}
	if seller == nil || seller.IsDeleted || seller.BankID != draw.BankID {
		return nil, errs.NotFound("seller_not_found",
			fmt.Sprintf("seller %d not found in bank %d", input.SellerID, draw.BankID))
	}

	// Sellers without a commission agreement for this lottery are not
	// parametrized and may not sell; settlement depends on the row existing.
	commission, err := s.commissionRepo.GetBySellerAndLottery(ctx, seller.ID, draw.LotteryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get commission: %w", err)
	}
	if commission == nil {
		return nil, errs.Validation("seller_not_parametrized",
			fmt.Sprintf("seller %d has no commission agreement for lottery %d", seller.ID, draw.LotteryID))
	}

	// Restricted-number caps only apply to single-number exposure; monazo
	// triples and parley pairs are outside the restriction scheme. The
	// reservation covers the full stake on the number, reventado bonus
	// included.
	if len(input.NumberBets) > 0 {
		requests := make([]entities.NumberAmount, 0, len(input.NumberBets))
		for _, bet := range input.NumberBets {
			requests = append(requests, entities.NumberAmount{
				Number: bet.Number,
				Amount: bet.Amount.Add(bet.BonusAmount),
			})
		}
		if err := s.ledger.CheckAndReserve(ctx, draw.ID, seller.ID, requests); err != nil {
			return nil, err
		}
	}

	ticket := &entities.Ticket{
		DrawID:     draw.ID,
		BankID:     draw.BankID,
		SellerID:   seller.ID,
		BuyerName:  input.BuyerName,
		Prize:      decimal.Zero,
		NumberBets: input.NumberBets,
		MonazoBets: input.MonazoBets,
		ParleyBets: input.ParleyBets,
	}
	ticket.TotalPrice = ticket.BetTotal()
	if !ticket.TotalPrice.IsPositive() {
		return nil, errs.Validation("empty_ticket", "ticket carries no positive bet amount")
	}

	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	if err := s.eventPublisher.Publish(events.TicketSoldEvent{
		TicketID:   ticket.ID,
		DrawID:     draw.ID,
		BankID:     draw.BankID,
		SellerID:   seller.ID,
		TotalPrice: ticket.TotalPrice,
	}); err != nil {
		log.WithError(err).WithField("ticketID", ticket.ID).Error("failed to publish ticket sold event")
	}

	return ticket, nil
}

// Cancel implements interfaces.TicketService
func (s *ticketService) Cancel(ctx context.Context, ticketID int64, actor entities.Actor) error {
	ticket, err := s.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return fmt.Errorf("failed to get ticket: %w", err)
	}
	if ticket == nil {
		return errs.NotFound("ticket_not_found", fmt.Sprintf("ticket %d not found", ticketID))
	}

	draw, err := s.drawRepo.GetByID(ctx, ticket.DrawID)
	if err != nil {
		return fmt.Errorf("failed to get draw: %w", err)
	}
	if draw == nil {
		return errs.NotFound("draw_not_found", fmt.Sprintf("draw %d of ticket %d not found", ticket.DrawID, ticketID))
	}

	if !s.mayCancel(ctx, actor, ticket) {
		return errs.NotAllowed(fmt.Sprintf("actor %d (%s) may not cancel ticket %d", actor.ID, actor.Role, ticketID))
	}
	if !draw.CanCancelTickets(time.Now()) {
		return errs.Validation("draw_closed", fmt.Sprintf("draw %d no longer accepts cancellations", draw.ID))
	}
	if ticket.IsComputed {
		return errs.Validation("ticket_already_settled", fmt.Sprintf("ticket %d has been settled", ticketID))
	}

	cancelled, err := s.ticketRepo.Cancel(ctx, ticketID)
	if err != nil {
		return fmt.Errorf("failed to cancel ticket: %w", err)
	}
	if !cancelled {
		return errs.Validation("ticket_already_cancelled", fmt.Sprintf("ticket %d is already cancelled", ticketID))
	}

	if err := s.eventPublisher.Publish(events.TicketCancelledEvent{
		TicketID: ticket.ID,
		DrawID:   ticket.DrawID,
		BankID:   ticket.BankID,
		SellerID: ticket.SellerID,
	}); err != nil {
		log.WithError(err).WithField("ticketID", ticket.ID).Error("failed to publish ticket cancelled event")
	}

	return nil
}

// mayCancel allows the selling seller, the owning banker or an admin.
func (s *ticketService) mayCancel(ctx context.Context, actor entities.Actor, ticket *entities.Ticket) bool {
	if actor.Role == entities.RoleSeller {
		return actor.ID == ticket.SellerID
	}
	bank, err := s.bankRepo.GetByID(ctx, ticket.BankID)
	if err != nil || bank == nil {
		return false
	}
	return actor.CanAdministerBank(bank)
}

// validateBetShape checks that exactly the variant's bet collection is
// populated and every entry is well formed.
func validateBetShape(variant entities.Variant, input interfaces.SellTicketInput) error {
	switch variant {
	case entities.VariantCommon, entities.VariantReventado:
		if len(input.NumberBets) == 0 || len(input.MonazoBets) > 0 || len(input.ParleyBets) > 0 {
			return errs.Validation("invalid_bet_shape", fmt.Sprintf("%s draw requires number bets only", variant))
		}
		for _, bet := range input.NumberBets {
			if !bet.Amount.IsPositive() {
				return errs.Validation("invalid_bet_amount", fmt.Sprintf("non-positive amount on number %d", bet.Number))
			}
			if bet.BonusAmount.IsNegative() {
				return errs.Validation("invalid_bet_amount", fmt.Sprintf("negative bonus amount on number %d", bet.Number))
			}
			if variant == entities.VariantCommon && !bet.BonusAmount.IsZero() {
				return errs.Validation("invalid_bet_shape", "bonus amounts only apply to reventado draws")
			}
		}
	case entities.VariantMonazo:
		if len(input.MonazoBets) == 0 || len(input.NumberBets) > 0 || len(input.ParleyBets) > 0 {
			return errs.Validation("invalid_bet_shape", "monazo draw requires monazo bets only")
		}
		for _, bet := range input.MonazoBets {
			if !bet.Amount.IsPositive() {
				return errs.Validation("invalid_bet_amount", "non-positive monazo bet amount")
			}
			if bet.SubType < entities.MonazoTypeOrder || bet.SubType > entities.MonazoTypeComboLastTwo {
				return errs.Validation("invalid_bet_shape", fmt.Sprintf("unknown monazo sub-type %d", bet.SubType))
			}
		}
	case entities.VariantParley:
		if len(input.ParleyBets) == 0 || len(input.NumberBets) > 0 || len(input.MonazoBets) > 0 {
			return errs.Validation("invalid_bet_shape", "parley draw requires parley bets only")
		}
		for _, bet := range input.ParleyBets {
			if !bet.Amount.IsPositive() {
				return errs.Validation("invalid_bet_amount", "non-positive parley bet amount")
			}
			if bet.First == bet.Second {
				return errs.Validation("invalid_bet_shape", "parley bet requires two distinct numbers")
			}
		}
	default:
		return errs.Validation("invalid_bet_shape", fmt.Sprintf("unknown variant %q", variant))
	}
	return nil
}
