package services

import (
	"context"
	"fmt"

	"lotobank/domain/entities"
	"lotobank/domain/errs"
	"lotobank/domain/events"
	"lotobank/domain/interfaces"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// paymentService implements manual payment and collection operations that
// zero out a seller's running balance.
type paymentService struct {
	sellerRepo     interfaces.SellerRepository
	bankRepo       interfaces.BankRepository
	operationRepo  interfaces.OperationRepository
	eventPublisher interfaces.EventPublisher
}

// NewPaymentService creates a new payment service. The repositories must
// come from one unit of work.
func NewPaymentService(
	sellerRepo interfaces.SellerRepository,
	bankRepo interfaces.BankRepository,
	operationRepo interfaces.OperationRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.PaymentService {
	return &paymentService{
		sellerRepo:     sellerRepo,
		bankRepo:       bankRepo,
		operationRepo:  operationRepo,
		eventPublisher: eventPublisher,
	}
}

// SettleBalance implements interfaces.PaymentService
func (s *paymentService) SettleBalance(ctx context.Context, sellerID int64, actor entities.Actor) (*entities.Operation, error) {
	seller, err := s.sellerRepo.GetByIDForUpdate(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock seller: %w", err)
	}
	if seller == nil || seller.IsDeleted {
		return nil, errs.NotFound("seller_not_found", fmt.Sprintf("seller %d not found", sellerID))
	}

	bank, err := s.bankRepo.GetByID(ctx, seller.BankID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bank: %w", err)
	}
	if bank == nil || !actor.CanAdministerBank(bank) {
		return nil, errs.NotAllowed(fmt.Sprintf("actor %d (%s) may not settle balances of bank %d", actor.ID, actor.Role, seller.BankID))
	}

	if seller.Balance.IsZero() {
		return nil, errs.Validation("balance_already_zero", fmt.Sprintf("seller %d has no balance to settle", sellerID))
	}

	kind := entities.OperationPayment
	if seller.Balance.IsNegative() {
		kind = entities.OperationCollection
	}

	op := &entities.Operation{
		SellerID:    seller.ID,
		BankID:      seller.BankID,
		Kind:        kind,
		Amount:      seller.Balance.Abs(),
		PerformedBy: actor.ID,
	}
	if err := s.operationRepo.Create(ctx, op); err != nil {
		return nil, fmt.Errorf("failed to record operation: %w", err)
	}
	if err := s.sellerRepo.SetBalance(ctx, seller.ID, decimal.Zero); err != nil {
		return nil, fmt.Errorf("failed to zero seller balance: %w", err)
	}

	if err := s.eventPublisher.Publish(events.BalanceSettledEvent{
		SellerID:    seller.ID,
		BankID:      seller.BankID,
		OperationID: op.ID,
		Amount:      op.Amount,
		Kind:        string(kind),
	}); err != nil {
		log.WithError(err).WithField("sellerID", seller.ID).Error("failed to publish balance settled event")
	}

	return op, nil
}
