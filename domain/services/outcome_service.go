package services

import (
	"context"
	"fmt"

	"lotobank/domain/entities"
	"lotobank/domain/errs"
	"lotobank/domain/events"
	"lotobank/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// outcomeService records declared winning numbers for draws
type outcomeService struct {
	drawRepo       interfaces.DrawRepository
	bankRepo       interfaces.BankRepository
	lotteryRepo    interfaces.LotteryRepository
	outcomeRepo    interfaces.OutcomeRepository
	eventPublisher interfaces.EventPublisher
}

// NewOutcomeService creates a new outcome service
func NewOutcomeService(
	drawRepo interfaces.DrawRepository,
	bankRepo interfaces.BankRepository,
	lotteryRepo interfaces.LotteryRepository,
	outcomeRepo interfaces.OutcomeRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.OutcomeService {
	return &outcomeService{
		drawRepo:       drawRepo,
		bankRepo:       bankRepo,
		lotteryRepo:    lotteryRepo,
		outcomeRepo:    outcomeRepo,
		eventPublisher: eventPublisher,
	}
}

// Declare implements interfaces.OutcomeService
func (s *outcomeService) Declare(ctx context.Context, drawID int64, actor entities.Actor, outcome *entities.DrawOutcome) error {
	draw, err := s.drawRepo.GetByIDForUpdate(ctx, drawID)
	if err != nil {
		return fmt.Errorf("failed to lock draw: %w", err)
	}
	if draw == nil || draw.IsDeleted {
		return errs.NotFound("draw_not_found", fmt.Sprintf("draw %d not found", drawID))
	}
	if draw.IsComputed {
		return errs.AlreadySettled(drawID)
	}

	bank, err := s.bankRepo.GetByID(ctx, draw.BankID)
	if err != nil {
		return fmt.Errorf("failed to get bank: %w", err)
	}
	if bank == nil || !actor.CanAdministerBank(bank) {
		return errs.NotAllowed(fmt.Sprintf("actor %d (%s) may not declare outcomes for bank %d", actor.ID, actor.Role, draw.BankID))
	}

	if err := s.validateOutcome(ctx, draw, outcome); err != nil {
		return err
	}

	outcome.DrawID = drawID
	if err := s.outcomeRepo.Replace(ctx, draw.Variant, outcome); err != nil {
		return fmt.Errorf("failed to store outcome: %w", err)
	}

	if err := s.eventPublisher.Publish(events.OutcomeDeclaredEvent{
		DrawID: drawID,
		BankID: draw.BankID,
	}); err != nil {
		log.WithError(err).WithField("drawID", drawID).Error("failed to publish outcome declared event")
	}

	return nil
}

// validateOutcome enforces the variant's outcome shape before storing it.
func (s *outcomeService) validateOutcome(ctx context.Context, draw *entities.Draw, outcome *entities.DrawOutcome) error {
	if !outcome.Declared(draw.Variant) {
		return errs.Validation("invalid_outcome_shape",
			fmt.Sprintf("outcome does not match variant %s of draw %d", draw.Variant, draw.ID))
	}

	switch draw.Variant {
	case entities.VariantCommon:
		seen := make(map[int]bool)
		for _, w := range outcome.Numbers {
			if seen[w.Number] {
				return errs.Validation("invalid_outcome_shape",
					fmt.Sprintf("winning number %d declared twice", w.Number))
			}
			seen[w.Number] = true
			if !w.Multiplier.IsPositive() {
				return errs.Validation("invalid_outcome_shape",
					fmt.Sprintf("non-positive multiplier for winning number %d", w.Number))
			}
		}
	case entities.VariantReventado:
		lottery, err := s.lotteryRepo.GetByID(ctx, draw.LotteryID)
		if err != nil {
			return fmt.Errorf("failed to get lottery: %w", err)
		}
		if lottery == nil {
			return errs.NotFound("draw_not_found", fmt.Sprintf("lottery %d not found", draw.LotteryID))
		}
		if _, ok := lottery.BallTypeByID(outcome.Reventado.BallTypeID); !ok {
			return errs.Validation("invalid_outcome_shape",
				fmt.Sprintf("ball type %d not configured for lottery %d", outcome.Reventado.BallTypeID, lottery.ID))
		}
	}
	return nil
}
