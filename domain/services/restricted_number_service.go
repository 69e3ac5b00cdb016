package services

import (
	"context"
	"fmt"

	"lotobank/domain/entities"
	"lotobank/domain/errs"
	"lotobank/domain/interfaces"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// restrictedNumberService implements the restricted-number ledger: per-draw
// and per-seller caps on the exposure sold against a number.
type restrictedNumberService struct {
	restrictedRepo interfaces.RestrictedNumberRepository
	drawRepo       interfaces.DrawRepository
	bankRepo       interfaces.BankRepository
}

// NewRestrictedNumberLedger creates a new restricted-number ledger. The
// repositories must come from the caller's unit of work so validation and
// decrement share one transaction.
func NewRestrictedNumberLedger(
	restrictedRepo interfaces.RestrictedNumberRepository,
	drawRepo interfaces.DrawRepository,
	bankRepo interfaces.BankRepository,
) interfaces.RestrictedNumberLedger {
	return &restrictedNumberService{
		restrictedRepo: restrictedRepo,
		drawRepo:       drawRepo,
		bankRepo:       bankRepo,
	}
}

// CheckAndReserve implements interfaces.RestrictedNumberLedger.
//
// Requests for the same number are aggregated before validation so a ticket
// carrying several bets on one number is checked against the cap as a whole.
// Both passes validate before anything is decremented.
func (s *restrictedNumberService) CheckAndReserve(ctx context.Context, drawID, sellerID int64, requests []entities.NumberAmount) error {
	if len(requests) == 0 {
		return nil
	}

	requested := make(map[int]decimal.Decimal)
	numbers := make([]int, 0, len(requests))
	for _, r := range requests {
		if !r.Amount.IsPositive() {
			return errs.Validation("invalid_bet_amount",
				fmt.Sprintf("non-positive amount %s requested for number %d", r.Amount, r.Number))
		}
		if _, ok := requested[r.Number]; !ok {
			numbers = append(numbers, r.Number)
		}
		requested[r.Number] = requested[r.Number].Add(r.Amount)
	}

	// Row locks hold until the caller's transaction resolves, so no
	// concurrent reservation can consume the same remaining amount.
	drawLevel, err := s.restrictedRepo.GetByDrawForUpdate(ctx, drawID, numbers)
	if err != nil {
		return fmt.Errorf("failed to load draw-level restrictions: %w", err)
	}
	sellerLevel, err := s.restrictedRepo.GetBySellerForUpdate(ctx, drawID, sellerID, numbers)
	if err != nil {
		return fmt.Errorf("failed to load seller-level restrictions: %w", err)
	}

	for _, rn := range drawLevel {
		amount := requested[rn.Number]
		if !rn.Allows(amount) {
			return errs.NumberNotAllowed(rn.Number,
				fmt.Sprintf("draw %d: number %d has %s remaining, %s requested", drawID, rn.Number, rn.Remaining, amount))
		}
	}
	for _, rn := range sellerLevel {
		amount := requested[rn.Number]
		if !rn.Allows(amount) {
			return errs.NumberNotAllowed(rn.Number,
				fmt.Sprintf("draw %d seller %d: number %d has %s remaining, %s requested", drawID, sellerID, rn.Number, rn.Remaining, amount))
		}
	}

	// All checks passed; apply every decrement.
	for _, rn := range drawLevel {
		if err := s.restrictedRepo.Decrement(ctx, rn.ID, requested[rn.Number]); err != nil {
			return fmt.Errorf("failed to decrement restriction on number %d: %w", rn.Number, err)
		}
	}
	for _, rn := range sellerLevel {
		if err := s.restrictedRepo.DecrementSeller(ctx, rn.ID, requested[rn.Number]); err != nil {
			return fmt.Errorf("failed to decrement seller restriction on number %d: %w", rn.Number, err)
		}
	}

	return nil
}

// Restrict implements interfaces.RestrictedNumberLedger
func (s *restrictedNumberService) Restrict(ctx context.Context, actor entities.Actor, rn *entities.RestrictedNumber) error {
	if err := s.authorizeDrawAdmin(ctx, actor, rn.DrawID); err != nil {
		return err
	}
	if rn.Remaining.IsNegative() {
		return errs.Validation("invalid_restriction_amount",
			fmt.Sprintf("negative remaining amount %s for number %d", rn.Remaining, rn.Number))
	}
	if err := s.restrictedRepo.Upsert(ctx, rn); err != nil {
		return fmt.Errorf("failed to upsert restriction: %w", err)
	}
	log.WithFields(log.Fields{
		"drawID":    rn.DrawID,
		"number":    rn.Number,
		"remaining": rn.Remaining,
	}).Info("Draw-level number restriction set")
	return nil
}

// RestrictSeller implements interfaces.RestrictedNumberLedger
func (s *restrictedNumberService) RestrictSeller(ctx context.Context, actor entities.Actor, rn *entities.SellerRestrictedNumber) error {
	if err := s.authorizeDrawAdmin(ctx, actor, rn.DrawID); err != nil {
		return err
	}
	if rn.Remaining.IsNegative() {
		return errs.Validation("invalid_restriction_amount",
			fmt.Sprintf("negative remaining amount %s for number %d", rn.Remaining, rn.Number))
	}
	if err := s.restrictedRepo.UpsertSeller(ctx, rn); err != nil {
		return fmt.Errorf("failed to upsert seller restriction: %w", err)
	}
	log.WithFields(log.Fields{
		"drawID":    rn.DrawID,
		"sellerID":  rn.SellerID,
		"number":    rn.Number,
		"remaining": rn.Remaining,
	}).Info("Seller-level number restriction set")
	return nil
}

func (s *restrictedNumberService) authorizeDrawAdmin(ctx context.Context, actor entities.Actor, drawID int64) error {
	draw, err := s.drawRepo.GetByID(ctx, drawID)
	if err != nil {
		return fmt.Errorf("failed to get draw: %w", err)
	}
	if draw == nil || draw.IsDeleted {
		return errs.NotFound("draw_not_found", fmt.Sprintf("draw %d not found", drawID))
	}
	bank, err := s.bankRepo.GetByID(ctx, draw.BankID)
	if err != nil {
		return fmt.Errorf("failed to get bank: %w", err)
	}
	if bank == nil || !actor.CanAdministerBank(bank) {
		return errs.NotAllowed(fmt.Sprintf("actor %d (%s) may not restrict numbers of bank %d", actor.ID, actor.Role, draw.BankID))
	}
	return nil
}
