package services

import (
	"context"
	"fmt"
	"sort"

	"lotobank/domain/entities"
	"lotobank/domain/errs"
	"lotobank/domain/events"
	"lotobank/domain/interfaces"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// settlementService implements the billing-statement settlement engine. One
// engine serves all four variants; the payout rule is selected by the draw's
// variant tag.
type settlementService struct {
	drawRepo       interfaces.DrawRepository
	bankRepo       interfaces.BankRepository
	lotteryRepo    interfaces.LotteryRepository
	ticketRepo     interfaces.TicketRepository
	outcomeRepo    interfaces.OutcomeRepository
	commissionRepo interfaces.CommissionRepository
	statementRepo  interfaces.BillingStatementRepository
	sellerRepo     interfaces.SellerRepository
	eventPublisher interfaces.EventPublisher
	bonusAllTypes  bool
}

// NewSettlementService creates a new settlement service. All repositories
// must come from one unit of work: every mutation performed by Settle has to
// commit or roll back together.
func NewSettlementService(
	drawRepo interfaces.DrawRepository,
	bankRepo interfaces.BankRepository,
	lotteryRepo interfaces.LotteryRepository,
	ticketRepo interfaces.TicketRepository,
	outcomeRepo interfaces.OutcomeRepository,
	commissionRepo interfaces.CommissionRepository,
	statementRepo interfaces.BillingStatementRepository,
	sellerRepo interfaces.SellerRepository,
	eventPublisher interfaces.EventPublisher,
	reventadoBonusAllTypes bool,
) interfaces.SettlementService {
	return &settlementService{
		drawRepo:       drawRepo,
		bankRepo:       bankRepo,
		lotteryRepo:    lotteryRepo,
		ticketRepo:     ticketRepo,
		outcomeRepo:    outcomeRepo,
		commissionRepo: commissionRepo,
		statementRepo:  statementRepo,
		sellerRepo:     sellerRepo,
		eventPublisher: eventPublisher,
		bonusAllTypes:  reventadoBonusAllTypes,
	}
}

// sellerAccumulator is the working record folded per seller during
// classification.
type sellerAccumulator struct {
	sellerID      int64
	quantitySold  decimal.Decimal
	commission    decimal.Decimal
	prizeToBePaid decimal.Decimal
}

// ticketWin records a winning ticket and the prize to credit to it.
type ticketWin struct {
	ticketID int64
	amount   decimal.Decimal
}

// Settle implements interfaces.SettlementService
func (s *settlementService) Settle(ctx context.Context, drawID int64, variant entities.Variant, actor entities.Actor) (*entities.BillingStatement, error) {
	// Lock the draw row so concurrent settlements of the same draw serialize
	// at the precondition checks.
	draw, err := s.drawRepo.GetByIDForUpdate(ctx, drawID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock draw: %w", err)
	}
	if draw == nil || draw.IsDeleted || draw.Variant != variant {
		return nil, errs.NotFound("draw_not_found", fmt.Sprintf("draw %d not found for variant %s", drawID, variant))
	}

	bank, err := s.bankRepo.GetByID(ctx, draw.BankID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bank: %w", err)
	}
	if bank == nil {
		return nil, errs.NotFound("draw_not_found", fmt.Sprintf("bank %d of draw %d not found", draw.BankID, drawID))
	}
	if !actor.CanAdministerBank(bank) {
		return nil, errs.NotAllowed(fmt.Sprintf("actor %d (%s) may not settle draws of bank %d", actor.ID, actor.Role, bank.ID))
	}

	outcome, err := s.outcomeRepo.GetForDraw(ctx, draw)
	if err != nil {
		return nil, fmt.Errorf("failed to load outcome: %w", err)
	}
	if !outcome.Declared(draw.Variant) {
		return nil, errs.WinningNumbersNotDeclared(drawID)
	}

	if draw.IsComputed {
		return nil, errs.AlreadySettled(drawID)
	}

	lottery, err := s.lotteryRepo.GetByID(ctx, draw.LotteryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lottery: %w", err)
	}
	if lottery == nil {
		return nil, errs.NotFound("draw_not_found", fmt.Sprintf("lottery %d of draw %d not found", draw.LotteryID, drawID))
	}

	tickets, err := s.ticketRepo.GetOutstandingByDraw(ctx, drawID)
	if err != nil {
		return nil, fmt.Errorf("failed to load outstanding tickets: %w", err)
	}

	commissions, err := s.loadCommissions(ctx, lottery.ID, tickets)
	if err != nil {
		return nil, err
	}

	rule, err := payoutRuleFor(draw.Variant, s.bonusAllTypes)
	if err != nil {
		return nil, err
	}

	accumulators := make(map[int64]*sellerAccumulator)
	var winners []ticketWin
	ticketIDs := make([]int64, 0, len(tickets))

	for _, ticket := range tickets {
		ticketIDs = append(ticketIDs, ticket.ID)

		acc, ok := accumulators[ticket.SellerID]
		if !ok {
			acc = &sellerAccumulator{
				sellerID:      ticket.SellerID,
				quantitySold:  decimal.Zero,
				commission:    decimal.Zero,
				prizeToBePaid: decimal.Zero,
			}
			accumulators[ticket.SellerID] = acc
		}

		commission := commissions[ticket.SellerID]
		acc.quantitySold = acc.quantitySold.Add(ticket.TotalPrice)
		acc.commission = acc.commission.Add(commission.AmountFor(ticket.TotalPrice))

		winAmount, err := rule(ticket, outcome, lottery)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate ticket %d: %w", ticket.ID, err)
		}
		if winAmount.IsPositive() {
			acc.prizeToBePaid = acc.prizeToBePaid.Add(winAmount)
			winners = append(winners, ticketWin{ticketID: ticket.ID, amount: winAmount})
		}
	}

	// Conditional transition guards idempotency under race: only the caller
	// that flips is_computed gets to write the statement.
	transitioned, err := s.drawRepo.MarkComputed(ctx, drawID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark draw computed: %w", err)
	}
	if !transitioned {
		return nil, errs.AlreadySettled(drawID)
	}

	if len(ticketIDs) > 0 {
		if err := s.ticketRepo.MarkComputed(ctx, ticketIDs); err != nil {
			return nil, fmt.Errorf("failed to mark tickets computed: %w", err)
		}
	}

	statement := &entities.BillingStatement{
		DrawID: drawID,
		BankID: draw.BankID,
		Lines:  buildLines(accumulators),
	}
	if err := s.statementRepo.Create(ctx, statement); err != nil {
		return nil, fmt.Errorf("failed to create billing statement: %w", err)
	}

	for _, line := range statement.Lines {
		if err := s.sellerRepo.AdjustBalance(ctx, line.SellerID, line.BalanceDelta()); err != nil {
			return nil, fmt.Errorf("failed to adjust balance of seller %d: %w", line.SellerID, err)
		}
	}

	for _, win := range winners {
		if err := s.ticketRepo.AddPrize(ctx, win.ticketID, win.amount); err != nil {
			return nil, fmt.Errorf("failed to credit prize to ticket %d: %w", win.ticketID, err)
		}
	}

	if err := s.eventPublisher.Publish(events.DrawSettledEvent{
		DrawID:      drawID,
		BankID:      draw.BankID,
		StatementID: statement.ID,
		SellerCount: len(statement.Lines),
		TotalSold:   statement.TotalSold(),
		TotalPrizes: statement.TotalPrizes(),
	}); err != nil {
		log.WithError(err).WithField("drawID", drawID).Error("failed to publish draw settled event")
	}

	log.WithFields(log.Fields{
		"drawID":      drawID,
		"variant":     draw.Variant,
		"tickets":     len(tickets),
		"sellers":     len(statement.Lines),
		"totalSold":   statement.TotalSold(),
		"totalPrizes": statement.TotalPrizes(),
	}).Info("Draw settled")

	return statement, nil
}

// loadCommissions resolves the commission agreement for every distinct
// seller in the ticket set. A missing agreement fails the settlement: the
// parametrization step must have run for every selling seller.
func (s *settlementService) loadCommissions(ctx context.Context, lotteryID int64, tickets []*entities.Ticket) (map[int64]*entities.Commission, error) {
	sellerIDs := make([]int64, 0)
	seen := make(map[int64]bool)
	for _, t := range tickets {
		if !seen[t.SellerID] {
			seen[t.SellerID] = true
			sellerIDs = append(sellerIDs, t.SellerID)
		}
	}
	if len(sellerIDs) == 0 {
		return map[int64]*entities.Commission{}, nil
	}

	commissions, err := s.commissionRepo.GetForSellers(ctx, lotteryID, sellerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load commissions: %w", err)
	}
	for _, id := range sellerIDs {
		if commissions[id] == nil {
			return nil, errs.NotFound("commission_not_parametrized",
				fmt.Sprintf("no commission agreement for seller %d on lottery %d", id, lotteryID))
		}
	}
	return commissions, nil
}

// buildLines converts the per-seller accumulators into statement lines,
// ordered by seller ID for deterministic output.
func buildLines(accumulators map[int64]*sellerAccumulator) []*entities.StatementLine {
	lines := make([]*entities.StatementLine, 0, len(accumulators))
	for _, acc := range accumulators {
		lines = append(lines, &entities.StatementLine{
			SellerID:         acc.sellerID,
			QuantitySold:     acc.quantitySold,
			CommissionAmount: acc.commission,
			PrizeToBePaid:    acc.prizeToBePaid,
		})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].SellerID < lines[j].SellerID })
	return lines
}
