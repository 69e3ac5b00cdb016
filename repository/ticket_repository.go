package repository

import (
	"context"
	"fmt"

	"lotobank/domain/entities"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TicketRepository implements ticket data access with bank scope
type TicketRepository struct {
	q      Queryable
	bankID int64
}

// NewTicketRepositoryScoped creates a new ticket repository with bank scope
func NewTicketRepositoryScoped(tx Queryable, bankID int64) *TicketRepository {
	return &TicketRepository{
		q:      tx,
		bankID: bankID,
	}
}

// Create persists a ticket together with its bet entries
func (r *TicketRepository) Create(ctx context.Context, ticket *entities.Ticket) error {
	query := `
		INSERT INTO tickets (draw_id, bank_id, seller_id, buyer_name, total_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, prize, is_cancelled, is_computed, purchased_at
	`

	err := r.q.QueryRow(ctx, query,
		ticket.DrawID,
		r.bankID,
		ticket.SellerID,
		ticket.BuyerName,
		ticket.TotalPrice,
	).Scan(
		&ticket.ID,
		&ticket.Prize,
		&ticket.IsCancelled,
		&ticket.IsComputed,
		&ticket.PurchasedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	ticket.BankID = r.bankID

	for _, b := range ticket.NumberBets {
		err := r.q.QueryRow(ctx, `
			INSERT INTO ticket_number_bets (ticket_id, number, amount, bonus_amount)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, ticket.ID, b.Number, b.Amount, b.BonusAmount).Scan(&b.ID)
		if err != nil {
			return fmt.Errorf("failed to create number bet for ticket %d: %w", ticket.ID, err)
		}
		b.TicketID = ticket.ID
	}

	for _, b := range ticket.MonazoBets {
		err := r.q.QueryRow(ctx, `
			INSERT INTO ticket_monazo_bets (ticket_id, first_digit, second_digit, third_digit, monazo_type, amount)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, ticket.ID, b.First, b.Second, b.Third, b.SubType, b.Amount).Scan(&b.ID)
		if err != nil {
			return fmt.Errorf("failed to create monazo bet for ticket %d: %w", ticket.ID, err)
		}
		b.TicketID = ticket.ID
	}

	for _, b := range ticket.ParleyBets {
		err := r.q.QueryRow(ctx, `
			INSERT INTO ticket_parley_bets (ticket_id, first_number, second_number, amount)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, ticket.ID, b.First, b.Second, b.Amount).Scan(&b.ID)
		if err != nil {
			return fmt.Errorf("failed to create parley bet for ticket %d: %w", ticket.ID, err)
		}
		b.TicketID = ticket.ID
	}

	return nil
}

// GetByID retrieves a ticket by ID with its bet entries loaded
func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*entities.Ticket, error) {
	query := `
		SELECT id, draw_id, bank_id, seller_id, buyer_name, total_price, prize,
		       is_cancelled, is_computed, purchased_at
		FROM tickets
		WHERE id = $1 AND bank_id = $2
	`

	var ticket entities.Ticket
	err := r.q.QueryRow(ctx, query, id, r.bankID).Scan(
		&ticket.ID,
		&ticket.DrawID,
		&ticket.BankID,
		&ticket.SellerID,
		&ticket.BuyerName,
		&ticket.TotalPrice,
		&ticket.Prize,
		&ticket.IsCancelled,
		&ticket.IsComputed,
		&ticket.PurchasedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket by ID %d: %w", id, err)
	}

	if err := r.loadBets(ctx, []*entities.Ticket{&ticket}); err != nil {
		return nil, err
	}

	return &ticket, nil
}

// GetOutstandingByDraw returns all non-cancelled, non-computed tickets of the
// draw with their bet entries loaded
func (r *TicketRepository) GetOutstandingByDraw(ctx context.Context, drawID int64) ([]*entities.Ticket, error) {
	query := `
		SELECT id, draw_id, bank_id, seller_id, buyer_name, total_price, prize,
		       is_cancelled, is_computed, purchased_at
		FROM tickets
		WHERE draw_id = $1
		  AND bank_id = $2
		  AND NOT is_cancelled
		  AND NOT is_computed
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query, drawID, r.bankID)
	if err != nil {
		return nil, fmt.Errorf("failed to get outstanding tickets for draw %d: %w", drawID, err)
	}
	defer rows.Close()

	var tickets []*entities.Ticket
	for rows.Next() {
		var ticket entities.Ticket
		err := rows.Scan(
			&ticket.ID,
			&ticket.DrawID,
			&ticket.BankID,
			&ticket.SellerID,
			&ticket.BuyerName,
			&ticket.TotalPrice,
			&ticket.Prize,
			&ticket.IsCancelled,
			&ticket.IsComputed,
			&ticket.PurchasedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, &ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tickets: %w", err)
	}

	if err := r.loadBets(ctx, tickets); err != nil {
		return nil, err
	}

	return tickets, nil
}

// loadBets populates the bet collections of the given tickets in three
// batched queries.
func (r *TicketRepository) loadBets(ctx context.Context, tickets []*entities.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}

	byID := make(map[int64]*entities.Ticket, len(tickets))
	ids := make([]int64, 0, len(tickets))
	for _, t := range tickets {
		byID[t.ID] = t
		ids = append(ids, t.ID)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, ticket_id, number, amount, bonus_amount
		FROM ticket_number_bets
		WHERE ticket_id = ANY($1)
		ORDER BY id
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to get number bets: %w", err)
	}
	for rows.Next() {
		var b entities.NumberBet
		if err := rows.Scan(&b.ID, &b.TicketID, &b.Number, &b.Amount, &b.BonusAmount); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan number bet: %w", err)
		}
		byID[b.TicketID].NumberBets = append(byID[b.TicketID].NumberBets, &b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate number bets: %w", err)
	}

	rows, err = r.q.Query(ctx, `
		SELECT id, ticket_id, first_digit, second_digit, third_digit, monazo_type, amount
		FROM ticket_monazo_bets
		WHERE ticket_id = ANY($1)
		ORDER BY id
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to get monazo bets: %w", err)
	}
	for rows.Next() {
		var b entities.MonazoBet
		if err := rows.Scan(&b.ID, &b.TicketID, &b.First, &b.Second, &b.Third, &b.SubType, &b.Amount); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan monazo bet: %w", err)
		}
		byID[b.TicketID].MonazoBets = append(byID[b.TicketID].MonazoBets, &b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate monazo bets: %w", err)
	}

	rows, err = r.q.Query(ctx, `
		SELECT id, ticket_id, first_number, second_number, amount
		FROM ticket_parley_bets
		WHERE ticket_id = ANY($1)
		ORDER BY id
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to get parley bets: %w", err)
	}
	for rows.Next() {
		var b entities.ParleyBet
		if err := rows.Scan(&b.ID, &b.TicketID, &b.First, &b.Second, &b.Amount); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan parley bet: %w", err)
		}
		byID[b.TicketID].ParleyBets = append(byID[b.TicketID].ParleyBets, &b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate parley bets: %w", err)
	}

	return nil
}

// MarkComputed sets is_computed on the given tickets
func (r *TicketRepository) MarkComputed(ctx context.Context, ticketIDs []int64) error {
	if len(ticketIDs) == 0 {
		return nil
	}

	query := `
		UPDATE tickets
		SET is_computed = TRUE
		WHERE id = ANY($1) AND bank_id = $2
	`

	result, err := r.q.Exec(ctx, query, ticketIDs, r.bankID)
	if err != nil {
		return fmt.Errorf("failed to mark tickets computed: %w", err)
	}

	if int(result.RowsAffected()) != len(ticketIDs) {
		return fmt.Errorf("expected to mark %d tickets computed, marked %d", len(ticketIDs), result.RowsAffected())
	}

	return nil
}

// AddPrize increments the ticket's running prize total
func (r *TicketRepository) AddPrize(ctx context.Context, ticketID int64, amount decimal.Decimal) error {
	query := `
		UPDATE tickets
		SET prize = prize + $2
		WHERE id = $1 AND bank_id = $3
	`

	result, err := r.q.Exec(ctx, query, ticketID, amount, r.bankID)
	if err != nil {
		return fmt.Errorf("failed to add prize to ticket %d: %w", ticketID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("ticket with ID %d not found", ticketID)
	}

	return nil
}

// Cancel transitions is_cancelled from false to true. The returned bool
// reports whether this call performed the transition.
func (r *TicketRepository) Cancel(ctx context.Context, ticketID int64) (bool, error) {
	query := `
		UPDATE tickets
		SET is_cancelled = TRUE
		WHERE id = $1
		  AND bank_id = $2
		  AND is_cancelled = FALSE
		  AND is_computed = FALSE
	`

	result, err := r.q.Exec(ctx, query, ticketID, r.bankID)
	if err != nil {
		return false, fmt.Errorf("failed to cancel ticket %d: %w", ticketID, err)
	}

	return result.RowsAffected() > 0, nil
}
