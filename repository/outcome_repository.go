package repository

import (
	"context"
	"fmt"

	"lotobank/domain/entities"

	"github.com/jackc/pgx/v5"
)

// OutcomeRepository implements data access for declared winning numbers. The
// storage is variant shaped: common draws use winning_numbers rows, reventado
// draws one reventado_outcomes row, monazo and parley draws one
// winning_triples row.
type OutcomeRepository struct {
	q Queryable
}

// NewOutcomeRepositoryWithTx creates a new outcome repository with a transaction
func NewOutcomeRepositoryWithTx(tx Queryable) *OutcomeRepository {
	return &OutcomeRepository{q: tx}
}

// GetForDraw loads the declared outcome for the draw, shaped by its variant.
// The returned outcome is never nil; absence of a declaration leaves the
// variant field empty.
func (r *OutcomeRepository) GetForDraw(ctx context.Context, draw *entities.Draw) (*entities.DrawOutcome, error) {
	outcome := &entities.DrawOutcome{DrawID: draw.ID}

	switch draw.Variant {
	case entities.VariantCommon:
		if err := r.loadWinningNumbers(ctx, outcome); err != nil {
			return nil, err
		}
	case entities.VariantReventado:
		if err := r.loadReventadoResult(ctx, outcome); err != nil {
			return nil, err
		}
	case entities.VariantMonazo, entities.VariantParley:
		if err := r.loadWinningTriple(ctx, outcome); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown draw variant %q", draw.Variant)
	}

	return outcome, nil
}

func (r *OutcomeRepository) loadWinningNumbers(ctx context.Context, outcome *entities.DrawOutcome) error {
	query := `
		SELECT id, draw_id, number, multiplier
		FROM winning_numbers
		WHERE draw_id = $1
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query, outcome.DrawID)
	if err != nil {
		return fmt.Errorf("failed to get winning numbers for draw %d: %w", outcome.DrawID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var wn entities.WinningNumber
		if err := rows.Scan(&wn.ID, &wn.DrawID, &wn.Number, &wn.Multiplier); err != nil {
			return fmt.Errorf("failed to scan winning number: %w", err)
		}
		outcome.Numbers = append(outcome.Numbers, &wn)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate winning numbers: %w", err)
	}

	return nil
}

func (r *OutcomeRepository) loadReventadoResult(ctx context.Context, outcome *entities.DrawOutcome) error {
	query := `
		SELECT draw_id, number, ball_type_id
		FROM reventado_outcomes
		WHERE draw_id = $1
	`

	var res entities.ReventadoResult
	err := r.q.QueryRow(ctx, query, outcome.DrawID).Scan(&res.DrawID, &res.Number, &res.BallTypeID)

	if err == pgx.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get reventado outcome for draw %d: %w", outcome.DrawID, err)
	}

	outcome.Reventado = &res
	return nil
}

func (r *OutcomeRepository) loadWinningTriple(ctx context.Context, outcome *entities.DrawOutcome) error {
	query := `
		SELECT draw_id, first_number, second_number, third_number
		FROM winning_triples
		WHERE draw_id = $1
	`

	var triple entities.WinningTriple
	err := r.q.QueryRow(ctx, query, outcome.DrawID).Scan(
		&triple.DrawID,
		&triple.First,
		&triple.Second,
		&triple.Third,
	)

	if err == pgx.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get winning triple for draw %d: %w", outcome.DrawID, err)
	}

	outcome.Triple = &triple
	return nil
}

// Replace removes any previous declaration for the draw and records the given
// outcome.
func (r *OutcomeRepository) Replace(ctx context.Context, variant entities.Variant, outcome *entities.DrawOutcome) error {
	switch variant {
	case entities.VariantCommon:
		if _, err := r.q.Exec(ctx, `DELETE FROM winning_numbers WHERE draw_id = $1`, outcome.DrawID); err != nil {
			return fmt.Errorf("failed to clear winning numbers for draw %d: %w", outcome.DrawID, err)
		}
		for _, wn := range outcome.Numbers {
			err := r.q.QueryRow(ctx, `
				INSERT INTO winning_numbers (draw_id, number, multiplier)
				VALUES ($1, $2, $3)
				RETURNING id
			`, outcome.DrawID, wn.Number, wn.Multiplier).Scan(&wn.ID)
			if err != nil {
				return fmt.Errorf("failed to insert winning number for draw %d: %w", outcome.DrawID, err)
			}
			wn.DrawID = outcome.DrawID
		}
		return nil

	case entities.VariantReventado:
		_, err := r.q.Exec(ctx, `
			INSERT INTO reventado_outcomes (draw_id, number, ball_type_id)
			VALUES ($1, $2, $3)
			ON CONFLICT (draw_id) DO UPDATE
			SET number = EXCLUDED.number,
			    ball_type_id = EXCLUDED.ball_type_id
		`, outcome.DrawID, outcome.Reventado.Number, outcome.Reventado.BallTypeID)
		if err != nil {
			return fmt.Errorf("failed to upsert reventado outcome for draw %d: %w", outcome.DrawID, err)
		}
		outcome.Reventado.DrawID = outcome.DrawID
		return nil

	case entities.VariantMonazo, entities.VariantParley:
		_, err := r.q.Exec(ctx, `
			INSERT INTO winning_triples (draw_id, first_number, second_number, third_number)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (draw_id) DO UPDATE
			SET first_number = EXCLUDED.first_number,
			    second_number = EXCLUDED.second_number,
			    third_number = EXCLUDED.third_number
		`, outcome.DrawID, outcome.Triple.First, outcome.Triple.Second, outcome.Triple.Third)
		if err != nil {
			return fmt.Errorf("failed to upsert winning triple for draw %d: %w", outcome.DrawID, err)
		}
		outcome.Triple.DrawID = outcome.DrawID
		return nil
	}

	return fmt.Errorf("unknown draw variant %q", variant)
}
