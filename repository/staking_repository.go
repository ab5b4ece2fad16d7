package repository

import (
	"context"
	"fmt"

	"coinhouse/domain/entities"

	"github.com/jackc/pgx/v5"
)

// StakingRepository implements staking position and income-event access
type StakingRepository struct {
	q Queryable
}

// NewStakingRepository creates a new staking repository
func NewStakingRepository(q Queryable) *StakingRepository {
	return &StakingRepository{q: q}
}

func (r *StakingRepository) GetPosition(ctx context.Context, account entities.Account) (*entities.StakerPosition, error) {
	query := `
		SELECT account, principal, pending_reward, withdrawn_total, income_start_idx
		FROM staker_positions
		WHERE account = $1
	`

	var position entities.StakerPosition
	err := r.q.QueryRow(ctx, query, account).Scan(
		&position.Account,
		&position.Principal,
		&position.PendingReward,
		&position.WithdrawnTotal,
		&position.IncomeStartIdx,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get staking position of %s: %w", account, err)
	}

	return &position, nil
}

func (r *StakingRepository) UpsertPosition(ctx context.Context, position *entities.StakerPosition) error {
	query := `
		INSERT INTO staker_positions (account, principal, pending_reward, withdrawn_total, income_start_idx)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (account)
		DO UPDATE SET principal = EXCLUDED.principal,
		              pending_reward = EXCLUDED.pending_reward,
		              withdrawn_total = EXCLUDED.withdrawn_total,
		              income_start_idx = EXCLUDED.income_start_idx
	`

	_, err := r.q.Exec(ctx, query,
		position.Account,
		position.Principal,
		position.PendingReward,
		position.WithdrawnTotal,
		position.IncomeStartIdx,
	)
	if err != nil {
		return fmt.Errorf("failed to save staking position of %s: %w", position.Account, err)
	}

	return nil
}

func (r *StakingRepository) TokensStaked(ctx context.Context) (int64, error) {
	query := `
		SELECT tokens_staked
		FROM staking_pool
		WHERE onerow
	`

	var total int64
	if err := r.q.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to get total staked tokens: %w", err)
	}
	return total, nil
}

func (r *StakingRepository) AddTokensStaked(ctx context.Context, delta int64) error {
	query := `
		UPDATE staking_pool
		SET tokens_staked = tokens_staked + $1
		WHERE onerow
		  AND tokens_staked + $1 >= 0
	`

	result, err := r.q.Exec(ctx, query, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust total staked tokens: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("total staked tokens cannot absorb %d", delta)
	}
	return nil
}

func (r *StakingRepository) AppendIncome(ctx context.Context, event *entities.IncomeEvent) error {
	query := `
		INSERT INTO income_events (idx, income, tokens_staked)
		VALUES ((SELECT COALESCE(MAX(idx) + 1, 0) FROM income_events), $1, $2)
		RETURNING idx, created_at
	`

	err := r.q.QueryRow(ctx, query, event.Income, event.TokensStaked).Scan(&event.Idx, &event.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record income event: %w", err)
	}

	return nil
}

func (r *StakingRepository) IncomeCount(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM income_events`

	var count int64
	if err := r.q.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count income events: %w", err)
	}
	return count, nil
}

func (r *StakingRepository) GetIncome(ctx context.Context, idx int64) (*entities.IncomeEvent, error) {
	query := `
		SELECT idx, income, tokens_staked, created_at
		FROM income_events
		WHERE idx = $1
	`

	var event entities.IncomeEvent
	err := r.q.QueryRow(ctx, query, idx).Scan(
		&event.Idx,
		&event.Income,
		&event.TokensStaked,
		&event.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get income event %d: %w", idx, err)
	}

	return &event, nil
}

func (r *StakingRepository) ListIncomeFrom(ctx context.Context, fromIdx, limit int64) ([]*entities.IncomeEvent, error) {
	query := `
		SELECT idx, income, tokens_staked, created_at
		FROM income_events
		WHERE idx >= $1
		ORDER BY idx ASC
	`
	args := []any{fromIdx}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list income events from %d: %w", fromIdx, err)
	}
	defer rows.Close()

	var events []*entities.IncomeEvent
	for rows.Next() {
		var event entities.IncomeEvent
		err := rows.Scan(
			&event.Idx,
			&event.Income,
			&event.TokensStaked,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan income event: %w", err)
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate income events: %w", err)
	}

	return events, nil
}
