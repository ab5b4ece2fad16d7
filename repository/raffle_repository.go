package repository

import (
	"context"
	"fmt"

	"coinhouse/domain/entities"

	"github.com/jackc/pgx/v5"
)

// RaffleRepository implements raffle state access
type RaffleRepository struct {
	q Queryable
}

// NewRaffleRepository creates a new raffle repository
func NewRaffleRepository(q Queryable) *RaffleRepository {
	return &RaffleRepository{q: q}
}

func (r *RaffleRepository) GetState(ctx context.Context, asset entities.Asset) (*entities.RaffleState, error) {
	query := `
		INSERT INTO raffle_states (asset)
		VALUES ($1)
		ON CONFLICT (asset) DO UPDATE SET asset = EXCLUDED.asset
		RETURNING asset, jackpot
	`

	var state entities.RaffleState
	err := r.q.QueryRow(ctx, query, asset).Scan(&state.Asset, &state.Jackpot)
	if err != nil {
		return nil, fmt.Errorf("failed to get raffle state for asset %s: %w", asset, err)
	}

	return &state, nil
}

func (r *RaffleRepository) AddJackpot(ctx context.Context, asset entities.Asset, amount int64) error {
	query := `
		INSERT INTO raffle_states (asset, jackpot)
		VALUES ($1, $2)
		ON CONFLICT (asset)
		DO UPDATE SET jackpot = raffle_states.jackpot + EXCLUDED.jackpot
	`

	if _, err := r.q.Exec(ctx, query, asset, amount); err != nil {
		return fmt.Errorf("failed to grow jackpot for asset %s: %w", asset, err)
	}
	return nil
}

func (r *RaffleRepository) AddParticipant(ctx context.Context, asset entities.Asset, account entities.Account) error {
	query := `
		INSERT INTO raffle_participants (asset, account)
		VALUES ($1, $2)
	`

	if _, err := r.q.Exec(ctx, query, asset, account); err != nil {
		return fmt.Errorf("failed to enter %s into raffle for asset %s: %w", account, asset, err)
	}
	return nil
}

func (r *RaffleRepository) ListParticipants(ctx context.Context, asset entities.Asset) ([]entities.Account, error) {
	query := `
		SELECT account
		FROM raffle_participants
		WHERE asset = $1
		ORDER BY id ASC
	`

	rows, err := r.q.Query(ctx, query, asset)
	if err != nil {
		return nil, fmt.Errorf("failed to list raffle participants for asset %s: %w", asset, err)
	}
	defer rows.Close()

	var participants []entities.Account
	for rows.Next() {
		var account entities.Account
		if err := rows.Scan(&account); err != nil {
			return nil, fmt.Errorf("failed to scan raffle participant: %w", err)
		}
		participants = append(participants, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate raffle participants: %w", err)
	}

	return participants, nil
}

func (r *RaffleRepository) CountParticipants(ctx context.Context, asset entities.Asset) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM raffle_participants
		WHERE asset = $1
	`

	var count int64
	if err := r.q.QueryRow(ctx, query, asset).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count raffle participants for asset %s: %w", asset, err)
	}
	return count, nil
}

func (r *RaffleRepository) ClearRound(ctx context.Context, asset entities.Asset) error {
	if _, err := r.q.Exec(ctx, `
		UPDATE raffle_states SET jackpot = 0 WHERE asset = $1
	`, asset); err != nil {
		return fmt.Errorf("failed to reset jackpot for asset %s: %w", asset, err)
	}

	if _, err := r.q.Exec(ctx, `
		DELETE FROM raffle_participants WHERE asset = $1
	`, asset); err != nil {
		return fmt.Errorf("failed to clear raffle participants for asset %s: %w", asset, err)
	}

	return nil
}

func (r *RaffleRepository) AppendResult(ctx context.Context, result *entities.RaffleResult) error {
	query := `
		INSERT INTO raffle_results (asset, idx, winner, prize)
		VALUES ($1,
		        (SELECT COALESCE(MAX(idx) + 1, 0) FROM raffle_results WHERE asset = $1),
		        $2, $3)
		RETURNING idx, created_at
	`

	err := r.q.QueryRow(ctx, query,
		result.Asset,
		result.Winner,
		result.Prize,
	).Scan(&result.Idx, &result.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record raffle result for asset %s: %w", result.Asset, err)
	}

	return nil
}

func (r *RaffleRepository) CountResults(ctx context.Context, asset entities.Asset) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM raffle_results
		WHERE asset = $1
	`

	var count int64
	if err := r.q.QueryRow(ctx, query, asset).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count raffle results for asset %s: %w", asset, err)
	}
	return count, nil
}

func (r *RaffleRepository) GetResult(ctx context.Context, asset entities.Asset, idx int64) (*entities.RaffleResult, error) {
	query := `
		SELECT asset, idx, winner, prize, created_at
		FROM raffle_results
		WHERE asset = $1 AND idx = $2
	`

	var result entities.RaffleResult
	err := r.q.QueryRow(ctx, query, asset, idx).Scan(
		&result.Asset,
		&result.Idx,
		&result.Winner,
		&result.Prize,
		&result.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get raffle result %d for asset %s: %w", idx, asset, err)
	}

	return &result, nil
}

func (r *RaffleRepository) AddAccountPending(ctx context.Context, asset entities.Asset, account entities.Account, amount int64) error {
	query := `
		INSERT INTO raffle_accounts (asset, account, pending)
		VALUES ($1, $2, $3)
		ON CONFLICT (asset, account)
		DO UPDATE SET pending = raffle_accounts.pending + EXCLUDED.pending
	`

	if _, err := r.q.Exec(ctx, query, asset, account, amount); err != nil {
		return fmt.Errorf("failed to credit jackpot to %s for asset %s: %w", account, asset, err)
	}
	return nil
}

func (r *RaffleRepository) WithdrawAccount(ctx context.Context, asset entities.Asset, account entities.Account) (int64, error) {
	// RETURNING sees the updated row, so the settled amount has to be
	// captured before the update zeroes it.
	query := `
		WITH prior AS (
			SELECT pending
			FROM raffle_accounts
			WHERE asset = $1 AND account = $2 AND pending > 0
			FOR UPDATE
		)
		UPDATE raffle_accounts r
		SET pending = 0,
		    withdrawn_total = r.withdrawn_total + prior.pending
		FROM prior
		WHERE r.asset = $1 AND r.account = $2
		RETURNING prior.pending
	`

	var settled int64
	err := r.q.QueryRow(ctx, query, asset, account).Scan(&settled)

	if err == pgx.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to settle jackpot of %s for asset %s: %w", account, asset, err)
	}

	return settled, nil
}

func (r *RaffleRepository) GetAccount(ctx context.Context, asset entities.Asset, account entities.Account) (*entities.RaffleAccount, error) {
	query := `
		SELECT asset, account, pending, withdrawn_total
		FROM raffle_accounts
		WHERE asset = $1 AND account = $2
	`

	var acc entities.RaffleAccount
	err := r.q.QueryRow(ctx, query, asset, account).Scan(
		&acc.Asset,
		&acc.Account,
		&acc.Pending,
		&acc.WithdrawnTotal,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get raffle account %s for asset %s: %w", account, asset, err)
	}

	return &acc, nil
}
