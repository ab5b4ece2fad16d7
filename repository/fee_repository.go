package repository

import (
	"context"
	"fmt"

	"coinhouse/domain/entities"

	"github.com/jackc/pgx/v5"
)

// FeeRepository implements fee accumulator access
type FeeRepository struct {
	q Queryable
}

// NewFeeRepository creates a new fee repository
func NewFeeRepository(q Queryable) *FeeRepository {
	return &FeeRepository{q: q}
}

func (r *FeeRepository) AddPending(ctx context.Context, asset entities.Asset, role entities.FeeRole, account entities.Account, amount int64) error {
	query := `
		INSERT INTO fee_accounts (asset, role, account, pending)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (asset, role, account)
		DO UPDATE SET pending = fee_accounts.pending + EXCLUDED.pending
	`

	if _, err := r.q.Exec(ctx, query, asset, role, account, amount); err != nil {
		return fmt.Errorf("failed to accrue %s fee for %s: %w", role, account, err)
	}
	return nil
}

func (r *FeeRepository) Withdraw(ctx context.Context, asset entities.Asset, role entities.FeeRole, account entities.Account) (int64, error) {
	// RETURNING sees the updated row, so the settled amount has to be
	// captured before the update zeroes it.
	query := `
		WITH prior AS (
			SELECT pending
			FROM fee_accounts
			WHERE asset = $1 AND role = $2 AND account = $3 AND pending > 0
			FOR UPDATE
		)
		UPDATE fee_accounts f
		SET pending = 0,
		    withdrawn_total = f.withdrawn_total + prior.pending
		FROM prior
		WHERE f.asset = $1 AND f.role = $2 AND f.account = $3
		RETURNING prior.pending
	`

	var settled int64
	err := r.q.QueryRow(ctx, query, asset, role, account).Scan(&settled)

	if err == pgx.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to settle %s fee for %s: %w", role, account, err)
	}

	return settled, nil
}

func (r *FeeRepository) Get(ctx context.Context, asset entities.Asset, role entities.FeeRole, account entities.Account) (*entities.FeeAccount, error) {
	query := `
		SELECT asset, role, account, pending, withdrawn_total
		FROM fee_accounts
		WHERE asset = $1 AND role = $2 AND account = $3
	`

	var acc entities.FeeAccount
	err := r.q.QueryRow(ctx, query, asset, role, account).Scan(
		&acc.Asset,
		&acc.Role,
		&acc.Account,
		&acc.Pending,
		&acc.WithdrawnTotal,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s fee account for %s: %w", role, account, err)
	}

	return &acc, nil
}
