package repository

import (
	"context"
	"fmt"

	"coinhouse/domain/entities"

	"github.com/jackc/pgx/v5"
)

// AccountRepository implements per-account balance access
type AccountRepository struct {
	q Queryable
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(q Queryable) *AccountRepository {
	return &AccountRepository{q: q}
}

func (r *AccountRepository) GetBalance(ctx context.Context, asset entities.Asset, account entities.Account) (int64, error) {
	query := `
		SELECT balance
		FROM account_balances
		WHERE asset = $1 AND account = $2
	`

	var balance int64
	err := r.q.QueryRow(ctx, query, asset, account).Scan(&balance)

	if err == pgx.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get balance of %s for asset %s: %w", account, asset, err)
	}

	return balance, nil
}

func (r *AccountRepository) AddBalance(ctx context.Context, asset entities.Asset, account entities.Account, delta int64) error {
	if delta >= 0 {
		query := `
			INSERT INTO account_balances (asset, account, balance)
			VALUES ($1, $2, $3)
			ON CONFLICT (asset, account)
			DO UPDATE SET balance = account_balances.balance + EXCLUDED.balance
		`
		if _, err := r.q.Exec(ctx, query, asset, account, delta); err != nil {
			return fmt.Errorf("failed to credit %s for asset %s: %w", account, asset, err)
		}
		return nil
	}

	query := `
		UPDATE account_balances
		SET balance = balance + $3
		WHERE asset = $1
		  AND account = $2
		  AND balance + $3 >= 0
	`

	result, err := r.q.Exec(ctx, query, asset, account, delta)
	if err != nil {
		return fmt.Errorf("failed to debit %s for asset %s: %w", account, asset, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("balance of %s for asset %s cannot absorb %d", account, asset, delta)
	}
	return nil
}
