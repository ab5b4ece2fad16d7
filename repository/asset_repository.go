package repository

import (
	"context"
	"fmt"

	"coinhouse/domain/entities"

	"github.com/jackc/pgx/v5"
)

// AssetRepository implements per-asset ledger state access
type AssetRepository struct {
	q Queryable
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(q Queryable) *AssetRepository {
	return &AssetRepository{q: q}
}

func (r *AssetRepository) Get(ctx context.Context, asset entities.Asset) (*entities.AssetState, error) {
	query := `
		SELECT asset, supported, retained, stake_carry
		FROM assets
		WHERE asset = $1
	`

	var state entities.AssetState
	err := r.q.QueryRow(ctx, query, asset).Scan(
		&state.Asset,
		&state.Supported,
		&state.Retained,
		&state.StakeCarry,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get asset %s: %w", asset, err)
	}

	return &state, nil
}

func (r *AssetRepository) GetOrCreate(ctx context.Context, asset entities.Asset, supported bool) (*entities.AssetState, error) {
	query := `
		INSERT INTO assets (asset, supported)
		VALUES ($1, $2)
		ON CONFLICT (asset) DO UPDATE SET asset = EXCLUDED.asset
		RETURNING asset, supported, retained, stake_carry
	`

	var state entities.AssetState
	err := r.q.QueryRow(ctx, query, asset, supported).Scan(
		&state.Asset,
		&state.Supported,
		&state.Retained,
		&state.StakeCarry,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create asset %s: %w", asset, err)
	}

	return &state, nil
}

func (r *AssetRepository) SetSupported(ctx context.Context, asset entities.Asset, supported bool) error {
	query := `
		INSERT INTO assets (asset, supported)
		VALUES ($1, $2)
		ON CONFLICT (asset) DO UPDATE SET supported = EXCLUDED.supported
	`

	if _, err := r.q.Exec(ctx, query, asset, supported); err != nil {
		return fmt.Errorf("failed to set supported for asset %s: %w", asset, err)
	}
	return nil
}

func (r *AssetRepository) AddRetained(ctx context.Context, asset entities.Asset, delta int64) error {
	query := `
		UPDATE assets
		SET retained = retained + $2
		WHERE asset = $1
		  AND retained + $2 >= 0
	`

	result, err := r.q.Exec(ctx, query, asset, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust retained for asset %s: %w", asset, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("retained balance for asset %s cannot absorb %d", asset, delta)
	}
	return nil
}

func (r *AssetRepository) SetStakeCarry(ctx context.Context, asset entities.Asset, amount int64) error {
	query := `
		UPDATE assets
		SET stake_carry = $2
		WHERE asset = $1
	`

	result, err := r.q.Exec(ctx, query, asset, amount)
	if err != nil {
		return fmt.Errorf("failed to set stake carry for asset %s: %w", asset, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("asset %s not found", asset)
	}
	return nil
}
