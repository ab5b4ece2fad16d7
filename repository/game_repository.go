package repository

import (
	"context"
	"fmt"

	"coinhouse/domain/entities"

	"github.com/jackc/pgx/v5"
)

// GameRepository implements game record access
type GameRepository struct {
	q Queryable
}

// NewGameRepository creates a new game repository
func NewGameRepository(q Queryable) *GameRepository {
	return &GameRepository{q: q}
}

const gameColumns = `asset, idx, running, commitment, creator, stake, start_time,
	       heads, tails, timeout, winning_side, creator_won, winner_prize,
	       loser_refund, created_at`

func scanGame(row pgx.Row) (*entities.Game, error) {
	var game entities.Game
	err := row.Scan(
		&game.Asset,
		&game.Idx,
		&game.Running,
		&game.Commitment,
		&game.Creator,
		&game.Stake,
		&game.StartTime,
		&game.Heads,
		&game.Tails,
		&game.Timeout,
		&game.WinningSide,
		&game.CreatorWon,
		&game.WinnerPrize,
		&game.LoserRefund,
		&game.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *GameRepository) GetCurrent(ctx context.Context, asset entities.Asset) (*entities.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE asset = $1
		ORDER BY idx DESC
		LIMIT 1
	`

	game, err := scanGame(r.q.QueryRow(ctx, query, asset))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current game for asset %s: %w", asset, err)
	}

	return game, nil
}

func (r *GameRepository) GetByIdx(ctx context.Context, asset entities.Asset, idx int64) (*entities.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE asset = $1 AND idx = $2
	`

	game, err := scanGame(r.q.QueryRow(ctx, query, asset, idx))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game %d for asset %s: %w", idx, asset, err)
	}

	return game, nil
}

func (r *GameRepository) Count(ctx context.Context, asset entities.Asset) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM games
		WHERE asset = $1
	`

	var count int64
	if err := r.q.QueryRow(ctx, query, asset).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count games for asset %s: %w", asset, err)
	}
	return count, nil
}

func (r *GameRepository) RunningAssets(ctx context.Context) ([]entities.Asset, error) {
	query := `
		SELECT asset
		FROM games
		WHERE running
		ORDER BY asset
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list running assets: %w", err)
	}
	defer rows.Close()

	var assets []entities.Asset
	for rows.Next() {
		var asset entities.Asset
		if err := rows.Scan(&asset); err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, asset)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assets: %w", err)
	}

	return assets, nil
}

func (r *GameRepository) Create(ctx context.Context, game *entities.Game) error {
	query := `
		INSERT INTO games (asset, idx, running, commitment, creator, stake, start_time)
		VALUES ($1,
		        (SELECT COALESCE(MAX(idx) + 1, 0) FROM games WHERE asset = $1),
		        $2, $3, $4, $5, $6)
		RETURNING idx, created_at
	`

	err := r.q.QueryRow(ctx, query,
		game.Asset,
		game.Running,
		game.Commitment,
		game.Creator,
		game.Stake,
		game.StartTime,
	).Scan(&game.Idx, &game.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create game for asset %s: %w", game.Asset, err)
	}

	return nil
}

func (r *GameRepository) Update(ctx context.Context, game *entities.Game) error {
	query := `
		UPDATE games
		SET running = $3,
		    heads = $4,
		    tails = $5,
		    timeout = $6,
		    winning_side = $7,
		    creator_won = $8,
		    winner_prize = $9,
		    loser_refund = $10
		WHERE asset = $1 AND idx = $2
	`

	result, err := r.q.Exec(ctx, query,
		game.Asset,
		game.Idx,
		game.Running,
		game.Heads,
		game.Tails,
		game.Timeout,
		game.WinningSide,
		game.CreatorWon,
		game.WinnerPrize,
		game.LoserRefund,
	)
	if err != nil {
		return fmt.Errorf("failed to update game %d for asset %s: %w", game.Idx, game.Asset, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("game %d for asset %s not found", game.Idx, game.Asset)
	}

	return nil
}
