package repository

import (
	"context"
	"fmt"

	"coinhouse/domain/entities"

	"github.com/jackc/pgx/v5"
)

// GameParticipantRepository implements participation and prize-checklist access
type GameParticipantRepository struct {
	q Queryable
}

// NewGameParticipantRepository creates a new game participant repository
func NewGameParticipantRepository(q Queryable) *GameParticipantRepository {
	return &GameParticipantRepository{q: q}
}

func (r *GameParticipantRepository) Create(ctx context.Context, p *entities.GameParticipant) error {
	query := `
		INSERT INTO game_participants (asset, game_idx, account, side, is_creator, referral)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING joined_at
	`

	err := r.q.QueryRow(ctx, query,
		p.Asset,
		p.GameIdx,
		p.Account,
		p.Side,
		p.Creator,
		p.Referral,
	).Scan(&p.JoinedAt)
	if err != nil {
		return fmt.Errorf("failed to record participation of %s in game %d: %w", p.Account, p.GameIdx, err)
	}

	return nil
}

func (r *GameParticipantRepository) Get(ctx context.Context, asset entities.Asset, gameIdx int64, account entities.Account) (*entities.GameParticipant, error) {
	query := `
		SELECT asset, game_idx, account, side, is_creator, referral, checked, joined_at
		FROM game_participants
		WHERE asset = $1 AND game_idx = $2 AND account = $3
	`

	var p entities.GameParticipant
	err := r.q.QueryRow(ctx, query, asset, gameIdx, account).Scan(
		&p.Asset,
		&p.GameIdx,
		&p.Account,
		&p.Side,
		&p.Creator,
		&p.Referral,
		&p.Checked,
		&p.JoinedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participation of %s in game %d: %w", account, gameIdx, err)
	}

	return &p, nil
}

func (r *GameParticipantRepository) GetUnchecked(ctx context.Context, asset entities.Asset, account entities.Account, limit int64) ([]*entities.GameParticipant, error) {
	query := `
		SELECT asset, game_idx, account, side, is_creator, referral, checked, joined_at
		FROM game_participants
		WHERE asset = $1 AND account = $2 AND NOT checked
		ORDER BY game_idx ASC
	`
	args := []any{asset, account}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list unchecked participations of %s: %w", account, err)
	}
	defer rows.Close()

	var participations []*entities.GameParticipant
	for rows.Next() {
		var p entities.GameParticipant
		err := rows.Scan(
			&p.Asset,
			&p.GameIdx,
			&p.Account,
			&p.Side,
			&p.Creator,
			&p.Referral,
			&p.Checked,
			&p.JoinedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participation: %w", err)
		}
		participations = append(participations, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participations: %w", err)
	}

	return participations, nil
}

func (r *GameParticipantRepository) MarkChecked(ctx context.Context, asset entities.Asset, gameIdx int64, account entities.Account) error {
	query := `
		UPDATE game_participants
		SET checked = TRUE
		WHERE asset = $1 AND game_idx = $2 AND account = $3 AND NOT checked
	`

	result, err := r.q.Exec(ctx, query, asset, gameIdx, account)
	if err != nil {
		return fmt.Errorf("failed to consume participation of %s in game %d: %w", account, gameIdx, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("participation of %s in game %d already consumed", account, gameIdx)
	}

	return nil
}
