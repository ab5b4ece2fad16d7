package interfaces

import (
	"context"

	"coinhouse/domain/entities"
)

// AssetRepository defines access to per-asset ledger state.
type AssetRepository interface {
	// Get retrieves the asset state, nil if the asset is unknown.
	Get(ctx context.Context, asset entities.Asset) (*entities.AssetState, error)

	// GetOrCreate returns the asset state, creating an empty row if missing.
	GetOrCreate(ctx context.Context, asset entities.Asset, supported bool) (*entities.AssetState, error)

	// SetSupported toggles the game allow-list flag.
	SetSupported(ctx context.Context, asset entities.Asset, supported bool) error

	// AddRetained atomically adjusts the engine-held balance; fails if the
	// result would go negative.
	AddRetained(ctx context.Context, asset entities.Asset, delta int64) error

	// SetStakeCarry overwrites the carried-forward stake amount.
	SetStakeCarry(ctx context.Context, asset entities.Asset, amount int64) error
}

// AccountRepository defines access to per-account asset balances.
type AccountRepository interface {
	// GetBalance returns the account's balance for an asset (0 if untracked).
	GetBalance(ctx context.Context, asset entities.Asset, account entities.Account) (int64, error)

	// AddBalance atomically adjusts a balance; fails if the result would go
	// negative.
	AddBalance(ctx context.Context, asset entities.Asset, account entities.Account, delta int64) error
}

// GameRepository defines access to game records.
type GameRepository interface {
	// GetCurrent returns the newest game for the asset, nil if none exist.
	GetCurrent(ctx context.Context, asset entities.Asset) (*entities.Game, error)

	// GetByIdx returns a game by index, nil if absent.
	GetByIdx(ctx context.Context, asset entities.Asset, idx int64) (*entities.Game, error)

	// Count returns the number of games recorded for the asset.
	Count(ctx context.Context, asset entities.Asset) (int64, error)

	// RunningAssets returns every asset that currently has a running game.
	RunningAssets(ctx context.Context) ([]entities.Asset, error)

	// Create appends a new game, assigning the next sequential index.
	Create(ctx context.Context, game *entities.Game) error

	// Update persists mutable game fields (counts, resolution outcome).
	Update(ctx context.Context, game *entities.Game) error
}

// GameParticipantRepository tracks entries and the per-account list of games
// still to be checked for prizes.
type GameParticipantRepository interface {
	// Create records a participation entry.
	Create(ctx context.Context, p *entities.GameParticipant) error

	// Get returns one participation, nil if absent.
	Get(ctx context.Context, asset entities.Asset, gameIdx int64, account entities.Account) (*entities.GameParticipant, error)

	// GetUnchecked returns the account's unconsumed participations in game
	// order, at most limit entries (0 = all).
	GetUnchecked(ctx context.Context, asset entities.Asset, account entities.Account, limit int64) ([]*entities.GameParticipant, error)

	// MarkChecked consumes a participation so it is never paid twice.
	MarkChecked(ctx context.Context, asset entities.Asset, gameIdx int64, account entities.Account) error
}

// FeeRepository defines access to fee accumulators.
type FeeRepository interface {
	// AddPending lazily creates the accumulator and increments pending.
	AddPending(ctx context.Context, asset entities.Asset, role entities.FeeRole, account entities.Account, amount int64) error

	// Withdraw zeroes pending and adds it to the withdrawn total, returning
	// the settled amount (0 when nothing was pending).
	Withdraw(ctx context.Context, asset entities.Asset, role entities.FeeRole, account entities.Account) (int64, error)

	// Get returns the accumulator, nil if it was never touched.
	Get(ctx context.Context, asset entities.Asset, role entities.FeeRole, account entities.Account) (*entities.FeeAccount, error)
}

// RaffleRepository defines access to raffle state.
type RaffleRepository interface {
	// GetState returns the jackpot row, creating a zero row if missing.
	GetState(ctx context.Context, asset entities.Asset) (*entities.RaffleState, error)

	// AddJackpot increments the jackpot.
	AddJackpot(ctx context.Context, asset entities.Asset, amount int64) error

	// AddParticipant appends an entry to the participant list.
	AddParticipant(ctx context.Context, asset entities.Asset, account entities.Account) error

	// ListParticipants returns the current participant list in append order.
	ListParticipants(ctx context.Context, asset entities.Asset) ([]entities.Account, error)

	// CountParticipants returns the participant list length.
	CountParticipants(ctx context.Context, asset entities.Asset) (int64, error)

	// ClearRound zeroes the jackpot and deletes all participants.
	ClearRound(ctx context.Context, asset entities.Asset) error

	// AppendResult records a completed draw with the next sequential index.
	AppendResult(ctx context.Context, result *entities.RaffleResult) error

	// CountResults returns the number of completed draws.
	CountResults(ctx context.Context, asset entities.Asset) (int64, error)

	// GetResult returns one draw record, nil if absent.
	GetResult(ctx context.Context, asset entities.Asset, idx int64) (*entities.RaffleResult, error)

	// AddAccountPending credits a winner's unclaimed jackpot.
	AddAccountPending(ctx context.Context, asset entities.Asset, account entities.Account, amount int64) error

	// WithdrawAccount zeroes an account's pending jackpot and adds it to the
	// withdrawn total, returning the settled amount.
	WithdrawAccount(ctx context.Context, asset entities.Asset, account entities.Account) (int64, error)

	// GetAccount returns an account's jackpot accumulator, nil if untouched.
	GetAccount(ctx context.Context, asset entities.Asset, account entities.Account) (*entities.RaffleAccount, error)
}

// StakingRepository defines access to staking positions and income events.
type StakingRepository interface {
	// GetPosition returns a staker's position, nil if they never staked.
	GetPosition(ctx context.Context, account entities.Account) (*entities.StakerPosition, error)

	// UpsertPosition persists a position.
	UpsertPosition(ctx context.Context, position *entities.StakerPosition) error

	// TokensStaked returns the total staked principal.
	TokensStaked(ctx context.Context) (int64, error)

	// AddTokensStaked adjusts the total staked principal.
	AddTokensStaked(ctx context.Context, delta int64) error

	// AppendIncome records an income event with the next sequential index.
	AppendIncome(ctx context.Context, event *entities.IncomeEvent) error

	// IncomeCount returns the number of recorded income events.
	IncomeCount(ctx context.Context) (int64, error)

	// GetIncome returns one income event, nil if absent.
	GetIncome(ctx context.Context, idx int64) (*entities.IncomeEvent, error)

	// ListIncomeFrom returns events with idx >= fromIdx in order, at most
	// limit entries (0 = all).
	ListIncomeFrom(ctx context.Context, fromIdx, limit int64) ([]*entities.IncomeEvent, error)
}
