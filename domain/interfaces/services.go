package interfaces

import (
	"context"

	"coinhouse/domain/entities"
	"coinhouse/domain/events"
)

// EventPublisher publishes domain events. Inside a unit of work the events
// are buffered and only delivered after the transaction commits.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// LedgerService moves value between accounts and the engine's retention.
type LedgerService interface {
	// Mint credits external funds to an account (admin/test entry point).
	Mint(ctx context.Context, asset entities.Asset, to entities.Account, amount int64) error

	// Deposit moves amount from an account into engine retention. Fails with
	// InsufficientBalance when the account cannot cover it. Never partial.
	Deposit(ctx context.Context, asset entities.Asset, from entities.Account, amount int64) error

	// Payout moves amount from engine retention back to an account. Fails
	// with TransferFailed when retention cannot cover it. Never partial.
	Payout(ctx context.Context, asset entities.Asset, to entities.Account, amount int64) error

	// Support marks an asset as accepted for games.
	Support(ctx context.Context, asset entities.Asset) error

	// BalanceOf returns an account's balance held inside the engine.
	BalanceOf(ctx context.Context, asset entities.Asset, account entities.Account) (int64, error)

	// Retained returns the engine-held balance for an asset.
	Retained(ctx context.Context, asset entities.Asset) (int64, error)
}

// FeeService accrues and settles dev/partner/referral fee shares.
type FeeService interface {
	// AddFee splits gross per the protocol constants, credits dev, partner
	// (when configured) and referral (owner when unset), and returns the
	// split so the caller can forward the staking cut and raffle residue.
	AddFee(ctx context.Context, asset entities.Asset, gross int64, referral entities.Account) (entities.FeeSplit, error)

	// WithdrawDevFee settles the owner's pending fee. Fails with NoFee when
	// nothing is pending; the caller must be the owner.
	WithdrawDevFee(ctx context.Context, asset entities.Asset, caller entities.Account) (int64, error)

	// WithdrawPartnerFee settles the partner's pending fee.
	WithdrawPartnerFee(ctx context.Context, asset entities.Asset, caller entities.Account) (int64, error)

	// WithdrawReferralFee settles the caller's referral fee.
	WithdrawReferralFee(ctx context.Context, asset entities.Asset, caller entities.Account) (int64, error)

	// Pending returns the unclaimed fee for a role accumulator.
	Pending(ctx context.Context, asset entities.Asset, role entities.FeeRole, account entities.Account) (int64, error)

	// WithdrawnTotal returns the historical settled fee for a role accumulator.
	WithdrawnTotal(ctx context.Context, asset entities.Asset, role entities.FeeRole, account entities.Account) (int64, error)
}

// RaffleDrawResult describes one completed draw.
type RaffleDrawResult struct {
	Winner       entities.Account
	Prize        int64
	Participants int64
}

// RaffleService accumulates the per-asset jackpot and runs draws.
type RaffleService interface {
	// AddToRaffle grows the jackpot and registers the participant; a zero
	// participant only grows the jackpot (resolution dust).
	AddToRaffle(ctx context.Context, asset entities.Asset, amount int64, participant entities.Account) error

	// RunRaffle draws a winner and atomically drains the round. Returns nil
	// without error when the jackpot is zero or no participants exist.
	RunRaffle(ctx context.Context, asset entities.Asset) (*RaffleDrawResult, error)

	// WithdrawJackpots settles the caller's pending jackpot winnings. Fails
	// with NoPrize when nothing is pending.
	WithdrawJackpots(ctx context.Context, asset entities.Asset, caller entities.Account) (int64, error)

	Jackpot(ctx context.Context, asset entities.Asset) (int64, error)
	Participants(ctx context.Context, asset entities.Asset) ([]entities.Account, error)
	ParticipantsNumber(ctx context.Context, asset entities.Asset) (int64, error)
	ResultInfo(ctx context.Context, asset entities.Asset, idx int64) (*entities.RaffleResult, error)
	ResultsNumber(ctx context.Context, asset entities.Asset) (int64, error)
	JackpotPending(ctx context.Context, asset entities.Asset, account entities.Account) (int64, error)
	JackpotWithdrawnTotal(ctx context.Context, asset entities.Asset, account entities.Account) (int64, error)
}

// PrizeWithdrawal summarizes one pending-prize walk.
type PrizeWithdrawal struct {
	GamesChecked int
	GrossAmount  int64
	NetAmount    int64
}

// GameService orchestrates the coin-flip lifecycle.
type GameService interface {
	// StartGame opens a new round, absorbing any carried-over stake.
	StartGame(ctx context.Context, asset entities.Asset, creator entities.Account, stake int64, commitment string, referral entities.Account) (*entities.Game, error)

	// JoinGame enters the running round on the chosen side.
	JoinGame(ctx context.Context, asset entities.Asset, joiner entities.Account, stake int64, side entities.CoinSide, referral entities.Account) (*entities.Game, error)

	// PlayGame reveals the creator's seed and resolves the round. Prizes
	// become claimable; no funds move.
	PlayGame(ctx context.Context, asset entities.Asset, caller entities.Account, side entities.CoinSide, seed []byte) (*entities.Game, error)

	// FinishTimeoutGame closes an expired round, carrying the creator's
	// stake into the next game of the asset.
	FinishTimeoutGame(ctx context.Context, asset entities.Asset) (*entities.Game, error)

	// WithdrawPendingPrizes walks the caller's unconsumed participations up
	// to maxLoop entries (0 = unbounded), paying each owed share exactly
	// once and fanning fees out to the fee, staking and raffle engines.
	WithdrawPendingPrizes(ctx context.Context, asset entities.Asset, caller entities.Account, maxLoop int64) (*PrizeWithdrawal, error)

	// PendingPrizeToWithdraw computes the gross claimable total without
	// consuming anything.
	PendingPrizeToWithdraw(ctx context.Context, asset entities.Asset, account entities.Account, maxLoop int64) (int64, error)

	// GameInfo returns one historical game record, nil if absent.
	GameInfo(ctx context.Context, asset entities.Asset, idx int64) (*entities.Game, error)

	// GamesCount returns the number of games for an asset.
	GamesCount(ctx context.Context, asset entities.Asset) (int64, error)

	// RunningAssets returns every asset with a game in progress.
	RunningAssets(ctx context.Context) ([]entities.Asset, error)
}

// StakingService tracks staked principal and proportional income rewards.
type StakingService interface {
	// Stake moves amount of the stake token from the account into the pool.
	Stake(ctx context.Context, account entities.Account, amount int64) error

	// Unstake settles the owed reward to pending and returns the principal.
	Unstake(ctx context.Context, account entities.Account) (int64, error)

	// RecordIncome appends an income event, skipped while nobody stakes.
	RecordIncome(ctx context.Context, amount int64) error

	// ReplenishRewardPool deposits native funds from the caller and records
	// them as staking income.
	ReplenishRewardPool(ctx context.Context, from entities.Account, amount int64) error

	// CalculateReward folds the account's share over at most maxLoop events
	// (0 = all), returning the reward and the would-be new cursor without
	// committing either.
	CalculateReward(ctx context.Context, account entities.Account, maxLoop int64) (int64, int64, error)

	// WithdrawReward settles pending plus newly accrued reward, committing
	// the cursor, and pays out in the native asset.
	WithdrawReward(ctx context.Context, account entities.Account, maxLoop int64) (int64, error)

	IncomeCount(ctx context.Context) (int64, error)
	IncomeInfo(ctx context.Context, idx int64) (*entities.IncomeEvent, error)
	StakeOf(ctx context.Context, account entities.Account) (int64, error)
	TokensStaked(ctx context.Context) (int64, error)
}
