package services

import (
	"context"
	"fmt"

	"coinhouse/config"
	"coinhouse/domain/entities"
	"coinhouse/domain/interfaces"
	"coinhouse/domain/utils"

	log "github.com/sirupsen/logrus"
)

// stakingService tracks staked principal and discrete income events, and
// computes each staker's proportional share of income accrued since their
// cursor.
type stakingService struct {
	stakingRepo interfaces.StakingRepository
	ledger      interfaces.LedgerService
}

// NewStakingService creates a new staking service
func NewStakingService(stakingRepo interfaces.StakingRepository, ledger interfaces.LedgerService) interfaces.StakingService {
	return &stakingService{
		stakingRepo: stakingRepo,
		ledger:      ledger,
	}
}

func (s *stakingService) Stake(ctx context.Context, account entities.Account, amount int64) error {
	if amount <= 0 {
		return entities.ErrZeroAmount
	}
	cfg := config.Get()

	if err := s.ledger.Deposit(ctx, cfg.StakeToken, account, amount); err != nil {
		return err
	}

	position, err := s.stakingRepo.GetPosition(ctx, account)
	if err != nil {
		return fmt.Errorf("failed to get staker position: %w", err)
	}
	if position == nil {
		position = &entities.StakerPosition{Account: account}
	}

	// Changing principal mid-stream would retroactively reweight past
	// events, so settle the owed reward first and restart the cursor at the
	// current event count. A fresh staker earns nothing retroactively.
	if position.Principal > 0 {
		if err := s.settleToPending(ctx, position); err != nil {
			return err
		}
	}
	count, err := s.stakingRepo.IncomeCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to count income events: %w", err)
	}
	position.IncomeStartIdx = count
	position.Principal += amount

	if err := s.stakingRepo.UpsertPosition(ctx, position); err != nil {
		return fmt.Errorf("failed to persist staker position: %w", err)
	}
	if err := s.stakingRepo.AddTokensStaked(ctx, amount); err != nil {
		return fmt.Errorf("failed to grow staked total: %w", err)
	}

	log.WithFields(log.Fields{
		"account":   account,
		"amount":    amount,
		"principal": position.Principal,
	}).Info("tokens staked")

	return nil
}

func (s *stakingService) Unstake(ctx context.Context, account entities.Account) (int64, error) {
	cfg := config.Get()

	position, err := s.stakingRepo.GetPosition(ctx, account)
	if err != nil {
		return 0, fmt.Errorf("failed to get staker position: %w", err)
	}
	if position == nil || position.Principal == 0 {
		return 0, entities.ErrNoStake
	}

	if err := s.settleToPending(ctx, position); err != nil {
		return 0, err
	}

	principal := position.Principal
	position.Principal = 0
	if err := s.stakingRepo.UpsertPosition(ctx, position); err != nil {
		return 0, fmt.Errorf("failed to persist staker position: %w", err)
	}
	if err := s.stakingRepo.AddTokensStaked(ctx, -principal); err != nil {
		return 0, fmt.Errorf("failed to shrink staked total: %w", err)
	}
	if err := s.ledger.Payout(ctx, cfg.StakeToken, account, principal); err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{
		"account":   account,
		"principal": principal,
	}).Info("tokens unstaked")

	return principal, nil
}

func (s *stakingService) RecordIncome(ctx context.Context, amount int64) error {
	if amount <= 0 {
		return nil
	}
	staked, err := s.stakingRepo.TokensStaked(ctx)
	if err != nil {
		return fmt.Errorf("failed to get staked total: %w", err)
	}
	if staked == 0 {
		// Nobody to attribute the income to; the funds stay retained and
		// benefit whoever stakes later.
		log.WithField("amount", amount).Debug("income skipped, no stakers")
		return nil
	}
	if err := s.stakingRepo.AppendIncome(ctx, &entities.IncomeEvent{
		Income:       amount,
		TokensStaked: staked,
	}); err != nil {
		return fmt.Errorf("failed to append income event: %w", err)
	}
	return nil
}

func (s *stakingService) ReplenishRewardPool(ctx context.Context, from entities.Account, amount int64) error {
	if amount <= 0 {
		return entities.ErrZeroAmount
	}
	if err := s.ledger.Deposit(ctx, entities.AssetNative, from, amount); err != nil {
		return err
	}
	return s.RecordIncome(ctx, amount)
}

func (s *stakingService) CalculateReward(ctx context.Context, account entities.Account, maxLoop int64) (int64, int64, error) {
	position, err := s.stakingRepo.GetPosition(ctx, account)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get staker position: %w", err)
	}
	if position == nil {
		return 0, 0, nil
	}
	reward, cursor, err := s.accrued(ctx, position, maxLoop)
	if err != nil {
		return 0, 0, err
	}
	return reward + position.PendingReward, cursor, nil
}

func (s *stakingService) WithdrawReward(ctx context.Context, account entities.Account, maxLoop int64) (int64, error) {
	position, err := s.stakingRepo.GetPosition(ctx, account)
	if err != nil {
		return 0, fmt.Errorf("failed to get staker position: %w", err)
	}
	if position == nil {
		return 0, entities.ErrNoPrize
	}
	reward, cursor, err := s.accrued(ctx, position, maxLoop)
	if err != nil {
		return 0, err
	}
	total := reward + position.PendingReward
	if total == 0 {
		return 0, entities.ErrNoPrize
	}

	position.PendingReward = 0
	position.IncomeStartIdx = cursor
	position.WithdrawnTotal += total
	if err := s.stakingRepo.UpsertPosition(ctx, position); err != nil {
		return 0, fmt.Errorf("failed to persist staker position: %w", err)
	}
	if err := s.ledger.Payout(ctx, entities.AssetNative, account, total); err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{
		"account": account,
		"reward":  utils.FormatAmount(entities.AssetNative, total),
	}).Info("staking reward withdrawn")

	return total, nil
}

func (s *stakingService) IncomeCount(ctx context.Context) (int64, error) {
	return s.stakingRepo.IncomeCount(ctx)
}

func (s *stakingService) IncomeInfo(ctx context.Context, idx int64) (*entities.IncomeEvent, error) {
	return s.stakingRepo.GetIncome(ctx, idx)
}

func (s *stakingService) StakeOf(ctx context.Context, account entities.Account) (int64, error) {
	position, err := s.stakingRepo.GetPosition(ctx, account)
	if err != nil {
		return 0, fmt.Errorf("failed to get staker position: %w", err)
	}
	if position == nil {
		return 0, nil
	}
	return position.Principal, nil
}

func (s *stakingService) TokensStaked(ctx context.Context) (int64, error) {
	return s.stakingRepo.TokensStaked(ctx)
}

// accrued folds the position's share over events past the cursor without
// mutating anything.
func (s *stakingService) accrued(ctx context.Context, position *entities.StakerPosition, maxLoop int64) (int64, int64, error) {
	events, err := s.stakingRepo.ListIncomeFrom(ctx, position.IncomeStartIdx, maxLoop)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list income events: %w", err)
	}
	reward, cursor := position.RewardOver(events, maxLoop)
	return reward, cursor, nil
}

// settleToPending moves the staker's fully accrued reward into their pending
// balance and advances the cursor to the end of the event sequence.
func (s *stakingService) settleToPending(ctx context.Context, position *entities.StakerPosition) error {
	reward, cursor, err := s.accrued(ctx, position, 0)
	if err != nil {
		return err
	}
	position.PendingReward += reward
	position.IncomeStartIdx = cursor
	return nil
}
