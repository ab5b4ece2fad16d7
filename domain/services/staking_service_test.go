package services

import (
	"context"
	"testing"

	"coinhouse/domain/entities"
	"coinhouse/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestStakingService_Stake_FreshStaker(t *testing.T) {
	ctx := context.Background()
	cfg := setupTestConfig(t)

	stakingRepo := new(testhelpers.MockStakingRepository)
	ledger := new(testhelpers.MockLedgerService)
	service := NewStakingService(stakingRepo, ledger)

	ledger.On("Deposit", ctx, cfg.StakeToken, entities.Account("0xalice"), int64(100)).Return(nil)
	stakingRepo.On("GetPosition", ctx, entities.Account("0xalice")).Return(nil, nil)
	stakingRepo.On("IncomeCount", ctx).Return(int64(3), nil)
	stakingRepo.On("UpsertPosition", ctx, mock.MatchedBy(func(p *entities.StakerPosition) bool {
		// A fresh staker starts at the current event count and earns nothing
		// retroactively.
		return p.Account == "0xalice" &&
			p.Principal == 100 &&
			p.PendingReward == 0 &&
			p.IncomeStartIdx == 3
	})).Return(nil)
	stakingRepo.On("AddTokensStaked", ctx, int64(100)).Return(nil)

	err := service.Stake(ctx, "0xalice", 100)

	assert.NoError(t, err)
	stakingRepo.AssertExpectations(t)
	ledger.AssertExpectations(t)
}

func TestStakingService_Stake_SettlesExistingReward(t *testing.T) {
	ctx := context.Background()
	cfg := setupTestConfig(t)

	stakingRepo := new(testhelpers.MockStakingRepository)
	ledger := new(testhelpers.MockLedgerService)
	service := NewStakingService(stakingRepo, ledger)

	ledger.On("Deposit", ctx, cfg.StakeToken, entities.Account("0xalice"), int64(50)).Return(nil)
	stakingRepo.On("GetPosition", ctx, entities.Account("0xalice")).Return(&entities.StakerPosition{
		Account:        "0xalice",
		Principal:      100,
		IncomeStartIdx: 0,
	}, nil)
	stakingRepo.On("ListIncomeFrom", ctx, int64(0), int64(0)).Return([]*entities.IncomeEvent{
		{Idx: 0, Income: 100, TokensStaked: 200},
	}, nil)
	stakingRepo.On("IncomeCount", ctx).Return(int64(1), nil)
	stakingRepo.On("UpsertPosition", ctx, mock.MatchedBy(func(p *entities.StakerPosition) bool {
		return p.Principal == 150 &&
			p.PendingReward == 50 &&
			p.IncomeStartIdx == 1
	})).Return(nil)
	stakingRepo.On("AddTokensStaked", ctx, int64(50)).Return(nil)

	err := service.Stake(ctx, "0xalice", 50)

	assert.NoError(t, err)
	stakingRepo.AssertExpectations(t)
}

func TestStakingService_Stake_ZeroAmount(t *testing.T) {
	ctx := context.Background()
	setupTestConfig(t)

	service := NewStakingService(new(testhelpers.MockStakingRepository), new(testhelpers.MockLedgerService))

	err := service.Stake(ctx, "0xalice", 0)

	assert.ErrorIs(t, err, entities.ErrZeroAmount)
}

func TestStakingService_Unstake(t *testing.T) {
	ctx := context.Background()
	cfg := setupTestConfig(t)

	stakingRepo := new(testhelpers.MockStakingRepository)
	ledger := new(testhelpers.MockLedgerService)
	service := NewStakingService(stakingRepo, ledger)

	stakingRepo.On("GetPosition", ctx, entities.Account("0xalice")).Return(&entities.StakerPosition{
		Account:       "0xalice",
		Principal:     100,
		PendingReward: 5,
	}, nil)
	stakingRepo.On("ListIncomeFrom", ctx, int64(0), int64(0)).Return([]*entities.IncomeEvent{
		{Idx: 0, Income: 100, TokensStaked: 100},
	}, nil)
	stakingRepo.On("UpsertPosition", ctx, mock.MatchedBy(func(p *entities.StakerPosition) bool {
		return p.Principal == 0 &&
			p.PendingReward == 105 &&
			p.IncomeStartIdx == 1
	})).Return(nil)
	stakingRepo.On("AddTokensStaked", ctx, int64(-100)).Return(nil)
	ledger.On("Payout", ctx, cfg.StakeToken, entities.Account("0xalice"), int64(100)).Return(nil)

	principal, err := service.Unstake(ctx, "0xalice")

	assert.NoError(t, err)
	assert.Equal(t, int64(100), principal)
	stakingRepo.AssertExpectations(t)
	ledger.AssertExpectations(t)
}

func TestStakingService_Unstake_NothingStaked(t *testing.T) {
	ctx := context.Background()
	setupTestConfig(t)

	stakingRepo := new(testhelpers.MockStakingRepository)
	service := NewStakingService(stakingRepo, new(testhelpers.MockLedgerService))

	stakingRepo.On("GetPosition", ctx, entities.Account("0xalice")).Return(nil, nil)

	_, err := service.Unstake(ctx, "0xalice")

	assert.ErrorIs(t, err, entities.ErrNoStake)
}

func TestStakingService_RecordIncome_SkippedWithoutStakers(t *testing.T) {
	ctx := context.Background()
	setupTestConfig(t)

	stakingRepo := new(testhelpers.MockStakingRepository)
	service := NewStakingService(stakingRepo, new(testhelpers.MockLedgerService))

	stakingRepo.On("TokensStaked", ctx).Return(int64(0), nil)

	err := service.RecordIncome(ctx, 500)

	assert.NoError(t, err)
	stakingRepo.AssertNotCalled(t, "AppendIncome", mock.Anything, mock.Anything)
}

func TestStakingService_RecordIncome(t *testing.T) {
	ctx := context.Background()
	setupTestConfig(t)

	stakingRepo := new(testhelpers.MockStakingRepository)
	service := NewStakingService(stakingRepo, new(testhelpers.MockLedgerService))

	stakingRepo.On("TokensStaked", ctx).Return(int64(400), nil)
	stakingRepo.On("AppendIncome", ctx, mock.MatchedBy(func(ev *entities.IncomeEvent) bool {
		return ev.Income == 100 && ev.TokensStaked == 400
	})).Return(nil)

	err := service.RecordIncome(ctx, 100)

	assert.NoError(t, err)
	stakingRepo.AssertExpectations(t)
}

func TestStakingService_ReplenishRewardPool(t *testing.T) {
	ctx := context.Background()
	cfg := setupTestConfig(t)

	stakingRepo := new(testhelpers.MockStakingRepository)
	ledger := new(testhelpers.MockLedgerService)
	service := NewStakingService(stakingRepo, ledger)

	ledger.On("Deposit", ctx, entities.AssetNative, cfg.OwnerAddress, int64(500)).Return(nil)
	stakingRepo.On("TokensStaked", ctx).Return(int64(100), nil)
	stakingRepo.On("AppendIncome", ctx, mock.MatchedBy(func(ev *entities.IncomeEvent) bool {
		return ev.Income == 500 && ev.TokensStaked == 100
	})).Return(nil)

	err := service.ReplenishRewardPool(ctx, cfg.OwnerAddress, 500)

	assert.NoError(t, err)
	stakingRepo.AssertExpectations(t)
}

func TestStakingService_CalculateReward(t *testing.T) {
	ctx := context.Background()
	setupTestConfig(t)

	stakingRepo := new(testhelpers.MockStakingRepository)
	service := NewStakingService(stakingRepo, new(testhelpers.MockLedgerService))

	stakingRepo.On("GetPosition", ctx, entities.Account("0xalice")).Return(&entities.StakerPosition{
		Account:        "0xalice",
		Principal:      100,
		PendingReward:  10,
		IncomeStartIdx: 2,
	}, nil)
	stakingRepo.On("ListIncomeFrom", ctx, int64(2), int64(0)).Return([]*entities.IncomeEvent{
		{Idx: 2, Income: 100, TokensStaked: 200},
	}, nil)

	reward, cursor, err := service.CalculateReward(ctx, "0xalice", 0)

	assert.NoError(t, err)
	assert.Equal(t, int64(60), reward)
	assert.Equal(t, int64(3), cursor)
	// No commit: the cursor and pending stay untouched in storage.
	stakingRepo.AssertNotCalled(t, "UpsertPosition", mock.Anything, mock.Anything)
}

func TestStakingService_WithdrawReward(t *testing.T) {
	ctx := context.Background()
	setupTestConfig(t)

	stakingRepo := new(testhelpers.MockStakingRepository)
	ledger := new(testhelpers.MockLedgerService)
	service := NewStakingService(stakingRepo, ledger)

	stakingRepo.On("GetPosition", ctx, entities.Account("0xalice")).Return(&entities.StakerPosition{
		Account:       "0xalice",
		Principal:     100,
		PendingReward: 10,
	}, nil)
	stakingRepo.On("ListIncomeFrom", ctx, int64(0), int64(0)).Return([]*entities.IncomeEvent{
		{Idx: 0, Income: 100, TokensStaked: 100},
	}, nil)
	stakingRepo.On("UpsertPosition", ctx, mock.MatchedBy(func(p *entities.StakerPosition) bool {
		return p.PendingReward == 0 &&
			p.IncomeStartIdx == 1 &&
			p.WithdrawnTotal == 110
	})).Return(nil)
	ledger.On("Payout", ctx, entities.AssetNative, entities.Account("0xalice"), int64(110)).Return(nil)

	total, err := service.WithdrawReward(ctx, "0xalice", 0)

	assert.NoError(t, err)
	assert.Equal(t, int64(110), total)
	stakingRepo.AssertExpectations(t)
	ledger.AssertExpectations(t)
}

func TestStakingService_WithdrawReward_NothingOwed(t *testing.T) {
	ctx := context.Background()
	setupTestConfig(t)

	stakingRepo := new(testhelpers.MockStakingRepository)
	service := NewStakingService(stakingRepo, new(testhelpers.MockLedgerService))

	stakingRepo.On("GetPosition", ctx, entities.Account("0xalice")).Return(nil, nil)

	_, err := service.WithdrawReward(ctx, "0xalice", 0)

	assert.ErrorIs(t, err, entities.ErrNoPrize)
}
