package testhelpers

import (
	"context"

	"coinhouse/domain/entities"
	"coinhouse/domain/interfaces"

	"github.com/stretchr/testify/mock"
)

// MockLedgerService is a mock implementation of LedgerService
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Mint(ctx context.Context, asset entities.Asset, to entities.Account, amount int64) error {
	args := m.Called(ctx, asset, to, amount)
	return args.Error(0)
}

func (m *MockLedgerService) Support(ctx context.Context, asset entities.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockLedgerService) Deposit(ctx context.Context, asset entities.Asset, from entities.Account, amount int64) error {
	args := m.Called(ctx, asset, from, amount)
	return args.Error(0)
}

func (m *MockLedgerService) Payout(ctx context.Context, asset entities.Asset, to entities.Account, amount int64) error {
	args := m.Called(ctx, asset, to, amount)
	return args.Error(0)
}

func (m *MockLedgerService) BalanceOf(ctx context.Context, asset entities.Asset, account entities.Account) (int64, error) {
	args := m.Called(ctx, asset, account)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) Retained(ctx context.Context, asset entities.Asset) (int64, error) {
	args := m.Called(ctx, asset)
	return args.Get(0).(int64), args.Error(1)
}

// MockFeeService is a mock implementation of FeeService
type MockFeeService struct {
	mock.Mock
}

func (m *MockFeeService) AddFee(ctx context.Context, asset entities.Asset, gross int64, referral entities.Account) (entities.FeeSplit, error) {
	args := m.Called(ctx, asset, gross, referral)
	return args.Get(0).(entities.FeeSplit), args.Error(1)
}

func (m *MockFeeService) WithdrawDevFee(ctx context.Context, asset entities.Asset, caller entities.Account) (int64, error) {
	args := m.Called(ctx, asset, caller)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFeeService) WithdrawPartnerFee(ctx context.Context, asset entities.Asset, caller entities.Account) (int64, error) {
	args := m.Called(ctx, asset, caller)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFeeService) WithdrawReferralFee(ctx context.Context, asset entities.Asset, caller entities.Account) (int64, error) {
	args := m.Called(ctx, asset, caller)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFeeService) Pending(ctx context.Context, asset entities.Asset, role entities.FeeRole, account entities.Account) (int64, error) {
	args := m.Called(ctx, asset, role, account)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFeeService) WithdrawnTotal(ctx context.Context, asset entities.Asset, role entities.FeeRole, account entities.Account) (int64, error) {
	args := m.Called(ctx, asset, role, account)
	return args.Get(0).(int64), args.Error(1)
}

// MockRaffleService is a mock implementation of RaffleService
type MockRaffleService struct {
	mock.Mock
}

func (m *MockRaffleService) AddToRaffle(ctx context.Context, asset entities.Asset, amount int64, participant entities.Account) error {
	args := m.Called(ctx, asset, amount, participant)
	return args.Error(0)
}

func (m *MockRaffleService) RunRaffle(ctx context.Context, asset entities.Asset) (*interfaces.RaffleDrawResult, error) {
	args := m.Called(ctx, asset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.RaffleDrawResult), args.Error(1)
}

func (m *MockRaffleService) WithdrawJackpots(ctx context.Context, asset entities.Asset, caller entities.Account) (int64, error) {
	args := m.Called(ctx, asset, caller)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRaffleService) Jackpot(ctx context.Context, asset entities.Asset) (int64, error) {
	args := m.Called(ctx, asset)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRaffleService) Participants(ctx context.Context, asset entities.Asset) ([]entities.Account, error) {
	args := m.Called(ctx, asset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Account), args.Error(1)
}

func (m *MockRaffleService) ParticipantsNumber(ctx context.Context, asset entities.Asset) (int64, error) {
	args := m.Called(ctx, asset)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRaffleService) ResultInfo(ctx context.Context, asset entities.Asset, idx int64) (*entities.RaffleResult, error) {
	args := m.Called(ctx, asset, idx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.RaffleResult), args.Error(1)
}

func (m *MockRaffleService) ResultsNumber(ctx context.Context, asset entities.Asset) (int64, error) {
	args := m.Called(ctx, asset)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRaffleService) JackpotPending(ctx context.Context, asset entities.Asset, account entities.Account) (int64, error) {
	args := m.Called(ctx, asset, account)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRaffleService) JackpotWithdrawnTotal(ctx context.Context, asset entities.Asset, account entities.Account) (int64, error) {
	args := m.Called(ctx, asset, account)
	return args.Get(0).(int64), args.Error(1)
}

// MockStakingService is a mock implementation of StakingService
type MockStakingService struct {
	mock.Mock
}

func (m *MockStakingService) Stake(ctx context.Context, account entities.Account, amount int64) error {
	args := m.Called(ctx, account, amount)
	return args.Error(0)
}

func (m *MockStakingService) Unstake(ctx context.Context, account entities.Account) (int64, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStakingService) RecordIncome(ctx context.Context, amount int64) error {
	args := m.Called(ctx, amount)
	return args.Error(0)
}

func (m *MockStakingService) ReplenishRewardPool(ctx context.Context, from entities.Account, amount int64) error {
	args := m.Called(ctx, from, amount)
	return args.Error(0)
}

func (m *MockStakingService) CalculateReward(ctx context.Context, account entities.Account, maxLoop int64) (int64, int64, error) {
	args := m.Called(ctx, account, maxLoop)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockStakingService) WithdrawReward(ctx context.Context, account entities.Account, maxLoop int64) (int64, error) {
	args := m.Called(ctx, account, maxLoop)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStakingService) IncomeCount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStakingService) IncomeInfo(ctx context.Context, idx int64) (*entities.IncomeEvent, error) {
	args := m.Called(ctx, idx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.IncomeEvent), args.Error(1)
}

func (m *MockStakingService) StakeOf(ctx context.Context, account entities.Account) (int64, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStakingService) TokensStaked(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
