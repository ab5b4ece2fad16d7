package testhelpers

import (
	"context"

	"coinhouse/domain/entities"
	"coinhouse/domain/events"

	"github.com/stretchr/testify/mock"
)

// MockAssetRepository is a mock implementation of AssetRepository
type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) Get(ctx context.Context, asset entities.Asset) (*entities.AssetState, error) {
	args := m.Called(ctx, asset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AssetState), args.Error(1)
}

func (m *MockAssetRepository) GetOrCreate(ctx context.Context, asset entities.Asset, supported bool) (*entities.AssetState, error) {
	args := m.Called(ctx, asset, supported)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AssetState), args.Error(1)
}

func (m *MockAssetRepository) SetSupported(ctx context.Context, asset entities.Asset, supported bool) error {
	args := m.Called(ctx, asset, supported)
	return args.Error(0)
}

func (m *MockAssetRepository) AddRetained(ctx context.Context, asset entities.Asset, delta int64) error {
	args := m.Called(ctx, asset, delta)
	return args.Error(0)
}

func (m *MockAssetRepository) SetStakeCarry(ctx context.Context, asset entities.Asset, amount int64) error {
	args := m.Called(ctx, asset, amount)
	return args.Error(0)
}

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetBalance(ctx context.Context, asset entities.Asset, account entities.Account) (int64, error) {
	args := m.Called(ctx, asset, account)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) AddBalance(ctx context.Context, asset entities.Asset, account entities.Account, delta int64) error {
	args := m.Called(ctx, asset, account, delta)
	return args.Error(0)
}

// MockGameRepository is a mock implementation of GameRepository
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) GetCurrent(ctx context.Context, asset entities.Asset) (*entities.Game, error) {
	args := m.Called(ctx, asset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Game), args.Error(1)
}

func (m *MockGameRepository) GetByIdx(ctx context.Context, asset entities.Asset, idx int64) (*entities.Game, error) {
	args := m.Called(ctx, asset, idx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Game), args.Error(1)
}

func (m *MockGameRepository) Count(ctx context.Context, asset entities.Asset) (int64, error) {
	args := m.Called(ctx, asset)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGameRepository) RunningAssets(ctx context.Context) ([]entities.Asset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Asset), args.Error(1)
}

func (m *MockGameRepository) Create(ctx context.Context, game *entities.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) Update(ctx context.Context, game *entities.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

// MockGameParticipantRepository is a mock implementation of GameParticipantRepository
type MockGameParticipantRepository struct {
	mock.Mock
}

func (m *MockGameParticipantRepository) Create(ctx context.Context, p *entities.GameParticipant) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockGameParticipantRepository) Get(ctx context.Context, asset entities.Asset, gameIdx int64, account entities.Account) (*entities.GameParticipant, error) {
	args := m.Called(ctx, asset, gameIdx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GameParticipant), args.Error(1)
}

func (m *MockGameParticipantRepository) GetUnchecked(ctx context.Context, asset entities.Asset, account entities.Account, limit int64) ([]*entities.GameParticipant, error) {
	args := m.Called(ctx, asset, account, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.GameParticipant), args.Error(1)
}

func (m *MockGameParticipantRepository) MarkChecked(ctx context.Context, asset entities.Asset, gameIdx int64, account entities.Account) error {
	args := m.Called(ctx, asset, gameIdx, account)
	return args.Error(0)
}

// MockFeeRepository is a mock implementation of FeeRepository
type MockFeeRepository struct {
	mock.Mock
}

func (m *MockFeeRepository) AddPending(ctx context.Context, asset entities.Asset, role entities.FeeRole, account entities.Account, amount int64) error {
	args := m.Called(ctx, asset, role, account, amount)
	return args.Error(0)
}

func (m *MockFeeRepository) Withdraw(ctx context.Context, asset entities.Asset, role entities.FeeRole, account entities.Account) (int64, error) {
	args := m.Called(ctx, asset, role, account)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFeeRepository) Get(ctx context.Context, asset entities.Asset, role entities.FeeRole, account entities.Account) (*entities.FeeAccount, error) {
	args := m.Called(ctx, asset, role, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.FeeAccount), args.Error(1)
}

// MockRaffleRepository is a mock implementation of RaffleRepository
type MockRaffleRepository struct {
	mock.Mock
}

func (m *MockRaffleRepository) GetState(ctx context.Context, asset entities.Asset) (*entities.RaffleState, error) {
	args := m.Called(ctx, asset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.RaffleState), args.Error(1)
}

func (m *MockRaffleRepository) AddJackpot(ctx context.Context, asset entities.Asset, amount int64) error {
	args := m.Called(ctx, asset, amount)
	return args.Error(0)
}

func (m *MockRaffleRepository) AddParticipant(ctx context.Context, asset entities.Asset, account entities.Account) error {
	args := m.Called(ctx, asset, account)
	return args.Error(0)
}

func (m *MockRaffleRepository) ListParticipants(ctx context.Context, asset entities.Asset) ([]entities.Account, error) {
	args := m.Called(ctx, asset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Account), args.Error(1)
}

func (m *MockRaffleRepository) CountParticipants(ctx context.Context, asset entities.Asset) (int64, error) {
	args := m.Called(ctx, asset)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRaffleRepository) ClearRound(ctx context.Context, asset entities.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockRaffleRepository) AppendResult(ctx context.Context, result *entities.RaffleResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockRaffleRepository) CountResults(ctx context.Context, asset entities.Asset) (int64, error) {
	args := m.Called(ctx, asset)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRaffleRepository) GetResult(ctx context.Context, asset entities.Asset, idx int64) (*entities.RaffleResult, error) {
	args := m.Called(ctx, asset, idx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.RaffleResult), args.Error(1)
}

func (m *MockRaffleRepository) AddAccountPending(ctx context.Context, asset entities.Asset, account entities.Account, amount int64) error {
	args := m.Called(ctx, asset, account, amount)
	return args.Error(0)
}

func (m *MockRaffleRepository) WithdrawAccount(ctx context.Context, asset entities.Asset, account entities.Account) (int64, error) {
	args := m.Called(ctx, asset, account)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRaffleRepository) GetAccount(ctx context.Context, asset entities.Asset, account entities.Account) (*entities.RaffleAccount, error) {
	args := m.Called(ctx, asset, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.RaffleAccount), args.Error(1)
}

// MockStakingRepository is a mock implementation of StakingRepository
type MockStakingRepository struct {
	mock.Mock
}

func (m *MockStakingRepository) GetPosition(ctx context.Context, account entities.Account) (*entities.StakerPosition, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.StakerPosition), args.Error(1)
}

func (m *MockStakingRepository) UpsertPosition(ctx context.Context, position *entities.StakerPosition) error {
	args := m.Called(ctx, position)
	return args.Error(0)
}

func (m *MockStakingRepository) TokensStaked(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStakingRepository) AddTokensStaked(ctx context.Context, delta int64) error {
	args := m.Called(ctx, delta)
	return args.Error(0)
}

func (m *MockStakingRepository) AppendIncome(ctx context.Context, event *entities.IncomeEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockStakingRepository) IncomeCount(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStakingRepository) GetIncome(ctx context.Context, idx int64) (*entities.IncomeEvent, error) {
	args := m.Called(ctx, idx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.IncomeEvent), args.Error(1)
}

func (m *MockStakingRepository) ListIncomeFrom(ctx context.Context, fromIdx, limit int64) ([]*entities.IncomeEvent, error) {
	args := m.Called(ctx, fromIdx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.IncomeEvent), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
