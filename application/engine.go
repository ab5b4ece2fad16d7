package application

import (
	"context"
	"errors"
	"sync"

	"coinhouse/config"
	"coinhouse/domain/entities"
	"coinhouse/domain/interfaces"
	"coinhouse/domain/services"

	log "github.com/sirupsen/logrus"
)

// Engine is the settlement façade. Every mutating entry point serializes on
// the asset it touches and runs inside a single unit of work, so either the
// whole fan-out (game, fees, staking, raffle, ledger) commits or none of it
// does. Staking operations serialize on the native asset because income
// events are native-denominated.
type Engine struct {
	uowFactory interfaces.UnitOfWorkFactory

	mu    sync.Mutex
	locks map[entities.Asset]*sync.Mutex
}

// NewEngine creates a new settlement engine
func NewEngine(uowFactory interfaces.UnitOfWorkFactory) *Engine {
	return &Engine{
		uowFactory: uowFactory,
		locks:      make(map[entities.Asset]*sync.Mutex),
	}
}

// serviceSet wires the domain services over one unit of work's repositories.
type serviceSet struct {
	ledger  interfaces.LedgerService
	fees    interfaces.FeeService
	raffle  interfaces.RaffleService
	staking interfaces.StakingService
	games   interfaces.GameService
}

func buildServices(uow interfaces.UnitOfWork) *serviceSet {
	ledger := services.NewLedgerService(uow.AssetRepository(), uow.AccountRepository())
	fees := services.NewFeeService(uow.FeeRepository(), ledger)
	raffle := services.NewRaffleService(uow.RaffleRepository(), ledger, uow.EventBus())
	staking := services.NewStakingService(uow.StakingRepository(), ledger)
	games := services.NewGameService(
		uow.GameRepository(),
		uow.GameParticipantRepository(),
		uow.AssetRepository(),
		ledger,
		fees,
		staking,
		raffle,
		uow.EventBus(),
	)
	return &serviceSet{
		ledger:  ledger,
		fees:    fees,
		raffle:  raffle,
		staking: staking,
		games:   games,
	}
}

// lockAsset acquires the per-asset mutex and returns its unlock function.
func (e *Engine) lockAsset(asset entities.Asset) func() {
	e.mu.Lock()
	l, ok := e.locks[asset]
	if !ok {
		l = &sync.Mutex{}
		e.locks[asset] = l
	}
	e.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// inTx runs fn inside one unit of work, rolling back on error.
func (e *Engine) inTx(ctx context.Context, fn func(s *serviceSet) error) error {
	uow := e.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	if err := fn(buildServices(uow)); err != nil {
		if rbErr := uow.Rollback(); rbErr != nil {
			log.WithError(rbErr).Error("rollback failed")
		}
		return err
	}

	return uow.Commit()
}

func requireOwner(caller entities.Account) error {
	if caller != config.Get().OwnerAddress {
		return entities.ErrNotOwner
	}
	return nil
}

// Game lifecycle

func (e *Engine) StartGame(ctx context.Context, asset entities.Asset, creator entities.Account, stake int64, commitment string, referral entities.Account) (*entities.Game, error) {
	defer e.lockAsset(asset)()

	var game *entities.Game
	err := e.inTx(ctx, func(s *serviceSet) error {
		var err error
		game, err = s.games.StartGame(ctx, asset, creator, stake, commitment, referral)
		return err
	})
	if err != nil {
		return nil, err
	}
	return game, nil
}

func (e *Engine) JoinGame(ctx context.Context, asset entities.Asset, joiner entities.Account, stake int64, side entities.CoinSide, referral entities.Account) (*entities.Game, error) {
	defer e.lockAsset(asset)()

	var game *entities.Game
	err := e.inTx(ctx, func(s *serviceSet) error {
		var err error
		game, err = s.games.JoinGame(ctx, asset, joiner, stake, side, referral)
		return err
	})
	if err != nil {
		return nil, err
	}
	return game, nil
}

func (e *Engine) PlayGame(ctx context.Context, asset entities.Asset, caller entities.Account, side entities.CoinSide, seed []byte) (*entities.Game, error) {
	defer e.lockAsset(asset)()

	var game *entities.Game
	err := e.inTx(ctx, func(s *serviceSet) error {
		var err error
		game, err = s.games.PlayGame(ctx, asset, caller, side, seed)
		return err
	})
	if err != nil {
		return nil, err
	}
	return game, nil
}

func (e *Engine) FinishTimeoutGame(ctx context.Context, asset entities.Asset) (*entities.Game, error) {
	defer e.lockAsset(asset)()

	var game *entities.Game
	err := e.inTx(ctx, func(s *serviceSet) error {
		var err error
		game, err = s.games.FinishTimeoutGame(ctx, asset)
		return err
	})
	if err != nil {
		return nil, err
	}
	return game, nil
}

// SweepTimeouts closes every expired game. Closing is open to anyone, so the
// engine can do it on a schedule. Returns the number of games closed.
func (e *Engine) SweepTimeouts(ctx context.Context) (int, error) {
	var assets []entities.Asset
	err := e.inTx(ctx, func(s *serviceSet) error {
		var err error
		assets, err = s.games.RunningAssets(ctx)
		return err
	})
	if err != nil {
		return 0, err
	}

	closed := 0
	for _, asset := range assets {
		if _, err := e.FinishTimeoutGame(ctx, asset); err != nil {
			if errors.Is(err, entities.ErrGameNotExpired) || errors.Is(err, entities.ErrGameNotRunning) {
				continue
			}
			return closed, err
		}
		closed++
	}
	return closed, nil
}

func (e *Engine) WithdrawPendingPrizes(ctx context.Context, asset entities.Asset, caller entities.Account, maxLoop int64) (*interfaces.PrizeWithdrawal, error) {
	defer e.lockAsset(asset)()

	var result *interfaces.PrizeWithdrawal
	err := e.inTx(ctx, func(s *serviceSet) error {
		var err error
		result, err = s.games.WithdrawPendingPrizes(ctx, asset, caller, maxLoop)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (e *Engine) PendingPrizeToWithdraw(ctx context.Context, asset entities.Asset, account entities.Account, maxLoop int64) (int64, error) {
	var total int64
	err := e.inTx(ctx, func(s *serviceSet) error {
		var err error
		total, err = s.games.PendingPrizeToWithdraw(ctx, asset, account, maxLoop)
		return err
	})
	return total, err
}

func (e *Engine) GameInfo(ctx context.Context, asset entities.Asset, idx int64) (*entities.Game, error) {
	var game *entities.Game
	err := e.inTx(ctx, func(s *serviceSet) error {
		var err error
		game, err = s.games.GameInfo(ctx, asset, idx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return game, nil
}

func (e *Engine) GamesCount(ctx context.Context, asset entities.Asset) (int64, error) {
	var count int64
	err := e.inTx(ctx, func(s *serviceSet) error {
		var err error
		count, err = s.games.GamesCount(ctx, asset)
		return err
	})
	return count, err
}

// Fees

func (e *Engine) WithdrawDevFee(ctx context.Context, asset entities.Asset, caller entities.Account) (int64, error) {
	defer e.lockAsset(asset)()

	var settled int64
	err := e.inTx(ctx, func(s *serviceSet) error {
		var err error
		settled, err = s.fees.WithdrawDevFee(ctx, asset, caller)
		return err
	})
	return settled, err
}

func (e *Engine) WithdrawPartnerFee(ctx context.Context, asset entities.Asset, caller entities.Account) (int64, error) {
	defer e.lockAsset(asset)()

	var settled int64
	err := e.inTx(ctx, func(s *serviceSet) error {
		var err error
		settled, err = s.fees.WithdrawPartnerFee(ctx, asset, caller)
		return err
	})
	return settled, err
}

func (e *Engine) WithdrawReferralFee(ctx context.Context, asset entities.Asset, caller entities.Account) (int64, error) {
	defer e.lockAsset(asset)()

	var settled int64
	err := e.inTx(ctx, func(s *serviceSet) error {
		var err error
		settled, err = s.fees.WithdrawReferralFee(ctx, asset, caller)
		return err
	})
	return settled, err
}

func (e *Engine) FeePending(ctx context.Context, asset entities.Asset, role entities.FeeRole, account entities.Account) (int64, error) {
	var pending int64
	err := e.inTx(ctx, func(s *serviceSet) error {
		var err error
		pending, err = s.fees.Pending(ctx, asset, role, account)
		return err
	})
	return pending, err
}

func (e *Engine) FeeWithdrawnTotal(ctx context.Context, asset entities.Asset, role entities.FeeRole, account entities.Account) (int64, error) {
	var total int64
	err := e.inTx(ctx, func(s *serviceSet) error {
		var err error
		total, err = s.fees.WithdrawnTotal(ctx, asset, role, account)
		return err
	})
	return total, err
}

// Raffle

func (e *Engine) RunRaffle(ctx context.Context, asset entities.Asset, caller entities.Account) (*interfaces.RaffleDrawResult, error) {
	if err := requireOwner(caller); err != nil {
		return nil, err
	}
	defer e.lockAsset(asset)()

	var result *interfaces.RaffleDrawResult
	err := e.inTx(ctx, func(s *serviceSet) error {
		var err error
		result, err = s.raffle.RunRaffle(ctx, asset)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (e *Engine) WithdrawRaffleJackpots(ctx context.Context, asset entities.Asset, caller entities.Account) (int64, error) {
	defer e.lockAsset(asset)()

	var settled int64
	err := e.inTx(ctx, func(s *serviceSet) error {
		var err error
		settled, err = s.raffle.WithdrawJackpots(ctx, asset, caller)
		return err
	})
	return settled, err
}

func (e *Engine) RaffleJackpot(ctx context.Context, asset entities.Asset) (int64, error) {
	var jackpot int64
	err := e.inTx(ctx, func(s *serviceSet) error {
		var err error
		jackpot, err = s.raffle.Jackpot(ctx, asset)
		return err
	})
	return jackpot, err
}

func (e *Engine) RaffleParticipants(ctx context.Context, asset entities.Asset) ([]entities.Account, error) {
	var participants []entities.Account
	err := e.inTx(ctx, func(s *serviceSet) error {
		var err error
		participants, err = s.raffle.Participants(ctx, asset)
		return err
	})
	return participants, err
}

func (e *Engine) RaffleParticipantsNumber(ctx context.Context, asset entities.Asset) (int64, error) {
	var count int64
	err := e.inTx(ctx, func(s *serviceSet) error {
		var err error
		count, err = s.raffle.ParticipantsNumber(ctx, asset)
		return err
	})
	return count, err
}

func (e *Engine) RaffleResultInfo(ctx context.Context, asset entities.Asset, idx int64) (*entities.RaffleResult, error) {
	var result *entities.RaffleResult
	err := e.inTx(ctx, func(s *serviceSet) error {
		var err error
		result, err = s.raffle.ResultInfo(ctx, asset, idx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (e *Engine) RaffleResultsNumber(ctx context.Context, asset entities.Asset) (int64, error) {
	var count int64
	err := e.inTx(ctx, func(s *serviceSet) error {
		var err error
		count, err = s.raffle.ResultsNumber(ctx, asset)
		return err
	})
	return count, err
}

func (e *Engine) RaffleJackpotPending(ctx context.Context, asset entities.Asset, account entities.Account) (int64, error) {
	var pending int64
	err := e.inTx(ctx, func(s *serviceSet) error {
		var err error
		pending, err = s.raffle.JackpotPending(ctx, asset, account)
		return err
	})
	return pending, err
}

func (e *Engine) RaffleJackpotWithdrawnTotal(ctx context.Context, asset entities.Asset, account entities.Account) (int64, error) {
	var total int64
	err := e.inTx(ctx, func(s *serviceSet) error {
		var err error
		total, err = s.raffle.JackpotWithdrawnTotal(ctx, asset, account)
		return err
	})
	return total, err
}

// Staking

func (e *Engine) Stake(ctx context.Context, account entities.Account, amount int64) error {
	defer e.lockAsset(entities.AssetNative)()

	return e.inTx(ctx, func(s *serviceSet) error {
		return s.staking.Stake(ctx, account, amount)
	})
}

func (e *Engine) Unstake(ctx context.Context, account entities.Account) (int64, error) {
	defer e.lockAsset(entities.AssetNative)()

	var principal int64
	err := e.inTx(ctx, func(s *serviceSet) error {
		var err error
		principal, err = s.staking.Unstake(ctx, account)
		return err
	})
	return principal, err
}

func (e *Engine) WithdrawReward(ctx context.Context, account entities.Account, maxLoop int64) (int64, error) {
	defer e.lockAsset(entities.AssetNative)()

	var reward int64
	err := e.inTx(ctx, func(s *serviceSet) error {
		var err error
		reward, err = s.staking.WithdrawReward(ctx, account, maxLoop)
		return err
	})
	return reward, err
}

func (e *Engine) ReplenishRewardPool(ctx context.Context, caller entities.Account, amount int64) error {
	if err := requireOwner(caller); err != nil {
		return err
	}
	defer e.lockAsset(entities.AssetNative)()

	return e.inTx(ctx, func(s *serviceSet) error {
		return s.staking.ReplenishRewardPool(ctx, caller, amount)
	})
}

func (e *Engine) CalculateReward(ctx context.Context, account entities.Account, maxLoop int64) (int64, int64, error) {
	var reward, cursor int64
	err := e.inTx(ctx, func(s *serviceSet) error {
		var err error
		reward, cursor, err = s.staking.CalculateReward(ctx, account, maxLoop)
		return err
	})
	return reward, cursor, err
}

func (e *Engine) IncomeCount(ctx context.Context) (int64, error) {
	var count int64
	err := e.inTx(ctx, func(s *serviceSet) error {
		var err error
		count, err = s.staking.IncomeCount(ctx)
		return err
	})
	return count, err
}

func (e *Engine) IncomeInfo(ctx context.Context, idx int64) (*entities.IncomeEvent, error) {
	var event *entities.IncomeEvent
	err := e.inTx(ctx, func(s *serviceSet) error {
		var err error
		event, err = s.staking.IncomeInfo(ctx, idx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (e *Engine) StakeOf(ctx context.Context, account entities.Account) (int64, error) {
	var principal int64
	err := e.inTx(ctx, func(s *serviceSet) error {
		var err error
		principal, err = s.staking.StakeOf(ctx, account)
		return err
	})
	return principal, err
}

func (e *Engine) TokensStaked(ctx context.Context) (int64, error) {
	var total int64
	err := e.inTx(ctx, func(s *serviceSet) error {
		var err error
		total, err = s.staking.TokensStaked(ctx)
		return err
	})
	return total, err
}

// Ledger and administration

// Mint credits external funds to an account. Owner-only; it is the bridge by
// which real deposits enter the ledger.
func (e *Engine) Mint(ctx context.Context, caller entities.Account, asset entities.Asset, to entities.Account, amount int64) error {
	if err := requireOwner(caller); err != nil {
		return err
	}
	defer e.lockAsset(asset)()

	return e.inTx(ctx, func(s *serviceSet) error {
		return s.ledger.Mint(ctx, asset, to, amount)
	})
}

func (e *Engine) BalanceOf(ctx context.Context, asset entities.Asset, account entities.Account) (int64, error) {
	var balance int64
	err := e.inTx(ctx, func(s *serviceSet) error {
		var err error
		balance, err = s.ledger.BalanceOf(ctx, asset, account)
		return err
	})
	return balance, err
}

// AddSupportedToken allow-lists a token for games. Owner-only.
func (e *Engine) AddSupportedToken(ctx context.Context, caller entities.Account, asset entities.Asset) error {
	if err := requireOwner(caller); err != nil {
		return err
	}
	if asset.IsNative() || asset == "" {
		return entities.ErrUnsupportedAsset
	}
	defer e.lockAsset(asset)()

	err := e.inTx(ctx, func(s *serviceSet) error {
		return s.ledger.Support(ctx, asset)
	})
	if err != nil {
		return err
	}

	config.AddSupportedToken(asset)

	log.WithField("asset", asset).Info("token allow-listed")
	return nil
}

// SetPartner updates the partner fee payee. Owner-only.
func (e *Engine) SetPartner(ctx context.Context, caller entities.Account, partner entities.Account) error {
	if err := requireOwner(caller); err != nil {
		return err
	}

	config.SetPartner(partner)

	log.WithField("partner", partner).Info("partner updated")
	return nil
}
