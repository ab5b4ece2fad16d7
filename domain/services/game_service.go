package services

import (
	"context"
	"fmt"
	"time"

	"coinhouse/config"
	"coinhouse/domain/entities"
	"coinhouse/domain/events"
	"coinhouse/domain/interfaces"
	"coinhouse/domain/utils"

	log "github.com/sirupsen/logrus"
)

// gameService orchestrates the coin-flip lifecycle: stake collection,
// opponent matching, commit/reveal resolution, timeout handling, and the
// prize-withdrawal fan-out into the fee, staking and raffle engines.
type gameService struct {
	gameRepo        interfaces.GameRepository
	participantRepo interfaces.GameParticipantRepository
	assetRepo       interfaces.AssetRepository
	ledger          interfaces.LedgerService
	fees            interfaces.FeeService
	staking         interfaces.StakingService
	raffle          interfaces.RaffleService
	eventPublisher  interfaces.EventPublisher
}

// NewGameService creates a new game service
func NewGameService(
	gameRepo interfaces.GameRepository,
	participantRepo interfaces.GameParticipantRepository,
	assetRepo interfaces.AssetRepository,
	ledger interfaces.LedgerService,
	fees interfaces.FeeService,
	staking interfaces.StakingService,
	raffle interfaces.RaffleService,
	eventPublisher interfaces.EventPublisher,
) interfaces.GameService {
	return &gameService{
		gameRepo:        gameRepo,
		participantRepo: participantRepo,
		assetRepo:       assetRepo,
		ledger:          ledger,
		fees:            fees,
		staking:         staking,
		raffle:          raffle,
		eventPublisher:  eventPublisher,
	}
}

func (s *gameService) StartGame(ctx context.Context, asset entities.Asset, creator entities.Account, stake int64, commitment string, referral entities.Account) (*entities.Game, error) {
	cfg := config.Get()

	if commitment == "" {
		return nil, entities.ErrEmptyCommitment
	}
	if creator.IsZero() {
		return nil, entities.ErrZeroAddress
	}
	if asset.IsNative() {
		if stake < cfg.MinStakeNative {
			return nil, entities.ErrStakeTooLow
		}
	} else {
		if !cfg.IsSupportedToken(asset) {
			return nil, entities.ErrUnsupportedAsset
		}
		if stake <= 0 {
			return nil, entities.ErrStakeTooLow
		}
	}

	current, err := s.gameRepo.GetCurrent(ctx, asset)
	if err != nil {
		return nil, fmt.Errorf("failed to get current game: %w", err)
	}
	if current != nil && current.Running {
		return nil, entities.ErrGameRunning
	}

	// Reaching this point means the asset is native or allow-listed.
	state, err := s.assetRepo.GetOrCreate(ctx, asset, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get asset state: %w", err)
	}

	if err := s.ledger.Deposit(ctx, asset, creator, stake); err != nil {
		return nil, err
	}

	// A timed-out predecessor leaves its creator stake behind; the next game
	// absorbs it exactly once.
	effectiveStake := stake + state.StakeCarry
	if state.StakeCarry > 0 {
		if err := s.assetRepo.SetStakeCarry(ctx, asset, 0); err != nil {
			return nil, fmt.Errorf("failed to consume stake carry: %w", err)
		}
	}

	game := &entities.Game{
		Asset:      asset,
		Running:    true,
		Commitment: commitment,
		Creator:    creator,
		Stake:      effectiveStake,
		StartTime:  time.Now().UTC(),
	}
	if err := s.gameRepo.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if err := s.participantRepo.Create(ctx, &entities.GameParticipant{
		Asset:    asset,
		GameIdx:  game.Idx,
		Account:  creator,
		Side:     entities.SideNone,
		Creator:  true,
		Referral: referral,
	}); err != nil {
		return nil, fmt.Errorf("failed to record creator participation: %w", err)
	}

	if err := s.eventPublisher.Publish(ctx, events.NewGameStartedEvent(asset, game.Idx, creator, effectiveStake)); err != nil {
		return nil, fmt.Errorf("failed to publish game started event: %w", err)
	}

	log.WithFields(log.Fields{
		"asset":   asset,
		"idx":     game.Idx,
		"creator": creator,
		"stake":   utils.FormatAmount(asset, effectiveStake),
	}).Info("game started")

	return game, nil
}

func (s *gameService) JoinGame(ctx context.Context, asset entities.Asset, joiner entities.Account, stake int64, side entities.CoinSide, referral entities.Account) (*entities.Game, error) {
	cfg := config.Get()

	if !side.Valid() {
		return nil, entities.ErrInvalidSide
	}
	if joiner.IsZero() {
		return nil, entities.ErrZeroAddress
	}

	game, err := s.gameRepo.GetCurrent(ctx, asset)
	if err != nil {
		return nil, fmt.Errorf("failed to get current game: %w", err)
	}
	if game == nil || !game.Running {
		return nil, entities.ErrGameNotRunning
	}
	if game.IsExpired(time.Now().UTC(), cfg.GameMaxDuration) {
		return nil, entities.ErrGameExpired
	}
	if stake != game.Stake {
		return nil, entities.ErrWrongStake
	}

	// One entry per account per game; the creator already holds one.
	existing, err := s.participantRepo.Get(ctx, asset, game.Idx, joiner)
	if err != nil {
		return nil, fmt.Errorf("failed to check participation: %w", err)
	}
	if existing != nil {
		return nil, entities.ErrAlreadyJoined
	}

	if err := s.ledger.Deposit(ctx, asset, joiner, stake); err != nil {
		return nil, err
	}

	if side == entities.SideHeads {
		game.Heads++
	} else {
		game.Tails++
	}
	if err := s.gameRepo.Update(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if err := s.participantRepo.Create(ctx, &entities.GameParticipant{
		Asset:    asset,
		GameIdx:  game.Idx,
		Account:  joiner,
		Side:     side,
		Referral: referral,
	}); err != nil {
		return nil, fmt.Errorf("failed to record participation: %w", err)
	}

	if err := s.eventPublisher.Publish(ctx, events.NewGameJoinedEvent(asset, game.Idx, joiner, side)); err != nil {
		return nil, fmt.Errorf("failed to publish game joined event: %w", err)
	}

	log.WithFields(log.Fields{
		"asset": asset,
		"idx":   game.Idx,
		"side":  side.String(),
	}).Info("game joined")

	return game, nil
}

func (s *gameService) PlayGame(ctx context.Context, asset entities.Asset, caller entities.Account, side entities.CoinSide, seed []byte) (*entities.Game, error) {
	if !side.Valid() {
		return nil, entities.ErrInvalidSide
	}

	game, err := s.gameRepo.GetCurrent(ctx, asset)
	if err != nil {
		return nil, fmt.Errorf("failed to get current game: %w", err)
	}
	if game == nil || !game.Running {
		return nil, entities.ErrGameNotRunning
	}
	if caller != game.Creator {
		return nil, entities.ErrNotCreator
	}
	if !game.VerifyReveal(side, seed) {
		return nil, entities.ErrInvalidReveal
	}

	res := game.Resolve(side)
	game.Running = false
	game.WinningSide = res.WinningSide
	game.CreatorWon = res.CreatorWon
	game.WinnerPrize = res.WinnerPrize
	game.LoserRefund = res.LoserRefund
	if err := s.gameRepo.Update(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	// Split dust cannot be attributed to any participant; it feeds the
	// jackpot without a ticket.
	if res.JackpotDust > 0 {
		if err := s.raffle.AddToRaffle(ctx, asset, res.JackpotDust, entities.AccountZero); err != nil {
			return nil, err
		}
	}

	if err := s.eventPublisher.Publish(ctx, events.NewGameFinishedEvent(asset, game.Idx, false, res.WinningSide, res.CreatorWon)); err != nil {
		return nil, fmt.Errorf("failed to publish game finished event: %w", err)
	}

	log.WithFields(log.Fields{
		"asset":      asset,
		"idx":        game.Idx,
		"side":       res.WinningSide.String(),
		"creatorWon": res.CreatorWon,
	}).Info("game played")

	return game, nil
}

func (s *gameService) FinishTimeoutGame(ctx context.Context, asset entities.Asset) (*entities.Game, error) {
	cfg := config.Get()

	game, err := s.gameRepo.GetCurrent(ctx, asset)
	if err != nil {
		return nil, fmt.Errorf("failed to get current game: %w", err)
	}
	if game == nil || !game.Running {
		return nil, entities.ErrGameNotRunning
	}
	if !game.IsExpired(time.Now().UTC(), cfg.GameMaxDuration) {
		return nil, entities.ErrGameNotExpired
	}

	game.Running = false
	game.Timeout = true
	if err := s.gameRepo.Update(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	state, err := s.assetRepo.GetOrCreate(ctx, asset, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get asset state: %w", err)
	}
	if err := s.assetRepo.SetStakeCarry(ctx, asset, state.StakeCarry+game.Stake); err != nil {
		return nil, fmt.Errorf("failed to carry stake forward: %w", err)
	}

	if err := s.eventPublisher.Publish(ctx, events.NewGameFinishedEvent(asset, game.Idx, true, entities.SideNone, false)); err != nil {
		return nil, fmt.Errorf("failed to publish game finished event: %w", err)
	}

	log.WithFields(log.Fields{
		"asset": asset,
		"idx":   game.Idx,
		"carry": utils.FormatAmount(asset, game.Stake),
	}).Info("game timed out")

	return game, nil
}

func (s *gameService) WithdrawPendingPrizes(ctx context.Context, asset entities.Asset, caller entities.Account, maxLoop int64) (*interfaces.PrizeWithdrawal, error) {
	participations, err := s.participantRepo.GetUnchecked(ctx, asset, caller, maxLoop)
	if err != nil {
		return nil, fmt.Errorf("failed to list participations: %w", err)
	}

	result := &interfaces.PrizeWithdrawal{}
	for _, p := range participations {
		game, err := s.gameRepo.GetByIdx(ctx, asset, p.GameIdx)
		if err != nil {
			return nil, fmt.Errorf("failed to get game %d: %w", p.GameIdx, err)
		}
		if game == nil || game.Running {
			// Unresolved games stay on the checklist.
			continue
		}

		if err := s.participantRepo.MarkChecked(ctx, asset, p.GameIdx, caller); err != nil {
			return nil, fmt.Errorf("failed to consume participation: %w", err)
		}
		result.GamesChecked++

		gross, winning := game.PrizeOf(p)
		if gross == 0 {
			continue
		}
		result.GrossAmount += gross

		if !winning {
			// Refunds bypass the fee pipeline entirely.
			if err := s.ledger.Payout(ctx, asset, caller, gross); err != nil {
				return nil, err
			}
			result.NetAmount += gross
			continue
		}

		split, err := s.fees.AddFee(ctx, asset, gross, p.Referral)
		if err != nil {
			return nil, err
		}

		residue := split.RaffleResidue
		if asset.IsNative() {
			if err := s.staking.RecordIncome(ctx, split.StakingCut); err != nil {
				return nil, err
			}
		} else {
			// Staking income is native-denominated only; token cuts fold
			// into the raffle residue.
			residue += split.StakingCut
		}
		if err := s.raffle.AddToRaffle(ctx, asset, residue, caller); err != nil {
			return nil, err
		}
		if err := s.ledger.Payout(ctx, asset, caller, split.Net); err != nil {
			return nil, err
		}
		result.NetAmount += split.Net
	}

	if result.GamesChecked == 0 && result.NetAmount == 0 {
		return nil, entities.ErrNoPrize
	}

	if err := s.eventPublisher.Publish(ctx, events.NewPrizeWithdrawnEvent(asset, caller, result.GamesChecked, result.NetAmount)); err != nil {
		return nil, fmt.Errorf("failed to publish prize withdrawal event: %w", err)
	}

	log.WithFields(log.Fields{
		"asset":   asset,
		"account": caller,
		"games":   result.GamesChecked,
		"net":     utils.FormatAmount(asset, result.NetAmount),
	}).Info("pending prizes withdrawn")

	return result, nil
}

func (s *gameService) PendingPrizeToWithdraw(ctx context.Context, asset entities.Asset, account entities.Account, maxLoop int64) (int64, error) {
	participations, err := s.participantRepo.GetUnchecked(ctx, asset, account, maxLoop)
	if err != nil {
		return 0, fmt.Errorf("failed to list participations: %w", err)
	}

	var total int64
	for _, p := range participations {
		game, err := s.gameRepo.GetByIdx(ctx, asset, p.GameIdx)
		if err != nil {
			return 0, fmt.Errorf("failed to get game %d: %w", p.GameIdx, err)
		}
		if game == nil || game.Running {
			continue
		}
		gross, _ := game.PrizeOf(p)
		total += gross
	}
	return total, nil
}

func (s *gameService) GameInfo(ctx context.Context, asset entities.Asset, idx int64) (*entities.Game, error) {
	return s.gameRepo.GetByIdx(ctx, asset, idx)
}

func (s *gameService) GamesCount(ctx context.Context, asset entities.Asset) (int64, error) {
	return s.gameRepo.Count(ctx, asset)
}

func (s *gameService) RunningAssets(ctx context.Context) ([]entities.Asset, error) {
	return s.gameRepo.RunningAssets(ctx)
}
