package services

import (
	"context"
	"fmt"

	"coinhouse/domain/entities"
	"coinhouse/domain/events"
	"coinhouse/domain/interfaces"
	"coinhouse/domain/utils"

	log "github.com/sirupsen/logrus"
)

// raffleService accumulates fee residue into a per-asset jackpot and draws a
// winner among historical prize withdrawers.
type raffleService struct {
	raffleRepo     interfaces.RaffleRepository
	ledger         interfaces.LedgerService
	eventPublisher interfaces.EventPublisher
}

// NewRaffleService creates a new raffle service
func NewRaffleService(raffleRepo interfaces.RaffleRepository, ledger interfaces.LedgerService, eventPublisher interfaces.EventPublisher) interfaces.RaffleService {
	return &raffleService{
		raffleRepo:     raffleRepo,
		ledger:         ledger,
		eventPublisher: eventPublisher,
	}
}

func (s *raffleService) AddToRaffle(ctx context.Context, asset entities.Asset, amount int64, participant entities.Account) error {
	if amount > 0 {
		if err := s.raffleRepo.AddJackpot(ctx, asset, amount); err != nil {
			return fmt.Errorf("failed to grow jackpot: %w", err)
		}
	}
	if !participant.IsZero() {
		if err := s.raffleRepo.AddParticipant(ctx, asset, participant); err != nil {
			return fmt.Errorf("failed to append raffle participant: %w", err)
		}
	}
	return nil
}

func (s *raffleService) RunRaffle(ctx context.Context, asset entities.Asset) (*interfaces.RaffleDrawResult, error) {
	state, err := s.raffleRepo.GetState(ctx, asset)
	if err != nil {
		return nil, fmt.Errorf("failed to get raffle state: %w", err)
	}
	if state.Jackpot == 0 {
		return nil, nil
	}
	participants, err := s.raffleRepo.ListParticipants(ctx, asset)
	if err != nil {
		return nil, fmt.Errorf("failed to list raffle participants: %w", err)
	}
	if len(participants) == 0 {
		return nil, nil
	}

	idx, err := entities.DrawIndex(int64(len(participants)))
	if err != nil {
		return nil, err
	}
	winner := participants[idx]

	// The winner takes the entire jackpot; the round drains atomically.
	if err := s.raffleRepo.AddAccountPending(ctx, asset, winner, state.Jackpot); err != nil {
		return nil, fmt.Errorf("failed to credit raffle winner: %w", err)
	}
	if err := s.raffleRepo.AppendResult(ctx, &entities.RaffleResult{
		Asset:  asset,
		Winner: winner,
		Prize:  state.Jackpot,
	}); err != nil {
		return nil, fmt.Errorf("failed to record raffle result: %w", err)
	}
	if err := s.raffleRepo.ClearRound(ctx, asset); err != nil {
		return nil, fmt.Errorf("failed to drain raffle round: %w", err)
	}

	if err := s.eventPublisher.Publish(ctx, events.NewRafflePlayedEvent(asset, winner, state.Jackpot)); err != nil {
		return nil, fmt.Errorf("failed to publish raffle event: %w", err)
	}

	log.WithFields(log.Fields{
		"asset":        asset,
		"winner":       winner,
		"prize":        utils.FormatAmount(asset, state.Jackpot),
		"participants": len(participants),
	}).Info("raffle played")

	return &interfaces.RaffleDrawResult{
		Winner:       winner,
		Prize:        state.Jackpot,
		Participants: int64(len(participants)),
	}, nil
}

func (s *raffleService) WithdrawJackpots(ctx context.Context, asset entities.Asset, caller entities.Account) (int64, error) {
	amount, err := s.raffleRepo.WithdrawAccount(ctx, asset, caller)
	if err != nil {
		return 0, fmt.Errorf("failed to settle jackpot winnings: %w", err)
	}
	if amount == 0 {
		return 0, entities.ErrNoPrize
	}
	if err := s.ledger.Payout(ctx, asset, caller, amount); err != nil {
		return 0, fmt.Errorf("failed to pay out jackpot: %w", err)
	}
	if err := s.eventPublisher.Publish(ctx, events.NewRaffleJackpotWithdrawnEvent(asset, caller, amount)); err != nil {
		return 0, fmt.Errorf("failed to publish jackpot withdrawal event: %w", err)
	}
	return amount, nil
}

func (s *raffleService) Jackpot(ctx context.Context, asset entities.Asset) (int64, error) {
	state, err := s.raffleRepo.GetState(ctx, asset)
	if err != nil {
		return 0, fmt.Errorf("failed to get raffle state: %w", err)
	}
	return state.Jackpot, nil
}

func (s *raffleService) Participants(ctx context.Context, asset entities.Asset) ([]entities.Account, error) {
	return s.raffleRepo.ListParticipants(ctx, asset)
}

func (s *raffleService) ParticipantsNumber(ctx context.Context, asset entities.Asset) (int64, error) {
	return s.raffleRepo.CountParticipants(ctx, asset)
}

func (s *raffleService) ResultInfo(ctx context.Context, asset entities.Asset, idx int64) (*entities.RaffleResult, error) {
	return s.raffleRepo.GetResult(ctx, asset, idx)
}

func (s *raffleService) ResultsNumber(ctx context.Context, asset entities.Asset) (int64, error) {
	return s.raffleRepo.CountResults(ctx, asset)
}

func (s *raffleService) JackpotPending(ctx context.Context, asset entities.Asset, account entities.Account) (int64, error) {
	acc, err := s.raffleRepo.GetAccount(ctx, asset, account)
	if err != nil {
		return 0, fmt.Errorf("failed to get raffle account: %w", err)
	}
	if acc == nil {
		return 0, nil
	}
	return acc.Pending, nil
}

func (s *raffleService) JackpotWithdrawnTotal(ctx context.Context, asset entities.Asset, account entities.Account) (int64, error) {
	acc, err := s.raffleRepo.GetAccount(ctx, asset, account)
	if err != nil {
		return 0, fmt.Errorf("failed to get raffle account: %w", err)
	}
	if acc == nil {
		return 0, nil
	}
	return acc.WithdrawnTotal, nil
}
