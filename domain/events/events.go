package events

import (
	"coinhouse/domain/entities"

	"github.com/google/uuid"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeGameStarted            EventType = "game_started"
	EventTypeGameJoined             EventType = "game_joined"
	EventTypeGameFinished           EventType = "game_finished"
	EventTypePrizeWithdrawn         EventType = "prize_withdrawn"
	EventTypeRafflePlayed           EventType = "raffle_played"
	EventTypeRaffleJackpotWithdrawn EventType = "raffle_jackpot_withdrawn"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
	EventID() string
}

// NewEventID generates a unique identifier for an event instance.
func NewEventID() string {
	return uuid.NewString()
}

type base struct {
	ID string
}

func (b base) EventID() string { return b.ID }

// GameStartedEvent fires when a creator opens a new round.
type GameStartedEvent struct {
	base
	Asset   entities.Asset
	GameIdx int64
	Creator entities.Account
	Stake   int64
}

func NewGameStartedEvent(asset entities.Asset, idx int64, creator entities.Account, stake int64) GameStartedEvent {
	return GameStartedEvent{base: base{ID: NewEventID()}, Asset: asset, GameIdx: idx, Creator: creator, Stake: stake}
}

func (e GameStartedEvent) Type() EventType { return EventTypeGameStarted }

// GameJoinedEvent fires when an opponent enters a running round.
type GameJoinedEvent struct {
	base
	Asset   entities.Asset
	GameIdx int64
	Account entities.Account
	Side    entities.CoinSide
}

func NewGameJoinedEvent(asset entities.Asset, idx int64, account entities.Account, side entities.CoinSide) GameJoinedEvent {
	return GameJoinedEvent{base: base{ID: NewEventID()}, Asset: asset, GameIdx: idx, Account: account, Side: side}
}

func (e GameJoinedEvent) Type() EventType { return EventTypeGameJoined }

// GameFinishedEvent fires on reveal or timeout.
type GameFinishedEvent struct {
	base
	Asset       entities.Asset
	GameIdx     int64
	Timeout     bool
	WinningSide entities.CoinSide
	CreatorWon  bool
}

func NewGameFinishedEvent(asset entities.Asset, idx int64, timeout bool, side entities.CoinSide, creatorWon bool) GameFinishedEvent {
	return GameFinishedEvent{base: base{ID: NewEventID()}, Asset: asset, GameIdx: idx, Timeout: timeout, WinningSide: side, CreatorWon: creatorWon}
}

func (e GameFinishedEvent) Type() EventType { return EventTypeGameFinished }

// PrizeWithdrawnEvent fires once per successful pending-prize withdrawal.
type PrizeWithdrawnEvent struct {
	base
	Asset        entities.Asset
	Account      entities.Account
	GamesChecked int
	NetAmount    int64
}

func NewPrizeWithdrawnEvent(asset entities.Asset, account entities.Account, games int, net int64) PrizeWithdrawnEvent {
	return PrizeWithdrawnEvent{base: base{ID: NewEventID()}, Asset: asset, Account: account, GamesChecked: games, NetAmount: net}
}

func (e PrizeWithdrawnEvent) Type() EventType { return EventTypePrizeWithdrawn }

// RafflePlayedEvent fires after a successful draw.
type RafflePlayedEvent struct {
	base
	Asset  entities.Asset
	Winner entities.Account
	Prize  int64
}

func NewRafflePlayedEvent(asset entities.Asset, winner entities.Account, prize int64) RafflePlayedEvent {
	return RafflePlayedEvent{base: base{ID: NewEventID()}, Asset: asset, Winner: winner, Prize: prize}
}

func (e RafflePlayedEvent) Type() EventType { return EventTypeRafflePlayed }

// RaffleJackpotWithdrawnEvent fires when a raffle winner claims.
type RaffleJackpotWithdrawnEvent struct {
	base
	Asset   entities.Asset
	Account entities.Account
	Amount  int64
}

func NewRaffleJackpotWithdrawnEvent(asset entities.Asset, account entities.Account, amount int64) RaffleJackpotWithdrawnEvent {
	return RaffleJackpotWithdrawnEvent{base: base{ID: NewEventID()}, Asset: asset, Account: account, Amount: amount}
}

func (e RaffleJackpotWithdrawnEvent) Type() EventType { return EventTypeRaffleJackpotWithdrawn }
