package testutil

import (
	"time"

	"coinhouse/domain/entities"
)

// CreateTestGame creates a running game with default values
func CreateTestGame(asset entities.Asset, creator entities.Account, stake int64) *entities.Game {
	return &entities.Game{
		Asset:      asset,
		Running:    true,
		Commitment: "aabbcc",
		Creator:    creator,
		Stake:      stake,
		StartTime:  time.Now().UTC(),
	}
}

// CreateTestParticipant creates an opponent entry for a game
func CreateTestParticipant(asset entities.Asset, gameIdx int64, account entities.Account, side entities.CoinSide) *entities.GameParticipant {
	return &entities.GameParticipant{
		Asset:   asset,
		GameIdx: gameIdx,
		Account: account,
		Side:    side,
	}
}

// CreateTestIncomeEvent creates an income event with a given pool size
func CreateTestIncomeEvent(income, tokensStaked int64) *entities.IncomeEvent {
	return &entities.IncomeEvent{
		Income:       income,
		TokensStaked: tokensStaked,
	}
}
