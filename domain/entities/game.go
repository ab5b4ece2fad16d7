package entities

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// CoinSide is a coin-flip pick.
type CoinSide int16

const (
	SideNone  CoinSide = 0
	SideHeads CoinSide = 1
	SideTails CoinSide = 2
)

// Valid returns true for a playable side.
func (s CoinSide) Valid() bool {
	return s == SideHeads || s == SideTails
}

func (s CoinSide) String() string {
	switch s {
	case SideHeads:
		return "heads"
	case SideTails:
		return "tails"
	default:
		return "none"
	}
}

// MakeCommitment builds the creator's commitment: the hex digest of the
// chosen side concatenated with the hash of the creator's secret seed. The
// seed stays hidden until reveal so opponents cannot front-run the outcome.
func MakeCommitment(side CoinSide, seed []byte) string {
	seedHash := sha256.Sum256(seed)
	h := sha256.New()
	h.Write([]byte{byte(side)})
	h.Write(seedHash[:])
	return hex.EncodeToString(h.Sum(nil))
}

// Game is one coin-flip round for an asset. Games are retained forever as
// immutable history once they stop running.
type Game struct {
	Asset      Asset     `db:"asset"`
	Idx        int64     `db:"idx"`
	Running    bool      `db:"running"`
	Commitment string    `db:"commitment"`
	Creator    Account   `db:"creator"`
	Stake      int64     `db:"stake"`
	StartTime  time.Time `db:"start_time"`
	Heads      int64     `db:"heads"`
	Tails      int64     `db:"tails"`

	// Resolution outcome. Zero until the game stops running.
	Timeout     bool     `db:"timeout"`
	WinningSide CoinSide `db:"winning_side"`
	CreatorWon  bool     `db:"creator_won"`
	// WinnerPrize is the gross amount each winning participant may claim,
	// LoserRefund the amount each losing participant reclaims.
	WinnerPrize int64 `db:"winner_prize"`
	LoserRefund int64 `db:"loser_refund"`

	CreatedAt time.Time `db:"created_at"`
}

// IsExpired reports whether the game has outlived maxDuration at time now.
func (g *Game) IsExpired(now time.Time, maxDuration time.Duration) bool {
	return !now.Before(g.StartTime.Add(maxDuration))
}

// VerifyReveal checks the revealed side and seed against the commitment.
func (g *Game) VerifyReveal(side CoinSide, seed []byte) bool {
	return MakeCommitment(side, seed) == g.Commitment
}

// Opponents returns the number of joined opponents.
func (g *Game) Opponents() int64 {
	return g.Heads + g.Tails
}

// GameResolution is the settled outcome of a round.
type GameResolution struct {
	WinningSide CoinSide
	CreatorWon  bool
	WinnerPrize int64
	LoserRefund int64
	// JackpotDust is the integer-division remainder that cannot be split
	// evenly; it flows into the raffle jackpot.
	JackpotDust int64
}

// Resolve settles the round for the revealed side. Opponents guess the
// creator's committed side: when a strict majority guessed right the guessers
// win and the creator loses; on a tie or a wrong majority the creator wins
// together with the correct guessers. Losers forfeit half their stake to the
// winners and reclaim the rest.
func (g *Game) Resolve(revealed CoinSide) GameResolution {
	correct := g.Heads
	if revealed == SideTails {
		correct = g.Tails
	}
	wrong := g.Opponents() - correct

	res := GameResolution{WinningSide: revealed, CreatorWon: correct <= wrong}

	winners := correct
	losers := wrong
	if res.CreatorWon {
		winners++
	} else {
		losers++
	}

	if winners == 0 {
		// Cannot happen: the creator is a winner whenever correct <= wrong,
		// and correct > wrong requires correct >= 1.
		return res
	}

	lost := losers * g.Stake
	bonus := lost / 2
	refundPool := lost - bonus

	res.WinnerPrize = g.Stake + bonus/winners
	res.JackpotDust = bonus % winners
	if losers > 0 {
		res.LoserRefund = refundPool / losers
		res.JackpotDust += refundPool % losers
	}
	return res
}

// GameParticipant records one account's entry in a game, including the
// creator. Side stays SideNone for the creator until reveal. Checked flips
// to true once the participation has been consumed by a prize withdrawal.
type GameParticipant struct {
	Asset    Asset     `db:"asset"`
	GameIdx  int64     `db:"game_idx"`
	Account  Account   `db:"account"`
	Side     CoinSide  `db:"side"`
	Creator  bool      `db:"is_creator"`
	Referral Account   `db:"referral"`
	Checked  bool      `db:"checked"`
	JoinedAt time.Time `db:"joined_at"`
}

// PrizeOf returns the gross claimable amount for a participant of a finished
// game and whether that amount is a winning prize (fee-bearing) rather than a
// refund.
func (g *Game) PrizeOf(p *GameParticipant) (amount int64, winning bool) {
	if g.Running {
		return 0, false
	}
	if g.Timeout {
		// Creator's stake is carried into the next game; opponents reclaim
		// their stake in full.
		if p.Creator {
			return 0, false
		}
		return g.Stake, false
	}
	won := p.Side == g.WinningSide
	if p.Creator {
		won = g.CreatorWon
	}
	if won {
		if g.Opponents() == 0 {
			// Nobody joined; the creator reclaims the stake as a refund.
			return g.WinnerPrize, false
		}
		return g.WinnerPrize, true
	}
	return g.LoserRefund, false
}
