package entities

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// RaffleState is the per-asset jackpot accumulator. The participant list and
// the jackpot drain to empty together at every successful draw.
type RaffleState struct {
	Asset   Asset `db:"asset"`
	Jackpot int64 `db:"jackpot"`
}

// RaffleParticipant is one jackpot entry. Duplicates are allowed: every prize
// withdrawal appends the withdrawer again, weighting their win probability by
// occurrence count.
type RaffleParticipant struct {
	ID      int64   `db:"id"`
	Asset   Asset   `db:"asset"`
	Account Account `db:"account"`
}

// RaffleResult records one historical draw.
type RaffleResult struct {
	Asset     Asset     `db:"asset"`
	Idx       int64     `db:"idx"`
	Winner    Account   `db:"winner"`
	Prize     int64     `db:"prize"`
	CreatedAt time.Time `db:"created_at"`
}

// RaffleAccount tracks an account's won-but-unclaimed and claimed jackpots.
type RaffleAccount struct {
	Asset          Asset   `db:"asset"`
	Account        Account `db:"account"`
	Pending        int64   `db:"pending"`
	WithdrawnTotal int64   `db:"withdrawn_total"`
}

// DrawIndex picks a uniform random index below n.
func DrawIndex(n int64) (int64, error) {
	idx, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		return 0, fmt.Errorf("failed to draw raffle index: %w", err)
	}
	return idx.Int64(), nil
}
