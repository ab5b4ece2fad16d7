package entities

import "time"

// IncomeEvent is one recognized inflow to the staking pool, tagged with the
// total principal staked at the moment it was recorded. Proportional rewards
// are computed by folding over these events instead of touching every staker
// on every inflow.
type IncomeEvent struct {
	Idx          int64     `db:"idx"`
	Income       int64     `db:"income"`
	TokensStaked int64     `db:"tokens_staked"`
	CreatedAt    time.Time `db:"created_at"`
}

// StakerPosition is one account's staking state. IncomeStartIdx is the cursor
// into the income-event sequence marking the next unconsumed event; it never
// decreases.
type StakerPosition struct {
	Account        Account `db:"account"`
	Principal      int64   `db:"principal"`
	PendingReward  int64   `db:"pending_reward"`
	WithdrawnTotal int64   `db:"withdrawn_total"`
	IncomeStartIdx int64   `db:"income_start_idx"`
}

// RewardOver folds the staker's proportional share over events, which must
// start at the position's cursor. maxLoop bounds the walk (0 = all). Returns
// the accrued reward and the new cursor value.
func (p *StakerPosition) RewardOver(events []*IncomeEvent, maxLoop int64) (int64, int64) {
	cursor := p.IncomeStartIdx
	if p.Principal == 0 {
		return 0, cursor
	}
	var reward int64
	for i, ev := range events {
		if maxLoop > 0 && int64(i) >= maxLoop {
			break
		}
		if ev.TokensStaked > 0 {
			// Principal never exceeds the event's pool snapshot, so the
			// 128-bit share fits int64.
			reward += mulDiv(ev.Income, p.Principal, ev.TokensStaked)
		}
		cursor = ev.Idx + 1
	}
	return reward, cursor
}
