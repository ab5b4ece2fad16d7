package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewardOver_Proportional(t *testing.T) {
	position := &StakerPosition{Account: "0xalice", Principal: 250}

	events := []*IncomeEvent{
		{Idx: 0, Income: 1000, TokensStaked: 1000},
		{Idx: 1, Income: 500, TokensStaked: 500},
	}

	reward, cursor := position.RewardOver(events, 0)

	// 25% of 1000 plus 50% of 500.
	assert.Equal(t, int64(500), reward)
	assert.Equal(t, int64(2), cursor)
}

func TestRewardOver_MaxLoopBoundsTheWalk(t *testing.T) {
	position := &StakerPosition{Account: "0xalice", Principal: 100}

	events := []*IncomeEvent{
		{Idx: 0, Income: 100, TokensStaked: 100},
		{Idx: 1, Income: 100, TokensStaked: 100},
		{Idx: 2, Income: 100, TokensStaked: 100},
	}

	reward, cursor := position.RewardOver(events, 2)

	assert.Equal(t, int64(200), reward)
	assert.Equal(t, int64(2), cursor)

	// The remaining event is picked up by a subsequent walk.
	position.IncomeStartIdx = cursor
	reward, cursor = position.RewardOver(events[2:], 2)
	assert.Equal(t, int64(100), reward)
	assert.Equal(t, int64(3), cursor)
}

func TestRewardOver_ZeroPrincipal(t *testing.T) {
	position := &StakerPosition{Account: "0xalice", IncomeStartIdx: 5}

	reward, cursor := position.RewardOver([]*IncomeEvent{
		{Idx: 5, Income: 100, TokensStaked: 100},
	}, 0)

	assert.Equal(t, int64(0), reward)
	assert.Equal(t, int64(5), cursor)
}

func TestRewardOver_WeiScalePrincipal(t *testing.T) {
	// income*principal exceeds int64; the proportional share must not wrap.
	position := &StakerPosition{Account: "0xwhale", Principal: 1_000_000_000_000_000_000}

	reward, cursor := position.RewardOver([]*IncomeEvent{
		{Idx: 0, Income: 825_000_000_000_000, TokensStaked: 2_000_000_000_000_000_000},
	}, 0)

	// Half the pool earns half the income.
	assert.Equal(t, int64(412_500_000_000_000), reward)
	assert.Equal(t, int64(1), cursor)
}

func TestRewardOver_TruncatesShares(t *testing.T) {
	position := &StakerPosition{Account: "0xalice", Principal: 1}

	reward, _ := position.RewardOver([]*IncomeEvent{
		{Idx: 0, Income: 2, TokensStaked: 3},
	}, 0)

	assert.Equal(t, int64(0), reward)
}

func TestDrawIndex_InRange(t *testing.T) {
	for i := 0; i < 50; i++ {
		idx, err := DrawIndex(7)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, idx, int64(0))
		assert.Less(t, idx, int64(7))
	}
}
