package repository

import (
	"context"
	"testing"

	"coinhouse/domain/entities"
	"coinhouse/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStakingRepository_Positions(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewStakingRepository(testDB.DB)
	ctx := context.Background()

	t.Run("unknown staker", func(t *testing.T) {
		position, err := repo.GetPosition(ctx, "0xalice")
		require.NoError(t, err)
		assert.Nil(t, position)
	})

	t.Run("upsert creates and overwrites", func(t *testing.T) {
		position := &entities.StakerPosition{
			Account:        "0xalice",
			Principal:      100,
			IncomeStartIdx: 2,
		}
		require.NoError(t, repo.UpsertPosition(ctx, position))

		position.Principal = 150
		position.PendingReward = 30
		position.IncomeStartIdx = 5
		require.NoError(t, repo.UpsertPosition(ctx, position))

		loaded, err := repo.GetPosition(ctx, "0xalice")
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, int64(150), loaded.Principal)
		assert.Equal(t, int64(30), loaded.PendingReward)
		assert.Equal(t, int64(5), loaded.IncomeStartIdx)
	})
}

func TestStakingRepository_Pool(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewStakingRepository(testDB.DB)
	ctx := context.Background()

	total, err := repo.TokensStaked(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	require.NoError(t, repo.AddTokensStaked(ctx, 500))
	require.NoError(t, repo.AddTokensStaked(ctx, -200))

	total, err = repo.TokensStaked(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(300), total)

	err = repo.AddTokensStaked(ctx, -400)
	assert.Error(t, err)

	total, err = repo.TokensStaked(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(300), total)
}

func TestStakingRepository_IncomeEvents(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewStakingRepository(testDB.DB)
	ctx := context.Background()

	count, err := repo.IncomeCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	for i, income := range []int64{100, 200, 300} {
		event := testutil.CreateTestIncomeEvent(income, 1000)
		require.NoError(t, repo.AppendIncome(ctx, event))
		assert.Equal(t, int64(i), event.Idx)
		assert.False(t, event.CreatedAt.IsZero())
	}

	count, err = repo.IncomeCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	t.Run("get by index", func(t *testing.T) {
		event, err := repo.GetIncome(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, event)
		assert.Equal(t, int64(200), event.Income)

		missing, err := repo.GetIncome(ctx, 9)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("list from cursor", func(t *testing.T) {
		events, err := repo.ListIncomeFrom(ctx, 1, 0)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, int64(1), events[0].Idx)
		assert.Equal(t, int64(2), events[1].Idx)
	})

	t.Run("limit bounds the walk", func(t *testing.T) {
		events, err := repo.ListIncomeFrom(ctx, 0, 2)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, int64(0), events[0].Idx)
		assert.Equal(t, int64(1), events[1].Idx)
	})
}
