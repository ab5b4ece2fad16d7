package application

import (
	"context"
	"testing"

	"coinhouse/config"
	"coinhouse/domain/entities"
	"coinhouse/domain/events"
	"coinhouse/repository"
	"coinhouse/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEngine(t *testing.T) *Engine {
	t.Helper()

	cfg := config.NewTestConfig()
	config.SetTestConfig(cfg)
	t.Cleanup(config.ResetConfig)

	testDB := testutil.SetupTestDatabase(t)
	factory := repository.NewUnitOfWorkFactory(testDB.DB, events.NewBus())
	return NewEngine(factory)
}

func TestEngine_FullGameSettlement(t *testing.T) {
	engine := setupEngine(t)
	ctx := context.Background()

	const (
		owner   = entities.Account("0xowner")
		creator = entities.Account("0xcreator")
		bob     = entities.Account("0xbob")
		staker  = entities.Account("0xstaker")
		stake   = int64(110_000_000_000_000_000)
	)

	// Fund everyone and put one staker in the pool so game income has a payee.
	require.NoError(t, engine.Mint(ctx, owner, entities.AssetNative, creator, stake))
	require.NoError(t, engine.Mint(ctx, owner, entities.AssetNative, bob, stake))
	require.NoError(t, engine.Mint(ctx, owner, "0xstake", staker, 1000))
	require.NoError(t, engine.Stake(ctx, staker, 1000))

	seed := []byte("round-one")
	commitment := entities.MakeCommitment(entities.SideTails, seed)

	game, err := engine.StartGame(ctx, entities.AssetNative, creator, stake, commitment, entities.AccountZero)
	require.NoError(t, err)
	assert.Equal(t, int64(0), game.Idx)

	_, err = engine.JoinGame(ctx, entities.AssetNative, bob, stake, entities.SideHeads, entities.AccountZero)
	require.NoError(t, err)

	// Stakes are escrowed on entry.
	balance, err := engine.BalanceOf(ctx, entities.AssetNative, creator)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)

	game, err = engine.PlayGame(ctx, entities.AssetNative, creator, entities.SideTails, seed)
	require.NoError(t, err)
	assert.False(t, game.Running)
	assert.True(t, game.CreatorWon)
	assert.Equal(t, int64(165_000_000_000_000_000), game.WinnerPrize)
	assert.Equal(t, int64(55_000_000_000_000_000), game.LoserRefund)

	t.Run("winner settles with fees taken", func(t *testing.T) {
		result, err := engine.WithdrawPendingPrizes(ctx, entities.AssetNative, creator, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, result.GamesChecked)
		assert.Equal(t, int64(165_000_000_000_000_000), result.GrossAmount)
		assert.Equal(t, int64(156_750_000_000_000_000), result.NetAmount)

		balance, err := engine.BalanceOf(ctx, entities.AssetNative, creator)
		require.NoError(t, err)
		assert.Equal(t, int64(156_750_000_000_000_000), balance)
	})

	t.Run("loser refund is fee free", func(t *testing.T) {
		result, err := engine.WithdrawPendingPrizes(ctx, entities.AssetNative, bob, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(55_000_000_000_000_000), result.GrossAmount)
		assert.Equal(t, int64(55_000_000_000_000_000), result.NetAmount)
	})

	t.Run("fees accrued per role", func(t *testing.T) {
		// Referral was unset, so its cut lands with the owner alongside the dev cut.
		pending, err := engine.FeePending(ctx, entities.AssetNative, entities.FeeRoleDev, owner)
		require.NoError(t, err)
		assert.Equal(t, int64(1_650_000_000_000_000), pending)

		pending, err = engine.FeePending(ctx, entities.AssetNative, entities.FeeRoleReferral, owner)
		require.NoError(t, err)
		assert.Equal(t, int64(1_650_000_000_000_000), pending)

		pending, err = engine.FeePending(ctx, entities.AssetNative, entities.FeeRolePartner, "0xpartner")
		require.NoError(t, err)
		assert.Equal(t, int64(1_650_000_000_000_000), pending)

		settled, err := engine.WithdrawDevFee(ctx, entities.AssetNative, owner)
		require.NoError(t, err)
		assert.Equal(t, int64(1_650_000_000_000_000), settled)
	})

	t.Run("staking pool earned the income", func(t *testing.T) {
		count, err := engine.IncomeCount(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		event, err := engine.IncomeInfo(ctx, 0)
		require.NoError(t, err)
		require.NotNil(t, event)
		assert.Equal(t, int64(825_000_000_000_000), event.Income)
		assert.Equal(t, int64(1000), event.TokensStaked)

		reward, _, err := engine.CalculateReward(ctx, staker, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(825_000_000_000_000), reward)

		withdrawn, err := engine.WithdrawReward(ctx, staker, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(825_000_000_000_000), withdrawn)
	})

	t.Run("raffle residue drains to the winner", func(t *testing.T) {
		jackpot, err := engine.RaffleJackpot(ctx, entities.AssetNative)
		require.NoError(t, err)
		assert.Equal(t, int64(2_475_000_000_000_000), jackpot)

		// The settling winner holds the only ticket.
		result, err := engine.RunRaffle(ctx, entities.AssetNative, owner)
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, creator, result.Winner)
		assert.Equal(t, int64(2_475_000_000_000_000), result.Prize)

		settled, err := engine.WithdrawRaffleJackpots(ctx, entities.AssetNative, creator)
		require.NoError(t, err)
		assert.Equal(t, int64(2_475_000_000_000_000), settled)
	})
}

func TestEngine_OwnerOnlyOperations(t *testing.T) {
	engine := setupEngine(t)
	ctx := context.Background()

	assert.ErrorIs(t, engine.Mint(ctx, "0xmallory", entities.AssetNative, "0xmallory", 100), entities.ErrNotOwner)
	assert.ErrorIs(t, engine.ReplenishRewardPool(ctx, "0xmallory", 100), entities.ErrNotOwner)
	assert.ErrorIs(t, engine.AddSupportedToken(ctx, "0xmallory", "0xnew"), entities.ErrNotOwner)
	assert.ErrorIs(t, engine.SetPartner(ctx, "0xmallory", "0xmallory"), entities.ErrNotOwner)

	_, err := engine.RunRaffle(ctx, entities.AssetNative, "0xmallory")
	assert.ErrorIs(t, err, entities.ErrNotOwner)
}

func TestEngine_AddSupportedToken(t *testing.T) {
	engine := setupEngine(t)
	ctx := context.Background()

	assert.ErrorIs(t, engine.AddSupportedToken(ctx, "0xowner", entities.AssetNative), entities.ErrUnsupportedAsset)

	require.NoError(t, engine.AddSupportedToken(ctx, "0xowner", "0xnew"))
	assert.True(t, config.Get().IsSupportedToken("0xnew"))
}

func TestEngine_TimeoutSweep(t *testing.T) {
	engine := setupEngine(t)
	ctx := context.Background()

	const (
		owner   = entities.Account("0xowner")
		creator = entities.Account("0xcreator")
		bob     = entities.Account("0xbob")
		stake   = int64(110_000_000_000_000_000)
	)

	require.NoError(t, engine.Mint(ctx, owner, entities.AssetNative, creator, stake))
	require.NoError(t, engine.Mint(ctx, owner, entities.AssetNative, bob, stake))

	commitment := entities.MakeCommitment(entities.SideHeads, []byte("never revealed"))
	_, err := engine.StartGame(ctx, entities.AssetNative, creator, stake, commitment, entities.AccountZero)
	require.NoError(t, err)
	_, err = engine.JoinGame(ctx, entities.AssetNative, bob, stake, entities.SideTails, entities.AccountZero)
	require.NoError(t, err)

	// Still inside the play window.
	closed, err := engine.SweepTimeouts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, closed)

	game, err := engine.GameInfo(ctx, entities.AssetNative, 0)
	require.NoError(t, err)
	require.NotNil(t, game)
	assert.True(t, game.Running)
}
