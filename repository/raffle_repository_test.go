package repository

import (
	"context"
	"testing"

	"coinhouse/domain/entities"
	"coinhouse/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRaffleRepository_GetState_LazyCreate(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewRaffleRepository(testDB.DB)
	ctx := context.Background()

	state, err := repo.GetState(ctx, entities.AssetNative)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, entities.AssetNative, state.Asset)
	assert.Equal(t, int64(0), state.Jackpot)

	require.NoError(t, repo.AddJackpot(ctx, entities.AssetNative, 55))

	state, err = repo.GetState(ctx, entities.AssetNative)
	require.NoError(t, err)
	assert.Equal(t, int64(55), state.Jackpot)
}

func TestRaffleRepository_ParticipantsKeepEntryOrder(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewRaffleRepository(testDB.DB)
	ctx := context.Background()

	require.NoError(t, repo.AddParticipant(ctx, entities.AssetNative, "0xalice"))
	require.NoError(t, repo.AddParticipant(ctx, entities.AssetNative, "0xbob"))
	// Repeat entries are separate tickets.
	require.NoError(t, repo.AddParticipant(ctx, entities.AssetNative, "0xalice"))

	participants, err := repo.ListParticipants(ctx, entities.AssetNative)
	require.NoError(t, err)
	assert.Equal(t, []entities.Account{"0xalice", "0xbob", "0xalice"}, participants)

	count, err := repo.CountParticipants(ctx, entities.AssetNative)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestRaffleRepository_ClearRound(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewRaffleRepository(testDB.DB)
	ctx := context.Background()

	require.NoError(t, repo.AddJackpot(ctx, entities.AssetNative, 100))
	require.NoError(t, repo.AddParticipant(ctx, entities.AssetNative, "0xalice"))
	require.NoError(t, repo.AddJackpot(ctx, "0xtoken", 30))
	require.NoError(t, repo.AddParticipant(ctx, "0xtoken", "0xbob"))

	require.NoError(t, repo.ClearRound(ctx, entities.AssetNative))

	state, err := repo.GetState(ctx, entities.AssetNative)
	require.NoError(t, err)
	assert.Equal(t, int64(0), state.Jackpot)

	count, err := repo.CountParticipants(ctx, entities.AssetNative)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// Other assets stay untouched.
	state, err = repo.GetState(ctx, "0xtoken")
	require.NoError(t, err)
	assert.Equal(t, int64(30), state.Jackpot)

	count, err = repo.CountParticipants(ctx, "0xtoken")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRaffleRepository_AppendResultAssignsSequentialIndexes(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewRaffleRepository(testDB.DB)
	ctx := context.Background()

	first := &entities.RaffleResult{Asset: entities.AssetNative, Winner: "0xalice", Prize: 100}
	require.NoError(t, repo.AppendResult(ctx, first))
	assert.Equal(t, int64(0), first.Idx)
	assert.False(t, first.CreatedAt.IsZero())

	second := &entities.RaffleResult{Asset: entities.AssetNative, Winner: "0xbob", Prize: 40}
	require.NoError(t, repo.AppendResult(ctx, second))
	assert.Equal(t, int64(1), second.Idx)

	count, err := repo.CountResults(ctx, entities.AssetNative)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	loaded, err := repo.GetResult(ctx, entities.AssetNative, 1)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, entities.Account("0xbob"), loaded.Winner)
	assert.Equal(t, int64(40), loaded.Prize)

	missing, err := repo.GetResult(ctx, entities.AssetNative, 5)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRaffleRepository_AccountPending(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewRaffleRepository(testDB.DB)
	ctx := context.Background()

	require.NoError(t, repo.AddAccountPending(ctx, entities.AssetNative, "0xalice", 60))
	require.NoError(t, repo.AddAccountPending(ctx, entities.AssetNative, "0xalice", 40))

	settled, err := repo.WithdrawAccount(ctx, entities.AssetNative, "0xalice")
	require.NoError(t, err)
	assert.Equal(t, int64(100), settled)

	acc, err := repo.GetAccount(ctx, entities.AssetNative, "0xalice")
	require.NoError(t, err)
	require.NotNil(t, acc)
	assert.Equal(t, int64(0), acc.Pending)
	assert.Equal(t, int64(100), acc.WithdrawnTotal)

	settled, err = repo.WithdrawAccount(ctx, entities.AssetNative, "0xalice")
	require.NoError(t, err)
	assert.Equal(t, int64(0), settled)
}
