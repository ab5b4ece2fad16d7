package repository

import (
	"context"
	"testing"

	"coinhouse/domain/entities"
	"coinhouse/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeeRepository_AddPendingAccumulates(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewFeeRepository(testDB.DB)
	ctx := context.Background()

	require.NoError(t, repo.AddPending(ctx, entities.AssetNative, entities.FeeRoleDev, "0xowner", 100))
	require.NoError(t, repo.AddPending(ctx, entities.AssetNative, entities.FeeRoleDev, "0xowner", 25))

	acc, err := repo.Get(ctx, entities.AssetNative, entities.FeeRoleDev, "0xowner")
	require.NoError(t, err)
	require.NotNil(t, acc)
	assert.Equal(t, int64(125), acc.Pending)
	assert.Equal(t, int64(0), acc.WithdrawnTotal)
}

func TestFeeRepository_Withdraw(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewFeeRepository(testDB.DB)
	ctx := context.Background()

	require.NoError(t, repo.AddPending(ctx, entities.AssetNative, entities.FeeRoleReferral, "0xref", 80))

	t.Run("settles the pending amount", func(t *testing.T) {
		settled, err := repo.Withdraw(ctx, entities.AssetNative, entities.FeeRoleReferral, "0xref")
		require.NoError(t, err)
		assert.Equal(t, int64(80), settled)

		acc, err := repo.Get(ctx, entities.AssetNative, entities.FeeRoleReferral, "0xref")
		require.NoError(t, err)
		require.NotNil(t, acc)
		assert.Equal(t, int64(0), acc.Pending)
		assert.Equal(t, int64(80), acc.WithdrawnTotal)
	})

	t.Run("second withdrawal settles nothing", func(t *testing.T) {
		settled, err := repo.Withdraw(ctx, entities.AssetNative, entities.FeeRoleReferral, "0xref")
		require.NoError(t, err)
		assert.Equal(t, int64(0), settled)
	})

	t.Run("unknown accumulator settles nothing", func(t *testing.T) {
		settled, err := repo.Withdraw(ctx, entities.AssetNative, entities.FeeRoleDev, "0xnobody")
		require.NoError(t, err)
		assert.Equal(t, int64(0), settled)
	})
}

func TestFeeRepository_AccumulatorsAreScopedPerRole(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewFeeRepository(testDB.DB)
	ctx := context.Background()

	require.NoError(t, repo.AddPending(ctx, entities.AssetNative, entities.FeeRoleDev, "0xowner", 10))
	require.NoError(t, repo.AddPending(ctx, entities.AssetNative, entities.FeeRolePartner, "0xowner", 20))

	dev, err := repo.Get(ctx, entities.AssetNative, entities.FeeRoleDev, "0xowner")
	require.NoError(t, err)
	assert.Equal(t, int64(10), dev.Pending)

	partner, err := repo.Get(ctx, entities.AssetNative, entities.FeeRolePartner, "0xowner")
	require.NoError(t, err)
	assert.Equal(t, int64(20), partner.Pending)

	missing, err := repo.Get(ctx, entities.AssetNative, entities.FeeRoleReferral, "0xowner")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
