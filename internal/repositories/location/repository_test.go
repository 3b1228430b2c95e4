package location

import (
	"context"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/veranda/pkg/models"
	"github.com/Ramsey-B/veranda/pkg/storage"
)

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func newTestRepository() *Repository {
	bridge := storage.NewBridge(storage.NewMemoryBackend(), "test", testLogger())
	return NewRepository(bridge, testLogger())
}

func TestAddDefaultsToActive(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	loc, err := repo.Add(ctx, models.CreateLocationRequest{
		City:  "Pune",
		Areas: []string{"Baner", "Wakad"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, loc.ID)
	assert.True(t, loc.IsActive)
	assert.Equal(t, []string{"Baner", "Wakad"}, loc.Areas)

	inactive := false
	loc2, err := repo.Add(ctx, models.CreateLocationRequest{
		City:     "Mumbai",
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, loc2.IsActive)
}

func TestUpdateReplacesAreasWholesale(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	loc, err := repo.Add(ctx, models.CreateLocationRequest{
		City:  "Pune",
		Areas: []string{"Baner", "Wakad"},
	})
	require.NoError(t, err)

	areas := []string{"Kharadi"}
	updated, err := repo.Update(ctx, loc.ID, models.UpdateLocationRequest{Areas: &areas})
	require.NoError(t, err)

	assert.Equal(t, []string{"Kharadi"}, updated.Areas)
	assert.Equal(t, "Pune", updated.City)
}

func TestListActiveOnlyExcludesInactive(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	active, err := repo.Add(ctx, models.CreateLocationRequest{City: "Pune"})
	require.NoError(t, err)

	inactive := false
	_, err = repo.Add(ctx, models.CreateLocationRequest{City: "Mumbai", IsActive: &inactive})
	require.NoError(t, err)

	assert.Len(t, repo.List(ctx, false), 2)

	activeOnly := repo.List(ctx, true)
	require.Len(t, activeOnly, 1)
	assert.Equal(t, active.ID, activeOnly[0].ID)
}

func TestDeleteIsPhysical(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	loc, err := repo.Add(ctx, models.CreateLocationRequest{City: "Pune"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, loc.ID))

	assert.Empty(t, repo.List(ctx, false))
	assert.Equal(t, 0, repo.Count(ctx))

	_, err = repo.GetByID(ctx, loc.ID)
	require.Error(t, err)
	assert.Equal(t, 404, httperror.GetStatusCode(err))

	err = repo.Delete(ctx, loc.ID)
	assert.Equal(t, 404, httperror.GetStatusCode(err))
}

func TestDeactivateKeepsRowQueryable(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	loc, err := repo.Add(ctx, models.CreateLocationRequest{City: "Pune"})
	require.NoError(t, err)

	inactive := false
	_, err = repo.Update(ctx, loc.ID, models.UpdateLocationRequest{IsActive: &inactive})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, loc.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Empty(t, repo.List(ctx, true))
}
