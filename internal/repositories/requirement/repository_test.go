package requirement

import (
	"context"
	"testing"
	"time"

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

func createRequest() models.CreateRequirementRequest {
	return models.CreateRequirementRequest{
		Name:            "Asha Verma",
		Phone:           "+91 9000000000",
		RequirementType: models.RequirementTypeBuy,
		Category:        models.CategoryResidential,
		City:            "Pune",
	}
}

func TestAddStartsPending(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	req, err := repo.Add(ctx, createRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, req.ID)
	assert.Equal(t, models.RequirementStatusPending, req.Status)
	assert.False(t, req.SubmittedAt.IsZero())
	assert.Nil(t, req.ContactedAt)
	assert.Nil(t, req.ClosedAt)
}

func TestMarkContactedAndClosed(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	req, err := repo.Add(ctx, createRequest())
	require.NoError(t, err)

	contacted, err := repo.MarkContacted(ctx, req.ID, "called twice")
	require.NoError(t, err)
	assert.Equal(t, models.RequirementStatusContacted, contacted.Status)
	require.NotNil(t, contacted.ContactedAt)
	assert.Equal(t, "called twice", contacted.AdminNotes)

	closed, err := repo.MarkClosed(ctx, req.ID, "")
	require.NoError(t, err)
	assert.Equal(t, models.RequirementStatusClosed, closed.Status)
	require.NotNil(t, closed.ClosedAt)
	// Notes from the contact step survive an empty close.
	assert.Equal(t, "called twice", closed.AdminNotes)
}

func TestPendingFiltersByRequirementType(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	buy := createRequest()
	_, err := repo.Add(ctx, buy)
	require.NoError(t, err)

	rent := createRequest()
	rent.RequirementType = models.RequirementTypeRent
	_, err = repo.Add(ctx, rent)
	require.NoError(t, err)

	contacted, err := repo.Add(ctx, createRequest())
	require.NoError(t, err)
	_, err = repo.MarkContacted(ctx, contacted.ID, "")
	require.NoError(t, err)

	assert.Len(t, repo.Pending(ctx, ""), 2)
	assert.Len(t, repo.Pending(ctx, models.RequirementTypeRent), 1)
	assert.Len(t, repo.Pending(ctx, models.RequirementTypeBuy), 1)
}

func TestAllSortsNewestFirst(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	first, err := repo.Add(ctx, createRequest())
	require.NoError(t, err)
	second, err := repo.Add(ctx, createRequest())
	require.NoError(t, err)

	// Force distinct timestamps; Add stamps time.Now and two calls can land
	// in the same tick.
	repo.mu.Lock()
	repo.items[0].SubmittedAt = time.Now().UTC().Add(-time.Hour)
	repo.mu.Unlock()

	all := repo.All(ctx)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
}

func TestSoftDeleteKeepsRecordInAll(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	req, err := repo.Add(ctx, createRequest())
	require.NoError(t, err)

	require.NoError(t, repo.SoftDelete(ctx, req.ID))

	all := repo.All(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, models.RequirementStatusDeleted, all[0].Status)
	assert.Empty(t, repo.Pending(ctx, ""))
}

func TestUpdateMergesSetFieldsOnly(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	req, err := repo.Add(ctx, createRequest())
	require.NoError(t, err)

	budgetMax := int64(7000000)
	city := "Mumbai"
	updated, err := repo.Update(ctx, req.ID, models.UpdateRequirementRequest{
		City:      &city,
		BudgetMax: &budgetMax,
	})
	require.NoError(t, err)

	assert.Equal(t, "Mumbai", updated.City)
	require.NotNil(t, updated.BudgetMax)
	assert.Equal(t, int64(7000000), *updated.BudgetMax)
	assert.Equal(t, "Asha Verma", updated.Name)
}

func TestNotFoundReturns404(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	_, err := repo.MarkContacted(ctx, "missing", "")
	require.Error(t, err)
	assert.Equal(t, 404, httperror.GetStatusCode(err))
}
