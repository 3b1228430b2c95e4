package propertytype

import (
	"context"
	"testing"

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

func TestPropertyTypeLifecycle(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	flat, err := repo.Add(ctx, models.CreatePropertyTypeRequest{
		Name:     "Flat",
		Category: models.CategoryResidential,
	})
	require.NoError(t, err)
	assert.True(t, flat.IsActive)
	assert.Equal(t, models.CategoryResidential, flat.Category)

	category := models.CategoryCommercial
	updated, err := repo.Update(ctx, flat.ID, models.UpdatePropertyTypeRequest{Category: &category})
	require.NoError(t, err)
	assert.Equal(t, models.CategoryCommercial, updated.Category)
	assert.Equal(t, "Flat", updated.Name)

	require.NoError(t, repo.Delete(ctx, flat.ID))
	assert.Empty(t, repo.List(ctx, false))
}
