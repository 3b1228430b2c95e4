package seed

import (
	"context"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/veranda/internal/repositories/amenity"
	"github.com/Ramsey-B/veranda/internal/repositories/location"
	"github.com/Ramsey-B/veranda/internal/repositories/propertytype"
	"github.com/Ramsey-B/veranda/pkg/models"
	"github.com/Ramsey-B/veranda/pkg/storage"
)

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func TestReferenceDataSeedsEmptyTables(t *testing.T) {
	bridge := storage.NewBridge(storage.NewMemoryBackend(), "test", testLogger())
	logger := testLogger()
	ctx := context.Background()

	locations := location.NewRepository(bridge, logger)
	propertyTypes := propertytype.NewRepository(bridge, logger)
	amenities := amenity.NewRepository(bridge, logger)

	ReferenceData(ctx, locations, propertyTypes, amenities, logger)

	assert.Equal(t, len(defaultLocations), locations.Count(ctx))
	assert.Equal(t, len(defaultPropertyTypes), propertyTypes.Count(ctx))
	assert.Equal(t, len(defaultAmenities), amenities.Count(ctx))

	// Every seeded row is active and visible to the public forms.
	assert.Len(t, locations.List(ctx, true), len(defaultLocations))
}

func TestReferenceDataIsIdempotent(t *testing.T) {
	bridge := storage.NewBridge(storage.NewMemoryBackend(), "test", testLogger())
	logger := testLogger()
	ctx := context.Background()

	locations := location.NewRepository(bridge, logger)
	propertyTypes := propertytype.NewRepository(bridge, logger)
	amenities := amenity.NewRepository(bridge, logger)

	ReferenceData(ctx, locations, propertyTypes, amenities, logger)
	ReferenceData(ctx, locations, propertyTypes, amenities, logger)

	assert.Equal(t, len(defaultLocations), locations.Count(ctx))
}

func TestReferenceDataSkipsNonEmptyTables(t *testing.T) {
	bridge := storage.NewBridge(storage.NewMemoryBackend(), "test", testLogger())
	logger := testLogger()
	ctx := context.Background()

	locations := location.NewRepository(bridge, logger)
	_, err := locations.Add(ctx, models.CreateLocationRequest{City: "Nagpur"})
	require.NoError(t, err)

	propertyTypes := propertytype.NewRepository(bridge, logger)
	amenities := amenity.NewRepository(bridge, logger)

	ReferenceData(ctx, locations, propertyTypes, amenities, logger)

	// The pre-populated table keeps its single row; the empty ones seed.
	assert.Equal(t, 1, locations.Count(ctx))
	assert.Equal(t, len(defaultPropertyTypes), propertyTypes.Count(ctx))
}
