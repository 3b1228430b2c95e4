package seed

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/veranda/internal/repositories/amenity"
	"github.com/Ramsey-B/veranda/internal/repositories/location"
	"github.com/Ramsey-B/veranda/internal/repositories/propertytype"
	"github.com/Ramsey-B/veranda/pkg/models"
)

var defaultLocations = []models.CreateLocationRequest{
	{City: "Pune", Areas: []string{"Baner", "Wakad", "Kharadi", "Hinjewadi", "Viman Nagar"}},
	{City: "Mumbai", Areas: []string{"Andheri", "Bandra", "Powai", "Thane", "Navi Mumbai"}},
	{City: "Bangalore", Areas: []string{"Whitefield", "Koramangala", "HSR Layout", "Indiranagar"}},
}

var defaultPropertyTypes = []models.CreatePropertyTypeRequest{
	{Name: "Flat", Category: models.CategoryResidential},
	{Name: "Villa", Category: models.CategoryResidential},
	{Name: "Row House", Category: models.CategoryResidential},
	{Name: "Plot", Category: models.CategoryResidential},
	{Name: "Office", Category: models.CategoryCommercial},
	{Name: "Shop", Category: models.CategoryCommercial},
	{Name: "Warehouse", Category: models.CategoryCommercial},
}

var defaultAmenities = []models.CreateAmenityRequest{
	{Name: "Parking"},
	{Name: "Gym"},
	{Name: "Swimming Pool"},
	{Name: "Lift"},
	{Name: "Power Backup"},
	{Name: "Security"},
	{Name: "Clubhouse"},
	{Name: "Children's Play Area"},
}

// ReferenceData populates empty reference tables with the default lookup
// rows. Tables that already hold rows are left untouched, so repeated
// bootstraps do not duplicate entries.
func ReferenceData(
	ctx context.Context,
	locations location.LocationRepository,
	propertyTypes propertytype.PropertyTypeRepository,
	amenities amenity.AmenityRepository,
	logger ectologger.Logger,
) {
	if locations.Count(ctx) == 0 {
		for _, req := range defaultLocations {
			if _, err := locations.Add(ctx, req); err != nil {
				logger.WithContext(ctx).WithError(err).Error("failed to seed location")
			}
		}
		logger.WithContext(ctx).WithField("count", len(defaultLocations)).Info("seeded default locations")
	}

	if propertyTypes.Count(ctx) == 0 {
		for _, req := range defaultPropertyTypes {
			if _, err := propertyTypes.Add(ctx, req); err != nil {
				logger.WithContext(ctx).WithError(err).Error("failed to seed property type")
			}
		}
		logger.WithContext(ctx).WithField("count", len(defaultPropertyTypes)).Info("seeded default property types")
	}

	if amenities.Count(ctx) == 0 {
		for _, req := range defaultAmenities {
			if _, err := amenities.Add(ctx, req); err != nil {
				logger.WithContext(ctx).WithError(err).Error("failed to seed amenity")
			}
		}
		logger.WithContext(ctx).WithField("count", len(defaultAmenities)).Info("seeded default amenities")
	}
}
