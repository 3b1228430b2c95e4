package handlers

import (
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/veranda/internal/repositories/amenity"
	"github.com/Ramsey-B/veranda/internal/repositories/location"
	"github.com/Ramsey-B/veranda/internal/repositories/propertytype"
	"github.com/Ramsey-B/veranda/pkg/models"
	"github.com/Ramsey-B/veranda/pkg/tracing"
)

// AdminReferenceHandler serves CRUD for the three reference tables. Admin
// listings include inactive rows; deletes are physical.
type AdminReferenceHandler struct {
	locations     location.LocationRepository
	propertyTypes propertytype.PropertyTypeRepository
	amenities     amenity.AmenityRepository
	logger        ectologger.Logger
}

// NewAdminReferenceHandler creates a new admin reference handler
func NewAdminReferenceHandler(
	locations location.LocationRepository,
	propertyTypes propertytype.PropertyTypeRepository,
	amenities amenity.AmenityRepository,
	logger ectologger.Logger,
) *AdminReferenceHandler {
	return &AdminReferenceHandler{
		locations:     locations,
		propertyTypes: propertyTypes,
		amenities:     amenities,
		logger:        logger,
	}
}

// RegisterRoutes registers the admin reference routes
func (h *AdminReferenceHandler) RegisterRoutes(g *echo.Group) {
	locs := g.Group("/reference/locations")
	locs.GET("", h.ListLocations)
	locs.POST("", h.CreateLocation)
	locs.PUT("/:id", h.UpdateLocation)
	locs.DELETE("/:id", h.DeleteLocation)

	types := g.Group("/reference/property-types")
	types.GET("", h.ListPropertyTypes)
	types.POST("", h.CreatePropertyType)
	types.PUT("/:id", h.UpdatePropertyType)
	types.DELETE("/:id", h.DeletePropertyType)

	amens := g.Group("/reference/amenities")
	amens.GET("", h.ListAmenities)
	amens.POST("", h.CreateAmenity)
	amens.PUT("/:id", h.UpdateAmenity)
	amens.DELETE("/:id", h.DeleteAmenity)
}

// ListLocations handles GET /reference/locations, inactive rows included.
func (h *AdminReferenceHandler) ListLocations(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "AdminReferenceHandler.ListLocations")
	defer span.End()

	return SuccessResponse(c, h.locations.List(ctx, false))
}

// CreateLocation handles POST /reference/locations
func (h *AdminReferenceHandler) CreateLocation(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "AdminReferenceHandler.CreateLocation")
	defer span.End()

	var req models.CreateLocationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.locations.Add(ctx, req)
	if err != nil {
		return err
	}

	return CreatedResponse(c, item)
}

// UpdateLocation handles PUT /reference/locations/:id
func (h *AdminReferenceHandler) UpdateLocation(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "AdminReferenceHandler.UpdateLocation")
	defer span.End()

	id, err := requireID(c)
	if err != nil {
		return err
	}

	var req models.UpdateLocationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.locations.Update(ctx, id, req)
	if err != nil {
		return err
	}

	return SuccessResponse(c, item)
}

// DeleteLocation handles DELETE /reference/locations/:id (physical removal).
func (h *AdminReferenceHandler) DeleteLocation(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "AdminReferenceHandler.DeleteLocation")
	defer span.End()

	id, err := requireID(c)
	if err != nil {
		return err
	}

	if err := h.locations.Delete(ctx, id); err != nil {
		return err
	}

	return NoContentResponse(c)
}

// ListPropertyTypes handles GET /reference/property-types, inactive included.
func (h *AdminReferenceHandler) ListPropertyTypes(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "AdminReferenceHandler.ListPropertyTypes")
	defer span.End()

	return SuccessResponse(c, h.propertyTypes.List(ctx, false))
}

// CreatePropertyType handles POST /reference/property-types
func (h *AdminReferenceHandler) CreatePropertyType(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "AdminReferenceHandler.CreatePropertyType")
	defer span.End()

	var req models.CreatePropertyTypeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.propertyTypes.Add(ctx, req)
	if err != nil {
		return err
	}

	return CreatedResponse(c, item)
}

// UpdatePropertyType handles PUT /reference/property-types/:id
func (h *AdminReferenceHandler) UpdatePropertyType(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "AdminReferenceHandler.UpdatePropertyType")
	defer span.End()

	id, err := requireID(c)
	if err != nil {
		return err
	}

	var req models.UpdatePropertyTypeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.propertyTypes.Update(ctx, id, req)
	if err != nil {
		return err
	}

	return SuccessResponse(c, item)
}

// DeletePropertyType handles DELETE /reference/property-types/:id.
func (h *AdminReferenceHandler) DeletePropertyType(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "AdminReferenceHandler.DeletePropertyType")
	defer span.End()

	id, err := requireID(c)
	if err != nil {
		return err
	}

	if err := h.propertyTypes.Delete(ctx, id); err != nil {
		return err
	}

	return NoContentResponse(c)
}

// ListAmenities handles GET /reference/amenities, inactive included.
func (h *AdminReferenceHandler) ListAmenities(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "AdminReferenceHandler.ListAmenities")
	defer span.End()

	return SuccessResponse(c, h.amenities.List(ctx, false))
}

// CreateAmenity handles POST /reference/amenities
func (h *AdminReferenceHandler) CreateAmenity(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "AdminReferenceHandler.CreateAmenity")
	defer span.End()

	var req models.CreateAmenityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.amenities.Add(ctx, req)
	if err != nil {
		return err
	}

	return CreatedResponse(c, item)
}

// UpdateAmenity handles PUT /reference/amenities/:id
func (h *AdminReferenceHandler) UpdateAmenity(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "AdminReferenceHandler.UpdateAmenity")
	defer span.End()

	id, err := requireID(c)
	if err != nil {
		return err
	}

	var req models.UpdateAmenityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.amenities.Update(ctx, id, req)
	if err != nil {
		return err
	}

	return SuccessResponse(c, item)
}

// DeleteAmenity handles DELETE /reference/amenities/:id.
func (h *AdminReferenceHandler) DeleteAmenity(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "AdminReferenceHandler.DeleteAmenity")
	defer span.End()

	id, err := requireID(c)
	if err != nil {
		return err
	}

	if err := h.amenities.Delete(ctx, id); err != nil {
		return err
	}

	return NoContentResponse(c)
}
