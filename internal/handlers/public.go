package handlers

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/veranda/internal/repositories/amenity"
	"github.com/Ramsey-B/veranda/internal/repositories/location"
	"github.com/Ramsey-B/veranda/internal/repositories/propertytype"
	"github.com/Ramsey-B/veranda/internal/repositories/requirement"
	"github.com/Ramsey-B/veranda/internal/repositories/submission"
	"github.com/Ramsey-B/veranda/pkg/events"
	"github.com/Ramsey-B/veranda/pkg/models"
	"github.com/Ramsey-B/veranda/pkg/tracing"
)

// PublicHandler serves the marketing-site endpoints: published listings,
// submission and requirement intake, and the active reference lists that
// populate the public forms.
type PublicHandler struct {
	submissions   submission.SubmissionRepository
	requirements  requirement.RequirementRepository
	locations     location.LocationRepository
	propertyTypes propertytype.PropertyTypeRepository
	amenities     amenity.AmenityRepository
	emitter       *events.Emitter
	logger        ectologger.Logger
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(
	submissions submission.SubmissionRepository,
	requirements requirement.RequirementRepository,
	locations location.LocationRepository,
	propertyTypes propertytype.PropertyTypeRepository,
	amenities amenity.AmenityRepository,
	emitter *events.Emitter,
	logger ectologger.Logger,
) *PublicHandler {
	return &PublicHandler{
		submissions:   submissions,
		requirements:  requirements,
		locations:     locations,
		propertyTypes: propertyTypes,
		amenities:     amenities,
		emitter:       emitter,
		logger:        logger,
	}
}

// RegisterRoutes registers the public routes
func (h *PublicHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/listings", h.ListListings)
	g.GET("/listings/:id", h.GetListing)
	g.POST("/submissions", h.CreateSubmission)
	g.POST("/requirements", h.CreateRequirement)
	g.GET("/reference/locations", h.ListLocations)
	g.GET("/reference/property-types", h.ListPropertyTypes)
	g.GET("/reference/amenities", h.ListAmenities)
}

// ListListings handles GET /listings. Only published submissions are exposed.
func (h *PublicHandler) ListListings(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "PublicHandler.ListListings")
	defer span.End()

	items := h.submissions.Published(ctx)
	return SuccessResponse(c, models.SubmissionListResponse{
		Items:      items,
		TotalCount: len(items),
	})
}

// GetListing handles GET /listings/:id. Unpublished submissions are not
// visible here regardless of status.
func (h *PublicHandler) GetListing(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "PublicHandler.GetListing")
	defer span.End()

	id, err := requireID(c)
	if err != nil {
		return err
	}

	item, err := h.submissions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item.Status != models.SubmissionStatusPublished {
		return httperror.NewHTTPErrorf(http.StatusNotFound, "listing %s not found", id)
	}

	return SuccessResponse(c, item)
}

// CreateSubmission handles POST /submissions. The new record always enters
// the ledger as a pending user submission.
func (h *PublicHandler) CreateSubmission(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "PublicHandler.CreateSubmission")
	defer span.End()

	var req models.CreateSubmissionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.submissions.Add(ctx, req)
	if err != nil {
		return err
	}

	h.emitter.EmitListing(ctx, events.ListingSubmitted, item)

	return CreatedResponse(c, item)
}

// CreateRequirement handles POST /requirements.
func (h *PublicHandler) CreateRequirement(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "PublicHandler.CreateRequirement")
	defer span.End()

	var req models.CreateRequirementRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.requirements.Add(ctx, req)
	if err != nil {
		return err
	}

	h.emitter.EmitRequirement(ctx, events.RequirementCreated, item)

	return CreatedResponse(c, item)
}

// ListLocations handles GET /reference/locations, active rows only.
func (h *PublicHandler) ListLocations(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "PublicHandler.ListLocations")
	defer span.End()

	return SuccessResponse(c, h.locations.List(ctx, true))
}

// ListPropertyTypes handles GET /reference/property-types, active rows only.
func (h *PublicHandler) ListPropertyTypes(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "PublicHandler.ListPropertyTypes")
	defer span.End()

	return SuccessResponse(c, h.propertyTypes.List(ctx, true))
}

// ListAmenities handles GET /reference/amenities, active rows only.
func (h *PublicHandler) ListAmenities(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "PublicHandler.ListAmenities")
	defer span.End()

	return SuccessResponse(c, h.amenities.List(ctx, true))
}
