package handlers

import (
	"context"

	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/veranda/internal/repositories/requirement"
	"github.com/Ramsey-B/veranda/pkg/events"
	"github.com/Ramsey-B/veranda/pkg/models"
	"github.com/Ramsey-B/veranda/pkg/tracing"
)

// AdminRequirementHandler serves the back-office requirement ledger.
type AdminRequirementHandler struct {
	requirements requirement.RequirementRepository
	emitter      *events.Emitter
	logger       ectologger.Logger
}

// NewAdminRequirementHandler creates a new admin requirement handler
func NewAdminRequirementHandler(requirements requirement.RequirementRepository, emitter *events.Emitter, logger ectologger.Logger) *AdminRequirementHandler {
	return &AdminRequirementHandler{
		requirements: requirements,
		emitter:      emitter,
		logger:       logger,
	}
}

// RegisterRoutes registers the admin requirement routes
func (h *AdminRequirementHandler) RegisterRoutes(g *echo.Group) {
	reqs := g.Group("/requirements")
	reqs.GET("", h.List)
	reqs.GET("/:id", h.Get)
	reqs.PUT("/:id", h.Update)
	reqs.DELETE("/:id", h.Delete)
	reqs.POST("/:id/contact", h.Contact)
	reqs.POST("/:id/close", h.Close)
}

// List handles GET /requirements. With status=pending the pending view is
// served, optionally narrowed by requirement_type. Everything else returns
// the full ledger newest first, soft-deleted included.
func (h *AdminRequirementHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "AdminRequirementHandler.List")
	defer span.End()

	var items []models.Requirement
	if c.QueryParam("status") == models.RequirementStatusPending {
		items = h.requirements.Pending(ctx, c.QueryParam("requirement_type"))
	} else {
		items = h.requirements.All(ctx)
	}

	return SuccessResponse(c, models.RequirementListResponse{
		Items:      items,
		TotalCount: len(items),
	})
}

// Get handles GET /requirements/:id, soft-deleted included.
func (h *AdminRequirementHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "AdminRequirementHandler.Get")
	defer span.End()

	id, err := requireID(c)
	if err != nil {
		return err
	}

	item, err := h.requirements.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return SuccessResponse(c, item)
}

// Update handles PUT /requirements/:id with a partial body.
func (h *AdminRequirementHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "AdminRequirementHandler.Update")
	defer span.End()

	id, err := requireID(c)
	if err != nil {
		return err
	}

	var req models.UpdateRequirementRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.requirements.Update(ctx, id, req)
	if err != nil {
		return err
	}

	return SuccessResponse(c, item)
}

// Delete handles DELETE /requirements/:id as a soft delete.
func (h *AdminRequirementHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "AdminRequirementHandler.Delete")
	defer span.End()

	id, err := requireID(c)
	if err != nil {
		return err
	}

	if err := h.requirements.SoftDelete(ctx, id); err != nil {
		return err
	}

	if item, err := h.requirements.GetByID(ctx, id); err == nil {
		h.emitter.EmitRequirement(ctx, events.RequirementDeleted, item)
	}

	return NoContentResponse(c)
}

// Contact handles POST /requirements/:id/contact with optional admin notes.
func (h *AdminRequirementHandler) Contact(c echo.Context) error {
	return h.mark(c, "AdminRequirementHandler.Contact", events.RequirementContacted, h.requirements.MarkContacted)
}

// Close handles POST /requirements/:id/close with optional admin notes.
func (h *AdminRequirementHandler) Close(c echo.Context) error {
	return h.mark(c, "AdminRequirementHandler.Close", events.RequirementClosed, h.requirements.MarkClosed)
}

type markFunc func(ctx context.Context, id string, notes string) (*models.Requirement, error)

func (h *AdminRequirementHandler) mark(c echo.Context, spanName, eventType string, fn markFunc) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, spanName)
	defer span.End()

	id, err := requireID(c)
	if err != nil {
		return err
	}

	var req models.ReviewRequest
	if err := c.Bind(&req); err != nil {
		return BadRequest("invalid request body")
	}

	item, err := fn(ctx, id, req.Notes)
	if err != nil {
		return err
	}

	h.emitter.EmitRequirement(ctx, eventType, item)

	return SuccessResponse(c, item)
}
