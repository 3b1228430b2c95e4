package handlers

import (
	"context"

	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/veranda/internal/repositories/submission"
	"github.com/Ramsey-B/veranda/pkg/events"
	"github.com/Ramsey-B/veranda/pkg/models"
	"github.com/Ramsey-B/veranda/pkg/tracing"
)

// AdminSubmissionHandler serves the back-office submission ledger: full
// listing, direct creation, review verbs, and the dashboard stats.
type AdminSubmissionHandler struct {
	submissions submission.SubmissionRepository
	emitter     *events.Emitter
	logger      ectologger.Logger
}

// NewAdminSubmissionHandler creates a new admin submission handler
func NewAdminSubmissionHandler(submissions submission.SubmissionRepository, emitter *events.Emitter, logger ectologger.Logger) *AdminSubmissionHandler {
	return &AdminSubmissionHandler{
		submissions: submissions,
		emitter:     emitter,
		logger:      logger,
	}
}

// RegisterRoutes registers the admin submission routes
func (h *AdminSubmissionHandler) RegisterRoutes(g *echo.Group) {
	subs := g.Group("/submissions")
	subs.GET("", h.List)
	subs.POST("", h.Create)
	subs.GET("/:id", h.Get)
	subs.PUT("/:id", h.Update)
	subs.DELETE("/:id", h.Delete)
	subs.POST("/:id/approve", h.Approve)
	subs.POST("/:id/reject", h.Reject)
	subs.POST("/:id/publish", h.Publish)
	subs.POST("/:id/unpublish", h.Unpublish)

	g.GET("/stats", h.Stats)
}

// List handles GET /submissions. With status=pending the pending view is
// served, optionally narrowed by listing_type. Everything else returns the
// full ledger, soft-deleted included.
func (h *AdminSubmissionHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "AdminSubmissionHandler.List")
	defer span.End()

	var items []models.Submission
	if c.QueryParam("status") == models.SubmissionStatusPending {
		items = h.submissions.Pending(ctx, c.QueryParam("listing_type"))
	} else {
		items = h.submissions.All(ctx)
	}

	return SuccessResponse(c, models.SubmissionListResponse{
		Items:      items,
		TotalCount: len(items),
	})
}

// Create handles POST /submissions. Admin-created records carry the status
// the caller picked and source=admin.
func (h *AdminSubmissionHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "AdminSubmissionHandler.Create")
	defer span.End()

	var req models.CreateAdminSubmissionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.submissions.CreateAdmin(ctx, req)
	if err != nil {
		return err
	}

	h.emitter.EmitListing(ctx, events.ListingCreated, item)

	return CreatedResponse(c, item)
}

// Get handles GET /submissions/:id, soft-deleted included.
func (h *AdminSubmissionHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "AdminSubmissionHandler.Get")
	defer span.End()

	id, err := requireID(c)
	if err != nil {
		return err
	}

	item, err := h.submissions.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return SuccessResponse(c, item)
}

// Update handles PUT /submissions/:id with a partial body.
func (h *AdminSubmissionHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "AdminSubmissionHandler.Update")
	defer span.End()

	id, err := requireID(c)
	if err != nil {
		return err
	}

	var req models.UpdateSubmissionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.submissions.Update(ctx, id, req)
	if err != nil {
		return err
	}

	h.emitter.EmitListing(ctx, events.ListingUpdated, item)

	return SuccessResponse(c, item)
}

// Delete handles DELETE /submissions/:id as a soft delete.
func (h *AdminSubmissionHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "AdminSubmissionHandler.Delete")
	defer span.End()

	id, err := requireID(c)
	if err != nil {
		return err
	}

	if err := h.submissions.SoftDelete(ctx, id); err != nil {
		return err
	}

	if item, err := h.submissions.GetByID(ctx, id); err == nil {
		h.emitter.EmitListing(ctx, events.ListingDeleted, item)
	}

	return NoContentResponse(c)
}

// Approve handles POST /submissions/:id/approve with optional reviewer notes.
func (h *AdminSubmissionHandler) Approve(c echo.Context) error {
	return h.review(c, "AdminSubmissionHandler.Approve", events.ListingApproved, h.submissions.Approve)
}

// Reject handles POST /submissions/:id/reject with optional reviewer notes.
func (h *AdminSubmissionHandler) Reject(c echo.Context) error {
	return h.review(c, "AdminSubmissionHandler.Reject", events.ListingRejected, h.submissions.Reject)
}

// Publish handles POST /submissions/:id/publish.
func (h *AdminSubmissionHandler) Publish(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "AdminSubmissionHandler.Publish")
	defer span.End()

	id, err := requireID(c)
	if err != nil {
		return err
	}

	item, err := h.submissions.Publish(ctx, id)
	if err != nil {
		return err
	}

	h.emitter.EmitListing(ctx, events.ListingPublished, item)

	return SuccessResponse(c, item)
}

// Unpublish handles POST /submissions/:id/unpublish. The record reverts to
// approved and loses its published timestamp.
func (h *AdminSubmissionHandler) Unpublish(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "AdminSubmissionHandler.Unpublish")
	defer span.End()

	id, err := requireID(c)
	if err != nil {
		return err
	}

	item, err := h.submissions.Unpublish(ctx, id)
	if err != nil {
		return err
	}

	h.emitter.EmitListing(ctx, events.ListingUnpublished, item)

	return SuccessResponse(c, item)
}

// Stats handles GET /stats for the dashboard.
func (h *AdminSubmissionHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	ctx, span := tracing.StartSpan(ctx, "AdminSubmissionHandler.Stats")
	defer span.End()

	return SuccessResponse(c, h.submissions.Stats(ctx))
}

type reviewFunc func(ctx context.Context, id string, notes string) (*models.Submission, error)

func (h *AdminSubmissionHandler) review(c echo.Context, spanName, eventType string, fn reviewFunc) error {
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

	h.emitter.EmitListing(ctx, eventType, item)

	return SuccessResponse(c, item)
}
