// Package events handles best-effort event emission for listing and
// requirement lifecycle changes. Emission failures are logged and counted but
// never affect the store operation that triggered them.
package events

import (
	"context"
	"encoding/json"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/veranda/pkg/kafka"
	"github.com/Ramsey-B/veranda/pkg/metrics"
	"github.com/Ramsey-B/veranda/pkg/models"
	"github.com/Ramsey-B/veranda/pkg/tracing"
)

// SchemaVersion is the current event schema version
const SchemaVersion = "1.0"

// Listing event types.
const (
	ListingSubmitted   = "listing.submitted"
	ListingCreated     = "listing.created"
	ListingUpdated     = "listing.updated"
	ListingApproved    = "listing.approved"
	ListingRejected    = "listing.rejected"
	ListingPublished   = "listing.published"
	ListingUnpublished = "listing.unpublished"
	ListingDeleted     = "listing.deleted"
)

// Requirement event types.
const (
	RequirementCreated   = "requirement.created"
	RequirementContacted = "requirement.contacted"
	RequirementClosed    = "requirement.closed"
	RequirementDeleted   = "requirement.deleted"
)

// Emitter handles lifecycle event emission. A nil producer disables emission
// entirely; every Emit call becomes a no-op.
type Emitter struct {
	producer *kafka.Producer
	logger   ectologger.Logger
}

// NewEmitter creates a new event emitter
func NewEmitter(producer *kafka.Producer, logger ectologger.Logger) *Emitter {
	return &Emitter{
		producer: producer,
		logger:   logger,
	}
}

// EmitListing emits a listing lifecycle event such as "listing.created" or
// "listing.published".
func (e *Emitter) EmitListing(ctx context.Context, eventType string, submission *models.Submission) {
	if e == nil || e.producer == nil {
		return
	}

	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitListing")
	defer span.End()

	data, _ := json.Marshal(submission)

	event := &kafka.ListingEvent{
		EventType:   eventType,
		ListingID:   submission.ID,
		Status:      submission.Status,
		ListingType: submission.ListingType,
		City:        submission.City,
		Data:        data,
	}

	if err := e.producer.PublishListingEvent(ctx, event); err != nil {
		metrics.EventsEmittedTotal.WithLabelValues(eventType, "error").Inc()
		e.logger.WithContext(ctx).WithError(err).Errorf("Failed to emit %s event", eventType)
		return
	}

	metrics.EventsEmittedTotal.WithLabelValues(eventType, "ok").Inc()
}

// EmitRequirement emits a requirement lifecycle event such as
// "requirement.contacted".
func (e *Emitter) EmitRequirement(ctx context.Context, eventType string, requirement *models.Requirement) {
	if e == nil || e.producer == nil {
		return
	}

	ctx, span := tracing.StartSpan(ctx, "events.Emitter.EmitRequirement")
	defer span.End()

	event := &kafka.RequirementEvent{
		EventType:       eventType,
		RequirementID:   requirement.ID,
		Status:          requirement.Status,
		RequirementType: requirement.RequirementType,
	}

	if err := e.producer.PublishRequirementEvent(ctx, event); err != nil {
		metrics.EventsEmittedTotal.WithLabelValues(eventType, "error").Inc()
		e.logger.WithContext(ctx).WithError(err).Errorf("Failed to emit %s event", eventType)
		return
	}

	metrics.EventsEmittedTotal.WithLabelValues(eventType, "ok").Inc()
}
