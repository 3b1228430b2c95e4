package submission

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectolinq"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"

	"github.com/Ramsey-B/veranda/pkg/metrics"
	"github.com/Ramsey-B/veranda/pkg/models"
	"github.com/Ramsey-B/veranda/pkg/storage"
	"github.com/Ramsey-B/veranda/pkg/tracing"
)

const storageKey = "submissions"

// SubmissionRepository defines the interface for submission ledger operations
type SubmissionRepository interface {
	Add(ctx context.Context, req models.CreateSubmissionRequest) (*models.Submission, error)
	CreateAdmin(ctx context.Context, req models.CreateAdminSubmissionRequest) (*models.Submission, error)
	Update(ctx context.Context, id string, req models.UpdateSubmissionRequest) (*models.Submission, error)
	SoftDelete(ctx context.Context, id string) error
	Approve(ctx context.Context, id string, notes string) (*models.Submission, error)
	Reject(ctx context.Context, id string, notes string) (*models.Submission, error)
	Publish(ctx context.Context, id string) (*models.Submission, error)
	Unpublish(ctx context.Context, id string) (*models.Submission, error)
	GetByID(ctx context.Context, id string) (*models.Submission, error)
	Published(ctx context.Context) []models.Submission
	Pending(ctx context.Context, listingType string) []models.Submission
	All(ctx context.Context) []models.Submission
	Stats(ctx context.Context) models.SubmissionStats
}

// Repository holds the submission ledger in memory and writes the whole
// collection through the storage bridge on every mutation. Last write wins;
// there is no partial update at the storage level.
type Repository struct {
	mu     sync.RWMutex
	items  []models.Submission
	bridge *storage.Bridge
	logger ectologger.Logger
}

// NewRepository loads the persisted ledger (empty when absent or unreadable)
// and returns the repository.
func NewRepository(bridge *storage.Bridge, logger ectologger.Logger) *Repository {
	r := &Repository{
		bridge: bridge,
		logger: logger,
	}
	bridge.Load(context.Background(), storageKey, &r.items)
	return r
}

// Add appends a public submission. Status and source are forced regardless of
// the caller: every user submission starts pending.
func (r *Repository) Add(ctx context.Context, req models.CreateSubmissionRequest) (*models.Submission, error) {
	ctx, span := tracing.StartSpan(ctx, "SubmissionRepository.Add")
	defer span.End()

	sub := fromCreateRequest(req)
	sub.ID = uuid.New().String()
	sub.Status = models.SubmissionStatusPending
	sub.Source = models.SubmissionSourceUser
	sub.SubmittedAt = time.Now().UTC()

	r.mu.Lock()
	r.items = append(r.items, sub)
	r.persist(ctx)
	r.mu.Unlock()

	metrics.StoreOperationsTotal.WithLabelValues(storageKey, "add").Inc()
	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":   sub.ID,
		"city": sub.City,
	}).Info("created user submission")

	return &sub, nil
}

// CreateAdmin appends a back-office submission. Source is forced to admin;
// status is caller-supplied and stamped accordingly.
func (r *Repository) CreateAdmin(ctx context.Context, req models.CreateAdminSubmissionRequest) (*models.Submission, error) {
	ctx, span := tracing.StartSpan(ctx, "SubmissionRepository.CreateAdmin")
	defer span.End()

	now := time.Now().UTC()

	sub := fromCreateRequest(req.CreateSubmissionRequest)
	sub.ID = uuid.New().String()
	sub.Status = req.Status
	sub.Source = models.SubmissionSourceAdmin
	sub.IsFeatured = req.IsFeatured
	sub.IsNew = req.IsNew
	sub.IsVerified = req.IsVerified
	sub.SubmittedAt = now

	switch req.Status {
	case models.SubmissionStatusApproved:
		sub.ApprovedAt = &now
	case models.SubmissionStatusPublished:
		sub.ApprovedAt = &now
		sub.PublishedAt = &now
	}

	r.mu.Lock()
	r.items = append(r.items, sub)
	r.persist(ctx)
	r.mu.Unlock()

	metrics.StoreOperationsTotal.WithLabelValues(storageKey, "create_admin").Inc()
	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":     sub.ID,
		"status": sub.Status,
	}).Info("created admin submission")

	return &sub, nil
}

// Update merges the set fields of req into the matching record. An empty
// request leaves the record unchanged but still persists the collection.
func (r *Repository) Update(ctx context.Context, id string, req models.UpdateSubmissionRequest) (*models.Submission, error) {
	ctx, span := tracing.StartSpan(ctx, "SubmissionRepository.Update")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	sub := r.find(id)
	if sub == nil {
		return nil, notFound(id)
	}

	applyUpdate(sub, req)
	r.persist(ctx)

	metrics.StoreOperationsTotal.WithLabelValues(storageKey, "update").Inc()

	out := *sub
	return &out, nil
}

// SoftDelete marks the record deleted without removing it. Any status may
// transition to deleted; All still returns the record.
func (r *Repository) SoftDelete(ctx context.Context, id string) error {
	ctx, span := tracing.StartSpan(ctx, "SubmissionRepository.SoftDelete")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	sub := r.find(id)
	if sub == nil {
		return notFound(id)
	}

	sub.Status = models.SubmissionStatusDeleted
	r.persist(ctx)

	metrics.StoreOperationsTotal.WithLabelValues(storageKey, "soft_delete").Inc()
	metrics.SubmissionTransitionsTotal.WithLabelValues(models.SubmissionStatusDeleted).Inc()
	r.logger.WithContext(ctx).WithField("id", id).Info("soft-deleted submission")

	return nil
}

// Approve sets status=approved and stamps ApprovedAt. No transition guard:
// approving a published or deleted record succeeds and restamps, matching the
// permissive lifecycle. ApprovedAt, once set, is never cleared.
func (r *Repository) Approve(ctx context.Context, id string, notes string) (*models.Submission, error) {
	ctx, span := tracing.StartSpan(ctx, "SubmissionRepository.Approve")
	defer span.End()

	return r.transition(ctx, id, "approve", func(sub *models.Submission) {
		now := time.Now().UTC()
		sub.Status = models.SubmissionStatusApproved
		sub.ApprovedAt = &now
		if notes != "" {
			sub.AdminNotes = notes
		}
	})
}

// Reject sets status=rejected, optionally overwriting the reviewer notes.
func (r *Repository) Reject(ctx context.Context, id string, notes string) (*models.Submission, error) {
	ctx, span := tracing.StartSpan(ctx, "SubmissionRepository.Reject")
	defer span.End()

	return r.transition(ctx, id, "reject", func(sub *models.Submission) {
		sub.Status = models.SubmissionStatusRejected
		if notes != "" {
			sub.AdminNotes = notes
		}
	})
}

// Publish sets status=published and stamps PublishedAt.
func (r *Repository) Publish(ctx context.Context, id string) (*models.Submission, error) {
	ctx, span := tracing.StartSpan(ctx, "SubmissionRepository.Publish")
	defer span.End()

	return r.transition(ctx, id, "publish", func(sub *models.Submission) {
		now := time.Now().UTC()
		sub.Status = models.SubmissionStatusPublished
		sub.PublishedAt = &now
	})
}

// Unpublish moves a published record back to approved and clears PublishedAt.
// ApprovedAt is left as stamped.
func (r *Repository) Unpublish(ctx context.Context, id string) (*models.Submission, error) {
	ctx, span := tracing.StartSpan(ctx, "SubmissionRepository.Unpublish")
	defer span.End()

	return r.transition(ctx, id, "unpublish", func(sub *models.Submission) {
		sub.Status = models.SubmissionStatusApproved
		sub.PublishedAt = nil
	})
}

// GetByID returns the record with the given id, soft-deleted included.
func (r *Repository) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	_, span := tracing.StartSpan(ctx, "SubmissionRepository.GetByID")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	sub := r.find(id)
	if sub == nil {
		return nil, notFound(id)
	}

	out := *sub
	return &out, nil
}

// Published returns only records whose status is exactly published.
func (r *Repository) Published(ctx context.Context) []models.Submission {
	_, span := tracing.StartSpan(ctx, "SubmissionRepository.Published")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	return ectolinq.Filter(r.items, func(sub models.Submission) bool {
		return sub.Status == models.SubmissionStatusPublished
	})
}

// Pending returns pending records, optionally narrowed to a listing type
// (sell or lease). An empty listingType matches all pending records.
func (r *Repository) Pending(ctx context.Context, listingType string) []models.Submission {
	_, span := tracing.StartSpan(ctx, "SubmissionRepository.Pending")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	return ectolinq.Filter(r.items, func(sub models.Submission) bool {
		if sub.Status != models.SubmissionStatusPending {
			return false
		}
		return listingType == "" || sub.ListingType == listingType
	})
}

// All returns the full ledger including soft-deleted records; callers filter
// as they need.
func (r *Repository) All(ctx context.Context) []models.Submission {
	_, span := tracing.StartSpan(ctx, "SubmissionRepository.All")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Submission, len(r.items))
	copy(out, r.items)
	return out
}

// Stats aggregates the ledger in one pass.
func (r *Repository) Stats(ctx context.Context) models.SubmissionStats {
	_, span := tracing.StartSpan(ctx, "SubmissionRepository.Stats")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	var stats models.SubmissionStats
	stats.Total = len(r.items)
	for _, sub := range r.items {
		switch sub.Status {
		case models.SubmissionStatusPending:
			stats.Pending++
			switch sub.ListingType {
			case models.ListingTypeSell:
				stats.PendingSell++
			case models.ListingTypeLease:
				stats.PendingLease++
			}
		case models.SubmissionStatusApproved:
			stats.Approved++
		case models.SubmissionStatusRejected:
			stats.Rejected++
		case models.SubmissionStatusPublished:
			stats.Published++
		case models.SubmissionStatusDeleted:
			stats.Deleted++
		}
	}
	return stats
}

// transition applies a status mutation under lock and persists.
func (r *Repository) transition(ctx context.Context, id string, operation string, mutate func(*models.Submission)) (*models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub := r.find(id)
	if sub == nil {
		return nil, notFound(id)
	}

	mutate(sub)
	r.persist(ctx)

	metrics.StoreOperationsTotal.WithLabelValues(storageKey, operation).Inc()
	metrics.SubmissionTransitionsTotal.WithLabelValues(sub.Status).Inc()
	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":     id,
		"status": sub.Status,
	}).Infof("submission %s", operation)

	out := *sub
	return &out, nil
}

// find must be called with the lock held.
func (r *Repository) find(id string) *models.Submission {
	for i := range r.items {
		if r.items[i].ID == id {
			return &r.items[i]
		}
	}
	return nil
}

// persist must be called with the lock held.
func (r *Repository) persist(ctx context.Context) {
	r.bridge.Save(ctx, storageKey, r.items)
}

func notFound(id string) error {
	return httperror.NewHTTPErrorf(http.StatusNotFound, "submission %s not found", id)
}

func fromCreateRequest(req models.CreateSubmissionRequest) models.Submission {
	return models.Submission{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		PriceLabel:   req.PriceLabel,
		Location:     req.Location,
		City:         req.City,
		Address:      req.Address,
		PostalCode:   req.PostalCode,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		Area:         req.Area,
		AreaUnit:     req.AreaUnit,
		PropertyType: req.PropertyType,
		ListingType:  req.ListingType,
		Category:     req.Category,
		Images:       req.Images,
	}
}

func applyUpdate(sub *models.Submission, req models.UpdateSubmissionRequest) {
	if req.Title != nil {
		sub.Title = *req.Title
	}
	if req.Description != nil {
		sub.Description = *req.Description
	}
	if req.Price != nil {
		sub.Price = *req.Price
	}
	if req.PriceLabel != nil {
		sub.PriceLabel = *req.PriceLabel
	}
	if req.Location != nil {
		sub.Location = *req.Location
	}
	if req.City != nil {
		sub.City = *req.City
	}
	if req.Address != nil {
		sub.Address = *req.Address
	}
	if req.PostalCode != nil {
		sub.PostalCode = *req.PostalCode
	}
	if req.Bedrooms != nil {
		sub.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		sub.Bathrooms = *req.Bathrooms
	}
	if req.Area != nil {
		sub.Area = *req.Area
	}
	if req.AreaUnit != nil {
		sub.AreaUnit = *req.AreaUnit
	}
	if req.PropertyType != nil {
		sub.PropertyType = *req.PropertyType
	}
	if req.ListingType != nil {
		sub.ListingType = *req.ListingType
	}
	if req.Category != nil {
		sub.Category = *req.Category
	}
	if req.Images != nil {
		sub.Images = *req.Images
	}
	if req.IsFeatured != nil {
		sub.IsFeatured = *req.IsFeatured
	}
	if req.IsNew != nil {
		sub.IsNew = *req.IsNew
	}
	if req.IsVerified != nil {
		sub.IsVerified = *req.IsVerified
	}
	if req.AdminNotes != nil {
		sub.AdminNotes = *req.AdminNotes
	}
}
