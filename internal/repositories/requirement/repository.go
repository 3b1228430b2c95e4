package requirement

import (
	"context"
	"net/http"
	"sort"
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

const storageKey = "buyer-requirements"

// RequirementRepository defines the interface for the requirement ledger
type RequirementRepository interface {
	Add(ctx context.Context, req models.CreateRequirementRequest) (*models.Requirement, error)
	Update(ctx context.Context, id string, req models.UpdateRequirementRequest) (*models.Requirement, error)
	SoftDelete(ctx context.Context, id string) error
	MarkContacted(ctx context.Context, id string, notes string) (*models.Requirement, error)
	MarkClosed(ctx context.Context, id string, notes string) (*models.Requirement, error)
	GetByID(ctx context.Context, id string) (*models.Requirement, error)
	Pending(ctx context.Context, requirementType string) []models.Requirement
	All(ctx context.Context) []models.Requirement
}

// Repository holds the requirement ledger in memory and writes the whole
// collection through the storage bridge on every mutation.
type Repository struct {
	mu     sync.RWMutex
	items  []models.Requirement
	bridge *storage.Bridge
	logger ectologger.Logger
}

// NewRepository loads the persisted ledger and returns the repository.
func NewRepository(bridge *storage.Bridge, logger ectologger.Logger) *Repository {
	r := &Repository{
		bridge: bridge,
		logger: logger,
	}
	bridge.Load(context.Background(), storageKey, &r.items)
	return r
}

// Add appends a new requirement. Every requirement starts pending.
func (r *Repository) Add(ctx context.Context, req models.CreateRequirementRequest) (*models.Requirement, error) {
	ctx, span := tracing.StartSpan(ctx, "RequirementRepository.Add")
	defer span.End()

	item := models.Requirement{
		ID:                 uuid.New().String(),
		Status:             models.RequirementStatusPending,
		Name:               req.Name,
		Phone:              req.Phone,
		Email:              req.Email,
		RequirementType:    req.RequirementType,
		Category:           req.Category,
		City:               req.City,
		Areas:              req.Areas,
		PropertyTypes:      req.PropertyTypes,
		BedroomsMin:        req.BedroomsMin,
		BedroomsMax:        req.BedroomsMax,
		BudgetMin:          req.BudgetMin,
		BudgetMax:          req.BudgetMax,
		AreaMin:            req.AreaMin,
		AreaMax:            req.AreaMax,
		Amenities:          req.Amenities,
		ConstructionStatus: req.ConstructionStatus,
		Notes:              req.Notes,
		SubmittedAt:        time.Now().UTC(),
	}

	r.mu.Lock()
	r.items = append(r.items, item)
	r.persist(ctx)
	r.mu.Unlock()

	metrics.StoreOperationsTotal.WithLabelValues(storageKey, "add").Inc()
	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":               item.ID,
		"requirement_type": item.RequirementType,
	}).Info("created requirement")

	return &item, nil
}

// Update merges the set fields of req into the matching record.
func (r *Repository) Update(ctx context.Context, id string, req models.UpdateRequirementRequest) (*models.Requirement, error) {
	ctx, span := tracing.StartSpan(ctx, "RequirementRepository.Update")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	item := r.find(id)
	if item == nil {
		return nil, notFound(id)
	}

	applyUpdate(item, req)
	r.persist(ctx)

	metrics.StoreOperationsTotal.WithLabelValues(storageKey, "update").Inc()

	out := *item
	return &out, nil
}

// SoftDelete marks the record deleted without removing it.
func (r *Repository) SoftDelete(ctx context.Context, id string) error {
	ctx, span := tracing.StartSpan(ctx, "RequirementRepository.SoftDelete")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	item := r.find(id)
	if item == nil {
		return notFound(id)
	}

	item.Status = models.RequirementStatusDeleted
	r.persist(ctx)

	metrics.StoreOperationsTotal.WithLabelValues(storageKey, "soft_delete").Inc()
	r.logger.WithContext(ctx).WithField("id", id).Info("soft-deleted requirement")

	return nil
}

// MarkContacted sets status=contacted and stamps ContactedAt. No transition
// guard: any status may move to contacted.
func (r *Repository) MarkContacted(ctx context.Context, id string, notes string) (*models.Requirement, error) {
	ctx, span := tracing.StartSpan(ctx, "RequirementRepository.MarkContacted")
	defer span.End()

	return r.transition(ctx, id, "mark_contacted", func(item *models.Requirement) {
		now := time.Now().UTC()
		item.Status = models.RequirementStatusContacted
		item.ContactedAt = &now
		if notes != "" {
			item.AdminNotes = notes
		}
	})
}

// MarkClosed sets status=closed and stamps ClosedAt.
func (r *Repository) MarkClosed(ctx context.Context, id string, notes string) (*models.Requirement, error) {
	ctx, span := tracing.StartSpan(ctx, "RequirementRepository.MarkClosed")
	defer span.End()

	return r.transition(ctx, id, "mark_closed", func(item *models.Requirement) {
		now := time.Now().UTC()
		item.Status = models.RequirementStatusClosed
		item.ClosedAt = &now
		if notes != "" {
			item.AdminNotes = notes
		}
	})
}

// GetByID returns the record with the given id, soft-deleted included.
func (r *Repository) GetByID(ctx context.Context, id string) (*models.Requirement, error) {
	_, span := tracing.StartSpan(ctx, "RequirementRepository.GetByID")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	item := r.find(id)
	if item == nil {
		return nil, notFound(id)
	}

	out := *item
	return &out, nil
}

// Pending returns pending records, optionally narrowed to a requirement type
// (buy or rent).
func (r *Repository) Pending(ctx context.Context, requirementType string) []models.Requirement {
	_, span := tracing.StartSpan(ctx, "RequirementRepository.Pending")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	return ectolinq.Filter(r.items, func(item models.Requirement) bool {
		if item.Status != models.RequirementStatusPending {
			return false
		}
		return requirementType == "" || item.RequirementType == requirementType
	})
}

// All returns the full ledger, soft-deleted included, sorted newest first.
// This is the only ledger with a sort contract.
func (r *Repository) All(ctx context.Context) []models.Requirement {
	_, span := tracing.StartSpan(ctx, "RequirementRepository.All")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Requirement, len(r.items))
	copy(out, r.items)

	sort.Slice(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out
}

func (r *Repository) transition(ctx context.Context, id string, operation string, mutate func(*models.Requirement)) (*models.Requirement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item := r.find(id)
	if item == nil {
		return nil, notFound(id)
	}

	mutate(item)
	r.persist(ctx)

	metrics.StoreOperationsTotal.WithLabelValues(storageKey, operation).Inc()
	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":     id,
		"status": item.Status,
	}).Infof("requirement %s", operation)

	out := *item
	return &out, nil
}

// find must be called with the lock held.
func (r *Repository) find(id string) *models.Requirement {
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
	return httperror.NewHTTPErrorf(http.StatusNotFound, "requirement %s not found", id)
}

func applyUpdate(item *models.Requirement, req models.UpdateRequirementRequest) {
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Phone != nil {
		item.Phone = *req.Phone
	}
	if req.Email != nil {
		item.Email = *req.Email
	}
	if req.RequirementType != nil {
		item.RequirementType = *req.RequirementType
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.City != nil {
		item.City = *req.City
	}
	if req.Areas != nil {
		item.Areas = *req.Areas
	}
	if req.PropertyTypes != nil {
		item.PropertyTypes = *req.PropertyTypes
	}
	if req.BedroomsMin != nil {
		item.BedroomsMin = req.BedroomsMin
	}
	if req.BedroomsMax != nil {
		item.BedroomsMax = req.BedroomsMax
	}
	if req.BudgetMin != nil {
		item.BudgetMin = req.BudgetMin
	}
	if req.BudgetMax != nil {
		item.BudgetMax = req.BudgetMax
	}
	if req.AreaMin != nil {
		item.AreaMin = req.AreaMin
	}
	if req.AreaMax != nil {
		item.AreaMax = req.AreaMax
	}
	if req.Amenities != nil {
		item.Amenities = *req.Amenities
	}
	if req.ConstructionStatus != nil {
		item.ConstructionStatus = *req.ConstructionStatus
	}
	if req.Notes != nil {
		item.Notes = *req.Notes
	}
	if req.AdminNotes != nil {
		item.AdminNotes = *req.AdminNotes
	}
}
