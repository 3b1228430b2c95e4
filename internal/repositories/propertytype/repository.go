package propertytype

import (
	"context"
	"net/http"
	"sync"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectolinq"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"

	"github.com/Ramsey-B/veranda/pkg/metrics"
	"github.com/Ramsey-B/veranda/pkg/models"
	"github.com/Ramsey-B/veranda/pkg/storage"
	"github.com/Ramsey-B/veranda/pkg/tracing"
)

const storageKey = "property-types"

// PropertyTypeRepository defines the interface for the property type table
type PropertyTypeRepository interface {
	Add(ctx context.Context, req models.CreatePropertyTypeRequest) (*models.PropertyType, error)
	Update(ctx context.Context, id string, req models.UpdatePropertyTypeRequest) (*models.PropertyType, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.PropertyType, error)
	List(ctx context.Context, activeOnly bool) []models.PropertyType
	Count(ctx context.Context) int
}

// Repository is the admin-curated property type table; Delete physically
// removes the row.
type Repository struct {
	mu     sync.RWMutex
	items  []models.PropertyType
	bridge *storage.Bridge
	logger ectologger.Logger
}

// NewRepository loads the persisted table and returns the repository.
func NewRepository(bridge *storage.Bridge, logger ectologger.Logger) *Repository {
	r := &Repository{
		bridge: bridge,
		logger: logger,
	}
	bridge.Load(context.Background(), storageKey, &r.items)
	return r
}

// Add appends a property type. IsActive defaults to true when unset.
func (r *Repository) Add(ctx context.Context, req models.CreatePropertyTypeRequest) (*models.PropertyType, error) {
	ctx, span := tracing.StartSpan(ctx, "PropertyTypeRepository.Add")
	defer span.End()

	item := models.PropertyType{
		ID:       uuid.New().String(),
		Name:     req.Name,
		Category: req.Category,
		IsActive: true,
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	r.mu.Lock()
	r.items = append(r.items, item)
	r.persist(ctx)
	r.mu.Unlock()

	metrics.StoreOperationsTotal.WithLabelValues(storageKey, "add").Inc()
	r.logger.WithContext(ctx).WithField("name", item.Name).Info("created property type")

	return &item, nil
}

// Update merges the set fields into the matching row.
func (r *Repository) Update(ctx context.Context, id string, req models.UpdatePropertyTypeRequest) (*models.PropertyType, error) {
	ctx, span := tracing.StartSpan(ctx, "PropertyTypeRepository.Update")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	item := r.find(id)
	if item == nil {
		return nil, notFound(id)
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	r.persist(ctx)

	metrics.StoreOperationsTotal.WithLabelValues(storageKey, "update").Inc()

	out := *item
	return &out, nil
}

// Delete physically removes the row.
func (r *Repository) Delete(ctx context.Context, id string) error {
	ctx, span := tracing.StartSpan(ctx, "PropertyTypeRepository.Delete")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			r.persist(ctx)

			metrics.StoreOperationsTotal.WithLabelValues(storageKey, "delete").Inc()
			r.logger.WithContext(ctx).WithField("id", id).Info("deleted property type")
			return nil
		}
	}
	return notFound(id)
}

// GetByID returns the row with the given id.
func (r *Repository) GetByID(ctx context.Context, id string) (*models.PropertyType, error) {
	_, span := tracing.StartSpan(ctx, "PropertyTypeRepository.GetByID")
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

// List returns the table, optionally limited to active rows.
func (r *Repository) List(ctx context.Context, activeOnly bool) []models.PropertyType {
	_, span := tracing.StartSpan(ctx, "PropertyTypeRepository.List")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	return ectolinq.Filter(r.items, func(item models.PropertyType) bool {
		return !activeOnly || item.IsActive
	})
}

// Count returns the number of rows (used by seeding).
func (r *Repository) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// find must be called with the lock held.
func (r *Repository) find(id string) *models.PropertyType {
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
	return httperror.NewHTTPErrorf(http.StatusNotFound, "property type %s not found", id)
}
