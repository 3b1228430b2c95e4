package location

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

const storageKey = "locations"

// LocationRepository defines the interface for the location reference table
type LocationRepository interface {
	Add(ctx context.Context, req models.CreateLocationRequest) (*models.Location, error)
	Update(ctx context.Context, id string, req models.UpdateLocationRequest) (*models.Location, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Location, error)
	List(ctx context.Context, activeOnly bool) []models.Location
	Count(ctx context.Context) int
}

// Repository is the admin-curated location table. Unlike the ledgers,
// Delete physically removes the row.
type Repository struct {
	mu     sync.RWMutex
	items  []models.Location
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

// Add appends a location. IsActive defaults to true when unset.
func (r *Repository) Add(ctx context.Context, req models.CreateLocationRequest) (*models.Location, error) {
	ctx, span := tracing.StartSpan(ctx, "LocationRepository.Add")
	defer span.End()

	item := models.Location{
		ID:       uuid.New().String(),
		City:     req.City,
		Areas:    req.Areas,
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
	r.logger.WithContext(ctx).WithField("city", item.City).Info("created location")

	return &item, nil
}

// Update merges the set fields into the matching row. A set Areas field
// replaces the whole area list.
func (r *Repository) Update(ctx context.Context, id string, req models.UpdateLocationRequest) (*models.Location, error) {
	ctx, span := tracing.StartSpan(ctx, "LocationRepository.Update")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	item := r.find(id)
	if item == nil {
		return nil, notFound(id)
	}

	if req.City != nil {
		item.City = *req.City
	}
	if req.Areas != nil {
		item.Areas = *req.Areas
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	r.persist(ctx)

	metrics.StoreOperationsTotal.WithLabelValues(storageKey, "update").Inc()

	out := *item
	return &out, nil
}

// Delete physically removes the row. Submissions and requirements referencing
// the city by value are left untouched.
func (r *Repository) Delete(ctx context.Context, id string) error {
	ctx, span := tracing.StartSpan(ctx, "LocationRepository.Delete")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			r.persist(ctx)

			metrics.StoreOperationsTotal.WithLabelValues(storageKey, "delete").Inc()
			r.logger.WithContext(ctx).WithField("id", id).Info("deleted location")
			return nil
		}
	}
	return notFound(id)
}

// GetByID returns the row with the given id.
func (r *Repository) GetByID(ctx context.Context, id string) (*models.Location, error) {
	_, span := tracing.StartSpan(ctx, "LocationRepository.GetByID")
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

// List returns the table, optionally limited to active rows (the
// form-population convention).
func (r *Repository) List(ctx context.Context, activeOnly bool) []models.Location {
	_, span := tracing.StartSpan(ctx, "LocationRepository.List")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	return ectolinq.Filter(r.items, func(item models.Location) bool {
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
func (r *Repository) find(id string) *models.Location {
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
	return httperror.NewHTTPErrorf(http.StatusNotFound, "location %s not found", id)
}
