package models

import "time"

// Requirement statuses.
const (
	RequirementStatusPending   = "pending"
	RequirementStatusContacted = "contacted"
	RequirementStatusClosed    = "closed"
	RequirementStatusDeleted   = "deleted"
)

// Requirement types.
const (
	RequirementTypeBuy  = "buy"
	RequirementTypeRent = "rent"
)

// Requirement is a demand-side lead: what a buyer or renter is looking for.
// Relationships to reference data are by name, not id (denormalized snapshot).
type Requirement struct {
	ID     string `json:"id"`
	Status string `json:"status"`

	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`

	RequirementType string   `json:"requirement_type"` // buy | rent
	Category        string   `json:"category,omitempty"`
	City            string   `json:"city,omitempty"`
	Areas           []string `json:"areas,omitempty"`
	PropertyTypes   []string `json:"property_types,omitempty"`

	BedroomsMin *int     `json:"bedrooms_min,omitempty"`
	BedroomsMax *int     `json:"bedrooms_max,omitempty"`
	BudgetMin   *int64   `json:"budget_min,omitempty"`
	BudgetMax   *int64   `json:"budget_max,omitempty"`
	AreaMin     *float64 `json:"area_min,omitempty"`
	AreaMax     *float64 `json:"area_max,omitempty"`

	Amenities          []string `json:"amenities,omitempty"`
	ConstructionStatus string   `json:"construction_status,omitempty"`
	Notes              string   `json:"notes,omitempty"`

	AdminNotes string `json:"admin_notes,omitempty"`

	SubmittedAt time.Time  `json:"submitted_at"`
	ContactedAt *time.Time `json:"contacted_at,omitempty"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
}

// CreateRequirementRequest is the public lead-capture body.
type CreateRequirementRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`

	RequirementType string   `json:"requirement_type" validate:"required,oneof=buy rent"`
	Category        string   `json:"category,omitempty" validate:"omitempty,oneof=residential commercial"`
	City            string   `json:"city,omitempty"`
	Areas           []string `json:"areas,omitempty"`
	PropertyTypes   []string `json:"property_types,omitempty"`

	BedroomsMin *int     `json:"bedrooms_min,omitempty"`
	BedroomsMax *int     `json:"bedrooms_max,omitempty"`
	BudgetMin   *int64   `json:"budget_min,omitempty"`
	BudgetMax   *int64   `json:"budget_max,omitempty"`
	AreaMin     *float64 `json:"area_min,omitempty"`
	AreaMax     *float64 `json:"area_max,omitempty"`

	Amenities          []string `json:"amenities,omitempty"`
	ConstructionStatus string   `json:"construction_status,omitempty"`
	Notes              string   `json:"notes,omitempty"`
}

// UpdateRequirementRequest merges set fields into an existing requirement.
type UpdateRequirementRequest struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`

	RequirementType *string   `json:"requirement_type,omitempty" validate:"omitempty,oneof=buy rent"`
	Category        *string   `json:"category,omitempty" validate:"omitempty,oneof=residential commercial"`
	City            *string   `json:"city,omitempty"`
	Areas           *[]string `json:"areas,omitempty"`
	PropertyTypes   *[]string `json:"property_types,omitempty"`

	BedroomsMin *int     `json:"bedrooms_min,omitempty"`
	BedroomsMax *int     `json:"bedrooms_max,omitempty"`
	BudgetMin   *int64   `json:"budget_min,omitempty"`
	BudgetMax   *int64   `json:"budget_max,omitempty"`
	AreaMin     *float64 `json:"area_min,omitempty"`
	AreaMax     *float64 `json:"area_max,omitempty"`

	Amenities          *[]string `json:"amenities,omitempty"`
	ConstructionStatus *string   `json:"construction_status,omitempty"`
	Notes              *string   `json:"notes,omitempty"`
	AdminNotes         *string   `json:"admin_notes,omitempty"`
}

// RequirementListResponse is the API response for listing requirements
type RequirementListResponse struct {
	Items      []Requirement `json:"items"`
	TotalCount int           `json:"total_count"`
}
