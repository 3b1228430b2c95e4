package models

import "time"

// Submission statuses. A submission is never physically removed; "deleted" is
// a status like any other and List/All callers filter as they need.
const (
	SubmissionStatusPending   = "pending"
	SubmissionStatusApproved  = "approved"
	SubmissionStatusRejected  = "rejected"
	SubmissionStatusPublished = "published"
	SubmissionStatusDeleted   = "deleted"
)

// Submission sources. Set once at creation, immutable.
const (
	SubmissionSourceAdmin = "admin"
	SubmissionSourceUser  = "user-submission"
)

// Listing types (intent of the listing owner).
const (
	ListingTypeSell  = "sell"
	ListingTypeLease = "lease"
)

// Property categories.
const (
	CategoryResidential = "residential"
	CategoryCommercial  = "commercial"
)

// Submission is a property-listing candidate moving through the
// pending → approved/rejected → published lifecycle.
type Submission struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Source      string `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// Price is in the smallest currency unit; PriceLabel is the formatted
	// display string captured at submission time.
	Price      int64  `json:"price"`
	PriceLabel string `json:"price_label,omitempty"`

	Location   string `json:"location,omitempty"`
	City       string `json:"city"`
	Address    string `json:"address,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`

	Bedrooms     int     `json:"bedrooms,omitempty"`
	Bathrooms    int     `json:"bathrooms,omitempty"`
	Area         float64 `json:"area,omitempty"`
	AreaUnit     string  `json:"area_unit,omitempty"`
	PropertyType string  `json:"property_type"`
	ListingType  string  `json:"listing_type"` // sell | lease
	Category     string  `json:"category"`     // residential | commercial

	// Images are opaque encoded payloads; the ledger enforces no size or
	// count limit.
	Images []string `json:"images,omitempty"`

	IsFeatured bool `json:"is_featured"`
	IsNew      bool `json:"is_new"`
	IsVerified bool `json:"is_verified"`

	AdminNotes string `json:"admin_notes,omitempty"`

	SubmittedAt time.Time  `json:"submitted_at"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// CreateSubmissionRequest is the public submission body. The ledger forces
// status=pending and source=user-submission regardless of the caller.
type CreateSubmissionRequest struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description,omitempty"`
	Price        int64    `json:"price" validate:"required,gt=0"`
	PriceLabel   string   `json:"price_label,omitempty"`
	Location     string   `json:"location,omitempty"`
	City         string   `json:"city" validate:"required"`
	Address      string   `json:"address,omitempty"`
	PostalCode   string   `json:"postal_code,omitempty"`
	Bedrooms     int      `json:"bedrooms,omitempty"`
	Bathrooms    int      `json:"bathrooms,omitempty"`
	Area         float64  `json:"area,omitempty"`
	AreaUnit     string   `json:"area_unit,omitempty"`
	PropertyType string   `json:"property_type" validate:"required"`
	ListingType  string   `json:"listing_type" validate:"required,oneof=sell lease"`
	Category     string   `json:"category" validate:"required,oneof=residential commercial"`
	Images       []string `json:"images,omitempty"`
}

// CreateAdminSubmissionRequest is the back-office creation body. The ledger
// forces source=admin; status is caller-supplied (typically approved or
// published).
type CreateAdminSubmissionRequest struct {
	CreateSubmissionRequest
	Status     string `json:"status" validate:"required,oneof=pending approved rejected published"`
	IsFeatured bool   `json:"is_featured,omitempty"`
	IsNew      bool   `json:"is_new,omitempty"`
	IsVerified bool   `json:"is_verified,omitempty"`
}

// UpdateSubmissionRequest merges set fields into an existing submission.
// Nil fields are left untouched.
type UpdateSubmissionRequest struct {
	Title        *string   `json:"title,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Price        *int64    `json:"price,omitempty"`
	PriceLabel   *string   `json:"price_label,omitempty"`
	Location     *string   `json:"location,omitempty"`
	City         *string   `json:"city,omitempty"`
	Address      *string   `json:"address,omitempty"`
	PostalCode   *string   `json:"postal_code,omitempty"`
	Bedrooms     *int      `json:"bedrooms,omitempty"`
	Bathrooms    *int      `json:"bathrooms,omitempty"`
	Area         *float64  `json:"area,omitempty"`
	AreaUnit     *string   `json:"area_unit,omitempty"`
	PropertyType *string   `json:"property_type,omitempty"`
	ListingType  *string   `json:"listing_type,omitempty" validate:"omitempty,oneof=sell lease"`
	Category     *string   `json:"category,omitempty" validate:"omitempty,oneof=residential commercial"`
	Images       *[]string `json:"images,omitempty"`
	IsFeatured   *bool     `json:"is_featured,omitempty"`
	IsNew        *bool     `json:"is_new,omitempty"`
	IsVerified   *bool     `json:"is_verified,omitempty"`
	AdminNotes   *string   `json:"admin_notes,omitempty"`
}

// ReviewRequest carries the optional reviewer notes for approve/reject.
type ReviewRequest struct {
	Notes string `json:"notes,omitempty"`
}

// SubmissionStats is the back-office dashboard aggregation. Total always
// equals the sum of the per-status counts; PendingSell+PendingLease always
// equals Pending.
type SubmissionStats struct {
	Total        int `json:"total"`
	Pending      int `json:"pending"`
	Approved     int `json:"approved"`
	Rejected     int `json:"rejected"`
	Published    int `json:"published"`
	Deleted      int `json:"deleted"`
	PendingSell  int `json:"pending_sell"`
	PendingLease int `json:"pending_lease"`
}

// SubmissionListResponse is the API response for listing submissions
type SubmissionListResponse struct {
	Items      []Submission `json:"items"`
	TotalCount int          `json:"total_count"`
}
