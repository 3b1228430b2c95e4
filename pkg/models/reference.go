package models

// Reference entities are the admin-curated lookup tables feeding the public
// forms. Unlike the ledgers they are physically removed on delete, and
// IsActive is a caller-respected visibility flag: inactive entries stay
// queryable but form-population call sites exclude them.

// Location is a city with its selectable area names. Submissions and
// requirements reference it by city/area string value, so deleting or
// renaming a location does not touch existing records.
type Location struct {
	ID       string   `json:"id"`
	City     string   `json:"city"`
	Areas    []string `json:"areas,omitempty"`
	IsActive bool     `json:"is_active"`
}

type CreateLocationRequest struct {
	City     string   `json:"city" validate:"required"`
	Areas    []string `json:"areas,omitempty"`
	IsActive *bool    `json:"is_active,omitempty"`
}

// UpdateLocationRequest replaces the areas list wholesale when set.
type UpdateLocationRequest struct {
	City     *string   `json:"city,omitempty"`
	Areas    *[]string `json:"areas,omitempty"`
	IsActive *bool     `json:"is_active,omitempty"`
}

// PropertyType is a selectable kind of property (Flat, Villa, Office, ...).
type PropertyType struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"` // residential | commercial
	IsActive bool   `json:"is_active"`
}

type CreatePropertyTypeRequest struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required,oneof=residential commercial"`
	IsActive *bool  `json:"is_active,omitempty"`
}

type UpdatePropertyTypeRequest struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty" validate:"omitempty,oneof=residential commercial"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// Amenity is a selectable feature (Gym, Parking, ...).
type Amenity struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

type CreateAmenityRequest struct {
	Name     string `json:"name" validate:"required"`
	IsActive *bool  `json:"is_active,omitempty"`
}

type UpdateAmenityRequest struct {
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}
