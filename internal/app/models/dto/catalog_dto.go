package dto

import "github.com/avelin/formatrack/internal/app/models"

// CreateDomainRequest represents the request to create a domain
type CreateDomainRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description *string `json:"description,omitempty"`
	Color       string  `json:"color" validate:"required,hexcolor"`
}

// UpdateDomainRequest represents the request to update a domain
type UpdateDomainRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description *string `json:"description,omitempty"`
	Color       string  `json:"color" validate:"required,hexcolor"`
}

// CreateFormationRequest represents the request to create a formation
type CreateFormationRequest struct {
	Reference      string  `json:"reference" validate:"required,min=2,max=50"`
	Title          string  `json:"title" validate:"required,min=2,max=200"`
	Description    *string `json:"description,omitempty"`
	Objectives     *string `json:"objectives,omitempty"`
	TargetAudience *string `json:"targetAudience,omitempty"`
	DurationDays   int     `json:"durationDays" validate:"required,min=1"`
	Price          float64 `json:"price" validate:"min=0"`
	IsActive       *bool   `json:"isActive,omitempty"`
	DomainID       int64   `json:"domainId" validate:"required,min=1"`
}

// UpdateFormationRequest represents the request to update a formation
type UpdateFormationRequest struct {
	Reference      string  `json:"reference" validate:"required,min=2,max=50"`
	Title          string  `json:"title" validate:"required,min=2,max=200"`
	Description    *string `json:"description,omitempty"`
	Objectives     *string `json:"objectives,omitempty"`
	TargetAudience *string `json:"targetAudience,omitempty"`
	DurationDays   int     `json:"durationDays" validate:"required,min=1"`
	Price          float64 `json:"price" validate:"min=0"`
	IsActive       *bool   `json:"isActive,omitempty"`
	DomainID       int64   `json:"domainId" validate:"required,min=1"`
}

// FormationFilter narrows formation listings
type FormationFilter struct {
	DomainID *int64
	IsActive *bool
	Search   string
}

// CreateModuleRequest represents the request to add a module to a formation
type CreateModuleRequest struct {
	OrderIndex    int     `json:"orderIndex" validate:"required,min=1"`
	Title         string  `json:"title" validate:"required,min=2,max=200"`
	Description   *string `json:"description,omitempty"`
	DurationHours int     `json:"durationHours" validate:"required,min=1"`
}

// UpdateModuleRequest represents the request to update a module
type UpdateModuleRequest struct {
	OrderIndex    int     `json:"orderIndex" validate:"required,min=1"`
	Title         string  `json:"title" validate:"required,min=2,max=200"`
	Description   *string `json:"description,omitempty"`
	DurationHours int     `json:"durationHours" validate:"required,min=1"`
}

// FormationResponse is a formation with its domain and modules
type FormationResponse struct {
	Formation models.Formation `json:"formation"`
	Modules   []models.Module  `json:"modules,omitempty"`
}
