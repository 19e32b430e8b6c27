package models

import "time"

// Domain groups formations by thematic area
type Domain struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	Color       string    `json:"color" db:"color"` // hex, used by the frontend
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Formation is a sellable training program inside a domain
type Formation struct {
	ID             int64     `json:"id" db:"id"`
	Reference      string    `json:"reference" db:"reference"`
	Title          string    `json:"title" db:"title"`
	Description    *string   `json:"description,omitempty" db:"description"`
	Objectives     *string   `json:"objectives,omitempty" db:"objectives"`
	TargetAudience *string   `json:"targetAudience,omitempty" db:"target_audience"`
	DurationDays   int       `json:"durationDays" db:"duration_days"`
	Price          float64   `json:"price" db:"price"`
	IsActive       bool      `json:"isActive" db:"is_active"`
	DomainID       int64     `json:"domainId" db:"domain_id"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`

	Domain *Domain `json:"domain,omitempty"` // Relation, no db tag
}

// Module is an ordered unit of content within a formation
type Module struct {
	ID            int64   `json:"id" db:"id"`
	FormationID   int64   `json:"formationId" db:"formation_id"`
	OrderIndex    int     `json:"orderIndex" db:"order_index"`
	Title         string  `json:"title" db:"title"`
	Description   *string `json:"description,omitempty" db:"description"`
	DurationHours int     `json:"durationHours" db:"duration_hours"`
}
