package models

import "time"

// Room is a physical training room
type Room struct {
	ID        int64   `json:"id" db:"id"`
	Name      string  `json:"name" db:"name"`
	Capacity  int     `json:"capacity" db:"capacity"`
	Equipment *string `json:"equipment,omitempty" db:"equipment"`
	Building  *string `json:"building,omitempty" db:"building"`
	Floor     *int    `json:"floor,omitempty" db:"floor"`
}

// Course is a scheduled session of a formation, taught by one trainer,
// optionally in a room. Date carries the calendar day; StartTime and
// EndTime carry the time of day in "15:04" form.
type Course struct {
	ID                int64     `json:"id" db:"id"`
	FormationID       int64     `json:"formationId" db:"formation_id"`
	TrainerID         int64     `json:"trainerId" db:"trainer_id"`
	RoomID            *int64    `json:"roomId,omitempty" db:"room_id"`
	Title             string    `json:"title" db:"title"`
	Description       *string   `json:"description,omitempty" db:"description"`
	Date              time.Time `json:"date" db:"date"`
	StartTime         string    `json:"startTime" db:"start_time"`
	EndTime           string    `json:"endTime" db:"end_time"`
	Objectives        *string   `json:"objectives,omitempty" db:"objectives"`
	RequiredMaterials *string   `json:"requiredMaterials,omitempty" db:"required_materials"`
	Notes             *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`

	// Relations
	Formation *Formation `json:"formation,omitempty"`
	Trainer   *Trainer   `json:"trainer,omitempty"`
	Room      *Room      `json:"room,omitempty"`
}

// Availability is a trainer-declared time window. It is advisory only:
// scheduling never checks it, the planner reads it.
type Availability struct {
	ID        int64            `json:"id" db:"id"`
	TrainerID int64            `json:"trainerId" db:"trainer_id"`
	StartsAt  time.Time        `json:"startsAt" db:"starts_at"`
	EndsAt    time.Time        `json:"endsAt" db:"ends_at"`
	Kind      AvailabilityKind `json:"kind" db:"kind"`
	Notes     *string          `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
}
