package dto

// CreateRoomRequest represents the request to create a room
type CreateRoomRequest struct {
	Name      string  `json:"name" validate:"required,min=1,max=100"`
	Capacity  int     `json:"capacity" validate:"required,min=1"`
	Equipment *string `json:"equipment,omitempty"`
	Building  *string `json:"building,omitempty"`
	Floor     *int    `json:"floor,omitempty"`
}

// UpdateRoomRequest represents the request to update a room
type UpdateRoomRequest struct {
	Name      string  `json:"name" validate:"required,min=1,max=100"`
	Capacity  int     `json:"capacity" validate:"required,min=1"`
	Equipment *string `json:"equipment,omitempty"`
	Building  *string `json:"building,omitempty"`
	Floor     *int    `json:"floor,omitempty"`
}

// CreateCourseRequest schedules a new course session
type CreateCourseRequest struct {
	FormationID       int64   `json:"formationId" validate:"required,min=1"`
	TrainerID         int64   `json:"trainerId" validate:"omitempty,min=1"`
	RoomID            *int64  `json:"roomId,omitempty" validate:"omitempty,min=1"`
	Title             string  `json:"title" validate:"required,min=2,max=200"`
	Description       *string `json:"description,omitempty"`
	Date              string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime         string  `json:"startTime" validate:"required,datetime=15:04"`
	EndTime           string  `json:"endTime" validate:"required,datetime=15:04"`
	Objectives        *string `json:"objectives,omitempty"`
	RequiredMaterials *string `json:"requiredMaterials,omitempty"`
	Notes             *string `json:"notes,omitempty"`
}

// UpdateCourseRequest reschedules or edits a course session
type UpdateCourseRequest struct {
	FormationID       int64   `json:"formationId" validate:"required,min=1"`
	RoomID            *int64  `json:"roomId,omitempty" validate:"omitempty,min=1"`
	Title             string  `json:"title" validate:"required,min=2,max=200"`
	Description       *string `json:"description,omitempty"`
	Date              string  `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime         string  `json:"startTime" validate:"required,datetime=15:04"`
	EndTime           string  `json:"endTime" validate:"required,datetime=15:04"`
	Objectives        *string `json:"objectives,omitempty"`
	RequiredMaterials *string `json:"requiredMaterials,omitempty"`
	Notes             *string `json:"notes,omitempty"`
}

// CourseFilter narrows course listings
type CourseFilter struct {
	// Period is "past" or "upcoming"; upcoming is the default
	Period      string
	FormationID *int64
	TrainerID   *int64
}

// CreateAvailabilityRequest declares a trainer time window
type CreateAvailabilityRequest struct {
	StartsAt string  `json:"startsAt" validate:"required"`
	EndsAt   string  `json:"endsAt" validate:"required"`
	Kind     string  `json:"kind" validate:"required,oneof=AVAILABLE UNAVAILABLE"`
	Notes    *string `json:"notes,omitempty"`
}
