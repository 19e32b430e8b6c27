package dto

// CreateEnrollmentRequest is a student's application to a formation
type CreateEnrollmentRequest struct {
	FormationID int64   `json:"formationId" validate:"required,min=1"`
	Motivation  *string `json:"motivation,omitempty"`
}

// UpdateEnrollmentStatusRequest moves an enrollment through its lifecycle
type UpdateEnrollmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING VALIDATED REFUSED WITHDRAWN COMPLETED"`
}

// EnrollmentFilter narrows enrollment listings
type EnrollmentFilter struct {
	StudentID   *int64
	FormationID *int64
	Status      string
	// TrainerID restricts results to formations taught by that trainer
	TrainerID *int64
}
