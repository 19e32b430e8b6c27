package models

import "time"

// Enrollment links a student to a formation with a lifecycle status.
// A student enrolls at most once per formation.
type Enrollment struct {
	ID          int64            `json:"id" db:"id"`
	StudentID   int64            `json:"studentId" db:"student_id"`
	FormationID int64            `json:"formationId" db:"formation_id"`
	Status      EnrollmentStatus `json:"status" db:"status"`
	Motivation  *string          `json:"motivation,omitempty" db:"motivation"`
	DecidedAt   *time.Time       `json:"decidedAt,omitempty" db:"decided_at"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time        `json:"updatedAt" db:"updated_at"`

	// Relations
	Student   *Student   `json:"student,omitempty"`
	Formation *Formation `json:"formation,omitempty"`
}
