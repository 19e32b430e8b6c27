package models

import "time"

// Document is a trainer-shared resource: either an uploaded file or an
// external URL, never both. Type is derived from the file extension, or
// LINK when a URL is given.
type Document struct {
	ID                int64        `json:"id" db:"id"`
	TrainerID         int64        `json:"trainerId" db:"trainer_id"`
	Title             string       `json:"title" db:"title"`
	Description       *string      `json:"description,omitempty" db:"description"`
	FilePath          *string      `json:"filePath,omitempty" db:"file_path"`
	ExternalURL       *string      `json:"externalUrl,omitempty" db:"external_url"`
	Type              DocumentType `json:"type" db:"type"`
	VisibleToStudents bool         `json:"visibleToStudents" db:"visible_to_students"`
	Tags              *string      `json:"tags,omitempty" db:"tags"` // comma separated
	CreatedAt         time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time    `json:"updatedAt" db:"updated_at"`

	// Relations
	Trainer      *Trainer `json:"trainer,omitempty"`
	FormationIDs []int64  `json:"formationIds,omitempty"` // M:N, loaded separately
}

// PersonalDocument is a student-owned file (CV, diploma, ...). Admins may
// mark it validated after review.
type PersonalDocument struct {
	ID        int64                `json:"id" db:"id"`
	StudentID int64                `json:"studentId" db:"student_id"`
	Type      PersonalDocumentType `json:"type" db:"type"`
	Title     string               `json:"title" db:"title"`
	FilePath  string               `json:"filePath" db:"file_path"`
	Validated bool                 `json:"validated" db:"validated"`
	CreatedAt time.Time            `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time            `json:"updatedAt" db:"updated_at"`

	Student *Student `json:"student,omitempty"`
}
