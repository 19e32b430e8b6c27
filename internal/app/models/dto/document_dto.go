package dto

// CreateDocumentRequest creates a shared document. The file itself comes
// from the multipart form; exactly one of file and ExternalURL must be
// present, which the service enforces.
type CreateDocumentRequest struct {
	Title             string  `form:"title" validate:"required,min=2,max=200"`
	Description       *string `form:"description"`
	ExternalURL       *string `form:"externalUrl" validate:"omitempty,url"`
	VisibleToStudents bool    `form:"visibleToStudents"`
	Tags              *string `form:"tags"`
	FormationIDs      []int64 `form:"formationIds"`
}

// UpdateDocumentRequest edits a shared document's metadata. File and URL
// are immutable after creation; re-upload means delete and recreate.
type UpdateDocumentRequest struct {
	Title             string  `json:"title" validate:"required,min=2,max=200"`
	Description       *string `json:"description,omitempty"`
	VisibleToStudents bool    `json:"visibleToStudents"`
	Tags              *string `json:"tags,omitempty"`
	FormationIDs      []int64 `json:"formationIds,omitempty"`
}

// DocumentFilter narrows shared document listings
type DocumentFilter struct {
	TrainerID   *int64
	FormationID *int64
	Type        string
	Search      string
	// VisibleOnly limits results to student-visible documents
	VisibleOnly bool
	// StudentID scopes visibility through the student's validated enrollments
	StudentID *int64
}

// CreatePersonalDocumentRequest uploads a student personal document
type CreatePersonalDocumentRequest struct {
	Type  string `form:"type" validate:"required,oneof=CV COVER_LETTER DIPLOMA OTHER"`
	Title string `form:"title" validate:"required,min=2,max=200"`
}

// UpdatePersonalDocumentRequest renames or reclassifies a personal document
type UpdatePersonalDocumentRequest struct {
	Type  string `json:"type" validate:"required,oneof=CV COVER_LETTER DIPLOMA OTHER"`
	Title string `json:"title" validate:"required,min=2,max=200"`
}

// ValidatePersonalDocumentRequest sets or clears the admin validation mark
type ValidatePersonalDocumentRequest struct {
	Validated *bool `json:"validated" validate:"required"`
}
