package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "STUDENT"
	RoleTrainer RoleType = "TRAINER"
	RoleAdmin   RoleType = "ADMIN"
)

// EnrollmentStatus represents the lifecycle state of an enrollment
type EnrollmentStatus string

const (
	EnrollmentPending   EnrollmentStatus = "PENDING"
	EnrollmentValidated EnrollmentStatus = "VALIDATED"
	EnrollmentRefused   EnrollmentStatus = "REFUSED"
	EnrollmentWithdrawn EnrollmentStatus = "WITHDRAWN"
	EnrollmentCompleted EnrollmentStatus = "COMPLETED"
)

// AvailabilityKind distinguishes declared availability from declared absence
type AvailabilityKind string

const (
	AvailabilityAvailable   AvailabilityKind = "AVAILABLE"
	AvailabilityUnavailable AvailabilityKind = "UNAVAILABLE"
)

// DocumentType classifies a shared document by its content
type DocumentType string

const (
	DocumentPDF   DocumentType = "PDF"
	DocumentDoc   DocumentType = "DOC"
	DocumentXLS   DocumentType = "XLS"
	DocumentPPT   DocumentType = "PPT"
	DocumentImage DocumentType = "IMG"
	DocumentVideo DocumentType = "VID"
	DocumentAudio DocumentType = "AUD"
	DocumentLink  DocumentType = "LINK"
	DocumentOther DocumentType = "OTHER"
)

// PersonalDocumentType classifies a student's personal document
type PersonalDocumentType string

const (
	PersonalDocCV          PersonalDocumentType = "CV"
	PersonalDocCoverLetter PersonalDocumentType = "COVER_LETTER"
	PersonalDocDiploma     PersonalDocumentType = "DIPLOMA"
	PersonalDocOther       PersonalDocumentType = "OTHER"
)
