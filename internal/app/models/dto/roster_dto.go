package dto

import "github.com/avelin/formatrack/internal/app/models"

// StudentRosterDetail is a trainer's view of one of their students: the
// profile, the enrollments into formations the trainer teaches, and the
// student's personal documents
type StudentRosterDetail struct {
	Student           models.Student            `json:"student"`
	Enrollments       []models.Enrollment       `json:"enrollments"`
	PersonalDocuments []models.PersonalDocument `json:"personalDocuments"`
}
