package dto

import "github.com/avelin/formatrack/internal/app/models"

// AttendanceEntry is one submitted record in a bulk marking
type AttendanceEntry struct {
	StudentID int64   `json:"studentId" validate:"required,min=1"`
	Present   bool    `json:"present"`
	Remark    *string `json:"remark,omitempty"`
}

// BulkAttendanceRequest marks attendance for a whole course session.
// Eligible students missing from Entries get an absent record created only
// when none exists yet.
type BulkAttendanceRequest struct {
	Entries []AttendanceEntry `json:"entries" validate:"required,dive"`
}

// BulkAttendanceResponse summarizes what a bulk marking changed
type BulkAttendanceResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Total   int `json:"total"`
}

// CourseAttendanceEntry pairs an eligible student with their attendance
// record, nil while unmarked
type CourseAttendanceEntry struct {
	Student    models.Student     `json:"student"`
	Attendance *models.Attendance `json:"attendance,omitempty"`
}
