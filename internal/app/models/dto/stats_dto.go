package dto

import "github.com/avelin/formatrack/internal/app/models"

// AttendanceStats aggregates presence counts into a rate.
// Rate is a percentage rounded half-up to one decimal; an empty set has
// rate 0.
type AttendanceStats struct {
	Total   int     `json:"total"`
	Present int     `json:"present"`
	Absent  int     `json:"absent"`
	Rate    float64 `json:"rate"`
}

// FormationAttendanceEntry is one formation's attendance breakdown for a
// student, used in per-formation rankings
type FormationAttendanceEntry struct {
	FormationID    int64   `json:"formationId"`
	FormationTitle string  `json:"formationTitle"`
	Total          int     `json:"total"`
	Present        int     `json:"present"`
	Rate           float64 `json:"rate"`
}

// StudentStatsResponse is a student's global and per-formation attendance
type StudentStatsResponse struct {
	Global      AttendanceStats            `json:"global"`
	ByFormation []FormationAttendanceEntry `json:"byFormation"`
}

// TrackedStudent is a roster entry with attendance counts under one trainer
type TrackedStudent struct {
	StudentID    int64  `json:"studentId"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	PresentCount int    `json:"presentCount"`
	TotalCount   int    `json:"totalCount"`
}

// TrainerDashboardResponse is the trainer home view
type TrainerDashboardResponse struct {
	UpcomingCourses  []models.Course  `json:"upcomingCourses"`
	NextCourse       *models.Course   `json:"nextCourse,omitempty"`
	UnmarkedCourses  []models.Course  `json:"unmarkedCourses"`
	TotalCourses     int              `json:"totalCourses"`
	TrackedStudents  []TrackedStudent `json:"trackedStudents"`
	GlobalAttendance AttendanceStats  `json:"globalAttendance"`
}

// StudentDashboardResponse is the student home view
type StudentDashboardResponse struct {
	Enrollments     []models.Enrollment       `json:"enrollments"`
	RecentDocuments []models.PersonalDocument `json:"recentDocuments"`
	Attendance      AttendanceStats           `json:"attendance"`
}

// MonthlyActivityEntry is the number of course sessions in one month
type MonthlyActivityEntry struct {
	Month    string `json:"month" example:"2025-06"`
	Sessions int    `json:"sessions"`
}
