package models

import "time"

// Attendance records one student's presence at one course session.
// At most one record exists per (course, student) pair.
type Attendance struct {
	ID         int64      `json:"id" db:"id"`
	CourseID   int64      `json:"courseId" db:"course_id"`
	StudentID  int64      `json:"studentId" db:"student_id"`
	Present    bool       `json:"present" db:"present"`
	Remark     *string    `json:"remark,omitempty" db:"remark"`
	VerifiedAt *time.Time `json:"verifiedAt,omitempty" db:"verified_at"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`

	// Relations
	Course  *Course  `json:"course,omitempty"`
	Student *Student `json:"student,omitempty"`
}
