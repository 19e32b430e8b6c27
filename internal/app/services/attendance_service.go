package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/avelin/formatrack/internal/app/auth"
	"github.com/avelin/formatrack/internal/app/models"
	"github.com/avelin/formatrack/internal/app/models/dto"
	"github.com/avelin/formatrack/internal/app/repositories"
	"github.com/avelin/formatrack/internal/db"
	"github.com/avelin/formatrack/internal/pkg/apperrors"
)

// AttendanceService handles bulk attendance marking and attendance listings
type AttendanceService struct {
	db          *db.PostgresDB
	courses     *repositories.CourseRepository
	enrollments *repositories.EnrollmentRepository
	attendances *repositories.AttendanceRepository
	users       *repositories.UserRepository
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(
	database *db.PostgresDB,
	courses *repositories.CourseRepository,
	enrollments *repositories.EnrollmentRepository,
	attendances *repositories.AttendanceRepository,
	users *repositories.UserRepository,
) *AttendanceService {
	return &AttendanceService{
		db:          database,
		courses:     courses,
		enrollments: enrollments,
		attendances: attendances,
		users:       users,
	}
}

// attendancePlan is the outcome of reconciling a bulk submission against
// the eligible roster and existing records
type attendancePlan struct {
	creates []models.Attendance
	updates []models.Attendance
}

// buildAttendancePlan decides, per eligible student, what a bulk marking
// does. A submitted student gets a record created or overwritten with the
// submitted values. An eligible student missing from the submission gets an
// absent record created only when none exists; an existing record is never
// reset by omission. Submitted students outside the eligible set are
// dropped. Applying the same submission twice yields the same stored state.
func buildAttendancePlan(courseID int64, eligible []models.Student, existing map[int64]models.Attendance, entries []dto.AttendanceEntry, now time.Time) attendancePlan {
	submitted := make(map[int64]dto.AttendanceEntry, len(entries))
	for _, entry := range entries {
		submitted[entry.StudentID] = entry
	}

	var plan attendancePlan
	for _, student := range eligible {
		entry, wasSubmitted := submitted[student.ID]
		record, exists := existing[student.ID]

		switch {
		case wasSubmitted && exists:
			record.Present = entry.Present
			record.Remark = entry.Remark
			record.VerifiedAt = &now
			plan.updates = append(plan.updates, record)
		case wasSubmitted:
			plan.creates = append(plan.creates, models.Attendance{
				CourseID:   courseID,
				StudentID:  student.ID,
				Present:    entry.Present,
				Remark:     entry.Remark,
				VerifiedAt: &now,
			})
		case !exists:
			plan.creates = append(plan.creates, models.Attendance{
				CourseID:  courseID,
				StudentID: student.ID,
				Present:   false,
			})
		}
	}
	return plan
}

// MarkAttendance applies a bulk attendance submission for one course. Only
// the course's trainer or an admin may mark; all writes happen in one
// transaction.
func (s *AttendanceService) MarkAttendance(ctx context.Context, actor auth.Actor, courseID int64, req dto.BulkAttendanceRequest) (*dto.BulkAttendanceResponse, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManageTrainerResource(course.TrainerID) {
		return nil, apperrors.ErrPermissionDenied
	}

	eligible, err := s.enrollments.GetValidatedStudentsByFormation(ctx, course.FormationID)
	if err != nil {
		return nil, err
	}

	existing, err := s.attendances.GetByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	plan := buildAttendancePlan(courseID, eligible, existing, req.Entries, time.Now())

	err = s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for i := range plan.creates {
			if err := s.attendances.CreateTx(ctx, tx, &plan.creates[i]); err != nil {
				return err
			}
		}
		for i := range plan.updates {
			if err := s.attendances.UpdateTx(ctx, tx, &plan.updates[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.BulkAttendanceResponse{
		Created: len(plan.creates),
		Updated: len(plan.updates),
		Total:   len(eligible),
	}, nil
}

// GetCourseAttendance returns the eligible roster of a course with each
// student's record when one exists
func (s *AttendanceService) GetCourseAttendance(ctx context.Context, actor auth.Actor, courseID int64) ([]dto.CourseAttendanceEntry, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManageTrainerResource(course.TrainerID) {
		return nil, apperrors.ErrPermissionDenied
	}

	eligible, err := s.enrollments.GetValidatedStudentsByFormation(ctx, course.FormationID)
	if err != nil {
		return nil, err
	}

	existing, err := s.attendances.GetByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.CourseAttendanceEntry, 0, len(eligible))
	for _, student := range eligible {
		entry := dto.CourseAttendanceEntry{Student: student}
		if record, ok := existing[student.ID]; ok {
			entry.Attendance = &record
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// GetStudentAttendance lists a student's records, newest course first.
// Students see their own; trainers only students they teach; admins any.
func (s *AttendanceService) GetStudentAttendance(ctx context.Context, actor auth.Actor, studentID int64, page, pageSize int) ([]models.Attendance, int64, error) {
	switch actor.Role {
	case models.RoleStudent:
		studentID = actor.StudentID
	case models.RoleTrainer:
		taught, err := s.users.IsStudentTaughtByTrainer(ctx, studentID, actor.TrainerID)
		if err != nil {
			return nil, 0, err
		}
		if !taught {
			return nil, 0, apperrors.ErrStudentNotFound
		}
	}
	if studentID <= 0 {
		return nil, 0, apperrors.NewValidationError("studentId is required")
	}
	return s.attendances.GetByStudent(ctx, studentID, page, pageSize)
}
