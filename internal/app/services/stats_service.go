package services

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/avelin/formatrack/internal/app/auth"
	"github.com/avelin/formatrack/internal/app/models"
	"github.com/avelin/formatrack/internal/app/models/dto"
	"github.com/avelin/formatrack/internal/app/repositories"
	"github.com/avelin/formatrack/internal/pkg/apperrors"
	"github.com/avelin/formatrack/internal/pkg/helpers"
)

// StatsService computes attendance rates and the dashboard views
type StatsService struct {
	courses      *repositories.CourseRepository
	enrollments  *repositories.EnrollmentRepository
	attendances  *repositories.AttendanceRepository
	personalDocs *repositories.PersonalDocumentRepository
	users        *repositories.UserRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(
	courses *repositories.CourseRepository,
	enrollments *repositories.EnrollmentRepository,
	attendances *repositories.AttendanceRepository,
	personalDocs *repositories.PersonalDocumentRepository,
	users *repositories.UserRepository,
) *StatsService {
	return &StatsService{
		courses:      courses,
		enrollments:  enrollments,
		attendances:  attendances,
		personalDocs: personalDocs,
		users:        users,
	}
}

// round1 rounds half-up to one decimal
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// computeAttendanceStats derives the rate from raw counts. An empty set has
// rate 0 rather than being an error.
func computeAttendanceStats(total, present int) dto.AttendanceStats {
	stats := dto.AttendanceStats{
		Total:   total,
		Present: present,
		Absent:  total - present,
	}
	if total > 0 {
		stats.Rate = round1(100 * float64(present) / float64(total))
	}
	return stats
}

// rankFormationEntries sorts a per-formation breakdown by rate descending.
// The sort is stable and uses no tie-break, so equal rates keep their
// incoming order.
func rankFormationEntries(entries []dto.FormationAttendanceEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Rate > entries[j].Rate
	})
}

// GetStudentStats returns a student's global and per-formation attendance.
// Students see their own; trainers only students they teach.
func (s *StatsService) GetStudentStats(ctx context.Context, actor auth.Actor, studentID int64) (*dto.StudentStatsResponse, error) {
	switch actor.Role {
	case models.RoleStudent:
		studentID = actor.StudentID
	case models.RoleTrainer:
		taught, err := s.users.IsStudentTaughtByTrainer(ctx, studentID, actor.TrainerID)
		if err != nil {
			return nil, err
		}
		if !taught {
			return nil, apperrors.ErrStudentNotFound
		}
	}

	total, present, err := s.attendances.StatsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.attendances.StatsByStudentPerFormation(ctx, studentID)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.FormationAttendanceEntry, 0, len(breakdown))
	for _, row := range breakdown {
		entry := dto.FormationAttendanceEntry{
			FormationID:    row.FormationID,
			FormationTitle: row.FormationTitle,
			Total:          row.Total,
			Present:        row.Present,
		}
		if row.Total > 0 {
			entry.Rate = round1(100 * float64(row.Present) / float64(row.Total))
		}
		entries = append(entries, entry)
	}
	rankFormationEntries(entries)

	return &dto.StudentStatsResponse{
		Global:      computeAttendanceStats(total, present),
		ByFormation: entries,
	}, nil
}

// GetTrainerDashboard assembles the trainer home view
func (s *StatsService) GetTrainerDashboard(ctx context.Context, actor auth.Actor) (*dto.TrainerDashboardResponse, error) {
	if actor.Role != models.RoleTrainer {
		return nil, apperrors.ErrPermissionDenied
	}
	trainerID := actor.TrainerID

	today := helpers.StartOfDay(time.Now())
	upcoming, err := s.courses.GetUpcomingByTrainer(ctx, trainerID, today, today.AddDate(0, 0, 7))
	if err != nil {
		return nil, err
	}

	var nextCourse *models.Course
	if len(upcoming) > 0 {
		nextCourse = &upcoming[0]
	}

	unmarked, err := s.courses.GetUnmarkedPastByTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	totalCourses, err := s.courses.CountByTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	tracked, err := s.attendances.TopStudentsByTrainer(ctx, trainerID, 5)
	if err != nil {
		return nil, err
	}

	total, present, err := s.attendances.StatsByTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	return &dto.TrainerDashboardResponse{
		UpcomingCourses:  upcoming,
		NextCourse:       nextCourse,
		UnmarkedCourses:  unmarked,
		TotalCourses:     int(totalCourses),
		TrackedStudents:  tracked,
		GlobalAttendance: computeAttendanceStats(total, present),
	}, nil
}

// GetStudentDashboard assembles the student home view: up to 3 validated
// enrollments, the 5 latest personal documents and the attendance summary
func (s *StatsService) GetStudentDashboard(ctx context.Context, actor auth.Actor) (*dto.StudentDashboardResponse, error) {
	if actor.Role != models.RoleStudent {
		return nil, apperrors.ErrPermissionDenied
	}
	studentID := actor.StudentID

	validated := string(models.EnrollmentValidated)
	enrollments, _, err := s.enrollments.GetAll(ctx, dto.EnrollmentFilter{
		StudentID: &studentID,
		Status:    validated,
	}, 1, 3)
	if err != nil {
		return nil, err
	}

	recentDocs, err := s.personalDocs.GetRecentByStudent(ctx, studentID, 5)
	if err != nil {
		return nil, err
	}

	total, present, err := s.attendances.StatsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return &dto.StudentDashboardResponse{
		Enrollments:     enrollments,
		RecentDocuments: recentDocs,
		Attendance:      computeAttendanceStats(total, present),
	}, nil
}

// GetFormationStats returns the attendance rate across every course of one
// formation
func (s *StatsService) GetFormationStats(ctx context.Context, formationID int64) (*dto.AttendanceStats, error) {
	total, present, err := s.attendances.StatsByFormation(ctx, formationID)
	if err != nil {
		return nil, err
	}
	stats := computeAttendanceStats(total, present)
	return &stats, nil
}

// GetMonthlyActivity returns per-month session counts over the last 12
// months. Trainers get their own activity, admins the whole institute's.
func (s *StatsService) GetMonthlyActivity(ctx context.Context, actor auth.Actor) ([]dto.MonthlyActivityEntry, error) {
	var trainerID *int64
	if actor.Role == models.RoleTrainer {
		trainerID = &actor.TrainerID
	}

	since := helpers.MonthsBack(time.Now(), 11)
	entries, err := s.courses.MonthlySessionCounts(ctx, trainerID, since)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []dto.MonthlyActivityEntry{}
	}
	return entries, nil
}
