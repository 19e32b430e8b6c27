package services

import (
	"context"

	"github.com/avelin/formatrack/internal/app/auth"
	"github.com/avelin/formatrack/internal/app/models"
	"github.com/avelin/formatrack/internal/app/models/dto"
	"github.com/avelin/formatrack/internal/app/repositories"
	"github.com/avelin/formatrack/internal/pkg/apperrors"
)

// StudentService serves the trainer's student roster
type StudentService struct {
	users        *repositories.UserRepository
	enrollments  *repositories.EnrollmentRepository
	personalDocs *repositories.PersonalDocumentRepository
}

// NewStudentService creates a new StudentService
func NewStudentService(
	users *repositories.UserRepository,
	enrollments *repositories.EnrollmentRepository,
	personalDocs *repositories.PersonalDocumentRepository,
) *StudentService {
	return &StudentService{
		users:        users,
		enrollments:  enrollments,
		personalDocs: personalDocs,
	}
}

// GetRoster lists the distinct students the trainer teaches, ordered by
// name and paginated
func (s *StudentService) GetRoster(ctx context.Context, actor auth.Actor, page, pageSize int) ([]models.Student, int64, error) {
	if actor.Role != models.RoleTrainer {
		return nil, 0, apperrors.ErrPermissionDenied
	}
	return s.users.GetStudentsByTrainer(ctx, actor.TrainerID, page, pageSize)
}

// GetRosterStudent returns one roster student with the trainer-relevant
// enrollments and the student's personal documents. A student outside the
// roster answers not found, indistinguishable from nonexistent.
func (s *StudentService) GetRosterStudent(ctx context.Context, actor auth.Actor, studentID int64) (*dto.StudentRosterDetail, error) {
	if actor.Role != models.RoleTrainer {
		return nil, apperrors.ErrPermissionDenied
	}

	taught, err := s.users.IsStudentTaughtByTrainer(ctx, studentID, actor.TrainerID)
	if err != nil {
		return nil, err
	}
	if !taught {
		return nil, apperrors.ErrStudentNotFound
	}

	student, err := s.users.GetStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	enrollments, _, err := s.enrollments.GetAll(ctx, dto.EnrollmentFilter{
		StudentID: &studentID,
		TrainerID: &actor.TrainerID,
	}, 1, 100)
	if err != nil {
		return nil, err
	}

	documents, err := s.personalDocs.GetByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if documents == nil {
		documents = []models.PersonalDocument{}
	}

	return &dto.StudentRosterDetail{
		Student:           *student,
		Enrollments:       enrollments,
		PersonalDocuments: documents,
	}, nil
}
