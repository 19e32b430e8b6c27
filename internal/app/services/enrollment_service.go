package services

import (
	"context"

	"github.com/avelin/formatrack/internal/app/auth"
	"github.com/avelin/formatrack/internal/app/models"
	"github.com/avelin/formatrack/internal/app/models/dto"
	"github.com/avelin/formatrack/internal/app/repositories"
	"github.com/avelin/formatrack/internal/pkg/apperrors"
	"github.com/avelin/formatrack/internal/pkg/dberrors"
)

// EnrollmentService manages the enrollment lifecycle
type EnrollmentService struct {
	enrollments *repositories.EnrollmentRepository
	formations  *repositories.FormationRepository
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	enrollments *repositories.EnrollmentRepository,
	formations *repositories.FormationRepository,
) *EnrollmentService {
	return &EnrollmentService{
		enrollments: enrollments,
		formations:  formations,
	}
}

// GetEnrollments lists enrollments scoped by role: students see their own,
// trainers see enrollments into formations they teach, admins see all
func (s *EnrollmentService) GetEnrollments(ctx context.Context, actor auth.Actor, filter dto.EnrollmentFilter, page, pageSize int) ([]models.Enrollment, int64, error) {
	switch actor.Role {
	case models.RoleStudent:
		filter.StudentID = &actor.StudentID
	case models.RoleTrainer:
		filter.TrainerID = &actor.TrainerID
	}
	return s.enrollments.GetAll(ctx, filter, page, pageSize)
}

// GetEnrollment returns one enrollment when the actor may see it.
// Out-of-scope ids answer not found, indistinguishable from nonexistent.
func (s *EnrollmentService) GetEnrollment(ctx context.Context, actor auth.Actor, id int64) (*models.Enrollment, error) {
	enrollment, err := s.enrollments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case models.RoleStudent:
		if enrollment.StudentID != actor.StudentID {
			return nil, apperrors.ErrEnrollmentNotFound
		}
	case models.RoleTrainer:
		ok, err := s.enrollments.HasTrainerCourse(ctx, enrollment.FormationID, actor.TrainerID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperrors.ErrEnrollmentNotFound
		}
	}
	return enrollment, nil
}

// CreateEnrollment submits a pending enrollment for the calling student
func (s *EnrollmentService) CreateEnrollment(ctx context.Context, actor auth.Actor, req dto.CreateEnrollmentRequest) (*models.Enrollment, error) {
	if actor.Role != models.RoleStudent {
		return nil, apperrors.ErrPermissionDenied
	}

	formation, err := s.formations.GetByID(ctx, req.FormationID)
	if err != nil {
		return nil, err
	}
	if !formation.IsActive {
		return nil, apperrors.NewValidationError("formation is not open for enrollment")
	}

	enrollment := &models.Enrollment{
		StudentID:   actor.StudentID,
		FormationID: req.FormationID,
		Status:      models.EnrollmentPending,
		Motivation:  req.Motivation,
	}

	id, err := s.enrollments.Create(ctx, enrollment)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_enrollments_student_formation") {
			return nil, apperrors.ErrEnrollmentAlreadyExists
		}
		return nil, err
	}
	return s.enrollments.GetByID(ctx, id)
}

// UpdateEnrollmentStatus moves an enrollment through its lifecycle. Admins
// decide validations and refusals; a student may only withdraw their own.
func (s *EnrollmentService) UpdateEnrollmentStatus(ctx context.Context, actor auth.Actor, id int64, status models.EnrollmentStatus) (*models.Enrollment, error) {
	enrollment, err := s.enrollments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() {
		if actor.Role != models.RoleStudent || enrollment.StudentID != actor.StudentID {
			return nil, apperrors.ErrPermissionDenied
		}
		if status != models.EnrollmentWithdrawn {
			return nil, apperrors.ErrPermissionDenied
		}
	}

	if err := s.enrollments.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.enrollments.GetByID(ctx, id)
}

// DeleteEnrollment removes an enrollment, admin only
func (s *EnrollmentService) DeleteEnrollment(ctx context.Context, actor auth.Actor, id int64) error {
	if !actor.IsAdmin() {
		return apperrors.ErrPermissionDenied
	}
	return s.enrollments.Delete(ctx, id)
}
