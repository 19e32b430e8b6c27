package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/avelin/formatrack/internal/app/auth"
	"github.com/avelin/formatrack/internal/app/models"
	"github.com/avelin/formatrack/internal/app/models/dto"
	"github.com/avelin/formatrack/internal/app/repositories"
	"github.com/avelin/formatrack/internal/pkg/apperrors"
	"github.com/avelin/formatrack/internal/pkg/filestorage"
	"github.com/avelin/formatrack/internal/pkg/logger"
)

// PersonalDocumentService manages student-owned documents
type PersonalDocumentService struct {
	personalDocs *repositories.PersonalDocumentRepository
	users        *repositories.UserRepository
	fileStorage  filestorage.FileStorage
}

// NewPersonalDocumentService creates a new PersonalDocumentService
func NewPersonalDocumentService(
	personalDocs *repositories.PersonalDocumentRepository,
	users *repositories.UserRepository,
	fileStorage filestorage.FileStorage,
) *PersonalDocumentService {
	return &PersonalDocumentService{
		personalDocs: personalDocs,
		users:        users,
		fileStorage:  fileStorage,
	}
}

// GetStudentDocuments lists a student's personal documents. Students see
// their own; trainers only for students they teach.
func (s *PersonalDocumentService) GetStudentDocuments(ctx context.Context, actor auth.Actor, studentID int64) ([]models.PersonalDocument, error) {
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

	documents, err := s.personalDocs.GetByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if documents == nil {
		documents = []models.PersonalDocument{}
	}
	return documents, nil
}

// GetDocument returns one personal document when the actor may see it
func (s *PersonalDocumentService) GetDocument(ctx context.Context, actor auth.Actor, id int64) (*models.PersonalDocument, error) {
	document, err := s.personalDocs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case models.RoleStudent:
		if document.StudentID != actor.StudentID {
			return nil, apperrors.ErrPersonalDocumentNotFound
		}
	case models.RoleTrainer:
		taught, err := s.users.IsStudentTaughtByTrainer(ctx, document.StudentID, actor.TrainerID)
		if err != nil {
			return nil, err
		}
		if !taught {
			return nil, apperrors.ErrPersonalDocumentNotFound
		}
	}
	return document, nil
}

// CreateDocument uploads a personal document for the calling student
func (s *PersonalDocumentService) CreateDocument(ctx context.Context, actor auth.Actor, req dto.CreatePersonalDocumentRequest, file *multipart.FileHeader) (*models.PersonalDocument, error) {
	if actor.Role != models.RoleStudent {
		return nil, apperrors.ErrPermissionDenied
	}
	if file == nil {
		return nil, apperrors.NewValidationError("a file is required")
	}

	subPath := fmt.Sprintf("personal/student_%d", actor.StudentID)
	storedPath, err := s.fileStorage.SaveFileWithPath(file, subPath)
	if err != nil {
		return nil, fmt.Errorf("failed to store personal document file: %w", err)
	}

	document := &models.PersonalDocument{
		StudentID: actor.StudentID,
		Type:      models.PersonalDocumentType(req.Type),
		Title:     req.Title,
		FilePath:  storedPath,
	}

	id, err := s.personalDocs.Create(ctx, document)
	if err != nil {
		if delErr := s.fileStorage.DeleteFile(storedPath); delErr != nil {
			logger.Warn().Err(delErr).Str("path", storedPath).Msg("Failed to remove personal document file after insert failure")
		}
		return nil, err
	}
	return s.personalDocs.GetByID(ctx, id)
}

// UpdateDocument renames or reclassifies one of the student's documents.
// The stored file and the validation flag are untouched.
func (s *PersonalDocumentService) UpdateDocument(ctx context.Context, actor auth.Actor, id int64, req dto.UpdatePersonalDocumentRequest) (*models.PersonalDocument, error) {
	document, err := s.personalDocs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManageStudentResource(document.StudentID) {
		return nil, apperrors.ErrPermissionDenied
	}

	document.Type = models.PersonalDocumentType(req.Type)
	document.Title = req.Title

	if err := s.personalDocs.Update(ctx, document); err != nil {
		return nil, err
	}
	return s.personalDocs.GetByID(ctx, id)
}

// SetValidated toggles the admin review flag on a personal document
func (s *PersonalDocumentService) SetValidated(ctx context.Context, actor auth.Actor, id int64, validated bool) (*models.PersonalDocument, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrPermissionDenied
	}

	if err := s.personalDocs.SetValidated(ctx, id, validated); err != nil {
		return nil, err
	}
	return s.personalDocs.GetByID(ctx, id)
}

// DeleteDocument removes a personal document and, best effort, its file
func (s *PersonalDocumentService) DeleteDocument(ctx context.Context, actor auth.Actor, id int64) error {
	document, err := s.personalDocs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanManageStudentResource(document.StudentID) {
		return apperrors.ErrPermissionDenied
	}

	if err := s.personalDocs.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.fileStorage.DeleteFile(document.FilePath); err != nil {
		logger.Warn().Err(err).Int64("documentID", id).Str("path", document.FilePath).Msg("Failed to remove personal document file")
	}
	return nil
}
