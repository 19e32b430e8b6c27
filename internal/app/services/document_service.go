package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/avelin/formatrack/internal/app/auth"
	"github.com/avelin/formatrack/internal/app/models"
	"github.com/avelin/formatrack/internal/app/models/dto"
	"github.com/avelin/formatrack/internal/app/repositories"
	"github.com/avelin/formatrack/internal/db"
	"github.com/avelin/formatrack/internal/pkg/apperrors"
	"github.com/avelin/formatrack/internal/pkg/filestorage"
	"github.com/avelin/formatrack/internal/pkg/logger"
)

// DocumentService manages trainer-shared documents
type DocumentService struct {
	db          *db.PostgresDB
	documents   *repositories.DocumentRepository
	formations  *repositories.FormationRepository
	fileStorage filestorage.FileStorage
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	database *db.PostgresDB,
	documents *repositories.DocumentRepository,
	formations *repositories.FormationRepository,
	fileStorage filestorage.FileStorage,
) *DocumentService {
	return &DocumentService{
		db:          database,
		documents:   documents,
		formations:  formations,
		fileStorage: fileStorage,
	}
}

// deriveDocumentType classifies a stored file by its extension
func deriveDocumentType(fileName string) models.DocumentType {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return models.DocumentPDF
	case ".doc", ".docx", ".odt", ".txt", ".rtf":
		return models.DocumentDoc
	case ".xls", ".xlsx", ".ods", ".csv":
		return models.DocumentXLS
	case ".ppt", ".pptx", ".odp":
		return models.DocumentPPT
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg":
		return models.DocumentImage
	case ".mp4", ".avi", ".mkv", ".mov", ".webm":
		return models.DocumentVideo
	case ".mp3", ".wav", ".ogg", ".flac":
		return models.DocumentAudio
	default:
		return models.DocumentOther
	}
}

// GetDocuments lists shared documents scoped by role: trainers see their
// own, students see visible documents reachable through their validated
// enrollments, admins see everything
func (s *DocumentService) GetDocuments(ctx context.Context, actor auth.Actor, filter dto.DocumentFilter, page, pageSize int) ([]models.Document, int64, error) {
	switch actor.Role {
	case models.RoleTrainer:
		filter.TrainerID = &actor.TrainerID
	case models.RoleStudent:
		filter.StudentID = &actor.StudentID
	}
	return s.documents.GetAll(ctx, filter, page, pageSize)
}

// GetDocument returns one document when the actor may see it
func (s *DocumentService) GetDocument(ctx context.Context, actor auth.Actor, id int64) (*models.Document, error) {
	document, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case models.RoleTrainer:
		if document.TrainerID != actor.TrainerID {
			return nil, apperrors.ErrDocumentNotFound
		}
	case models.RoleStudent:
		visible, err := s.documents.IsVisibleToStudent(ctx, id, actor.StudentID)
		if err != nil {
			return nil, err
		}
		if !visible {
			return nil, apperrors.ErrDocumentNotFound
		}
	}
	return document, nil
}

// CreateDocument stores a new shared document for the calling trainer.
// Exactly one of file upload and external URL must be present; the type is
// derived from the file extension, or LINK for a URL.
func (s *DocumentService) CreateDocument(ctx context.Context, actor auth.Actor, req dto.CreateDocumentRequest, file *multipart.FileHeader) (*models.Document, error) {
	if actor.Role != models.RoleTrainer && !actor.IsAdmin() {
		return nil, apperrors.ErrPermissionDenied
	}
	trainerID := actor.TrainerID
	if trainerID <= 0 {
		return nil, apperrors.NewValidationError("only trainers own shared documents")
	}

	hasURL := req.ExternalURL != nil && *req.ExternalURL != ""
	if file != nil && hasURL {
		return nil, apperrors.ErrBothFileAndURL
	}
	if file == nil && !hasURL {
		return nil, apperrors.ErrNoFileOrURL
	}

	for _, formationID := range req.FormationIDs {
		if _, err := s.formations.GetByID(ctx, formationID); err != nil {
			return nil, err
		}
	}

	document := &models.Document{
		TrainerID:         trainerID,
		Title:             req.Title,
		Description:       req.Description,
		VisibleToStudents: req.VisibleToStudents,
		Tags:              req.Tags,
		FormationIDs:      req.FormationIDs,
	}

	if hasURL {
		document.ExternalURL = req.ExternalURL
		document.Type = models.DocumentLink
	} else {
		subPath := fmt.Sprintf("documents/trainer_%d", trainerID)
		storedPath, err := s.fileStorage.SaveFileWithPath(file, subPath)
		if err != nil {
			return nil, fmt.Errorf("failed to store document file: %w", err)
		}
		document.FilePath = &storedPath
		document.Type = deriveDocumentType(file.Filename)
	}

	var id int64
	err := s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		id, err = s.documents.Create(ctx, tx, document)
		return err
	})
	if err != nil {
		// Do not leave an orphaned blob behind a failed insert
		if document.FilePath != nil {
			if delErr := s.fileStorage.DeleteFile(*document.FilePath); delErr != nil {
				logger.Warn().Err(delErr).Str("path", *document.FilePath).Msg("Failed to remove document file after insert failure")
			}
		}
		return nil, err
	}

	return s.documents.GetByID(ctx, id)
}

// UpdateDocument edits a document's metadata and formation links
func (s *DocumentService) UpdateDocument(ctx context.Context, actor auth.Actor, id int64, req dto.UpdateDocumentRequest) (*models.Document, error) {
	document, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManageTrainerResource(document.TrainerID) {
		return nil, apperrors.ErrPermissionDenied
	}

	for _, formationID := range req.FormationIDs {
		if _, err := s.formations.GetByID(ctx, formationID); err != nil {
			return nil, err
		}
	}

	document.Title = req.Title
	document.Description = req.Description
	document.VisibleToStudents = req.VisibleToStudents
	document.Tags = req.Tags
	document.FormationIDs = req.FormationIDs

	err = s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.documents.Update(ctx, tx, document)
	})
	if err != nil {
		return nil, err
	}
	return s.documents.GetByID(ctx, id)
}

// DeleteDocument removes a document and, best effort, its stored file
func (s *DocumentService) DeleteDocument(ctx context.Context, actor auth.Actor, id int64) error {
	document, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanManageTrainerResource(document.TrainerID) {
		return apperrors.ErrPermissionDenied
	}

	if err := s.documents.Delete(ctx, id); err != nil {
		return err
	}

	if document.FilePath != nil {
		if err := s.fileStorage.DeleteFile(*document.FilePath); err != nil {
			logger.Warn().Err(err).Int64("documentID", id).Str("path", *document.FilePath).Msg("Failed to remove document file")
		}
	}
	return nil
}
