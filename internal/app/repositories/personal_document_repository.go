package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avelin/formatrack/internal/app/models"
	"github.com/avelin/formatrack/internal/pkg/apperrors"
)

// PersonalDocumentRepository handles student personal document database
// operations
type PersonalDocumentRepository struct {
	db *pgxpool.Pool
}

// NewPersonalDocumentRepository creates a new PersonalDocumentRepository
func NewPersonalDocumentRepository(db *pgxpool.Pool) *PersonalDocumentRepository {
	return &PersonalDocumentRepository{db: db}
}

const personalDocumentColumns = "id, student_id, type, title, file_path, validated, created_at, updated_at"

func scanPersonalDocument(row pgx.Row) (*models.PersonalDocument, error) {
	var d models.PersonalDocument
	err := row.Scan(&d.ID, &d.StudentID, &d.Type, &d.Title, &d.FilePath, &d.Validated, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetByStudent returns all of one student's personal documents, newest first
func (r *PersonalDocumentRepository) GetByStudent(ctx context.Context, studentID int64) ([]models.PersonalDocument, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM personal_documents
		WHERE student_id = $1
		ORDER BY created_at DESC`, personalDocumentColumns)

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error querying personal documents for student ID=%d: %w", studentID, err)
	}
	defer rows.Close()

	var documents []models.PersonalDocument
	for rows.Next() {
		d, err := scanPersonalDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning personal document row: %w", err)
		}
		documents = append(documents, *d)
	}
	return documents, rows.Err()
}

// GetRecentByStudent returns the student's latest documents up to limit
func (r *PersonalDocumentRepository) GetRecentByStudent(ctx context.Context, studentID int64, limit int) ([]models.PersonalDocument, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM personal_documents
		WHERE student_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, personalDocumentColumns)

	rows, err := r.db.Query(ctx, query, studentID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying recent personal documents for student ID=%d: %w", studentID, err)
	}
	defer rows.Close()

	var documents []models.PersonalDocument
	for rows.Next() {
		d, err := scanPersonalDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning personal document row: %w", err)
		}
		documents = append(documents, *d)
	}
	return documents, rows.Err()
}

// GetByID fetches a personal document by id
func (r *PersonalDocumentRepository) GetByID(ctx context.Context, id int64) (*models.PersonalDocument, error) {
	query := fmt.Sprintf(`SELECT %s FROM personal_documents WHERE id = $1`, personalDocumentColumns)

	d, err := scanPersonalDocument(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPersonalDocumentNotFound
		}
		return nil, fmt.Errorf("error querying personal document ID=%d: %w", id, err)
	}
	return d, nil
}

// Create inserts a new personal document
func (r *PersonalDocumentRepository) Create(ctx context.Context, d *models.PersonalDocument) (int64, error) {
	query := `
		INSERT INTO personal_documents (student_id, type, title, file_path)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query, d.StudentID, d.Type, d.Title, d.FilePath).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting personal document: %w", err)
	}
	return id, nil
}

// Update edits a personal document's type and title. The stored file stays.
func (r *PersonalDocumentRepository) Update(ctx context.Context, d *models.PersonalDocument) error {
	query := `
		UPDATE personal_documents
		SET type = $1, title = $2, updated_at = $3
		WHERE id = $4`

	cmdTag, err := r.db.Exec(ctx, query, d.Type, d.Title, time.Now(), d.ID)
	if err != nil {
		return fmt.Errorf("error updating personal document ID=%d: %w", d.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPersonalDocumentNotFound
	}
	return nil
}

// SetValidated flips the admin validation flag
func (r *PersonalDocumentRepository) SetValidated(ctx context.Context, id int64, validated bool) error {
	query := `
		UPDATE personal_documents
		SET validated = $1, updated_at = $2
		WHERE id = $3`

	cmdTag, err := r.db.Exec(ctx, query, validated, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error validating personal document ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPersonalDocumentNotFound
	}
	return nil
}

// Delete removes a personal document
func (r *PersonalDocumentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM personal_documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting personal document ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPersonalDocumentNotFound
	}
	return nil
}
