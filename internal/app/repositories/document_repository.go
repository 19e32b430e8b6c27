package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avelin/formatrack/internal/app/models"
	"github.com/avelin/formatrack/internal/app/models/dto"
	"github.com/avelin/formatrack/internal/pkg/apperrors"
)

// DocumentRepository handles shared document database operations
type DocumentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var documentSelectColumns = []string{
	"d.id", "d.trainer_id", "d.title", "d.description", "d.type",
	"d.file_path", "d.external_url", "d.visible_to_students", "d.tags",
	"d.created_at", "d.updated_at",
	"u.first_name", "u.last_name",
}

func scanDocumentRow(row pgx.Row) (*models.Document, error) {
	var d models.Document
	var firstName, lastName string

	err := row.Scan(
		&d.ID, &d.TrainerID, &d.Title, &d.Description, &d.Type,
		&d.FilePath, &d.ExternalURL, &d.VisibleToStudents, &d.Tags,
		&d.CreatedAt, &d.UpdatedAt,
		&firstName, &lastName,
	)
	if err != nil {
		return nil, err
	}

	d.Trainer = &models.Trainer{
		ID:   d.TrainerID,
		User: &models.User{FirstName: firstName, LastName: lastName},
	}
	return &d, nil
}

func (r *DocumentRepository) baseDocumentSelect() squirrel.SelectBuilder {
	return r.sb.Select(documentSelectColumns...).
		From("documents d").
		Join("trainers t ON d.trainer_id = t.id").
		Join("users u ON t.user_id = u.id")
}

// documentFilterCondition translates the filter into SQL conditions. The
// student filter keeps only documents marked visible that are either linked
// to a formation the student has a validated enrollment in, or linked to no
// formation at all.
func documentFilterCondition(filter dto.DocumentFilter) squirrel.And {
	cond := squirrel.And{}
	if filter.TrainerID != nil && *filter.TrainerID > 0 {
		cond = append(cond, squirrel.Eq{"d.trainer_id": *filter.TrainerID})
	}
	if filter.FormationID != nil && *filter.FormationID > 0 {
		cond = append(cond, squirrel.Expr(
			"EXISTS (SELECT 1 FROM document_formations df WHERE df.document_id = d.id AND df.formation_id = ?)",
			*filter.FormationID,
		))
	}
	if filter.Type != "" {
		cond = append(cond, squirrel.Eq{"d.type": filter.Type})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		cond = append(cond, squirrel.Or{
			squirrel.ILike{"d.title": pattern},
			squirrel.ILike{"d.tags": pattern},
		})
	}
	if filter.VisibleOnly {
		cond = append(cond, squirrel.Eq{"d.visible_to_students": true})
	}
	if filter.StudentID != nil && *filter.StudentID > 0 {
		cond = append(cond, squirrel.Eq{"d.visible_to_students": true})
		cond = append(cond, squirrel.Expr(
			`(NOT EXISTS (SELECT 1 FROM document_formations df WHERE df.document_id = d.id)
			OR EXISTS (
				SELECT 1 FROM document_formations df
				JOIN enrollments e ON e.formation_id = df.formation_id
				WHERE df.document_id = d.id AND e.student_id = ? AND e.status = 'VALIDATED'
			))`,
			*filter.StudentID,
		))
	}
	return cond
}

// GetAll retrieves documents with filtering and pagination, newest first
func (r *DocumentRepository) GetAll(ctx context.Context, filter dto.DocumentFilter, page, pageSize int) ([]models.Document, int64, error) {
	offset := uint64((page - 1) * pageSize)

	cond := documentFilterCondition(filter)

	countSelect := r.sb.Select("COUNT(*)").From("documents d")
	baseSelect := r.baseDocumentSelect()
	if len(cond) > 0 {
		countSelect = countSelect.Where(cond)
		baseSelect = baseSelect.Where(cond)
	}

	countSql, countArgs, err := countSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count documents query: %w", err)
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		return nil, 0, fmt.Errorf("failed to count documents: %w", err)
	}

	if totalItems == 0 {
		return []models.Document{}, 0, nil
	}

	querySql, queryArgs, err := baseSelect.
		OrderBy("d.created_at DESC").
		Limit(uint64(pageSize)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build get documents query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var documents []models.Document
	for rows.Next() {
		d, err := scanDocumentRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan document row: %w", err)
		}
		documents = append(documents, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating document rows: %w", err)
	}

	if err := r.loadFormationLinks(ctx, documents); err != nil {
		return nil, 0, err
	}
	return documents, totalItems, nil
}

// loadFormationLinks fills FormationIDs for the given documents in one query
func (r *DocumentRepository) loadFormationLinks(ctx context.Context, documents []models.Document) error {
	if len(documents) == 0 {
		return nil
	}

	ids := make([]int64, len(documents))
	index := make(map[int64]*models.Document, len(documents))
	for i := range documents {
		ids[i] = documents[i].ID
		index[documents[i].ID] = &documents[i]
	}

	query := `SELECT document_id, formation_id FROM document_formations WHERE document_id = ANY($1) ORDER BY formation_id`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("error querying document formation links: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var documentID, formationID int64
		if err := rows.Scan(&documentID, &formationID); err != nil {
			return fmt.Errorf("error scanning document formation link: %w", err)
		}
		if d, ok := index[documentID]; ok {
			d.FormationIDs = append(d.FormationIDs, formationID)
		}
	}
	return rows.Err()
}

// GetByID fetches a document with its trainer and formation links
func (r *DocumentRepository) GetByID(ctx context.Context, id int64) (*models.Document, error) {
	querySql, args, err := r.baseDocumentSelect().Where(squirrel.Eq{"d.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get document query: %w", err)
	}

	d, err := scanDocumentRow(r.db.QueryRow(ctx, querySql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("error querying document ID=%d: %w", id, err)
	}

	docs := []models.Document{*d}
	if err := r.loadFormationLinks(ctx, docs); err != nil {
		return nil, err
	}
	return &docs[0], nil
}

// Create inserts a document and its formation links in one transaction
func (r *DocumentRepository) Create(ctx context.Context, tx pgx.Tx, d *models.Document) (int64, error) {
	query := `
		INSERT INTO documents (trainer_id, title, description, type, file_path, external_url, visible_to_students, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var id int64
	err := tx.QueryRow(ctx, query,
		d.TrainerID, d.Title, d.Description, d.Type,
		d.FilePath, d.ExternalURL, d.VisibleToStudents, d.Tags,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting document: %w", err)
	}

	if err := r.replaceFormationLinksTx(ctx, tx, id, d.FormationIDs); err != nil {
		return 0, err
	}
	return id, nil
}

// Update edits a document's metadata and formation links. The stored file
// and external URL are immutable once created.
func (r *DocumentRepository) Update(ctx context.Context, tx pgx.Tx, d *models.Document) error {
	query := `
		UPDATE documents
		SET title = $1, description = $2, visible_to_students = $3, tags = $4, updated_at = $5
		WHERE id = $6`

	cmdTag, err := tx.Exec(ctx, query, d.Title, d.Description, d.VisibleToStudents, d.Tags, time.Now(), d.ID)
	if err != nil {
		return fmt.Errorf("error updating document ID=%d: %w", d.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDocumentNotFound
	}

	return r.replaceFormationLinksTx(ctx, tx, d.ID, d.FormationIDs)
}

func (r *DocumentRepository) replaceFormationLinksTx(ctx context.Context, tx pgx.Tx, documentID int64, formationIDs []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM document_formations WHERE document_id = $1`, documentID); err != nil {
		return fmt.Errorf("error clearing document formation links: %w", err)
	}
	for _, formationID := range formationIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO document_formations (document_id, formation_id) VALUES ($1, $2)`,
			documentID, formationID,
		)
		if err != nil {
			return fmt.Errorf("error linking document %d to formation %d: %w", documentID, formationID, err)
		}
	}
	return nil
}

// IsVisibleToStudent applies the student visibility rule to one document:
// it must be marked visible and either linked to a formation the student
// has a validated enrollment in, or linked to no formation at all
func (r *DocumentRepository) IsVisibleToStudent(ctx context.Context, documentID, studentID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM documents d
			WHERE d.id = $1
			AND d.visible_to_students
			AND (
				NOT EXISTS (SELECT 1 FROM document_formations df WHERE df.document_id = d.id)
				OR EXISTS (
					SELECT 1 FROM document_formations df
					JOIN enrollments e ON e.formation_id = df.formation_id
					WHERE df.document_id = d.id AND e.student_id = $2 AND e.status = 'VALIDATED'
				)
			)
		)`

	var visible bool
	if err := r.db.QueryRow(ctx, query, documentID, studentID).Scan(&visible); err != nil {
		return false, fmt.Errorf("error checking document visibility: %w", err)
	}
	return visible, nil
}

// Delete removes a document. Formation links go with it via ON DELETE CASCADE.
func (r *DocumentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting document ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDocumentNotFound
	}
	return nil
}
