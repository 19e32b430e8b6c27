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

// EnrollmentRepository handles enrollment database operations
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var enrollmentSelectColumns = []string{
	"e.id", "e.student_id", "e.formation_id", "e.status", "e.motivation",
	"e.decided_at", "e.created_at", "e.updated_at",
	"s.student_number", "u.first_name", "u.last_name",
	"f.title", "f.reference",
}

func scanEnrollmentRow(row pgx.Row) (*models.Enrollment, error) {
	var e models.Enrollment
	var studentNumber, firstName, lastName string
	var formationTitle, formationReference string

	err := row.Scan(
		&e.ID, &e.StudentID, &e.FormationID, &e.Status, &e.Motivation,
		&e.DecidedAt, &e.CreatedAt, &e.UpdatedAt,
		&studentNumber, &firstName, &lastName,
		&formationTitle, &formationReference,
	)
	if err != nil {
		return nil, err
	}

	e.Student = &models.Student{
		ID:            e.StudentID,
		StudentNumber: studentNumber,
		User:          &models.User{FirstName: firstName, LastName: lastName},
	}
	e.Formation = &models.Formation{ID: e.FormationID, Title: formationTitle, Reference: formationReference}
	return &e, nil
}

func (r *EnrollmentRepository) baseEnrollmentSelect() squirrel.SelectBuilder {
	return r.sb.Select(enrollmentSelectColumns...).
		From("enrollments e").
		Join("students s ON e.student_id = s.id").
		Join("users u ON s.user_id = u.id").
		Join("formations f ON e.formation_id = f.id")
}

// GetAll retrieves enrollments with filtering and pagination, newest first.
// The trainer filter restricts results to formations in which the trainer
// teaches at least one course.
func (r *EnrollmentRepository) GetAll(ctx context.Context, filter dto.EnrollmentFilter, page, pageSize int) ([]models.Enrollment, int64, error) {
	offset := uint64((page - 1) * pageSize)

	cond := squirrel.And{}
	if filter.StudentID != nil && *filter.StudentID > 0 {
		cond = append(cond, squirrel.Eq{"e.student_id": *filter.StudentID})
	}
	if filter.FormationID != nil && *filter.FormationID > 0 {
		cond = append(cond, squirrel.Eq{"e.formation_id": *filter.FormationID})
	}
	if filter.Status != "" {
		cond = append(cond, squirrel.Eq{"e.status": filter.Status})
	}
	if filter.TrainerID != nil && *filter.TrainerID > 0 {
		cond = append(cond, squirrel.Expr(
			"EXISTS (SELECT 1 FROM courses c WHERE c.formation_id = e.formation_id AND c.trainer_id = ?)",
			*filter.TrainerID,
		))
	}

	countSelect := r.sb.Select("COUNT(*)").From("enrollments e")
	baseSelect := r.baseEnrollmentSelect()
	if len(cond) > 0 {
		countSelect = countSelect.Where(cond)
		baseSelect = baseSelect.Where(cond)
	}

	countSql, countArgs, err := countSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count enrollments query: %w", err)
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		return nil, 0, fmt.Errorf("failed to count enrollments: %w", err)
	}

	if totalItems == 0 {
		return []models.Enrollment{}, 0, nil
	}

	querySql, queryArgs, err := baseSelect.
		OrderBy("e.created_at DESC").
		Limit(uint64(pageSize)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build get enrollments query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []models.Enrollment
	for rows.Next() {
		e, err := scanEnrollmentRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan enrollment row: %w", err)
		}
		enrollments = append(enrollments, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating enrollment rows: %w", err)
	}
	return enrollments, totalItems, nil
}

// GetByID fetches an enrollment with its student and formation
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	querySql, args, err := r.baseEnrollmentSelect().Where(squirrel.Eq{"e.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get enrollment query: %w", err)
	}

	e, err := scanEnrollmentRow(r.db.QueryRow(ctx, querySql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error querying enrollment ID=%d: %w", id, err)
	}
	return e, nil
}

// Create inserts a new pending enrollment
func (r *EnrollmentRepository) Create(ctx context.Context, e *models.Enrollment) (int64, error) {
	query := `
		INSERT INTO enrollments (student_id, formation_id, status, motivation)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query, e.StudentID, e.FormationID, e.Status, e.Motivation).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting enrollment: %w", err)
	}
	return id, nil
}

// UpdateStatus moves an enrollment to a new lifecycle status
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id int64, status models.EnrollmentStatus) error {
	query := `
		UPDATE enrollments
		SET status = $1, decided_at = $2, updated_at = $2
		WHERE id = $3`

	cmdTag, err := r.db.Exec(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error updating enrollment ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}
	return nil
}

// Delete removes an enrollment
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting enrollment ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}
	return nil
}

// GetValidatedStudentsByFormation returns the students whose enrollment in
// the formation is VALIDATED, ordered by name. This is the eligible set
// for attendance marking.
func (r *EnrollmentRepository) GetValidatedStudentsByFormation(ctx context.Context, formationID int64) ([]models.Student, error) {
	query := `
		SELECT s.id, s.user_id, s.student_number, u.first_name, u.last_name
		FROM enrollments e
		JOIN students s ON e.student_id = s.id
		JOIN users u ON s.user_id = u.id
		WHERE e.formation_id = $1 AND e.status = 'VALIDATED'
		ORDER BY u.last_name, u.first_name`

	rows, err := r.db.Query(ctx, query, formationID)
	if err != nil {
		return nil, fmt.Errorf("error querying validated students for formation ID=%d: %w", formationID, err)
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var s models.Student
		var u models.User
		if err := rows.Scan(&s.ID, &s.UserID, &s.StudentNumber, &u.FirstName, &u.LastName); err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		u.ID = s.UserID
		s.User = &u
		students = append(students, s)
	}
	return students, rows.Err()
}

// HasTrainerCourse reports whether the trainer gives at least one course in
// the formation. This is the same predicate the trainer-scoped listing uses.
func (r *EnrollmentRepository) HasTrainerCourse(ctx context.Context, formationID, trainerID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM courses
			WHERE formation_id = $1 AND trainer_id = $2
		)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, formationID, trainerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking trainer courses in formation: %w", err)
	}
	return exists, nil
}

// HasValidatedEnrollment reports whether the student has a VALIDATED
// enrollment in the formation
func (r *EnrollmentRepository) HasValidatedEnrollment(ctx context.Context, studentID, formationID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM enrollments
			WHERE student_id = $1 AND formation_id = $2 AND status = 'VALIDATED'
		)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, studentID, formationID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking validated enrollment: %w", err)
	}
	return exists, nil
}
