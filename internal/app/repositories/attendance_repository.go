package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avelin/formatrack/internal/app/models"
	"github.com/avelin/formatrack/internal/app/models/dto"
	"github.com/avelin/formatrack/internal/pkg/apperrors"
)

// AttendanceRepository handles attendance database operations
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// GetByCourse returns every attendance record of one course keyed by
// student id
func (r *AttendanceRepository) GetByCourse(ctx context.Context, courseID int64) (map[int64]models.Attendance, error) {
	query := `
		SELECT id, course_id, student_id, present, remark, verified_at, created_at, updated_at
		FROM attendances
		WHERE course_id = $1`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error querying attendances for course ID=%d: %w", courseID, err)
	}
	defer rows.Close()

	records := make(map[int64]models.Attendance)
	for rows.Next() {
		var a models.Attendance
		if err := rows.Scan(&a.ID, &a.CourseID, &a.StudentID, &a.Present, &a.Remark, &a.VerifiedAt, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning attendance row: %w", err)
		}
		records[a.StudentID] = a
	}
	return records, rows.Err()
}

// CreateTx inserts an attendance record inside an existing transaction
func (r *AttendanceRepository) CreateTx(ctx context.Context, tx pgx.Tx, a *models.Attendance) error {
	query := `
		INSERT INTO attendances (course_id, student_id, present, remark, verified_at)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := tx.Exec(ctx, query, a.CourseID, a.StudentID, a.Present, a.Remark, a.VerifiedAt); err != nil {
		return fmt.Errorf("error inserting attendance: %w", err)
	}
	return nil
}

// UpdateTx updates an attendance record inside an existing transaction
func (r *AttendanceRepository) UpdateTx(ctx context.Context, tx pgx.Tx, a *models.Attendance) error {
	query := `
		UPDATE attendances
		SET present = $1, remark = $2, verified_at = $3, updated_at = $4
		WHERE course_id = $5 AND student_id = $6`

	cmdTag, err := tx.Exec(ctx, query, a.Present, a.Remark, a.VerifiedAt, time.Now(), a.CourseID, a.StudentID)
	if err != nil {
		return fmt.Errorf("error updating attendance: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAttendanceNotFound
	}
	return nil
}

// GetByStudent returns a student's attendance records with their course,
// newest course first, paginated
func (r *AttendanceRepository) GetByStudent(ctx context.Context, studentID int64, page, pageSize int) ([]models.Attendance, int64, error) {
	var totalItems int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM attendances WHERE student_id = $1`, studentID).Scan(&totalItems); err != nil {
		return nil, 0, fmt.Errorf("error counting attendances for student ID=%d: %w", studentID, err)
	}

	if totalItems == 0 {
		return []models.Attendance{}, 0, nil
	}

	offset := (page - 1) * pageSize
	query := `
		SELECT a.id, a.course_id, a.student_id, a.present, a.remark, a.verified_at, a.created_at, a.updated_at,
		       c.title, c.date, to_char(c.start_time, 'HH24:MI'), to_char(c.end_time, 'HH24:MI'), c.formation_id,
		       f.title
		FROM attendances a
		JOIN courses c ON a.course_id = c.id
		JOIN formations f ON c.formation_id = f.id
		WHERE a.student_id = $1
		ORDER BY c.date DESC, c.start_time DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, studentID, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying attendances for student ID=%d: %w", studentID, err)
	}
	defer rows.Close()

	var records []models.Attendance
	for rows.Next() {
		var a models.Attendance
		var c models.Course
		var formationTitle string
		err := rows.Scan(
			&a.ID, &a.CourseID, &a.StudentID, &a.Present, &a.Remark, &a.VerifiedAt, &a.CreatedAt, &a.UpdatedAt,
			&c.Title, &c.Date, &c.StartTime, &c.EndTime, &c.FormationID,
			&formationTitle,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning attendance row: %w", err)
		}
		c.ID = a.CourseID
		c.Formation = &models.Formation{ID: c.FormationID, Title: formationTitle}
		a.Course = &c
		records = append(records, a)
	}
	return records, totalItems, rows.Err()
}

// StatsByStudent returns total and present counts across all the student's
// records
func (r *AttendanceRepository) StatsByStudent(ctx context.Context, studentID int64) (total, present int, err error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE present)
		FROM attendances
		WHERE student_id = $1`

	if err = r.db.QueryRow(ctx, query, studentID).Scan(&total, &present); err != nil {
		return 0, 0, fmt.Errorf("error computing attendance stats for student ID=%d: %w", studentID, err)
	}
	return total, present, nil
}

// FormationBreakdownRow is one formation's raw attendance counts for a
// student, before rate computation
type FormationBreakdownRow struct {
	FormationID    int64
	FormationTitle string
	Total          int
	Present        int
}

// StatsByStudentPerFormation returns the student's attendance counts per
// enrolled formation, in formation title order
func (r *AttendanceRepository) StatsByStudentPerFormation(ctx context.Context, studentID int64) ([]FormationBreakdownRow, error) {
	query := `
		SELECT f.id, f.title,
		       COUNT(a.id),
		       COUNT(a.id) FILTER (WHERE a.present)
		FROM enrollments e
		JOIN formations f ON e.formation_id = f.id
		LEFT JOIN courses c ON c.formation_id = f.id
		LEFT JOIN attendances a ON a.course_id = c.id AND a.student_id = e.student_id
		WHERE e.student_id = $1
		GROUP BY f.id, f.title
		ORDER BY f.title`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error querying per-formation stats for student ID=%d: %w", studentID, err)
	}
	defer rows.Close()

	var breakdown []FormationBreakdownRow
	for rows.Next() {
		var row FormationBreakdownRow
		if err := rows.Scan(&row.FormationID, &row.FormationTitle, &row.Total, &row.Present); err != nil {
			return nil, fmt.Errorf("error scanning per-formation stats row: %w", err)
		}
		breakdown = append(breakdown, row)
	}
	return breakdown, rows.Err()
}

// StatsByTrainer returns total and present counts across all courses of
// one trainer
func (r *AttendanceRepository) StatsByTrainer(ctx context.Context, trainerID int64) (total, present int, err error) {
	query := `
		SELECT COUNT(a.id), COUNT(a.id) FILTER (WHERE a.present)
		FROM attendances a
		JOIN courses c ON a.course_id = c.id
		WHERE c.trainer_id = $1`

	if err = r.db.QueryRow(ctx, query, trainerID).Scan(&total, &present); err != nil {
		return 0, 0, fmt.Errorf("error computing attendance stats for trainer ID=%d: %w", trainerID, err)
	}
	return total, present, nil
}

// StatsByFormation returns total and present counts across all courses of
// one formation
func (r *AttendanceRepository) StatsByFormation(ctx context.Context, formationID int64) (total, present int, err error) {
	query := `
		SELECT COUNT(a.id), COUNT(a.id) FILTER (WHERE a.present)
		FROM attendances a
		JOIN courses c ON a.course_id = c.id
		WHERE c.formation_id = $1`

	if err = r.db.QueryRow(ctx, query, formationID).Scan(&total, &present); err != nil {
		return 0, 0, fmt.Errorf("error computing attendance stats for formation ID=%d: %w", formationID, err)
	}
	return total, present, nil
}

// TopStudentsByTrainer returns the trainer's most-tracked students with
// per-trainer attendance counts, most records first
func (r *AttendanceRepository) TopStudentsByTrainer(ctx context.Context, trainerID int64, limit int) ([]dto.TrackedStudent, error) {
	query := `
		SELECT s.id, u.first_name, u.last_name,
		       COUNT(a.id) FILTER (WHERE a.present),
		       COUNT(a.id)
		FROM attendances a
		JOIN courses c ON a.course_id = c.id
		JOIN students s ON a.student_id = s.id
		JOIN users u ON s.user_id = u.id
		WHERE c.trainer_id = $1
		GROUP BY s.id, u.first_name, u.last_name
		ORDER BY COUNT(a.id) DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, trainerID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying tracked students for trainer ID=%d: %w", trainerID, err)
	}
	defer rows.Close()

	var students []dto.TrackedStudent
	for rows.Next() {
		var s dto.TrackedStudent
		if err := rows.Scan(&s.StudentID, &s.FirstName, &s.LastName, &s.PresentCount, &s.TotalCount); err != nil {
			return nil, fmt.Errorf("error scanning tracked student row: %w", err)
		}
		students = append(students, s)
	}
	return students, rows.Err()
}
