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
	"github.com/avelin/formatrack/internal/pkg/helpers"
	"github.com/avelin/formatrack/internal/pkg/logger"
)

// CourseRepository handles scheduled course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var courseSelectColumns = []string{
	"c.id", "c.formation_id", "c.trainer_id", "c.room_id", "c.title", "c.description",
	"c.date", "to_char(c.start_time, 'HH24:MI')", "to_char(c.end_time, 'HH24:MI')",
	"c.objectives", "c.required_materials", "c.notes", "c.created_at", "c.updated_at",
	"f.title", "f.reference",
	"u.first_name", "u.last_name",
	"r.name",
}

func scanCourseRow(row pgx.Row) (*models.Course, error) {
	var c models.Course
	var formationTitle, formationReference string
	var trainerFirstName, trainerLastName string
	var roomName *string

	err := row.Scan(
		&c.ID, &c.FormationID, &c.TrainerID, &c.RoomID, &c.Title, &c.Description,
		&c.Date, &c.StartTime, &c.EndTime,
		&c.Objectives, &c.RequiredMaterials, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
		&formationTitle, &formationReference,
		&trainerFirstName, &trainerLastName,
		&roomName,
	)
	if err != nil {
		return nil, err
	}

	c.Formation = &models.Formation{ID: c.FormationID, Title: formationTitle, Reference: formationReference}
	c.Trainer = &models.Trainer{
		ID:   c.TrainerID,
		User: &models.User{FirstName: trainerFirstName, LastName: trainerLastName},
	}
	if c.RoomID != nil && roomName != nil {
		c.Room = &models.Room{ID: *c.RoomID, Name: *roomName}
	}
	return &c, nil
}

func (r *CourseRepository) baseCourseSelect() squirrel.SelectBuilder {
	return r.sb.Select(courseSelectColumns...).
		From("courses c").
		Join("formations f ON c.formation_id = f.id").
		Join("trainers t ON c.trainer_id = t.id").
		Join("users u ON t.user_id = u.id").
		LeftJoin("rooms r ON c.room_id = r.id")
}

func courseFilterCondition(filter dto.CourseFilter) squirrel.And {
	cond := squirrel.And{}
	// "upcoming" is the default listing window
	today := helpers.StartOfDay(time.Now())
	if filter.Period == "past" {
		cond = append(cond, squirrel.Lt{"c.date": today})
	} else {
		cond = append(cond, squirrel.GtOrEq{"c.date": today})
	}
	if filter.FormationID != nil && *filter.FormationID > 0 {
		cond = append(cond, squirrel.Eq{"c.formation_id": *filter.FormationID})
	}
	if filter.TrainerID != nil && *filter.TrainerID > 0 {
		cond = append(cond, squirrel.Eq{"c.trainer_id": *filter.TrainerID})
	}
	return cond
}

// GetAll retrieves courses with filtering and pagination, ordered by date
// then start time
func (r *CourseRepository) GetAll(ctx context.Context, filter dto.CourseFilter, page, pageSize int) ([]models.Course, int64, error) {
	offset := uint64((page - 1) * pageSize)
	cond := courseFilterCondition(filter)

	countSql, countArgs, err := r.sb.Select("COUNT(*)").From("courses c").Where(cond).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count courses query: %w", err)
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}

	if totalItems == 0 {
		return []models.Course{}, 0, nil
	}

	order := "c.date ASC, c.start_time ASC"
	if filter.Period == "past" {
		order = "c.date DESC, c.start_time DESC"
	}

	querySql, queryArgs, err := r.baseCourseSelect().
		Where(cond).
		OrderBy(order).
		Limit(uint64(pageSize)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build get courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		c, err := scanCourseRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan course row: %w", err)
		}
		courses = append(courses, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating course rows: %w", err)
	}

	logger.Debug().Int("page", page).Int64("totalItems", totalItems).Msg("Fetched courses")
	return courses, totalItems, nil
}

// GetByID fetches a course with its formation, trainer and room
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	querySql, args, err := r.baseCourseSelect().Where(squirrel.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	c, err := scanCourseRow(r.db.QueryRow(ctx, querySql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error querying course ID=%d: %w", id, err)
	}
	return c, nil
}

// Create inserts a new course
func (r *CourseRepository) Create(ctx context.Context, c *models.Course) (int64, error) {
	query := `
		INSERT INTO courses (formation_id, trainer_id, room_id, title, description, date, start_time, end_time, objectives, required_materials, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		c.FormationID, c.TrainerID, c.RoomID, c.Title, c.Description,
		c.Date, c.StartTime, c.EndTime, c.Objectives, c.RequiredMaterials, c.Notes,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting course: %w", err)
	}
	return id, nil
}

// Update edits an existing course
func (r *CourseRepository) Update(ctx context.Context, c *models.Course) error {
	query := `
		UPDATE courses
		SET formation_id = $1, room_id = $2, title = $3, description = $4, date = $5,
		    start_time = $6, end_time = $7, objectives = $8, required_materials = $9,
		    notes = $10, updated_at = $11
		WHERE id = $12`

	cmdTag, err := r.db.Exec(ctx, query,
		c.FormationID, c.RoomID, c.Title, c.Description, c.Date,
		c.StartTime, c.EndTime, c.Objectives, c.RequiredMaterials,
		c.Notes, time.Now(), c.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating course ID=%d: %w", c.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// Delete removes a course
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// RoomSlotTaken reports whether another course occupies the same room at
// the identical (date, start time) slot. Start-time equality only;
// overlapping but offset sessions are not considered a conflict.
func (r *CourseRepository) RoomSlotTaken(ctx context.Context, roomID int64, date time.Time, startTime string, excludeCourseID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM courses
			WHERE room_id = $1 AND date = $2 AND start_time = $3 AND id <> $4
		)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, roomID, date, startTime, excludeCourseID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking room slot: %w", err)
	}
	return exists, nil
}

// TrainerSlotTaken reports whether the trainer already has a course at the
// identical (date, start time) slot
func (r *CourseRepository) TrainerSlotTaken(ctx context.Context, trainerID int64, date time.Time, startTime string, excludeCourseID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM courses
			WHERE trainer_id = $1 AND date = $2 AND start_time = $3 AND id <> $4
		)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, trainerID, date, startTime, excludeCourseID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking trainer slot: %w", err)
	}
	return exists, nil
}

// GetUpcomingByTrainer returns the trainer's courses in [from, to), ordered
// by date then start time
func (r *CourseRepository) GetUpcomingByTrainer(ctx context.Context, trainerID int64, from, to time.Time) ([]models.Course, error) {
	querySql, args, err := r.baseCourseSelect().
		Where(squirrel.And{
			squirrel.Eq{"c.trainer_id": trainerID},
			squirrel.GtOrEq{"c.date": from},
			squirrel.Lt{"c.date": to},
		}).
		OrderBy("c.date ASC, c.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build upcoming courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		c, err := scanCourseRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course row: %w", err)
		}
		courses = append(courses, *c)
	}
	return courses, rows.Err()
}

// GetUnmarkedPastByTrainer returns the trainer's past courses with no
// attendance record at all
func (r *CourseRepository) GetUnmarkedPastByTrainer(ctx context.Context, trainerID int64) ([]models.Course, error) {
	querySql, args, err := r.baseCourseSelect().
		Where(squirrel.And{
			squirrel.Eq{"c.trainer_id": trainerID},
			squirrel.Lt{"c.date": helpers.StartOfDay(time.Now())},
			squirrel.Expr("NOT EXISTS (SELECT 1 FROM attendances a WHERE a.course_id = c.id)"),
		}).
		OrderBy("c.date DESC, c.start_time DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build unmarked courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query unmarked courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		c, err := scanCourseRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course row: %w", err)
		}
		courses = append(courses, *c)
	}
	return courses, rows.Err()
}

// CountByTrainer returns the trainer's total number of courses
func (r *CourseRepository) CountByTrainer(ctx context.Context, trainerID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM courses WHERE trainer_id = $1`, trainerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting courses for trainer ID=%d: %w", trainerID, err)
	}
	return count, nil
}

// MonthlySessionCounts returns per-month session counts since the given
// month start, optionally restricted to one trainer
func (r *CourseRepository) MonthlySessionCounts(ctx context.Context, trainerID *int64, since time.Time) ([]dto.MonthlyActivityEntry, error) {
	builder := r.sb.Select("to_char(date, 'YYYY-MM') AS month", "COUNT(*)").
		From("courses").
		Where(squirrel.GtOrEq{"date": since}).
		GroupBy("month").
		OrderBy("month")

	if trainerID != nil {
		builder = builder.Where(squirrel.Eq{"trainer_id": *trainerID})
	}

	querySql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build monthly activity query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly activity: %w", err)
	}
	defer rows.Close()

	var entries []dto.MonthlyActivityEntry
	for rows.Next() {
		var e dto.MonthlyActivityEntry
		if err := rows.Scan(&e.Month, &e.Sessions); err != nil {
			return nil, fmt.Errorf("failed to scan monthly activity row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
