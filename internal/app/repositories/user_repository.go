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
	"github.com/avelin/formatrack/internal/pkg/logger"
)

// UserRepository handles user, student and trainer persistence
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password, first_name, last_name, phone, role_type, is_active, last_login_at, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.Phone, &user.RoleType, &user.IsActive, &user.LastLoginAt,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUserTx inserts a user row inside an existing transaction.
// Registration creates the user and its role profile atomically.
func (r *UserRepository) CreateUserTx(ctx context.Context, tx pgx.Tx, user *models.User) (int64, error) {
	query := `
		INSERT INTO users (email, password, first_name, last_name, phone, role_type, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id int64
	err := tx.QueryRow(ctx, query,
		user.Email, user.Password, user.FirstName, user.LastName,
		user.Phone, user.RoleType, true,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting user: %w", err)
	}
	return id, nil
}

// CreateStudentTx inserts a student profile inside an existing transaction
func (r *UserRepository) CreateStudentTx(ctx context.Context, tx pgx.Tx, student *models.Student) (int64, error) {
	query := `
		INSERT INTO students (user_id, student_number, birth_date, address, city, postal_code, country)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id int64
	err := tx.QueryRow(ctx, query,
		student.UserID, student.StudentNumber, student.BirthDate,
		student.Address, student.City, student.PostalCode, student.Country,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting student profile: %w", err)
	}
	return id, nil
}

// CreateTrainerTx inserts a trainer profile inside an existing transaction
func (r *UserRepository) CreateTrainerTx(ctx context.Context, tx pgx.Tx, trainer *models.Trainer) (int64, error) {
	query := `
		INSERT INTO trainers (user_id, badge_number, specialty, years_experience, bio)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id int64
	err := tx.QueryRow(ctx, query,
		trainer.UserID, trainer.BadgeNumber, trainer.Specialty,
		trainer.YearsExperience, trainer.Bio,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting trainer profile: %w", err)
	}
	return id, nil
}

// GetUserByEmail fetches a user by email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}
	return user, nil
}

// GetUserByID fetches a user by id
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error querying user ID=%d: %w", id, err)
	}
	return user, nil
}

const studentColumns = `id, user_id, student_number, birth_date, address, city, postal_code, country`

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID, &s.UserID, &s.StudentNumber, &s.BirthDate,
		&s.Address, &s.City, &s.PostalCode, &s.Country,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetStudentByUserID fetches the student profile attached to a user
func (r *UserRepository) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE user_id = $1`

	student, err := scanStudent(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error querying student by user ID=%d: %w", userID, err)
	}
	return student, nil
}

// GetStudentByID fetches a student profile with its user row
func (r *UserRepository) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `
		SELECT s.id, s.user_id, s.student_number, s.birth_date, s.address, s.city, s.postal_code, s.country,
		       u.id, u.email, u.first_name, u.last_name, u.phone, u.role_type, u.is_active, u.created_at, u.updated_at
		FROM students s
		JOIN users u ON s.user_id = u.id
		WHERE s.id = $1`

	var s models.Student
	var u models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.UserID, &s.StudentNumber, &s.BirthDate, &s.Address, &s.City, &s.PostalCode, &s.Country,
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Phone, &u.RoleType, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error querying student ID=%d: %w", id, err)
	}
	s.User = &u
	return &s, nil
}

// GetTrainerByUserID fetches the trainer profile attached to a user
func (r *UserRepository) GetTrainerByUserID(ctx context.Context, userID int64) (*models.Trainer, error) {
	query := `SELECT id, user_id, badge_number, specialty, years_experience, bio FROM trainers WHERE user_id = $1`

	var t models.Trainer
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&t.ID, &t.UserID, &t.BadgeNumber, &t.Specialty, &t.YearsExperience, &t.Bio,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTrainerNotFound
		}
		return nil, fmt.Errorf("error querying trainer by user ID=%d: %w", userID, err)
	}
	return &t, nil
}

// GetTrainerByID fetches a trainer profile with its user row
func (r *UserRepository) GetTrainerByID(ctx context.Context, id int64) (*models.Trainer, error) {
	query := `
		SELECT t.id, t.user_id, t.badge_number, t.specialty, t.years_experience, t.bio,
		       u.id, u.email, u.first_name, u.last_name, u.phone, u.role_type, u.is_active, u.created_at, u.updated_at
		FROM trainers t
		JOIN users u ON t.user_id = u.id
		WHERE t.id = $1`

	var t models.Trainer
	var u models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.UserID, &t.BadgeNumber, &t.Specialty, &t.YearsExperience, &t.Bio,
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Phone, &u.RoleType, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTrainerNotFound
		}
		return nil, fmt.Errorf("error querying trainer ID=%d: %w", id, err)
	}
	t.User = &u
	return &t, nil
}

// UpdateUser updates the mutable user fields
func (r *UserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET first_name = $1, last_name = $2, phone = $3, updated_at = $4
		WHERE id = $5`

	cmdTag, err := r.db.Exec(ctx, query, user.FirstName, user.LastName, user.Phone, time.Now(), user.ID)
	if err != nil {
		return fmt.Errorf("error updating user ID=%d: %w", user.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateStudent updates the mutable student profile fields
func (r *UserRepository) UpdateStudent(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET address = $1, city = $2, postal_code = $3, country = $4
		WHERE id = $5`

	cmdTag, err := r.db.Exec(ctx, query,
		student.Address, student.City, student.PostalCode, student.Country, student.ID)
	if err != nil {
		return fmt.Errorf("error updating student ID=%d: %w", student.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// UpdateTrainer updates the mutable trainer profile fields
func (r *UserRepository) UpdateTrainer(ctx context.Context, trainer *models.Trainer) error {
	query := `
		UPDATE trainers
		SET specialty = $1, bio = $2
		WHERE id = $3`

	cmdTag, err := r.db.Exec(ctx, query, trainer.Specialty, trainer.Bio, trainer.ID)
	if err != nil {
		return fmt.Errorf("error updating trainer ID=%d: %w", trainer.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTrainerNotFound
	}
	return nil
}

// UpdateLastLogin stamps the user's last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) {
	_, err := r.db.Exec(ctx, `UPDATE users SET last_login_at = $1 WHERE id = $2`, time.Now(), userID)
	if err != nil {
		// Login must not fail because of a bookkeeping column
		logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to update last login timestamp")
	}
}

// GetStudentsByTrainer returns the distinct students the trainer teaches,
// paginated and ordered by name. A student belongs to the trainer's roster
// when they hold a validated enrollment in a formation where the trainer
// gives at least one course.
func (r *UserRepository) GetStudentsByTrainer(ctx context.Context, trainerID int64, page, pageSize int) ([]models.Student, int64, error) {
	rosterCond := `
		EXISTS (
			SELECT 1
			FROM enrollments e
			JOIN courses c ON c.formation_id = e.formation_id
			WHERE e.student_id = s.id AND e.status = 'VALIDATED' AND c.trainer_id = $1
		)`

	var totalItems int64
	countQuery := `SELECT COUNT(*) FROM students s WHERE ` + rosterCond
	if err := r.db.QueryRow(ctx, countQuery, trainerID).Scan(&totalItems); err != nil {
		return nil, 0, fmt.Errorf("error counting students for trainer ID=%d: %w", trainerID, err)
	}

	if totalItems == 0 {
		return []models.Student{}, 0, nil
	}

	offset := (page - 1) * pageSize
	query := `
		SELECT s.id, s.user_id, s.student_number, s.birth_date, s.address, s.city, s.postal_code, s.country,
		       u.id, u.email, u.first_name, u.last_name, u.phone, u.role_type, u.is_active, u.created_at, u.updated_at
		FROM students s
		JOIN users u ON s.user_id = u.id
		WHERE ` + rosterCond + `
		ORDER BY u.last_name, u.first_name
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, trainerID, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error querying students for trainer ID=%d: %w", trainerID, err)
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var s models.Student
		var u models.User
		err := rows.Scan(
			&s.ID, &s.UserID, &s.StudentNumber, &s.BirthDate, &s.Address, &s.City, &s.PostalCode, &s.Country,
			&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Phone, &u.RoleType, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning student row: %w", err)
		}
		s.User = &u
		students = append(students, s)
	}
	return students, totalItems, rows.Err()
}

// IsStudentTaughtByTrainer reports whether the student is on the trainer's
// roster
func (r *UserRepository) IsStudentTaughtByTrainer(ctx context.Context, studentID, trainerID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM enrollments e
			JOIN courses c ON c.formation_id = e.formation_id
			WHERE e.student_id = $1 AND e.status = 'VALIDATED' AND c.trainer_id = $2
		)`

	var taught bool
	if err := r.db.QueryRow(ctx, query, studentID, trainerID).Scan(&taught); err != nil {
		return false, fmt.Errorf("error checking trainer roster membership: %w", err)
	}
	return taught, nil
}
