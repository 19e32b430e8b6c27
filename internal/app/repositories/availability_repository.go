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

// AvailabilityRepository handles trainer availability database operations
type AvailabilityRepository struct {
	db *pgxpool.Pool
}

// NewAvailabilityRepository creates a new AvailabilityRepository
func NewAvailabilityRepository(db *pgxpool.Pool) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// GetCurrentByTrainer returns the trainer's windows that have not ended
// before the given instant, soonest first
func (r *AvailabilityRepository) GetCurrentByTrainer(ctx context.Context, trainerID int64, notEndedBefore time.Time) ([]models.Availability, error) {
	query := `
		SELECT id, trainer_id, starts_at, ends_at, kind, notes, created_at
		FROM availabilities
		WHERE trainer_id = $1 AND ends_at >= $2
		ORDER BY starts_at`

	rows, err := r.db.Query(ctx, query, trainerID, notEndedBefore)
	if err != nil {
		return nil, fmt.Errorf("error querying availabilities for trainer ID=%d: %w", trainerID, err)
	}
	defer rows.Close()

	var windows []models.Availability
	for rows.Next() {
		var a models.Availability
		if err := rows.Scan(&a.ID, &a.TrainerID, &a.StartsAt, &a.EndsAt, &a.Kind, &a.Notes, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning availability row: %w", err)
		}
		windows = append(windows, a)
	}
	return windows, rows.Err()
}

// GetByID fetches an availability window by id
func (r *AvailabilityRepository) GetByID(ctx context.Context, id int64) (*models.Availability, error) {
	query := `
		SELECT id, trainer_id, starts_at, ends_at, kind, notes, created_at
		FROM availabilities
		WHERE id = $1`

	var a models.Availability
	err := r.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.TrainerID, &a.StartsAt, &a.EndsAt, &a.Kind, &a.Notes, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAvailabilityNotFound
		}
		return nil, fmt.Errorf("error querying availability ID=%d: %w", id, err)
	}
	return &a, nil
}

// Create inserts a new availability window
func (r *AvailabilityRepository) Create(ctx context.Context, a *models.Availability) (int64, error) {
	query := `
		INSERT INTO availabilities (trainer_id, starts_at, ends_at, kind, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query, a.TrainerID, a.StartsAt, a.EndsAt, a.Kind, a.Notes).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting availability: %w", err)
	}
	return id, nil
}

// Delete removes an availability window
func (r *AvailabilityRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM availabilities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting availability ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAvailabilityNotFound
	}
	return nil
}
