package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avelin/formatrack/internal/app/models"
	"github.com/avelin/formatrack/internal/pkg/apperrors"
)

// ModuleRepository handles formation module database operations
type ModuleRepository struct {
	db *pgxpool.Pool
}

// NewModuleRepository creates a new ModuleRepository
func NewModuleRepository(db *pgxpool.Pool) *ModuleRepository {
	return &ModuleRepository{db: db}
}

// GetByFormation returns the modules of a formation in order
func (r *ModuleRepository) GetByFormation(ctx context.Context, formationID int64) ([]models.Module, error) {
	query := `
		SELECT id, formation_id, order_index, title, description, duration_hours
		FROM modules
		WHERE formation_id = $1
		ORDER BY order_index`

	rows, err := r.db.Query(ctx, query, formationID)
	if err != nil {
		return nil, fmt.Errorf("error querying modules for formation ID=%d: %w", formationID, err)
	}
	defer rows.Close()

	var modules []models.Module
	for rows.Next() {
		var m models.Module
		if err := rows.Scan(&m.ID, &m.FormationID, &m.OrderIndex, &m.Title, &m.Description, &m.DurationHours); err != nil {
			return nil, fmt.Errorf("error scanning module row: %w", err)
		}
		modules = append(modules, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating module rows: %w", err)
	}
	return modules, nil
}

// GetByID fetches a module by id
func (r *ModuleRepository) GetByID(ctx context.Context, id int64) (*models.Module, error) {
	query := `
		SELECT id, formation_id, order_index, title, description, duration_hours
		FROM modules
		WHERE id = $1`

	var m models.Module
	err := r.db.QueryRow(ctx, query, id).Scan(&m.ID, &m.FormationID, &m.OrderIndex, &m.Title, &m.Description, &m.DurationHours)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrModuleNotFound
		}
		return nil, fmt.Errorf("error querying module ID=%d: %w", id, err)
	}
	return &m, nil
}

// Create inserts a new module
func (r *ModuleRepository) Create(ctx context.Context, m *models.Module) (int64, error) {
	query := `
		INSERT INTO modules (formation_id, order_index, title, description, duration_hours)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query, m.FormationID, m.OrderIndex, m.Title, m.Description, m.DurationHours).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting module: %w", err)
	}
	return id, nil
}

// Update edits an existing module
func (r *ModuleRepository) Update(ctx context.Context, m *models.Module) error {
	query := `
		UPDATE modules
		SET order_index = $1, title = $2, description = $3, duration_hours = $4
		WHERE id = $5`

	cmdTag, err := r.db.Exec(ctx, query, m.OrderIndex, m.Title, m.Description, m.DurationHours, m.ID)
	if err != nil {
		return fmt.Errorf("error updating module ID=%d: %w", m.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrModuleNotFound
	}
	return nil
}

// Delete removes a module
func (r *ModuleRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM modules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting module ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrModuleNotFound
	}
	return nil
}
