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

// DomainRepository handles domain database operations
type DomainRepository struct {
	db *pgxpool.Pool
}

// NewDomainRepository creates a new DomainRepository
func NewDomainRepository(db *pgxpool.Pool) *DomainRepository {
	return &DomainRepository{db: db}
}

// GetAll returns every domain ordered by name
func (r *DomainRepository) GetAll(ctx context.Context) ([]models.Domain, error) {
	query := `SELECT id, name, description, color, created_at, updated_at FROM domains ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying domains: %w", err)
	}
	defer rows.Close()

	var domains []models.Domain
	for rows.Next() {
		var d models.Domain
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.Color, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning domain row: %w", err)
		}
		domains = append(domains, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating domain rows: %w", err)
	}
	return domains, nil
}

// GetByID fetches a domain by id
func (r *DomainRepository) GetByID(ctx context.Context, id int64) (*models.Domain, error) {
	query := `SELECT id, name, description, color, created_at, updated_at FROM domains WHERE id = $1`

	var d models.Domain
	err := r.db.QueryRow(ctx, query, id).Scan(&d.ID, &d.Name, &d.Description, &d.Color, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDomainNotFound
		}
		return nil, fmt.Errorf("error querying domain ID=%d: %w", id, err)
	}
	return &d, nil
}

// Create inserts a new domain
func (r *DomainRepository) Create(ctx context.Context, domain *models.Domain) (int64, error) {
	query := `INSERT INTO domains (name, description, color) VALUES ($1, $2, $3) RETURNING id`

	var id int64
	if err := r.db.QueryRow(ctx, query, domain.Name, domain.Description, domain.Color).Scan(&id); err != nil {
		return 0, fmt.Errorf("error inserting domain: %w", err)
	}
	return id, nil
}

// Update edits an existing domain
func (r *DomainRepository) Update(ctx context.Context, domain *models.Domain) error {
	query := `UPDATE domains SET name = $1, description = $2, color = $3, updated_at = $4 WHERE id = $5`

	cmdTag, err := r.db.Exec(ctx, query, domain.Name, domain.Description, domain.Color, time.Now(), domain.ID)
	if err != nil {
		return fmt.Errorf("error updating domain ID=%d: %w", domain.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDomainNotFound
	}
	return nil
}

// Delete removes a domain
func (r *DomainRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM domains WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting domain ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDomainNotFound
	}
	return nil
}

// CountFormations returns how many formations reference the domain
func (r *DomainRepository) CountFormations(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM formations WHERE domain_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting formations for domain ID=%d: %w", id, err)
	}
	return count, nil
}
