package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avelin/formatrack/internal/app/models"
	"github.com/avelin/formatrack/internal/app/models/dto"
	"github.com/avelin/formatrack/internal/pkg/apperrors"
	"github.com/avelin/formatrack/internal/pkg/logger"
)

// FormationRepository handles formation database operations
type FormationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFormationRepository creates a new FormationRepository
func NewFormationRepository(db *pgxpool.Pool) *FormationRepository {
	return &FormationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const formationSelectColumns = "f.id, f.reference, f.title, f.description, f.objectives, f.target_audience, " +
	"f.duration_days, f.price, f.is_active, f.domain_id, f.created_at, f.updated_at, " +
	"d.name, d.color"

func scanFormationWithDomain(row pgx.Row) (*models.Formation, error) {
	var f models.Formation
	var domainName, domainColor string
	err := row.Scan(
		&f.ID, &f.Reference, &f.Title, &f.Description, &f.Objectives, &f.TargetAudience,
		&f.DurationDays, &f.Price, &f.IsActive, &f.DomainID, &f.CreatedAt, &f.UpdatedAt,
		&domainName, &domainColor,
	)
	if err != nil {
		return nil, err
	}
	f.Domain = &models.Domain{ID: f.DomainID, Name: domainName, Color: domainColor}
	return &f, nil
}

// GetAll retrieves formations with filtering and pagination
func (r *FormationRepository) GetAll(ctx context.Context, filter dto.FormationFilter, page, pageSize int) ([]models.Formation, int64, error) {
	offset := uint64((page - 1) * pageSize)

	baseSelect := r.sb.Select(strings.Split(formationSelectColumns, ", ")...).
		From("formations f").
		Join("domains d ON f.domain_id = d.id")

	countSelect := r.sb.Select("COUNT(*)").
		From("formations f").
		Join("domains d ON f.domain_id = d.id")

	whereCondition := squirrel.And{}
	if filter.DomainID != nil && *filter.DomainID > 0 {
		whereCondition = append(whereCondition, squirrel.Eq{"f.domain_id": *filter.DomainID})
	}
	if filter.IsActive != nil {
		whereCondition = append(whereCondition, squirrel.Eq{"f.is_active": *filter.IsActive})
	}
	if filter.Search != "" {
		pattern := "%" + strings.TrimSpace(filter.Search) + "%"
		whereCondition = append(whereCondition, squirrel.Or{
			squirrel.ILike{"f.title": pattern},
			squirrel.ILike{"f.reference": pattern},
		})
	}

	if len(whereCondition) > 0 {
		baseSelect = baseSelect.Where(whereCondition)
		countSelect = countSelect.Where(whereCondition)
	}

	countSql, countArgs, err := countSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count formations query: %w", err)
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		return nil, 0, fmt.Errorf("failed to count formations: %w", err)
	}

	if totalItems == 0 {
		return []models.Formation{}, 0, nil
	}

	querySql, queryArgs, err := baseSelect.
		OrderBy("f.title ASC").
		Limit(uint64(pageSize)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build get formations query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query formations: %w", err)
	}
	defer rows.Close()

	var formations []models.Formation
	for rows.Next() {
		f, err := scanFormationWithDomain(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan formation row: %w", err)
		}
		formations = append(formations, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating formation rows: %w", err)
	}

	logger.Debug().Int("page", page).Int64("totalItems", totalItems).Msg("Fetched formations")
	return formations, totalItems, nil
}

// GetByID fetches a formation with its domain
func (r *FormationRepository) GetByID(ctx context.Context, id int64) (*models.Formation, error) {
	query := `
		SELECT ` + formationSelectColumns + `
		FROM formations f
		JOIN domains d ON f.domain_id = d.id
		WHERE f.id = $1`

	f, err := scanFormationWithDomain(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFormationNotFound
		}
		return nil, fmt.Errorf("error querying formation ID=%d: %w", id, err)
	}
	return f, nil
}

// Create inserts a new formation
func (r *FormationRepository) Create(ctx context.Context, f *models.Formation) (int64, error) {
	query := `
		INSERT INTO formations (reference, title, description, objectives, target_audience, duration_days, price, is_active, domain_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	var id int64
	err := r.db.QueryRow(ctx, query,
		f.Reference, f.Title, f.Description, f.Objectives, f.TargetAudience,
		f.DurationDays, f.Price, f.IsActive, f.DomainID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting formation: %w", err)
	}
	return id, nil
}

// Update edits an existing formation
func (r *FormationRepository) Update(ctx context.Context, f *models.Formation) error {
	query := `
		UPDATE formations
		SET reference = $1, title = $2, description = $3, objectives = $4, target_audience = $5,
		    duration_days = $6, price = $7, is_active = $8, domain_id = $9, updated_at = $10
		WHERE id = $11`

	cmdTag, err := r.db.Exec(ctx, query,
		f.Reference, f.Title, f.Description, f.Objectives, f.TargetAudience,
		f.DurationDays, f.Price, f.IsActive, f.DomainID, time.Now(), f.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating formation ID=%d: %w", f.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFormationNotFound
	}
	return nil
}

// Delete removes a formation
func (r *FormationRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM formations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting formation ID=%d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFormationNotFound
	}
	return nil
}
