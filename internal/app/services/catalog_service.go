package services

import (
	"context"

	"github.com/avelin/formatrack/internal/app/models"
	"github.com/avelin/formatrack/internal/app/models/dto"
	"github.com/avelin/formatrack/internal/app/repositories"
	"github.com/avelin/formatrack/internal/pkg/apperrors"
	"github.com/avelin/formatrack/internal/pkg/dberrors"
)

// CatalogService manages the domain > formation > module hierarchy
type CatalogService struct {
	domains    *repositories.DomainRepository
	formations *repositories.FormationRepository
	modules    *repositories.ModuleRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	domains *repositories.DomainRepository,
	formations *repositories.FormationRepository,
	modules *repositories.ModuleRepository,
) *CatalogService {
	return &CatalogService{
		domains:    domains,
		formations: formations,
		modules:    modules,
	}
}

// GetDomains returns every domain
func (s *CatalogService) GetDomains(ctx context.Context) ([]models.Domain, error) {
	return s.domains.GetAll(ctx)
}

// GetDomain returns one domain
func (s *CatalogService) GetDomain(ctx context.Context, id int64) (*models.Domain, error) {
	return s.domains.GetByID(ctx, id)
}

// CreateDomain creates a domain
func (s *CatalogService) CreateDomain(ctx context.Context, req dto.CreateDomainRequest) (*models.Domain, error) {
	domain := &models.Domain{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	}

	id, err := s.domains.Create(ctx, domain)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_domains_name") {
			return nil, apperrors.ErrDomainAlreadyExists
		}
		return nil, err
	}
	return s.domains.GetByID(ctx, id)
}

// UpdateDomain edits a domain
func (s *CatalogService) UpdateDomain(ctx context.Context, id int64, req dto.UpdateDomainRequest) (*models.Domain, error) {
	domain, err := s.domains.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	domain.Name = req.Name
	domain.Description = req.Description
	domain.Color = req.Color

	if err := s.domains.Update(ctx, domain); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_domains_name") {
			return nil, apperrors.ErrDomainAlreadyExists
		}
		return nil, err
	}
	return s.domains.GetByID(ctx, id)
}

// DeleteDomain removes a domain. Deletion is denied while formations still
// reference it.
func (s *CatalogService) DeleteDomain(ctx context.Context, id int64) error {
	count, err := s.domains.CountFormations(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.ErrDomainHasFormations
	}

	if err := s.domains.Delete(ctx, id); err != nil {
		// The count check races with concurrent formation creation; the FK
		// keeps the store consistent either way
		if dberrors.IsForeignKeyViolation(err, "") {
			return apperrors.ErrDomainHasFormations
		}
		return err
	}
	return nil
}

// GetFormations lists formations with filtering and pagination
func (s *CatalogService) GetFormations(ctx context.Context, filter dto.FormationFilter, page, pageSize int) ([]models.Formation, int64, error) {
	return s.formations.GetAll(ctx, filter, page, pageSize)
}

// GetFormation returns one formation with its modules
func (s *CatalogService) GetFormation(ctx context.Context, id int64) (*dto.FormationResponse, error) {
	formation, err := s.formations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	modules, err := s.modules.GetByFormation(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.FormationResponse{Formation: *formation, Modules: modules}, nil
}

// CreateFormation creates a formation under an existing domain
func (s *CatalogService) CreateFormation(ctx context.Context, req dto.CreateFormationRequest) (*models.Formation, error) {
	if _, err := s.domains.GetByID(ctx, req.DomainID); err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	formation := &models.Formation{
		Reference:      req.Reference,
		Title:          req.Title,
		Description:    req.Description,
		Objectives:     req.Objectives,
		TargetAudience: req.TargetAudience,
		DurationDays:   req.DurationDays,
		Price:          req.Price,
		IsActive:       isActive,
		DomainID:       req.DomainID,
	}

	id, err := s.formations.Create(ctx, formation)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_formations_reference") {
			return nil, apperrors.ErrFormationAlreadyExists
		}
		return nil, err
	}
	return s.formations.GetByID(ctx, id)
}

// UpdateFormation edits a formation
func (s *CatalogService) UpdateFormation(ctx context.Context, id int64, req dto.UpdateFormationRequest) (*models.Formation, error) {
	formation, err := s.formations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DomainID != formation.DomainID {
		if _, err := s.domains.GetByID(ctx, req.DomainID); err != nil {
			return nil, err
		}
	}

	formation.Reference = req.Reference
	formation.Title = req.Title
	formation.Description = req.Description
	formation.Objectives = req.Objectives
	formation.TargetAudience = req.TargetAudience
	formation.DurationDays = req.DurationDays
	formation.Price = req.Price
	formation.DomainID = req.DomainID
	if req.IsActive != nil {
		formation.IsActive = *req.IsActive
	}

	if err := s.formations.Update(ctx, formation); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_formations_reference") {
			return nil, apperrors.ErrFormationAlreadyExists
		}
		return nil, err
	}
	return s.formations.GetByID(ctx, id)
}

// DeleteFormation removes a formation
func (s *CatalogService) DeleteFormation(ctx context.Context, id int64) error {
	return s.formations.Delete(ctx, id)
}

// GetModules lists a formation's modules in order
func (s *CatalogService) GetModules(ctx context.Context, formationID int64) ([]models.Module, error) {
	if _, err := s.formations.GetByID(ctx, formationID); err != nil {
		return nil, err
	}
	return s.modules.GetByFormation(ctx, formationID)
}

// CreateModule adds a module to a formation
func (s *CatalogService) CreateModule(ctx context.Context, formationID int64, req dto.CreateModuleRequest) (*models.Module, error) {
	if _, err := s.formations.GetByID(ctx, formationID); err != nil {
		return nil, err
	}

	module := &models.Module{
		FormationID:   formationID,
		OrderIndex:    req.OrderIndex,
		Title:         req.Title,
		Description:   req.Description,
		DurationHours: req.DurationHours,
	}

	id, err := s.modules.Create(ctx, module)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_modules_formation_order") ||
			dberrors.IsDuplicateConstraintError(err, "uq_modules_formation_title") {
			return nil, apperrors.ErrModuleAlreadyExists
		}
		return nil, err
	}
	return s.modules.GetByID(ctx, id)
}

// UpdateModule edits a module of a formation
func (s *CatalogService) UpdateModule(ctx context.Context, formationID, moduleID int64, req dto.UpdateModuleRequest) (*models.Module, error) {
	module, err := s.modules.GetByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	if module.FormationID != formationID {
		return nil, apperrors.ErrModuleNotFound
	}

	module.OrderIndex = req.OrderIndex
	module.Title = req.Title
	module.Description = req.Description
	module.DurationHours = req.DurationHours

	if err := s.modules.Update(ctx, module); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_modules_formation_order") ||
			dberrors.IsDuplicateConstraintError(err, "uq_modules_formation_title") {
			return nil, apperrors.ErrModuleAlreadyExists
		}
		return nil, err
	}
	return s.modules.GetByID(ctx, moduleID)
}

// DeleteModule removes a module of a formation
func (s *CatalogService) DeleteModule(ctx context.Context, formationID, moduleID int64) error {
	module, err := s.modules.GetByID(ctx, moduleID)
	if err != nil {
		return err
	}
	if module.FormationID != formationID {
		return apperrors.ErrModuleNotFound
	}
	return s.modules.Delete(ctx, moduleID)
}
