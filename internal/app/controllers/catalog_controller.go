package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avelin/formatrack/internal/app/models/dto"
	"github.com/avelin/formatrack/internal/app/services"
	"github.com/avelin/formatrack/internal/middleware"
	"github.com/avelin/formatrack/internal/pkg/apperrors"
	"github.com/avelin/formatrack/internal/pkg/helpers"
	"github.com/avelin/formatrack/internal/pkg/validation"
)

// CatalogController handles domain, formation and module endpoints
type CatalogController struct {
	catalogService *services.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService *services.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// GetDomains godoc
// @Summary List every domain
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Domain}
// @Router /domains [get]
func (cc *CatalogController) GetDomains(c *gin.Context) {
	domains, err := cc.catalogService.GetDomains(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(domains))
}

// GetDomain godoc
// @Summary Get one domain
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Domain ID"
// @Success 200 {object} dto.APIResponse{data=models.Domain}
// @Router /domains/{id} [get]
func (cc *CatalogController) GetDomain(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	domain, err := cc.catalogService.GetDomain(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(domain))
}

// CreateDomain godoc
// @Summary Create a domain
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDomainRequest true "Domain data"
// @Success 201 {object} dto.APIResponse{data=models.Domain}
// @Router /domains [post]
func (cc *CatalogController) CreateDomain(c *gin.Context) {
	var req dto.CreateDomainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("invalid request body"))
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	domain, err := cc.catalogService.CreateDomain(c.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAPIResponse(domain))
}

// UpdateDomain godoc
// @Summary Update a domain
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Domain ID"
// @Param request body dto.UpdateDomainRequest true "Domain data"
// @Success 200 {object} dto.APIResponse{data=models.Domain}
// @Router /domains/{id} [put]
func (cc *CatalogController) UpdateDomain(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateDomainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("invalid request body"))
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	domain, err := cc.catalogService.UpdateDomain(c.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(domain))
}

// DeleteDomain godoc
// @Summary Delete a domain without formations
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Domain ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Router /domains/{id} [delete]
func (cc *CatalogController) DeleteDomain(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := cc.catalogService.DeleteDomain(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "domain deleted"}))
}

// GetFormations godoc
// @Summary List formations
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param domainId query int false "Filter by domain"
// @Param active query bool false "Filter by active flag"
// @Param search query string false "Search in title and reference"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /formations [get]
func (cc *CatalogController) GetFormations(c *gin.Context) {
	page, size := helpers.ParsePaginationParams(c)

	filter := dto.FormationFilter{
		DomainID: parseOptionalInt64Query(c, "domainId"),
		Search:   c.Query("search"),
	}
	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err == nil {
			filter.IsActive = &active
		}
	}

	formations, total, err := cc.catalogService.GetFormations(c.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      formations,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// GetFormation godoc
// @Summary Get one formation with its modules
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Formation ID"
// @Success 200 {object} dto.APIResponse{data=dto.FormationResponse}
// @Router /formations/{id} [get]
func (cc *CatalogController) GetFormation(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	formation, err := cc.catalogService.GetFormation(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(formation))
}

// CreateFormation godoc
// @Summary Create a formation
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFormationRequest true "Formation data"
// @Success 201 {object} dto.APIResponse{data=models.Formation}
// @Router /formations [post]
func (cc *CatalogController) CreateFormation(c *gin.Context) {
	var req dto.CreateFormationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("invalid request body"))
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	formation, err := cc.catalogService.CreateFormation(c.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAPIResponse(formation))
}

// UpdateFormation godoc
// @Summary Update a formation
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Formation ID"
// @Param request body dto.UpdateFormationRequest true "Formation data"
// @Success 200 {object} dto.APIResponse{data=models.Formation}
// @Router /formations/{id} [put]
func (cc *CatalogController) UpdateFormation(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateFormationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("invalid request body"))
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	formation, err := cc.catalogService.UpdateFormation(c.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(formation))
}

// DeleteFormation godoc
// @Summary Delete a formation
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Formation ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Router /formations/{id} [delete]
func (cc *CatalogController) DeleteFormation(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := cc.catalogService.DeleteFormation(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "formation deleted"}))
}

// GetModules godoc
// @Summary List a formation's modules in order
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Formation ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Module}
// @Router /formations/{id}/modules [get]
func (cc *CatalogController) GetModules(c *gin.Context) {
	formationID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	modules, err := cc.catalogService.GetModules(c.Request.Context(), formationID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(modules))
}

// CreateModule godoc
// @Summary Add a module to a formation
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Formation ID"
// @Param request body dto.CreateModuleRequest true "Module data"
// @Success 201 {object} dto.APIResponse{data=models.Module}
// @Router /formations/{id}/modules [post]
func (cc *CatalogController) CreateModule(c *gin.Context) {
	formationID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.CreateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("invalid request body"))
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	module, err := cc.catalogService.CreateModule(c.Request.Context(), formationID, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAPIResponse(module))
}

// UpdateModule godoc
// @Summary Update a module
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Formation ID"
// @Param moduleId path int true "Module ID"
// @Param request body dto.UpdateModuleRequest true "Module data"
// @Success 200 {object} dto.APIResponse{data=models.Module}
// @Router /formations/{id}/modules/{moduleId} [put]
func (cc *CatalogController) UpdateModule(c *gin.Context) {
	formationID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	moduleID, err := parseIDParam(c, "moduleId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("invalid request body"))
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	module, err := cc.catalogService.UpdateModule(c.Request.Context(), formationID, moduleID, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(module))
}

// DeleteModule godoc
// @Summary Delete a module
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Formation ID"
// @Param moduleId path int true "Module ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Router /formations/{id}/modules/{moduleId} [delete]
func (cc *CatalogController) DeleteModule(c *gin.Context) {
	formationID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	moduleID, err := parseIDParam(c, "moduleId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := cc.catalogService.DeleteModule(c.Request.Context(), formationID, moduleID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "module deleted"}))
}
