package controllers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelin/formatrack/internal/app/models/dto"
	"github.com/avelin/formatrack/internal/app/services"
	"github.com/avelin/formatrack/internal/middleware"
	"github.com/avelin/formatrack/internal/pkg/apperrors"
	"github.com/avelin/formatrack/internal/pkg/helpers"
	"github.com/avelin/formatrack/internal/pkg/validation"
)

// DocumentController handles shared document endpoints
type DocumentController struct {
	documentService *services.DocumentService
}

// NewDocumentController creates a new DocumentController
func NewDocumentController(documentService *services.DocumentService) *DocumentController {
	return &DocumentController{documentService: documentService}
}

// GetDocuments godoc
// @Summary List shared documents
// @Description Trainers see their own, students the visible documents of their validated formations.
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param formationId query int false "Filter by linked formation"
// @Param type query string false "Filter by document type"
// @Param search query string false "Search in title and tags"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /documents [get]
func (dc *DocumentController) GetDocuments(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	page, size := helpers.ParsePaginationParams(c)

	filter := dto.DocumentFilter{
		FormationID: parseOptionalInt64Query(c, "formationId"),
		Type:        c.Query("type"),
		Search:      c.Query("search"),
	}
	if actor.IsAdmin() {
		filter.TrainerID = parseOptionalInt64Query(c, "trainerId")
	}

	documents, total, err := dc.documentService.GetDocuments(c.Request.Context(), actor, filter, page, size)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      documents,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// GetDocument godoc
// @Summary Get one shared document
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {object} dto.APIResponse{data=models.Document}
// @Router /documents/{id} [get]
func (dc *DocumentController) GetDocument(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	document, err := dc.documentService.GetDocument(c.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(document))
}

// CreateDocument godoc
// @Summary Share a document
// @Description Multipart form with either a file part or an externalUrl field, never both.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param file formData file false "Document file"
// @Param externalUrl formData string false "External URL"
// @Success 201 {object} dto.APIResponse{data=models.Document}
// @Router /documents [post]
func (dc *DocumentController) CreateDocument(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req dto.CreateDocumentRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("invalid form data"))
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var file *multipart.FileHeader
	if header, err := c.FormFile("file"); err == nil {
		file = header
	}

	document, err := dc.documentService.CreateDocument(c.Request.Context(), actor, req, file)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAPIResponse(document))
}

// UpdateDocument godoc
// @Summary Update a shared document's metadata
// @Tags documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Param request body dto.UpdateDocumentRequest true "Metadata"
// @Success 200 {object} dto.APIResponse{data=models.Document}
// @Router /documents/{id} [put]
func (dc *DocumentController) UpdateDocument(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("invalid request body"))
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	document, err := dc.documentService.UpdateDocument(c.Request.Context(), actor, id, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(document))
}

// DeleteDocument godoc
// @Summary Delete a shared document
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Router /documents/{id} [delete]
func (dc *DocumentController) DeleteDocument(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := dc.documentService.DeleteDocument(c.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "document deleted"}))
}
