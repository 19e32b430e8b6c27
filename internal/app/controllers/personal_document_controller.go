package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelin/formatrack/internal/app/models/dto"
	"github.com/avelin/formatrack/internal/app/services"
	"github.com/avelin/formatrack/internal/middleware"
	"github.com/avelin/formatrack/internal/pkg/apperrors"
	"github.com/avelin/formatrack/internal/pkg/validation"
)

// PersonalDocumentController handles student personal document endpoints
type PersonalDocumentController struct {
	personalDocumentService *services.PersonalDocumentService
}

// NewPersonalDocumentController creates a new PersonalDocumentController
func NewPersonalDocumentController(personalDocumentService *services.PersonalDocumentService) *PersonalDocumentController {
	return &PersonalDocumentController{personalDocumentService: personalDocumentService}
}

// GetMyDocuments godoc
// @Summary List the calling student's personal documents
// @Tags personal-documents
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.PersonalDocument}
// @Router /personal-documents [get]
func (pc *PersonalDocumentController) GetMyDocuments(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	documents, err := pc.personalDocumentService.GetStudentDocuments(c.Request.Context(), actor, actor.StudentID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(documents))
}

// GetStudentDocuments godoc
// @Summary List one student's personal documents
// @Tags personal-documents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]models.PersonalDocument}
// @Router /students/{id}/documents [get]
func (pc *PersonalDocumentController) GetStudentDocuments(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	studentID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	documents, err := pc.personalDocumentService.GetStudentDocuments(c.Request.Context(), actor, studentID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(documents))
}

// GetDocument godoc
// @Summary Get one personal document
// @Tags personal-documents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {object} dto.APIResponse{data=models.PersonalDocument}
// @Router /personal-documents/{id} [get]
func (pc *PersonalDocumentController) GetDocument(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	document, err := pc.personalDocumentService.GetDocument(c.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(document))
}

// CreateDocument godoc
// @Summary Upload a personal document
// @Tags personal-documents
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param type formData string true "Document type"
// @Param title formData string true "Title"
// @Param file formData file true "Document file"
// @Success 201 {object} dto.APIResponse{data=models.PersonalDocument}
// @Router /personal-documents [post]
func (pc *PersonalDocumentController) CreateDocument(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req dto.CreatePersonalDocumentRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("invalid form data"))
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("a file is required"))
		return
	}

	document, err := pc.personalDocumentService.CreateDocument(c.Request.Context(), actor, req, file)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAPIResponse(document))
}

// UpdateDocument godoc
// @Summary Rename or reclassify a personal document
// @Tags personal-documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Param request body dto.UpdatePersonalDocumentRequest true "Metadata"
// @Success 200 {object} dto.APIResponse{data=models.PersonalDocument}
// @Router /personal-documents/{id} [put]
func (pc *PersonalDocumentController) UpdateDocument(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdatePersonalDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("invalid request body"))
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	document, err := pc.personalDocumentService.UpdateDocument(c.Request.Context(), actor, id, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(document))
}

// SetValidated godoc
// @Summary Mark a personal document as reviewed
// @Tags personal-documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Param request body dto.ValidatePersonalDocumentRequest true "Validation flag"
// @Success 200 {object} dto.APIResponse{data=models.PersonalDocument}
// @Router /personal-documents/{id}/validation [put]
func (pc *PersonalDocumentController) SetValidated(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.ValidatePersonalDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("invalid request body"))
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	document, err := pc.personalDocumentService.SetValidated(c.Request.Context(), actor, id, *req.Validated)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(document))
}

// DeleteDocument godoc
// @Summary Delete a personal document
// @Tags personal-documents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Router /personal-documents/{id} [delete]
func (pc *PersonalDocumentController) DeleteDocument(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := pc.personalDocumentService.DeleteDocument(c.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "document deleted"}))
}
