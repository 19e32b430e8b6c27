package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelin/formatrack/internal/app/models"
	"github.com/avelin/formatrack/internal/app/models/dto"
	"github.com/avelin/formatrack/internal/app/services"
	"github.com/avelin/formatrack/internal/middleware"
	"github.com/avelin/formatrack/internal/pkg/apperrors"
	"github.com/avelin/formatrack/internal/pkg/helpers"
	"github.com/avelin/formatrack/internal/pkg/validation"
)

// EnrollmentController handles enrollment endpoints
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService *services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{enrollmentService: enrollmentService}
}

// GetEnrollments godoc
// @Summary List enrollments
// @Description Students see their own, trainers the ones into formations they teach, admins all.
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param formationId query int false "Filter by formation"
// @Param status query string false "Filter by status"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /enrollments [get]
func (ec *EnrollmentController) GetEnrollments(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	page, size := helpers.ParsePaginationParams(c)

	filter := dto.EnrollmentFilter{
		FormationID: parseOptionalInt64Query(c, "formationId"),
		Status:      c.Query("status"),
	}
	if actor.IsAdmin() {
		filter.StudentID = parseOptionalInt64Query(c, "studentId")
	}

	enrollments, total, err := ec.enrollmentService.GetEnrollments(c.Request.Context(), actor, filter, page, size)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      enrollments,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// GetEnrollment godoc
// @Summary Get one enrollment
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.APIResponse{data=models.Enrollment}
// @Router /enrollments/{id} [get]
func (ec *EnrollmentController) GetEnrollment(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	enrollment, err := ec.enrollmentService.GetEnrollment(c.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(enrollment))
}

// CreateEnrollment godoc
// @Summary Apply to a formation
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEnrollmentRequest true "Application data"
// @Success 201 {object} dto.APIResponse{data=models.Enrollment}
// @Router /enrollments [post]
func (ec *EnrollmentController) CreateEnrollment(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req dto.CreateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("invalid request body"))
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	enrollment, err := ec.enrollmentService.CreateEnrollment(c.Request.Context(), actor, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAPIResponse(enrollment))
}

// UpdateEnrollmentStatus godoc
// @Summary Move an enrollment through its lifecycle
// @Description Admins decide; students may withdraw their own.
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Param request body dto.UpdateEnrollmentStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Enrollment}
// @Router /enrollments/{id}/status [put]
func (ec *EnrollmentController) UpdateEnrollmentStatus(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateEnrollmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("invalid request body"))
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	enrollment, err := ec.enrollmentService.UpdateEnrollmentStatus(c.Request.Context(), actor, id, models.EnrollmentStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(enrollment))
}

// DeleteEnrollment godoc
// @Summary Delete an enrollment
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Router /enrollments/{id} [delete]
func (ec *EnrollmentController) DeleteEnrollment(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := ec.enrollmentService.DeleteEnrollment(c.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "enrollment deleted"}))
}
