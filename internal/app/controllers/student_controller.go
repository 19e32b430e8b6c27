package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelin/formatrack/internal/app/models/dto"
	"github.com/avelin/formatrack/internal/app/services"
	"github.com/avelin/formatrack/internal/middleware"
	"github.com/avelin/formatrack/internal/pkg/helpers"
)

// StudentController handles the trainer's student roster endpoints
type StudentController struct {
	studentService *services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// GetRoster godoc
// @Summary List the students the calling trainer teaches
// @Description A student is on the roster when a validated enrollment of theirs
// @Description belongs to a formation with at least one course by this trainer.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /trainers/me/students [get]
func (sc *StudentController) GetRoster(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	page, size := helpers.ParsePaginationParams(c)

	students, total, err := sc.studentService.GetRoster(c.Request.Context(), actor, page, size)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      students,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// GetRosterStudent godoc
// @Summary Get one roster student's detail
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentRosterDetail}
// @Router /trainers/me/students/{id} [get]
func (sc *StudentController) GetRosterStudent(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	studentID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	detail, err := sc.studentService.GetRosterStudent(c.Request.Context(), actor, studentID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(detail))
}
