package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelin/formatrack/internal/app/models/dto"
	"github.com/avelin/formatrack/internal/app/services"
	"github.com/avelin/formatrack/internal/middleware"
	"github.com/avelin/formatrack/internal/pkg/apperrors"
	"github.com/avelin/formatrack/internal/pkg/helpers"
	"github.com/avelin/formatrack/internal/pkg/validation"
)

// AttendanceController handles attendance marking and listing endpoints
type AttendanceController struct {
	attendanceService *services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService *services.AttendanceService) *AttendanceController {
	return &AttendanceController{attendanceService: attendanceService}
}

// MarkAttendance godoc
// @Summary Bulk-mark attendance for a course
// @Description Eligible students missing from the submission get an absent record only when none exists.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.BulkAttendanceRequest true "Attendance entries"
// @Success 200 {object} dto.APIResponse{data=dto.BulkAttendanceResponse}
// @Router /courses/{id}/attendance [put]
func (ac *AttendanceController) MarkAttendance(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	courseID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.BulkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("invalid request body"))
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	result, err := ac.attendanceService.MarkAttendance(c.Request.Context(), actor, courseID, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(result))
}

// GetCourseAttendance godoc
// @Summary Get a course's attendance roster
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseAttendanceEntry}
// @Router /courses/{id}/attendance [get]
func (ac *AttendanceController) GetCourseAttendance(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	courseID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	entries, err := ac.attendanceService.GetCourseAttendance(c.Request.Context(), actor, courseID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(entries))
}

// GetMyAttendance godoc
// @Summary List the calling student's attendance records
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /attendance/me [get]
func (ac *AttendanceController) GetMyAttendance(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	page, size := helpers.ParsePaginationParams(c)

	records, total, err := ac.attendanceService.GetStudentAttendance(c.Request.Context(), actor, actor.StudentID, page, size)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      records,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// GetStudentAttendance godoc
// @Summary List one student's attendance records
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /students/{id}/attendance [get]
func (ac *AttendanceController) GetStudentAttendance(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	studentID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	page, size := helpers.ParsePaginationParams(c)

	records, total, err := ac.attendanceService.GetStudentAttendance(c.Request.Context(), actor, studentID, page, size)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      records,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}
