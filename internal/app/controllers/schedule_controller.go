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

// ScheduleController handles room, course and availability endpoints
type ScheduleController struct {
	scheduleService *services.ScheduleService
}

// NewScheduleController creates a new ScheduleController
func NewScheduleController(scheduleService *services.ScheduleService) *ScheduleController {
	return &ScheduleController{scheduleService: scheduleService}
}

// GetRooms godoc
// @Summary List every room
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Room}
// @Router /rooms [get]
func (sc *ScheduleController) GetRooms(c *gin.Context) {
	rooms, err := sc.scheduleService.GetRooms(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(rooms))
}

// CreateRoom godoc
// @Summary Create a room
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRoomRequest true "Room data"
// @Success 201 {object} dto.APIResponse{data=models.Room}
// @Router /rooms [post]
func (sc *ScheduleController) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("invalid request body"))
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	room, err := sc.scheduleService.CreateRoom(c.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAPIResponse(room))
}

// UpdateRoom godoc
// @Summary Update a room
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Param request body dto.UpdateRoomRequest true "Room data"
// @Success 200 {object} dto.APIResponse{data=models.Room}
// @Router /rooms/{id} [put]
func (sc *ScheduleController) UpdateRoom(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("invalid request body"))
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	room, err := sc.scheduleService.UpdateRoom(c.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(room))
}

// DeleteRoom godoc
// @Summary Delete a room
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param id path int true "Room ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Router /rooms/{id} [delete]
func (sc *ScheduleController) DeleteRoom(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := sc.scheduleService.DeleteRoom(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "room deleted"}))
}

// GetCourses godoc
// @Summary List courses
// @Description Trainers see their own courses; admins see everything.
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param period query string false "past or upcoming (default upcoming)"
// @Param formationId query int false "Filter by formation"
// @Param trainerId query int false "Filter by trainer (admin only)"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /courses [get]
func (sc *ScheduleController) GetCourses(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	page, size := helpers.ParsePaginationParams(c)

	filter := dto.CourseFilter{
		Period:      c.Query("period"),
		FormationID: parseOptionalInt64Query(c, "formationId"),
		TrainerID:   parseOptionalInt64Query(c, "trainerId"),
	}

	courses, total, err := sc.scheduleService.GetCourses(c.Request.Context(), actor, filter, page, size)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      courses,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// GetCourse godoc
// @Summary Get one course
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Router /courses/{id} [get]
func (sc *ScheduleController) GetCourse(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	course, err := sc.scheduleService.GetCourse(c.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(course))
}

// CreateCourse godoc
// @Summary Schedule a course session
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course data"
// @Success 201 {object} dto.APIResponse{data=models.Course}
// @Router /courses [post]
func (sc *ScheduleController) CreateCourse(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("invalid request body"))
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	course, err := sc.scheduleService.CreateCourse(c.Request.Context(), actor, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAPIResponse(course))
}

// UpdateCourse godoc
// @Summary Reschedule or edit a course
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Course data"
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Router /courses/{id} [put]
func (sc *ScheduleController) UpdateCourse(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("invalid request body"))
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	course, err := sc.scheduleService.UpdateCourse(c.Request.Context(), actor, id, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(course))
}

// DeleteCourse godoc
// @Summary Delete a course
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Router /courses/{id} [delete]
func (sc *ScheduleController) DeleteCourse(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := sc.scheduleService.DeleteCourse(c.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "course deleted"}))
}

// GetAvailabilities godoc
// @Summary List current availability windows
// @Description Trainers list their own windows; admins pass trainerId.
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param trainerId query int false "Trainer ID (admin only)"
// @Success 200 {object} dto.APIResponse{data=[]models.Availability}
// @Router /availabilities [get]
func (sc *ScheduleController) GetAvailabilities(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var trainerID int64
	if id := parseOptionalInt64Query(c, "trainerId"); id != nil {
		trainerID = *id
	}

	windows, err := sc.scheduleService.GetAvailabilities(c.Request.Context(), actor, trainerID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(windows))
}

// CreateAvailability godoc
// @Summary Declare an availability window
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAvailabilityRequest true "Window data"
// @Success 201 {object} dto.APIResponse{data=models.Availability}
// @Router /availabilities [post]
func (sc *ScheduleController) CreateAvailability(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req dto.CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("invalid request body"))
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	window, err := sc.scheduleService.CreateAvailability(c.Request.Context(), actor, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAPIResponse(window))
}

// DeleteAvailability godoc
// @Summary Delete an availability window
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param id path int true "Availability ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Router /availabilities/{id} [delete]
func (sc *ScheduleController) DeleteAvailability(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := sc.scheduleService.DeleteAvailability(c.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "availability deleted"}))
}
