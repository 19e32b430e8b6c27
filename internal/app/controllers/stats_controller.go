package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelin/formatrack/internal/app/models/dto"
	"github.com/avelin/formatrack/internal/app/services"
	"github.com/avelin/formatrack/internal/middleware"
)

// StatsController handles attendance statistics and dashboard endpoints
type StatsController struct {
	statsService *services.StatsService
}

// NewStatsController creates a new StatsController
func NewStatsController(statsService *services.StatsService) *StatsController {
	return &StatsController{statsService: statsService}
}

// GetMyStats godoc
// @Summary Get the calling student's attendance statistics
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentStatsResponse}
// @Router /stats/me [get]
func (sc *StatsController) GetMyStats(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	stats, err := sc.statsService.GetStudentStats(c.Request.Context(), actor, actor.StudentID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(stats))
}

// GetStudentStats godoc
// @Summary Get one student's attendance statistics
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentStatsResponse}
// @Router /students/{id}/stats [get]
func (sc *StatsController) GetStudentStats(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	studentID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	stats, err := sc.statsService.GetStudentStats(c.Request.Context(), actor, studentID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(stats))
}

// GetTrainerDashboard godoc
// @Summary Get the trainer home dashboard
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.TrainerDashboardResponse}
// @Router /dashboard/trainer [get]
func (sc *StatsController) GetTrainerDashboard(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	dashboard, err := sc.statsService.GetTrainerDashboard(c.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(dashboard))
}

// GetStudentDashboard godoc
// @Summary Get the student home dashboard
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentDashboardResponse}
// @Router /dashboard/student [get]
func (sc *StatsController) GetStudentDashboard(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	dashboard, err := sc.statsService.GetStudentDashboard(c.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(dashboard))
}

// GetFormationStats godoc
// @Summary Get a formation's attendance rate
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param id path int true "Formation ID"
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceStats}
// @Router /formations/{id}/stats [get]
func (sc *StatsController) GetFormationStats(c *gin.Context) {
	formationID, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	stats, err := sc.statsService.GetFormationStats(c.Request.Context(), formationID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(stats))
}

// GetMonthlyActivity godoc
// @Summary Get per-month session counts over the last 12 months
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.MonthlyActivityEntry}
// @Router /stats/activity [get]
func (sc *StatsController) GetMonthlyActivity(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	entries, err := sc.statsService.GetMonthlyActivity(c.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse(entries))
}
