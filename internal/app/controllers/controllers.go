package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avelin/formatrack/internal/app/services"
	"github.com/avelin/formatrack/internal/pkg/apperrors"
)

// Controllers bundles every HTTP controller
type Controllers struct {
	Auth             *AuthController
	Catalog          *CatalogController
	Schedule         *ScheduleController
	Enrollment       *EnrollmentController
	Attendance       *AttendanceController
	Stats            *StatsController
	Document         *DocumentController
	PersonalDocument *PersonalDocumentController
	Student          *StudentController
}

// NewControllers wires every controller over the shared services
func NewControllers(svcs *services.Services) *Controllers {
	return &Controllers{
		Auth:             NewAuthController(svcs.Auth),
		Catalog:          NewCatalogController(svcs.Catalog),
		Schedule:         NewScheduleController(svcs.Schedule),
		Enrollment:       NewEnrollmentController(svcs.Enrollment),
		Attendance:       NewAttendanceController(svcs.Attendance),
		Stats:            NewStatsController(svcs.Stats),
		Document:         NewDocumentController(svcs.Document),
		PersonalDocument: NewPersonalDocumentController(svcs.PersonalDocument),
		Student:          NewStudentController(svcs.Student),
	}
}

// parseIDParam reads a positive integer path parameter
func parseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewBadRequestError("invalid " + name + " parameter")
	}
	return id, nil
}

// parseOptionalInt64Query reads an optional positive integer query parameter
func parseOptionalInt64Query(c *gin.Context, name string) *int64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return nil
	}
	return &value
}
