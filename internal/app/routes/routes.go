package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelin/formatrack/internal/app/controllers"
	"github.com/avelin/formatrack/internal/app/models"
	"github.com/avelin/formatrack/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl *controllers.Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register/student", ctrl.Auth.RegisterStudent)
		auth.POST("/register/trainer", ctrl.Auth.RegisterTrainer)
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/refresh", ctrl.Auth.Refresh)
		auth.POST("/logout", ctrl.Auth.Logout)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.Authenticate())

	adminOnly := middleware.RoleRequired(models.RoleAdmin)
	trainerOrAdmin := middleware.RoleRequired(models.RoleTrainer, models.RoleAdmin)
	studentOnly := middleware.RoleRequired(models.RoleStudent)

	// Profile
	users := authenticated.Group("/users")
	{
		users.GET("/me", ctrl.Auth.GetProfile)
		users.PUT("/me", ctrl.Auth.UpdateProfile)
	}

	// Catalog: everyone reads, admins write
	domains := authenticated.Group("/domains")
	{
		domains.GET("", ctrl.Catalog.GetDomains)
		domains.GET("/:id", ctrl.Catalog.GetDomain)

		domainsAdmin := domains.Group("", adminOnly)
		{
			domainsAdmin.POST("", ctrl.Catalog.CreateDomain)
			domainsAdmin.PUT("/:id", ctrl.Catalog.UpdateDomain)
			domainsAdmin.DELETE("/:id", ctrl.Catalog.DeleteDomain)
		}
	}

	formations := authenticated.Group("/formations")
	{
		formations.GET("", ctrl.Catalog.GetFormations)
		formations.GET("/:id", ctrl.Catalog.GetFormation)
		formations.GET("/:id/modules", ctrl.Catalog.GetModules)
		formations.GET("/:id/stats", trainerOrAdmin, ctrl.Stats.GetFormationStats)

		formationsAdmin := formations.Group("", adminOnly)
		{
			formationsAdmin.POST("", ctrl.Catalog.CreateFormation)
			formationsAdmin.PUT("/:id", ctrl.Catalog.UpdateFormation)
			formationsAdmin.DELETE("/:id", ctrl.Catalog.DeleteFormation)
			formationsAdmin.POST("/:id/modules", ctrl.Catalog.CreateModule)
			formationsAdmin.PUT("/:id/modules/:moduleId", ctrl.Catalog.UpdateModule)
			formationsAdmin.DELETE("/:id/modules/:moduleId", ctrl.Catalog.DeleteModule)
		}
	}

	// Scheduling
	rooms := authenticated.Group("/rooms")
	{
		rooms.GET("", ctrl.Schedule.GetRooms)

		roomsAdmin := rooms.Group("", adminOnly)
		{
			roomsAdmin.POST("", ctrl.Schedule.CreateRoom)
			roomsAdmin.PUT("/:id", ctrl.Schedule.UpdateRoom)
			roomsAdmin.DELETE("/:id", ctrl.Schedule.DeleteRoom)
		}
	}

	courses := authenticated.Group("/courses")
	{
		courses.GET("", ctrl.Schedule.GetCourses)
		courses.GET("/:id", ctrl.Schedule.GetCourse)

		coursesTrainer := courses.Group("", trainerOrAdmin)
		{
			coursesTrainer.POST("", ctrl.Schedule.CreateCourse)
			coursesTrainer.PUT("/:id", ctrl.Schedule.UpdateCourse)
			coursesTrainer.DELETE("/:id", ctrl.Schedule.DeleteCourse)
			coursesTrainer.PUT("/:id/attendance", ctrl.Attendance.MarkAttendance)
			coursesTrainer.GET("/:id/attendance", ctrl.Attendance.GetCourseAttendance)
		}
	}

	availabilities := authenticated.Group("/availabilities", trainerOrAdmin)
	{
		availabilities.GET("", ctrl.Schedule.GetAvailabilities)
		availabilities.POST("", ctrl.Schedule.CreateAvailability)
		availabilities.DELETE("/:id", ctrl.Schedule.DeleteAvailability)
	}

	// Enrollments
	enrollments := authenticated.Group("/enrollments")
	{
		enrollments.GET("", ctrl.Enrollment.GetEnrollments)
		enrollments.GET("/:id", ctrl.Enrollment.GetEnrollment)
		enrollments.POST("", studentOnly, ctrl.Enrollment.CreateEnrollment)
		enrollments.PUT("/:id/status", ctrl.Enrollment.UpdateEnrollmentStatus)
		enrollments.DELETE("/:id", adminOnly, ctrl.Enrollment.DeleteEnrollment)
	}

	// Attendance and statistics
	authenticated.GET("/attendance/me", studentOnly, ctrl.Attendance.GetMyAttendance)
	authenticated.GET("/stats/me", studentOnly, ctrl.Stats.GetMyStats)
	authenticated.GET("/stats/activity", trainerOrAdmin, ctrl.Stats.GetMonthlyActivity)
	authenticated.GET("/dashboard/trainer", middleware.RoleRequired(models.RoleTrainer), ctrl.Stats.GetTrainerDashboard)
	authenticated.GET("/dashboard/student", studentOnly, ctrl.Stats.GetStudentDashboard)

	students := authenticated.Group("/students", trainerOrAdmin)
	{
		students.GET("/:id/attendance", ctrl.Attendance.GetStudentAttendance)
		students.GET("/:id/stats", ctrl.Stats.GetStudentStats)
		students.GET("/:id/documents", ctrl.PersonalDocument.GetStudentDocuments)
	}

	// Shared documents
	documents := authenticated.Group("/documents")
	{
		documents.GET("", ctrl.Document.GetDocuments)
		documents.GET("/:id", ctrl.Document.GetDocument)

		documentsTrainer := documents.Group("", trainerOrAdmin)
		{
			documentsTrainer.POST("", ctrl.Document.CreateDocument)
			documentsTrainer.PUT("/:id", ctrl.Document.UpdateDocument)
			documentsTrainer.DELETE("/:id", ctrl.Document.DeleteDocument)
		}
	}

	// Personal documents
	personalDocuments := authenticated.Group("/personal-documents")
	{
		personalDocuments.GET("", studentOnly, ctrl.PersonalDocument.GetMyDocuments)
		personalDocuments.POST("", studentOnly, ctrl.PersonalDocument.CreateDocument)
		personalDocuments.GET("/:id", ctrl.PersonalDocument.GetDocument)
		personalDocuments.PUT("/:id", ctrl.PersonalDocument.UpdateDocument)
		personalDocuments.PUT("/:id/validation", adminOnly, ctrl.PersonalDocument.SetValidated)
		personalDocuments.DELETE("/:id", ctrl.PersonalDocument.DeleteDocument)
	}

	// Trainer roster
	roster := authenticated.Group("/trainers/me/students", middleware.RoleRequired(models.RoleTrainer))
	{
		roster.GET("", ctrl.Student.GetRoster)
		roster.GET("/:id", ctrl.Student.GetRosterStudent)
	}
}
