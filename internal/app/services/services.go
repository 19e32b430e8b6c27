package services

import (
	"github.com/avelin/formatrack/internal/app/repositories"
	"github.com/avelin/formatrack/internal/db"
	"github.com/avelin/formatrack/internal/pkg/auth"
	"github.com/avelin/formatrack/internal/pkg/email"
	"github.com/avelin/formatrack/internal/pkg/filestorage"
)

// Services bundles every application service
type Services struct {
	Auth             *AuthService
	Catalog          *CatalogService
	Schedule         *ScheduleService
	Enrollment       *EnrollmentService
	Attendance       *AttendanceService
	Stats            *StatsService
	Document         *DocumentService
	PersonalDocument *PersonalDocumentService
	Student          *StudentService
}

// NewServices wires every service over the shared repositories
func NewServices(
	database *db.PostgresDB,
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	fileStorage filestorage.FileStorage,
) *Services {
	return &Services{
		Auth:             NewAuthService(database, repos.Users, repos.Tokens, jwtService, emailService),
		Catalog:          NewCatalogService(repos.Domains, repos.Formations, repos.Modules),
		Schedule:         NewScheduleService(repos.Rooms, repos.Courses, repos.Availabilities, repos.Formations, repos.Users),
		Enrollment:       NewEnrollmentService(repos.Enrollments, repos.Formations),
		Attendance:       NewAttendanceService(database, repos.Courses, repos.Enrollments, repos.Attendances, repos.Users),
		Stats:            NewStatsService(repos.Courses, repos.Enrollments, repos.Attendances, repos.PersonalDocs, repos.Users),
		Document:         NewDocumentService(database, repos.Documents, repos.Formations, fileStorage),
		PersonalDocument: NewPersonalDocumentService(repos.PersonalDocs, repos.Users, fileStorage),
		Student:          NewStudentService(repos.Users, repos.Enrollments, repos.PersonalDocs),
	}
}
