package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles every repository over one connection pool
type Repositories struct {
	Users          *UserRepository
	Tokens         *TokenRepository
	Domains        *DomainRepository
	Formations     *FormationRepository
	Modules        *ModuleRepository
	Rooms          *RoomRepository
	Courses        *CourseRepository
	Availabilities *AvailabilityRepository
	Enrollments    *EnrollmentRepository
	Attendances    *AttendanceRepository
	Documents      *DocumentRepository
	PersonalDocs   *PersonalDocumentRepository
}

// NewRepositories creates all repositories sharing the given pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:          NewUserRepository(db),
		Tokens:         NewTokenRepository(db),
		Domains:        NewDomainRepository(db),
		Formations:     NewFormationRepository(db),
		Modules:        NewModuleRepository(db),
		Rooms:          NewRoomRepository(db),
		Courses:        NewCourseRepository(db),
		Availabilities: NewAvailabilityRepository(db),
		Enrollments:    NewEnrollmentRepository(db),
		Attendances:    NewAttendanceRepository(db),
		Documents:      NewDocumentRepository(db),
		PersonalDocs:   NewPersonalDocumentRepository(db),
	}
}
