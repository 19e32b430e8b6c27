package auth

import (
	"github.com/avelin/formatrack/internal/app/models"
)

// Actor is the authenticated caller as seen by the service layer: the user
// id, the role, and the role profile id when one exists. StudentID and
// TrainerID are zero for the other roles.
type Actor struct {
	UserID    int64
	Email     string
	Role      models.RoleType
	StudentID int64
	TrainerID int64
}

// IsAdmin reports whether the actor holds the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// CanManageTrainerResource is the single write predicate for trainer-owned
// resources (courses, documents, availabilities, attendance). The owner or
// an admin passes, everyone else fails.
func (a Actor) CanManageTrainerResource(ownerTrainerID int64) bool {
	if a.IsAdmin() {
		return true
	}
	return a.Role == models.RoleTrainer && a.TrainerID == ownerTrainerID
}

// CanManageStudentResource is the student-side counterpart for enrollments
// and personal documents
func (a Actor) CanManageStudentResource(ownerStudentID int64) bool {
	if a.IsAdmin() {
		return true
	}
	return a.Role == models.RoleStudent && a.StudentID == ownerStudentID
}
