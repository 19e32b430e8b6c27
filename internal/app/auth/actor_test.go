package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avelin/formatrack/internal/app/models"
)

func TestCanManageTrainerResource(t *testing.T) {
	owner := Actor{UserID: 1, Role: models.RoleTrainer, TrainerID: 7}
	other := Actor{UserID: 2, Role: models.RoleTrainer, TrainerID: 8}
	admin := Actor{UserID: 3, Role: models.RoleAdmin}
	student := Actor{UserID: 4, Role: models.RoleStudent, StudentID: 7}

	require.True(t, owner.CanManageTrainerResource(7))
	require.False(t, other.CanManageTrainerResource(7))
	require.True(t, admin.CanManageTrainerResource(7))

	// a student's profile id never grants trainer ownership
	require.False(t, student.CanManageTrainerResource(7))
}

func TestCanManageStudentResource(t *testing.T) {
	owner := Actor{UserID: 1, Role: models.RoleStudent, StudentID: 5}
	other := Actor{UserID: 2, Role: models.RoleStudent, StudentID: 6}
	admin := Actor{UserID: 3, Role: models.RoleAdmin}
	trainer := Actor{UserID: 4, Role: models.RoleTrainer, TrainerID: 5}

	require.True(t, owner.CanManageStudentResource(5))
	require.False(t, other.CanManageStudentResource(5))
	require.True(t, admin.CanManageStudentResource(5))
	require.False(t, trainer.CanManageStudentResource(5))
}

func TestIsAdmin(t *testing.T) {
	require.True(t, Actor{Role: models.RoleAdmin}.IsAdmin())
	require.False(t, Actor{Role: models.RoleTrainer}.IsAdmin())
	require.False(t, Actor{Role: models.RoleStudent}.IsAdmin())
}
