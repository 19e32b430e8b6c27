package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/avelin/formatrack/internal/app/models"
	"github.com/avelin/formatrack/internal/app/models/dto"
)

func TestBuildAttendancePlan(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	eligible := []models.Student{{ID: 1}, {ID: 2}, {ID: 3}}

	t.Run("submitted students get records with a verification time", func(t *testing.T) {
		entries := []dto.AttendanceEntry{
			{StudentID: 1, Present: true},
			{StudentID: 2, Present: false},
		}

		plan := buildAttendancePlan(10, eligible, map[int64]models.Attendance{}, entries, now)

		require.Len(t, plan.creates, 3)
		require.Empty(t, plan.updates)

		byStudent := make(map[int64]models.Attendance)
		for _, a := range plan.creates {
			require.Equal(t, int64(10), a.CourseID)
			byStudent[a.StudentID] = a
		}

		require.True(t, byStudent[1].Present)
		require.NotNil(t, byStudent[1].VerifiedAt)
		require.Equal(t, now, *byStudent[1].VerifiedAt)

		require.False(t, byStudent[2].Present)
		require.NotNil(t, byStudent[2].VerifiedAt)

		// student 3 was omitted: absent record, no verification time
		require.False(t, byStudent[3].Present)
		require.Nil(t, byStudent[3].VerifiedAt)
	})

	t.Run("omission never resets an existing record", func(t *testing.T) {
		verified := now.Add(-24 * time.Hour)
		existing := map[int64]models.Attendance{
			1: {ID: 100, CourseID: 10, StudentID: 1, Present: true, VerifiedAt: &verified},
		}

		plan := buildAttendancePlan(10, eligible, existing, nil, now)

		require.Empty(t, plan.updates)
		require.Len(t, plan.creates, 2)
		for _, a := range plan.creates {
			require.NotEqual(t, int64(1), a.StudentID)
			require.False(t, a.Present)
		}
	})

	t.Run("resubmission overwrites present flag and remark", func(t *testing.T) {
		remark := "late"
		existing := map[int64]models.Attendance{
			1: {ID: 100, CourseID: 10, StudentID: 1, Present: true},
		}
		entries := []dto.AttendanceEntry{{StudentID: 1, Present: false, Remark: &remark}}

		plan := buildAttendancePlan(10, eligible, existing, entries, now)

		require.Len(t, plan.updates, 1)
		require.Equal(t, int64(100), plan.updates[0].ID)
		require.False(t, plan.updates[0].Present)
		require.Equal(t, &remark, plan.updates[0].Remark)
		require.Equal(t, now, *plan.updates[0].VerifiedAt)
	})

	t.Run("entries outside the eligible roster are dropped", func(t *testing.T) {
		entries := []dto.AttendanceEntry{
			{StudentID: 99, Present: true},
			{StudentID: 1, Present: true},
		}

		plan := buildAttendancePlan(10, eligible, map[int64]models.Attendance{}, entries, now)

		for _, a := range plan.creates {
			require.NotEqual(t, int64(99), a.StudentID)
		}
		require.Len(t, plan.creates, 3)
	})

	t.Run("applying the same submission twice is idempotent", func(t *testing.T) {
		entries := []dto.AttendanceEntry{{StudentID: 1, Present: true}}

		first := buildAttendancePlan(10, eligible, map[int64]models.Attendance{}, entries, now)
		require.Len(t, first.creates, 3)

		// simulate the stored state after the first application
		stored := make(map[int64]models.Attendance)
		for i, a := range first.creates {
			a.ID = int64(i + 1)
			stored[a.StudentID] = a
		}

		second := buildAttendancePlan(10, eligible, stored, entries, now)
		require.Empty(t, second.creates)
		require.Len(t, second.updates, 1)
		require.Equal(t, int64(1), second.updates[0].StudentID)
		require.True(t, second.updates[0].Present)
	})
}
