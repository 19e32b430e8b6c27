package services

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/avelin/formatrack/internal/pkg/apperrors"
)

func TestParseCourseSlot(t *testing.T) {
	t.Run("valid slot", func(t *testing.T) {
		date, start, end, err := parseCourseSlot("2026-04-15", "09:00", "12:30")
		require.NoError(t, err)
		require.Equal(t, time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC), date)
		require.Equal(t, "09:00", start)
		require.Equal(t, "12:30", end)
	})

	t.Run("end must be after start", func(t *testing.T) {
		_, _, _, err := parseCourseSlot("2026-04-15", "12:30", "09:00")
		require.ErrorIs(t, err, apperrors.ErrInvalidTimeRange)
	})

	t.Run("zero-length slot is rejected", func(t *testing.T) {
		_, _, _, err := parseCourseSlot("2026-04-15", "09:00", "09:00")
		require.ErrorIs(t, err, apperrors.ErrInvalidTimeRange)
	})

	t.Run("malformed inputs", func(t *testing.T) {
		cases := [][3]string{
			{"15/04/2026", "09:00", "12:30"},
			{"2026-04-15", "9am", "12:30"},
			{"2026-04-15", "09:00", "noon"},
		}
		for _, c := range cases {
			_, _, _, err := parseCourseSlot(c[0], c[1], c[2])
			require.Error(t, err)
			require.False(t, errors.Is(err, apperrors.ErrInvalidTimeRange))
		}
	})
}

// The booking unique keys compare (date, start_time) for equality only, so
// a write racing past the pre-checks surfaces as one of these constraint
// names and must still answer with the slot conflict errors.
func TestMapCourseSlotConstraint(t *testing.T) {
	roomViolation := &pgconn.PgError{Code: "23505", ConstraintName: "uq_courses_room_slot"}
	trainerViolation := &pgconn.PgError{Code: "23505", ConstraintName: "uq_courses_trainer_slot"}
	unrelated := errors.New("connection reset")

	require.ErrorIs(t, mapCourseSlotConstraint(roomViolation), apperrors.ErrRoomSlotTaken)
	require.ErrorIs(t, mapCourseSlotConstraint(trainerViolation), apperrors.ErrTrainerSlotTaken)
	require.Equal(t, unrelated, mapCourseSlotConstraint(unrelated))
}
