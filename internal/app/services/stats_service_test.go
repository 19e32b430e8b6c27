package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avelin/formatrack/internal/app/models/dto"
)

func TestComputeAttendanceStats(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		present int
		want    dto.AttendanceStats
	}{
		{"empty set has rate zero", 0, 0, dto.AttendanceStats{}},
		{"full presence", 4, 4, dto.AttendanceStats{Total: 4, Present: 4, Rate: 100}},
		{"two thirds rounds half up", 3, 2, dto.AttendanceStats{Total: 3, Present: 2, Absent: 1, Rate: 66.7}},
		{"one third", 3, 1, dto.AttendanceStats{Total: 3, Present: 1, Absent: 2, Rate: 33.3}},
		{"exact midpoint rounds up", 8, 1, dto.AttendanceStats{Total: 8, Present: 1, Absent: 7, Rate: 12.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, computeAttendanceStats(tt.total, tt.present))
		})
	}
}

func TestRound1(t *testing.T) {
	require.Equal(t, 66.7, round1(66.66666))
	require.Equal(t, 33.3, round1(33.33333))
	require.Equal(t, 50.0, round1(49.95))
	require.Equal(t, 0.0, round1(0))
	require.Equal(t, 100.0, round1(100))
}

func TestRankFormationEntries(t *testing.T) {
	entries := []dto.FormationAttendanceEntry{
		{FormationID: 1, Rate: 50},
		{FormationID: 2, Rate: 80},
		{FormationID: 3, Rate: 50},
		{FormationID: 4, Rate: 95},
	}

	rankFormationEntries(entries)

	ids := make([]int64, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.FormationID)
	}

	// equal rates keep their incoming order
	require.Equal(t, []int64{4, 2, 1, 3}, ids)
}
