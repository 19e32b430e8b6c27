package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 20, 40, 20},
		{"zero page falls back to first", 0, 10, 0, 10},
		{"negative size falls back to default", 1, -5, 0, DefaultPageSize},
		{"oversized page size is capped", 2, 500, uint64(DefaultPageSize), DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tt.page, tt.size)
			require.Equal(t, tt.wantOffset, offset)
			require.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(45, 2, 10)
	require.Equal(t, 2, info.CurrentPage)
	require.Equal(t, 5, info.TotalPages)
	require.Equal(t, 10, info.PageSize)
	require.Equal(t, int64(45), info.TotalItems)
}

func TestNewPaginationInfoEmptyResult(t *testing.T) {
	info := NewPaginationInfo(0, 1, 10)
	require.Equal(t, 1, info.CurrentPage)
	require.Equal(t, 1, info.TotalPages)
	require.Equal(t, int64(0), info.TotalItems)
}

func TestNewPaginationInfoClampsPastLastPage(t *testing.T) {
	info := NewPaginationInfo(15, 9, 10)
	require.Equal(t, 2, info.CurrentPage)
	require.Equal(t, 2, info.TotalPages)
}
