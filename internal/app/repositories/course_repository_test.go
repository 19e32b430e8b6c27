package repositories

import (
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/require"

	"github.com/avelin/formatrack/internal/app/models/dto"
	"github.com/avelin/formatrack/internal/pkg/helpers"
)

func dayCutoffArg(t *testing.T, cond squirrel.And) time.Time {
	t.Helper()

	_, args, err := squirrel.Select("1").From("courses c").Where(cond).
		PlaceholderFormat(squirrel.Dollar).ToSql()
	require.NoError(t, err)
	require.NotEmpty(t, args)

	cutoff, ok := args[0].(time.Time)
	require.True(t, ok, "first condition argument should be the day cutoff")
	return cutoff
}

func TestCourseFilterConditionDayCutoff(t *testing.T) {
	before := helpers.StartOfDay(time.Now())

	upcoming := dayCutoffArg(t, courseFilterCondition(dto.CourseFilter{}))
	past := dayCutoffArg(t, courseFilterCondition(dto.CourseFilter{Period: "past"}))

	after := helpers.StartOfDay(time.Now())

	// The past/upcoming boundary is midnight in the server's location,
	// matching every other day computation in the tree
	for _, cutoff := range []time.Time{upcoming, past} {
		require.Equal(t, time.Local, cutoff.Location())
		require.True(t, cutoff.Equal(before) || cutoff.Equal(after))
	}
}
