package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studysync/backend/internal/shared"
)

// Wednesday 2024-03-13 14:30 UTC
var now = time.Date(2024, time.March, 13, 14, 30, 0, 0, time.UTC)

func due(id int64, at time.Time, status string) shared.Assignment {
	return shared.Assignment{ID: id, Title: "a", CourseID: 1, DueDate: at, Status: status}
}

func TestDerivedStatus(t *testing.T) {
	tests := []struct {
		name   string
		a      shared.Assignment
		expect string
	}{
		{"completed in the past", due(1, now.AddDate(0, 0, -3), shared.StatusCompleted), shared.StatusCompleted},
		{"completed in the future", due(1, now.AddDate(0, 0, 3), shared.StatusCompleted), shared.StatusCompleted},
		{"due yesterday", due(1, now.AddDate(0, 0, -1), shared.StatusPending), shared.StatusOverdue},
		{"due earlier today", due(1, now.Add(-time.Hour), shared.StatusInProgress), shared.StatusOverdue},
		{"due later today", due(1, now.Add(2*time.Hour), shared.StatusPending), shared.StatusInProgress},
		{"due tomorrow", due(1, now.AddDate(0, 0, 1), shared.StatusInProgress), shared.StatusPending},
		{"no due date", due(1, time.Time{}, shared.StatusPending), shared.StatusPending},
		{"no due date in progress", due(1, time.Time{}, shared.StatusInProgress), shared.StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expect, DerivedStatus(tt.a, now))
		})
	}
}

func TestAssignmentsOnDate(t *testing.T) {
	items := []shared.Assignment{
		due(1, time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC), shared.StatusPending),
		due(2, time.Date(2024, 3, 13, 23, 59, 0, 0, time.UTC), shared.StatusPending),
		due(3, time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), shared.StatusPending),
	}

	got := AssignmentsOnDate(items, now)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)

	assert.Empty(t, AssignmentsOnDate(items, now.AddDate(0, 0, 5)))
}

func TestMonthDays(t *testing.T) {
	// March 2024 starts on a Friday and ends on a Sunday
	days := MonthDays(now)
	require.Len(t, days, 42)
	assert.Equal(t, time.Date(2024, 2, 25, 0, 0, 0, 0, time.UTC), days[0])
	assert.Equal(t, time.Date(2024, 4, 6, 0, 0, 0, 0, time.UTC), days[len(days)-1])
	assert.Equal(t, time.Sunday, days[0].Weekday())
	assert.Equal(t, time.Saturday, days[len(days)-1].Weekday())

	// February 2015 fits exactly in four weeks
	feb := MonthDays(time.Date(2015, 2, 10, 8, 0, 0, 0, time.UTC))
	assert.Len(t, feb, 28)
}

func TestWeekDays(t *testing.T) {
	days := WeekDays(now)
	require.Len(t, days, 7)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), days[0])
	assert.Equal(t, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), days[6])
}

func TestSortByStatusThenDueDate(t *testing.T) {
	items := []shared.Assignment{
		due(1, now.AddDate(0, 0, 5), shared.StatusPending),     // pending
		due(2, now.AddDate(0, 0, -2), shared.StatusCompleted),  // completed
		due(3, now.Add(time.Hour), shared.StatusPending),       // in-progress
		due(4, now.AddDate(0, 0, -1), shared.StatusPending),    // overdue
		due(5, now.AddDate(0, 0, 2), shared.StatusPending),     // pending
		due(6, now.AddDate(0, 0, -4), shared.StatusInProgress), // overdue
	}

	got := SortByStatusThenDueDate(items, now)
	ids := make([]int64, len(got))
	for i, a := range got {
		ids[i] = a.ID
	}
	assert.Equal(t, []int64{6, 4, 3, 5, 1, 2}, ids)
	assert.Equal(t, int64(1), items[0].ID, "input must not be reordered")
}

func TestWindows(t *testing.T) {
	items := []shared.Assignment{
		due(1, now.Add(-time.Minute), shared.StatusPending),
		due(2, now, shared.StatusPending),
		due(3, now.Add(7*24*time.Hour), shared.StatusPending),
		due(4, now.Add(7*24*time.Hour+time.Second), shared.StatusPending),
		due(5, now.Add(3*time.Hour), shared.StatusCompleted),
		due(6, now.Add(2*time.Hour), shared.StatusInProgress),
		due(7, time.Date(2024, 4, 2, 9, 0, 0, 0, time.UTC), shared.StatusCompleted),
	}

	t.Run("upcoming excludes now, includes the window end, sorted", func(t *testing.T) {
		got := Upcoming(items, now, 7)
		require.Len(t, got, 2)
		assert.Equal(t, int64(6), got[0].ID)
		assert.Equal(t, int64(3), got[1].ID)
	})

	t.Run("due today skips completed", func(t *testing.T) {
		got := DueToday(items, now)
		require.Len(t, got, 3)
		for _, a := range got {
			assert.NotEqual(t, shared.StatusCompleted, a.Status)
		}
	})

	t.Run("month", func(t *testing.T) {
		assert.Len(t, DueInMonth(items, now), 6)
		stats := StatsForMonth(items, now)
		assert.Equal(t, MonthStats{Total: 6, Completed: 1, Pending: 5}, stats)
	})

	t.Run("overdue", func(t *testing.T) {
		got := Overdue(items, now)
		require.Len(t, got, 1)
		assert.Equal(t, int64(1), got[0].ID)
	})

	t.Run("undated assignments are never overdue or upcoming", func(t *testing.T) {
		undated := []shared.Assignment{due(8, time.Time{}, shared.StatusPending)}
		assert.Empty(t, Overdue(undated, now))
		assert.Empty(t, Upcoming(undated, now, 7))
		sorted := SortByStatusThenDueDate(append(undated, due(9, now.AddDate(0, 0, 2), shared.StatusPending)), now)
		assert.Equal(t, int64(8), sorted[0].ID)
		assert.Equal(t, shared.StatusPending, DerivedStatus(sorted[0], now))
	})

	t.Run("course upcoming count", func(t *testing.T) {
		assert.Equal(t, 3, CountUpcomingForCourse(items, 1, now))
		assert.Equal(t, 0, CountUpcomingForCourse(items, 99, now))
	})
}

func TestClock(t *testing.T) {
	var c Clock = FixedClock(now)
	assert.True(t, c.Now().Equal(now))
	assert.False(t, SystemClock{}.Now().IsZero())
}
