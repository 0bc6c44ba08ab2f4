package analytics

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studysync/backend/internal/calendar"
	"studysync/backend/internal/grade"
	"studysync/backend/internal/shared"
	"studysync/backend/internal/store"
)

// Wednesday
var now = time.Date(2024, time.March, 13, 9, 0, 0, 0, time.UTC)

type fixture struct {
	svc     *Service
	store   *store.Store
	courses []shared.Course
	titles  map[string]int64
}

func ptr(v float64) *float64 { return &v }

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st, err := store.OpenBolt(filepath.Join(t.TempDir(), "analytics.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	ctx := context.Background()
	f := &fixture{store: st, titles: map[string]int64{}}

	for _, c := range []shared.Course{
		{Name: "Calculus", Code: "MATH101", Instructor: "Noether", Credits: 3, CurrentGrade: 90, Color: "#3b82f6"},
		{Name: "Physics", Code: "PHYS101", Instructor: "Feynman", Credits: 4, CurrentGrade: 80, Color: "#ef4444"},
	} {
		created, err := st.Courses.Create(ctx, c)
		require.NoError(t, err)
		f.courses = append(f.courses, created)
	}
	math, phys := f.courses[0].ID, f.courses[1].ID

	for _, a := range []shared.Assignment{
		{Title: "Problem set 1", CourseID: math, DueDate: now.Add(-24 * time.Hour), Status: shared.StatusPending, Grade: ptr(88)},
		{Title: "Quiz", CourseID: math, DueDate: time.Date(2024, 3, 13, 17, 0, 0, 0, time.UTC), Status: shared.StatusPending},
		{Title: "Lab report", CourseID: phys, DueDate: now.Add(3 * 24 * time.Hour), Status: shared.StatusCompleted, Grade: ptr(92)},
		{Title: "Reading", CourseID: phys, DueDate: now.Add(5 * 24 * time.Hour), Status: shared.StatusInProgress},
		{Title: "Final project", CourseID: math, DueDate: time.Date(2024, 4, 2, 12, 0, 0, 0, time.UTC), Status: shared.StatusPending},
	} {
		created, err := st.Assignments.Create(ctx, a)
		require.NoError(t, err)
		f.titles[a.Title] = created.ID
	}

	f.svc = NewService(st.Courses, st.Assignments, st.Students, calendar.FixedClock(now))
	return f
}

func titles(items []shared.Assignment) []string {
	out := make([]string, 0, len(items))
	for _, a := range items {
		out = append(out, a.Title)
	}
	return out
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)

	d, err := f.svc.Dashboard(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, "2.73", d.OverallGPA)
	assert.Equal(t, 2, d.TotalCourses)
	assert.Equal(t, []string{"Quiz"}, titles(d.DueToday))
	assert.Equal(t, []string{"Quiz", "Reading"}, titles(d.Upcoming))
	assert.Equal(t, 1, d.OverdueCount)
	assert.Equal(t, 4, d.PendingCount)
}

func TestDashboardLimitsUpcoming(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 1; i <= 6; i++ {
		_, err := f.store.Assignments.Create(ctx, shared.Assignment{
			Title: "Extra", CourseID: f.courses[0].ID, DueDate: now.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	d, err := f.svc.Dashboard(ctx, now)
	require.NoError(t, err)
	require.Len(t, d.Upcoming, 5)
	for i := 1; i < len(d.Upcoming); i++ {
		assert.False(t, d.Upcoming[i].DueDate.Before(d.Upcoming[i-1].DueDate))
	}
}

func TestGradesSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	s, err := f.svc.GradesSummary(ctx, 0)
	require.NoError(t, err)

	assert.Equal(t, "2.73", s.OverallGPA)
	assert.Equal(t, 85.0, s.AverageGrade)
	assert.Equal(t, 7, s.TotalCredits)
	assert.Equal(t, grade.Distribution{A: 1, B: 1}, s.Distribution)
	assert.Equal(t, []string{"Lab report", "Problem set 1"}, titles(s.RecentGraded))

	require.Len(t, s.Courses, 2)
	assert.Equal(t, "A-", s.Courses[0].LetterGrade)
	assert.Equal(t, 3.3, s.Courses[0].GradePoints)
	assert.Equal(t, "B-", s.Courses[1].LetterGrade)

	require.Len(t, s.CourseAverage, 2)
	assert.Equal(t, 88.0, s.CourseAverage[0].AverageGrade)
	assert.Equal(t, 92.0, s.CourseAverage[1].AverageGrade)

	t.Run("narrowed to one course", func(t *testing.T) {
		s, err := f.svc.GradesSummary(ctx, f.courses[1].ID)
		require.NoError(t, err)
		require.Len(t, s.Courses, 1)
		assert.Equal(t, "PHYS101", s.Courses[0].Code)
		assert.Equal(t, 7, s.TotalCredits)
	})

	t.Run("courses without graded work are left off the chart", func(t *testing.T) {
		_, err := f.store.Courses.Create(ctx, shared.Course{Name: "Art", Code: "ART1", Instructor: "Kahlo", Credits: 2})
		require.NoError(t, err)
		s, err := f.svc.GradesSummary(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, s.Courses, 3)
		assert.Len(t, s.CourseAverage, 2)
	})
}

func TestCalendarMonth(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.svc.CalendarMonth(ctx, now, now, ViewMonth)
	require.NoError(t, err)

	assert.Equal(t, "2024-03", view.Month)
	// Feb 25 (Sunday) through Apr 6 (Saturday)
	require.Len(t, view.Days, 42)
	assert.Equal(t, time.Date(2024, 2, 25, 0, 0, 0, 0, time.UTC), view.Days[0].Date)
	assert.False(t, view.Days[0].InMonth)
	assert.Equal(t, calendar.MonthStats{Total: 4, Completed: 1, Pending: 3}, view.Stats)

	var today []Day
	for _, d := range view.Days {
		if d.Today {
			today = append(today, d)
		}
	}
	require.Len(t, today, 1)
	assert.Equal(t, 13, today[0].Date.Day())
	assert.Equal(t, []string{"Quiz"}, titles(today[0].Assignments))

	april2 := view.Days[37]
	assert.Equal(t, time.April, april2.Date.Month())
	assert.Equal(t, 2, april2.Date.Day())
	assert.False(t, april2.InMonth)
	assert.Equal(t, []string{"Final project"}, titles(april2.Assignments))

	t.Run("week", func(t *testing.T) {
		week, err := f.svc.CalendarMonth(ctx, now, now, ViewWeek)
		require.NoError(t, err)
		require.Len(t, week.Days, 7)
		assert.Equal(t, 10, week.Days[0].Date.Day())
		assert.Equal(t, view.Stats, week.Stats)
	})

	t.Run("unknown view", func(t *testing.T) {
		_, err := f.svc.CalendarMonth(ctx, now, now, "year")
		assert.True(t, shared.IsValidationError(err))
	})
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("assignments", func(t *testing.T) {
		s, err := f.svc.AssignmentStats(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, &AssignmentStats{Total: 5, Completed: 1, Pending: 2, Overdue: 1}, s)
	})

	t.Run("courses", func(t *testing.T) {
		s, err := f.svc.CourseStats(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, 2, s.TotalCourses)
		assert.Equal(t, 7, s.TotalCredits)
		assert.Equal(t, 85.0, s.AverageGrade)
		assert.Equal(t, 4, s.PendingAssignments)
		assert.Equal(t, 3, s.UpcomingAssignments)
	})

	t.Run("students", func(t *testing.T) {
		empty, err := f.svc.StudentStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, "0.00", empty.AverageCGPA)

		for _, st := range []shared.Student{
			{Name: "A", CGPA: 3.5, CompletedCredits: 30, EnrollmentStatus: shared.EnrollmentActive},
			{Name: "B", CGPA: 3.0, CompletedCredits: 12, EnrollmentStatus: shared.EnrollmentGraduated},
		} {
			_, err := f.store.Students.Create(ctx, st)
			require.NoError(t, err)
		}

		s, err := f.svc.StudentStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, &StudentStats{Total: 2, Active: 1, AverageCGPA: "3.25", TotalCredits: 42}, s)
	})
}
