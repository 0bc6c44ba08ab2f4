package admin

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studysync/backend/internal/pipeline"
	"studysync/backend/internal/shared"
	"studysync/backend/internal/store"
)

func newTestService(t *testing.T) *AdminService {
	t.Helper()
	st, err := store.OpenBolt(filepath.Join(t.TempDir(), "admin.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close(context.Background()) })
	return NewAdminService(st.Students, st.Faculty)
}

func TestStudentRoster(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	seed := []shared.Student{
		{Name: "Grace Hopper", CGPA: 3.2, GradeLevel: "Senior", EnrollmentStatus: shared.EnrollmentActive, AttendancePercentage: 90, CompletedCredits: 110},
		{Name: "Alan Turing", CGPA: 3.9, GradeLevel: "Junior", EnrollmentStatus: shared.EnrollmentActive, AttendancePercentage: 70, CompletedCredits: 80},
		{Name: "Ada Lovelace", CGPA: 0, GradeLevel: "Senior", EnrollmentStatus: shared.EnrollmentGraduated, Email: "ada@uni.edu"},
	}
	var ids []int64
	for _, st := range seed {
		created, err := svc.CreateStudent(ctx, st)
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	t.Run("validation", func(t *testing.T) {
		_, err := svc.CreateStudent(ctx, shared.Student{Name: "Bad", CGPA: 4.5, AttendancePercentage: 101, Email: "nope"})
		var ve *shared.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Len(t, ve.Fields, 3)
	})

	t.Run("list filters and sorts", func(t *testing.T) {
		got, err := svc.ListStudents(ctx, pipeline.StudentFilter{GradeLevel: "Senior"}, pipeline.SortByName)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Ada Lovelace", got[0].Name)

		got, err = svc.ListStudents(ctx, pipeline.StudentFilter{}, pipeline.SortByCGPA)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "Alan Turing", got[0].Name)
		assert.Equal(t, "Ada Lovelace", got[2].Name)
	})

	t.Run("attendance", func(t *testing.T) {
		st, err := svc.UpdateAttendance(ctx, ids[1], 95)
		require.NoError(t, err)
		assert.Equal(t, 95.0, st.AttendancePercentage)

		_, err = svc.UpdateAttendance(ctx, ids[1], 130)
		assert.True(t, shared.IsValidationError(err))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.DeleteStudent(ctx, ids[2]))
		_, err := svc.GetStudent(ctx, ids[2])
		assert.True(t, errors.Is(err, store.ErrNotFound))
	})
}

func TestFacultyRoster(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	f, err := svc.CreateFaculty(ctx, shared.Faculty{
		Name: "Marie Curie", Department: "Science", SubjectsTaught: []string{"Physics"},
		WeeklyTeachingHours: 12, ContactPhone: "+1 (555) 123-4567",
	})
	require.NoError(t, err)
	assert.Equal(t, shared.EmploymentActive, f.EmploymentStatus)

	t.Run("custom rules", func(t *testing.T) {
		_, err := svc.CreateFaculty(ctx, shared.Faculty{
			Name: "Bad", WeeklyTeachingHours: 41, ContactPhone: "12", EmploymentStatus: "Fired",
		})
		var ve *shared.ValidationError
		require.True(t, errors.As(err, &ve))

		msgs := map[string]string{}
		for _, fe := range ve.Fields {
			msgs[fe.Field] = fe.Error
		}
		assert.Contains(t, msgs, "weeklyTeachingHours")
		assert.Equal(t, "invalid phone number format", msgs["contactPhone"])
		assert.Equal(t, "must be one of Active, On Leave, Retired", msgs["employmentStatus"])
	})

	t.Run("on leave is accepted", func(t *testing.T) {
		f.EmploymentStatus = shared.EmploymentOnLeave
		updated, err := svc.UpdateFaculty(ctx, f.ID, f)
		require.NoError(t, err)
		assert.Equal(t, shared.EmploymentOnLeave, updated.EmploymentStatus)
	})

	t.Run("salary", func(t *testing.T) {
		paid, err := svc.UpdateSalary(ctx, f.ID, 8000)
		require.NoError(t, err)
		assert.Equal(t, 8000.0, paid.MonthlySalary)

		_, err = svc.UpdateSalary(ctx, f.ID, -1)
		assert.True(t, shared.IsValidationError(err))
	})

	t.Run("list", func(t *testing.T) {
		got, err := svc.ListFaculty(ctx, pipeline.FacultyFilter{Search: "physics", Department: "Science"})
		require.NoError(t, err)
		assert.Len(t, got, 1)

		got, err = svc.ListFaculty(ctx, pipeline.FacultyFilter{Department: "Arts"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
