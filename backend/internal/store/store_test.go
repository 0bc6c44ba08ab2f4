package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"studysync/backend/internal/shared"
)

func openBolt(t *testing.T) *Store {
	t.Helper()
	s, err := OpenBolt(filepath.Join(t.TempDir(), "data", "studysync.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

// exercise runs the same contract against any backend.
func exercise(t *testing.T, s *Store) {
	ctx := context.Background()
	due := time.Date(2024, 3, 20, 17, 0, 0, 0, time.UTC)

	t.Run("courses", func(t *testing.T) {
		c, err := s.Courses.Create(ctx, shared.Course{
			ID: 999, Name: "Calculus I", Code: "MATH101", Instructor: "Dr. Newton", Credits: 4,
			GradeCategories: shared.DefaultGradeCategories(),
		})
		require.NoError(t, err)
		assert.NotEqual(t, int64(999), c.ID)
		assert.Equal(t, []string{}, c.Schedule)

		got, err := s.Courses.GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, c, got)

		got.Instructor = "Dr. Leibniz"
		_, err = s.Courses.Update(ctx, c.ID, got)
		require.NoError(t, err)

		graded, err := s.Courses.UpdateGrade(ctx, c.ID, 88)
		require.NoError(t, err)
		assert.Equal(t, 88.0, graded.CurrentGrade)
		assert.Equal(t, "Dr. Leibniz", graded.Instructor)
		assert.Len(t, graded.GradeCategories, 4)

		n, err := s.Courses.Count(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, int64(1))

		require.NoError(t, s.Courses.Delete(ctx, c.ID))
		_, err = s.Courses.GetByID(ctx, c.ID)
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.True(t, errors.Is(s.Courses.Delete(ctx, c.ID), ErrNotFound))
		_, err = s.Courses.UpdateGrade(ctx, c.ID, 10)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("assignments", func(t *testing.T) {
		grade := 91.5
		a1, err := s.Assignments.Create(ctx, shared.Assignment{Title: "Essay", CourseID: 7, DueDate: due, Priority: "high", Status: "pending", Grade: &grade})
		require.NoError(t, err)
		a2, err := s.Assignments.Create(ctx, shared.Assignment{Title: "Lab", CourseID: 8, DueDate: due, Priority: "low", Status: "pending"})
		require.NoError(t, err)
		assert.Greater(t, a2.ID, a1.ID)

		byCourse, err := s.Assignments.GetByCourseID(ctx, 7)
		require.NoError(t, err)
		require.Len(t, byCourse, 1)
		assert.Equal(t, "Essay", byCourse[0].Title)
		require.NotNil(t, byCourse[0].Grade)
		assert.Equal(t, 91.5, *byCourse[0].Grade)
		assert.True(t, byCourse[0].DueDate.Equal(due))

		done, err := s.Assignments.UpdateStatus(ctx, a2.ID, shared.StatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, shared.StatusCompleted, done.Status)
		assert.Nil(t, done.Grade)

		_, err = s.Assignments.Update(ctx, 424242, a1)
		assert.True(t, errors.Is(err, ErrNotFound))

		n, err := s.Assignments.DeleteByCourseID(ctx, 8)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("grades", func(t *testing.T) {
		g, err := s.Grades.Create(ctx, shared.GradeEntry{CourseID: 3, Category: "Exams", Score: 90, Weight: 40, Date: due, Title: "Midterm"})
		require.NoError(t, err)

		list, err := s.Grades.GetByCourseID(ctx, 3)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, g.ID, list[0].ID)

		g.Score = 95
		_, err = s.Grades.Update(ctx, g.ID, g)
		require.NoError(t, err)
		got, err := s.Grades.GetByID(ctx, g.ID)
		require.NoError(t, err)
		assert.Equal(t, 95.0, got.Score)
	})

	t.Run("students", func(t *testing.T) {
		st, err := s.Students.Create(ctx, shared.Student{Name: "Ada", GradeLevel: "Senior", EnrollmentStatus: "Active", CGPA: 3.9})
		require.NoError(t, err)
		_, err = s.Students.Create(ctx, shared.Student{Name: "Alan", GradeLevel: "Junior", EnrollmentStatus: "Graduated"})
		require.NoError(t, err)

		seniors, err := s.Students.GetByGradeLevel(ctx, "Senior")
		require.NoError(t, err)
		require.Len(t, seniors, 1)
		assert.Equal(t, st.ID, seniors[0].ID)

		grads, err := s.Students.GetByEnrollmentStatus(ctx, "Graduated")
		require.NoError(t, err)
		assert.Len(t, grads, 1)

		upd, err := s.Students.UpdateAttendance(ctx, st.ID, 87.5)
		require.NoError(t, err)
		assert.Equal(t, 87.5, upd.AttendancePercentage)
		assert.Equal(t, 3.9, upd.CGPA)
	})

	t.Run("faculty", func(t *testing.T) {
		f, err := s.Faculty.Create(ctx, shared.Faculty{Name: "Curie", Department: "Science", EmploymentStatus: "On Leave", SubjectsTaught: []string{"Physics"}})
		require.NoError(t, err)

		sci, err := s.Faculty.GetByDepartment(ctx, "Science")
		require.NoError(t, err)
		require.Len(t, sci, 1)
		assert.Equal(t, []string{"Physics"}, sci[0].SubjectsTaught)

		leave, err := s.Faculty.GetByEmploymentStatus(ctx, "On Leave")
		require.NoError(t, err)
		assert.Len(t, leave, 1)

		paid, err := s.Faculty.UpdateSalary(ctx, f.ID, 7200)
		require.NoError(t, err)
		assert.Equal(t, 7200.0, paid.MonthlySalary)
		assert.Equal(t, "Curie", paid.Name)

		require.NoError(t, s.Faculty.Delete(ctx, f.ID))
	})
}

func TestBoltStore(t *testing.T) {
	s := openBolt(t)
	assert.Equal(t, shared.StoreDriverBolt, s.Driver())
	require.NoError(t, s.Ping(context.Background()))
	exercise(t, s)
}

func TestBoltStoresBackendFieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.db")
	s, err := OpenBolt(path)
	require.NoError(t, err)

	a, err := s.Assignments.Create(context.Background(), shared.Assignment{Title: "Quiz", CourseID: 2, DueDate: time.Now()})
	require.NoError(t, err)
	require.NoError(t, s.Close(context.Background()))

	db, err := bbolt.Open(path, 0600, nil)
	require.NoError(t, err)
	defer db.Close()

	var fields map[string]any
	require.NoError(t, db.View(func(tx *bbolt.Tx) error {
		return json.Unmarshal(tx.Bucket([]byte(collAssignments)).Get(itob(a.ID)), &fields)
	}))
	assert.Contains(t, fields, "title_c")
	assert.Contains(t, fields, "course_id_c")
	assert.Contains(t, fields, "due_date_c")
	assert.NotContains(t, fields, "courseId")
}

func TestBoltCanceledContext(t *testing.T) {
	s := openBolt(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Courses.GetAll(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), &shared.ServiceConfig{Store: shared.StoreConfig{Driver: "sqlite"}})
	require.Error(t, err)
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set, skipping MongoDB integration test")
	}

	cfg := &shared.ServiceConfig{
		Store:   shared.StoreConfig{Driver: shared.StoreDriverMongo, QueryTimeout: 10 * time.Second},
		MongoDB: *shared.DefaultMongoConfig(uri, "studysync_test_"+time.Now().Format("20060102150405")),
	}

	ctx := context.Background()
	s, err := Open(ctx, cfg)
	require.NoError(t, err)

	client, db, err := shared.ConnectMongoDB(&cfg.MongoDB)
	require.NoError(t, err)
	defer func() {
		_ = db.Drop(ctx)
		_ = shared.DisconnectMongoDB(client)
		_ = s.Close(ctx)
	}()

	require.NoError(t, s.Ping(ctx))
	exercise(t, s)
}
