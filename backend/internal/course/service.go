package course

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"studysync/backend/internal/calendar"
	"studysync/backend/internal/grade"
	"studysync/backend/internal/pipeline"
	"studysync/backend/internal/shared"
)

// CourseStore is the course persistence the service needs
type CourseStore interface {
	GetAll(ctx context.Context) ([]shared.Course, error)
	GetByID(ctx context.Context, id int64) (shared.Course, error)
	Create(ctx context.Context, c shared.Course) (shared.Course, error)
	Update(ctx context.Context, id int64, c shared.Course) (shared.Course, error)
	Delete(ctx context.Context, id int64) error
	UpdateGrade(ctx context.Context, id int64, grade float64) (shared.Course, error)
}

// GradeStore is the grade entry persistence the service needs
type GradeStore interface {
	GetAll(ctx context.Context) ([]shared.GradeEntry, error)
	GetByID(ctx context.Context, id int64) (shared.GradeEntry, error)
	GetByCourseID(ctx context.Context, courseID int64) ([]shared.GradeEntry, error)
	Create(ctx context.Context, g shared.GradeEntry) (shared.GradeEntry, error)
	Update(ctx context.Context, id int64, g shared.GradeEntry) (shared.GradeEntry, error)
	Delete(ctx context.Context, id int64) error
	DeleteByCourseID(ctx context.Context, courseID int64) (int, error)
}

// AssignmentStore is the slice of assignment persistence courses touch
type AssignmentStore interface {
	GetAll(ctx context.Context) ([]shared.Assignment, error)
	DeleteByCourseID(ctx context.Context, courseID int64) (int, error)
}

// Summary is a course with its derived grade and workload figures
type Summary struct {
	shared.Course
	LetterGrade         string  `json:"letterGrade"`
	GradePoints         float64 `json:"gradePoints"`
	UpcomingAssignments int     `json:"upcomingAssignments"`
}

// CourseService manages courses and their grade entries
type CourseService struct {
	courses     CourseStore
	grades      GradeStore
	assignments AssignmentStore
	clock       calendar.Clock
}

// NewCourseService creates a new CourseService instance
func NewCourseService(courses CourseStore, grades GradeStore, assignments AssignmentStore, clock calendar.Clock) *CourseService {
	if clock == nil {
		clock = calendar.SystemClock{}
	}
	return &CourseService{
		courses:     courses,
		grades:      grades,
		assignments: assignments,
		clock:       clock,
	}
}

// ListCourses returns the courses matching filter with their summaries
func (s *CourseService) ListCourses(ctx context.Context, filter pipeline.CourseFilter) ([]Summary, error) {
	courses, err := s.courses.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	assignments, err := s.assignments.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	matched := pipeline.FilterCourses(courses, filter)
	out := make([]Summary, 0, len(matched))
	for _, c := range matched {
		out = append(out, summarize(c, assignments, now))
	}
	return out, nil
}

// GetCourse returns one course with its summary
func (s *CourseService) GetCourse(ctx context.Context, id int64) (Summary, error) {
	c, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return Summary{}, err
	}
	assignments, err := s.assignments.GetAll(ctx)
	if err != nil {
		return Summary{}, err
	}
	return summarize(c, assignments, s.clock.Now()), nil
}

func summarize(c shared.Course, assignments []shared.Assignment, now time.Time) Summary {
	return Summary{
		Course:              c,
		LetterGrade:         grade.LetterGrade(c.CurrentGrade),
		GradePoints:         grade.GradePoints(c.CurrentGrade),
		UpcomingAssignments: calendar.CountUpcomingForCourse(assignments, c.ID, now),
	}
}

// CreateCourse stores a new course. The current grade always starts at 0 and
// an empty category list gets the default weighting.
func (s *CourseService) CreateCourse(ctx context.Context, c shared.Course) (shared.Course, error) {
	c.CurrentGrade = 0
	if len(c.GradeCategories) == 0 {
		c.GradeCategories = shared.DefaultGradeCategories()
	}
	if err := shared.Check(c); err != nil {
		return shared.Course{}, err
	}

	created, err := s.courses.Create(ctx, c)
	if err != nil {
		return shared.Course{}, err
	}
	slog.Info("course created", "course_id", created.ID, "code", created.Code)
	return created, nil
}

// UpdateCourse replaces a course after validating it
func (s *CourseService) UpdateCourse(ctx context.Context, id int64, c shared.Course) (shared.Course, error) {
	if err := shared.Check(c); err != nil {
		return shared.Course{}, err
	}
	return s.courses.Update(ctx, id, c)
}

// DeleteCourse removes a course together with its assignments and grade entries
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	if err := s.courses.Delete(ctx, id); err != nil {
		return err
	}
	n, err := s.assignments.DeleteByCourseID(ctx, id)
	if err != nil {
		return fmt.Errorf("course %d deleted but its assignments were not: %w", id, err)
	}
	g, err := s.grades.DeleteByCourseID(ctx, id)
	if err != nil {
		return fmt.Errorf("course %d deleted but its grade entries were not: %w", id, err)
	}
	slog.Info("course deleted", "course_id", id, "assignments_removed", n, "grades_removed", g)
	return nil
}

// UpdateGrade sets a course's current grade directly
func (s *CourseService) UpdateGrade(ctx context.Context, id int64, pct float64) (shared.Course, error) {
	if _, err := grade.ValidateLetterGrade(pct); err != nil {
		return shared.Course{}, err
	}
	return s.courses.UpdateGrade(ctx, id, pct)
}

// RecalculateCourseGrade recomputes currentGrade from the course's grade
// entries and stores it. A course without entries goes back to 0.
func (s *CourseService) RecalculateCourseGrade(ctx context.Context, id int64) (shared.Course, error) {
	c, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return shared.Course{}, err
	}
	entries, err := s.grades.GetByCourseID(ctx, id)
	if err != nil {
		return shared.Course{}, err
	}

	avg := grade.WeightedCourseAverage(entries, c.GradeCategories)
	updated, err := s.courses.UpdateGrade(ctx, id, avg)
	if err != nil {
		return shared.Course{}, err
	}
	slog.Info("course grade recalculated", "course_id", id, "entries", len(entries), "grade", avg)
	return updated, nil
}

// ============================================================================
// Grade entries
// ============================================================================

// ListGrades returns all grade entries, or only one course's when courseID > 0
func (s *CourseService) ListGrades(ctx context.Context, courseID int64) ([]shared.GradeEntry, error) {
	if courseID > 0 {
		return s.grades.GetByCourseID(ctx, courseID)
	}
	return s.grades.GetAll(ctx)
}

// GetGrade returns one grade entry
func (s *CourseService) GetGrade(ctx context.Context, id int64) (shared.GradeEntry, error) {
	return s.grades.GetByID(ctx, id)
}

// AddGrade records a grade entry. Its category must be one of the course's.
func (s *CourseService) AddGrade(ctx context.Context, g shared.GradeEntry) (shared.GradeEntry, error) {
	if g.Date.IsZero() {
		g.Date = s.clock.Now()
	}
	if err := s.checkGrade(ctx, g); err != nil {
		return shared.GradeEntry{}, err
	}
	return s.grades.Create(ctx, g)
}

// UpdateGradeEntry replaces a grade entry after the same checks as AddGrade
func (s *CourseService) UpdateGradeEntry(ctx context.Context, id int64, g shared.GradeEntry) (shared.GradeEntry, error) {
	if err := s.checkGrade(ctx, g); err != nil {
		return shared.GradeEntry{}, err
	}
	return s.grades.Update(ctx, id, g)
}

// DeleteGrade removes a grade entry
func (s *CourseService) DeleteGrade(ctx context.Context, id int64) error {
	return s.grades.Delete(ctx, id)
}

func (s *CourseService) checkGrade(ctx context.Context, g shared.GradeEntry) error {
	if err := shared.Check(g); err != nil {
		return err
	}

	c, err := s.courses.GetByID(ctx, g.CourseID)
	if err != nil {
		return err
	}
	for _, cat := range c.GradeCategories {
		if cat.Name == g.Category {
			return nil
		}
	}
	return shared.NewValidationError(
		fmt.Errorf("category %q is not used by course %d", g.Category, g.CourseID),
		shared.FieldError{Field: "category", Error: "must match one of the course's grade categories"},
	)
}
