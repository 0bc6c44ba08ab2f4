// ============================================================================
// backend/internal/analytics/service.go
// Read-only aggregates for the dashboard, grades, calendar and stats views
// ============================================================================

package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"studysync/backend/internal/calendar"
	"studysync/backend/internal/grade"
	"studysync/backend/internal/shared"
)

const (
	dashboardUpcomingDays  = 7
	dashboardUpcomingLimit = 5
	recentGradedLimit      = 5

	ViewMonth = "month"
	ViewWeek  = "week"
)

type CourseLister interface {
	GetAll(ctx context.Context) ([]shared.Course, error)
}

type AssignmentLister interface {
	GetAll(ctx context.Context) ([]shared.Assignment, error)
}

type StudentLister interface {
	GetAll(ctx context.Context) ([]shared.Student, error)
}

// Service computes views over the current contents of the store. It holds no
// state of its own beyond the clock.
type Service struct {
	courses     CourseLister
	assignments AssignmentLister
	students    StudentLister
	clock       calendar.Clock
}

// NewService creates a new analytics Service
func NewService(courses CourseLister, assignments AssignmentLister, students StudentLister, clock calendar.Clock) *Service {
	if clock == nil {
		clock = calendar.SystemClock{}
	}
	return &Service{courses: courses, assignments: assignments, students: students, clock: clock}
}

// Now returns the service clock's current time
func (s *Service) Now() time.Time {
	return s.clock.Now()
}

// ============================================================================
// Dashboard
// ============================================================================

type Dashboard struct {
	OverallGPA   string              `json:"overallGpa"`
	TotalCourses int                 `json:"totalCourses"`
	DueToday     []shared.Assignment `json:"dueToday"`
	Upcoming     []shared.Assignment `json:"upcoming"`
	OverdueCount int                 `json:"overdueCount"`
	PendingCount int                 `json:"pendingCount"`
}

// Dashboard summarises the student's day as seen at now.
func (s *Service) Dashboard(ctx context.Context, now time.Time) (*Dashboard, error) {
	courses, assignments, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	upcoming := calendar.Upcoming(assignments, now, dashboardUpcomingDays)
	if len(upcoming) > dashboardUpcomingLimit {
		upcoming = upcoming[:dashboardUpcomingLimit]
	}

	return &Dashboard{
		OverallGPA:   grade.OverallGPA(courses),
		TotalCourses: len(courses),
		DueToday:     calendar.DueToday(assignments, now),
		Upcoming:     upcoming,
		OverdueCount: len(calendar.Overdue(assignments, now)),
		PendingCount: countOpen(assignments),
	}, nil
}

// ============================================================================
// Grades
// ============================================================================

type CourseGrade struct {
	CourseID     int64   `json:"courseId"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Color        string  `json:"color,omitempty"`
	Credits      int     `json:"credits"`
	CurrentGrade float64 `json:"currentGrade"`
	LetterGrade  string  `json:"letterGrade"`
	GradePoints  float64 `json:"gradePoints"`
}

// ChartPoint is one bar of the per-course average grade chart.
type ChartPoint struct {
	CourseID     int64   `json:"courseId"`
	Code         string  `json:"code"`
	Color        string  `json:"color,omitempty"`
	AverageGrade float64 `json:"averageGrade"`
}

type GradesSummary struct {
	OverallGPA    string              `json:"overallGpa"`
	AverageGrade  float64             `json:"averageGrade"`
	TotalCredits  int                 `json:"totalCredits"`
	Distribution  grade.Distribution  `json:"distribution"`
	Courses       []CourseGrade       `json:"courses"`
	RecentGraded  []shared.Assignment `json:"recentGraded"`
	CourseAverage []ChartPoint        `json:"courseAverages"`
}

// GradesSummary reports grades across all courses. A non-zero courseID narrows
// the per-course breakdown to that course; the totals always cover every course.
func (s *Service) GradesSummary(ctx context.Context, courseID int64) (*GradesSummary, error) {
	courses, assignments, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	summary := &GradesSummary{
		OverallGPA:    grade.OverallGPA(courses),
		AverageGrade:  grade.AverageGrade(courses),
		TotalCredits:  grade.TotalCredits(courses),
		Distribution:  grade.GradeDistribution(courses),
		Courses:       make([]CourseGrade, 0, len(courses)),
		RecentGraded:  recentGraded(assignments, recentGradedLimit),
		CourseAverage: make([]ChartPoint, 0, len(courses)),
	}

	for _, c := range courses {
		if courseID == 0 || c.ID == courseID {
			summary.Courses = append(summary.Courses, CourseGrade{
				CourseID:     c.ID,
				Code:         c.Code,
				Name:         c.Name,
				Color:        c.Color,
				Credits:      c.Credits,
				CurrentGrade: c.CurrentGrade,
				LetterGrade:  grade.LetterGrade(c.CurrentGrade),
				GradePoints:  grade.GradePoints(c.CurrentGrade),
			})
		}

		avg := grade.AverageAssignmentGrade(forCourse(assignments, c.ID))
		if avg > 0 {
			summary.CourseAverage = append(summary.CourseAverage, ChartPoint{
				CourseID: c.ID, Code: c.Code, Color: c.Color, AverageGrade: avg,
			})
		}
	}

	return summary, nil
}

// recentGraded returns up to limit graded assignments, latest due date first.
func recentGraded(items []shared.Assignment, limit int) []shared.Assignment {
	graded := make([]shared.Assignment, 0)
	for _, a := range items {
		if a.IsGraded() {
			graded = append(graded, a)
		}
	}
	sort.SliceStable(graded, func(i, j int) bool {
		return graded[i].DueDate.After(graded[j].DueDate)
	})
	if len(graded) > limit {
		graded = graded[:limit]
	}
	return graded
}

// ============================================================================
// Calendar
// ============================================================================

type Day struct {
	Date        time.Time           `json:"date"`
	InMonth     bool                `json:"inMonth"`
	Today       bool                `json:"today"`
	Assignments []shared.Assignment `json:"assignments"`
}

type CalendarView struct {
	Month string              `json:"month"` // YYYY-MM
	View  string              `json:"view"`
	Days  []Day               `json:"days"`
	Stats calendar.MonthStats `json:"stats"`
}

// CalendarMonth lays out the month (or week) containing ref as a Sunday-first
// grid. The stats always cover ref's whole month.
func (s *Service) CalendarMonth(ctx context.Context, ref, now time.Time, view string) (*CalendarView, error) {
	var days []time.Time
	switch view {
	case "", ViewMonth:
		view = ViewMonth
		days = calendar.MonthDays(ref)
	case ViewWeek:
		days = calendar.WeekDays(ref)
	default:
		return nil, shared.NewValidationError(fmt.Errorf("unknown calendar view %q", view),
			shared.FieldError{Field: "view", Error: "must be one of month, week"})
	}

	assignments, err := s.assignments.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	out := &CalendarView{
		Month: ref.Format("2006-01"),
		View:  view,
		Days:  make([]Day, 0, len(days)),
		Stats: calendar.StatsForMonth(assignments, ref),
	}
	for _, d := range days {
		out.Days = append(out.Days, Day{
			Date:        d,
			InMonth:     d.Month() == ref.Month() && d.Year() == ref.Year(),
			Today:       calendar.SameDay(d, now.In(d.Location())),
			Assignments: calendar.AssignmentsOnDate(assignments, d),
		})
	}
	return out, nil
}

// ============================================================================
// Stats
// ============================================================================

type AssignmentStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
}

// AssignmentStats counts assignments by derived status. In-progress
// assignments count toward the total only.
func (s *Service) AssignmentStats(ctx context.Context, now time.Time) (*AssignmentStats, error) {
	assignments, err := s.assignments.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &AssignmentStats{Total: len(assignments)}
	for _, a := range assignments {
		switch calendar.DerivedStatus(a, now) {
		case shared.StatusCompleted:
			stats.Completed++
		case shared.StatusPending:
			stats.Pending++
		case shared.StatusOverdue:
			stats.Overdue++
		}
	}
	return stats, nil
}

type StudentStats struct {
	Total        int    `json:"total"`
	Active       int    `json:"active"`
	AverageCGPA  string `json:"avgCgpa"`
	TotalCredits int    `json:"totalCredits"`
}

func (s *Service) StudentStats(ctx context.Context) (*StudentStats, error) {
	students, err := s.students.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &StudentStats{Total: len(students), AverageCGPA: "0.00"}
	var cgpa float64
	for _, st := range students {
		if st.EnrollmentStatus == shared.EnrollmentActive {
			stats.Active++
		}
		cgpa += st.CGPA
		stats.TotalCredits += st.CompletedCredits
	}
	if len(students) > 0 {
		stats.AverageCGPA = fmt.Sprintf("%.2f", cgpa/float64(len(students)))
	}
	return stats, nil
}

type CourseStats struct {
	TotalCourses        int     `json:"totalCourses"`
	TotalCredits        int     `json:"totalCredits"`
	AverageGrade        float64 `json:"averageGrade"`
	OverallGPA          string  `json:"overallGpa"`
	PendingAssignments  int     `json:"pendingAssignments"`
	UpcomingAssignments int     `json:"upcomingAssignments"`
}

func (s *Service) CourseStats(ctx context.Context, now time.Time) (*CourseStats, error) {
	courses, assignments, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	upcoming := 0
	for _, c := range courses {
		upcoming += calendar.CountUpcomingForCourse(assignments, c.ID, now)
	}

	return &CourseStats{
		TotalCourses:        len(courses),
		TotalCredits:        grade.TotalCredits(courses),
		AverageGrade:        grade.AverageGrade(courses),
		OverallGPA:          grade.OverallGPA(courses),
		PendingAssignments:  countOpen(assignments),
		UpcomingAssignments: upcoming,
	}, nil
}

// OverallGPA is the credit-weighted GPA across every stored course.
func (s *Service) OverallGPA(ctx context.Context) (string, error) {
	courses, err := s.courses.GetAll(ctx)
	if err != nil {
		return "", err
	}
	return grade.OverallGPA(courses), nil
}

// ============================================================================
// Helpers
// ============================================================================

func (s *Service) load(ctx context.Context) ([]shared.Course, []shared.Assignment, error) {
	courses, err := s.courses.GetAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	assignments, err := s.assignments.GetAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	return courses, assignments, nil
}

func countOpen(items []shared.Assignment) int {
	n := 0
	for _, a := range items {
		if !a.IsCompleted() {
			n++
		}
	}
	return n
}

func forCourse(items []shared.Assignment, courseID int64) []shared.Assignment {
	out := make([]shared.Assignment, 0)
	for _, a := range items {
		if a.CourseID == courseID {
			out = append(out, a)
		}
	}
	return out
}
