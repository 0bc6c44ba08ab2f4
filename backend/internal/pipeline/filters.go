// ============================================================================
// backend/internal/pipeline/filters.go
// Conjunctive filters and single key sorts over in-memory collections
// ============================================================================

package pipeline

import (
	"strings"
	"time"

	"studysync/backend/internal/calendar"
	"studysync/backend/internal/shared"
)

// AssignmentFilter selects assignments. Empty or "all" fields are ignored;
// CourseID 0 matches every course.
type AssignmentFilter struct {
	Search   string
	Status   string // compared against the derived status
	CourseID int64
	Priority string
}

// StudentFilter selects students. Search spans name, email and counselor.
type StudentFilter struct {
	Search     string
	GradeLevel string
	Status     string // enrollment status
}

// FacultyFilter selects faculty. Search spans name, email and subjects taught.
type FacultyFilter struct {
	Search           string
	Department       string
	EmploymentStatus string
}

// CourseFilter selects courses. Search spans name, code and instructor.
type CourseFilter struct {
	Search   string
	Semester string
}

func active(criterion string) bool {
	return criterion != "" && criterion != shared.FilterAll
}

// containsFold is a case-insensitive substring match. An empty needle matches.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func anyContainsFold(needle string, haystacks ...string) bool {
	for _, h := range haystacks {
		if containsFold(h, needle) {
			return true
		}
	}
	return false
}

// FilterAssignments keeps the assignments matching every active criterion, in
// their original order.
func FilterAssignments(items []shared.Assignment, f AssignmentFilter, now time.Time) []shared.Assignment {
	out := make([]shared.Assignment, 0, len(items))
	for _, a := range items {
		if f.Search != "" && !containsFold(a.Title, f.Search) {
			continue
		}
		if active(f.Status) && calendar.DerivedStatus(a, now) != f.Status {
			continue
		}
		if f.CourseID != 0 && a.CourseID != f.CourseID {
			continue
		}
		if active(f.Priority) && a.Priority != f.Priority {
			continue
		}
		out = append(out, a)
	}
	return out
}

// FilterStudents keeps the students matching every active criterion.
func FilterStudents(items []shared.Student, f StudentFilter) []shared.Student {
	out := make([]shared.Student, 0, len(items))
	for _, s := range items {
		if f.Search != "" && !anyContainsFold(f.Search, s.Name, s.Email, s.AssignedCounselor) {
			continue
		}
		if active(f.GradeLevel) && s.GradeLevel != f.GradeLevel {
			continue
		}
		if active(f.Status) && s.EnrollmentStatus != f.Status {
			continue
		}
		out = append(out, s)
	}
	return out
}

// FilterFaculty keeps the faculty members matching every active criterion.
func FilterFaculty(items []shared.Faculty, f FacultyFilter) []shared.Faculty {
	out := make([]shared.Faculty, 0, len(items))
	for _, m := range items {
		if f.Search != "" && !anyContainsFold(f.Search, append([]string{m.Name, m.OfficialEmail}, m.SubjectsTaught...)...) {
			continue
		}
		if active(f.Department) && m.Department != f.Department {
			continue
		}
		if active(f.EmploymentStatus) && m.EmploymentStatus != f.EmploymentStatus {
			continue
		}
		out = append(out, m)
	}
	return out
}

// FilterCourses keeps the courses matching every active criterion.
func FilterCourses(items []shared.Course, f CourseFilter) []shared.Course {
	out := make([]shared.Course, 0, len(items))
	for _, c := range items {
		if f.Search != "" && !anyContainsFold(f.Search, c.Name, c.Code, c.Instructor) {
			continue
		}
		if active(f.Semester) && c.Semester != f.Semester {
			continue
		}
		out = append(out, c)
	}
	return out
}
