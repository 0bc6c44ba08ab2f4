// ============================================================================
// backend/internal/report/csv.go
// CSV exports of the rosters and the per-course grade report
// ============================================================================

package report

import (
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"studysync/backend/internal/grade"
	"studysync/backend/internal/shared"
)

const dateLayout = "2006-01-02"

type StudentRow struct {
	ID               int64   `csv:"id"`
	Name             string  `csv:"name"`
	Email            string  `csv:"email"`
	GradeLevel       string  `csv:"grade_level"`
	EnrollmentStatus string  `csv:"enrollment_status"`
	CGPA             float64 `csv:"cgpa"`
	CompletedCredits int     `csv:"completed_credits"`
	Attendance       float64 `csv:"attendance_percentage"`
	Counselor        string  `csv:"assigned_counselor"`
	Subjects         string  `csv:"subjects_enrolled"`
}

type FacultyRow struct {
	ID               int64   `csv:"id"`
	Name             string  `csv:"name"`
	Email            string  `csv:"official_email"`
	Department       string  `csv:"department"`
	EmploymentStatus string  `csv:"employment_status"`
	Subjects         string  `csv:"subjects_taught"`
	WeeklyHours      float64 `csv:"weekly_teaching_hours"`
	Tenured          bool    `csv:"tenured"`
	JoinedOn         string  `csv:"date_of_joining"`
}

type GradeRow struct {
	CourseID     int64   `csv:"course_id"`
	Code         string  `csv:"code"`
	Name         string  `csv:"name"`
	Credits      int     `csv:"credits"`
	CurrentGrade float64 `csv:"current_grade"`
	LetterGrade  string  `csv:"letter_grade"`
	GradePoints  float64 `csv:"grade_points"`
}

// WriteStudents writes one row per student with a header line
func WriteStudents(w io.Writer, students []shared.Student) error {
	rows := make([]*StudentRow, 0, len(students))
	for _, s := range students {
		rows = append(rows, &StudentRow{
			ID:               s.ID,
			Name:             s.Name,
			Email:            s.Email,
			GradeLevel:       s.GradeLevel,
			EnrollmentStatus: s.EnrollmentStatus,
			CGPA:             s.CGPA,
			CompletedCredits: s.CompletedCredits,
			Attendance:       s.AttendancePercentage,
			Counselor:        s.AssignedCounselor,
			Subjects:         strings.Join(s.SubjectsEnrolled, "; "),
		})
	}
	return gocsv.Marshal(rows, w)
}

// WriteFaculty writes one row per faculty member with a header line
func WriteFaculty(w io.Writer, faculty []shared.Faculty) error {
	rows := make([]*FacultyRow, 0, len(faculty))
	for _, f := range faculty {
		row := &FacultyRow{
			ID:               f.ID,
			Name:             f.Name,
			Email:            f.OfficialEmail,
			Department:       f.Department,
			EmploymentStatus: f.EmploymentStatus,
			Subjects:         strings.Join(f.SubjectsTaught, "; "),
			WeeklyHours:      f.WeeklyTeachingHours,
			Tenured:          f.IsTenured,
		}
		if !f.DateOfJoining.IsZero() {
			row.JoinedOn = f.DateOfJoining.Format(dateLayout)
		}
		rows = append(rows, row)
	}
	return gocsv.Marshal(rows, w)
}

// WriteGradeReport writes each course with its letter grade and grade points,
// followed by a totals row carrying the overall GPA in the grade_points column.
func WriteGradeReport(w io.Writer, courses []shared.Course) error {
	rows := make([]*GradeRow, 0, len(courses)+1)
	for _, c := range courses {
		rows = append(rows, &GradeRow{
			CourseID:     c.ID,
			Code:         c.Code,
			Name:         c.Name,
			Credits:      c.Credits,
			CurrentGrade: c.CurrentGrade,
			LetterGrade:  grade.LetterGrade(c.CurrentGrade),
			GradePoints:  grade.GradePoints(c.CurrentGrade),
		})
	}
	rows = append(rows, &GradeRow{
		Name:         "Overall",
		Credits:      grade.TotalCredits(courses),
		CurrentGrade: grade.AverageGrade(courses),
		GradePoints:  grade.OverallGPAValue(courses),
	})
	return gocsv.Marshal(rows, w)
}
