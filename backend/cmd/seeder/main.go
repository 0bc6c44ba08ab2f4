// ============================================================================
// backend/cmd/seeder/main.go
// Seeds the configured store with a demo semester of courses, work and rosters
// ============================================================================

package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"studysync/backend/internal/admin"
	"studysync/backend/internal/assignment"
	"studysync/backend/internal/calendar"
	"studysync/backend/internal/course"
	"studysync/backend/internal/shared"
	"studysync/backend/internal/store"
)

const CurrentSemester = "spring-2024"

// CourseSeed couples a course with the grade entries and assignments seeded for it
type CourseSeed struct {
	Course      shared.Course
	Grades      []shared.GradeEntry
	Assignments []AssignmentSeed
}

// AssignmentSeed places an assignment relative to the seeding time
type AssignmentSeed struct {
	Title    string
	DueIn    time.Duration
	Priority string
	Status   string
	Grade    float64 // 0 means ungraded
}

func main() {
	if err := shared.LoadEnv(".env"); err != nil {
		slog.Warn(".env file not found, using system environment variables")
	}

	cfg, err := shared.LoadServiceConfig("seeder")
	if err != nil {
		fatal("failed to load configuration", err)
	}
	shared.SetupLogger(cfg)
	slog.Info("starting database seeder", "driver", cfg.Store.Driver)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	st, err := store.Open(ctx, cfg)
	if err != nil {
		fatal("failed to open store", err)
	}
	defer st.Close(context.Background())

	// Clear everything first so the seed is repeatable
	if err := clearStore(ctx, st); err != nil {
		fatal("failed to clear store", err)
	}
	slog.Info("store cleared")

	clock := calendar.SystemClock{}
	courses := course.NewCourseService(st.Courses, st.Grades, st.Assignments, clock)
	assignments := assignment.NewService(st.Assignments, clock)
	roster := admin.NewAdminService(st.Students, st.Faculty)

	// --- 1. Courses, grade entries and assignments ---
	if err := seedCourses(ctx, courses, assignments, clock.Now()); err != nil {
		fatal("failed to seed courses", err)
	}

	// --- 2. Students ---
	if err := seedStudents(ctx, roster); err != nil {
		fatal("failed to seed students", err)
	}

	// --- 3. Faculty ---
	if err := seedFaculty(ctx, roster); err != nil {
		fatal("failed to seed faculty", err)
	}

	slog.Info("all data seeding completed successfully")
}

// ============================================================================
// SEEDING FUNCTIONS
// ============================================================================

func courseSeeds() []CourseSeed {
	day := 24 * time.Hour
	return []CourseSeed{
		{
			Course: shared.Course{Name: "Calculus II", Code: "MATH201", Instructor: "Dr. Emmy Noether", Credits: 4,
				Color: "#3b82f6", Schedule: []string{"Mon 09:00", "Wed 09:00", "Fri 09:00"}, Semester: CurrentSemester},
			Grades: []shared.GradeEntry{
				{Category: "Exams", Score: 91, Title: "Midterm"},
				{Category: "Assignments", Score: 88, Title: "Problem Set 1"},
				{Category: "Assignments", Score: 94, Title: "Problem Set 2"},
				{Category: "Participation", Score: 100, Title: "Recitation"},
			},
			Assignments: []AssignmentSeed{
				{Title: "Problem Set 3", DueIn: 2 * day, Priority: shared.PriorityHigh, Status: shared.StatusInProgress},
				{Title: "Series Quiz", DueIn: 6 * time.Hour, Priority: shared.PriorityMedium, Status: shared.StatusPending},
				{Title: "Problem Set 2", DueIn: -5 * day, Priority: shared.PriorityMedium, Status: shared.StatusCompleted, Grade: 94},
			},
		},
		{
			Course: shared.Course{Name: "Modern Physics", Code: "PHYS220", Instructor: "Dr. Richard Feynman", Credits: 3,
				Color: "#ef4444", Schedule: []string{"Tue 11:00", "Thu 11:00"}, Semester: CurrentSemester},
			Grades: []shared.GradeEntry{
				{Category: "Exams", Score: 78, Title: "Midterm"},
				{Category: "Projects", Score: 85, Title: "Cloud Chamber"},
			},
			Assignments: []AssignmentSeed{
				{Title: "Lab Report 4", DueIn: -1 * day, Priority: shared.PriorityHigh, Status: shared.StatusPending},
				{Title: "Reading: Chapter 7", DueIn: 4 * day, Priority: shared.PriorityLow, Status: shared.StatusPending},
				{Title: "Lab Report 3", DueIn: -8 * day, Priority: shared.PriorityHigh, Status: shared.StatusCompleted, Grade: 82},
			},
		},
		{
			Course: shared.Course{Name: "World Literature", Code: "LIT150", Instructor: "Prof. Toni Morrison", Credits: 3,
				Color: "#10b981", Schedule: []string{"Mon 14:00", "Wed 14:00"}, Semester: CurrentSemester},
			Grades: []shared.GradeEntry{
				{Category: "Assignments", Score: 96, Title: "Essay 1"},
				{Category: "Participation", Score: 90, Title: "Seminar"},
			},
			Assignments: []AssignmentSeed{
				{Title: "Essay 2 Draft", DueIn: 9 * day, Priority: shared.PriorityMedium, Status: shared.StatusPending},
				{Title: "Essay 1", DueIn: -12 * day, Priority: shared.PriorityMedium, Status: shared.StatusCompleted, Grade: 96},
			},
		},
	}
}

func seedCourses(ctx context.Context, courses *course.CourseService, assignments *assignment.Service, now time.Time) error {
	slog.Info("--- Seeding Courses ---")

	for _, seed := range courseSeeds() {
		c, err := courses.CreateCourse(ctx, seed.Course)
		if err != nil {
			return err
		}

		for _, g := range seed.Grades {
			g.CourseID = c.ID
			g.Date = now
			if _, err := courses.AddGrade(ctx, g); err != nil {
				return err
			}
		}
		c, err = courses.RecalculateCourseGrade(ctx, c.ID)
		if err != nil {
			return err
		}

		for _, a := range seed.Assignments {
			item := shared.Assignment{
				Title:    a.Title,
				CourseID: c.ID,
				DueDate:  now.Add(a.DueIn),
				Priority: a.Priority,
				Status:   a.Status,
			}
			if a.Grade > 0 {
				grade := a.Grade
				item.Grade = &grade
			}
			if _, err := assignments.Create(ctx, item); err != nil {
				return err
			}
		}
		slog.Info("seeded course", "code", c.Code, "id", c.ID, "grade", c.CurrentGrade, "assignments", len(seed.Assignments))
	}
	return nil
}

func seedStudents(ctx context.Context, roster *admin.AdminService) error {
	slog.Info("--- Seeding Students ---")

	students := []shared.Student{
		{Name: "John Student", Email: "student@example.com", CGPA: 3.45, GradeLevel: "Sophomore", EnrollmentStatus: shared.EnrollmentActive,
			IsEnrolled: true, AttendancePercentage: 92, CompletedCredits: 45, SubjectsEnrolled: []string{"MATH201", "PHYS220"},
			Interests: []string{"Robotics"}, AssignedCounselor: "Dr. Rivera", SatisfactionRating: 4, ParentalConsentReceived: true},
		{Name: "Alice Wonderland", Email: "student2@example.com", CGPA: 3.82, GradeLevel: "Junior", EnrollmentStatus: shared.EnrollmentActive,
			IsEnrolled: true, AttendancePercentage: 97, CompletedCredits: 78, SubjectsEnrolled: []string{"LIT150"},
			Interests: []string{"Poetry", "Chess"}, AssignedCounselor: "Dr. Rivera", ScholarshipAmount: 5000, SatisfactionRating: 5},
		{Name: "Bob Builder", Email: "student3@example.com", CGPA: 2.9, GradeLevel: "Senior", EnrollmentStatus: shared.EnrollmentActive,
			IsEnrolled: true, AttendancePercentage: 81, CompletedCredits: 104, SubjectsEnrolled: []string{"PHYS220"},
			AssignedCounselor: "Ms. Okafor", SatisfactionRating: 3},
		{Name: "Carol Graduate", Email: "alumni@example.com", CGPA: 3.6, GradeLevel: "Senior", EnrollmentStatus: shared.EnrollmentGraduated,
			CompletedCredits: 128, AssignedCounselor: "Ms. Okafor"},
	}

	for _, s := range students {
		created, err := roster.CreateStudent(ctx, s)
		if err != nil {
			return err
		}
		slog.Info("seeded student", "name", created.Name, "id", created.ID)
	}
	return nil
}

func seedFaculty(ctx context.Context, roster *admin.AdminService) error {
	slog.Info("--- Seeding Faculty ---")

	faculty := []shared.Faculty{
		{Name: "Dr. Emmy Noether", Department: "Science", SubjectsTaught: []string{"Calculus", "Abstract Algebra"},
			YearsOfExperience: 14, WeeklyTeachingHours: 12, NumberOfPublications: 41, IsTenured: true,
			OfficialEmail: "noether@example.edu", MonthlySalary: 9200, BackgroundVerified: true, ContactPhone: "+1 (555) 010-2001", Rating: 5},
		{Name: "Dr. Richard Feynman", Department: "Science", SubjectsTaught: []string{"Physics"},
			YearsOfExperience: 20, WeeklyTeachingHours: 10, NumberOfPublications: 63, IsTenured: true,
			OfficialEmail: "feynman@example.edu", MonthlySalary: 9800, BackgroundVerified: true, Rating: 5},
		{Name: "Prof. Toni Morrison", Department: "Arts", SubjectsTaught: []string{"Literature", "Creative Writing"},
			YearsOfExperience: 11, WeeklyTeachingHours: 9, NumberOfPublications: 12,
			OfficialEmail: "morrison@example.edu", MonthlySalary: 8100, EmploymentStatus: shared.EmploymentOnLeave, Rating: 4},
	}

	for _, f := range faculty {
		created, err := roster.CreateFaculty(ctx, f)
		if err != nil {
			return err
		}
		slog.Info("seeded faculty", "name", created.Name, "id", created.ID)
	}
	return nil
}

// clearStore deletes every record, children before parents
func clearStore(ctx context.Context, st *store.Store) error {
	assignments, err := st.Assignments.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, a := range assignments {
		if err := st.Assignments.Delete(ctx, a.ID); err != nil {
			return err
		}
	}

	grades, err := st.Grades.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, g := range grades {
		if err := st.Grades.Delete(ctx, g.ID); err != nil {
			return err
		}
	}

	courses, err := st.Courses.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, c := range courses {
		if err := st.Courses.Delete(ctx, c.ID); err != nil {
			return err
		}
	}

	students, err := st.Students.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, s := range students {
		if err := st.Students.Delete(ctx, s.ID); err != nil {
			return err
		}
	}

	faculty, err := st.Faculty.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, f := range faculty {
		if err := st.Faculty.Delete(ctx, f.ID); err != nil {
			return err
		}
	}
	return nil
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
