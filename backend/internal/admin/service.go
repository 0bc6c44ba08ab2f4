package admin

import (
	"context"
	"log/slog"

	"studysync/backend/internal/pipeline"
	"studysync/backend/internal/shared"
)

// StudentStore is the student persistence the roster needs
type StudentStore interface {
	GetAll(ctx context.Context) ([]shared.Student, error)
	GetByID(ctx context.Context, id int64) (shared.Student, error)
	Create(ctx context.Context, s shared.Student) (shared.Student, error)
	Update(ctx context.Context, id int64, s shared.Student) (shared.Student, error)
	Delete(ctx context.Context, id int64) error
	UpdateAttendance(ctx context.Context, id int64, pct float64) (shared.Student, error)
}

// FacultyStore is the faculty persistence the roster needs
type FacultyStore interface {
	GetAll(ctx context.Context) ([]shared.Faculty, error)
	GetByID(ctx context.Context, id int64) (shared.Faculty, error)
	Create(ctx context.Context, f shared.Faculty) (shared.Faculty, error)
	Update(ctx context.Context, id int64, f shared.Faculty) (shared.Faculty, error)
	Delete(ctx context.Context, id int64) error
	UpdateSalary(ctx context.Context, id int64, salary float64) (shared.Faculty, error)
}

// AdminService maintains the student and faculty rosters
type AdminService struct {
	students StudentStore
	faculty  FacultyStore
}

// NewAdminService creates a new AdminService instance
func NewAdminService(students StudentStore, faculty FacultyStore) *AdminService {
	return &AdminService{students: students, faculty: faculty}
}

// ============================================================================
// Students
// ============================================================================

// ListStudents filters the roster and then sorts it by sortKey
// (name, cgpa, credits, attendance). An empty key keeps storage order.
func (s *AdminService) ListStudents(ctx context.Context, filter pipeline.StudentFilter, sortKey string) ([]shared.Student, error) {
	all, err := s.students.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.SortStudents(pipeline.FilterStudents(all, filter), sortKey), nil
}

func (s *AdminService) GetStudent(ctx context.Context, id int64) (shared.Student, error) {
	return s.students.GetByID(ctx, id)
}

func (s *AdminService) CreateStudent(ctx context.Context, st shared.Student) (shared.Student, error) {
	if err := shared.Check(st); err != nil {
		return shared.Student{}, err
	}
	created, err := s.students.Create(ctx, st)
	if err != nil {
		return shared.Student{}, err
	}
	slog.Info("student created", "student_id", created.ID)
	return created, nil
}

func (s *AdminService) UpdateStudent(ctx context.Context, id int64, st shared.Student) (shared.Student, error) {
	if err := shared.Check(st); err != nil {
		return shared.Student{}, err
	}
	return s.students.Update(ctx, id, st)
}

func (s *AdminService) DeleteStudent(ctx context.Context, id int64) error {
	return s.students.Delete(ctx, id)
}

type attendanceChange struct {
	AttendancePercentage float64 `json:"attendancePercentage" validate:"gte=0,lte=100"`
}

// UpdateAttendance sets a student's attendance percentage (0-100)
func (s *AdminService) UpdateAttendance(ctx context.Context, id int64, pct float64) (shared.Student, error) {
	if err := shared.Check(attendanceChange{AttendancePercentage: pct}); err != nil {
		return shared.Student{}, err
	}
	return s.students.UpdateAttendance(ctx, id, pct)
}

// ============================================================================
// Faculty
// ============================================================================

// ListFaculty filters the faculty roster
func (s *AdminService) ListFaculty(ctx context.Context, filter pipeline.FacultyFilter) ([]shared.Faculty, error) {
	all, err := s.faculty.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.FilterFaculty(all, filter), nil
}

func (s *AdminService) GetFaculty(ctx context.Context, id int64) (shared.Faculty, error) {
	return s.faculty.GetByID(ctx, id)
}

func (s *AdminService) CreateFaculty(ctx context.Context, f shared.Faculty) (shared.Faculty, error) {
	if f.EmploymentStatus == "" {
		f.EmploymentStatus = shared.EmploymentActive
	}
	if err := shared.Check(f); err != nil {
		return shared.Faculty{}, err
	}
	created, err := s.faculty.Create(ctx, f)
	if err != nil {
		return shared.Faculty{}, err
	}
	slog.Info("faculty member created", "faculty_id", created.ID, "department", created.Department)
	return created, nil
}

func (s *AdminService) UpdateFaculty(ctx context.Context, id int64, f shared.Faculty) (shared.Faculty, error) {
	if err := shared.Check(f); err != nil {
		return shared.Faculty{}, err
	}
	return s.faculty.Update(ctx, id, f)
}

func (s *AdminService) DeleteFaculty(ctx context.Context, id int64) error {
	return s.faculty.Delete(ctx, id)
}

type salaryChange struct {
	MonthlySalary float64 `json:"monthlySalary" validate:"gte=0"`
}

// UpdateSalary sets a faculty member's monthly salary
func (s *AdminService) UpdateSalary(ctx context.Context, id int64, salary float64) (shared.Faculty, error) {
	if err := shared.Check(salaryChange{MonthlySalary: salary}); err != nil {
		return shared.Faculty{}, err
	}
	return s.faculty.UpdateSalary(ctx, id, salary)
}
