package store

import (
	"context"

	"studysync/backend/internal/shared"
)

// ============================================================================
// Courses
// ============================================================================

// CourseRepository persists courses.
type CourseRepository struct {
	t table[courseDoc]
}

func (r *CourseRepository) GetAll(ctx context.Context) ([]shared.Course, error) {
	docs, err := r.t.List(ctx, nil)
	if err != nil {
		return nil, wrap("list", "courses", err)
	}
	return mapAll(docs, documentToCourse), nil
}

func (r *CourseRepository) GetByID(ctx context.Context, id int64) (shared.Course, error) {
	doc, err := r.t.Get(ctx, id)
	if err != nil {
		return shared.Course{}, wrap("get", "course", err)
	}
	return documentToCourse(doc), nil
}

// Create stores c under a new id; c.ID is ignored.
func (r *CourseRepository) Create(ctx context.Context, c shared.Course) (shared.Course, error) {
	doc, err := r.t.Insert(ctx, func(id int64) courseDoc {
		d := courseToDoc(c)
		d.ID = id
		return d
	})
	if err != nil {
		return shared.Course{}, wrap("create", "course", err)
	}
	return documentToCourse(doc), nil
}

// Update replaces the stored course with c.
func (r *CourseRepository) Update(ctx context.Context, id int64, c shared.Course) (shared.Course, error) {
	c.ID = id
	if err := r.t.Replace(ctx, id, courseToDoc(c)); err != nil {
		return shared.Course{}, wrap("update", "course", err)
	}
	return c, nil
}

func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	return wrap("delete", "course", r.t.Delete(ctx, id))
}

// UpdateGrade sets only the current grade.
func (r *CourseRepository) UpdateGrade(ctx context.Context, id int64, grade float64) (shared.Course, error) {
	doc, err := r.t.Patch(ctx, id, map[string]any{fieldCurrentGrade: grade})
	if err != nil {
		return shared.Course{}, wrap("update grade of", "course", err)
	}
	return documentToCourse(doc), nil
}

func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.t.Count(ctx)
	return n, wrap("count", "courses", err)
}

// ============================================================================
// Assignments
// ============================================================================

// AssignmentRepository persists assignments.
type AssignmentRepository struct {
	t table[assignmentDoc]
}

func (r *AssignmentRepository) GetAll(ctx context.Context) ([]shared.Assignment, error) {
	docs, err := r.t.List(ctx, nil)
	if err != nil {
		return nil, wrap("list", "assignments", err)
	}
	return mapAll(docs, documentToAssignment), nil
}

func (r *AssignmentRepository) GetByID(ctx context.Context, id int64) (shared.Assignment, error) {
	doc, err := r.t.Get(ctx, id)
	if err != nil {
		return shared.Assignment{}, wrap("get", "assignment", err)
	}
	return documentToAssignment(doc), nil
}

func (r *AssignmentRepository) GetByCourseID(ctx context.Context, courseID int64) ([]shared.Assignment, error) {
	docs, err := r.t.List(ctx, map[string]any{fieldCourseID: courseID})
	if err != nil {
		return nil, wrap("list", "assignments", err)
	}
	return mapAll(docs, documentToAssignment), nil
}

func (r *AssignmentRepository) Create(ctx context.Context, a shared.Assignment) (shared.Assignment, error) {
	doc, err := r.t.Insert(ctx, func(id int64) assignmentDoc {
		d := assignmentToDoc(a)
		d.ID = id
		return d
	})
	if err != nil {
		return shared.Assignment{}, wrap("create", "assignment", err)
	}
	return documentToAssignment(doc), nil
}

func (r *AssignmentRepository) Update(ctx context.Context, id int64, a shared.Assignment) (shared.Assignment, error) {
	a.ID = id
	if err := r.t.Replace(ctx, id, assignmentToDoc(a)); err != nil {
		return shared.Assignment{}, wrap("update", "assignment", err)
	}
	return a, nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, id int64) error {
	return wrap("delete", "assignment", r.t.Delete(ctx, id))
}

// UpdateStatus sets only the stored status.
func (r *AssignmentRepository) UpdateStatus(ctx context.Context, id int64, status string) (shared.Assignment, error) {
	doc, err := r.t.Patch(ctx, id, map[string]any{fieldStatus: status})
	if err != nil {
		return shared.Assignment{}, wrap("update status of", "assignment", err)
	}
	return documentToAssignment(doc), nil
}

// DeleteByCourseID removes every assignment of a course and reports how many went.
func (r *AssignmentRepository) DeleteByCourseID(ctx context.Context, courseID int64) (int, error) {
	docs, err := r.t.List(ctx, map[string]any{fieldCourseID: courseID})
	if err != nil {
		return 0, wrap("list", "assignments", err)
	}
	n := 0
	for _, d := range docs {
		if err := r.t.Delete(ctx, d.ID); err != nil {
			return n, wrap("delete", "assignment", err)
		}
		n++
	}
	return n, nil
}

// ============================================================================
// Grade entries
// ============================================================================

// GradeRepository persists grade entries.
type GradeRepository struct {
	t table[gradeDoc]
}

func (r *GradeRepository) GetAll(ctx context.Context) ([]shared.GradeEntry, error) {
	docs, err := r.t.List(ctx, nil)
	if err != nil {
		return nil, wrap("list", "grades", err)
	}
	return mapAll(docs, documentToGrade), nil
}

func (r *GradeRepository) GetByID(ctx context.Context, id int64) (shared.GradeEntry, error) {
	doc, err := r.t.Get(ctx, id)
	if err != nil {
		return shared.GradeEntry{}, wrap("get", "grade", err)
	}
	return documentToGrade(doc), nil
}

func (r *GradeRepository) GetByCourseID(ctx context.Context, courseID int64) ([]shared.GradeEntry, error) {
	docs, err := r.t.List(ctx, map[string]any{fieldCourseID: courseID})
	if err != nil {
		return nil, wrap("list", "grades", err)
	}
	return mapAll(docs, documentToGrade), nil
}

func (r *GradeRepository) Create(ctx context.Context, g shared.GradeEntry) (shared.GradeEntry, error) {
	doc, err := r.t.Insert(ctx, func(id int64) gradeDoc {
		d := gradeToDoc(g)
		d.ID = id
		return d
	})
	if err != nil {
		return shared.GradeEntry{}, wrap("create", "grade", err)
	}
	return documentToGrade(doc), nil
}

func (r *GradeRepository) Update(ctx context.Context, id int64, g shared.GradeEntry) (shared.GradeEntry, error) {
	g.ID = id
	if err := r.t.Replace(ctx, id, gradeToDoc(g)); err != nil {
		return shared.GradeEntry{}, wrap("update", "grade", err)
	}
	return g, nil
}

func (r *GradeRepository) Delete(ctx context.Context, id int64) error {
	return wrap("delete", "grade", r.t.Delete(ctx, id))
}

// DeleteByCourseID removes every grade entry of a course.
func (r *GradeRepository) DeleteByCourseID(ctx context.Context, courseID int64) (int, error) {
	docs, err := r.t.List(ctx, map[string]any{fieldCourseID: courseID})
	if err != nil {
		return 0, wrap("list", "grades", err)
	}
	n := 0
	for _, d := range docs {
		if err := r.t.Delete(ctx, d.ID); err != nil {
			return n, wrap("delete", "grade", err)
		}
		n++
	}
	return n, nil
}

// ============================================================================
// Students
// ============================================================================

// StudentRepository persists students.
type StudentRepository struct {
	t table[studentDoc]
}

func (r *StudentRepository) GetAll(ctx context.Context) ([]shared.Student, error) {
	docs, err := r.t.List(ctx, nil)
	if err != nil {
		return nil, wrap("list", "students", err)
	}
	return mapAll(docs, documentToStudent), nil
}

func (r *StudentRepository) GetByID(ctx context.Context, id int64) (shared.Student, error) {
	doc, err := r.t.Get(ctx, id)
	if err != nil {
		return shared.Student{}, wrap("get", "student", err)
	}
	return documentToStudent(doc), nil
}

func (r *StudentRepository) GetByGradeLevel(ctx context.Context, level string) ([]shared.Student, error) {
	docs, err := r.t.List(ctx, map[string]any{fieldGradeLevel: level})
	if err != nil {
		return nil, wrap("list", "students", err)
	}
	return mapAll(docs, documentToStudent), nil
}

func (r *StudentRepository) GetByEnrollmentStatus(ctx context.Context, status string) ([]shared.Student, error) {
	docs, err := r.t.List(ctx, map[string]any{fieldEnrollmentStatus: status})
	if err != nil {
		return nil, wrap("list", "students", err)
	}
	return mapAll(docs, documentToStudent), nil
}

func (r *StudentRepository) Create(ctx context.Context, s shared.Student) (shared.Student, error) {
	doc, err := r.t.Insert(ctx, func(id int64) studentDoc {
		d := studentToDoc(s)
		d.ID = id
		return d
	})
	if err != nil {
		return shared.Student{}, wrap("create", "student", err)
	}
	return documentToStudent(doc), nil
}

func (r *StudentRepository) Update(ctx context.Context, id int64, s shared.Student) (shared.Student, error) {
	s.ID = id
	if err := r.t.Replace(ctx, id, studentToDoc(s)); err != nil {
		return shared.Student{}, wrap("update", "student", err)
	}
	return s, nil
}

func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	return wrap("delete", "student", r.t.Delete(ctx, id))
}

// UpdateAttendance sets only the attendance percentage.
func (r *StudentRepository) UpdateAttendance(ctx context.Context, id int64, pct float64) (shared.Student, error) {
	doc, err := r.t.Patch(ctx, id, map[string]any{fieldAttendance: pct})
	if err != nil {
		return shared.Student{}, wrap("update attendance of", "student", err)
	}
	return documentToStudent(doc), nil
}

// ============================================================================
// Faculty
// ============================================================================

// FacultyRepository persists faculty members.
type FacultyRepository struct {
	t table[facultyDoc]
}

func (r *FacultyRepository) GetAll(ctx context.Context) ([]shared.Faculty, error) {
	docs, err := r.t.List(ctx, nil)
	if err != nil {
		return nil, wrap("list", "faculty", err)
	}
	return mapAll(docs, documentToFaculty), nil
}

func (r *FacultyRepository) GetByID(ctx context.Context, id int64) (shared.Faculty, error) {
	doc, err := r.t.Get(ctx, id)
	if err != nil {
		return shared.Faculty{}, wrap("get", "faculty member", err)
	}
	return documentToFaculty(doc), nil
}

func (r *FacultyRepository) GetByDepartment(ctx context.Context, department string) ([]shared.Faculty, error) {
	docs, err := r.t.List(ctx, map[string]any{fieldDepartment: department})
	if err != nil {
		return nil, wrap("list", "faculty", err)
	}
	return mapAll(docs, documentToFaculty), nil
}

func (r *FacultyRepository) GetByEmploymentStatus(ctx context.Context, status string) ([]shared.Faculty, error) {
	docs, err := r.t.List(ctx, map[string]any{fieldEmploymentStatus: status})
	if err != nil {
		return nil, wrap("list", "faculty", err)
	}
	return mapAll(docs, documentToFaculty), nil
}

func (r *FacultyRepository) Create(ctx context.Context, f shared.Faculty) (shared.Faculty, error) {
	doc, err := r.t.Insert(ctx, func(id int64) facultyDoc {
		d := facultyToDoc(f)
		d.ID = id
		return d
	})
	if err != nil {
		return shared.Faculty{}, wrap("create", "faculty member", err)
	}
	return documentToFaculty(doc), nil
}

func (r *FacultyRepository) Update(ctx context.Context, id int64, f shared.Faculty) (shared.Faculty, error) {
	f.ID = id
	if err := r.t.Replace(ctx, id, facultyToDoc(f)); err != nil {
		return shared.Faculty{}, wrap("update", "faculty member", err)
	}
	return f, nil
}

func (r *FacultyRepository) Delete(ctx context.Context, id int64) error {
	return wrap("delete", "faculty member", r.t.Delete(ctx, id))
}

// UpdateSalary sets only the monthly salary.
func (r *FacultyRepository) UpdateSalary(ctx context.Context, id int64, salary float64) (shared.Faculty, error) {
	doc, err := r.t.Patch(ctx, id, map[string]any{fieldMonthlySalary: salary})
	if err != nil {
		return shared.Faculty{}, wrap("update salary of", "faculty member", err)
	}
	return documentToFaculty(doc), nil
}
