// ============================================================================
// backend/internal/store/documents.go
// Storage documents in the backend's suffixed naming, and their mapping to
// the canonical shared models. Nothing outside this package sees a _c field.
// ============================================================================

package store

import (
	"time"

	"studysync/backend/internal/shared"
)

// Storage field names used in queries and partial updates
const (
	fieldID               = "Id"
	fieldCourseID         = "course_id_c"
	fieldStatus           = "status_c"
	fieldCurrentGrade     = "current_grade_c"
	fieldGradeLevel       = "grade_level_c"
	fieldEnrollmentStatus = "enrollment_status_c"
	fieldAttendance       = "attendance_percentage_c"
	fieldDepartment       = "department_c"
	fieldEmploymentStatus = "employment_status_c"
	fieldMonthlySalary    = "monthly_salary_c"
)

// Collection (and bucket) names
const (
	collCourses     = "courses"
	collAssignments = "assignments"
	collGrades      = "grades"
	collStudents    = "students"
	collFaculty     = "faculty"
	collCounters    = "counters"
)

type gradeCategoryDoc struct {
	Name   string  `bson:"name" json:"name"`
	Weight float64 `bson:"weight" json:"weight"`
}

type courseDoc struct {
	ID              int64              `bson:"Id" json:"Id"`
	Name            string             `bson:"name_c" json:"name_c"`
	Code            string             `bson:"code_c" json:"code_c"`
	Instructor      string             `bson:"instructor_c" json:"instructor_c"`
	Credits         int                `bson:"credits_c" json:"credits_c"`
	Color           string             `bson:"color_c,omitempty" json:"color_c,omitempty"`
	Schedule        []string           `bson:"schedule_c" json:"schedule_c"`
	Semester        string             `bson:"semester_c,omitempty" json:"semester_c,omitempty"`
	CurrentGrade    float64            `bson:"current_grade_c" json:"current_grade_c"`
	GradeCategories []gradeCategoryDoc `bson:"grade_categories_c" json:"grade_categories_c"`
}

func (d courseDoc) key() int64 { return d.ID }

type assignmentDoc struct {
	ID       int64     `bson:"Id" json:"Id"`
	Title    string    `bson:"title_c" json:"title_c"`
	CourseID int64     `bson:"course_id_c" json:"course_id_c"`
	DueDate  time.Time `bson:"due_date_c" json:"due_date_c"`
	Priority string    `bson:"priority_c" json:"priority_c"`
	Status   string    `bson:"status_c" json:"status_c"`
	Grade    *float64  `bson:"grade_c" json:"grade_c"`
	Notes    string    `bson:"notes_c,omitempty" json:"notes_c,omitempty"`
}

func (d assignmentDoc) key() int64 { return d.ID }

type gradeDoc struct {
	ID       int64     `bson:"Id" json:"Id"`
	CourseID int64     `bson:"course_id_c" json:"course_id_c"`
	Category string    `bson:"category_c" json:"category_c"`
	Score    float64   `bson:"score_c" json:"score_c"`
	Weight   float64   `bson:"weight_c" json:"weight_c"`
	Date     time.Time `bson:"date_c" json:"date_c"`
	Title    string    `bson:"title_c" json:"title_c"`
}

func (d gradeDoc) key() int64 { return d.ID }

type studentDoc struct {
	ID                      int64     `bson:"Id" json:"Id"`
	Name                    string    `bson:"student_name_c" json:"student_name_c"`
	Address                 string    `bson:"address_c,omitempty" json:"address_c,omitempty"`
	CGPA                    float64   `bson:"cgpa_c" json:"cgpa_c"`
	GradeLevel              string    `bson:"grade_level_c" json:"grade_level_c"`
	SubjectsEnrolled        []string  `bson:"subjects_enrolled_c" json:"subjects_enrolled_c"`
	AttendancePercentage    float64   `bson:"attendance_percentage_c" json:"attendance_percentage_c"`
	DateOfBirth             time.Time `bson:"date_of_birth_c" json:"date_of_birth_c"`
	CompletedCredits        int       `bson:"completed_credits_c" json:"completed_credits_c"`
	IsEnrolled              bool      `bson:"is_enrolled_c" json:"is_enrolled_c"`
	Email                   string    `bson:"student_email_c" json:"student_email_c"`
	LastLogin               time.Time `bson:"last_login_c" json:"last_login_c"`
	Interests               []string  `bson:"student_interests_c" json:"student_interests_c"`
	AssignedCounselor       string    `bson:"assigned_counselor_c" json:"assigned_counselor_c"`
	ScholarshipAmount       float64   `bson:"scholarship_amount_c" json:"scholarship_amount_c"`
	ParentalConsentReceived bool      `bson:"parental_consent_received_c" json:"parental_consent_received_c"`
	EnrollmentStatus        string    `bson:"enrollment_status_c" json:"enrollment_status_c"`
	EmergencyContact        string    `bson:"emergency_contact_c,omitempty" json:"emergency_contact_c,omitempty"`
	PortfolioWebsite        string    `bson:"student_portfolio_website_c,omitempty" json:"student_portfolio_website_c,omitempty"`
	SatisfactionRating      int       `bson:"student_satisfaction_rating_c" json:"student_satisfaction_rating_c"`
}

func (d studentDoc) key() int64 { return d.ID }

type facultyDoc struct {
	ID                   int64     `bson:"Id" json:"Id"`
	Name                 string    `bson:"faculty_name_c" json:"faculty_name_c"`
	ResidentialAddress   string    `bson:"residential_address_c,omitempty" json:"residential_address_c,omitempty"`
	YearsOfExperience    float64   `bson:"years_of_experience_c" json:"years_of_experience_c"`
	Department           string    `bson:"department_c" json:"department_c"`
	SubjectsTaught       []string  `bson:"subjects_taught_c" json:"subjects_taught_c"`
	WeeklyTeachingHours  float64   `bson:"weekly_teaching_hours_c" json:"weekly_teaching_hours_c"`
	DateOfJoining        time.Time `bson:"date_of_joining_c" json:"date_of_joining_c"`
	NumberOfPublications int       `bson:"number_of_publications_c" json:"number_of_publications_c"`
	IsTenured            bool      `bson:"is_tenured_c" json:"is_tenured_c"`
	OfficialEmail        string    `bson:"official_email_c" json:"official_email_c"`
	LastPromotionDate    time.Time `bson:"last_promotion_date_c" json:"last_promotion_date_c"`
	ResearchInterests    []string  `bson:"research_interests_c" json:"research_interests_c"`
	ReportingManager     string    `bson:"reporting_manager_c,omitempty" json:"reporting_manager_c,omitempty"`
	MonthlySalary        float64   `bson:"monthly_salary_c" json:"monthly_salary_c"`
	BackgroundVerified   bool      `bson:"background_verified_c" json:"background_verified_c"`
	EmploymentStatus     string    `bson:"employment_status_c" json:"employment_status_c"`
	ContactPhone         string    `bson:"contact_phone_c,omitempty" json:"contact_phone_c,omitempty"`
	Website              string    `bson:"faculty_website_c,omitempty" json:"faculty_website_c,omitempty"`
	Rating               int       `bson:"faculty_rating_c" json:"faculty_rating_c"`
}

func (d facultyDoc) key() int64 { return d.ID }

// ============================================================================
// Mapping
// ============================================================================

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func courseToDoc(c shared.Course) courseDoc {
	cats := make([]gradeCategoryDoc, 0, len(c.GradeCategories))
	for _, gc := range c.GradeCategories {
		cats = append(cats, gradeCategoryDoc{Name: gc.Name, Weight: gc.Weight})
	}
	return courseDoc{
		ID:              c.ID,
		Name:            c.Name,
		Code:            c.Code,
		Instructor:      c.Instructor,
		Credits:         c.Credits,
		Color:           c.Color,
		Schedule:        nonNil(c.Schedule),
		Semester:        c.Semester,
		CurrentGrade:    c.CurrentGrade,
		GradeCategories: cats,
	}
}

func documentToCourse(d courseDoc) shared.Course {
	cats := make([]shared.GradeCategory, 0, len(d.GradeCategories))
	for _, gc := range d.GradeCategories {
		cats = append(cats, shared.GradeCategory{Name: gc.Name, Weight: gc.Weight})
	}
	return shared.Course{
		ID:              d.ID,
		Name:            d.Name,
		Code:            d.Code,
		Instructor:      d.Instructor,
		Credits:         d.Credits,
		Color:           d.Color,
		Schedule:        nonNil(d.Schedule),
		Semester:        d.Semester,
		CurrentGrade:    d.CurrentGrade,
		GradeCategories: cats,
	}
}

func assignmentToDoc(a shared.Assignment) assignmentDoc {
	return assignmentDoc{
		ID:       a.ID,
		Title:    a.Title,
		CourseID: a.CourseID,
		DueDate:  a.DueDate.UTC(),
		Priority: a.Priority,
		Status:   a.Status,
		Grade:    a.Grade,
		Notes:    a.Notes,
	}
}

func documentToAssignment(d assignmentDoc) shared.Assignment {
	return shared.Assignment{
		ID:       d.ID,
		Title:    d.Title,
		CourseID: d.CourseID,
		DueDate:  d.DueDate,
		Priority: d.Priority,
		Status:   d.Status,
		Grade:    d.Grade,
		Notes:    d.Notes,
	}
}

func gradeToDoc(g shared.GradeEntry) gradeDoc {
	return gradeDoc{
		ID:       g.ID,
		CourseID: g.CourseID,
		Category: g.Category,
		Score:    g.Score,
		Weight:   g.Weight,
		Date:     g.Date.UTC(),
		Title:    g.Title,
	}
}

func documentToGrade(d gradeDoc) shared.GradeEntry {
	return shared.GradeEntry{
		ID:       d.ID,
		CourseID: d.CourseID,
		Category: d.Category,
		Score:    d.Score,
		Weight:   d.Weight,
		Date:     d.Date,
		Title:    d.Title,
	}
}

func studentToDoc(s shared.Student) studentDoc {
	return studentDoc{
		ID:                      s.ID,
		Name:                    s.Name,
		Address:                 s.Address,
		CGPA:                    s.CGPA,
		GradeLevel:              s.GradeLevel,
		SubjectsEnrolled:        nonNil(s.SubjectsEnrolled),
		AttendancePercentage:    s.AttendancePercentage,
		DateOfBirth:             s.DateOfBirth.UTC(),
		CompletedCredits:        s.CompletedCredits,
		IsEnrolled:              s.IsEnrolled,
		Email:                   s.Email,
		LastLogin:               s.LastLogin.UTC(),
		Interests:               nonNil(s.Interests),
		AssignedCounselor:       s.AssignedCounselor,
		ScholarshipAmount:       s.ScholarshipAmount,
		ParentalConsentReceived: s.ParentalConsentReceived,
		EnrollmentStatus:        s.EnrollmentStatus,
		EmergencyContact:        s.EmergencyContact,
		PortfolioWebsite:        s.PortfolioWebsite,
		SatisfactionRating:      s.SatisfactionRating,
	}
}

func documentToStudent(d studentDoc) shared.Student {
	return shared.Student{
		ID:                      d.ID,
		Name:                    d.Name,
		Address:                 d.Address,
		CGPA:                    d.CGPA,
		GradeLevel:              d.GradeLevel,
		SubjectsEnrolled:        nonNil(d.SubjectsEnrolled),
		AttendancePercentage:    d.AttendancePercentage,
		DateOfBirth:             d.DateOfBirth,
		CompletedCredits:        d.CompletedCredits,
		IsEnrolled:              d.IsEnrolled,
		Email:                   d.Email,
		LastLogin:               d.LastLogin,
		Interests:               nonNil(d.Interests),
		AssignedCounselor:       d.AssignedCounselor,
		ScholarshipAmount:       d.ScholarshipAmount,
		ParentalConsentReceived: d.ParentalConsentReceived,
		EnrollmentStatus:        d.EnrollmentStatus,
		EmergencyContact:        d.EmergencyContact,
		PortfolioWebsite:        d.PortfolioWebsite,
		SatisfactionRating:      d.SatisfactionRating,
	}
}

func facultyToDoc(f shared.Faculty) facultyDoc {
	return facultyDoc{
		ID:                   f.ID,
		Name:                 f.Name,
		ResidentialAddress:   f.ResidentialAddress,
		YearsOfExperience:    f.YearsOfExperience,
		Department:           f.Department,
		SubjectsTaught:       nonNil(f.SubjectsTaught),
		WeeklyTeachingHours:  f.WeeklyTeachingHours,
		DateOfJoining:        f.DateOfJoining.UTC(),
		NumberOfPublications: f.NumberOfPublications,
		IsTenured:            f.IsTenured,
		OfficialEmail:        f.OfficialEmail,
		LastPromotionDate:    f.LastPromotionDate.UTC(),
		ResearchInterests:    nonNil(f.ResearchInterests),
		ReportingManager:     f.ReportingManager,
		MonthlySalary:        f.MonthlySalary,
		BackgroundVerified:   f.BackgroundVerified,
		EmploymentStatus:     f.EmploymentStatus,
		ContactPhone:         f.ContactPhone,
		Website:              f.Website,
		Rating:               f.Rating,
	}
}

func documentToFaculty(d facultyDoc) shared.Faculty {
	return shared.Faculty{
		ID:                   d.ID,
		Name:                 d.Name,
		ResidentialAddress:   d.ResidentialAddress,
		YearsOfExperience:    d.YearsOfExperience,
		Department:           d.Department,
		SubjectsTaught:       nonNil(d.SubjectsTaught),
		WeeklyTeachingHours:  d.WeeklyTeachingHours,
		DateOfJoining:        d.DateOfJoining,
		NumberOfPublications: d.NumberOfPublications,
		IsTenured:            d.IsTenured,
		OfficialEmail:        d.OfficialEmail,
		LastPromotionDate:    d.LastPromotionDate,
		ResearchInterests:    nonNil(d.ResearchInterests),
		ReportingManager:     d.ReportingManager,
		MonthlySalary:        d.MonthlySalary,
		BackgroundVerified:   d.BackgroundVerified,
		EmploymentStatus:     d.EmploymentStatus,
		ContactPhone:         d.ContactPhone,
		Website:              d.Website,
		Rating:               d.Rating,
	}
}
