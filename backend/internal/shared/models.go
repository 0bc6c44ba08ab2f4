// ============================================================================
// backend/internal/shared/models.go
// Canonical StudySync entities. Storage naming lives in the store package.
// ============================================================================

package shared

import (
	"time"
)

// ============================================================================
// Course Models
// ============================================================================

// GradeCategory is a weighted bucket of a course grade (e.g. "Exams": 40)
type GradeCategory struct {
	Name   string  `json:"name" validate:"required"`
	Weight float64 `json:"weight" validate:"gte=0,lte=100"`
}

// Course represents a course the user is taking
type Course struct {
	ID              int64           `json:"Id"`
	Name            string          `json:"name" validate:"notblank"`
	Code            string          `json:"code" validate:"notblank"`
	Instructor      string          `json:"instructor" validate:"notblank"`
	Credits         int             `json:"credits" validate:"gt=0"`
	Color           string          `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Schedule        []string        `json:"schedule"`
	Semester        string          `json:"semester,omitempty"`
	CurrentGrade    float64         `json:"currentGrade" validate:"gte=0,lte=100"`
	GradeCategories []GradeCategory `json:"gradeCategories" validate:"dive"`
}

// DefaultGradeCategories returns the weighting applied to new courses without one
func DefaultGradeCategories() []GradeCategory {
	return []GradeCategory{
		{Name: "Exams", Weight: 40},
		{Name: "Assignments", Weight: 35},
		{Name: "Participation", Weight: 15},
		{Name: "Projects", Weight: 10},
	}
}

// ============================================================================
// Assignment Models
// ============================================================================

// Assignment represents a piece of coursework with a due date
type Assignment struct {
	ID       int64     `json:"Id"`
	Title    string    `json:"title" validate:"notblank"`
	CourseID int64     `json:"courseId" validate:"gt=0"`
	DueDate  time.Time `json:"dueDate" validate:"required"`
	Priority string    `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status   string    `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	Grade    *float64  `json:"grade" validate:"omitempty,gte=0,lte=100"`
	Notes    string    `json:"notes,omitempty"`
}

// IsCompleted reports whether the stored status is completed
func (a *Assignment) IsCompleted() bool {
	return a.Status == StatusCompleted
}

// IsGraded reports whether a grade has been recorded
func (a *Assignment) IsGraded() bool {
	return a.Grade != nil
}

// ============================================================================
// Grade Models
// ============================================================================

// GradeEntry is a single scored item counted toward a course category
type GradeEntry struct {
	ID       int64     `json:"Id"`
	CourseID int64     `json:"courseId" validate:"gt=0"`
	Category string    `json:"category" validate:"notblank"`
	Score    float64   `json:"score" validate:"gte=0,lte=100"`
	Weight   float64   `json:"weight" validate:"gte=0"`
	Date     time.Time `json:"date"`
	Title    string    `json:"title"`
}

// ============================================================================
// People Models
// ============================================================================

// Student is a flat attribute bag displayed on the students screen
type Student struct {
	ID                      int64     `json:"Id"`
	Name                    string    `json:"studentName" validate:"notblank"`
	Address                 string    `json:"address,omitempty"`
	CGPA                    float64   `json:"cgpa" validate:"gte=0,lte=4"`
	GradeLevel              string    `json:"gradeLevel" validate:"omitempty,oneof=Freshman Sophomore Junior Senior"`
	SubjectsEnrolled        []string  `json:"subjectsEnrolled"`
	AttendancePercentage    float64   `json:"attendancePercentage" validate:"gte=0,lte=100"`
	DateOfBirth             time.Time `json:"dateOfBirth,omitempty"`
	CompletedCredits        int       `json:"completedCredits" validate:"gte=0"`
	IsEnrolled              bool      `json:"isEnrolled"`
	Email                   string    `json:"studentEmail,omitempty" validate:"omitempty,email"`
	LastLogin               time.Time `json:"lastLogin,omitempty"`
	Interests               []string  `json:"studentInterests"`
	AssignedCounselor       string    `json:"assignedCounselor,omitempty"`
	ScholarshipAmount       float64   `json:"scholarshipAmount" validate:"gte=0"`
	ParentalConsentReceived bool      `json:"parentalConsentReceived"`
	EnrollmentStatus        string    `json:"enrollmentStatus" validate:"omitempty,oneof=Active Graduated Dropped"`
	EmergencyContact        string    `json:"emergencyContact,omitempty"`
	PortfolioWebsite        string    `json:"studentPortfolioWebsite,omitempty" validate:"omitempty,url"`
	SatisfactionRating      int       `json:"studentSatisfactionRating" validate:"omitempty,min=1,max=5"`
}

// Faculty is a flat attribute bag displayed on the faculty screen
type Faculty struct {
	ID                   int64     `json:"Id"`
	Name                 string    `json:"facultyName" validate:"notblank"`
	ResidentialAddress   string    `json:"residentialAddress,omitempty"`
	YearsOfExperience    float64   `json:"yearsOfExperience" validate:"gte=0"`
	Department           string    `json:"department" validate:"omitempty,oneof=Science Arts Commerce Engineering"`
	SubjectsTaught       []string  `json:"subjectsTaught"`
	WeeklyTeachingHours  float64   `json:"weeklyTeachingHours" validate:"gte=0,lte=40"`
	DateOfJoining        time.Time `json:"dateOfJoining,omitempty"`
	NumberOfPublications int       `json:"numberOfPublications" validate:"gte=0"`
	IsTenured            bool      `json:"isTenured"`
	OfficialEmail        string    `json:"officialEmail,omitempty" validate:"omitempty,email"`
	LastPromotionDate    time.Time `json:"lastPromotionDate,omitempty"`
	ResearchInterests    []string  `json:"researchInterests"`
	ReportingManager     string    `json:"reportingManager,omitempty"`
	MonthlySalary        float64   `json:"monthlySalary" validate:"gte=0"`
	BackgroundVerified   bool      `json:"backgroundVerified"`
	EmploymentStatus     string    `json:"employmentStatus" validate:"omitempty,employment_status"`
	ContactPhone         string    `json:"contactPhone,omitempty" validate:"omitempty,phone"`
	Website              string    `json:"facultyWebsite,omitempty" validate:"omitempty,url"`
	Rating               int       `json:"facultyRating" validate:"omitempty,min=1,max=5"`
}

// ============================================================================
// Constants
// ============================================================================

const (
	// Stored assignment statuses
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"

	// Derived-only assignment status
	StatusOverdue = "overdue"

	// Assignment priorities
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	// Student enrollment statuses
	EnrollmentActive    = "Active"
	EnrollmentGraduated = "Graduated"
	EnrollmentDropped   = "Dropped"

	// Faculty employment statuses
	EmploymentActive  = "Active"
	EmploymentOnLeave = "On Leave"
	EmploymentRetired = "Retired"

	// FilterAll disables a filter criterion
	FilterAll = "all"
)

// GradeLevels lists the student grade levels in display order
var GradeLevels = []string{"Freshman", "Sophomore", "Junior", "Senior"}

// Departments lists the faculty departments in display order
var Departments = []string{"Science", "Arts", "Commerce", "Engineering"}

// ApplyAssignmentDefaults fills the values a new assignment gets when omitted
func ApplyAssignmentDefaults(a *Assignment) {
	if a.Priority == "" {
		a.Priority = PriorityMedium
	}
	if a.Status == "" {
		a.Status = StatusPending
	}
}
