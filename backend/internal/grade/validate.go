package grade

import (
	"errors"
	"fmt"
	"math"

	"studysync/backend/internal/shared"
)

// ErrInvalidInput is wrapped by every strict variant below.
var ErrInvalidInput = errors.New("invalid grade input")

func checkPercentage(field string, v float64) *shared.FieldError {
	if math.IsNaN(v) || v < 0 || v > 100 {
		return &shared.FieldError{Field: field, Error: fmt.Sprintf("must be between 0 and 100, got %v", v)}
	}
	return nil
}

func invalid(fields ...shared.FieldError) error {
	return shared.NewValidationError(ErrInvalidInput, fields...)
}

// ValidateLetterGrade is LetterGrade that rejects percentages outside 0-100.
func ValidateLetterGrade(percentage float64) (string, error) {
	if fe := checkPercentage("percentage", percentage); fe != nil {
		return "", invalid(*fe)
	}
	return LetterGrade(percentage), nil
}

// ValidateGradePoints is GradePoints that rejects percentages outside 0-100.
func ValidateGradePoints(percentage float64) (float64, error) {
	if fe := checkPercentage("percentage", percentage); fe != nil {
		return 0, invalid(*fe)
	}
	return GradePoints(percentage), nil
}

// ValidateWeightedCourseAverage rejects out of range scores, negative weights
// and entries whose category is not one of the course's categories.
func ValidateWeightedCourseAverage(entries []shared.GradeEntry, categories []shared.GradeCategory) (float64, error) {
	var fields []shared.FieldError

	known := make(map[string]bool, len(categories))
	for i, category := range categories {
		known[category.Name] = true
		if math.IsNaN(category.Weight) || category.Weight < 0 {
			fields = append(fields, shared.FieldError{
				Field: fmt.Sprintf("gradeCategories[%d].weight", i),
				Error: "must be a non-negative number",
			})
		}
	}

	for i, entry := range entries {
		if fe := checkPercentage(fmt.Sprintf("entries[%d].score", i), entry.Score); fe != nil {
			fields = append(fields, *fe)
		}
		if !known[entry.Category] {
			fields = append(fields, shared.FieldError{
				Field: fmt.Sprintf("entries[%d].category", i),
				Error: fmt.Sprintf("unknown category %q", entry.Category),
			})
		}
	}

	if len(fields) > 0 {
		return 0, invalid(fields...)
	}
	return WeightedCourseAverage(entries, categories), nil
}

// ValidateOverallGPA rejects negative credits and grades outside 0-100.
func ValidateOverallGPA(courses []shared.Course) (string, error) {
	var fields []shared.FieldError
	for i, course := range courses {
		if course.Credits < 0 {
			fields = append(fields, shared.FieldError{
				Field: fmt.Sprintf("courses[%d].credits", i),
				Error: "must not be negative",
			})
		}
		if fe := checkPercentage(fmt.Sprintf("courses[%d].currentGrade", i), course.CurrentGrade); fe != nil {
			fields = append(fields, *fe)
		}
	}
	if len(fields) > 0 {
		return "", invalid(fields...)
	}
	return OverallGPA(courses), nil
}
