// ============================================================================
// backend/internal/grade/calculator.go
// Letter grades, grade points, weighted course averages and GPA
// ============================================================================

package grade

import (
	"fmt"
	"math"

	"studysync/backend/internal/shared"
)

// threshold pairs a lower bound percentage with its letter and 4.0-scale value
type threshold struct {
	min    float64
	letter string
	points float64
}

// scale is evaluated top-down; the first bound the percentage reaches wins
var scale = []threshold{
	{97, "A+", 4.0},
	{93, "A", 3.7},
	{90, "A-", 3.3},
	{87, "B+", 3.0},
	{83, "B", 2.7},
	{80, "B-", 2.3},
	{77, "C+", 2.0},
	{73, "C", 1.7},
	{70, "C-", 1.3},
	{67, "D+", 1.0},
	{65, "D", 0.7},
}

const (
	failingLetter = "F"
	zeroGPA       = "0.00"
)

func lookup(percentage float64) (threshold, bool) {
	if math.IsNaN(percentage) {
		return threshold{}, false
	}
	for _, t := range scale {
		if percentage >= t.min {
			return t, true
		}
	}
	return threshold{}, false
}

// LetterGrade maps a percentage to A+ through F. Anything below 65, negative
// or NaN is an F.
func LetterGrade(percentage float64) string {
	if t, ok := lookup(percentage); ok {
		return t.letter
	}
	return failingLetter
}

// GradePoints maps a percentage to the 4.0 scale using the LetterGrade bounds.
func GradePoints(percentage float64) float64 {
	if t, ok := lookup(percentage); ok {
		return t.points
	}
	return 0.0
}

// WeightedCourseAverage averages the entries of each category, then combines
// the category averages by weight. Categories without entries are left out of
// both the score and the total weight. The result is rounded to a whole number.
func WeightedCourseAverage(entries []shared.GradeEntry, categories []shared.GradeCategory) float64 {
	var runningScore, runningWeight float64

	for _, category := range categories {
		var sum float64
		var count int
		for _, entry := range entries {
			if entry.Category != category.Name {
				continue
			}
			sum += finite(entry.Score)
			count++
		}
		if count == 0 {
			continue
		}

		weight := finite(category.Weight) / 100
		runningScore += (sum / float64(count)) * weight
		runningWeight += weight
	}

	if runningWeight <= 0 {
		return 0
	}
	return math.Round(runningScore / runningWeight)
}

// OverallGPA is the credit-weighted average of each course's grade points,
// formatted with two decimals.
func OverallGPA(courses []shared.Course) string {
	gpa, ok := overallGPA(courses)
	if !ok {
		return zeroGPA
	}
	return fmt.Sprintf("%.2f", gpa)
}

// OverallGPAValue is OverallGPA as a number rounded to two decimals.
func OverallGPAValue(courses []shared.Course) float64 {
	gpa, _ := overallGPA(courses)
	return math.Round(gpa*100) / 100
}

func overallGPA(courses []shared.Course) (float64, bool) {
	var weighted float64
	var totalCredits int
	for _, course := range courses {
		weighted += GradePoints(course.CurrentGrade) * float64(course.Credits)
		totalCredits += course.Credits
	}
	if totalCredits <= 0 {
		return 0, false
	}
	return weighted / float64(totalCredits), true
}

// ============================================================================
// Course summaries
// ============================================================================

// Distribution counts courses per letter band, bounded at 90/80/70/60.
type Distribution struct {
	A int `json:"A"`
	B int `json:"B"`
	C int `json:"C"`
	D int `json:"D"`
	F int `json:"F"`
}

// GradeDistribution buckets each course by its current grade
func GradeDistribution(courses []shared.Course) Distribution {
	var dist Distribution
	for _, course := range courses {
		switch g := course.CurrentGrade; {
		case g >= 90:
			dist.A++
		case g >= 80:
			dist.B++
		case g >= 70:
			dist.C++
		case g >= 60:
			dist.D++
		default:
			dist.F++
		}
	}
	return dist
}

// AverageGrade is the rounded mean of the courses' current grades
func AverageGrade(courses []shared.Course) float64 {
	if len(courses) == 0 {
		return 0
	}
	var sum float64
	for _, course := range courses {
		sum += finite(course.CurrentGrade)
	}
	return math.Round(sum / float64(len(courses)))
}

// TotalCredits sums the credits of all courses
func TotalCredits(courses []shared.Course) int {
	total := 0
	for _, course := range courses {
		total += course.Credits
	}
	return total
}

// AverageAssignmentGrade is the rounded mean of the assignments with a
// non-zero grade; ungraded and zero-graded ones are ignored and 0 is returned
// when none remain.
func AverageAssignmentGrade(assignments []shared.Assignment) float64 {
	var sum float64
	var count int
	for i := range assignments {
		if !assignments[i].IsGraded() {
			continue
		}
		g := finite(*assignments[i].Grade)
		if g == 0 {
			continue
		}
		sum += g
		count++
	}
	if count == 0 {
		return 0
	}
	return math.Round(sum / float64(count))
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
