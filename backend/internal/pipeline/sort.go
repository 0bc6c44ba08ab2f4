package pipeline

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"studysync/backend/internal/shared"
)

// Student sort keys
const (
	SortByName       = "name"
	SortByCGPA       = "cgpa"
	SortByCredits    = "credits"
	SortByAttendance = "attendance"
)

// SortStudents returns a sorted copy of items. Names sort ascending by locale
// collation; cgpa, credits and attendance sort descending. Unknown keys keep
// the input order.
func SortStudents(items []shared.Student, key string) []shared.Student {
	out := append([]shared.Student(nil), items...)

	var less func(a, b *shared.Student) bool
	switch key {
	case SortByName:
		col := collate.New(language.English, collate.IgnoreCase)
		less = func(a, b *shared.Student) bool { return col.CompareString(a.Name, b.Name) < 0 }
	case SortByCGPA:
		less = func(a, b *shared.Student) bool { return a.CGPA > b.CGPA }
	case SortByCredits:
		less = func(a, b *shared.Student) bool { return a.CompletedCredits > b.CompletedCredits }
	case SortByAttendance:
		less = func(a, b *shared.Student) bool { return a.AttendancePercentage > b.AttendancePercentage }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(&out[i], &out[j]) })
	return out
}

// IsStudentSortKey reports whether key is one SortStudents understands.
func IsStudentSortKey(key string) bool {
	switch key {
	case SortByName, SortByCGPA, SortByCredits, SortByAttendance:
		return true
	}
	return false
}
