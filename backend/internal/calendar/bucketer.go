// ============================================================================
// backend/internal/calendar/bucketer.go
// Due-date classification and calendar day/month bucketing of assignments
// ============================================================================

package calendar

import (
	"sort"
	"time"

	"studysync/backend/internal/shared"
)

const day = 24 * time.Hour

// statusRank orders derived statuses for SortByStatusThenDueDate
var statusRank = map[string]int{
	shared.StatusOverdue:    0,
	shared.StatusInProgress: 1,
	shared.StatusPending:    2,
	shared.StatusCompleted:  3,
}

// DerivedStatus classifies an assignment against now. The checks run in a
// fixed order: completed, then overdue, then due today, then pending.
// An assignment without a due date is pending.
func DerivedStatus(a shared.Assignment, now time.Time) string {
	switch {
	case a.IsCompleted():
		return shared.StatusCompleted
	case a.DueDate.IsZero():
		return shared.StatusPending
	case a.DueDate.Before(now):
		return shared.StatusOverdue
	case SameDay(a.DueDate, now):
		return shared.StatusInProgress
	default:
		return shared.StatusPending
	}
}

// SameDay reports whether t falls on the calendar day of ref, in ref's location.
func SameDay(t, ref time.Time) bool {
	y1, m1, d1 := t.In(ref.Location()).Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AssignmentsOnDate returns the assignments due on date's calendar day.
func AssignmentsOnDate(items []shared.Assignment, date time.Time) []shared.Assignment {
	out := make([]shared.Assignment, 0)
	for _, a := range items {
		if SameDay(a.DueDate, date) {
			out = append(out, a)
		}
	}
	return out
}

// MonthDays returns every day of the grid for ref's month, padded out to
// whole Sunday-to-Saturday weeks.
func MonthDays(ref time.Time) []time.Time {
	y, m, _ := ref.Date()
	loc := ref.Location()
	first := time.Date(y, m, 1, 0, 0, 0, 0, loc)
	last := time.Date(y, m+1, 0, 0, 0, 0, 0, loc)

	return eachDay(startOfWeek(first), endOfWeek(last))
}

// WeekDays returns the Sunday-to-Saturday week containing ref.
func WeekDays(ref time.Time) []time.Time {
	start := startOfWeek(StartOfDay(ref))
	return eachDay(start, endOfWeek(start))
}

func startOfWeek(t time.Time) time.Time {
	return t.AddDate(0, 0, -int(t.Weekday()))
}

func endOfWeek(t time.Time) time.Time {
	return t.AddDate(0, 0, int(time.Saturday-t.Weekday()))
}

// eachDay is inclusive of both ends; AddDate keeps midnight across DST changes.
func eachDay(start, end time.Time) []time.Time {
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// SortByStatusThenDueDate orders by derived status (overdue, in-progress,
// pending, completed) and then by ascending due date. The sort is stable and
// the input slice is left untouched.
func SortByStatusThenDueDate(items []shared.Assignment, now time.Time) []shared.Assignment {
	out := append([]shared.Assignment(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := statusRank[DerivedStatus(out[i], now)], statusRank[DerivedStatus(out[j], now)]
		if ri != rj {
			return ri < rj
		}
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out
}

// SortByDueDate orders assignments by ascending due date without touching items.
func SortByDueDate(items []shared.Assignment) []shared.Assignment {
	out := append([]shared.Assignment(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out
}

// ============================================================================
// Windows
// ============================================================================

// Upcoming returns unfinished assignments due in (now, now+days], soonest first.
func Upcoming(items []shared.Assignment, now time.Time, days int) []shared.Assignment {
	until := now.Add(time.Duration(days) * day)
	out := make([]shared.Assignment, 0)
	for _, a := range items {
		if a.IsCompleted() {
			continue
		}
		if !a.DueDate.After(now) || a.DueDate.After(until) {
			continue
		}
		out = append(out, a)
	}
	return SortByDueDate(out)
}

// DueToday returns unfinished assignments due on now's calendar day.
func DueToday(items []shared.Assignment, now time.Time) []shared.Assignment {
	out := make([]shared.Assignment, 0)
	for _, a := range items {
		if !a.IsCompleted() && SameDay(a.DueDate, now) {
			out = append(out, a)
		}
	}
	return out
}

// DueInMonth returns the assignments due in ref's calendar month.
func DueInMonth(items []shared.Assignment, ref time.Time) []shared.Assignment {
	y, m, _ := ref.Date()
	out := make([]shared.Assignment, 0)
	for _, a := range items {
		ay, am, _ := a.DueDate.In(ref.Location()).Date()
		if ay == y && am == m {
			out = append(out, a)
		}
	}
	return out
}

// Overdue returns the assignments whose derived status is overdue.
func Overdue(items []shared.Assignment, now time.Time) []shared.Assignment {
	out := make([]shared.Assignment, 0)
	for _, a := range items {
		if DerivedStatus(a, now) == shared.StatusOverdue {
			out = append(out, a)
		}
	}
	return out
}

// CountUpcomingForCourse counts unfinished assignments of a course due after now.
func CountUpcomingForCourse(items []shared.Assignment, courseID int64, now time.Time) int {
	n := 0
	for _, a := range items {
		if a.CourseID == courseID && a.DueDate.After(now) && !a.IsCompleted() {
			n++
		}
	}
	return n
}

// MonthStats summarises the assignments due in a month.
type MonthStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// StatsForMonth counts the assignments due in ref's month by stored status.
// Anything not completed counts as pending.
func StatsForMonth(items []shared.Assignment, ref time.Time) MonthStats {
	var stats MonthStats
	for _, a := range DueInMonth(items, ref) {
		stats.Total++
		if a.IsCompleted() {
			stats.Completed++
		} else {
			stats.Pending++
		}
	}
	return stats
}
