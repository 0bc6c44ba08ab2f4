package assignment

import (
	"context"
	"log/slog"

	"studysync/backend/internal/calendar"
	"studysync/backend/internal/pipeline"
	"studysync/backend/internal/shared"
)

// DefaultUpcomingDays is the window used when a caller does not pick one
const DefaultUpcomingDays = 7

// Store is the assignment persistence the service needs
type Store interface {
	GetAll(ctx context.Context) ([]shared.Assignment, error)
	GetByID(ctx context.Context, id int64) (shared.Assignment, error)
	GetByCourseID(ctx context.Context, courseID int64) ([]shared.Assignment, error)
	Create(ctx context.Context, a shared.Assignment) (shared.Assignment, error)
	Update(ctx context.Context, id int64, a shared.Assignment) (shared.Assignment, error)
	Delete(ctx context.Context, id int64) error
	UpdateStatus(ctx context.Context, id int64, status string) (shared.Assignment, error)
}

// View is an assignment with its status derived against the current time
type View struct {
	shared.Assignment
	DerivedStatus string `json:"derivedStatus"`
}

// Service manages assignments
type Service struct {
	store Store
	clock calendar.Clock
}

// NewService creates a new assignment Service
func NewService(store Store, clock calendar.Clock) *Service {
	if clock == nil {
		clock = calendar.SystemClock{}
	}
	return &Service{store: store, clock: clock}
}

func (s *Service) views(items []shared.Assignment) []View {
	now := s.clock.Now()
	out := make([]View, 0, len(items))
	for _, a := range items {
		out = append(out, View{Assignment: a, DerivedStatus: calendar.DerivedStatus(a, now)})
	}
	return out
}

// List filters the assignments and orders them by status, then due date
func (s *Service) List(ctx context.Context, filter pipeline.AssignmentFilter) ([]View, error) {
	items, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	matched := pipeline.FilterAssignments(items, filter, now)
	return s.views(calendar.SortByStatusThenDueDate(matched, now)), nil
}

// Get returns one assignment
func (s *Service) Get(ctx context.Context, id int64) (View, error) {
	a, err := s.store.GetByID(ctx, id)
	if err != nil {
		return View{}, err
	}
	return View{Assignment: a, DerivedStatus: calendar.DerivedStatus(a, s.clock.Now())}, nil
}

// ByCourse returns a course's assignments
func (s *Service) ByCourse(ctx context.Context, courseID int64) ([]View, error) {
	items, err := s.store.GetByCourseID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return s.views(calendar.SortByDueDate(items)), nil
}

// Create stores a new assignment, defaulting priority to medium and status
// to pending.
func (s *Service) Create(ctx context.Context, a shared.Assignment) (View, error) {
	shared.ApplyAssignmentDefaults(&a)
	if err := shared.Check(a); err != nil {
		return View{}, err
	}
	created, err := s.store.Create(ctx, a)
	if err != nil {
		return View{}, err
	}
	slog.Info("assignment created", "assignment_id", created.ID, "course_id", created.CourseID)
	return View{Assignment: created, DerivedStatus: calendar.DerivedStatus(created, s.clock.Now())}, nil
}

// Update replaces an assignment after validating it
func (s *Service) Update(ctx context.Context, id int64, a shared.Assignment) (View, error) {
	shared.ApplyAssignmentDefaults(&a)
	if err := shared.Check(a); err != nil {
		return View{}, err
	}
	updated, err := s.store.Update(ctx, id, a)
	if err != nil {
		return View{}, err
	}
	return View{Assignment: updated, DerivedStatus: calendar.DerivedStatus(updated, s.clock.Now())}, nil
}

// Delete removes an assignment
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

type statusChange struct {
	Status string `json:"status" validate:"required,oneof=pending in-progress completed"`
}

// UpdateStatus changes only the stored status
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (View, error) {
	if err := shared.Check(statusChange{Status: status}); err != nil {
		return View{}, err
	}
	updated, err := s.store.UpdateStatus(ctx, id, status)
	if err != nil {
		return View{}, err
	}
	return View{Assignment: updated, DerivedStatus: calendar.DerivedStatus(updated, s.clock.Now())}, nil
}

// Upcoming returns unfinished work due within the next days days
func (s *Service) Upcoming(ctx context.Context, days int) ([]View, error) {
	if days <= 0 {
		days = DefaultUpcomingDays
	}
	items, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.views(calendar.Upcoming(items, s.clock.Now(), days)), nil
}

// Today returns unfinished work due today
func (s *Service) Today(ctx context.Context) ([]View, error) {
	items, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	return s.views(calendar.SortByDueDate(calendar.DueToday(items, now))), nil
}
