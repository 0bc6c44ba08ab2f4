// ============================================================================
// backend/internal/store/store.go
// Data access layer: backend selection and the per-entity repositories
// ============================================================================

package store

import (
	"context"
	"errors"
	"fmt"

	"studysync/backend/internal/shared"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("record not found")

// document is a storage record keyed by its numeric Id.
type document interface {
	key() int64
}

// table is what a backend provides per collection. Field names in where and
// set are storage names (the _c constants in documents.go).
type table[D document] interface {
	List(ctx context.Context, where map[string]any) ([]D, error)
	Get(ctx context.Context, id int64) (D, error)
	// Insert reserves the next id and stores build(id).
	Insert(ctx context.Context, build func(id int64) D) (D, error)
	Replace(ctx context.Context, id int64, doc D) error
	Patch(ctx context.Context, id int64, set map[string]any) (D, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// Store groups the repositories of one backend.
type Store struct {
	Courses     *CourseRepository
	Assignments *AssignmentRepository
	Grades      *GradeRepository
	Students    *StudentRepository
	Faculty     *FacultyRepository

	driver string
	ping   func(ctx context.Context) error
	close  func(ctx context.Context) error
}

// Open connects to the backend selected by config.Store.Driver.
func Open(ctx context.Context, config *shared.ServiceConfig) (*Store, error) {
	switch config.Store.Driver {
	case shared.StoreDriverBolt:
		return OpenBolt(config.Store.BoltPath)

	case shared.StoreDriverMongo:
		client, db, err := shared.ConnectMongoDB(&config.MongoDB)
		if err != nil {
			return nil, err
		}
		s := NewMongo(db, config.Store.QueryTimeout)
		if err := EnsureIndexes(ctx, db); err != nil {
			_ = shared.DisconnectMongoDB(client)
			return nil, err
		}
		s.close = func(context.Context) error { return shared.DisconnectMongoDB(client) }
		return s, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", config.Store.Driver)
	}
}

func newStore(
	driver string,
	courses table[courseDoc],
	assignments table[assignmentDoc],
	grades table[gradeDoc],
	students table[studentDoc],
	faculty table[facultyDoc],
) *Store {
	return &Store{
		Courses:     &CourseRepository{t: courses},
		Assignments: &AssignmentRepository{t: assignments},
		Grades:      &GradeRepository{t: grades},
		Students:    &StudentRepository{t: students},
		Faculty:     &FacultyRepository{t: faculty},
		driver:      driver,
	}
}

// Driver names the backend in use.
func (s *Store) Driver() string { return s.driver }

// Ping checks the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Close releases the backend connection.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// ============================================================================
// Helpers shared by the repositories
// ============================================================================

func mapAll[D any, T any](docs []D, fn func(D) T) []T {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		out = append(out, fn(d))
	}
	return out
}

func wrap(op, entity string, err error) error {
	if err == nil {
		return err
	}
	return fmt.Errorf("%s %s: %w", op, entity, err)
}
