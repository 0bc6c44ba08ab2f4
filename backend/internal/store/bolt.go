// ============================================================================
// backend/internal/store/bolt.go
// Embedded bbolt backend: one bucket per collection, big-endian id keys,
// JSON encoded documents. Ids come from the bucket sequence.
// ============================================================================

package store

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"studysync/backend/internal/shared"
)

// OpenBolt opens (or creates) the database file at path.
func OpenBolt(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt %s: %w", path, err)
	}

	buckets := []string{collCourses, collAssignments, collGrades, collStudents, collFaculty}
	if err := db.Update(func(tx *bbolt.Tx) error {
		for _, name := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := newStore(shared.StoreDriverBolt,
		&boltTable[courseDoc]{db: db, bucket: []byte(collCourses)},
		&boltTable[assignmentDoc]{db: db, bucket: []byte(collAssignments)},
		&boltTable[gradeDoc]{db: db, bucket: []byte(collGrades)},
		&boltTable[studentDoc]{db: db, bucket: []byte(collStudents)},
		&boltTable[facultyDoc]{db: db, bucket: []byte(collFaculty)},
	)
	s.ping = func(context.Context) error {
		return db.View(func(*bbolt.Tx) error { return nil })
	}
	s.close = func(context.Context) error { return db.Close() }
	return s, nil
}

type boltTable[D document] struct {
	db     *bbolt.DB
	bucket []byte
}

func itob(id int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}

// matches compares each where value with the stored JSON of that field.
func matches(raw []byte, where map[string]any) (bool, error) {
	if len(where) == 0 {
		return true, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return false, err
	}
	for k, v := range where {
		want, err := json.Marshal(v)
		if err != nil {
			return false, err
		}
		if !bytes.Equal(bytes.TrimSpace(fields[k]), want) {
			return false, nil
		}
	}
	return true, nil
}

func (t *boltTable[D]) List(ctx context.Context, where map[string]any) ([]D, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	docs := make([]D, 0)
	err := t.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(t.bucket).ForEach(func(_, v []byte) error {
			ok, err := matches(v, where)
			if err != nil || !ok {
				return err
			}
			var doc D
			if err := json.Unmarshal(v, &doc); err != nil {
				return err
			}
			docs = append(docs, doc)
			return nil
		})
	})
	return docs, err
}

func (t *boltTable[D]) Get(ctx context.Context, id int64) (D, error) {
	var doc D
	if err := ctx.Err(); err != nil {
		return doc, err
	}

	err := t.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(t.bucket).Get(itob(id))
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &doc)
	})
	return doc, err
}

func (t *boltTable[D]) Insert(ctx context.Context, build func(id int64) D) (D, error) {
	var doc D
	if err := ctx.Err(); err != nil {
		return doc, err
	}

	err := t.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(t.bucket)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		doc = build(int64(seq))

		data, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		return b.Put(itob(int64(seq)), data)
	})
	return doc, err
}

func (t *boltTable[D]) Replace(ctx context.Context, id int64, doc D) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return t.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(t.bucket)
		if b.Get(itob(id)) == nil {
			return ErrNotFound
		}
		return b.Put(itob(id), data)
	})
}

func (t *boltTable[D]) Patch(ctx context.Context, id int64, set map[string]any) (D, error) {
	var doc D
	if err := ctx.Err(); err != nil {
		return doc, err
	}

	err := t.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(t.bucket)
		v := b.Get(itob(id))
		if v == nil {
			return ErrNotFound
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(v, &fields); err != nil {
			return err
		}
		for k, val := range set {
			raw, err := json.Marshal(val)
			if err != nil {
				return err
			}
			fields[k] = raw
		}

		merged, err := json.Marshal(fields)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(merged, &doc); err != nil {
			return err
		}
		return b.Put(itob(id), merged)
	})
	return doc, err
}

func (t *boltTable[D]) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return t.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(t.bucket)
		if b.Get(itob(id)) == nil {
			return ErrNotFound
		}
		return b.Delete(itob(id))
	})
}

func (t *boltTable[D]) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var n int64
	err := t.db.View(func(tx *bbolt.Tx) error {
		n = int64(tx.Bucket(t.bucket).Stats().KeyN)
		return nil
	})
	return n, err
}
