// ============================================================================
// backend/internal/store/mongo.go
// MongoDB backend. Ids come from a counters collection bumped with $inc.
// ============================================================================

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"studysync/backend/internal/shared"
)

const defaultQueryTimeout = 10 * time.Second

// NewMongo builds a Store over an already connected database.
func NewMongo(db *mongo.Database, queryTimeout time.Duration) *Store {
	if queryTimeout <= 0 {
		queryTimeout = defaultQueryTimeout
	}
	counters := db.Collection(collCounters)

	s := newStore(shared.StoreDriverMongo,
		newMongoTable[courseDoc](db.Collection(collCourses), counters, queryTimeout),
		newMongoTable[assignmentDoc](db.Collection(collAssignments), counters, queryTimeout),
		newMongoTable[gradeDoc](db.Collection(collGrades), counters, queryTimeout),
		newMongoTable[studentDoc](db.Collection(collStudents), counters, queryTimeout),
		newMongoTable[facultyDoc](db.Collection(collFaculty), counters, queryTimeout),
	)
	s.ping = func(ctx context.Context) error {
		return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
	}
	return s
}

// EnsureIndexes creates the unique Id index on every collection and the
// course lookups used by assignments and grades.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	queryCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	unique := mongo.IndexModel{
		Keys:    bson.D{{Key: fieldID, Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	byCourse := mongo.IndexModel{Keys: bson.D{{Key: fieldCourseID, Value: 1}}}

	indexes := map[string][]mongo.IndexModel{
		collCourses:     {unique},
		collAssignments: {unique, byCourse},
		collGrades:      {unique, byCourse},
		collStudents:    {unique},
		collFaculty:     {unique},
	}

	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(queryCtx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

type mongoTable[D document] struct {
	col      *mongo.Collection
	counters *mongo.Collection
	timeout  time.Duration
}

func newMongoTable[D document](col, counters *mongo.Collection, timeout time.Duration) *mongoTable[D] {
	return &mongoTable[D]{col: col, counters: counters, timeout: timeout}
}

func (t *mongoTable[D]) List(ctx context.Context, where map[string]any) ([]D, error) {
	queryCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	filter := bson.M{}
	for k, v := range where {
		filter[k] = v
	}

	cursor, err := t.col.Find(queryCtx, filter, shared.BuildFindOptions(0, fieldID, 1))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(queryCtx)

	docs := make([]D, 0)
	if err := cursor.All(queryCtx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (t *mongoTable[D]) Get(ctx context.Context, id int64) (D, error) {
	queryCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	var doc D
	err := t.col.FindOne(queryCtx, bson.M{fieldID: id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, ErrNotFound
	}
	return doc, err
}

func (t *mongoTable[D]) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := t.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": t.col.Name()},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next id for %s: %w", t.col.Name(), err)
	}
	return counter.Seq, nil
}

func (t *mongoTable[D]) Insert(ctx context.Context, build func(id int64) D) (D, error) {
	queryCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	var doc D
	id, err := t.nextID(queryCtx)
	if err != nil {
		return doc, err
	}

	doc = build(id)
	if _, err := t.col.InsertOne(queryCtx, doc); err != nil {
		return doc, err
	}
	return doc, nil
}

func (t *mongoTable[D]) Replace(ctx context.Context, id int64, doc D) error {
	queryCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	res, err := t.col.ReplaceOne(queryCtx, bson.M{fieldID: id}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *mongoTable[D]) Patch(ctx context.Context, id int64, set map[string]any) (D, error) {
	queryCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	var doc D
	err := t.col.FindOneAndUpdate(queryCtx,
		bson.M{fieldID: id},
		bson.M{"$set": bson.M(set)},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, ErrNotFound
	}
	return doc, err
}

func (t *mongoTable[D]) Delete(ctx context.Context, id int64) error {
	queryCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	res, err := t.col.DeleteOne(queryCtx, bson.M{fieldID: id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *mongoTable[D]) Count(ctx context.Context) (int64, error) {
	return shared.CountDocumentsWithTimeout(ctx, t.col, bson.M{}, t.timeout)
}
