package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store against a mongo database handle.
type MongoStore struct {
	db *mongo.Database

	// now is swappable so timestamp behavior stays deterministic in tests.
	now func() time.Time
}

// NewMongoStore wraps the given database handle.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *MongoStore) Create(ctx context.Context, collection string, fields Document) (Document, error) {
	doc := sanitizeFields(fields)
	doc[FieldTimestamp] = s.now()

	res, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return nil, errors.Wrapf(err, "insert into %s failed", collection)
	}

	shaped := make(Document, len(doc)+1)
	for k, v := range doc {
		shaped[k] = v
	}
	shaped[FieldID] = idToString(res.InsertedID)

	return shaped, nil
}

func (s *MongoStore) ListAll(ctx context.Context, collection string) ([]Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: FieldTimestamp, Value: -1}})

	cursor, err := s.db.Collection(collection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "query on %s failed", collection)
	}

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, errors.Wrapf(err, "reading %s query results failed", collection)
	}

	docs := make([]Document, 0, len(raw))
	for _, r := range raw {
		docs = append(docs, shapeStored(r))
	}

	return docs, nil
}

func (s *MongoStore) GetByID(ctx context.Context, collection, id string) (Document, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id cannot identify any stored document.
		return nil, ErrNotFound
	}

	var raw bson.M
	err = s.db.Collection(collection).FindOne(ctx, bson.M{"_id": oid}).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "lookup in %s failed", collection)
	}

	return shapeStored(raw), nil
}

func (s *MongoStore) Update(ctx context.Context, collection, id string, fields Document) (Document, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.Errorf("invalid document id %q for %s", id, collection)
	}

	set := sanitizeFields(fields)
	set[FieldUpdatedTimestamp] = s.now()

	res, err := s.db.Collection(collection).UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return nil, errors.Wrapf(err, "update of %s/%s failed", collection, id)
	}
	// Fail fast instead of silently no-opping on a missing id.
	if res.MatchedCount == 0 {
		return nil, errors.Errorf("no document with id %s in %s", id, collection)
	}

	shaped := make(Document, len(set)+1)
	for k, v := range set {
		shaped[k] = v
	}
	shaped[FieldID] = id

	return shaped, nil
}

func (s *MongoStore) Delete(ctx context.Context, collection, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Nothing stored can have this id; deletion is idempotent.
		return nil
	}

	_, err = s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrapf(err, "delete of %s/%s failed", collection, id)
	}

	return nil
}
