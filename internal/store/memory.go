package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-memory Store implementation with the same
// contract as MongoStore: server-assigned ids, timestamp stamping,
// newest-first listing, merge-only updates, idempotent deletes.
//
// It backs tests that exercise the layers above the store without a
// running database.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document

	// now is swappable so timestamp behavior stays deterministic in tests.
	now func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]Document),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the timestamp source.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.now = now
}

func (s *MemoryStore) collection(name string) map[string]Document {
	if s.collections[name] == nil {
		s.collections[name] = make(map[string]Document)
	}
	return s.collections[name]
}

func (s *MemoryStore) Create(ctx context.Context, collection string, fields Document) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := sanitizeFields(fields)
	doc[FieldTimestamp] = s.now()

	id := primitive.NewObjectID().Hex()

	stored := make(Document, len(doc)+1)
	for k, v := range doc {
		stored[k] = v
	}
	stored[FieldID] = id
	s.collection(collection)[id] = stored

	shaped := make(Document, len(stored))
	for k, v := range stored {
		shaped[k] = v
	}

	return shaped, nil
}

func (s *MemoryStore) ListAll(ctx context.Context, collection string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]Document, 0, len(s.collections[collection]))
	for _, stored := range s.collections[collection] {
		copied := make(Document, len(stored))
		for k, v := range stored {
			copied[k] = v
		}
		docs = append(docs, copied)
	}

	// Newest first, matching the store's timestamp-descending query.
	sortByTimestampDesc(docs)

	return docs, nil
}

func (s *MemoryStore) GetByID(ctx context.Context, collection, id string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.collections[collection][id]
	if !ok {
		return nil, ErrNotFound
	}

	copied := make(Document, len(stored))
	for k, v := range stored {
		copied[k] = v
	}

	return copied, nil
}

func (s *MemoryStore) Update(ctx context.Context, collection, id string, fields Document) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.collections[collection][id]
	if !ok {
		return nil, errors.Errorf("no document with id %s in %s", id, collection)
	}

	set := sanitizeFields(fields)
	set[FieldUpdatedTimestamp] = s.now()

	// Merge: fields not mentioned are preserved.
	for k, v := range set {
		stored[k] = v
	}

	shaped := make(Document, len(set)+1)
	for k, v := range set {
		shaped[k] = v
	}
	shaped[FieldID] = id

	return shaped, nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections[collection], id)
	return nil
}

func sortByTimestampDesc(docs []Document) {
	docTime := func(d Document) time.Time {
		if ts, ok := d[FieldTimestamp].(time.Time); ok {
			return ts
		}
		return time.Time{}
	}

	sort.Slice(docs, func(i, j int) bool {
		return docTime(docs[i]).After(docTime(docs[j]))
	})
}
