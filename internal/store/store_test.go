package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestShapeStored(t *testing.T) {
	oid := primitive.NewObjectID()
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	raw := bson.M{
		"_id":          oid,
		"title":        "Hello",
		FieldTimestamp: primitive.NewDateTimeFromTime(created),
	}

	doc := shapeStored(raw)

	assert.Equal(t, oid.Hex(), doc[FieldID])
	assert.Equal(t, "Hello", doc["title"])
	assert.Equal(t, created, doc[FieldTimestamp])
	assert.NotContains(t, doc, "_id")
}

func TestSanitizeFields(t *testing.T) {
	tests := []struct {
		name   string
		fields Document
		want   Document
	}{
		{
			name:   "plain fields pass through",
			fields: Document{"title": "A", "views": 3},
			want:   Document{"title": "A", "views": 3},
		},
		{
			name:   "identity keys are stripped",
			fields: Document{"id": "abc", "_id": "def", "title": "A"},
			want:   Document{"title": "A"},
		},
		{
			name:   "empty payload stays empty",
			fields: Document{},
			want:   Document{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeFields(tt.fields))
		})
	}
}

func TestMemoryStore_CreateThenGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	created, err := s.Create(ctx, "blogs", Document{"title": "A", "author": "jo"})
	require.NoError(t, err)

	id, ok := created[FieldID].(string)
	require.True(t, ok)
	require.NotEmpty(t, id)
	assert.Contains(t, created, FieldTimestamp)

	got, err := s.GetByID(ctx, "blogs", id)
	require.NoError(t, err)

	// Stored fields are a superset of the payload, plus the stamp.
	assert.Equal(t, "A", got["title"])
	assert.Equal(t, "jo", got["author"])
	assert.Contains(t, got, FieldTimestamp)
}

func TestMemoryStore_ListAllOrdersNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	clock := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	})

	for _, title := range []string{"first", "second", "third"} {
		_, err := s.Create(ctx, "blogs", Document{"title": title})
		require.NoError(t, err)
	}

	docs, err := s.ListAll(ctx, "blogs")
	require.NoError(t, err)
	require.Len(t, docs, 3)

	assert.Equal(t, "third", docs[0]["title"])
	assert.Equal(t, "second", docs[1]["title"])
	assert.Equal(t, "first", docs[2]["title"])
}

func TestMemoryStore_UpdateMergesAndStamps(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	clock := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	})

	created, err := s.Create(ctx, "blogs", Document{"title": "A", "author": "jo"})
	require.NoError(t, err)
	id := created[FieldID].(string)
	createdAt := created[FieldTimestamp].(time.Time)

	updated, err := s.Update(ctx, "blogs", id, Document{"title": "B"})
	require.NoError(t, err)

	// The update result carries only the merge payload plus the stamp.
	assert.Equal(t, "B", updated["title"])
	assert.Equal(t, id, updated[FieldID])
	updatedAt := updated[FieldUpdatedTimestamp].(time.Time)
	assert.True(t, updatedAt.After(createdAt))

	// The stored document preserves fields the update didn't mention.
	got, err := s.GetByID(ctx, "blogs", id)
	require.NoError(t, err)
	assert.Equal(t, "B", got["title"])
	assert.Equal(t, "jo", got["author"])
}

func TestMemoryStore_UpdateMissingIDFails(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Update(context.Background(), "blogs", "missing", Document{"title": "B"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_DeleteIsIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	created, err := s.Create(ctx, "blogs", Document{"title": "A"})
	require.NoError(t, err)
	id := created[FieldID].(string)

	require.NoError(t, s.Delete(ctx, "blogs", id))

	_, err = s.GetByID(ctx, "blogs", id)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is still a success.
	require.NoError(t, s.Delete(ctx, "blogs", id))
}
