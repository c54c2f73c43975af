// Package store implements the record access layer over the document
// store.
//
// It translates domain intents (create, list, fetch, merge-update,
// delete) into collection-level MongoDB calls, stamping server-side
// timestamp fields and shaping stored documents for API responses
// (store `_id` surfaces as an `id` hex string).
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is a schemaless record: free-form fields supplied by the
// caller plus server-assigned fields added by this layer.
type Document map[string]interface{}

// Server-assigned field names.
const (
	// FieldID is the client-facing identity field on shaped documents.
	FieldID = "id"

	// FieldTimestamp is stamped on create.
	FieldTimestamp = "timestamp"

	// FieldUpdatedTimestamp is stamped on every update.
	FieldUpdatedTimestamp = "updatedTimestamp"
)

// ErrNotFound reports that a lookup by id matched no document.
// Absence is a distinct outcome, not a store failure.
var ErrNotFound = errors.New("document not found")

// Store is the record access contract consumed by the service layer.
//
// All operations act on a named collection; documents are never
// replaced wholesale, updates merge the supplied fields only.
type Store interface {
	// Create stamps a creation timestamp, inserts the fields into the
	// collection, and returns the shaped document including its new id.
	Create(ctx context.Context, collection string, fields Document) (Document, error)

	// ListAll returns every document in the collection ordered by
	// creation timestamp descending (newest first). No pagination.
	ListAll(ctx context.Context, collection string) ([]Document, error)

	// GetByID returns the single document with the given id, or
	// ErrNotFound when no such document exists.
	GetByID(ctx context.Context, collection, id string) (Document, error)

	// Update merges the supplied fields plus a fresh update timestamp
	// into the existing document and returns the shaped merge payload.
	// Updating a missing id is a failure, not a silent no-op.
	Update(ctx context.Context, collection, id string, fields Document) (Document, error)

	// Delete removes the document. Deleting a missing id succeeds.
	Delete(ctx context.Context, collection, id string) error
}

// sanitizeFields copies caller-supplied fields, dropping any identity
// keys. Document ids are always store-assigned.
func sanitizeFields(fields Document) Document {
	out := make(Document, len(fields))
	for k, v := range fields {
		if k == FieldID || k == "_id" {
			continue
		}
		out[k] = v
	}
	return out
}

// shapeStored converts a raw stored document into its API shape:
// `_id` becomes an `id` hex string and BSON datetimes become time.Time
// in UTC so they serialize as RFC 3339 strings.
func shapeStored(raw bson.M) Document {
	out := make(Document, len(raw))
	for k, v := range raw {
		if k == "_id" {
			out[FieldID] = idToString(v)
			continue
		}
		out[k] = normalizeValue(v)
	}
	return out
}

func idToString(v interface{}) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return ""
	}
}

func normalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case primitive.DateTime:
		return val.Time().UTC()
	case time.Time:
		return val.UTC()
	default:
		return v
	}
}
