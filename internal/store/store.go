// Package store defines the key-value capability the question repository
// persists through, and an in-memory implementation of it.
//
// Implementations keep records in insertion order: GetAll must return
// records in the order they were first Put, regardless of how the backend
// iterates internally.
package store

import (
	"context"
	"errors"

	"github.com/idilsaglam/qotd/internal/model"
)

var (
	// ErrStorageUnavailable is returned when the backing store cannot be opened.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrNotFound is returned when a record with the requested id does not exist.
	ErrNotFound = errors.New("question not found")
)

// Store persists question records keyed by ID.
type Store interface {
	// Get returns the record with the given id, or ErrNotFound.
	Get(ctx context.Context, id int) (model.Question, error)

	// GetAll returns every record in insertion order.
	GetAll(ctx context.Context) ([]model.Question, error)

	// Put inserts or replaces a record. A replaced record keeps its position.
	Put(ctx context.Context, q model.Question) error

	// PutAll writes all records as one batch.
	PutAll(ctx context.Context, qs []model.Question) error

	// Update runs fn against the stored record and writes the result back
	// atomically. Returns ErrNotFound if id does not exist. The ID field
	// is not changeable.
	Update(ctx context.Context, id int, fn func(q *model.Question) error) error

	// Close releases the underlying resources.
	Close() error
}

// OpenFunc opens a Store. Callers treat any error as ErrStorageUnavailable.
type OpenFunc func(ctx context.Context) (Store, error)
