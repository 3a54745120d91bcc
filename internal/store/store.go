// Package store talks to the annotation backend. Threads persist and delete
// annotations through the Store interface; the HTTP client here is the
// production implementation, and Mock serves tests.
package store

import (
	"context"

	"github.com/penwell/penwell/internal/annotation"
)

// Store is the persistence surface the annotation engine consumes.
type Store interface {
	// Create persists a new annotation and returns it with server-assigned
	// fields (ID, created time, permissions) populated.
	Create(ctx context.Context, ann annotation.Annotation) (annotation.Annotation, error)
	// Delete removes an annotation by ID.
	Delete(ctx context.Context, id string) error
	// List fetches every annotation visible on a file.
	List(ctx context.Context, fileID string) ([]annotation.Annotation, error)
}
