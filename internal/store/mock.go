package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/penwell/penwell/internal/annotation"
)

// Mock is an in-memory Store for tests. Zero value is usable; hooks let a
// test force failures or observe calls.
type Mock struct {
	mu   sync.Mutex
	anns map[string]annotation.Annotation

	// Latency is applied to every call before it runs.
	Latency time.Duration
	// CreateErr, when set, fails every Create.
	CreateErr error
	// DeleteErr, when set, fails every Delete.
	DeleteErr error

	// Creates and Deletes count completed calls.
	Creates int
	Deletes int
}

// NewMock returns an empty mock store.
func NewMock() *Mock {
	return &Mock{anns: make(map[string]annotation.Annotation)}
}

// Create implements Store.
func (m *Mock) Create(ctx context.Context, ann annotation.Annotation) (annotation.Annotation, error) {
	if err := m.wait(ctx); err != nil {
		return annotation.Annotation{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return annotation.Annotation{}, m.CreateErr
	}
	if ann.ID == "" {
		ann.ID = uuid.New().String()
	}
	if ann.CreatedAt.IsZero() {
		ann.CreatedAt = time.Now()
	}
	ann.Permissions = annotation.Permissions{CanDelete: true, CanEdit: true}
	if m.anns == nil {
		m.anns = make(map[string]annotation.Annotation)
	}
	m.anns[ann.ID] = ann
	m.Creates++
	return ann, nil
}

// Delete implements Store.
func (m *Mock) Delete(ctx context.Context, id string) error {
	if err := m.wait(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.anns, id)
	m.Deletes++
	return nil
}

// List implements Store.
func (m *Mock) List(ctx context.Context, fileID string) ([]annotation.Annotation, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []annotation.Annotation
	for _, ann := range m.anns {
		if fileID == "" || ann.FileID == fileID {
			out = append(out, ann)
		}
	}
	return out, nil
}

func (m *Mock) wait(ctx context.Context) error {
	if m.Latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(m.Latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
