package server

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/penwell/penwell/internal/annotation"
)

// MemStore is the in-memory annotation table behind the reference server.
type MemStore struct {
	mu   sync.RWMutex
	anns map[string]annotation.Annotation
}

// NewMemStore returns an empty store.
func NewMemStore() *MemStore {
	return &MemStore{anns: make(map[string]annotation.Annotation)}
}

// Add assigns server-side fields and stores the annotation.
func (m *MemStore) Add(ann annotation.Annotation) annotation.Annotation {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ann.ID == "" {
		ann.ID = uuid.New().String()
	}
	if ann.ThreadID == "" {
		ann.ThreadID = uuid.New().String()
	}
	if ann.CreatedAt.IsZero() {
		ann.CreatedAt = time.Now().UTC()
	}
	ann.Permissions = annotation.Permissions{CanDelete: true, CanEdit: true}
	m.anns[ann.ID] = ann
	return ann
}

// Get returns one annotation by ID.
func (m *MemStore) Get(id string) (annotation.Annotation, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ann, ok := m.anns[id]
	return ann, ok
}

// Remove deletes an annotation, reporting whether it existed.
func (m *MemStore) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.anns[id]; !ok {
		return false
	}
	delete(m.anns, id)
	return true
}

// List returns the annotations for a file, oldest first. An empty fileID
// returns everything.
func (m *MemStore) List(fileID string) []annotation.Annotation {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]annotation.Annotation, 0, len(m.anns))
	for _, ann := range m.anns {
		if fileID == "" || ann.FileID == fileID {
			out = append(out, ann)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Len returns the number of stored annotations.
func (m *MemStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.anns)
}
