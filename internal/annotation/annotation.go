// Package annotation defines the persisted annotation model: annotations,
// their permissions, and the location variants that anchor a thread to a
// spot on a rendered page.
package annotation

import "time"

// Type identifies one annotation mode.
type Type string

const (
	TypePoint            Type = "point"
	TypeHighlight        Type = "highlight"
	TypeHighlightComment Type = "highlight-comment"
	TypeDraw             Type = "draw"
	TypeRegion           Type = "region"
)

// Valid reports whether t is one of the known annotation types.
func (t Type) Valid() bool {
	switch t {
	case TypePoint, TypeHighlight, TypeHighlightComment, TypeDraw, TypeRegion:
		return true
	}
	return false
}

// Permissions gates what the current user may do to a single annotation.
type Permissions struct {
	CanDelete bool `json:"can_delete"`
	CanEdit   bool `json:"can_edit"`
}

// FilePermissions gates annotation behavior for the whole file.
type FilePermissions struct {
	CanAnnotate            bool `json:"can_annotate"`
	CanCreateAnnotations   bool `json:"can_create_annotations"`
	CanViewAnnotationsAll  bool `json:"can_view_annotations_all"`
	CanViewAnnotationsSelf bool `json:"can_view_annotations_self"`
}

// CanView reports whether any annotations should render at all.
func (p FilePermissions) CanView() bool {
	return p.CanViewAnnotationsAll || p.CanViewAnnotationsSelf
}

// User is the author of an annotation.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Annotation is a single comment/mark within a thread.
type Annotation struct {
	ID          string      `json:"annotation_id"`
	ThreadID    string      `json:"thread_id"`
	FileID      string      `json:"file_id"`
	Type        Type        `json:"type"`
	Text        string      `json:"text"`
	Location    Location    `json:"-"`
	CreatedAt   time.Time   `json:"created_at"`
	User        User        `json:"user"`
	Permissions Permissions `json:"permissions"`
}

// IsComment reports whether the annotation carries user-entered text, as
// opposed to a plain mark (e.g. a bare highlight).
func (a Annotation) IsComment() bool { return a.Text != "" }
