// Package messages is the user-facing message catalog. Errors surfaced
// through the annotator error event carry these strings; callers reference
// messages by ID so a host application can swap in translated catalogs.
package messages

// Message IDs.
const (
	CreateError    = "annotations_create_error"
	DeleteError    = "annotations_delete_error"
	LoadError      = "annotations_load_error"
	AuthError      = "annotations_authorization_error"
	SaveError      = "annotations_save_error"
	PlainHighlight = "annotations_plain_highlight"
)

var catalog = map[string]string{
	CreateError:    "We're sorry, the annotation could not be created.",
	DeleteError:    "We're sorry, the annotation could not be deleted.",
	LoadError:      "We're sorry, annotations failed to load for this file.",
	AuthError:      "Your session has expired. Please refresh the page.",
	SaveError:      "We're sorry, the comment could not be posted.",
	PlainHighlight: "Highlight",
}

// Get returns the catalog string for id, or the id itself when no entry
// exists so a missing translation never renders as an empty message.
func Get(id string) string {
	if s, ok := catalog[id]; ok {
		return s
	}
	return id
}
