package messages

import "testing"

func TestGet(t *testing.T) {
	if got := Get(CreateError); got != "We're sorry, the annotation could not be created." {
		t.Errorf("Get(CreateError) = %q", got)
	}
	if got := Get(PlainHighlight); got != "Highlight" {
		t.Errorf("Get(PlainHighlight) = %q", got)
	}
	// Unknown IDs fall back to the ID so the UI never shows nothing.
	if got := Get("annotations_unknown"); got != "annotations_unknown" {
		t.Errorf("Get(unknown) = %q, want the id back", got)
	}
}
