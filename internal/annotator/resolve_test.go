package annotator

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/penwell/penwell/internal/annotation"
)

func TestResolve(t *testing.T) {
	viewPerms := annotation.FilePermissions{CanViewAnnotationsSelf: true}
	fullPerms := annotation.FilePermissions{
		CanAnnotate:           true,
		CanViewAnnotationsAll: true,
	}

	tests := []struct {
		name   string
		perms  annotation.FilePermissions
		viewer string
		opts   *Options
		want   *Resolved
	}{
		{
			name:   "document defaults",
			perms:  viewPerms,
			viewer: "Document",
			want: &Resolved{Name: "Document", Types: []annotation.Type{
				annotation.TypePoint,
				annotation.TypeHighlight,
				annotation.TypeHighlightComment,
			}},
		},
		{
			name:   "presentation shares the document profile",
			perms:  fullPerms,
			viewer: "Presentation",
			want: &Resolved{Name: "Document", Types: []annotation.Type{
				annotation.TypePoint,
				annotation.TypeHighlight,
				annotation.TypeHighlightComment,
			}},
		},
		{
			name:   "image defaults",
			perms:  fullPerms,
			viewer: "Image",
			want: &Resolved{Name: "Image", Types: []annotation.Type{
				annotation.TypePoint,
				annotation.TypeRegion,
			}},
		},
		{
			name:   "multi image shares the image profile",
			perms:  fullPerms,
			viewer: "MultiImage",
			want: &Resolved{Name: "Image", Types: []annotation.Type{
				annotation.TypePoint,
				annotation.TypeRegion,
			}},
		},
		{
			name:   "options disable annotations",
			perms:  fullPerms,
			viewer: "Document",
			opts:   &Options{Enabled: false},
			want:   nil,
		},
		{
			name:   "enabled types keep configured order",
			perms:  fullPerms,
			viewer: "Document",
			opts: &Options{Enabled: true, EnabledTypes: []annotation.Type{
				annotation.TypeDraw,
				annotation.TypeRegion, // not supported on documents
				annotation.TypePoint,
			}},
			want: &Resolved{Name: "Document", Types: []annotation.Type{
				annotation.TypeDraw,
				annotation.TypePoint,
			}},
		},
		{
			name:   "empty intersection",
			perms:  fullPerms,
			viewer: "Document",
			opts: &Options{Enabled: true, EnabledTypes: []annotation.Type{
				annotation.TypeRegion,
			}},
			want: nil,
		},
		{
			name:   "unknown viewer",
			perms:  fullPerms,
			viewer: "Dicom",
			want:   nil,
		},
		{
			name:   "no permissions",
			perms:  annotation.FilePermissions{},
			viewer: "Document",
			want:   nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Resolve(tc.perms, tc.viewer, tc.opts)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Resolve mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
