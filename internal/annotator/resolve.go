package annotator

import "github.com/penwell/penwell/internal/annotation"

// Profile statically describes which annotator applies to a family of
// viewers and which annotation types it can carry.
type Profile struct {
	// Name identifies the annotator family.
	Name string
	// Viewers are the viewer names this profile serves.
	Viewers []string
	// Types is every annotation type the profile supports.
	Types []annotation.Type
	// DefaultTypes are enabled when no per-viewer configuration overrides
	// them.
	DefaultTypes []annotation.Type
}

// profiles is the static annotator table. Draw and region stay off by
// default on documents; hosts opt in via viewer options.
var profiles = []Profile{
	{
		Name:    "Document",
		Viewers: []string{"Document", "Presentation"},
		Types: []annotation.Type{
			annotation.TypePoint,
			annotation.TypeHighlight,
			annotation.TypeHighlightComment,
			annotation.TypeDraw,
		},
		DefaultTypes: []annotation.Type{
			annotation.TypePoint,
			annotation.TypeHighlight,
			annotation.TypeHighlightComment,
		},
	},
	{
		Name:    "Image",
		Viewers: []string{"Image", "MultiImage"},
		Types: []annotation.Type{
			annotation.TypePoint,
			annotation.TypeRegion,
		},
		DefaultTypes: []annotation.Type{
			annotation.TypePoint,
			annotation.TypeRegion,
		},
	},
}

// Options is the per-viewer annotation configuration.
type Options struct {
	// Enabled turns annotations off for the viewer entirely.
	Enabled bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	// EnabledTypes restricts the annotation types, intersected with the
	// profile's supported types in the configured order. Empty keeps the
	// profile defaults.
	EnabledTypes []annotation.Type `mapstructure:"enabled_types" yaml:"enabled_types" json:"enabled_types"`
}

// Resolved is the outcome of annotator resolution: the profile that applies
// and the effective annotation types, in order.
type Resolved struct {
	Name  string
	Types []annotation.Type
}

// Resolve decides which annotator applies for a viewer and file, honoring
// per-viewer options. Returns nil when the viewer has no profile, the
// options disable annotations, or the permissions allow neither viewing
// nor creating annotations.
func Resolve(perms annotation.FilePermissions, viewerName string, opts *Options) *Resolved {
	if !perms.CanView() && !perms.CanAnnotate && !perms.CanCreateAnnotations {
		return nil
	}
	if opts != nil && !opts.Enabled {
		return nil
	}

	var profile *Profile
	for i := range profiles {
		for _, v := range profiles[i].Viewers {
			if v == viewerName {
				profile = &profiles[i]
				break
			}
		}
		if profile != nil {
			break
		}
	}
	if profile == nil {
		return nil
	}

	types := profile.DefaultTypes
	if opts != nil && len(opts.EnabledTypes) > 0 {
		supported := make(map[annotation.Type]struct{}, len(profile.Types))
		for _, t := range profile.Types {
			supported[t] = struct{}{}
		}
		types = nil
		for _, t := range opts.EnabledTypes {
			if _, ok := supported[t]; ok {
				types = append(types, t)
			}
		}
	}
	if len(types) == 0 {
		return nil
	}
	return &Resolved{
		Name:  profile.Name,
		Types: append([]annotation.Type(nil), types...),
	}
}
