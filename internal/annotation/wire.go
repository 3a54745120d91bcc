package annotation

import (
	"encoding/json"
	"fmt"
)

// UnmarshalLocation decodes the location payload for an annotation of the
// given type. A missing payload decodes to nil without error; callers treat
// a nil location as an invalid annotation at registration time.
func UnmarshalLocation(t Type, data []byte) (Location, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}

	switch t {
	case TypePoint:
		var loc PointLocation
		if err := json.Unmarshal(data, &loc); err != nil {
			return nil, fmt.Errorf("decoding point location: %w", err)
		}
		return loc, nil
	case TypeHighlight, TypeHighlightComment:
		var loc HighlightLocation
		if err := json.Unmarshal(data, &loc); err != nil {
			return nil, fmt.Errorf("decoding highlight location: %w", err)
		}
		return loc, nil
	case TypeDraw:
		var loc DrawLocation
		if err := json.Unmarshal(data, &loc); err != nil {
			return nil, fmt.Errorf("decoding draw location: %w", err)
		}
		return loc, nil
	case TypeRegion:
		var loc RegionLocation
		if err := json.Unmarshal(data, &loc); err != nil {
			return nil, fmt.Errorf("decoding region location: %w", err)
		}
		return loc, nil
	default:
		return nil, fmt.Errorf("unknown annotation type %q", t)
	}
}

// MarshalJSON emits the annotation with its location inlined under
// "location", discriminated by the top-level "type" field.
func (a Annotation) MarshalJSON() ([]byte, error) {
	type alias Annotation
	var loc json.RawMessage
	if a.Location != nil {
		b, err := json.Marshal(a.Location)
		if err != nil {
			return nil, fmt.Errorf("encoding location: %w", err)
		}
		loc = b
	}
	return json.Marshal(struct {
		alias
		Location json.RawMessage `json:"location,omitempty"`
	}{alias(a), loc})
}

// UnmarshalJSON decodes the annotation and its type-discriminated location.
func (a *Annotation) UnmarshalJSON(data []byte) error {
	type alias Annotation
	aux := struct {
		*alias
		Location json.RawMessage `json:"location"`
	}{alias: (*alias)(a)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	loc, err := UnmarshalLocation(a.Type, aux.Location)
	if err != nil {
		return err
	}
	a.Location = loc
	return nil
}
