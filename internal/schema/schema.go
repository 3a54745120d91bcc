// Package schema validates annotation payloads against the wire schema.
// The reference store server applies it on ingress, and `penwell validate`
// applies it to annotation files on disk.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed annotation.schema.json
var annotationSchema string

var compiled = mustCompile()

func mustCompile() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("annotation.schema.json", strings.NewReader(annotationSchema)); err != nil {
		panic(fmt.Sprintf("schema: failed to load annotation schema: %v", err))
	}
	schema, err := compiler.Compile("annotation.schema.json")
	if err != nil {
		panic(fmt.Sprintf("schema: failed to compile annotation schema: %v", err))
	}
	return schema
}

// ValidateAnnotation checks one annotation JSON document against the wire
// schema.
func ValidateAnnotation(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to decode annotation JSON: %w", err)
	}
	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("annotation does not match schema: %w", err)
	}
	return nil
}

// ValidateAnnotations checks a JSON array of annotations, reporting the
// index of the first failing element.
func ValidateAnnotations(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode annotation list: %w", err)
	}
	for i, item := range raw {
		if err := ValidateAnnotation(item); err != nil {
			return fmt.Errorf("annotation %d: %w", i, err)
		}
	}
	return nil
}
