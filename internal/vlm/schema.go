package vlm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildIdentityJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. It is sent to the inference service as a structured-output
// constraint and also used locally to validate what came back.
func BuildIdentityJSONSchema() map[string]any {
	props := map[string]any{
		"ID_type":   map[string]any{"type": "string"},
		"dl_number": map[string]any{"type": "string"},
		"expiry":    map[string]any{"type": "string"},
		"name":      map[string]any{"type": "string"},
		"dob":       map[string]any{"type": "string"},
		"address":   map[string]any{"type": "string"},
		"sex":       map[string]any{"type": "string"},
		"height":    map[string]any{"type": "string"},
		"weight":    map[string]any{"type": "string"},
		"hair":      map[string]any{"type": "string"},
		"eyes":      map[string]any{"type": "string"},
		"altered":   map[string]any{"type": "boolean"},
		"face_bbox": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "number"},
		},
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   []string{"ID_type", "name", "dob", "altered"},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
