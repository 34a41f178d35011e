package content

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// bundleSchema constrains the shape of a module content bundle. Bundles that
// fail validation are treated as absent by the registry.
const bundleSchema = `{
	"type": "object",
	"required": ["id", "title", "steps"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"title": {"type": "string", "minLength": 1},
		"description": {"type": "string"},
		"steps": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["id", "title", "kind"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"title": {"type": "string"},
					"body": {"type": "string"},
					"kind": {"enum": ["concept", "quiz", "challenge", "playground"]},
					"required": {"type": "boolean"},
					"challengeId": {"type": "string"},
					"quiz": {
						"type": "object",
						"required": ["question", "options", "correctIndex"],
						"properties": {
							"question": {"type": "string"},
							"options": {"type": "array", "items": {"type": "string"}, "minItems": 2, "maxItems": 4},
							"correctIndex": {"type": "integer", "minimum": 0, "maximum": 3}
						}
					}
				}
			}
		},
		"challenges": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "kind"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"kind": {"type": "string"},
					"title": {"type": "string"},
					"prompt": {"type": "string"},
					"completionCriteria": {
						"type": "object",
						"properties": {
							"type": {"type": "string"},
							"target": {"type": "number"},
							"metric": {"type": "string"}
						}
					},
					"targetPoint": {
						"type": "object",
						"properties": {
							"x": {"type": "number"},
							"y": {"type": "number"}
						}
					},
					"params": {"type": "object", "additionalProperties": {"type": "number"}}
				}
			}
		},
		"playground": {
			"type": "object",
			"properties": {
				"controls": {"type": "object", "additionalProperties": {"type": "number"}}
			}
		}
	}
}`

var (
	compiledBundleSchema *jsonschema.Schema
	compileBundleOnce    sync.Once
	compileBundleErr     error
)

// validateBundle checks raw JSON against the bundle schema.
func validateBundle(raw []byte) error {
	compileBundleOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(bundleSchema), &def); err != nil {
			compileBundleErr = fmt.Errorf("parse bundle schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://module-bundle.json", def); err != nil {
			compileBundleErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledBundleSchema, compileBundleErr = c.Compile("schema://module-bundle.json")
	})
	if compileBundleErr != nil {
		return compileBundleErr
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := compiledBundleSchema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
