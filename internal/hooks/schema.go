package hooks

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const inputSchemaURL = "https://claude-hooks.local/schemas/hook-input.schema.json"

// inputSchema describes the fields the hooks read from the host payload.
// Unknown fields are allowed; the host adds new ones over time.
const inputSchema = `{
  "type": "object",
  "required": ["tool_name"],
  "properties": {
    "session_id": {"type": "string"},
    "transcript_path": {"type": "string"},
    "cwd": {"type": "string"},
    "hook_event_name": {"type": "string"},
    "tool_name": {"type": "string", "minLength": 1},
    "tool_use_id": {"type": "string"},
    "tool_input": {
      "type": ["object", "null"],
      "properties": {
        "file_path": {"type": "string"},
        "content": {"type": "string"},
        "old_string": {"type": "string"},
        "new_string": {"type": "string"},
        "command": {"type": "string"},
        "edits": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "old_string": {"type": "string"},
              "new_string": {"type": "string"}
            }
          }
        }
      }
    }
  }
}`

var (
	compiledSchema     *jsonschema.Schema
	compiledSchemaErr  error
	compiledSchemaOnce sync.Once
)

func loadInputSchema() (*jsonschema.Schema, error) {
	compiledSchemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(inputSchemaURL, strings.NewReader(inputSchema)); err != nil {
			compiledSchemaErr = fmt.Errorf("hook input schema load failed: %w", err)
			return
		}
		compiledSchema, compiledSchemaErr = c.Compile(inputSchemaURL)
		if compiledSchemaErr != nil {
			compiledSchemaErr = fmt.Errorf("hook input schema compile failed: %w", compiledSchemaErr)
		}
	})
	return compiledSchema, compiledSchemaErr
}

// validateInput checks a decoded JSON document against the hook input schema.
func validateInput(doc interface{}) error {
	schema, err := loadInputSchema()
	if err != nil {
		return err
	}
	return schema.Validate(doc)
}
