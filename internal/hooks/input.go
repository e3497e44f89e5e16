package hooks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrEmptyInput is returned when the host sends no payload.
	ErrEmptyInput = errors.New("empty hook input")
	// ErrInvalidInput is returned when the payload does not match the hook input schema.
	ErrInvalidInput = errors.New("invalid hook input")
)

// ToolInput represents the hook payload sent by Claude Code.
type ToolInput struct {
	SessionID     string          `json:"session_id"`
	Cwd           string          `json:"cwd"`
	HookEventName string          `json:"hook_event_name"`
	ToolName      string          `json:"tool_name"`
	ToolUseID     string          `json:"tool_use_id"`
	ToolInput     json.RawMessage `json:"tool_input"`
	parsed        map[string]interface{}
}

// ParseToolInput reads, validates and parses tool input JSON from a reader.
func ParseToolInput(reader io.Reader) (*ToolInput, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return ParseToolInputBytes(data)
}

// ParseToolInputBytes validates and parses a tool input JSON document.
func ParseToolInputBytes(data []byte) (*ToolInput, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyInput
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	if err := validateInput(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var input ToolInput
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}

	if len(input.ToolInput) > 0 && !bytes.Equal(bytes.TrimSpace(input.ToolInput), []byte("null")) {
		var parsed map[string]interface{}
		if err := json.Unmarshal(input.ToolInput, &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse tool_input: %w", err)
		}
		input.parsed = parsed
	}

	return &input, nil
}

// GetStringArg retrieves a string argument from the tool input.
// Returns the value and true if found, empty string and false if not found.
func (t *ToolInput) GetStringArg(name string) (string, bool) {
	if t.parsed == nil {
		return "", false
	}

	value, ok := t.parsed[name]
	if !ok {
		return "", false
	}

	strValue, ok := value.(string)
	if !ok {
		return "", false
	}

	return strValue, true
}

// GetEditStrings returns the new_string values of a MultiEdit edits array.
func (t *ToolInput) GetEditStrings() []string {
	if t.parsed == nil {
		return nil
	}

	edits, ok := t.parsed["edits"].([]interface{})
	if !ok {
		return nil
	}

	result := make([]string, 0, len(edits))
	for _, edit := range edits {
		fields, ok := edit.(map[string]interface{})
		if !ok {
			continue
		}
		if s, ok := fields["new_string"].(string); ok {
			result = append(result, s)
		}
	}
	return result
}
