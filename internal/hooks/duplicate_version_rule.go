package hooks

import (
	"fmt"
	"path/filepath"
	"regexp"
)

// duplicateVersionPattern matches versioned copies such as Button_improved.tsx,
// api_enhanced.ts or utils_v2.js.
var duplicateVersionPattern = regexp.MustCompile(`(?i)_improved\.|_enhanced\.|_v\d+\.`)

// IsDuplicateVersionPath reports whether path looks like a versioned copy of another file.
func IsDuplicateVersionPath(path string) bool {
	return path != "" && duplicateVersionPattern.MatchString(path)
}

// originalName strips the version marker from a file name.
func originalName(base string) string {
	return duplicateVersionPattern.ReplaceAllString(base, ".")
}

// duplicateVersionRule blocks writes to _improved/_enhanced/_vN copies of files.
type duplicateVersionRule struct{}

// NewDuplicateVersionRule creates a new rule that blocks duplicate version files.
func NewDuplicateVersionRule() Rule {
	return &duplicateVersionRule{}
}

// Name returns the unique identifier for this rule.
func (r *duplicateVersionRule) Name() string {
	return "duplicate-version"
}

// Description returns a human-readable description of what this rule does.
func (r *duplicateVersionRule) Description() string {
	return "Blocks _improved, _enhanced and _vN copies of existing files"
}

// Evaluate checks if the file path is a duplicate version of another file.
func (r *duplicateVersionRule) Evaluate(desc *OperationDescriptor) (*RuleResult, error) {
	if !desc.ToolName.IsFileTool() || !IsDuplicateVersionPath(desc.FilePath) {
		return NewAllowedResult(), nil
	}

	base := filepath.Base(desc.FilePath)
	return NewBlockedResult(
		r.Name(),
		fmt.Sprintf("Duplicate version file detected: %s (original: %s). Do not create _improved, _enhanced or _vN copies. Edit the original file.",
			base, originalName(base)),
	), nil
}
