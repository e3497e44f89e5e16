package hooks

import (
	"strings"

	"github.com/michael-freling/claude-code-hooks/internal/config"
)

// pathPatternRule blocks file paths matching a configured pattern.
type pathPatternRule struct {
	pattern config.Pattern
}

// NewPathPatternRule creates a rule from a [[block.path]] config entry.
func NewPathPatternRule(pattern config.Pattern) Rule {
	return &pathPatternRule{pattern: pattern}
}

func (r *pathPatternRule) Name() string {
	return r.pattern.Name
}

func (r *pathPatternRule) Description() string {
	return "Blocks file paths matching " + r.pattern.Regex.String()
}

func (r *pathPatternRule) Evaluate(desc *OperationDescriptor) (*RuleResult, error) {
	if !desc.ToolName.IsFileTool() || desc.FilePath == "" {
		return NewAllowedResult(), nil
	}
	if !matchesExtension(r.pattern.Extensions, desc.Ext()) {
		return NewAllowedResult(), nil
	}
	if !r.pattern.Regex.MatchString(desc.FilePath) {
		return NewAllowedResult(), nil
	}
	return NewBlockedResult(r.Name(), r.pattern.Message), nil
}

// contentPatternRule blocks proposed content matching a configured pattern.
type contentPatternRule struct {
	pattern  config.Pattern
	maxBytes int64
}

// NewContentPatternRule creates a rule from a [[block.content]] config entry.
// Content larger than maxBytes is not scanned.
func NewContentPatternRule(pattern config.Pattern, maxBytes int64) Rule {
	return &contentPatternRule{pattern: pattern, maxBytes: maxBytes}
}

func (r *contentPatternRule) Name() string {
	return r.pattern.Name
}

func (r *contentPatternRule) Description() string {
	return "Blocks content matching " + r.pattern.Regex.String()
}

func (r *contentPatternRule) Evaluate(desc *OperationDescriptor) (*RuleResult, error) {
	if !desc.ToolName.IsFileTool() || desc.FilePath == "" || desc.ProposedContent == "" {
		return NewAllowedResult(), nil
	}
	if r.maxBytes > 0 && int64(len(desc.ProposedContent)) > r.maxBytes {
		return NewAllowedResult(), nil
	}
	if !matchesExtension(r.pattern.Extensions, desc.Ext()) {
		return NewAllowedResult(), nil
	}
	if !r.pattern.Regex.MatchString(desc.ProposedContent) {
		return NewAllowedResult(), nil
	}
	return NewBlockedResult(r.Name(), r.pattern.Message), nil
}

// matchesExtension reports whether ext is in extensions; an empty list matches all.
func matchesExtension(extensions []string, ext string) bool {
	if len(extensions) == 0 {
		return true
	}
	for _, e := range extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}
