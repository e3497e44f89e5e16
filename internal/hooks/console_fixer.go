package hooks

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// consoleCallPattern matches console.log/error/warn/info calls.
var consoleCallPattern = regexp.MustCompile(`\bconsole\.(log|error|warn|info)\(`)

// DefaultLoggerName is the identifier console calls are rewritten to.
const DefaultLoggerName = "logger"

// consoleFixer rewrites console.* calls to a project logger.
type consoleFixer struct {
	loggerName string
	extensions map[string]bool
}

// NewConsoleFixer creates a fixer rewriting console calls to loggerName in
// files with one of the given extensions.
func NewConsoleFixer(loggerName string, extensions []string) Fixer {
	if loggerName == "" {
		loggerName = DefaultLoggerName
	}
	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		exts[strings.ToLower(ext)] = true
	}
	return &consoleFixer{loggerName: loggerName, extensions: exts}
}

// Name returns the unique identifier for this fixer.
func (f *consoleFixer) Name() string {
	return "console-to-logger"
}

// Description returns a human-readable description of what this fixer does.
func (f *consoleFixer) Description() string {
	return fmt.Sprintf("Rewrites console.(log|error|warn|info) calls to %s.*", f.loggerName)
}

// Fix rewrites every console call not accessed as a member of another object.
func (f *consoleFixer) Fix(desc *OperationDescriptor, content string) (*FixResult, error) {
	if desc.FilePath == "" || content == "" || !f.extensions[desc.Ext()] {
		return NewUnchangedFix(content), nil
	}

	matches := consoleCallPattern.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return NewUnchangedFix(content), nil
	}

	var sb strings.Builder
	sb.Grow(len(content))
	last := 0
	count := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		// window.console.log( and $console.log( are left alone.
		if start > 0 && (content[start-1] == '.' || content[start-1] == '$') {
			continue
		}
		sb.WriteString(content[last:start])
		sb.WriteString(f.loggerName)
		sb.WriteByte('.')
		sb.WriteString(content[m[2]:m[3]])
		sb.WriteByte('(')
		last = end
		count++
	}
	if count == 0 {
		return NewUnchangedFix(content), nil
	}
	sb.WriteString(content[last:])

	return NewChangedFix(
		sb.String(),
		fmt.Sprintf("Replaced %d console call(s) with %s.* in %s", count, f.loggerName, filepath.Base(desc.FilePath)),
	), nil
}
