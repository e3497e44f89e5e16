package hooks

import (
	"fmt"
	"strings"

	"github.com/michael-freling/claude-code-hooks/internal/logger"
)

// Processor runs the rule and fix engines for a single operation.
type Processor struct {
	rules           *ruleEngine
	fixers          *fixEngine
	fs              FileSystem
	maxContentBytes int64
}

// NewProcessor creates a processor. maxContentBytes of zero disables the size limit.
func NewProcessor(rules []Rule, fixers []Fixer, fs FileSystem, maxContentBytes int64) *Processor {
	if fs == nil {
		fs = NewOSFileSystem()
	}
	return &Processor{
		rules:           NewRuleEngine(rules...),
		fixers:          NewFixEngine(fixers...),
		fs:              fs,
		maxContentBytes: maxContentBytes,
	}
}

// Process dispatches to the entry point for the descriptor's stage.
func (p *Processor) Process(desc *OperationDescriptor) Verdict {
	switch desc.Stage {
	case StagePreToolUse:
		return p.PreToolUse(desc)
	case StagePostToolUse:
		return p.PostToolUse(desc)
	}
	logger.Debug("unknown stage, allowing", "stage", desc.Stage)
	return AllowVerdict()
}

// PreToolUse evaluates the blocking rules. Any internal failure allows the operation.
func (p *Processor) PreToolUse(desc *OperationDescriptor) (verdict Verdict) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("pre-tool-use panicked, allowing", "panic", r)
			verdict = AllowVerdict()
		}
	}()

	if desc == nil || (!desc.ToolName.IsFileTool() && desc.ToolName != ToolBash) {
		return AllowVerdict()
	}

	result, err := p.rules.Evaluate(desc)
	if err != nil {
		logger.Warn("rule evaluation failed, allowing", "error", err)
		return AllowVerdict()
	}
	if result.Allowed {
		return AllowVerdict()
	}

	logger.Info("operation blocked", "rule", result.RuleName, "file", desc.FilePath)
	return BlockVerdict(result.RuleName, result.Message)
}

// PostToolUse applies fixers to the file that was just written and writes the
// result back. Any internal failure allows the operation and leaves the file untouched.
func (p *Processor) PostToolUse(desc *OperationDescriptor) (verdict Verdict) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("post-tool-use panicked, allowing", "panic", r)
			verdict = AllowVerdict()
		}
	}()

	if desc == nil || !desc.ToolName.IsFileTool() || desc.FilePath == "" {
		return AllowVerdict()
	}
	if len(p.fixers.Fixers()) == 0 {
		return AllowVerdict()
	}

	path := desc.AbsPath()
	info, err := p.fs.Stat(path)
	if err != nil {
		logger.Debug("failed to stat written file, allowing", "path", path, "error", err)
		return AllowVerdict()
	}
	if info.IsDir() {
		return AllowVerdict()
	}
	if p.maxContentBytes > 0 && info.Size() > p.maxContentBytes {
		logger.Debug("file exceeds size limit, skipping fixers", "path", path, "size", info.Size())
		return AllowVerdict()
	}

	data, err := p.fs.ReadFile(path)
	if err != nil {
		logger.Warn("failed to read written file, allowing", "path", path, "error", err)
		return AllowVerdict()
	}

	content := string(data)
	outcome := p.fixers.Apply(desc.WithContent(content), content)
	if !outcome.Changed {
		return AllowVerdict()
	}

	if err := p.fs.WriteFile(path, []byte(outcome.Content), info.Mode().Perm()); err != nil {
		logger.Warn("failed to write fixed file, allowing", "path", path, "error", err)
		return AllowVerdict()
	}

	ruleName := strings.Join(outcome.Fixers, ",")
	message := strings.Join(outcome.Messages, "\n")
	if message == "" {
		message = fmt.Sprintf("Updated %s with %s", path, ruleName)
	}
	logger.Info("file rewritten", "fixers", ruleName, "file", path)
	return ModifyVerdict(ruleName, outcome.Content, message)
}
