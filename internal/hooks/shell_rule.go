package hooks

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/michael-freling/claude-code-hooks/internal/logger"
	"mvdan.cc/sh/v3/syntax"
)

// shellDuplicateVersionRule blocks shell commands that create duplicate version files
// through redirects or file commands.
type shellDuplicateVersionRule struct{}

// NewShellDuplicateVersionRule creates a new rule for Bash commands.
func NewShellDuplicateVersionRule() Rule {
	return &shellDuplicateVersionRule{}
}

// Name returns the unique identifier for this rule.
func (r *shellDuplicateVersionRule) Name() string {
	return "shell-duplicate-version"
}

// Description returns a human-readable description of what this rule does.
func (r *shellDuplicateVersionRule) Description() string {
	return "Blocks shell commands that write _improved, _enhanced or _vN copies"
}

// Evaluate parses the command and checks every file it would write.
func (r *shellDuplicateVersionRule) Evaluate(desc *OperationDescriptor) (*RuleResult, error) {
	if desc.ToolName != ToolBash || strings.TrimSpace(desc.Command) == "" {
		return NewAllowedResult(), nil
	}

	targets, err := shellWriteTargets(desc.Command)
	if err != nil {
		logger.Debug("failed to parse shell command, allowing", "error", err)
		return NewAllowedResult(), nil
	}

	for _, target := range targets {
		if !IsDuplicateVersionPath(target) {
			continue
		}
		base := filepath.Base(target)
		return NewBlockedResult(
			r.Name(),
			fmt.Sprintf("Command creates a duplicate version file: %s (original: %s). Edit the original file.",
				base, originalName(base)),
		), nil
	}

	return NewAllowedResult(), nil
}

// shellWriteTargets returns the literal paths a shell command writes to.
// Words built from expansions are skipped.
func shellWriteTargets(command string) ([]string, error) {
	file, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil {
		return nil, fmt.Errorf("failed to parse command: %w", err)
	}

	var targets []string
	syntax.Walk(file, func(node syntax.Node) bool {
		switch n := node.(type) {
		case *syntax.Redirect:
			switch n.Op {
			case syntax.RdrOut, syntax.AppOut, syntax.ClbOut, syntax.RdrAll, syntax.AppAll:
				if lit := wordLiteral(n.Word); lit != "" {
					targets = append(targets, lit)
				}
			}
		case *syntax.CallExpr:
			targets = append(targets, callTargets(n)...)
		}
		return true
	})
	return targets, nil
}

// callTargets returns destination operands of file creating commands.
func callTargets(call *syntax.CallExpr) []string {
	if len(call.Args) == 0 {
		return nil
	}

	name := filepath.Base(wordLiteral(call.Args[0]))
	var operands []string
	endOfFlags := false
	for _, arg := range call.Args[1:] {
		lit := wordLiteral(arg)
		if lit == "" {
			continue
		}
		if !endOfFlags && lit == "--" {
			endOfFlags = true
			continue
		}
		if !endOfFlags && strings.HasPrefix(lit, "-") {
			continue
		}
		operands = append(operands, lit)
	}

	switch name {
	case "cp", "mv", "install":
		if len(operands) < 2 {
			return nil
		}
		return operands[len(operands)-1:]
	case "touch", "tee":
		return operands
	}
	return nil
}

// wordLiteral returns the value of a word made only of literal or quoted
// parts, or an empty string when it contains expansions.
func wordLiteral(word *syntax.Word) string {
	if word == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range word.Parts {
		switch p := part.(type) {
		case *syntax.Lit:
			sb.WriteString(p.Value)
		case *syntax.SglQuoted:
			sb.WriteString(p.Value)
		case *syntax.DblQuoted:
			for _, inner := range p.Parts {
				lit, ok := inner.(*syntax.Lit)
				if !ok {
					return ""
				}
				sb.WriteString(lit.Value)
			}
		default:
			return ""
		}
	}
	return sb.String()
}
