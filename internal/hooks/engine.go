package hooks

import (
	"fmt"

	"github.com/michael-freling/claude-code-hooks/internal/logger"
)

// ruleEngine implements the rule evaluation engine.
type ruleEngine struct {
	rules []Rule
}

// NewRuleEngine creates a new rule engine with the given rules.
// Rules are evaluated in the given order.
func NewRuleEngine(rules ...Rule) *ruleEngine {
	return &ruleEngine{
		rules: rules,
	}
}

// Rules returns the registered rules in priority order.
func (e *ruleEngine) Rules() []Rule {
	return e.rules
}

// Evaluate evaluates all rules against the operation.
// Returns the first blocking result, or an allowed result if no rules block.
// A rule that fails or panics is skipped.
func (e *ruleEngine) Evaluate(desc *OperationDescriptor) (*RuleResult, error) {
	if desc == nil {
		return nil, fmt.Errorf("descriptor cannot be nil")
	}

	for _, rule := range e.rules {
		result, err := evaluateRule(rule, desc)
		if err != nil {
			logger.Warn("rule evaluation failed, skipping", "rule", rule.Name(), "error", err)
			continue
		}

		if result != nil && !result.Allowed {
			if result.RuleName == "" {
				result.RuleName = rule.Name()
			}
			return result, nil
		}
	}

	return NewAllowedResult(), nil
}

func evaluateRule(rule Rule, desc *OperationDescriptor) (result *RuleResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("rule %s panicked: %v", rule.Name(), r)
		}
	}()
	return rule.Evaluate(desc)
}

// fixEngine applies fixers in order to the evolving content.
type fixEngine struct {
	fixers []Fixer
}

// FixOutcome aggregates the results of all fixers.
type FixOutcome struct {
	Changed  bool
	Content  string
	Messages []string
	Fixers   []string
}

// NewFixEngine creates a new fix engine with the given fixers.
func NewFixEngine(fixers ...Fixer) *fixEngine {
	return &fixEngine{
		fixers: fixers,
	}
}

// Fixers returns the registered fixers in order.
func (e *fixEngine) Fixers() []Fixer {
	return e.fixers
}

// Apply runs every fixer. A fixer that fails or panics is skipped and the
// content it received is passed on unchanged.
func (e *fixEngine) Apply(desc *OperationDescriptor, content string) *FixOutcome {
	outcome := &FixOutcome{Content: content}

	for _, fixer := range e.fixers {
		result, err := applyFixer(fixer, desc.WithContent(outcome.Content), outcome.Content)
		if err != nil {
			logger.Warn("fixer failed, skipping", "fixer", fixer.Name(), "error", err)
			continue
		}
		if result == nil || !result.Changed || result.Content == outcome.Content {
			continue
		}

		outcome.Changed = true
		outcome.Content = result.Content
		outcome.Fixers = append(outcome.Fixers, fixer.Name())
		if result.Message != "" {
			outcome.Messages = append(outcome.Messages, result.Message)
		}
	}

	return outcome
}

func applyFixer(fixer Fixer, desc *OperationDescriptor, content string) (result *FixResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("fixer %s panicked: %v", fixer.Name(), r)
		}
	}()
	return fixer.Fix(desc, content)
}
