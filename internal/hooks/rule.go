package hooks

// Rule represents a rule that evaluates whether a tool operation should be allowed.
type Rule interface {
	// Name returns the unique identifier for this rule.
	Name() string

	// Description returns a human-readable description of what this rule does.
	Description() string

	// Evaluate checks if the operation should be allowed.
	// Rules must not read or write files and must return an allowed result
	// when the fields they inspect are empty.
	Evaluate(desc *OperationDescriptor) (*RuleResult, error)
}

// Fixer rewrites written content in PostToolUse.
type Fixer interface {
	// Name returns the unique identifier for this fixer.
	Name() string

	// Description returns a human-readable description of what this fixer does.
	Description() string

	// Fix returns the rewritten content. It must be idempotent: fixing
	// already fixed content reports no change.
	Fix(desc *OperationDescriptor, content string) (*FixResult, error)
}
