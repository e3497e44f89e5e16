package hooks

// RuleResult represents the result of evaluating a rule.
type RuleResult struct {
	// Allowed indicates whether the tool usage should be allowed.
	Allowed bool

	// Message provides additional context about the decision.
	// For blocked results, this explains why the tool was blocked.
	Message string

	// RuleName identifies which rule produced this result.
	RuleName string
}

// NewAllowedResult creates a result that allows the tool usage.
func NewAllowedResult() *RuleResult {
	return &RuleResult{
		Allowed:  true,
		Message:  "",
		RuleName: "",
	}
}

// NewBlockedResult creates a result that blocks the tool usage.
func NewBlockedResult(ruleName, message string) *RuleResult {
	return &RuleResult{
		Allowed:  false,
		Message:  message,
		RuleName: ruleName,
	}
}

// FixResult is the outcome of a single fixer.
type FixResult struct {
	// Changed reports whether Content differs from the input.
	Changed bool
	// Content is the rewritten content, or the input when unchanged.
	Content string
	// Message summarizes the change.
	Message string
}

// NewUnchangedFix returns a result that leaves content untouched.
func NewUnchangedFix(content string) *FixResult {
	return &FixResult{Changed: false, Content: content}
}

// NewChangedFix returns a result carrying rewritten content.
func NewChangedFix(content, message string) *FixResult {
	return &FixResult{Changed: true, Content: content, Message: message}
}

// Outcome is the decision a hook returns to the host.
type Outcome string

const (
	OutcomeAllow          Outcome = "allow"
	OutcomeBlock          Outcome = "block"
	OutcomeModifyAndAllow Outcome = "modify"
)

const defaultBlockMessage = "Operation blocked by claude-hooks"

// Verdict is the result of a hook entry point.
type Verdict struct {
	Outcome Outcome
	// Message is shown to the host; always set for Block.
	Message string
	// ModifiedContent is the rewritten content; always set for ModifyAndAllow.
	ModifiedContent string
	// RuleName identifies the rule or fixers that produced the verdict.
	RuleName string
}

// AllowVerdict returns a silent allow.
func AllowVerdict() Verdict {
	return Verdict{Outcome: OutcomeAllow}
}

// BlockVerdict returns a block verdict. An empty message is replaced with a
// generic one so a block always explains itself.
func BlockVerdict(ruleName, message string) Verdict {
	if message == "" {
		message = defaultBlockMessage
	}
	return Verdict{Outcome: OutcomeBlock, Message: message, RuleName: ruleName}
}

// ModifyVerdict returns a modify-and-allow verdict carrying the new content.
func ModifyVerdict(ruleName, content, message string) Verdict {
	return Verdict{
		Outcome:         OutcomeModifyAndAllow,
		Message:         message,
		ModifiedContent: content,
		RuleName:        ruleName,
	}
}
