package hooks

import (
	"fmt"
	"io"
)

// Exit codes understood by Claude Code.
const (
	ExitAllow = 0
	// ExitBlock makes the host refuse the tool call and show stderr to the model.
	ExitBlock = 2
)

// ExitCode maps a verdict to its process exit code.
func ExitCode(v Verdict) int {
	if v.Outcome == OutcomeBlock {
		return ExitBlock
	}
	return ExitAllow
}

// Emit writes the verdict message to the channel the host reads and returns
// the exit code. Allow writes nothing.
func Emit(v Verdict, stdout, stderr io.Writer) int {
	switch v.Outcome {
	case OutcomeBlock:
		msg := v.Message
		if msg == "" {
			msg = defaultBlockMessage
		}
		if v.RuleName != "" {
			fmt.Fprintf(stderr, "Blocked by rule %s: %s\n", v.RuleName, msg)
		} else {
			fmt.Fprintln(stderr, msg)
		}
	case OutcomeModifyAndAllow:
		if v.Message != "" {
			fmt.Fprintln(stdout, v.Message)
		}
	}
	return ExitCode(v)
}
