package helpers

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// BinaryName is the installed hook binary exercised by the e2e tests
const BinaryName = "claude-hooks"

// HookResult captures a single hook invocation
type HookResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// RequireBinary skips the test if the hook binary is not installed
func RequireBinary(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath(BinaryName); err != nil {
		t.Skipf("%s not found in PATH", BinaryName)
	}
}

// Payload builds a hook payload for a tool call made from cwd
func Payload(t *testing.T, event, cwd, toolName string, toolInput map[string]any) string {
	t.Helper()

	data, err := json.Marshal(map[string]any{
		"session_id":      "e2e-session",
		"cwd":             cwd,
		"hook_event_name": event,
		"tool_name":       toolName,
		"tool_use_id":     "toolu_e2e",
		"tool_input":      toolInput,
	})
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	return string(data)
}

// RunHook runs the hook binary in dir with the payload on stdin.
// The project root is resolved from git, and config and audit files are
// isolated in temporary directories.
func RunHook(t *testing.T, dir, subcommand, payload string) HookResult {
	t.Helper()

	configDir := t.TempDir()
	cmd := exec.Command(BinaryName, "--audit-log", filepath.Join(configDir, "audit.log"), subcommand)
	cmd.Dir = dir
	cmd.Stdin = bytes.NewBufferString(payload)
	cmd.Env = append(os.Environ(),
		"CLAUDE_PROJECT_DIR=",
		"CLAUDE_HOOKS_CONFIG=",
		"CLAUDE_HOOKS_CONFIG_DIR="+configDir,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	result := HookResult{}
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("failed to run %s: %v", BinaryName, err)
		}
		result.ExitCode = exitErr.ExitCode()
	}
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()
	return result
}
