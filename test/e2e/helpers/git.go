package helpers

import (
	"os/exec"
	"testing"
)

// RequireGit skips the test if git is not available in PATH
func RequireGit(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}
}
