package helpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// TempRepo represents a temporary Git repository for testing
type TempRepo struct {
	Dir string
	t   *testing.T
}

// NewTempRepo creates a new temporary Git repository for testing
func NewTempRepo(t *testing.T) *TempRepo {
	t.Helper()

	dir, err := os.MkdirTemp("", "claude-hooks-e2e-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	// git reports resolved paths, so resolve symlinks such as /var on macOS.
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}

	repo := &TempRepo{
		Dir: dir,
		t:   t,
	}

	if _, err := repo.RunGit("init"); err != nil {
		_ = os.RemoveAll(dir) // Ignore cleanup error, already failing
		t.Fatalf("failed to initialize git repo: %v", err)
	}

	if _, err := repo.RunGit("config", "user.email", "test@test.com"); err != nil {
		_ = os.RemoveAll(dir) // Ignore cleanup error, already failing
		t.Fatalf("failed to configure git user.email: %v", err)
	}

	if _, err := repo.RunGit("config", "user.name", "Test User"); err != nil {
		_ = os.RemoveAll(dir) // Ignore cleanup error, already failing
		t.Fatalf("failed to configure git user.name: %v", err)
	}

	t.Cleanup(func() {
		repo.Cleanup()
	})

	return repo
}

// Cleanup removes the temporary directory
func (r *TempRepo) Cleanup() {
	r.t.Helper()

	if err := os.RemoveAll(r.Dir); err != nil {
		r.t.Errorf("failed to cleanup temp repo: %v", err)
	}
}

// CreateFile creates a file with the given content
func (r *TempRepo) CreateFile(path, content string) error {
	r.t.Helper()

	fullPath := filepath.Join(r.Dir, path)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", fullPath, err)
	}

	return nil
}

// ReadFile returns the content of a file relative to the repository root
func (r *TempRepo) ReadFile(path string) (string, error) {
	r.t.Helper()

	data, err := os.ReadFile(filepath.Join(r.Dir, path))
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return string(data), nil
}

// RunGit runs a git command in the repository
func (r *TempRepo) RunGit(args ...string) (string, error) {
	r.t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git command failed: %w: %s", err, string(output))
	}

	return string(output), nil
}
