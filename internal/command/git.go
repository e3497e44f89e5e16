package command

import (
	"context"
	"fmt"
	"strings"
)

//go:generate mockgen -source=git.go -destination=mock_git.go -package=command

// GitRunner abstracts git command execution
type GitRunner interface {
	// GetRepositoryRoot returns the top-level directory of the repository containing dir
	GetRepositoryRoot(ctx context.Context, dir string) (string, error)
}

type gitRunner struct {
	runner Runner
}

// NewGitRunner creates a new GitRunner instance
func NewGitRunner(runner Runner) GitRunner {
	return &gitRunner{
		runner: runner,
	}
}

// GetRepositoryRoot returns the top-level directory of the repository containing dir
func (g *gitRunner) GetRepositoryRoot(ctx context.Context, dir string) (string, error) {
	stdout, stderr, err := g.runner.RunInDir(ctx, dir, "git", "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("failed to get repository root: %w (stderr: %s)", err, stderr)
	}

	root := strings.TrimSpace(stdout)
	if root == "" {
		return "", fmt.Errorf("git returned an empty repository root for %s", dir)
	}
	return root, nil
}
