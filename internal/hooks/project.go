package hooks

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/michael-freling/claude-code-hooks/internal/command"
	"github.com/michael-freling/claude-code-hooks/internal/logger"
)

// EnvProjectDir is set by Claude Code to the project root.
const EnvProjectDir = "CLAUDE_PROJECT_DIR"

const defaultGitTimeout = 2 * time.Second

// ProjectResolver finds the repository root for an operation.
type ProjectResolver struct {
	git     command.GitRunner
	getenv  func(string) string
	timeout time.Duration
}

// NewProjectResolver creates a resolver. git may be nil to skip the git lookup.
func NewProjectResolver(git command.GitRunner) *ProjectResolver {
	return &ProjectResolver{
		git:     git,
		getenv:  os.Getenv,
		timeout: defaultGitTimeout,
	}
}

// Resolve returns CLAUDE_PROJECT_DIR when set, else the git top-level of cwd,
// else cwd itself.
func (r *ProjectResolver) Resolve(ctx context.Context, cwd string) string {
	if dir := r.getenv(EnvProjectDir); dir != "" {
		return filepath.Clean(dir)
	}

	if r.git != nil {
		ctx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		root, err := r.git.GetRepositoryRoot(ctx, cwd)
		if err == nil {
			return filepath.Clean(root)
		}
		logger.Debug("git root lookup failed, using cwd", "cwd", cwd, "error", err)
	}

	if cwd == "" {
		return ""
	}
	return filepath.Clean(cwd)
}
