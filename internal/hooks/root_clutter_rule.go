package hooks

import (
	"fmt"
	"path/filepath"
	"strings"
)

// rootClutterRule blocks files written directly into the repository root
// unless they are on the allowlist.
type rootClutterRule struct {
	allowed map[string]bool
}

// NewRootClutterRule creates a new rule allowing only the given file names at the root.
func NewRootClutterRule(allowlist []string) Rule {
	allowed := make(map[string]bool, len(allowlist))
	for _, name := range allowlist {
		allowed[name] = true
	}
	return &rootClutterRule{allowed: allowed}
}

// Name returns the unique identifier for this rule.
func (r *rootClutterRule) Name() string {
	return "root-clutter"
}

// Description returns a human-readable description of what this rule does.
func (r *rootClutterRule) Description() string {
	return "Blocks files at the repository root that are not on the allowlist"
}

// Evaluate checks if the file would be created at the repository root.
func (r *rootClutterRule) Evaluate(desc *OperationDescriptor) (*RuleResult, error) {
	if !desc.ToolName.IsFileTool() || desc.FilePath == "" {
		return NewAllowedResult(), nil
	}
	if !isAtRoot(desc) {
		return NewAllowedResult(), nil
	}

	base := filepath.Base(desc.FilePath)
	if r.allowed[base] {
		return NewAllowedResult(), nil
	}

	dir := suggestDirectory(base)
	return NewBlockedResult(
		r.Name(),
		fmt.Sprintf("Root directory clutter: %s should not be created at the repository root. Move it into a subdirectory, e.g. %s/%s.",
			base, dir, base),
	), nil
}

func isAtRoot(desc *OperationDescriptor) bool {
	root := desc.Root()
	if root == "" {
		// Without a known root only a bare relative file name is at the root.
		return !filepath.IsAbs(desc.FilePath) && filepath.Dir(filepath.Clean(desc.FilePath)) == "."
	}
	return resolvePath(filepath.Dir(desc.AbsPath())) == resolvePath(root)
}

// resolvePath follows symlinks so a cwd under a linked directory compares
// equal to the resolved root git reports. Paths that do not exist are only cleaned.
func resolvePath(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return resolved
}

// suggestDirectory picks a conventional subdirectory for a file name.
func suggestDirectory(base string) string {
	lower := strings.ToLower(base)
	if strings.Contains(lower, ".test.") || strings.Contains(lower, ".spec.") || strings.HasPrefix(lower, "test_") {
		return "tests"
	}

	switch filepath.Ext(lower) {
	case ".md", ".txt", ".rst", ".adoc", ".pdf":
		return "docs"
	case ".sh", ".bash", ".zsh", ".ps1", ".py", ".rb":
		return "scripts"
	case ".json", ".yaml", ".yml", ".toml", ".ini", ".conf", ".cfg":
		return "config"
	case ".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico", ".webp":
		return "assets"
	case ".log", ".tmp", ".bak":
		return "tmp"
	case ".sql":
		return "db"
	default:
		return "src"
	}
}
