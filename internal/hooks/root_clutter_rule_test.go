package hooks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAllowlist = []string{"README.md", "LICENSE", "package.json", ".gitignore"}

func TestRootClutterRule_Evaluate(t *testing.T) {
	tests := []struct {
		name        string
		desc        *OperationDescriptor
		wantBlocked bool
		wantSuggest string
	}{
		{
			name:        "relative file at root is blocked",
			desc:        &OperationDescriptor{ToolName: ToolWrite, FilePath: "random-notes.txt", Cwd: "/repo", ProjectDir: "/repo"},
			wantBlocked: true,
			wantSuggest: "docs/random-notes.txt",
		},
		{
			name:        "absolute file at root is blocked",
			desc:        &OperationDescriptor{ToolName: ToolEdit, FilePath: "/repo/deploy.sh", Cwd: "/repo/src", ProjectDir: "/repo"},
			wantBlocked: true,
			wantSuggest: "scripts/deploy.sh",
		},
		{
			name:        "project dir wins over cwd",
			desc:        &OperationDescriptor{ToolName: ToolWrite, FilePath: "helper.ts", Cwd: "/repo/pkg", ProjectDir: "/repo/pkg"},
			wantBlocked: true,
			wantSuggest: "src/helper.ts",
		},
		{
			name:        "cwd is the root without project dir",
			desc:        &OperationDescriptor{ToolName: ToolWrite, FilePath: "settings.yaml", Cwd: "/repo"},
			wantBlocked: true,
			wantSuggest: "config/settings.yaml",
		},
		{
			name:        "bare name without any root is blocked",
			desc:        &OperationDescriptor{ToolName: ToolMultiEdit, FilePath: "app.test.ts"},
			wantBlocked: true,
			wantSuggest: "tests/app.test.ts",
		},
		{
			name: "allowlisted file is allowed",
			desc: &OperationDescriptor{ToolName: ToolWrite, FilePath: "/repo/README.md", ProjectDir: "/repo"},
		},
		{
			name: "allowlisted dotfile is allowed",
			desc: &OperationDescriptor{ToolName: ToolWrite, FilePath: ".gitignore", Cwd: "/repo", ProjectDir: "/repo"},
		},
		{
			name: "file in subdirectory is allowed",
			desc: &OperationDescriptor{ToolName: ToolWrite, FilePath: "src/components/Button.tsx", Cwd: "/repo", ProjectDir: "/repo"},
		},
		{
			name: "file outside project is allowed",
			desc: &OperationDescriptor{ToolName: ToolWrite, FilePath: "/tmp/scratch.txt", Cwd: "/repo", ProjectDir: "/repo"},
		},
		{
			name: "nested relative path without root is allowed",
			desc: &OperationDescriptor{ToolName: ToolWrite, FilePath: "docs/notes.md"},
		},
		{
			name: "empty path is allowed",
			desc: &OperationDescriptor{ToolName: ToolWrite, Cwd: "/repo", ProjectDir: "/repo"},
		},
		{
			name: "bash is ignored",
			desc: &OperationDescriptor{ToolName: ToolBash, Command: "touch notes.txt", Cwd: "/repo", ProjectDir: "/repo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := NewRootClutterRule(testAllowlist)
			got, err := rule.Evaluate(tt.desc)
			require.NoError(t, err)
			assert.Equal(t, !tt.wantBlocked, got.Allowed)
			if tt.wantBlocked {
				assert.Equal(t, "root-clutter", got.RuleName)
				assert.Contains(t, got.Message, "subdirectory")
				assert.Contains(t, got.Message, tt.wantSuggest)
			}
		})
	}
}

func TestSuggestDirectory(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"notes.md", "docs"},
		{"TODO.TXT", "docs"},
		{"build.sh", "scripts"},
		{"seed.py", "scripts"},
		{"app.config.json", "config"},
		{"Button.spec.tsx", "tests"},
		{"test_utils.py", "tests"},
		{"logo.svg", "assets"},
		{"debug.log", "tmp"},
		{"index.ts", "src"},
		{"Makefile", "src"},
	}

	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			assert.Equal(t, tt.want, suggestDirectory(tt.base))
		})
	}
}

func TestRootClutterRule_SymlinkedCwd(t *testing.T) {
	base := t.TempDir()
	realDir := filepath.Join(base, "real")
	linkDir := filepath.Join(base, "link")
	require.NoError(t, os.Mkdir(realDir, 0755))
	require.NoError(t, os.Mkdir(filepath.Join(realDir, "src"), 0755))
	require.NoError(t, os.Symlink(realDir, linkDir))

	resolvedRoot, err := filepath.EvalSymlinks(realDir)
	require.NoError(t, err)

	tests := []struct {
		name        string
		desc        *OperationDescriptor
		wantBlocked bool
	}{
		{
			name:        "cwd through symlink with resolved root is blocked",
			desc:        &OperationDescriptor{ToolName: ToolWrite, FilePath: "random-notes.txt", Cwd: linkDir, ProjectDir: resolvedRoot},
			wantBlocked: true,
		},
		{
			name:        "absolute path through symlink is blocked",
			desc:        &OperationDescriptor{ToolName: ToolWrite, FilePath: filepath.Join(linkDir, "random-notes.txt"), Cwd: resolvedRoot, ProjectDir: resolvedRoot},
			wantBlocked: true,
		},
		{
			name:        "symlinked root with resolved cwd is blocked",
			desc:        &OperationDescriptor{ToolName: ToolWrite, FilePath: "random-notes.txt", Cwd: resolvedRoot, ProjectDir: linkDir},
			wantBlocked: true,
		},
		{
			name: "subdirectory through symlink is allowed",
			desc: &OperationDescriptor{ToolName: ToolWrite, FilePath: "src/notes.txt", Cwd: linkDir, ProjectDir: resolvedRoot},
		},
		{
			name: "allowlisted file through symlink is allowed",
			desc: &OperationDescriptor{ToolName: ToolWrite, FilePath: "README.md", Cwd: linkDir, ProjectDir: resolvedRoot},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewRootClutterRule(testAllowlist).Evaluate(tt.desc)
			require.NoError(t, err)
			assert.Equal(t, !tt.wantBlocked, got.Allowed)
		})
	}
}
