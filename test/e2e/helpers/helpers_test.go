package helpers

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTempRepo(t *testing.T) {
	RequireGit(t)

	var dir string
	t.Run("removes the directory on cleanup", func(t *testing.T) {
		repo := NewTempRepo(t)
		dir = repo.Dir
		assert.DirExists(t, dir)
	})
	assert.NoDirExists(t, dir)
}

func TestNewTempRepo_InitializesGit(t *testing.T) {
	RequireGit(t)

	repo := NewTempRepo(t)

	require.NotEmpty(t, repo.Dir)
	assert.DirExists(t, repo.Dir)

	gitDir := filepath.Join(repo.Dir, ".git")
	assert.DirExists(t, gitDir)
}

func TestTempRepo_CreateFile(t *testing.T) {
	RequireGit(t)

	tests := []struct {
		name    string
		path    string
		content string
	}{
		{
			name:    "creates file in root directory",
			path:    "test.txt",
			content: "hello world",
		},
		{
			name:    "creates file in subdirectory",
			path:    "subdir/test.txt",
			content: "nested file",
		},
		{
			name:    "creates file with empty content",
			path:    "empty.txt",
			content: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewTempRepo(t)

			require.NoError(t, repo.CreateFile(tt.path, tt.content))

			got, err := repo.ReadFile(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.content, got)
		})
	}
}

func TestTempRepo_ReadFileMissing(t *testing.T) {
	RequireGit(t)

	repo := NewTempRepo(t)
	_, err := repo.ReadFile("missing.txt")
	require.Error(t, err)
}

func TestTempRepo_RunGit(t *testing.T) {
	RequireGit(t)

	repo := NewTempRepo(t)

	out, err := repo.RunGit("rev-parse", "--is-inside-work-tree")
	require.NoError(t, err)
	assert.Equal(t, "true", strings.TrimSpace(out))

	_, err = repo.RunGit("not-a-command")
	require.Error(t, err)
}

func TestPayload(t *testing.T) {
	got := Payload(t, "PreToolUse", "/repo", "Write", map[string]any{"file_path": "a.ts"})

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &decoded))
	assert.Equal(t, "PreToolUse", decoded["hook_event_name"])
	assert.Equal(t, "/repo", decoded["cwd"])
	assert.Equal(t, "Write", decoded["tool_name"])
	assert.Equal(t, map[string]any{"file_path": "a.ts"}, decoded["tool_input"])
}
