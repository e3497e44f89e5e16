package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectSettings = `{
  "hooks": {
    "PreToolUse": [
      {
        "matcher": "Write|Edit|MultiEdit",
        "hooks": [{"type": "command", "command": "claude-hooks pre-tool-use", "timeout": 5000}]
      }
    ],
    "PostToolUse": [
      {
        "matcher": "Edit",
        "hooks": [{"type": "command", "command": "other-tool"}]
      }
    ]
  }
}`

const localSettings = `{
  "hooks": {
    "PostToolUse": [
      {
        "matcher": "*",
        "hooks": [{"type": "command", "command": "/usr/local/bin/claude-hooks post-tool-use"}]
      }
    ]
  }
}`

func writeSettings(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultPaths(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got := DefaultPaths("/work/project")
	assert.Equal(t, []string{
		filepath.Join(home, ".claude", "settings.json"),
		"/work/project/.claude/settings.json",
		"/work/project/.claude/settings.local.json",
	}, got)

	assert.Equal(t, []string{filepath.Join(home, ".claude", "settings.json")}, DefaultPaths(""))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	project := writeSettings(t, dir, "settings.json", projectSettings)
	local := writeSettings(t, dir, "settings.local.json", localSettings)

	s, err := Load(project, filepath.Join(dir, "missing.json"), local)
	require.NoError(t, err)
	assert.Len(t, s.Hooks["PreToolUse"], 1)
	assert.Len(t, s.Hooks["PostToolUse"], 2)

	broken := writeSettings(t, dir, "broken.json", "{")
	_, err = Load(broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestSettings_Lookup(t *testing.T) {
	dir := t.TempDir()
	s, err := Load(
		writeSettings(t, dir, "settings.json", projectSettings),
		writeSettings(t, dir, "settings.local.json", localSettings),
	)
	require.NoError(t, err)

	tests := []struct {
		name        string
		stage       string
		toolName    string
		want        bool
		wantTimeout time.Duration
	}{
		{name: "pre write registered", stage: "PreToolUse", toolName: "Write", want: true, wantTimeout: 5 * time.Second},
		{name: "pre multiedit registered", stage: "PreToolUse", toolName: "MultiEdit", want: true, wantTimeout: 5 * time.Second},
		{name: "pre bash not matched", stage: "PreToolUse", toolName: "Bash", want: false},
		{name: "matcher is anchored", stage: "PreToolUse", toolName: "NotebookEdit", want: false},
		{name: "post wildcard registered", stage: "PostToolUse", toolName: "Edit", want: true},
		{name: "unknown stage", stage: "Stop", toolName: "Write", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, ok := s.Lookup(tt.stage, tt.toolName, "claude-hooks")
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.Equal(t, tt.stage, reg.Stage)
				assert.Equal(t, tt.wantTimeout, reg.Timeout)
				assert.Contains(t, reg.Command, "claude-hooks")
			}
		})
	}
}

func TestSettings_LookupNil(t *testing.T) {
	var s *Settings
	_, ok := s.Lookup("PreToolUse", "Write", "claude-hooks")
	assert.False(t, ok)
}

func TestMatchesTool(t *testing.T) {
	tests := []struct {
		matcher  string
		toolName string
		want     bool
	}{
		{"", "Write", true},
		{"*", "Bash", true},
		{"Write", "Write", true},
		{"Write", "WriteFile", false},
		{"Edit|Write", "Edit", true},
		{"Notebook.*", "NotebookEdit", true},
		{"(", "(", true},
		{"(", "Write", false},
	}

	for _, tt := range tests {
		t.Run(tt.matcher+"/"+tt.toolName, func(t *testing.T) {
			assert.Equal(t, tt.want, matchesTool(tt.matcher, tt.toolName))
		})
	}
}
