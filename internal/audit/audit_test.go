package audit

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readEntries(t *testing.T, path string) []Entry {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry Entry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())
	return entries
}

// fakeClock returns a clock advancing one second per call.
func fakeClock() func() time.Time {
	current := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func TestDefaultLogPath(t *testing.T) {
	path, err := DefaultLogPath()
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local", "share", "claude-hooks", "audit.log"), path)
}

func TestNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "dir", "audit.log")

	l, err := New(Options{Path: path})
	require.NoError(t, err)
	assert.Equal(t, path, l.Path())

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLogger_Log(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	l, err := New(Options{Path: path, Now: fakeClock()})
	require.NoError(t, err)

	require.NoError(t, l.Log(Entry{
		Stage:    "PreToolUse",
		ToolName: "Write",
		FilePath: "Button_improved.tsx",
		Outcome:  "block",
		RuleName: "duplicate-version",
		Message:  "Edit the original file.",
	}))
	require.NoError(t, l.Log(Entry{
		Stage:    "PostToolUse",
		ToolName: "Edit",
		FilePath: "src/app.ts",
		Outcome:  "modify",
		ID:       "fixed-id",
	}))

	entries := readEntries(t, path)
	require.Len(t, entries, 2)

	assert.Equal(t, Version, entries[0].Version)
	assert.NotEmpty(t, entries[0].ID)
	assert.Equal(t, "2026-01-02T03:04:06.000Z", entries[0].Timestamp)
	assert.Equal(t, "duplicate-version", entries[0].RuleName)
	assert.Equal(t, "block", entries[0].Outcome)

	assert.Equal(t, "fixed-id", entries[1].ID)
	assert.Equal(t, "PostToolUse", entries[1].Stage)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
}

func TestLogger_LogOmitsEmptyFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	l, err := New(Options{Path: path})
	require.NoError(t, err)

	require.NoError(t, l.Log(Entry{Stage: "PreToolUse", ToolName: "Write", Outcome: "allow"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "rule_name")
	assert.NotContains(t, string(data), "config_error")
	assert.True(t, strings.HasSuffix(string(data), "\n"))
}

func TestLogger_Rotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	l, err := New(Options{Path: path, MaxBytes: 200, MaxBackups: 2, Now: fakeClock()})
	require.NoError(t, err)

	entry := Entry{
		Stage:    "PreToolUse",
		ToolName: "Write",
		FilePath: "src/components/Button.tsx",
		Outcome:  "allow",
	}
	for i := 0; i < 10; i++ {
		require.NoError(t, l.Log(entry))
	}

	backups, err := l.Backups()
	require.NoError(t, err)
	assert.Len(t, backups, 2, "old backups should be pruned")

	assert.Len(t, readEntries(t, path), 1, "current log holds only the entry written after the last rotation")

	f, err := os.Open(backups[len(backups)-1])
	require.NoError(t, err)
	defer f.Close()
	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	defer zr.Close()

	content, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Contains(t, string(content), "src/components/Button.tsx")
	assert.Equal(t, "audit.log", zr.Name)
}

func TestLogger_NoRotationWhenDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	l, err := New(Options{Path: path, Now: fakeClock()})
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		require.NoError(t, l.Log(Entry{Stage: "PreToolUse", ToolName: "Write", Outcome: "allow"}))
	}

	backups, err := l.Backups()
	require.NoError(t, err)
	assert.Empty(t, backups)
	assert.Len(t, readEntries(t, path), 20)
}
