package command

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_Run(t *testing.T) {
	tests := []struct {
		name       string
		command    string
		args       []string
		wantStdout string
		wantErr    bool
	}{
		{
			name:       "successful command",
			command:    "echo",
			args:       []string{"hello"},
			wantStdout: "hello",
		},
		{
			name:       "command with multiple args",
			command:    "echo",
			args:       []string{"hello", "world"},
			wantStdout: "hello world",
		},
		{
			name:    "command that fails",
			command: "false",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := NewRunner().Run(context.Background(), tt.command, tt.args...)

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStdout, stdout)
			assert.Empty(t, stderr)
		})
	}
}

func TestRunner_RunInDir(t *testing.T) {
	dir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)

	stdout, _, err := NewRunner().RunInDir(context.Background(), dir, "pwd")
	require.NoError(t, err)

	got, err := filepath.EvalSymlinks(stdout)
	require.NoError(t, err)
	assert.Equal(t, resolved, got)
}

func TestRunner_RunInDir_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewRunner().RunInDir(ctx, os.TempDir(), "sleep", "1")
	require.Error(t, err)
}
