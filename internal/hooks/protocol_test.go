package hooks

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmit(t *testing.T) {
	tests := []struct {
		name       string
		verdict    Verdict
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:     "allow is silent",
			verdict:  AllowVerdict(),
			wantCode: ExitAllow,
		},
		{
			name:       "block writes to stderr",
			verdict:    BlockVerdict("duplicate-version", "Edit the original file."),
			wantCode:   ExitBlock,
			wantStderr: "Blocked by rule duplicate-version: Edit the original file.\n",
		},
		{
			name:       "block without rule name",
			verdict:    Verdict{Outcome: OutcomeBlock},
			wantCode:   ExitBlock,
			wantStderr: defaultBlockMessage + "\n",
		},
		{
			name:       "modify writes to stdout",
			verdict:    ModifyVerdict("console-to-logger", "x", "Replaced 1 console call(s)"),
			wantCode:   ExitAllow,
			wantStdout: "Replaced 1 console call(s)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := Emit(tt.verdict, &stdout, &stderr)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStdout, stdout.String())
			assert.Equal(t, tt.wantStderr, stderr.String())
		})
	}
}
