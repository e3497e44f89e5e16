package hooks

import (
	"path/filepath"
	"strings"
)

// Stage is a hook lifecycle stage.
type Stage string

const (
	StagePreToolUse  Stage = "PreToolUse"
	StagePostToolUse Stage = "PostToolUse"
)

// ToolName identifies the host tool that triggered the hook.
type ToolName string

const (
	ToolWrite     ToolName = "Write"
	ToolEdit      ToolName = "Edit"
	ToolMultiEdit ToolName = "MultiEdit"
	ToolBash      ToolName = "Bash"
)

// IsFileTool reports whether the tool writes a single file given by file_path.
func (t ToolName) IsFileTool() bool {
	switch t {
	case ToolWrite, ToolEdit, ToolMultiEdit:
		return true
	}
	return false
}

// OperationDescriptor is the validated view of a single tool operation.
// It is built once per invocation and never mutated.
type OperationDescriptor struct {
	Stage           Stage
	ToolName        ToolName
	FilePath        string
	ProposedContent string
	// Command is the shell command for Bash operations.
	Command    string
	Cwd        string
	ProjectDir string
	SessionID  string
	ToolUseID  string
}

// NewOperationDescriptor builds a descriptor from parsed tool input.
//
// ProposedContent is the written content for Write, new_string for Edit and
// all new_string values joined by newlines for MultiEdit.
func NewOperationDescriptor(stage Stage, input *ToolInput) *OperationDescriptor {
	desc := &OperationDescriptor{
		Stage:     stage,
		ToolName:  ToolName(input.ToolName),
		Cwd:       input.Cwd,
		SessionID: input.SessionID,
		ToolUseID: input.ToolUseID,
	}

	desc.FilePath, _ = input.GetStringArg("file_path")

	switch desc.ToolName {
	case ToolWrite:
		desc.ProposedContent, _ = input.GetStringArg("content")
	case ToolEdit:
		desc.ProposedContent, _ = input.GetStringArg("new_string")
	case ToolMultiEdit:
		desc.ProposedContent = strings.Join(input.GetEditStrings(), "\n")
	case ToolBash:
		desc.Command, _ = input.GetStringArg("command")
	}

	return desc
}

// WithContent returns a copy of the descriptor with ProposedContent replaced.
func (d *OperationDescriptor) WithContent(content string) *OperationDescriptor {
	c := *d
	c.ProposedContent = content
	return &c
}

// WithCwd returns a copy of the descriptor with Cwd replaced.
func (d *OperationDescriptor) WithCwd(cwd string) *OperationDescriptor {
	c := *d
	c.Cwd = cwd
	return &c
}

// WithProjectDir returns a copy of the descriptor with ProjectDir replaced.
func (d *OperationDescriptor) WithProjectDir(dir string) *OperationDescriptor {
	c := *d
	c.ProjectDir = dir
	return &c
}

// AbsPath returns the cleaned file path, joined to Cwd when relative.
// Returns an empty string when FilePath is empty.
func (d *OperationDescriptor) AbsPath() string {
	if d.FilePath == "" {
		return ""
	}
	if filepath.IsAbs(d.FilePath) || d.Cwd == "" {
		return filepath.Clean(d.FilePath)
	}
	return filepath.Join(d.Cwd, d.FilePath)
}

// Root returns the directory treated as the repository root.
func (d *OperationDescriptor) Root() string {
	if d.ProjectDir != "" {
		return filepath.Clean(d.ProjectDir)
	}
	if d.Cwd != "" {
		return filepath.Clean(d.Cwd)
	}
	return ""
}

// Ext returns the lower-cased file extension, including the dot.
func (d *OperationDescriptor) Ext() string {
	return strings.ToLower(filepath.Ext(d.FilePath))
}
