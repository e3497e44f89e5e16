package hooks

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/michael-freling/claude-code-hooks/internal/audit"
	"github.com/michael-freling/claude-code-hooks/internal/command"
	"github.com/michael-freling/claude-code-hooks/internal/config"
	"github.com/michael-freling/claude-code-hooks/internal/logger"
)

// AuditSink receives one entry per processed operation.
type AuditSink interface {
	Log(entry audit.Entry) error
}

// Options configures a Hook.
type Options struct {
	// ConfigPath is an explicit config file; empty resolves the default locations.
	ConfigPath string
	// AuditPath overrides the configured audit log path.
	AuditPath string
	// DisableAudit turns the audit log off regardless of config.
	DisableAudit bool

	FileSystem FileSystem
	Git        command.GitRunner
	// OpenAudit creates the audit sink; defaults to audit.New.
	OpenAudit func(audit.Options) (AuditSink, error)
	Now       func() time.Time
}

// Hook is a single hook entry point bound to a stage.
type Hook struct {
	stage      Stage
	configPath string
	auditPath  string
	noAudit    bool
	fs         FileSystem
	resolver   *ProjectResolver
	openAudit  func(audit.Options) (AuditSink, error)
	now        func() time.Time
	getwd      func() (string, error)
}

// NewHook creates a hook for the given stage.
func NewHook(stage Stage, opts Options) *Hook {
	fs := opts.FileSystem
	if fs == nil {
		fs = NewOSFileSystem()
	}
	openAudit := opts.OpenAudit
	if openAudit == nil {
		openAudit = func(o audit.Options) (AuditSink, error) {
			return audit.New(o)
		}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Hook{
		stage:      stage,
		configPath: opts.ConfigPath,
		auditPath:  opts.AuditPath,
		noAudit:    opts.DisableAudit,
		fs:         fs,
		resolver:   NewProjectResolver(opts.Git),
		openAudit:  openAudit,
		now:        now,
		getwd:      os.Getwd,
	}
}

// Run reads one hook payload, processes it and emits the verdict.
// It returns the process exit code and never fails closed.
func (h *Hook) Run(ctx context.Context, input io.Reader, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("hook panicked, allowing", "stage", h.stage, "panic", r)
			code = ExitAllow
		}
	}()

	log := logger.With("stage", h.stage)
	start := h.now()
	toolInput, err := ParseToolInput(input)
	if err != nil {
		log.Debugw("failed to parse hook input, allowing", "error", err)
		return ExitAllow
	}
	if toolInput.HookEventName != "" && toolInput.HookEventName != string(h.stage) {
		log.Debugw("hook event does not match stage", "event", toolInput.HookEventName)
	}

	desc := NewOperationDescriptor(h.stage, toolInput)
	if desc.Cwd == "" {
		// The host runs hooks in its working directory, so relative paths
		// are anchored there when the payload omits cwd.
		if wd, err := h.getwd(); err == nil {
			desc = desc.WithCwd(wd)
		}
	}
	desc = desc.WithProjectDir(h.resolver.Resolve(ctx, desc.Cwd))
	log.Debugw("processing operation",
		"tool", desc.ToolName,
		"file", desc.FilePath,
		"cwd", desc.Cwd,
		"projectDir", desc.ProjectDir)

	cfg, cfgErr := config.LoadOrDefault(h.configPath, desc.ProjectDir)
	verdict := NewProcessorFromConfig(cfg, h.fs).Process(desc)
	code = Emit(verdict, stdout, stderr)

	h.record(cfg, cfgErr, desc, verdict, start)
	return code
}

func (h *Hook) record(cfg *config.Config, cfgErr error, desc *OperationDescriptor, verdict Verdict, start time.Time) {
	if h.noAudit || !cfg.Audit.Enabled {
		return
	}

	path := h.auditPath
	if path == "" {
		path = cfg.Audit.Path
	}
	sink, err := h.openAudit(audit.Options{
		Path:       path,
		MaxBytes:   cfg.Audit.MaxBytes,
		MaxBackups: cfg.Audit.MaxBackups,
		Now:        h.now,
	})
	if err != nil {
		logger.Debug("failed to open audit log", "error", err)
		return
	}

	entry := audit.Entry{
		DurationMs: float64(h.now().Sub(start).Microseconds()) / 1000,
		Stage:      string(desc.Stage),
		ToolName:   string(desc.ToolName),
		FilePath:   desc.FilePath,
		Outcome:    string(verdict.Outcome),
		RuleName:   verdict.RuleName,
		Message:    verdict.Message,
		SessionID:  desc.SessionID,
		ToolUseID:  desc.ToolUseID,
		Cwd:        desc.Cwd,
		ConfigPath: cfg.Path,
	}
	if cfgErr != nil {
		entry.ConfigError = fmt.Sprint(cfgErr)
	}
	if err := sink.Log(entry); err != nil {
		logger.Debug("failed to write audit entry", "error", err)
	}
}
