package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/michael-freling/claude-code-hooks/internal/command"
	"github.com/michael-freling/claude-code-hooks/internal/config"
	"github.com/michael-freling/claude-code-hooks/internal/hooks"
	"github.com/michael-freling/claude-code-hooks/internal/logger"
	"github.com/spf13/cobra"
)

// exit is replaced in tests.
var exit = os.Exit

type rootOptions struct {
	configPath string
	verbose    bool
	logJSON    bool
	noAuditLog bool
	auditLog   string
}

// failOpenAnnotation marks commands the host runs as hooks. The host reads
// any non-zero exit from them as a block, so their errors exit 0.
const failOpenAnnotation = "claude-hooks/fail-open"

func main() {
	if code := run(newRootCmd()); code != 0 {
		os.Exit(code)
	}
}

// run executes root and maps its error to an exit code.
func run(root *cobra.Command) int {
	cmd, err := root.ExecuteC()
	if err == nil {
		return 0
	}
	if cmd != nil && cmd.Annotations[failOpenAnnotation] == "true" {
		logger.Warn("hook command failed, allowing operation", "command", cmd.Name(), "error", err)
		return hooks.ExitAllow
	}
	return 1
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "claude-hooks",
		Short: "Claude Code hooks that enforce file patterns",
		Long: `A CLI tool that runs as a Claude Code PreToolUse and PostToolUse hook.
It blocks duplicate versioned files and root directory clutter before a write,
and rewrites console calls to a project logger after a write.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(logger.Options{Verbose: opts.verbose, JSON: opts.logJSON})
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default: $CLAUDE_HOOKS_CONFIG, .claude/hooks.toml or ~/.config/claude-hooks/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging to stderr")
	rootCmd.PersistentFlags().BoolVar(&opts.logJSON, "log-json", false, "write logs as JSON")
	rootCmd.PersistentFlags().BoolVar(&opts.noAuditLog, "no-audit-log", false, "disable the audit log")
	rootCmd.PersistentFlags().StringVar(&opts.auditLog, "audit-log", "", "audit log path (default: ~/.local/share/claude-hooks/audit.log)")

	rootCmd.AddCommand(newPreToolUseCmd(opts))
	rootCmd.AddCommand(newPostToolUseCmd(opts))
	rootCmd.AddCommand(newRulesCmd(opts))
	rootCmd.AddCommand(newInitCmd(opts))
	rootCmd.AddCommand(newValidateCmd(opts))
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func newPreToolUseCmd(opts *rootOptions) *cobra.Command {
	return newHookCmd(opts, hooks.StagePreToolUse,
		"pre-tool-use [json]",
		"Evaluate blocking rules before a file operation",
		`Reads the hook payload as JSON from the argument or stdin and evaluates the blocking rules. Returns exit code 0 to allow, exit code 2 to block with the reason on stderr.`)
}

func newPostToolUseCmd(opts *rootOptions) *cobra.Command {
	return newHookCmd(opts, hooks.StagePostToolUse,
		"post-tool-use [json]",
		"Apply auto-fixes after a file operation",
		`Reads the hook payload as JSON from the argument or stdin and applies the fixers to the written file. Always returns exit code 0; a rewrite is reported on stdout.`)
}

func newHookCmd(opts *rootOptions, stage hooks.Stage, use, short, long string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.MaximumNArgs(1),
		Annotations: map[string]string{
			failOpenAnnotation: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var input io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				input = strings.NewReader(args[0])
			}

			hook := hooks.NewHook(stage, hooks.Options{
				ConfigPath:   opts.configPath,
				AuditPath:    opts.auditLog,
				DisableAudit: opts.noAuditLog,
				Git:          command.NewGitRunner(command.NewRunner()),
			})

			code := hook.Run(cmd.Context(), input, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if code != hooks.ExitAllow {
				exit(code)
			}
			return nil
		},
	}
}

// resolveProject returns the project root for commands run outside a hook.
func resolveProject(ctx context.Context) string {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	return hooks.NewProjectResolver(command.NewGitRunner(command.NewRunner())).Resolve(ctx, cwd)
}

// loadConfig loads the config for non-hook commands, reporting load errors.
func loadConfig(ctx context.Context, opts *rootOptions) (*config.Config, string, error) {
	projectDir := resolveProject(ctx)
	path, err := config.FindConfigPath(opts.configPath, projectDir)
	if err != nil {
		return config.Default(), projectDir, nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, projectDir, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, projectDir, nil
}
