package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/michael-freling/claude-code-hooks/internal/config"
	"github.com/michael-freling/claude-code-hooks/internal/hooks"
	"github.com/michael-freling/claude-code-hooks/internal/settings"
	"github.com/spf13/cobra"
)

const binaryName = "claude-hooks"

var validateTools = []hooks.ToolName{hooks.ToolWrite, hooks.ToolEdit, hooks.ToolMultiEdit, hooks.ToolBash}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var settingsPaths []string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the config and check the hook registration",
		Long: `Parse the config file and print its compiled patterns, then check whether
the Claude Code settings register claude-hooks for each stage and tool.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, projectDir, err := loadConfig(cmd.Context(), opts)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printConfig(w, cfg)
			fmt.Fprintln(w)

			paths := settingsPaths
			if len(paths) == 0 {
				paths = settings.DefaultPaths(projectDir)
			}
			s, err := settings.Load(paths...)
			if err != nil {
				return err
			}
			printRegistration(w, s)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&settingsPaths, "settings", nil, "Claude Code settings files to check (default: user and project settings)")
	return cmd
}

func printConfig(w io.Writer, cfg *config.Config) {
	bold := color.New(color.Bold, color.FgCyan)
	gray := color.New(color.FgHiBlack)

	source := cfg.Path
	if source == "" {
		source = "embedded defaults"
	}
	bold.Fprintln(w, "Config")
	fmt.Fprintf(w, "  source: %s\n", source)
	fmt.Fprintf(w, "  max_content_bytes: %d\n", cfg.MaxContentBytes)

	for _, section := range []struct {
		name     string
		patterns []config.Pattern
	}{
		{"block.path", cfg.BlockPaths},
		{"block.content", cfg.BlockContents},
	} {
		fmt.Fprintf(w, "  %s: %d pattern(s)\n", section.name, len(section.patterns))
		for _, p := range section.patterns {
			gray.Fprintf(w, "    %s  %s\n", p.Name, p.Regex.String())
		}
	}
}

func printRegistration(w io.Writer, s *settings.Settings) {
	bold := color.New(color.Bold, color.FgCyan)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	bold.Fprintln(w, "Hook registration")
	for _, stage := range []hooks.Stage{hooks.StagePreToolUse, hooks.StagePostToolUse} {
		for _, tool := range validateTools {
			reg, ok := s.Lookup(string(stage), string(tool), binaryName)
			if !ok {
				yellow.Fprintf(w, "  ✗ %s %s: not registered\n", stage, tool)
				continue
			}

			timeout := "default timeout"
			if reg.Timeout > 0 {
				timeout = "timeout " + reg.Timeout.String()
			}
			green.Fprintf(w, "  ✓ %s %s: %s (%s)\n", stage, tool, reg.Command, timeout)
		}
	}
}
