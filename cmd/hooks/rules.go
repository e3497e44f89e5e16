package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/michael-freling/claude-code-hooks/internal/hooks"
	"github.com/spf13/cobra"
)

func newRulesCmd(opts *rootOptions) *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the registered rules and fixers",
		Long:  `List the blocking rules and fixers enabled by the current config, in evaluation order.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				color.NoColor = true
			}

			cfg, _, err := loadConfig(cmd.Context(), opts)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printRules(w, string(hooks.StagePreToolUse), hooks.NewPreToolUseRules(cfg))
			fmt.Fprintln(w)

			printRules(w, string(hooks.StagePostToolUse), hooks.NewPostToolUseFixers(cfg))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	return cmd
}

// describer is satisfied by both rules and fixers.
type describer interface {
	Name() string
	Description() string
}

func printRules[T describer](w io.Writer, stage string, items []T) {
	bold := color.New(color.Bold, color.FgCyan)
	gray := color.New(color.FgHiBlack)
	green := color.New(color.FgGreen)

	bold.Fprintln(w, stage)
	if len(items) == 0 {
		gray.Fprintln(w, "  (none)")
		return
	}

	width := 0
	for _, item := range items {
		if n := len(item.Name()); n > width {
			width = n
		}
	}
	for i, item := range items {
		fmt.Fprintf(w, "  %d. ", i+1)
		green.Fprintf(w, "%-*s", width, item.Name())
		gray.Fprintf(w, "  %s\n", item.Description())
	}
}
