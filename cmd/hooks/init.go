package main

import (
	"fmt"
	"path/filepath"

	"github.com/michael-freling/claude-code-hooks/internal/config"
	"github.com/spf13/cobra"
)

func newInitCmd(opts *rootOptions) *cobra.Command {
	var (
		force   bool
		project bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Long: `Write the default config to ~/.config/claude-hooks/config.toml, or with
--project to .claude/hooks.toml in the current repository.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := initPath(cmd, opts, project)
			if err != nil {
				return err
			}

			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")
	cmd.Flags().BoolVar(&project, "project", false, "write the project config instead of the user config")
	return cmd
}

func initPath(cmd *cobra.Command, opts *rootOptions, project bool) (string, error) {
	if project {
		projectDir := resolveProject(cmd.Context())
		if projectDir == "" {
			return "", fmt.Errorf("failed to resolve the project directory")
		}
		return filepath.Join(projectDir, config.ProjectConfigFile), nil
	}
	if opts.configPath != "" {
		return opts.configPath, nil
	}

	dir, err := config.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, config.ConfigFileName), nil
}
