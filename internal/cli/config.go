package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/ronlog/internal/config"
	"github.com/ariel-frischer/ronlog/internal/errors"
	"github.com/ariel-frischer/ronlog/internal/fsio"
)

var (
	configInitPath  string
	configInitForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the ronlog configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented configuration template",
	Long: `Create a project configuration file pre-filled with the defaults and a
comment per key. An existing file is only overwritten with --force.

Configuration precedence (highest to lowest):
  1. Environment variables (RONLOG_*)
  2. Project config (.ronlog.yml)
  3. User config (~/.config/ronlog/config.yml)
  4. Built-in defaults

Examples:
  ronlog config init
  ronlog config init -O configs/.ronlog.yml --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInit(cmd)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().StringVarP(&configInitPath, "output", "O", "", "Config file to create (default: .ronlog.yml)")
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing config file")
}

func runConfigInit(cmd *cobra.Command) error {
	path := configInitPath
	if path == "" {
		path = config.ProjectConfigPath()
	}

	if fsio.Exists(path) && !configInitForce {
		fmt.Fprintf(cmd.ErrOrStderr(), "Use `--force` to overwrite the existing config in '%s'.\n", path)
		return NewExitError(ExitUsage)
	}

	if err := fsio.WriteFileAtomic(path, []byte(config.DefaultConfigTemplate())); err != nil {
		return errors.NewRuntimeError(
			fmt.Sprintf("cannot write config template to %s: %v", path, err),
			"Check that the target directory exists and is writable")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote config template to '%s'.\n", path)
	return nil
}
