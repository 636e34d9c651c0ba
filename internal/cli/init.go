package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/ronlog/internal/ronlog"
)

var (
	initMessage string
	initForce   bool
	initOutput  string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialise a new aggregate changelog",
	Long: `Create an empty aggregate changelog file. An existing file is only
overwritten with --force.

Examples:
  ronlog init
  ronlog init -m "All notable changes to this project."
  ronlog init -O docs/CHANGELOG.ron --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit(cmd)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&initMessage, "message", "m", "", "Introduction text for the new changelog")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing changelog")
	initCmd.Flags().StringVarP(&initOutput, "output", "O", "", "Changelog file to create")
}

func runInit(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if initOutput == "" {
		initOutput = cfg.Changelog
	}

	created, err := ronlog.Init(initOutput, initMessage, initMessage != "", initForce)
	if err != nil {
		return err
	}

	switch {
	case created:
		fmt.Fprintf(cmd.OutOrStdout(), "Successfully initialised new CHANGELOG in '%s'.\n", initOutput)
	case initForce:
		fmt.Fprintf(cmd.OutOrStdout(), "Successfully re-initialised CHANGELOG in '%s'.\n", initOutput)
	default:
		fmt.Fprintf(cmd.ErrOrStderr(), "Use `--force` to overwrite the existing CHANGELOG in '%s'.\n", initOutput)
		return NewExitError(ExitUsage)
	}
	return nil
}
