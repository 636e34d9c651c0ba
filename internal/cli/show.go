package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/ronlog/internal/ronlog"
)

var (
	showPlain bool
	showLast  int
	showInput string
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "View the aggregate changelog in the terminal",
	Long: `Render the aggregate changelog's sections, most recent version first,
with color-coded categories.

Examples:
  ronlog show
  ronlog show --last 2
  ronlog show --plain`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().BoolVar(&showPlain, "plain", false, "Plain text output (no colors)")
	showCmd.Flags().IntVar(&showLast, "last", 0, "Number of sections to show (0 = all)")
	showCmd.Flags().StringVarP(&showInput, "input", "i", "", "Changelog file to read")
}

func runShow(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if showInput == "" {
		showInput = cfg.Changelog
	}

	log, err := ronlog.Load(showInput)
	if err != nil {
		return err
	}

	if len(log.Sections) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No changelog sections found.")
		return nil
	}

	opts := ronlog.FormatOptions{Plain: showPlain, Last: showLast}
	return ronlog.FormatTerminal(log, cmd.OutOrStdout(), opts)
}
