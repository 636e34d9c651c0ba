package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/ronlog/internal/ronlog"
	"github.com/ariel-frischer/ronlog/internal/version"
)

var (
	releaseInputDir string
	releaseOutput   string
)

var releaseCmd = &cobra.Command{
	Use:   "release <version>",
	Short: "Assemble pending fragments into the aggregate changelog",
	Long: `Collect all machine-readable fragments from the fragment storage, merge
them, and insert the result into the aggregate changelog under the given
version. Sections stay sorted by descending semantic version; releasing
an already present version merges into its section instead of adding a
duplicate. Consumed fragment files are removed.

A fragment that fails to decode is reported and skipped; the remaining
fragments are still assembled.

Examples:
  ronlog release 0.3.0
  ronlog release v1.0.0 -i fragments -O docs/CHANGELOG.ron`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRelease(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(releaseCmd)

	releaseCmd.Flags().StringVarP(&releaseInputDir, "input", "i", ".", "Fragment storage to process")
	releaseCmd.Flags().StringVarP(&releaseOutput, "output", "O", "", "Changelog file to modify")
}

func runRelease(cmd *cobra.Command, target string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if releaseOutput == "" {
		releaseOutput = cfg.Changelog
	}

	v, err := version.Parse(strings.TrimPrefix(target, "v"))
	if err != nil {
		return err
	}

	result, err := ronlog.Assemble(releaseInputDir, releaseOutput, v, time.Now())
	if err != nil {
		return err
	}

	for path, decodeErr := range result.Failed {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: skipped fragment %s: %v\n", path, decodeErr)
	}

	if len(result.Consumed) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No fragments to release in '%s'.\n", releaseInputDir)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Released %d fragments as version %s in '%s'.\n",
		len(result.Consumed), v, releaseOutput)
	return nil
}
