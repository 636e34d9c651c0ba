// Package cli wires the ronlog commands: harvesting changelog fragments
// from commit messages, initialising and releasing the aggregate log, and
// viewing it in the terminal.
package cli

import (
	stderrors "errors"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/ronlog/internal/build"
	"github.com/ariel-frischer/ronlog/internal/config"
	"github.com/ariel-frischer/ronlog/internal/errors"
)

var (
	// Global flags
	configPath  string
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "ronlog",
	Short: "Changelog fragments from commit messages",
	Long: `ronlog turns commit messages into categorized changelog fragments and
assembles them into a single version-sorted aggregate log.

Commits carry their category inline ("Added: support for X"); harvest
splits them apart, groups them, and writes one fragment file per run.
release folds all pending fragments into the CHANGELOG under a target
version, keeping sections sorted by descending semantic version.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			logger.SetLevel(logger.DebugLevel)
		}
	},
}

func init() {
	rootCmd.Version = build.Info()
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Project config file (default: .ronlog.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command, prints structured errors, and returns
// the mapped process error.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if !stderrors.As(err, &exitErr) {
		errors.Print(err)
	}
	return err
}

// ExitCode maps an Execute error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.Code
	}

	category := errors.Categorize(err)
	var cliErr *errors.CLIError
	if stderrors.As(err, &cliErr) {
		category = cliErr.Category
	}

	switch category {
	case errors.Argument:
		return ExitInvalidArguments
	case errors.Repository:
		return ExitRepositoryUnavailable
	case errors.Data:
		return ExitDataError
	default:
		return ExitFailure
	}
}

// loadConfig loads the layered configuration honoring the --config flag.
func loadConfig() (*config.Configuration, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.Configuration,
			"Check the syntax of .ronlog.yml",
			"Run 'ronlog --help' for the expected keys")
	}
	if cfg.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}
	return cfg, nil
}

// ExitError carries an explicit exit code through cobra.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError returns an error that maps to the given exit code without
// further messaging; the command has already reported the problem.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}
