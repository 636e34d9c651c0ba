package cli

// Exit codes for the ronlog CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a generic runtime failure
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 2

	// ExitRepositoryUnavailable indicates the git repository or its
	// starting commit could not be resolved
	ExitRepositoryUnavailable = 3

	// ExitDataError indicates malformed versions or undecodable files
	ExitDataError = 4

	// ExitUsage indicates a refused destructive action (e.g. init over
	// an existing aggregate log without --force)
	ExitUsage = 5
)
