// Package errors provides structured error handling for the ronlog CLI.
// It defines the pipeline error taxonomy (repository access, malformed
// versions, file I/O, encoding round-trips) together with categorized
// display errors carrying actionable remediation guidance.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory represents the type of error that occurred.
type ErrorCategory int

const (
	// Argument errors are caused by invalid or missing command arguments.
	Argument ErrorCategory = iota
	// Configuration errors are caused by invalid or missing configuration.
	Configuration
	// Repository errors occur when the git repository cannot be accessed.
	Repository
	// Data errors are caused by malformed versions or undecodable files.
	Data
	// Runtime errors occur during command execution.
	Runtime
)

// String returns a human-readable name for the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Argument:
		return "Argument Error"
	case Configuration:
		return "Configuration Error"
	case Repository:
		return "Repository Error"
	case Data:
		return "Data Error"
	case Runtime:
		return "Runtime Error"
	default:
		return "Error"
	}
}

// RepositoryAccessError is returned when the starting point of a commit
// walk cannot be resolved (missing repository, unborn HEAD, unresolvable
// revision). It aborts the whole harvesting pipeline: a partial commit
// list would silently under-report changes.
type RepositoryAccessError struct {
	Path   string
	Reason string
	Err    error
}

func (e *RepositoryAccessError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("repository %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("repository: %s", e.Reason)
}

func (e *RepositoryAccessError) Unwrap() error { return e.Err }

// MalformedVersionError is returned when a version string does not parse
// as a numeric major.minor.patch triple.
type MalformedVersionError struct {
	Input  string
	Reason string
}

func (e *MalformedVersionError) Error() string {
	return fmt.Sprintf("malformed version %q: %s", e.Input, e.Reason)
}

// IoError is returned when a specific read or write attempt fails.
// The caller decides whether to retry.
type IoError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }

// EncodingError is returned when a machine-readable fragment or aggregate
// file fails to decode. It is fatal for that file only; other files
// continue processing independently.
type EncodingError struct {
	Path   string // empty when decoding from memory
	Line   int    // 1-based line of the offending input, 0 when unknown
	Reason string
}

func (e *EncodingError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
	case e.Path != "":
		return fmt.Sprintf("%s: %s", e.Path, e.Reason)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	default:
		return e.Reason
	}
}

// DuplicateSectionError reports two aggregate log sections sharing one
// version. The merge-on-insert rule makes this unreachable from the public
// API; seeing it indicates a programming defect, not a user error.
type DuplicateSectionError struct {
	Version string
}

func (e *DuplicateSectionError) Error() string {
	return fmt.Sprintf("internal error: duplicate unmerged section for version %s", e.Version)
}

// IsRepositoryAccess returns true if the error is a RepositoryAccessError.
func IsRepositoryAccess(err error) bool {
	var target *RepositoryAccessError
	return errors.As(err, &target)
}

// IsMalformedVersion returns true if the error is a MalformedVersionError.
func IsMalformedVersion(err error) bool {
	var target *MalformedVersionError
	return errors.As(err, &target)
}

// IsEncoding returns true if the error is an EncodingError.
func IsEncoding(err error) bool {
	var target *EncodingError
	return errors.As(err, &target)
}

// CLIError is a structured error with category and remediation guidance.
type CLIError struct {
	// Category is the type of error (Argument, Repository, etc.)
	Category ErrorCategory
	// Message is a human-readable description of what went wrong.
	Message string
	// Remediation is a list of actionable steps to resolve the error.
	Remediation []string
	// Usage shows the correct command syntax (optional, for argument errors).
	Usage string
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	return e.Message
}

// NewArgumentError creates a new argument error with the given message and remediation steps.
func NewArgumentError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Argument,
		Message:     message,
		Remediation: remediation,
	}
}

// NewConfigError creates a new configuration error.
func NewConfigError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Configuration,
		Message:     message,
		Remediation: remediation,
	}
}

// NewRuntimeError creates a new runtime error.
func NewRuntimeError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Runtime,
		Message:     message,
		Remediation: remediation,
	}
}

// Wrap wraps an existing error with a CLIError, preserving the original message.
func Wrap(err error, category ErrorCategory, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     err.Error(),
		Remediation: remediation,
	}
}

// Categorize maps a pipeline error to the display category used for it.
func Categorize(err error) ErrorCategory {
	switch {
	case IsRepositoryAccess(err):
		return Repository
	case IsMalformedVersion(err), IsEncoding(err):
		return Data
	default:
		return Runtime
	}
}
