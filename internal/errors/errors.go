// Package errors defines the stable error codes for skill-mode failures.
// Structural-parse conditions (unterminated input, no enclosing form) are
// not errors: they are ordinary states of a buffer being edited and are
// signalled by absent results, never through this package.
package errors

import "fmt"

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ConfigInvalid indicates the configuration file failed validation
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// CatalogSourceMissing indicates a configured scan root does not exist
	CatalogSourceMissing ErrorCode = "CATALOG_SOURCE_MISSING"
	// CatalogDBError indicates the catalog database could not be opened or written
	CatalogDBError ErrorCode = "CATALOG_DB_ERROR"
	// ChannelUnavailable indicates the evaluator channel could not be opened
	ChannelUnavailable ErrorCode = "CHANNEL_UNAVAILABLE"
	// LogMissing indicates the vendor session log does not exist yet
	LogMissing ErrorCode = "LOG_MISSING"
	// DepthExceeded indicates a bounded scan hit its iteration limit
	DepthExceeded ErrorCode = "DEPTH_EXCEEDED"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Command     string `json:"command,omitempty"`
	Description string `json:"description,omitempty"`
}

// ModeError represents a skill-mode error with code, message, and suggestions
type ModeError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error
}

// New creates a new ModeError
func New(code ErrorCode, message string, cause error) *ModeError {
	return &ModeError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: suggestedFixes[code],
	}
}

// Error implements the error interface
func (e *ModeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *ModeError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *ModeError) WithDetails(details interface{}) *ModeError {
	e.Details = details
	return e
}

// suggestedFixes maps error codes to suggested fix actions
var suggestedFixes = map[ErrorCode][]FixAction{
	ConfigInvalid: {
		{
			Command:     "skillmode init --force",
			Description: "Rewrite .skillmode/config.json with defaults",
		},
	},
	CatalogSourceMissing: {
		{
			Command:     "skillmode init",
			Description: "Check sourceRoots and docRoots in .skillmode/config.json",
		},
	},
	LogMissing: {
		{
			Description: "Start the vendor session, or point eval.logPath at its log file",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	return suggestedFixes[code]
}
