// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"
)

const (
	// SeverityInfo marks an expected skip worth showing only in verbose output.
	SeverityInfo Severity = "info"
	// SeverityWarning indicates a recoverable discovery warning.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a non-fatal discovery error diagnostic.
	SeverityError Severity = "error"

	// CodeLibrariesDirMissing means the libraries directory does not exist.
	CodeLibrariesDirMissing DiagnosticCode = "libraries_dir_missing"
	// CodeLibrariesDirUnreadable means the libraries directory could not be listed.
	CodeLibrariesDirUnreadable DiagnosticCode = "libraries_dir_unreadable"
	// CodeNotALibrary means a sub-directory has no library manifest.
	CodeNotALibrary DiagnosticCode = "not_a_library"
	// CodeLibraryLoadFailed means a library manifest could not be loaded.
	CodeLibraryLoadFailed DiagnosticCode = "library_load_failed"
)

var (
	// ErrInvalidSeverity is the sentinel error wrapped by InvalidSeverityError.
	ErrInvalidSeverity = errors.New("invalid severity")
	// ErrInvalidDiagnosticCode is the sentinel error wrapped by InvalidDiagnosticCodeError.
	ErrInvalidDiagnosticCode = errors.New("invalid diagnostic code")
)

type (
	// Severity represents discovery diagnostic severity.
	Severity string

	// InvalidSeverityError is returned when a Severity value is not recognized.
	InvalidSeverityError struct {
		Value Severity
	}

	// DiagnosticCode is a machine-readable diagnostic identifier.
	DiagnosticCode string

	// InvalidDiagnosticCodeError is returned when a DiagnosticCode value is not recognized.
	InvalidDiagnosticCodeError struct {
		Value DiagnosticCode
	}

	// Diagnostic represents a structured discovery diagnostic that is returned
	// to callers (rather than written to stderr) for consistent rendering policy.
	Diagnostic struct {
		// Severity is the diagnostic level.
		Severity Severity
		// Code identifies the kind of problem.
		Code DiagnosticCode
		// Message is the human-readable description.
		Message string
		// Path is the directory or file concerned (optional).
		Path string
		// Cause is the underlying error (optional, for programmatic inspection).
		Cause error
	}
)

// IsValid returns whether the Severity is one of the defined levels.
func (s Severity) IsValid() (bool, []error) {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityError:
		return true, nil
	default:
		return false, []error{&InvalidSeverityError{Value: s}}
	}
}

// Error implements the error interface.
func (e *InvalidSeverityError) Error() string {
	return fmt.Sprintf("invalid severity %q (valid: info, warning, error)", e.Value)
}

// Unwrap returns ErrInvalidSeverity for errors.Is() compatibility.
func (e *InvalidSeverityError) Unwrap() error { return ErrInvalidSeverity }

// IsValid returns whether the DiagnosticCode is one of the defined codes.
func (c DiagnosticCode) IsValid() (bool, []error) {
	switch c {
	case CodeLibrariesDirMissing, CodeLibrariesDirUnreadable, CodeNotALibrary, CodeLibraryLoadFailed:
		return true, nil
	default:
		return false, []error{&InvalidDiagnosticCodeError{Value: c}}
	}
}

// Error implements the error interface.
func (e *InvalidDiagnosticCodeError) Error() string {
	return fmt.Sprintf("invalid diagnostic code %q", e.Value)
}

// Unwrap returns ErrInvalidDiagnosticCode for errors.Is() compatibility.
func (e *InvalidDiagnosticCodeError) Unwrap() error { return ErrInvalidDiagnosticCode }

func newDiagnostic(sev Severity, code DiagnosticCode, path, msg string, cause error) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Message: msg, Path: path, Cause: cause}
}
