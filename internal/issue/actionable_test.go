// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "load library path settings"},
			expected: "failed to load library path settings",
		},
		{
			name: "operation with resource",
			err: &ActionableError{
				Operation: "load library path settings",
				Resource:  "creative_designer_paths.xml",
			},
			expected: "failed to load library path settings: creative_designer_paths.xml",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "load library manifest",
				Resource:  "libraries/doors/library.cue",
				Cause:     errors.New("unexpected EOF"),
			},
			expected: "failed to load library manifest: libraries/doors/library.cue: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_ErrorsIs(t *testing.T) {
	cause := errors.New("specific error")
	wrapped := &ActionableError{Operation: "test", Cause: cause}

	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if (&ActionableError{Operation: "test"}).Unwrap() != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name: "suggestions",
			err: &ActionableError{
				Operation:   "save library path settings",
				Suggestions: []string{"Check permissions", "Check free space"},
			},
			contains: []string{"failed to save library path settings", "• Check permissions", "• Check free space"},
		},
		{
			name: "nested chain verbose",
			err: &ActionableError{
				Operation: "discover script libraries",
				Cause: &ActionableError{
					Operation: "load library manifest",
					Cause:     errors.New("file not found"),
				},
			},
			verbose: true,
			contains: []string{
				"Error chain:",
				"1. failed to load library manifest: file not found",
				"2. file not found",
			},
		},
		{
			name: "no chain when not verbose",
			err: &ActionableError{
				Operation: "parse settings",
				Cause:     errors.New("syntax error"),
			},
			contains: []string{"failed to parse settings: syntax error"},
			excludes: []string{"Error chain:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Format(tt.verbose)
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Format() missing %q\ngot:\n%s", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("Format() should not contain %q\ngot:\n%s", s, got)
				}
			}
		})
	}
}

func TestErrorContext_Build(t *testing.T) {
	cause := errors.New("disk full")
	err := NewErrorContext().
		WithOperation("save library path settings").
		WithResource("/cfg/creative_designer_paths.xml").
		WithSuggestion("Free some space").
		WithIssue(SettingsWriteFailedId).
		Wrap(cause).
		Build()

	if err == nil {
		t.Fatal("Build() returned nil")
	}
	if err.Resource != "/cfg/creative_designer_paths.xml" {
		t.Errorf("Resource = %q", err.Resource)
	}
	if !err.HasSuggestions() {
		t.Error("expected suggestions")
	}
	if err.IssueID != SettingsWriteFailedId {
		t.Errorf("IssueID = %d, want %d", err.IssueID, SettingsWriteFailedId)
	}
	if !errors.Is(err, cause) {
		t.Error("built error should wrap cause")
	}
}

func TestErrorContext_BuildWithoutOperation(t *testing.T) {
	if NewErrorContext().WithResource("some/path").Build() != nil {
		t.Error("Build() without operation should return nil")
	}
	if err := NewErrorContext().BuildError(); err != nil {
		t.Errorf("BuildError() without operation = %v, want nil", err)
	}
}

func TestWrapWithOperation(t *testing.T) {
	if WrapWithOperation(nil, "test") != nil {
		t.Error("WrapWithOperation(nil) should return nil")
	}
	cause := errors.New("boom")
	err := WrapWithOperation(cause, "reload libraries")
	if err.Operation != "reload libraries" || !errors.Is(err, cause) {
		t.Errorf("unexpected wrap result: %+v", err)
	}
}
