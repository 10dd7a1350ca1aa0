// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatError(t *testing.T) {
	t.Parallel()

	if err := FormatError(nil, "test.cue"); err != nil {
		t.Errorf("FormatError(nil) = %v, want nil", err)
	}

	err := FormatError(errors.New("some error"), "test.cue")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "test.cue") || !strings.Contains(err.Error(), "some error") {
		t.Errorf("error should contain file path and message, got: %v", err)
	}
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     []string
		expected string
	}{
		{"empty path", []string{}, ""},
		{"single element", []string{"panel_id"}, "panel_id"},
		{"nested path", []string{"watch", "debounce"}, "watch.debounce"},
		{"array index", []string{"modules", "0", "name"}, "modules[0].name"},
		{"nested indices", []string{"modules", "2", "items", "10", "show_in_library"}, "modules[2].items[10].show_in_library"},
		{"leading number", []string{"0", "name"}, "0.name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := formatPath(tt.path); got != tt.expected {
				t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	if err := CheckFileSize([]byte("abc"), 3, "a.cue"); err != nil {
		t.Errorf("CheckFileSize at limit returned error: %v", err)
	}
	if err := CheckFileSize([]byte("abcd"), 3, "a.cue"); err == nil {
		t.Error("CheckFileSize over limit should return error")
	}
}
