// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// executablePath is swapped in tests.
var executablePath = os.Executable

// ExecutableDir returns the directory containing the running binary with
// symlinks resolved.
func ExecutableDir() (string, error) {
	exe, err := executablePath()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
