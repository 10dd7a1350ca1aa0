// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"runtime"
	"testing"

	"github.com/creative-designer/cdlib/pkg/platform"
)

// HomeEnvKey returns the variable os.UserHomeDir reads on the current
// platform: USERPROFILE on Windows, HOME elsewhere.
func HomeEnvKey() string {
	if runtime.GOOS == platform.Windows {
		return "USERPROFILE"
	}
	return "HOME"
}

// SetHomeDir points the user's home directory at dir and returns the
// function restoring it:
//
//	t.Cleanup(testutil.SetHomeDir(t, t.TempDir()))
func SetHomeDir(t testing.TB, dir string) func() {
	t.Helper()
	return MustSetenv(t, HomeEnvKey(), dir)
}
