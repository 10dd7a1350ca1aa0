// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"testing"
)

//nolint:paralleltest // mutates process environment
func TestSetHomeDir(t *testing.T) {
	key := HomeEnvKey()
	original, had := os.LookupEnv(key)

	dir := t.TempDir()
	cleanup := SetHomeDir(t, dir)
	if got := os.Getenv(key); got != dir {
		t.Errorf("%s = %q, want %q", key, got, dir)
	}

	cleanup()
	got, has := os.LookupEnv(key)
	if has != had || got != original {
		t.Errorf("%s not restored: got %q (set=%v), want %q (set=%v)", key, got, has, original, had)
	}
}
