// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride replaces the platform lookup in ConfigDir when set.
// os.UserHomeDir does not honor HOME on every platform, so tests pin the
// directory here instead.
var configDirOverride string

// SetConfigDirOverride makes ConfigDir return dir and returns a function
// restoring the previous value, suitable for t.Cleanup.
func SetConfigDirOverride(dir string) (restore func()) {
	previous := configDirOverride
	configDirOverride = dir
	return func() { configDirOverride = previous }
}
