// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// It centralizes runtime.GOOS names and the lookup of the directory the
// running executable lives in, which anchors the bundled libraries folder.
package platform
