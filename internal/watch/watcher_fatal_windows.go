// SPDX-License-Identifier: MPL-2.0

//go:build windows

package watch

import "syscall"

// fatalErrnos leave ReadDirectoryChangesW unusable. Win32 codes:
// ERROR_TOO_MANY_OPEN_FILES (4), ERROR_INVALID_HANDLE (6) when the libraries
// directory is deleted or unmounted, and ERROR_NOT_ENOUGH_MEMORY (8).
var fatalErrnos = []syscall.Errno{4, 6, 8}
