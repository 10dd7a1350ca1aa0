// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package watch

import "syscall"

// fatalErrnos exhaust inotify resources: the watch limit
// (fs.inotify.max_user_watches), then the per-process and system-wide
// descriptor limits.
var fatalErrnos = []syscall.Errno{syscall.ENOSPC, syscall.EMFILE, syscall.ENFILE}
