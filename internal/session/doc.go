// SPDX-License-Identifier: MPL-2.0

// Package session holds the state of one running tool instance: the folder
// overrides and their settings file, the discovered script libraries, the
// per-kind category selections and the preview cache.
//
// A Session is the only owner of that state. Every operation goes through it
// rather than through package-level globals.
package session
