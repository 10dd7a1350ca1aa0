// SPDX-License-Identifier: MPL-2.0

// Package scriptlibtest writes script library fixtures for tests.
//
// This package is separate from testutil so that testutil stays free of
// domain imports.
//
// # Usage
//
//	dir := scriptlibtest.Write(t, librariesDir, "doors",
//	    scriptlibtest.WithLibraryPath("scripts"),
//	    scriptlibtest.WithModule("doors", scriptlibtest.Shown("place_door")),
//	)
package scriptlibtest
