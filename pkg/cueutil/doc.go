// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities for the library
// manifest and the application configuration.
//
// Parsing always follows the same three steps: compile the embedded schema,
// compile the user file and unify it with the schema's root definition, then
// validate and decode into a Go struct.
//
//	//go:embed library_schema.cue
//	var librarySchema string
//
//	result, err := cueutil.ParseAndDecodeString[Manifest](
//	    librarySchema,
//	    data,
//	    "#Library",
//	    cueutil.WithFilename("libraries/doors/library.cue"),
//	)
package cueutil
