// SPDX-License-Identifier: MPL-2.0

// Package discovery finds the script libraries bundled in the libraries
// directory and keeps them in a Registry.
//
// Every Discover call rebuilds the registry from scratch, so repeated calls
// (for example on every reload) never accumulate duplicates. Problems found
// along the way are returned as Diagnostic values for the caller to render.
//
// File organization:
//   - diagnostic.go: Severity, DiagnosticCode and Diagnostic
//   - registry.go: the ordered library registry
//   - discovery.go: Discovery, its options and the Discover pass
package discovery
