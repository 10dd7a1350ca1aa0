// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for cdlib.
//
// This package implements the Cobra command hierarchy for the cdlib CLI:
// library path inspection and overrides, script-library discovery and
// watching, category and preview listings, and configuration management.
package cmd
