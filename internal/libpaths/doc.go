// SPDX-License-Identifier: MPL-2.0

// Package libpaths resolves the effective folder of every asset kind and
// persists the user's folder overrides to the XML settings file.
//
// An override is honored only while it exists on disk. A missing or empty
// override silently degrades to the kind's default folder under the library
// root, both when resolving and when saving or loading the settings file.
package libpaths
