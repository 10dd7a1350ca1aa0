// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from config.cue inside the configuration root
// (~/.config/creative_designer on Linux, ~/Library/Application Support/creative_designer
// on macOS, %APPDATA%\creative_designer on Windows). The same root holds the
// library path settings file and, unless overridden, the default asset folders.
//
// The file is validated against an embedded CUE schema (config_schema.cue)
// before being merged over the defaults.
package config
