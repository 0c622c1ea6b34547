// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/openinclude/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/openinclude/config.cue on macOS, %APPDATA%\openinclude\config.cue
// on Windows), falling back to config.cue in the current directory. Values can be overridden with
// OPENINCLUDE_* environment variables (e.g. OPENINCLUDE_LOG_LEVEL=debug).
//
// The file is validated against the embedded config_schema.cue. Settings written for the original
// editor plugin (OpenHeaderEnabled, OpenHeaderBasePaths, OpenHeaderIncludePaths) can be imported
// with ImportSublimeSettings.
package config
