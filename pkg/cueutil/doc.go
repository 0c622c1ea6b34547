// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// Both inputs openinclude reads from disk go through CUE: its own config.cue
// and the JSON settings file of the original editor plugin (CUE accepts JSON
// with comments and trailing commas). The package wraps the common flow:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with schema
//  3. Validate and decode to a Go struct
//
// # Usage
//
//	//go:embed settings_schema.cue
//	var schema []byte
//
//	result, err := cueutil.ParseAndDecode[Settings](
//	    schema,
//	    data,
//	    "#Settings",
//	    cueutil.WithFilename(path),
//	)
package cueutil
