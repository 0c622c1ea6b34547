// SPDX-License-Identifier: MPL-2.0

// Package fspath holds the path-string helpers shared by include resolution.
//
// Include references arrive exactly as written in shader source, so they may use
// forward or backward slashes regardless of the host. These helpers convert both
// styles to the host separator before any filesystem call is made.
package fspath

import (
	"path/filepath"
	"strings"
)

// Normalize converts every '/' and '\' in p to the host path separator.
// It does not clean the path; callers that need a canonical form use Clean.
func Normalize(p string) string {
	if filepath.Separator == '/' {
		return strings.ReplaceAll(p, `\`, "/")
	}
	return strings.ReplaceAll(p, "/", string(filepath.Separator))
}

// Clean normalizes separators and then applies filepath.Clean.
func Clean(p string) string {
	return filepath.Clean(Normalize(p))
}

// Concat appends ref to base as plain text and normalizes the result.
// No separator is inserted between the two parts: a configured base path
// without a trailing separator is glued directly onto the reference.
func Concat(base, ref string) string {
	return Normalize(base + ref)
}

// Join resolves ref against dir. An absolute ref replaces dir entirely.
func Join(dir, ref string) string {
	ref = Normalize(ref)
	if filepath.IsAbs(ref) {
		return filepath.Clean(ref)
	}
	return filepath.Join(dir, ref)
}

// Segments splits ref on both separator styles. Empty segments produced by
// doubled or leading separators are kept so positions stay meaningful.
func Segments(ref string) []string {
	var parts []string
	for _, p := range strings.Split(ref, `\`) {
		parts = append(parts, strings.Split(p, "/")...)
	}
	return parts
}

// DirPrefix returns the directory of file followed by a separator, or the
// empty string when file is empty.
func DirPrefix(file string) string {
	if file == "" {
		return ""
	}
	dir := filepath.Dir(Normalize(file))
	if strings.HasSuffix(dir, string(filepath.Separator)) {
		return dir
	}
	return dir + string(filepath.Separator)
}

// Abs returns the absolute, cleaned form of p. When the working directory
// cannot be determined the cleaned path is returned unchanged.
func Abs(p string) string {
	abs, err := filepath.Abs(Normalize(p))
	if err != nil {
		return filepath.Clean(Normalize(p))
	}
	return abs
}
