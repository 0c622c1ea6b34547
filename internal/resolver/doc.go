// SPDX-License-Identifier: MPL-2.0

// Package resolver turns an include reference written in a shader source file
// into an existing file on disk.
//
// Resolution is a layered, first-match-wins search:
//
//  1. The engine-project heuristic: walk the ancestors of the current file,
//     then look for a project root holding both an Assets and a Packages folder
//     and resolve the reference against Assets, an installed package, or the
//     Library/PackageCache copy of a package.
//  2. The directory of the current file, followed by every configured include
//     path after $base_path[N] placeholders have been expanded.
//
// A reference that cannot be found is an ordinary outcome, not an error:
// Resolve reports it through Result.Found. Filesystem errors encountered while
// probing are logged at debug level and treated as misses.
package resolver
