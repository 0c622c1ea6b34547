// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// suggestions for the user. The issue catalog holds longer Markdown guidance for
// the outcomes an editor user can hit (include not found, no directive on the
// line, config errors, editor launch failures) rendered with glamour.
package issue
