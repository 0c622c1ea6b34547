// SPDX-License-Identifier: MPL-2.0

// Package opener hands a resolved file to the user's editor.
//
// Command expands a shell-style template such as `code --goto "$FILE"` with
// mvdan.cc/sh word splitting and runs the result without a shell. Printer writes the
// path instead, for editors that read the command's output.
package opener
