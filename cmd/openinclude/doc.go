// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for openinclude.
//
// The command tree is built by NewRootCommand around an App, which carries the
// configuration provider, the filesystem used for resolution and the editor
// opener. Handlers return *ExitError to select the process exit code:
// 0 when the include was resolved, 1 when it was not found and 2 for usage or
// configuration errors.
package cmd
