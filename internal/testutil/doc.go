// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Common helpers include environment variable management (MustSetenv, MustUnsetenv),
// working directory changes (MustChdir) and on-disk fixture trees (MustWriteFile,
// WriteTree, UnityProject) used to exercise include resolution against real files.
package testutil
