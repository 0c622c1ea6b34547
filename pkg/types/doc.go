// SPDX-License-Identifier: MPL-2.0

// Package types defines small validated value types shared across packages:
// process exit statuses and user-supplied filesystem paths.
package types
