// SPDX-License-Identifier: MPL-2.0

// Package platform centralizes operating-system names so host-specific defaults
// (config directory, editor launch command) share one set of constants.
package platform
