// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"runtime"
	"testing"
)

// SetHomeDir sets the appropriate HOME environment variable based on platform
// and returns a cleanup function to restore the original value.
//
// Platform handling:
//   - Windows: Sets USERPROFILE and APPDATA
//   - Linux/macOS: Sets HOME and clears XDG_CONFIG_HOME
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    t.Cleanup(testutil.SetHomeDir(t, t.TempDir()))
//	    // config lookups now land under the temp dir...
//	}
func SetHomeDir(t testing.TB, dir string) func() {
	t.Helper()

	var restores []func()
	switch runtime.GOOS {
	case "windows":
		restores = append(restores, MustSetenv(t, "USERPROFILE", dir), MustSetenv(t, "APPDATA", dir))
	default:
		restores = append(restores, MustSetenv(t, "HOME", dir), MustUnsetenv(t, "XDG_CONFIG_HOME"))
	}
	return func() {
		for i := len(restores) - 1; i >= 0; i-- {
			restores[i]()
		}
	}
}
