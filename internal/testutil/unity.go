// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"testing"
)

// UnityProject lays out a minimal engine project under t.TempDir():
//
//	<tmp>/Project/Assets/Shaders/a.hlsl
//	<tmp>/Project/Packages/manifest.json
//
// plus any extra slash-separated paths relative to the project folder. It
// returns the project folder and the path of a.hlsl.
func UnityProject(t testing.TB, extra ...string) (project, shader string) {
	t.Helper()
	project = filepath.Join(t.TempDir(), "Project")
	paths := append([]string{"Assets/Shaders/a.hlsl", "Packages/manifest.json"}, extra...)
	WriteTree(t, project, paths...)
	return project, filepath.Join(project, "Assets", "Shaders", "a.hlsl")
}
