// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteTree(t *testing.T) {
	t.Parallel()

	root := WriteTree(t, t.TempDir(), "a/b.hlsli", "empty/")

	data, err := os.ReadFile(filepath.Join(root, "a", "b.hlsli"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "// a/b.hlsli\n" {
		t.Errorf("content = %q", data)
	}

	info, err := os.Stat(filepath.Join(root, "empty"))
	if err != nil || !info.IsDir() {
		t.Errorf("empty/ should be a directory, stat err = %v", err)
	}
}

func TestUnityProject(t *testing.T) {
	t.Parallel()

	project, shader := UnityProject(t, "Library/PackageCache/")

	for _, p := range []string{
		shader,
		filepath.Join(project, "Packages"),
		filepath.Join(project, "Library", "PackageCache"),
	} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected %s to exist: %v", p, err)
		}
	}
}

func TestMustSetenv_Restores(t *testing.T) {
	const key = "OPENINCLUDE_TESTUTIL_PROBE"
	restore := MustSetenv(t, key, "set")
	if got := os.Getenv(key); got != "set" {
		t.Fatalf("Getenv() = %q, want %q", got, "set")
	}
	restore()
	if _, ok := os.LookupEnv(key); ok {
		t.Error("expected variable to be unset after restore")
	}
}
