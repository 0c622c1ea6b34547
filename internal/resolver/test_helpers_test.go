// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/shaderkit/openinclude/pkg/platform"

	"github.com/spf13/afero"
)

// memTree builds an in-memory filesystem from absolute slash-separated paths.
// Paths ending in "/" become directories.
func memTree(t *testing.T, paths ...string) afero.Fs {
	t.Helper()
	if runtime.GOOS == platform.Windows {
		t.Skip("in-memory trees use rooted POSIX paths")
	}
	fsys := afero.NewMemMapFs()
	for _, p := range paths {
		full := filepath.FromSlash(p)
		if strings.HasSuffix(p, "/") {
			if err := fsys.MkdirAll(full, 0o755); err != nil {
				t.Fatalf("MkdirAll(%s) error = %v", full, err)
			}
			continue
		}
		if err := fsys.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("MkdirAll(%s) error = %v", filepath.Dir(full), err)
		}
		if err := afero.WriteFile(fsys, full, []byte(p), 0o644); err != nil {
			t.Fatalf("WriteFile(%s) error = %v", full, err)
		}
	}
	return fsys
}

func strategies(res Result) []Strategy {
	out := make([]Strategy, 0, len(res.Attempts))
	for _, a := range res.Attempts {
		out = append(out, a.Strategy)
	}
	return out
}

func hasStrategy(res Result, s Strategy) bool {
	for _, got := range strategies(res) {
		if got == s {
			return true
		}
	}
	return false
}
