// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"path/filepath"
	"reflect"
	"runtime"
	"testing"

	"github.com/shaderkit/openinclude/internal/testutil"
	"github.com/shaderkit/openinclude/pkg/fspath"
	"github.com/shaderkit/openinclude/pkg/platform"

	"github.com/spf13/afero"
)

func TestEngine_AncestorWalkBeforeProjectScan(t *testing.T) {
	t.Parallel()

	project, shader := testutil.UnityProject(t, "Assets/Common/b.hlsli")

	res := New().Resolve(Request{CurrentFile: shader, Target: "Common/b.hlsli"})

	if !res.Found {
		t.Fatal("expected ancestor walk to resolve Common/b.hlsli")
	}
	if want := filepath.Join(project, "Assets", "Common", "b.hlsli"); res.Path != want {
		t.Errorf("Path = %q, want %q", res.Path, want)
	}
	if res.Strategy != StrategyAncestor {
		t.Errorf("Strategy = %v, want %v", res.Strategy, StrategyAncestor)
	}
	if len(res.Attempts) != 1 {
		t.Errorf("expected the first ancestor to match immediately, attempts = %+v", res.Attempts)
	}
}

func TestEngine_CurrentFolderIsNotWalked(t *testing.T) {
	t.Parallel()

	fsys := memTree(t,
		"/p/Assets/Shaders/a.hlsl",
		"/p/Assets/Shaders/Lit.hlsli",
		"/p/Packages/",
	)

	res := New(WithFs(fsys)).Resolve(Request{CurrentFile: "/p/Assets/Shaders/a.hlsl", Target: "Lit.hlsli"})

	if res.Strategy != StrategyAdjacent {
		t.Errorf("Strategy = %v, want %v (the sibling is found by the fallback search)", res.Strategy, StrategyAdjacent)
	}
	for _, a := range res.Attempts {
		if a.Strategy == StrategyAncestor && filepath.Dir(a.Path) == fspath.Clean("/p/Assets/Shaders") {
			t.Errorf("ancestor walk tested the current folder: %s", a.Path)
		}
	}
}

func TestEngine_AssetsRoot(t *testing.T) {
	t.Parallel()

	// The current file lives outside Assets, so no walked ancestor reaches
	// Assets/Lib and only the project-root lookup can resolve the reference.
	fsys := memTree(t,
		"/p/Tools/Bake/a.hlsl",
		"/p/Assets/Lib/Noise.hlsli",
		"/p/Packages/",
	)

	res := New(WithFs(fsys)).Resolve(Request{CurrentFile: "/p/Tools/Bake/a.hlsl", Target: "Lib/Noise.hlsli"})
	if res.Strategy != StrategyAssets {
		t.Fatalf("Strategy = %v, want %v; attempts %+v", res.Strategy, StrategyAssets, res.Attempts)
	}
	if want := fspath.Abs("/p/Assets/Lib/Noise.hlsli"); res.Path != want {
		t.Errorf("Path = %q, want %q", res.Path, want)
	}
}

func TestEngine_InstalledPackage(t *testing.T) {
	t.Parallel()

	project, shader := testutil.UnityProject(t, "Packages/com.foo.bar/Runtime/x.hlsli")

	res := New().Resolve(Request{CurrentFile: shader, Target: "Packages/com.foo.bar/Runtime/x.hlsli"})

	if !res.Found {
		t.Fatal("expected package reference to resolve")
	}
	if want := filepath.Join(project, "Packages", "com.foo.bar", "Runtime", "x.hlsli"); res.Path != want {
		t.Errorf("Path = %q, want %q", res.Path, want)
	}
}

func TestEngine_InstalledPackageByName(t *testing.T) {
	t.Parallel()

	// A lowercase "packages" segment never matches the Packages folder by
	// ancestor walk on a case-sensitive filesystem, so only the package scan
	// can find it.
	fsys := memTree(t,
		"/p/Assets/Shaders/a.hlsl",
		"/p/Packages/com.foo.bar/Runtime/x.hlsli",
	)

	res := New(WithFs(fsys)).Resolve(Request{CurrentFile: "/p/Assets/Shaders/a.hlsl", Target: `packages\com.foo.bar\Runtime/x.hlsli`})

	if res.Strategy != StrategyPackages {
		t.Fatalf("Strategy = %v, want %v; attempts %+v", res.Strategy, StrategyPackages, res.Attempts)
	}
	if want := fspath.Abs("/p/Packages/com.foo.bar/Runtime/x.hlsli"); res.Path != want {
		t.Errorf("Path = %q, want %q", res.Path, want)
	}
}

func TestEngine_PackageNameIsCaseSensitive(t *testing.T) {
	t.Parallel()

	fsys := memTree(t,
		"/p/Assets/Shaders/a.hlsl",
		"/p/Packages/com.foo.bar/Runtime/x.hlsli",
	)

	res := New(WithFs(fsys)).Resolve(Request{CurrentFile: "/p/Assets/Shaders/a.hlsl", Target: "packages/COM.FOO.BAR/Runtime/x.hlsli"})
	if res.Found {
		t.Errorf("package names must match exactly, got %q via %v", res.Path, res.Strategy)
	}
}

func TestEngine_PackageCache(t *testing.T) {
	t.Parallel()

	project, shader := testutil.UnityProject(t, "Library/PackageCache/com.foo.bar@1.2.3/Runtime/x.hlsli")

	res := New().Resolve(Request{CurrentFile: shader, Target: "Packages/com.foo.bar/Runtime/x.hlsli"})

	if !res.Found {
		t.Fatal("expected package-cache reference to resolve")
	}
	want := filepath.Join(project, "Library", "PackageCache", "com.foo.bar@1.2.3", "Runtime", "x.hlsli")
	if res.Path != want {
		t.Errorf("Path = %q, want %q", res.Path, want)
	}
	if res.Strategy != StrategyPackageCache {
		t.Errorf("Strategy = %v, want %v", res.Strategy, StrategyPackageCache)
	}
}

func TestEngine_PackageCacheVersions(t *testing.T) {
	t.Parallel()

	fsys := memTree(t,
		"/p/Assets/Shaders/a.hlsl",
		"/p/Packages/manifest.json",
		"/p/Library/PackageCache/com.foo.bar.extra@9.0.0/Runtime/x.hlsli",
		"/p/Library/PackageCache/com.foo.bar@1.0.0/Other/y.hlsli",
		"/p/Library/PackageCache/com.foo.bar@2.0.0/Runtime/x.hlsli",
	)

	res := New(WithFs(fsys)).Resolve(Request{CurrentFile: "/p/Assets/Shaders/a.hlsl", Target: "Packages/com.foo.bar/Runtime/x.hlsli"})

	if want := fspath.Abs("/p/Library/PackageCache/com.foo.bar@2.0.0/Runtime/x.hlsli"); res.Path != want {
		t.Errorf("Path = %q, want %q", res.Path, want)
	}
}

func TestEngine_InstalledPackagePreferredOverCache(t *testing.T) {
	t.Parallel()

	fsys := memTree(t,
		"/p/Assets/Shaders/a.hlsl",
		"/p/Packages/com.foo.bar/Runtime/x.hlsli",
		"/p/Library/PackageCache/com.foo.bar@1.0.0/Runtime/x.hlsli",
	)

	res := New(WithFs(fsys)).Resolve(Request{CurrentFile: "/p/Assets/Shaders/a.hlsl", Target: "PACKAGES/com.foo.bar/Runtime/x.hlsli"})
	if res.Strategy != StrategyPackages {
		t.Errorf("Strategy = %v, want %v", res.Strategy, StrategyPackages)
	}
}

func TestEngine_PackageCacheMissingIsSkipped(t *testing.T) {
	t.Parallel()

	fsys := memTree(t,
		"/p/Assets/Shaders/a.hlsl",
		"/p/Packages/manifest.json",
	)

	res := New(WithFs(fsys)).Resolve(Request{CurrentFile: "/p/Assets/Shaders/a.hlsl", Target: "Packages/com.foo.bar/Runtime/x.hlsli"})
	if res.Found || hasStrategy(res, StrategyPackageCache) {
		t.Errorf("expected no package-cache probing without Library/PackageCache, got %+v", res)
	}
}

func TestEngine_ShortPackageReference(t *testing.T) {
	t.Parallel()

	fsys := memTree(t,
		"/p/Assets/Shaders/a.hlsl",
		"/p/Packages/com.foo.bar/x.hlsli",
		"/p/Library/PackageCache/",
	)

	res := New(WithFs(fsys)).Resolve(Request{CurrentFile: "/p/Assets/Shaders/a.hlsl", Target: "packages/com.foo.bar"})
	if hasStrategy(res, StrategyPackages) || hasStrategy(res, StrategyPackageCache) {
		t.Errorf("references with fewer than three segments must skip the package scan, attempts %+v", res.Attempts)
	}
}

func TestEngine_MissingCurrentFileSkipsHeuristic(t *testing.T) {
	t.Parallel()

	fsys := memTree(t,
		"/p/Assets/Common/b.hlsli",
		"/p/Packages/",
	)

	res := New(WithFs(fsys)).Resolve(Request{CurrentFile: "/p/Assets/Shaders/unsaved.hlsl", Target: "Common/b.hlsli"})
	if res.Found {
		t.Errorf("expected not found, got %q", res.Path)
	}
	if hasStrategy(res, StrategyAncestor) || hasStrategy(res, StrategyAssets) {
		t.Errorf("heuristic ran for a missing current file: %v", strategies(res))
	}
	if !hasStrategy(res, StrategyAdjacent) {
		t.Error("fallback search should still run")
	}
}

func TestEngine_Disabled(t *testing.T) {
	t.Parallel()

	fsys := memTree(t,
		"/p/Assets/Shaders/a.hlsl",
		"/p/Assets/Common/b.hlsli",
		"/p/Packages/",
	)

	res := New(WithFs(fsys), WithEngineHeuristic(false)).Resolve(Request{CurrentFile: "/p/Assets/Shaders/a.hlsl", Target: "Common/b.hlsli"})
	if res.Found {
		t.Errorf("expected not found with heuristic disabled, got %q via %v", res.Path, res.Strategy)
	}
}

func TestEngine_ClosestProjectRootWins(t *testing.T) {
	t.Parallel()

	fsys := memTree(t,
		"/outer/Assets/Lib/Noise.hlsli",
		"/outer/Packages/",
		"/outer/Nested/Assets/Lib/Noise.hlsli",
		"/outer/Nested/Packages/",
		"/outer/Nested/Tools/Bake/a.hlsl",
	)

	root, ok := FindProjectRoot(fsys, "/outer/Nested/Tools/Bake/a.hlsl")
	if !ok {
		t.Fatal("FindProjectRoot() found nothing")
	}
	if want := fspath.Abs("/outer/Nested"); root.Dir != want {
		t.Errorf("Dir = %q, want %q", root.Dir, want)
	}
	if root.HasPackageCache() {
		t.Errorf("PackageCache = %q, want empty", root.PackageCache)
	}

	res := New(WithFs(fsys)).Resolve(Request{CurrentFile: "/outer/Nested/Tools/Bake/a.hlsl", Target: "Lib/Noise.hlsli"})
	if want := fspath.Abs("/outer/Nested/Assets/Lib/Noise.hlsli"); res.Path != want {
		t.Errorf("Path = %q, want %q", res.Path, want)
	}
}

func TestFindProjectRoot_PackageCache(t *testing.T) {
	t.Parallel()

	project, shader := testutil.UnityProject(t, "Library/PackageCache/")

	root, ok := FindProjectRoot(afero.NewOsFs(), shader)
	if !ok {
		t.Fatal("FindProjectRoot() found nothing")
	}
	if root.Dir != project {
		t.Errorf("Dir = %q, want %q", root.Dir, project)
	}
	if want := filepath.Join(project, "Library", "PackageCache"); root.PackageCache != want {
		t.Errorf("PackageCache = %q, want %q", root.PackageCache, want)
	}
	if want := filepath.Join(project, "Assets"); root.Assets != want {
		t.Errorf("Assets = %q, want %q", root.Assets, want)
	}
}

func TestFindProjectRoot_MissingFile(t *testing.T) {
	t.Parallel()

	if _, ok := FindProjectRoot(afero.NewMemMapFs(), "/nowhere/a.hlsl"); ok {
		t.Error("expected no project root for a missing file")
	}
}

func TestAncestors(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == platform.Windows {
		t.Skip("POSIX paths")
	}

	got := ancestors("/a/b/c")
	want := []string{"/a/b", "/a", "/", "/"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ancestors() = %q, want %q", got, want)
	}

	got = ancestors("/")
	if !reflect.DeepEqual(got, []string{"/"}) {
		t.Errorf("ancestors(/) = %q, want [/]", got)
	}
}
