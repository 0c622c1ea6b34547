// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var (
	plainText = rapid.StringMatching(`[A-Za-z0-9_./\\:-]{0,12}`)
	basePaths = rapid.SliceOfN(plainText, 0, 4)
)

func TestProperty_OutOfRangePlaceholderYieldsSentinel(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		bases := basePaths.Draw(t, "bases")
		idx := rapid.IntRange(len(bases), len(bases)+1000).Draw(t, "idx")
		prefix := plainText.Draw(t, "prefix")
		suffix := plainText.Draw(t, "suffix")

		got := ExpandTemplate(fmt.Sprintf("%s$base_path[%d]%s", prefix, idx, suffix), bases)
		require.Equal(t, prefix+ErrorString+suffix, got)
	})
}

func TestProperty_InRangePlaceholderYieldsBasePath(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		bases := rapid.SliceOfN(plainText, 1, 4).Draw(t, "bases")
		idx := rapid.IntRange(0, len(bases)-1).Draw(t, "idx")
		prefix := plainText.Draw(t, "prefix")
		suffix := plainText.Draw(t, "suffix")

		got := ExpandTemplate(fmt.Sprintf("%s$base_path[%d]%s", prefix, idx, suffix), bases)
		require.Equal(t, prefix+bases[idx]+suffix, got)
	})
}

func TestProperty_TemplatesWithoutPlaceholdersAreUnchanged(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		tmpl := plainText.Draw(t, "template")
		require.Equal(t, tmpl, ExpandTemplate(tmpl, basePaths.Draw(t, "bases")))
	})
}

func TestProperty_SentinelDoesNotStopSearch(t *testing.T) {
	fsys := memTree(t, "/inc/Common.hlsli")
	r := New(WithFs(fsys))

	rapid.Check(t, func(t *rapid.T) {
		bad := rapid.IntRange(1, 50).Draw(t, "bad")
		res := r.Resolve(Request{
			Target:       "Common.hlsli",
			BasePaths:    []string{"/inc/"},
			IncludePaths: []string{fmt.Sprintf("$base_path[%d]", bad), "$base_path[0]"},
		})
		require.True(t, res.Found)
		require.Equal(t, StrategyConfigured, res.Strategy)
		require.Equal(t, ErrorString+"Common.hlsli", res.Attempts[1].Path)
	})
}

func TestProperty_ResolveIsIdempotent(t *testing.T) {
	fsys := memTree(t,
		"/p/Assets/Shaders/a.hlsl",
		"/p/Assets/Shaders/Lit.hlsli",
		"/p/Assets/Common/b.hlsli",
		"/p/Packages/com.foo.bar/Runtime/x.hlsli",
		"/p/Library/PackageCache/com.foo.baz@1.0.0/Runtime/y.hlsli",
		"/inc/Shaders/Common.hlsli",
	)
	r := New(WithFs(fsys))
	targets := []string{
		"Lit.hlsli",
		"Common/b.hlsli",
		"Packages/com.foo.bar/Runtime/x.hlsli",
		`Packages\com.foo.baz\Runtime\y.hlsli`,
		"Common.hlsli",
		"Missing.hlsli",
	}

	rapid.Check(t, func(t *rapid.T) {
		req := Request{
			CurrentFile:  rapid.SampledFrom([]string{"", "/p/Assets/Shaders/a.hlsl", "/p/gone.hlsl"}).Draw(t, "current"),
			Target:       rapid.SampledFrom(targets).Draw(t, "target"),
			BasePaths:    []string{"/inc/"},
			IncludePaths: rapid.SliceOfN(rapid.SampledFrom([]string{"$base_path[0]Shaders/", "$base_path[4]", "/nowhere/"}), 0, 3).Draw(t, "includes"),
		}

		first := r.Resolve(req)
		second := r.Resolve(req)
		require.Equal(t, first, second)
		if first.Found {
			require.Equal(t, first.Path, first.Attempts[len(first.Attempts)-1].Path)
		}
	})
}
