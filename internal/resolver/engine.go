// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"path/filepath"
	"strings"

	"github.com/shaderkit/openinclude/pkg/fspath"

	"github.com/spf13/afero"
)

const (
	// AssetsDirName is the project folder holding authored assets.
	AssetsDirName = "Assets"
	// PackagesDirName is the project folder holding installed and embedded packages.
	PackagesDirName = "Packages"
	// packagesSegment is compared case-insensitively against the first reference segment.
	packagesSegment = "packages"
	// packageVersionSep separates a package name from its version in cache folder names.
	packageVersionSep = "@"
)

// PackageCacheDir is the package-cache folder, relative to the project root.
var PackageCacheDir = filepath.Join("Library", "PackageCache")

// ProjectRoot describes an engine project discovered above the current file.
type ProjectRoot struct {
	// Dir is the ancestor that contains both Assets and Packages.
	Dir string
	// Assets is Dir/Assets.
	Assets string
	// Packages is Dir/Packages.
	Packages string
	// PackageCache is Dir/Library/PackageCache, or empty when that folder has
	// not been generated yet.
	PackageCache string
}

// HasPackageCache reports whether a package-cache folder was found.
func (p ProjectRoot) HasPackageCache() bool {
	return p.PackageCache != ""
}

// FindProjectRoot walks up from currentFile and returns the closest ancestor
// that directly contains both an Assets and a Packages folder.
func FindProjectRoot(fsys afero.Fs, currentFile string) (ProjectRoot, bool) {
	r := New(WithFs(fsys))
	abs := fspath.Abs(currentFile)
	if !r.exists(abs) {
		return ProjectRoot{}, false
	}
	return r.projectRoot(ancestors(filepath.Dir(abs)))
}

// engine runs the engine-project heuristic. It yields nothing when the current
// file does not exist on disk.
func (p *probe) engine(currentFile, target string) (string, Strategy, bool) {
	abs := fspath.Abs(currentFile)
	if !p.r.exists(abs) {
		return "", StrategyNone, false
	}

	// The folder of the current file itself is skipped; the walk tests its
	// parent first and ends by testing the filesystem root a second time.
	walked := ancestors(filepath.Dir(abs))
	for _, dir := range walked {
		if candidate := fspath.Join(dir, target); p.isFile(StrategyAncestor, candidate) {
			return candidate, StrategyAncestor, true
		}
	}

	root, ok := p.r.projectRoot(walked)
	if !ok {
		return "", StrategyNone, false
	}

	if candidate := fspath.Join(root.Assets, target); p.isFile(StrategyAssets, candidate) {
		return candidate, StrategyAssets, true
	}

	return p.packageReference(root, target)
}

// packageReference resolves Packages/<name>/<path> references against the
// installed packages first and the package cache second.
func (p *probe) packageReference(root ProjectRoot, target string) (string, Strategy, bool) {
	segments := fspath.Segments(target)
	if len(segments) < 3 || !strings.EqualFold(segments[0], packagesSegment) {
		return "", StrategyNone, false
	}
	name := segments[1]
	rel := strings.Join(segments[2:], "/")

	for _, entry := range p.r.readDirNames(root.Packages) {
		if entry != name {
			continue
		}
		if candidate := fspath.Join(filepath.Join(root.Packages, entry), rel); p.isFile(StrategyPackages, candidate) {
			return candidate, StrategyPackages, true
		}
	}

	if !root.HasPackageCache() {
		return "", StrategyNone, false
	}
	for _, entry := range p.r.readDirNames(root.PackageCache) {
		if pkg, _, _ := strings.Cut(entry, packageVersionSep); pkg != name {
			continue
		}
		if candidate := fspath.Join(filepath.Join(root.PackageCache, entry), rel); p.isFile(StrategyPackageCache, candidate) {
			return candidate, StrategyPackageCache, true
		}
	}

	return "", StrategyNone, false
}

// projectRoot returns the first walked ancestor containing both Assets and Packages.
func (r *Resolver) projectRoot(walked []string) (ProjectRoot, bool) {
	for _, dir := range walked {
		assets := filepath.Join(dir, AssetsDirName)
		packages := filepath.Join(dir, PackagesDirName)
		if !r.isDir(assets) || !r.isDir(packages) {
			continue
		}
		root := ProjectRoot{Dir: dir, Assets: assets, Packages: packages}
		if cache := filepath.Join(dir, PackageCacheDir); r.isDir(cache) {
			root.PackageCache = cache
		}
		return root, true
	}
	return ProjectRoot{}, false
}

// ancestors lists the parents of folder from closest to farthest. The walk
// stops once the parent no longer changes, so the filesystem root appears twice.
func ancestors(folder string) []string {
	var walked []string
	current := folder
	for {
		parent := filepath.Dir(current)
		walked = append(walked, parent)
		if parent == current {
			return walked
		}
		current = parent
	}
}
