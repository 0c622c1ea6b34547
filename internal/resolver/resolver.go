// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/shaderkit/openinclude/pkg/fspath"

	"github.com/spf13/afero"
)

const (
	// StrategyNone means nothing matched.
	StrategyNone Strategy = iota
	// StrategyAncestor matched the reference relative to an ancestor of the current file's folder.
	StrategyAncestor
	// StrategyAssets matched the reference under the project's Assets folder.
	StrategyAssets
	// StrategyPackages matched inside an installed package under Packages.
	StrategyPackages
	// StrategyPackageCache matched inside a package copy under Library/PackageCache.
	StrategyPackageCache
	// StrategyAdjacent matched next to the current file.
	StrategyAdjacent
	// StrategyConfigured matched under a configured include path.
	StrategyConfigured
)

type (
	// Strategy identifies which search layer produced a candidate.
	Strategy int

	// Request holds the inputs of a single resolution.
	Request struct {
		// CurrentFile is the path of the file containing the include directive.
		// Empty when the buffer has never been saved.
		CurrentFile string
		// Target is the include reference exactly as written in source.
		Target string
		// BasePaths are the literal paths that $base_path[N] placeholders index into.
		BasePaths []string
		// IncludePaths are the include path templates, searched in order.
		IncludePaths []string
	}

	// Attempt records one candidate path that was tested.
	Attempt struct {
		Strategy Strategy
		Path     string
		Hit      bool
	}

	// Result is the outcome of a resolution.
	Result struct {
		// Path is the absolute path of the resolved file. Empty unless Found.
		Path string
		// Found reports whether any candidate existed.
		Found bool
		// Strategy is the layer that produced Path.
		Strategy Strategy
		// Attempts lists every candidate in the order it was tested.
		Attempts []Attempt
	}

	// Option configures a Resolver.
	Option func(*Resolver)

	// Resolver resolves include references against a filesystem.
	// A Resolver holds no per-call state and may be reused.
	Resolver struct {
		fs     afero.Fs
		engine bool
		logger *slog.Logger
	}

	// probe accumulates the attempts of one Resolve call.
	probe struct {
		r        *Resolver
		attempts []Attempt
	}
)

// String returns a human-readable strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyNone:
		return "none"
	case StrategyAncestor:
		return "ancestor"
	case StrategyAssets:
		return "assets"
	case StrategyPackages:
		return "packages"
	case StrategyPackageCache:
		return "package-cache"
	case StrategyAdjacent:
		return "adjacent"
	case StrategyConfigured:
		return "configured"
	default:
		return "unknown"
	}
}

// WithFs sets the filesystem probed during resolution. Defaults to the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(r *Resolver) {
		r.fs = fsys
	}
}

// WithEngineHeuristic enables or disables the engine-project search. Enabled by default.
func WithEngineHeuristic(enabled bool) Option {
	return func(r *Resolver) {
		r.engine = enabled
	}
}

// WithLogger sets the logger used for debug output. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// New creates a Resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		fs:     afero.NewOsFs(),
		engine: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Resolve is a convenience wrapper that resolves against the OS filesystem with
// default options.
func Resolve(currentFile, target string, basePaths, includePaths []string) (string, bool) {
	res := New().Resolve(Request{
		CurrentFile:  currentFile,
		Target:       target,
		BasePaths:    basePaths,
		IncludePaths: includePaths,
	})
	return res.Path, res.Found
}

// Resolve searches for req.Target. The engine-project heuristic runs first; if
// it finds nothing, the current file's folder and then each expanded include
// path are tried in order. The first existing regular file wins.
func (r *Resolver) Resolve(req Request) Result {
	p := &probe{r: r}

	if req.Target == "" {
		return p.result("", StrategyNone)
	}

	if r.engine && req.CurrentFile != "" {
		if path, strategy, ok := p.engine(req.CurrentFile, req.Target); ok {
			return p.result(path, strategy)
		}
	}

	bases := make([]string, 0, 1+len(req.IncludePaths))
	bases = append(bases, fspath.DirPrefix(req.CurrentFile))
	bases = append(bases, ExpandTemplates(req.IncludePaths, req.BasePaths)...)

	for i, base := range bases {
		strategy := StrategyConfigured
		if i == 0 {
			strategy = StrategyAdjacent
		}
		candidate := fspath.Concat(base, req.Target)
		if p.isFile(strategy, candidate) {
			return p.result(candidate, strategy)
		}
	}

	return p.result("", StrategyNone)
}

func (p *probe) result(path string, strategy Strategy) Result {
	res := Result{Strategy: strategy, Attempts: p.attempts}
	if path != "" {
		res.Path = fspath.Abs(path)
		res.Found = true
	}
	return res
}

// isFile tests candidate and records the attempt.
func (p *probe) isFile(strategy Strategy, candidate string) bool {
	info, err := p.r.fs.Stat(candidate)
	hit := err == nil && info.Mode().IsRegular()
	if err != nil {
		p.r.logStatError(candidate, err)
	}
	p.attempts = append(p.attempts, Attempt{Strategy: strategy, Path: candidate, Hit: hit})
	return hit
}

// exists reports whether path exists at all. It is not recorded as an attempt.
func (r *Resolver) exists(path string) bool {
	_, err := r.fs.Stat(path)
	if err != nil {
		r.logStatError(path, err)
		return false
	}
	return true
}

func (r *Resolver) isDir(path string) bool {
	info, err := r.fs.Stat(path)
	if err != nil {
		r.logStatError(path, err)
		return false
	}
	return info.IsDir()
}

// readDirNames lists the entry names of dir in lexical order. A directory that
// cannot be read yields no names.
func (r *Resolver) readDirNames(dir string) []string {
	infos, err := afero.ReadDir(r.fs, dir)
	if err != nil {
		r.logStatError(dir, err)
		return nil
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name())
	}
	return names
}

func (r *Resolver) logStatError(path string, err error) {
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	r.logger.Debug("treating unreadable path as missing", "path", path, "error", err)
}
