// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/shaderkit/openinclude/internal/config"
	"github.com/shaderkit/openinclude/internal/resolver"

	"github.com/charmbracelet/glamour"
)

// writeExplain renders the attempt trace of res to stdout.
func (a *App) writeExplain(cfg *config.Config, req resolver.Request, res resolver.Result) error {
	var root *resolver.ProjectRoot
	if cfg.EngineHeuristic && req.CurrentFile != "" {
		if pr, ok := resolver.FindProjectRoot(a.Fs, req.CurrentFile); ok {
			root = &pr
		}
	}

	md := explainMarkdown(req, res, root)
	out, err := glamour.Render(md, glamourStyle(a.stdout, cfg.UI.ColorScheme))
	if err != nil {
		out = md
	}
	_, err = fmt.Fprint(a.stdout, out)
	return err
}

// explainMarkdown describes a resolution as markdown. root is nil when no
// engine project encloses the current file.
func explainMarkdown(req resolver.Request, res resolver.Result, root *resolver.ProjectRoot) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Resolving `%s`\n\n", req.Target)

	if req.CurrentFile == "" {
		sb.WriteString("- Current file: *none*\n")
	} else {
		fmt.Fprintf(&sb, "- Current file: `%s`\n", req.CurrentFile)
	}
	if root != nil {
		fmt.Fprintf(&sb, "- Project root: `%s`\n", root.Dir)
		if root.HasPackageCache() {
			fmt.Fprintf(&sb, "- Package cache: `%s`\n", root.PackageCache)
		}
	}
	for i, base := range req.BasePaths {
		fmt.Fprintf(&sb, "- `$base_path[%d]` = `%s`\n", i, base)
	}

	sb.WriteString("\n## Candidates\n\n")
	if len(res.Attempts) == 0 {
		sb.WriteString("No candidates were tested.\n")
	}
	for i, attempt := range res.Attempts {
		mark := "miss"
		if attempt.Hit {
			mark = "**hit**"
		}
		fmt.Fprintf(&sb, "%d. %s `%s` %s\n", i+1, attempt.Strategy, attempt.Path, mark)
	}

	sb.WriteString("\n## Result\n\n")
	if res.Found {
		fmt.Fprintf(&sb, "Resolved by **%s** to `%s`\n", res.Strategy, res.Path)
	} else {
		sb.WriteString("Not found\n")
	}

	return sb.String()
}
