// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shaderkit/openinclude/internal/config"
	"github.com/shaderkit/openinclude/internal/issue"
	"github.com/shaderkit/openinclude/internal/resolver"
	"github.com/shaderkit/openinclude/pkg/types"

	"github.com/spf13/cobra"
)

type resolveFlags struct {
	from         string
	basePaths    []string
	includePaths []string
	explain      bool
}

// newResolveCommand creates the `openinclude resolve` command.
func newResolveCommand(app *App) *cobra.Command {
	var flags resolveFlags

	cmd := &cobra.Command{
		Use:   "resolve <target>",
		Short: "Print the file an include reference resolves to",
		Long: `Resolve an include reference and print the absolute path of the file it names.

The reference is used exactly as written between the quotes or angle brackets
of the directive. --base-path and --include-path replace the configured lists
when given, so $base_path[N] indices refer to the flag order.`,
		Example: `  openinclude resolve UnityCG.cginc --from Assets/Shaders/Toon.shader
  openinclude resolve Packages/com.unity.render-pipelines.core/ShaderLibrary/Common.hlsl --from Toon.shader
  openinclude resolve Common.hlsl --base-path /opt/sdk --include-path '$base_path[0]/include/'
  openinclude resolve Lighting.hlsl --from Toon.shader --explain`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}

			req := resolveRequest(cfg, flags, args[0])
			res := app.newResolver(cfg).Resolve(req)

			if flags.explain {
				if err := app.writeExplain(cfg, req, res); err != nil {
					return err
				}
			} else if res.Found {
				fmt.Fprintln(app.stdout, res.Path)
			}

			if !res.Found {
				return app.notFound(cfg, req.Target)
			}
			slog.Debug("resolved include", "target", req.Target, "path", res.Path, "strategy", res.Strategy)
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.from, "from", "f", "", "file containing the include directive")
	cmd.Flags().StringArrayVar(&flags.basePaths, "base-path", nil, "literal base path indexed by $base_path[N] (repeatable)")
	cmd.Flags().StringArrayVar(&flags.includePaths, "include-path", nil, "include path template (repeatable)")
	cmd.Flags().BoolVar(&flags.explain, "explain", false, "show every candidate that was tested")

	return cmd
}

// resolveRequest merges flag values over the configured search lists.
func resolveRequest(cfg *config.Config, flags resolveFlags, target string) resolver.Request {
	req := resolver.Request{
		CurrentFile:  flags.from,
		Target:       target,
		BasePaths:    cfg.BasePaths,
		IncludePaths: cfg.IncludePaths,
	}
	if len(flags.basePaths) > 0 {
		req.BasePaths = flags.basePaths
	}
	if len(flags.includePaths) > 0 {
		req.IncludePaths = flags.includePaths
	}
	return req
}

// notFound reports a failed resolution and returns the not-found exit error.
func (a *App) notFound(cfg *config.Config, target string) error {
	a.renderIssue(issue.IncludeNotFoundId, cfg.UI.ColorScheme)
	slog.Info("include not found", "target", target)
	return &ExitError{Code: types.ExitNotFound, Err: fmt.Errorf("%q was not found", target)}
}
