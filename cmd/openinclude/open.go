// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"log/slog"

	"github.com/shaderkit/openinclude/internal/issue"
	"github.com/shaderkit/openinclude/internal/opener"
	"github.com/shaderkit/openinclude/pkg/types"

	"github.com/spf13/cobra"
)

var (
	errTargetOrLine    = errors.New("exactly one of <target> or --line is required")
	errFeatureDisabled = errors.New("open included file is disabled (enabled: false)")
)

// newOpenCommand creates the `openinclude open` command, the editor action.
func newOpenCommand(app *App) *cobra.Command {
	var (
		flags     resolveFlags
		line      int
		printOnly bool
	)

	cmd := &cobra.Command{
		Use:   "open [target]",
		Short: "Resolve an include reference and open it in the editor",
		Long: `Resolve an include reference and open the file with editor.command.

The reference is either given directly or read from the #include directive on
--line of the --from file. $FILE and $DIR in editor.command are replaced with
the resolved file and its folder. Without editor.command the platform opener
(xdg-open, open or start) is used.`,
		Example: `  openinclude open --from Assets/Shaders/Toon.shader --line 12
  openinclude open UnityCG.cginc --from Assets/Shaders/Toon.shader
  openinclude open --from Toon.shader --line 12 --print`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 1) == cmd.Flags().Changed("line") {
				return &ExitError{Code: types.ExitUsage, Err: errTargetOrLine}
			}

			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}

			if !cfg.Enabled {
				app.renderIssue(issue.FeatureDisabledId, cfg.UI.ColorScheme)
				return &ExitError{Code: types.ExitUsage, Err: errFeatureDisabled}
			}

			var target string
			if len(args) == 1 {
				target = args[0]
			} else {
				ref, err := app.locate(cfg, flags.from, line)
				if err != nil {
					return err
				}
				target = ref.Target
			}

			res := app.newResolver(cfg).Resolve(resolveRequest(cfg, flags, target))
			if !res.Found {
				return app.notFound(cfg, target)
			}

			var o opener.Opener = opener.Printer{W: app.stdout}
			if !printOnly {
				o = app.NewOpener(cfg.Editor.Command, app.stdout, app.stderr)
			}
			if err := o.Open(cmd.Context(), res.Path); err != nil {
				app.renderIssue(issue.EditorLaunchFailedId, cfg.UI.ColorScheme)
				return &ExitError{Code: types.ExitUsage, Err: err}
			}

			slog.Info("opened include", "target", target, "path", res.Path, "strategy", res.Strategy)
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.from, "from", "f", "", "file containing the include directive (required)")
	cmd.Flags().IntVarP(&line, "line", "l", 0, "read the reference from this 1-based line of --from")
	cmd.Flags().StringArrayVar(&flags.basePaths, "base-path", nil, "literal base path indexed by $base_path[N] (repeatable)")
	cmd.Flags().StringArrayVar(&flags.includePaths, "include-path", nil, "include path template (repeatable)")
	cmd.Flags().BoolVar(&printOnly, "print", false, "print the resolved path instead of launching the editor")
	_ = cmd.MarkFlagRequired("from") // Flag is defined above; error impossible

	return cmd
}
