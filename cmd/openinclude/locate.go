// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/shaderkit/openinclude/internal/config"
	"github.com/shaderkit/openinclude/internal/directive"
	"github.com/shaderkit/openinclude/internal/issue"
	"github.com/shaderkit/openinclude/pkg/types"

	"github.com/spf13/cobra"
)

// newLocateCommand creates the `openinclude locate` command.
func newLocateCommand(app *App) *cobra.Command {
	var (
		from string
		line int
	)

	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Print the include target on a line of a source file",
		Long: `Print the reference of the #include directive on the given line.

Exits with status 1 when the line is not an include directive, which editors
can use to decide whether to offer "open included file".`,
		Example: `  openinclude locate --from Assets/Shaders/Toon.shader --line 12`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}

			ref, err := app.locate(cfg, from, line)
			if err != nil {
				return err
			}

			fmt.Fprintln(app.stdout, ref.Target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "", "source file to read (required)")
	cmd.Flags().IntVarP(&line, "line", "l", 0, "1-based line number (required)")
	_ = cmd.MarkFlagRequired("from") // Flag is defined above; error impossible
	_ = cmd.MarkFlagRequired("line") // Flag is defined above; error impossible

	return cmd
}

// locate finds the include reference on line of path, rendering the matching
// issue and choosing the exit status on failure.
func (a *App) locate(cfg *config.Config, path string, line int) (directive.Reference, error) {
	ref, err := directive.LocateInFile(a.Fs, path, line)
	if err == nil {
		return ref, nil
	}

	switch {
	case errors.Is(err, directive.ErrNoDirective):
		a.renderIssue(issue.NoIncludeDirectiveId, cfg.UI.ColorScheme)
		return ref, &ExitError{Code: types.ExitNotFound, Err: err}
	case errors.Is(err, fs.ErrNotExist):
		a.renderIssue(issue.CurrentFileMissingId, cfg.UI.ColorScheme)
	}
	return ref, &ExitError{Code: types.ExitUsage, Err: err}
}
