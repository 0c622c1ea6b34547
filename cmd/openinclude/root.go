// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/shaderkit/openinclude/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "openinclude",
		Short: "Resolve and open files referenced by shader #include directives",
		Long: TitleStyle.Render("openinclude") + SubtitleStyle.Render(" - open the file behind an #include") + `

openinclude resolves the target of an HLSL/Cg include directive to a file on
disk and opens it in your editor. References are searched in this order:

  1. folders above the current file's folder
  2. the Assets folder of the enclosing engine project
  3. Packages/<name> and Library/PackageCache/<name>@<version>
     for "Packages/<name>/..." references
  4. the current file's folder
  5. each configured include path, with $base_path[N] replaced

` + SubtitleStyle.Render("Examples:") + `
  openinclude resolve UnityCG.cginc --from Assets/Shaders/Toon.shader
  openinclude locate --from Toon.shader --line 12
  openinclude open --from Toon.shader --line 12
  openinclude config show`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.initLogging(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default is $HOME/.config/openinclude/config.cue)")

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.AddCommand(newResolveCommand(app))
	rootCmd.AddCommand(newLocateCommand(app))
	rootCmd.AddCommand(newOpenCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newCompletionCommand())

	return rootCmd
}

// initLogging configures logging from the config file before any command
// runs. A broken config is reported as a warning here; commands that need the
// config fail when they load it.
func (a *App) initLogging(ctx context.Context) error {
	cfg, err := a.Config.Load(ctx, loadOptions(a))
	if err != nil {
		if a.verbose {
			fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, true))
		}
		return nil
	}
	if err := a.setupLogging(cfg); err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.verbose))
	}
	return nil
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the production App, runs the command tree and exits with the
// status selected by the handlers. It is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(int(types.ExitUsage))
	}

	err = fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
	_ = app.Close() // Flushes the log file; close error non-critical

	os.Exit(int(exitCodeOf(err)))
}

// exitCodeOf maps a command error to a process exit status. Errors that are
// not ExitErrors come from cobra argument or flag parsing. Out-of-range codes
// collapse to the usage status.
func exitCodeOf(err error) types.ExitCode {
	if err == nil {
		return types.ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Code.Validate() != nil {
			return types.ExitUsage
		}
		return exitErr.Code
	}
	return types.ExitUsage
}
