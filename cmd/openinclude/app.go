// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/shaderkit/openinclude/internal/config"
	"github.com/shaderkit/openinclude/internal/issue"
	"github.com/shaderkit/openinclude/internal/opener"
	"github.com/shaderkit/openinclude/internal/resolver"
	"github.com/shaderkit/openinclude/pkg/types"

	"github.com/spf13/afero"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer; all Cobra command handlers receive an App reference.
	App struct {
		Config    ConfigProvider
		Fs        afero.Fs
		NewOpener OpenerFactory
		stdout    io.Writer
		stderr    io.Writer

		// Persistent flag values, bound by NewRootCommand.
		verbose    bool
		configPath string

		logger    *slog.Logger
		logCloser io.Closer
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config    ConfigProvider
		Fs        afero.Fs
		NewOpener OpenerFactory
		Stdout    io.Writer
		Stderr    io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// OpenerFactory builds the editor opener from the configured command
	// template. An empty template selects the platform default.
	OpenerFactory func(template string, stdout, stderr io.Writer) opener.Opener
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.NewOpener == nil {
		deps.NewOpener = defaultOpener
	}

	return &App{
		Config:    deps.Config,
		Fs:        deps.Fs,
		NewOpener: deps.NewOpener,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
		logger:    slog.Default(),
	}, nil
}

func defaultOpener(template string, stdout, stderr io.Writer) opener.Opener {
	return &opener.Command{Template: template, Stdout: stdout, Stderr: stderr}
}

// loadConfig loads configuration honoring --config. Failures are rendered with
// the config issue and mapped to the usage exit code.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, loadOptions(a))
	if err != nil {
		a.renderIssue(issue.ConfigLoadFailedId, config.ColorSchemeAuto)
		return nil, &ExitError{Code: types.ExitUsage, Err: err}
	}
	return cfg, nil
}

// loadOptions translates the persistent flags into provider options.
func loadOptions(a *App) config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: types.FilesystemPath(a.configPath)}
}

// newResolver builds a resolver for cfg on the App filesystem.
func (a *App) newResolver(cfg *config.Config) *resolver.Resolver {
	return resolver.New(
		resolver.WithFs(a.Fs),
		resolver.WithEngineHeuristic(cfg.EngineHeuristic),
		resolver.WithLogger(a.logger),
	)
}

// renderIssue writes a catalog entry to stderr. Rendering failures fall back
// to the raw markdown.
func (a *App) renderIssue(id issue.Id, scheme config.ColorScheme) {
	entry := issue.Get(id)
	if entry == nil {
		return
	}
	rendered, err := entry.Render(glamourStyle(a.stderr, scheme))
	if err != nil {
		rendered = string(entry.MarkdownMsg())
	}
	fmt.Fprint(a.stderr, rendered)
}

// Close releases the log file, if one was opened.
func (a *App) Close() error {
	if a.logCloser == nil {
		return nil
	}
	err := a.logCloser.Close()
	a.logCloser = nil
	return err
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
