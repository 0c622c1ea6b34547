// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/shaderkit/openinclude/internal/config"
	"github.com/shaderkit/openinclude/internal/opener"
	"github.com/shaderkit/openinclude/pkg/types"

	"github.com/spf13/afero"
)

type (
	// staticConfig is a ConfigProvider returning a fixed configuration.
	staticConfig struct {
		cfg *config.Config
		err error
	}

	// recordingOpener captures opened paths instead of launching an editor.
	recordingOpener struct {
		template string
		opened   []string
		err      error
	}

	cliResult struct {
		stdout string
		stderr string
		code   types.ExitCode
		err    error
	}
)

func (s staticConfig) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	if s.err != nil {
		return nil, s.err
	}
	cfg := *s.cfg
	return &cfg, nil
}

func (r *recordingOpener) Open(_ context.Context, path string) error {
	if r.err != nil {
		return r.err
	}
	r.opened = append(r.opened, path)
	return nil
}

// memFs returns an in-memory filesystem holding files with the given
// contents. Paths are POSIX absolute paths, so callers are skipped on Windows.
func memFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("in-memory fixtures use POSIX paths")
	}

	fs := afero.NewMemMapFs()
	for path, content := range files {
		if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", path, err)
		}
		if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return fs
}

// runCLI executes the command tree with args against the given dependencies.
func runCLI(t *testing.T, deps Dependencies, args ...string) cliResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	deps.Stdout = &stdout
	deps.Stderr = &stderr
	if deps.Config == nil {
		deps.Config = staticConfig{cfg: config.DefaultConfig()}
	}

	app, err := NewApp(deps)
	if err != nil {
		t.Fatalf("NewApp() returned error: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })

	root := NewRootCommand(app)
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())

	return cliResult{
		stdout: stdout.String(),
		stderr: stderr.String(),
		code:   exitCodeOf(err),
		err:    err,
	}
}

func TestNewApp_Defaults(t *testing.T) {
	t.Parallel()

	app, err := NewApp(Dependencies{})
	if err != nil {
		t.Fatalf("NewApp() returned error: %v", err)
	}
	if app.Config == nil || app.Fs == nil || app.NewOpener == nil {
		t.Fatalf("expected defaults to be filled, got %+v", app)
	}
	if _, ok := app.NewOpener("", nil, nil).(*opener.Command); !ok {
		t.Error("default opener should be *opener.Command")
	}
}

func TestExitCodeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want types.ExitCode
	}{
		{"nil", nil, types.ExitOK},
		{"not found", &ExitError{Code: types.ExitNotFound}, types.ExitNotFound},
		{"wrapped", errors.Join(errors.New("ctx"), &ExitError{Code: types.ExitNotFound}), types.ExitNotFound},
		{"plain error is usage", errors.New("unknown flag"), types.ExitUsage},
		{"out of range is usage", &ExitError{Code: 300}, types.ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeOf(tt.err); got != tt.want {
				t.Errorf("exitCodeOf() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()

	inner := errors.New("boom")
	err := &ExitError{Code: types.ExitUsage, Err: inner}
	if err.Error() != "boom" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("ExitError should unwrap to its cause")
	}
	if got := (&ExitError{Code: types.ExitNotFound}).Error(); got != "exit status 1" {
		t.Errorf("Error() without cause = %q", got)
	}
}

func TestConfigLoadFailure(t *testing.T) {
	t.Parallel()

	res := runCLI(t, Dependencies{
		Config: staticConfig{err: errors.New("config.cue: log.level: conflicting values")},
		Fs:     afero.NewMemMapFs(),
	}, "resolve", "a.hlsl")

	if res.code != types.ExitUsage {
		t.Errorf("exit code = %d, want %d", res.code, types.ExitUsage)
	}
	if !strings.Contains(res.stderr, "Failed to load configuration") {
		t.Errorf("expected config issue on stderr, got:\n%s", res.stderr)
	}
}
