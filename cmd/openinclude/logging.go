// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shaderkit/openinclude/internal/config"

	"github.com/charmbracelet/log"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logPrefix = "openinclude"

	// Rotation limits for log.file.
	logMaxSizeMB  = 5
	logMaxBackups = 3
	logMaxAgeDays = 28
)

// newLogger builds the slog logger described by cfg. When cfg.Log.File is set
// records go to a rotating file, because editors launching the command
// usually discard stderr; the returned closer must then be closed. verbose
// forces debug level.
func newLogger(cfg *config.Config, verbose bool, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	level := log.WarnLevel
	if cfg.Log.Level != "" {
		parsed, err := log.ParseLevel(string(cfg.Log.Level))
		if err != nil {
			return nil, nil, fmt.Errorf("log.level: %w", err)
		}
		level = parsed
	}
	if verbose || cfg.UI.Verbose {
		level = log.DebugLevel
	}

	var (
		w      = stderr
		closer io.Closer
	)
	if cfg.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		rotating := &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    logMaxSizeMB,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAgeDays,
		}
		w, closer = rotating, rotating
	}

	handler := log.NewWithOptions(w, log.Options{
		Prefix:          logPrefix,
		Level:           level,
		ReportTimestamp: cfg.Log.File != "",
	})
	if cfg.Log.File != "" {
		handler.SetFormatter(log.LogfmtFormatter)
	}

	return slog.New(handler), closer, nil
}

// setupLogging installs the logger for cfg as the App and process default.
func (a *App) setupLogging(cfg *config.Config) error {
	logger, closer, err := newLogger(cfg, a.verbose, a.stderr)
	if err != nil {
		return err
	}
	_ = a.Close() // Replacing a previous log file; close error non-critical
	a.logger = logger
	a.logCloser = closer
	slog.SetDefault(logger)
	return nil
}

// glamourStyle picks a glamour style for output written to w.
func glamourStyle(w io.Writer, scheme config.ColorScheme) string {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return "notty"
	}
	return scheme.GlamourStyle()
}
