// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shaderkit/openinclude/pkg/types"
)

const (
	// LogLevelDebug logs every probed candidate.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo logs resolutions and opened files.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs only problems.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs only failures.
	LogLevelError LogLevel = "error"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrBlankSetting is returned when an optional string setting is set to whitespace only.
	ErrBlankSetting = errors.New("setting must not be whitespace-only")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LogLevel is the minimum level written to the log.
	LogLevel string

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Enabled turns the open-included-file action on or off.
		Enabled bool `json:"enabled" mapstructure:"enabled" toml:"enabled"`
		// BasePaths are the literal paths indexed by $base_path[N] placeholders.
		BasePaths []string `json:"base_paths" mapstructure:"base_paths" toml:"base_paths"`
		// IncludePaths are include path templates searched after the current file's folder.
		IncludePaths []string `json:"include_paths" mapstructure:"include_paths" toml:"include_paths"`
		// EngineHeuristic enables the engine project search that runs before the include paths.
		EngineHeuristic bool `json:"engine_heuristic" mapstructure:"engine_heuristic" toml:"engine_heuristic"`
		// Editor configures how resolved files are opened
		Editor EditorConfig `json:"editor" mapstructure:"editor" toml:"editor"`
		// Log configures diagnostic logging
		Log LogConfig `json:"log" mapstructure:"log" toml:"log"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui" toml:"ui"`
	}

	// EditorConfig configures the editor launch command.
	EditorConfig struct {
		// Command opens a file; $FILE and $DIR are expanded. Empty uses the platform opener.
		Command string `json:"command" mapstructure:"command" toml:"command,omitempty"`
	}

	// LogConfig configures logging.
	LogConfig struct {
		Level LogLevel `json:"level" mapstructure:"level" toml:"level"`
		// File enables logging to a rotating file instead of stderr.
		File string `json:"file" mapstructure:"file" toml:"file,omitempty"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme ("auto", "dark", "light")
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" toml:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose" toml:"verbose"`
	}
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		BasePaths:       []string{},
		IncludePaths:    []string{},
		EngineHeuristic: true,
		Log: LogConfig{
			Level: LogLevelWarn,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}

// Validate reports whether l is a known level. The empty string is accepted
// and means the default.
func (l LogLevel) Validate() error {
	switch l {
	case "", LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	default:
		return fmt.Errorf("%w %q (valid: debug, info, warn, error)", ErrInvalidLogLevel, l)
	}
}

// Validate reports whether c is a known color scheme. The empty string is
// accepted and means auto.
func (c ColorScheme) Validate() error {
	switch c {
	case "", ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return fmt.Errorf("%w %q (valid: auto, dark, light)", ErrInvalidColorScheme, c)
	}
}

// GlamourStyle maps the color scheme onto a glamour style name.
func (c ColorScheme) GlamourStyle() string {
	switch c {
	case ColorSchemeLight:
		return "light"
	case ColorSchemeDark:
		return "dark"
	default:
		return "auto"
	}
}

// Validate checks every field and collects all problems into an
// InvalidConfigError.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Log.Level.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("ui.color_scheme: %w", err))
	}
	if err := types.FilesystemPath(c.Log.File).Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log.file: %w", err))
	}
	if isBlank(c.Editor.Command) {
		errs = append(errs, fmt.Errorf("editor.command: %w", ErrBlankSetting))
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig followed by the field errors so errors.Is
// matches both the sentinel and the field-level causes.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// isBlank reports whether s is set but contains only whitespace.
func isBlank(s string) bool {
	return s != "" && strings.TrimSpace(s) == ""
}
