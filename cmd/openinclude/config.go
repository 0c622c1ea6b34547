// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shaderkit/openinclude/internal/config"
	"github.com/shaderkit/openinclude/internal/issue"
	"github.com/shaderkit/openinclude/pkg/types"

	"github.com/spf13/cobra"
)

// settableKeys lists the keys accepted by `config set`, in display order.
var settableKeys = []string{
	"enabled",
	"engine_heuristic",
	"base_paths",
	"include_paths",
	"editor.command",
	"log.level",
	"log.file",
	"ui.color_scheme",
	"ui.verbose",
}

// newConfigCommand creates the `openinclude config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage openinclude configuration",
		Long: `Manage openinclude configuration.

Configuration is stored in:
  - Linux: ~/.config/openinclude/config.cue
  - macOS: ~/Library/Application Support/openinclude/config.cue
  - Windows: %APPDATA%\openinclude\config.cue

Any key can be overridden with an OPENINCLUDE_ environment variable, for
example OPENINCLUDE_LOG_LEVEL=debug or OPENINCLUDE_EDITOR_COMMAND='code --goto "$FILE"'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>...",
		Short: "Set a configuration value",
		Long: `Set a configuration value and save the config file.

Valid keys: ` + strings.Join(settableKeys, ", ") + `

base_paths and include_paths take one or more values and replace the whole list.`,
		Example: `  openinclude config set enabled true
  openinclude config set base_paths /opt/sdk /opt/engine
  openinclude config set include_paths '$base_path[0]/include/'`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(cmd.Context(), app, args[0], args[1:])
		},
	})

	var asTOML bool
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Output effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return err
			}

			if asTOML {
				out, err := config.GenerateTOML(cfg)
				if err != nil {
					return err
				}
				fmt.Fprint(app.stdout, out)
				return nil
			}

			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	}
	dumpCmd.Flags().BoolVar(&asTOML, "toml", false, "output TOML instead of CUE")
	cfgCmd.AddCommand(dumpCmd)

	var write bool
	importCmd := &cobra.Command{
		Use:   "import-sublime <settings-file>",
		Short: "Import OpenHeader* keys from editor plugin settings",
		Long: `Import OpenHeaderEnabled, OpenHeaderBasePaths and OpenHeaderIncludePaths from a
"` + config.SublimeSettingsFileName + `" file.

The merged configuration is printed as CUE. With --write it replaces the
config file instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return importSublime(cmd, app, args[0], write)
		},
	}
	importCmd.Flags().BoolVarP(&write, "write", "w", false, "save the merged configuration")
	cfgCmd.AddCommand(importCmd)

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	cfg, err := app.loadConfig(ctx)
	if err != nil {
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	out := app.stdout

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)

	if path := activeConfigPath(app); path != "" {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("enabled"), valueStyle.Render(strconv.FormatBool(cfg.Enabled)))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("engine_heuristic"), valueStyle.Render(strconv.FormatBool(cfg.EngineHeuristic)))

	for _, list := range []struct {
		key    string
		values []string
	}{
		{"base_paths", cfg.BasePaths},
		{"include_paths", cfg.IncludePaths},
	} {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%s:\n", keyStyle.Render(list.key))
		if len(list.values) == 0 {
			fmt.Fprintf(out, "  %s\n", SubtitleStyle.Render("(none configured)"))
		}
		for i, value := range list.values {
			fmt.Fprintf(out, "  [%d] %s\n", i, valueStyle.Render(value))
		}
	}

	editorCommand := cfg.Editor.Command
	if editorCommand == "" {
		editorCommand = SubtitleStyle.Render("(platform default)")
	} else {
		editorCommand = valueStyle.Render(editorCommand)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("editor"))
	fmt.Fprintf(out, "  command: %s\n", editorCommand)

	logFile := cfg.Log.File
	if logFile == "" {
		logFile = SubtitleStyle.Render("(stderr)")
	} else {
		logFile = valueStyle.Render(logFile)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("log"))
	fmt.Fprintf(out, "  level: %s\n", valueStyle.Render(string(cfg.Log.Level)))
	fmt.Fprintf(out, "  file: %s\n", logFile)

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(out, "  color_scheme: %s\n", valueStyle.Render(string(cfg.UI.ColorScheme)))
	fmt.Fprintf(out, "  verbose: %s\n", valueStyle.Render(strconv.FormatBool(cfg.UI.Verbose)))

	return nil
}

func initConfig(app *App) error {
	path, created, err := config.CreateDefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	if !created {
		fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
		return nil
	}

	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func showConfigPath(app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	cfgPath, err := config.ConfigFilePath()
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(app.stdout, "Config file: %s\n", cfgPath)
	if app.configPath != "" {
		fmt.Fprintf(app.stdout, "Active config file (--config): %s\n", app.configPath)
	}

	return nil
}

func setConfigValue(ctx context.Context, app *App, key string, values []string) error {
	cfg, err := app.loadConfig(ctx)
	if err != nil {
		return err
	}

	if err := applySetting(cfg, key, values); err != nil {
		return &ExitError{Code: types.ExitUsage, Err: err}
	}

	path, err := saveConfig(app, cfg)
	if err != nil {
		return &ExitError{Code: types.ExitUsage, Err: fmt.Errorf("failed to save config: %w", err)}
	}

	fmt.Fprintf(app.stdout, "%s Set %s = %s in %s\n", SuccessStyle.Render("✓"), key, strings.Join(values, ", "), path)
	return nil
}

// applySetting assigns values to the config key. Validation of enumerated
// values happens when the config is saved.
func applySetting(cfg *config.Config, key string, values []string) error {
	switch key {
	case "base_paths":
		cfg.BasePaths = values
		return nil
	case "include_paths":
		cfg.IncludePaths = values
		return nil
	}

	if len(values) != 1 {
		return fmt.Errorf("%s takes exactly one value, got %d", key, len(values))
	}
	value := values[0]

	switch key {
	case "enabled":
		return parseBoolSetting(key, value, &cfg.Enabled)
	case "engine_heuristic":
		return parseBoolSetting(key, value, &cfg.EngineHeuristic)
	case "ui.verbose":
		return parseBoolSetting(key, value, &cfg.UI.Verbose)
	case "editor.command":
		cfg.Editor.Command = value
	case "log.level":
		cfg.Log.Level = config.LogLevel(value)
	case "log.file":
		cfg.Log.File = value
	case "ui.color_scheme":
		cfg.UI.ColorScheme = config.ColorScheme(value)
	default:
		return fmt.Errorf("unknown configuration key: %s\nValid keys: %s", key, strings.Join(settableKeys, ", "))
	}
	return nil
}

func parseBoolSetting(key, value string, dst *bool) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %q is not a boolean", key, value)
	}
	*dst = b
	return nil
}

// saveConfig writes cfg to the --config file when given, else to the default
// location.
func saveConfig(app *App, cfg *config.Config) (string, error) {
	if app.configPath != "" {
		return app.configPath, config.SaveTo(app.configPath, cfg)
	}
	return config.Save(cfg)
}

func importSublime(cmd *cobra.Command, app *App, settingsPath string, write bool) error {
	cfg, err := app.loadConfig(cmd.Context())
	if err != nil {
		return err
	}

	merged, err := config.ImportSublimeSettings(settingsPath, cfg)
	if err != nil {
		app.renderIssue(issue.SettingsImportFailedId, cfg.UI.ColorScheme)
		return &ExitError{Code: types.ExitUsage, Err: err}
	}

	if !write {
		fmt.Fprint(app.stdout, config.GenerateCUE(merged))
		return nil
	}

	path, err := saveConfig(app, merged)
	if err != nil {
		return &ExitError{Code: types.ExitUsage, Err: fmt.Errorf("failed to save config: %w", err)}
	}
	fmt.Fprintf(app.stdout, "%s Imported %s into %s\n", SuccessStyle.Render("✓"), settingsPath, path)
	return nil
}

// activeConfigPath returns the file the provider reads, or "" when only
// defaults apply.
func activeConfigPath(app *App) string {
	if app.configPath != "" {
		return app.configPath
	}
	path, err := config.ConfigFilePath()
	if err == nil && fileExistsCheck(path) {
		return path
	}
	local := config.ConfigFileName + "." + config.ConfigFileExt
	if fileExistsCheck(local) {
		return local
	}
	return ""
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
