// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"github.com/shaderkit/openinclude/pkg/cueutil"
)

// SublimeSettingsFileName is the settings file the editor plugin reads.
const SublimeSettingsFileName = "HLSL Syntax.sublime-settings"

//go:embed sublime_schema.cue
var sublimeSchema []byte

// sublimeSettings mirrors the plugin keys. Pointers distinguish an absent key
// from an explicit zero value.
type sublimeSettings struct {
	Enabled      *bool    `json:"OpenHeaderEnabled"`
	BasePaths    []string `json:"OpenHeaderBasePaths"`
	IncludePaths []string `json:"OpenHeaderIncludePaths"`
}

// ImportSublimeSettings reads an editor plugin settings file (JSON with
// comments) and returns a copy of base with the plugin's keys applied.
// Keys missing from the file leave base untouched.
func ImportSublimeSettings(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	return ParseSublimeSettings(data, path, base)
}

// ParseSublimeSettings is ImportSublimeSettings for in-memory data. filename
// is used in error messages only.
func ParseSublimeSettings(data []byte, filename string, base *Config) (*Config, error) {
	result, err := cueutil.ParseAndDecode[sublimeSettings](sublimeSchema, data, "#Settings",
		cueutil.WithFilename(filename))
	if err != nil {
		return nil, err
	}

	cfg := *base
	cfg.BasePaths = slices.Clone(base.BasePaths)
	cfg.IncludePaths = slices.Clone(base.IncludePaths)

	s := result.Value
	if s.Enabled != nil {
		cfg.Enabled = *s.Enabled
	}
	if s.BasePaths != nil {
		cfg.BasePaths = slices.Clone(s.BasePaths)
	}
	if s.IncludePaths != nil {
		cfg.IncludePaths = slices.Clone(s.IncludePaths)
	}

	return &cfg, nil
}
