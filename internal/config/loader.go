package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format names a configuration file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat converts a CLI string to a Format. Unknown strings yield "".
func ParseFormat(s string) Format {
	switch Format(strings.ToLower(s)) {
	case FormatYAML, "yml":
		return FormatYAML
	case FormatTOML:
		return FormatTOML
	default:
		return ""
	}
}

// formatForPath picks the decoder from the file extension.
func formatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Load loads the helix configuration.
// Search order: customPath -> ~/.helixfall/configs/helix.{yaml,toml} -> ./configs/helix.yaml -> embedded default
//
// Files only need to list the keys they change; everything else keeps its default.
func Load(customPath string) (HelixConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return HelixConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Decode(data, formatForPath(customPath))
		if err != nil {
			return HelixConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return HelixConfig{}, fmt.Errorf("config: invalid %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// User and local files are optional; a broken one falls through to the next candidate.
	candidates := []string{
		userConfigPath("helix.yaml"),
		userConfigPath("helix.toml"),
		filepath.Join("configs", "helix.yaml"),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Decode(data, formatForPath(path)); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	cfg, err := Decode(defaultHelixYAML, FormatYAML)
	if err != nil {
		return DefaultHelixConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Decode parses data on top of the defaults.
func Decode(data []byte, format Format) (HelixConfig, error) {
	cfg := DefaultHelixConfig()
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, err
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// Encode renders cfg in the requested format.
func Encode(cfg HelixConfig, format Format) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("config: cannot encode toml: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, fmt.Errorf("config: cannot encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("config: cannot encode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("config: unknown format %q", format)
	}
	return buf.Bytes(), nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".helixfall", "configs", filename)
}
