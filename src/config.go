package aocscript

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ColorMode selects when ANSI colors are written
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config holds configuration for the interpreter
type Config struct {
	Debug            bool
	DebugCategories  []LogCategory
	Color            ColorMode
	ShowErrorContext bool
	ContextLines     int
	// InputDir is prepended to relative paths given to load
	InputDir string

	Stdout io.Writer
	Stderr io.Writer
	// ReadFile reads puzzle input for the load statement
	ReadFile func(path string) ([]byte, error)
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Debug:            false,
		Color:            ColorAuto,
		ShowErrorContext: true,
		ContextLines:     2,
		Stdout:           os.Stdout,
		Stderr:           os.Stderr,
		ReadFile:         os.ReadFile,
	}
}

// withDefaults fills unset fields so the rest of the interpreter never sees nil
func (c *Config) withDefaults() *Config {
	if c == nil {
		return DefaultConfig()
	}
	out := *c
	if out.Stdout == nil {
		out.Stdout = os.Stdout
	}
	if out.Stderr == nil {
		out.Stderr = os.Stderr
	}
	if out.ReadFile == nil {
		out.ReadFile = os.ReadFile
	}
	if out.Color == "" {
		out.Color = ColorAuto
	}
	if out.ContextLines < 0 {
		out.ContextLines = 0
	}
	return &out
}

// configFile is the on-disk YAML shape of Config
type configFile struct {
	Debug            *bool    `yaml:"debug"`
	DebugCategories  []string `yaml:"debug_categories"`
	Color            string   `yaml:"color"`
	ShowErrorContext *bool    `yaml:"show_error_context"`
	ContextLines     *int     `yaml:"context_lines"`
	InputDir         string   `yaml:"input_dir"`
}

// DefaultConfigPath returns $AOC_CONFIG, or ~/.aoc/config.yaml
func DefaultConfigPath() string {
	if p := os.Getenv("AOC_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".aoc", "config.yaml")
}

// LoadConfigFile reads a YAML config file on top of DefaultConfig. A missing
// file is not an error; the defaults are returned.
func LoadConfigFile(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return config, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	if err := decodeConfig(file, config); err != nil {
		return DefaultConfig(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	if config.InputDir != "" && !filepath.IsAbs(config.InputDir) {
		config.InputDir = filepath.Join(filepath.Dir(path), config.InputDir)
	}
	return config, nil
}

func decodeConfig(r io.Reader, config *Config) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	if raw.Debug != nil {
		config.Debug = *raw.Debug
	}
	for _, name := range raw.DebugCategories {
		cat, ok := ParseLogCategory(name)
		if !ok {
			return fmt.Errorf("unknown debug category %q", name)
		}
		config.DebugCategories = append(config.DebugCategories, cat)
	}
	switch ColorMode(strings.ToLower(raw.Color)) {
	case "":
	case ColorAuto, ColorAlways, ColorNever:
		config.Color = ColorMode(strings.ToLower(raw.Color))
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", raw.Color)
	}
	if raw.ShowErrorContext != nil {
		config.ShowErrorContext = *raw.ShowErrorContext
	}
	if raw.ContextLines != nil {
		if *raw.ContextLines < 0 {
			return fmt.Errorf("context_lines must not be negative")
		}
		config.ContextLines = *raw.ContextLines
	}
	config.InputDir = raw.InputDir
	return nil
}
