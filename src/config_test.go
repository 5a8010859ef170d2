package aocscript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
debug: true
debug_categories: [flow, List]
color: never
show_error_context: false
context_lines: 4
input_dir: inputs
`)
	config, err := LoadConfigFile(path)
	require.NoError(t, err)

	require.True(t, config.Debug)
	require.Equal(t, []LogCategory{CatFlow, CatList}, config.DebugCategories)
	require.Equal(t, ColorNever, config.Color)
	require.False(t, config.ShowErrorContext)
	require.Equal(t, 4, config.ContextLines)
	require.Equal(t, filepath.Join(filepath.Dir(path), "inputs"), config.InputDir)
	require.NotNil(t, config.ReadFile)
}

func TestLoadConfigFileMissingUsesDefaults(t *testing.T) {
	config, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, ColorAuto, config.Color)
	require.True(t, config.ShowErrorContext)
	require.Equal(t, 2, config.ContextLines)
}

func TestLoadConfigFileEmpty(t *testing.T) {
	config, err := LoadConfigFile(writeConfig(t, ""))
	require.NoError(t, err)
	require.False(t, config.Debug)
}

func TestLoadConfigFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "colour: never\n", "colour"},
		{"unknown category", "debug_categories: [bogus]\n", `unknown debug category "bogus"`},
		{"bad color", "color: sometimes\n", "color must be auto, always or never"},
		{"negative context", "context_lines: -1\n", "context_lines must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfigFile(writeConfig(t, tt.content))
			require.Error(t, err)
			require.True(t, strings.Contains(err.Error(), tt.want), "error %q should mention %q", err, tt.want)
			require.NotNil(t, config, "defaults should be returned alongside the error")
		})
	}
}

func TestDefaultConfigPathFromEnv(t *testing.T) {
	t.Setenv("AOC_CONFIG", "/tmp/custom.yaml")
	require.Equal(t, "/tmp/custom.yaml", DefaultConfigPath())
}

func TestNilConfigGetsDefaults(t *testing.T) {
	config := (*Config)(nil).withDefaults()
	require.NotNil(t, config.Stdout)
	require.NotNil(t, config.Stderr)
	require.NotNil(t, config.ReadFile)
	require.Equal(t, ColorAuto, config.Color)
}
