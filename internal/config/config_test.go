package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jbdb/sql2json/pkg/sql2json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AllFields(t *testing.T) {
	dir := t.TempDir()
	content := `input:
  recursive: true
  extensions: [".sql", ".dump"]
  encoding: windows-1251

output:
  format: yaml
  pretty: true
  path: out/result.yaml
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, sql2json.ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.True(t, cfg.Input.Recursive)
	assert.Equal(t, []string{".sql", ".dump"}, cfg.Input.Extensions)
	assert.Equal(t, "windows-1251", cfg.Input.Encoding)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.True(t, cfg.Output.Pretty)
	assert.Equal(t, "out/result.yaml", cfg.Output.Path)
}

func TestLoad_MinimalYAML(t *testing.T) {
	dir := t.TempDir()
	content := `output:
  pretty: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, sql2json.ConfigFileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.False(t, cfg.Input.Recursive)
	assert.Nil(t, cfg.Input.Extensions)
	assert.Empty(t, cfg.Output.Format)
	assert.True(t, cfg.Output.Pretty)
}

func TestLoad_FileNotFound(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	assert.Nil(t, cfg)
	assert.True(t, errors.Is(err, ErrConfigNotFound))
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, sql2json.ConfigFileName), []byte("input: [not: valid"), 0644))

	cfg, err := Load(dir)
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, sql2json.ErrInvalidConfig)
}

func TestLoadFile_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input:\n  encoding: latin1\n"), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "latin1", cfg.Input.Encoding)
}

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := &ProjectConfig{
		Input:  InputConfig{Encoding: "utf-8"},
		Output: OutputConfig{Format: "json"},
	}

	err := ApplyEnv(cfg, lookupFrom(map[string]string{
		EnvEncoding:  "latin1",
		EnvFormat:    " yaml ",
		EnvRecursive: "true",
	}))
	require.NoError(t, err)

	assert.Equal(t, "latin1", cfg.Input.Encoding)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.True(t, cfg.Input.Recursive)
}

func TestApplyEnv_EmptyValuesAreIgnored(t *testing.T) {
	cfg := &ProjectConfig{Input: InputConfig{Encoding: "latin1", Recursive: true}}

	err := ApplyEnv(cfg, lookupFrom(map[string]string{EnvEncoding: "", EnvRecursive: "  "}))
	require.NoError(t, err)

	assert.Equal(t, "latin1", cfg.Input.Encoding)
	assert.True(t, cfg.Input.Recursive)
}

func TestApplyEnv_InvalidBoolean(t *testing.T) {
	cfg := &ProjectConfig{}

	err := ApplyEnv(cfg, lookupFrom(map[string]string{EnvRecursive: "sometimes"}))
	assert.ErrorIs(t, err, sql2json.ErrInvalidConfig)
	assert.Contains(t, err.Error(), EnvRecursive)
}
