package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jbdb/sql2json/pkg/sql2json"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Environment variables overriding the config file.
const (
	EnvEncoding  = "SQL2JSON_ENCODING"
	EnvFormat    = "SQL2JSON_FORMAT"
	EnvRecursive = "SQL2JSON_RECURSIVE"
)

type InputConfig struct {
	Recursive  bool     `yaml:"recursive"`
	Extensions []string `yaml:"extensions,omitempty"`
	Encoding   string   `yaml:"encoding,omitempty"`
}

type OutputConfig struct {
	Format string `yaml:"format,omitempty"`
	Pretty bool   `yaml:"pretty"`
	Path   string `yaml:"path,omitempty"`
}

type ProjectConfig struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
}

// Load reads sql2json.yaml from dir.
func Load(dir string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(dir, sql2json.ConfigFileName))
}

// LoadFile reads the config file at path.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v: %w", path, err, sql2json.ErrInvalidConfig)
	}
	return &cfg, nil
}

// ApplyEnv overrides cfg with the SQL2JSON_* variables found by lookup.
// Pass os.LookupEnv for the process environment.
func ApplyEnv(cfg *ProjectConfig, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvEncoding); ok && strings.TrimSpace(v) != "" {
		cfg.Input.Encoding = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvFormat); ok && strings.TrimSpace(v) != "" {
		cfg.Output.Format = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvRecursive); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s must be a boolean, got %q: %w", EnvRecursive, v, sql2json.ErrInvalidConfig)
		}
		cfg.Input.Recursive = b
	}
	return nil
}
