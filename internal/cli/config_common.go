package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jbdb/sql2json/internal/config"
	"github.com/jbdb/sql2json/internal/export"
	"github.com/jbdb/sql2json/internal/files/filesystem"
	"github.com/jbdb/sql2json/pkg/sql2json"
)

// scanSettings is the effective configuration of one scan run.
type scanSettings struct {
	Source filesystem.Options
	Format export.Format
	Pretty bool
	Output string
}

// loadProjectConfig loads godotenv and project configuration, then applies
// SQL2JSON_* environment overrides.
// A missing sql2json.yaml in the working directory is not an error; a
// missing file named with --config is.
func loadProjectConfig(explicitPath string) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	var (
		cfg *config.ProjectConfig
		err error
	)
	if explicitPath != "" {
		cfg, err = config.LoadFile(explicitPath)
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("config file %s not found: %w", explicitPath, sql2json.ErrInvalidConfig)
		}
	} else {
		cfg, err = config.Load(".")
		if errors.Is(err, config.ErrConfigNotFound) {
			cfg, err = &config.ProjectConfig{}, nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", sql2json.ConfigFileName, err)
	}

	if err := config.ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveScanSettings merges the project config with the command line.
// Priority (highest to lowest): explicitly set flags > environment > sql2json.yaml > defaults.
func resolveScanSettings(cmd *cobra.Command, cfg *config.ProjectConfig, flags *scanFlags) (scanSettings, error) {
	if cfg == nil {
		cfg = &config.ProjectConfig{}
	}
	changed := cmd.Flags().Changed

	s := scanSettings{
		Source: filesystem.Options{
			Recursive:  cfg.Input.Recursive,
			Extensions: cfg.Input.Extensions,
			Encoding:   cfg.Input.Encoding,
		},
		Pretty: cfg.Output.Pretty,
		Output: cfg.Output.Path,
	}
	format := cfg.Output.Format

	if changed("recursive") {
		s.Source.Recursive = flags.recursive
	}
	if changed("ext") {
		s.Source.Extensions = flags.extensions
	}
	if changed("encoding") {
		s.Source.Encoding = flags.encoding
	}
	if changed("format") {
		format = flags.format
	}
	if changed("pretty") {
		s.Pretty = flags.pretty
	}
	if changed("output") {
		s.Output = flags.output
	}

	f, err := export.ParseFormat(format)
	if err != nil {
		return scanSettings{}, err
	}
	s.Format = f
	return s, nil
}

// logSettingsVerbose logs the effective settings when verbose mode is enabled.
func logSettingsVerbose(logger sql2json.Logger, s scanSettings, archive string) {
	logger.Verbose("Settings resolved:")
	logger.Verbose("  Recursive: %t", s.Source.Recursive)
	if len(s.Source.Extensions) > 0 {
		logger.Verbose("  Extensions: %v", s.Source.Extensions)
	} else {
		logger.Verbose("  Extensions: %v (default)", sql2json.DefaultExtensions)
	}
	if s.Source.Encoding != "" {
		logger.Verbose("  Encoding: %s", s.Source.Encoding)
	}
	if archive != "" {
		logger.Verbose("  Archive: %s", archive)
	}
	logger.Verbose("  Format: %s (pretty: %t)", s.Format, s.Pretty)
	if s.Output != "" {
		logger.Verbose("  Output: %s", s.Output)
	}
}
