package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (TS_EXTRACTOR_*)
// 2. Config file (ts-extractor.yml or ts-extractor.yaml in the root directory)
// 3. Default values
//
// A relative project.directory is resolved against the root directory.
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("ts-extractor")
	v.SetConfigType("yaml")
	v.AddConfigPath(l.rootDir)

	// Enable environment variable overrides
	v.SetEnvPrefix("TS_EXTRACTOR")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., TS_EXTRACTOR_OUTPUT_FORMAT)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	bindEnvVars(v)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	dir, err := resolveDirectory(l.rootDir, cfg.Project.Directory)
	if err != nil {
		return nil, err
	}
	cfg.Project.Directory = dir

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func resolveDirectory(rootDir, dir string) (string, error) {
	if dir == "" {
		dir = rootDir
	} else if !filepath.IsAbs(dir) {
		dir = filepath.Join(rootDir, dir)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve project directory: %w", err)
	}
	return abs, nil
}

// bindEnvVars binds every configuration key to its environment variable.
func bindEnvVars(v *viper.Viper) {
	// Project configuration
	v.BindEnv("project.directory")
	v.BindEnv("project.entry")
	v.BindEnv("project.include")
	v.BindEnv("project.ignore")

	// Extraction configuration
	v.BindEnv("extraction.external_packages")
	v.BindEnv("extraction.exclude")
	v.BindEnv("extraction.exclude_patterns")
	v.BindEnv("extraction.ignore_kinds")
	v.BindEnv("extraction.exclude_private")
	v.BindEnv("extraction.id_strategy")
	v.BindEnv("extraction.max_alias_hops")

	// Output configuration
	v.BindEnv("output.path")
	v.BindEnv("output.path_separator")
	v.BindEnv("output.format")
	v.BindEnv("output.pretty")
	v.BindEnv("output.strip_private")
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	// Project defaults
	v.SetDefault("project.directory", defaults.Project.Directory)
	v.SetDefault("project.entry", defaults.Project.Entry)
	v.SetDefault("project.include", defaults.Project.Include)
	v.SetDefault("project.ignore", defaults.Project.Ignore)

	// Extraction defaults
	v.SetDefault("extraction.external_packages", defaults.Extraction.ExternalPackages)
	v.SetDefault("extraction.exclude", defaults.Extraction.Exclude)
	v.SetDefault("extraction.exclude_patterns", defaults.Extraction.ExcludePatterns)
	v.SetDefault("extraction.ignore_kinds", defaults.Extraction.IgnoreKinds)
	v.SetDefault("extraction.exclude_private", defaults.Extraction.ExcludePrivate)
	v.SetDefault("extraction.id_strategy", defaults.Extraction.IDStrategy)
	v.SetDefault("extraction.max_alias_hops", defaults.Extraction.MaxAliasHops)

	// Output defaults
	v.SetDefault("output.path", defaults.Output.Path)
	v.SetDefault("output.path_separator", defaults.Output.PathSeparator)
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.pretty", defaults.Output.Pretty)
	v.SetDefault("output.strip_private", defaults.Output.StripPrivate)
}

// LoadConfig is a convenience function that creates a loader and loads config.
// It uses the current working directory as the root.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
