// Package config provides configuration loading for ts-extractor.
//
// Configuration Hierarchy (highest to lowest priority):
//  1. Command line flags (applied by the CLI after loading)
//  2. Environment variables (TS_EXTRACTOR_*)
//  3. Project config (ts-extractor.yml or ts-extractor.yaml)
//  4. Built-in defaults
//
// Environment Variable Convention:
//   - Prefix: TS_EXTRACTOR_
//   - Nested fields: Use underscores (TS_EXTRACTOR_OUTPUT_PATH_SEPARATOR)
//   - Lists: comma separated (TS_EXTRACTOR_PROJECT_ENTRY=src/a.ts,src/b.ts)
//
// Example usage:
//
//	cfg, err := config.LoadConfigFromDir(dir)
//	if err != nil {
//	    return err
//	}
//	opts, err := cfg.ToExtractorOptions()
package config

import (
	"github.com/mvp-joe/ts-extractor/internal/extractor"
)

// Config represents the complete extractor configuration.
// It can be loaded from ts-extractor.yml with environment variable overrides.
type Config struct {
	Project    ProjectConfig    `yaml:"project" mapstructure:"project"`
	Extraction ExtractionConfig `yaml:"extraction" mapstructure:"extraction"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
}

// ProjectConfig defines the project root and its entry files.
type ProjectConfig struct {
	Directory string   `yaml:"directory" mapstructure:"directory"` // project root, relative to the config directory
	Entry     []string `yaml:"entry" mapstructure:"entry"`         // entry files relative to Directory
	Include   []string `yaml:"include" mapstructure:"include"`     // glob patterns adding entry files
	Ignore    []string `yaml:"ignore" mapstructure:"ignore"`       // glob patterns excluded from Include
}

// ExtractionConfig bounds and shapes the extracted registry.
type ExtractionConfig struct {
	ExternalPackages []string `yaml:"external_packages" mapstructure:"external_packages"` // packages extracted from node_modules
	Exclude          []string `yaml:"exclude" mapstructure:"exclude"`                     // files skipped by path
	ExcludePatterns  []string `yaml:"exclude_patterns" mapstructure:"exclude_patterns"`   // files skipped by glob
	IgnoreKinds      []string `yaml:"ignore_kinds" mapstructure:"ignore_kinds"`           // item kinds never registered
	ExcludePrivate   bool     `yaml:"exclude_private" mapstructure:"exclude_private"`     // skip private class members
	IDStrategy       string   `yaml:"id_strategy" mapstructure:"id_strategy"`             // sequential, hash or uuid
	MaxAliasHops     int      `yaml:"max_alias_hops" mapstructure:"max_alias_hops"`       // 0 means the default
}

// OutputConfig defines where and how the document is written.
type OutputConfig struct {
	Path          string `yaml:"path" mapstructure:"path"`                     // output file, "-" for stdout
	PathSeparator string `yaml:"path_separator" mapstructure:"path_separator"` // "/" or "\"
	Format        string `yaml:"format" mapstructure:"format"`                 // json or sqlite
	Pretty        bool   `yaml:"pretty" mapstructure:"pretty"`                 // indent JSON output
	StripPrivate  bool   `yaml:"strip_private" mapstructure:"strip_private"`   // drop private members after extraction
}

// Output formats.
const (
	FormatJSON   = "json"
	FormatSQLite = "sqlite"
)

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Project: ProjectConfig{
			Directory: "",
			Entry:     []string{"index.ts"},
			Include:   []string{},
			Ignore: []string{
				"node_modules/**",
				"dist/**",
				"build/**",
				".git/**",
				"**/*.spec.ts",
				"**/*.test.ts",
			},
		},
		Extraction: ExtractionConfig{
			ExternalPackages: []string{},
			Exclude:          []string{},
			ExcludePatterns:  []string{},
			IgnoreKinds:      []string{},
			ExcludePrivate:   false,
			IDStrategy:       string(extractor.IDSequential),
			MaxAliasHops:     extractor.DefaultMaxAliasHops,
		},
		Output: OutputConfig{
			Path:          "api.json",
			PathSeparator: "/",
			Format:        FormatJSON,
			Pretty:        true,
			StripPrivate:  false,
		},
	}
}
