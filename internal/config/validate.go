package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/mvp-joe/ts-extractor/internal/contracts"
	"github.com/mvp-joe/ts-extractor/internal/extractor"
)

var (
	// ErrInvalidSeparator indicates an output path separator other than / or \
	ErrInvalidSeparator = errors.New("invalid path separator")

	// ErrInvalidIDStrategy indicates an unknown ID strategy
	ErrInvalidIDStrategy = errors.New("invalid id strategy")

	// ErrInvalidFormat indicates an unsupported output format
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrEmptyEntry indicates neither entry files nor include patterns
	ErrEmptyEntry = errors.New("no entry files")

	// ErrInvalidKind indicates an unknown item kind in ignore_kinds
	ErrInvalidKind = errors.New("invalid item kind")

	// ErrInvalidPattern indicates a glob pattern that does not compile
	ErrInvalidPattern = errors.New("invalid glob pattern")

	// ErrInvalidAliasHops indicates a negative alias hop limit
	ErrInvalidAliasHops = errors.New("invalid alias hop limit")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateProject(&cfg.Project); err != nil {
		errs = append(errs, err)
	}

	if err := validateExtraction(&cfg.Extraction); err != nil {
		errs = append(errs, err)
	}

	if err := validateOutput(&cfg.Output); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateProject(cfg *ProjectConfig) error {
	var errs []error

	if len(cfg.Entry) == 0 && len(cfg.Include) == 0 {
		errs = append(errs, fmt.Errorf("%w: set project.entry or project.include", ErrEmptyEntry))
	}
	for _, entry := range cfg.Entry {
		if strings.TrimSpace(entry) == "" {
			errs = append(errs, fmt.Errorf("%w: entry file name is empty", ErrEmptyEntry))
		}
	}

	errs = append(errs, validatePatterns("project.include", cfg.Include)...)
	errs = append(errs, validatePatterns("project.ignore", cfg.Ignore)...)

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateExtraction(cfg *ExtractionConfig) error {
	var errs []error

	if _, ok := extractor.ParseIDStrategy(cfg.IDStrategy); !ok {
		errs = append(errs, fmt.Errorf("%w: must be 'sequential', 'hash' or 'uuid', got '%s'", ErrInvalidIDStrategy, cfg.IDStrategy))
	}

	for _, k := range cfg.IgnoreKinds {
		if _, ok := contracts.ParseKind(k); !ok {
			errs = append(errs, fmt.Errorf("%w: unknown kind '%s'", ErrInvalidKind, k))
		}
	}

	errs = append(errs, validatePatterns("extraction.exclude_patterns", cfg.ExcludePatterns)...)

	// Zero falls back to the default limit.
	if cfg.MaxAliasHops < 0 {
		errs = append(errs, fmt.Errorf("%w: max_alias_hops cannot be negative, got %d", ErrInvalidAliasHops, cfg.MaxAliasHops))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateOutput(cfg *OutputConfig) error {
	var errs []error

	if cfg.PathSeparator != "/" && cfg.PathSeparator != `\` {
		errs = append(errs, fmt.Errorf("%w: must be '/' or '\\', got '%s'", ErrInvalidSeparator, cfg.PathSeparator))
	}

	format := strings.ToLower(cfg.Format)
	if format != FormatJSON && format != FormatSQLite {
		errs = append(errs, fmt.Errorf("%w: must be 'json' or 'sqlite', got '%s'", ErrInvalidFormat, cfg.Format))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validatePatterns(key string, patterns []string) []error {
	var errs []error
	for _, p := range patterns {
		if _, err := glob.Compile(p, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s '%s': %v", ErrInvalidPattern, key, p, err))
		}
	}
	return errs
}

// validationErrors keeps every underlying error reachable by errors.Is.
type validationErrors []error

func (e validationErrors) Error() string {
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

func (e validationErrors) Unwrap() []error {
	return e
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	return validationErrors(errs)
}
