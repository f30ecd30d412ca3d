package config

import (
	"fmt"

	"github.com/mvp-joe/ts-extractor/internal/contracts"
	"github.com/mvp-joe/ts-extractor/internal/extractor"
)

// ToExtractorOptions converts a Config to extractor.Options.
// Project.Directory must already be absolute; the loader makes it so.
func (c *Config) ToExtractorOptions() (extractor.Options, error) {
	strategy, ok := extractor.ParseIDStrategy(c.Extraction.IDStrategy)
	if !ok {
		return extractor.Options{}, fmt.Errorf("%w: %q", ErrInvalidIDStrategy, c.Extraction.IDStrategy)
	}

	return extractor.Options{
		ProjectDirectory:    c.Project.Directory,
		OutputPathSeparator: c.Output.PathSeparator,
		ExternalPackages:    c.Extraction.ExternalPackages,
		Exclude:             c.Extraction.Exclude,
		ExcludePatterns:     c.Extraction.ExcludePatterns,
		FilterItems:         c.itemFilter(),
		IDStrategy:          strategy,
		MaxAliasHops:        c.Extraction.MaxAliasHops,
	}, nil
}

// itemFilter builds the FilterItems predicate from ignore_kinds and
// exclude_private. It returns nil when neither is set.
func (c *Config) itemFilter() func(extractor.Item) bool {
	ignored := make(map[contracts.ApiKind]bool)
	for _, k := range c.Extraction.IgnoreKinds {
		if kind, ok := contracts.ParseKind(k); ok {
			ignored[kind] = true
		}
	}
	excludePrivate := c.Extraction.ExcludePrivate
	if len(ignored) == 0 && !excludePrivate {
		return nil
	}

	return func(it extractor.Item) bool {
		if ignored[it.Kind()] {
			return false
		}
		return !(excludePrivate && it.IsPrivate())
	}
}
