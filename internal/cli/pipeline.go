package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/mvp-joe/ts-extractor/internal/config"
	"github.com/mvp-joe/ts-extractor/internal/diag"
	"github.com/mvp-joe/ts-extractor/internal/document"
	"github.com/mvp-joe/ts-extractor/internal/extractor"
	"github.com/mvp-joe/ts-extractor/internal/parsers"
)

// extraction runs one load-and-extract pass over a configured project.
// Each run starts from a fresh program and registry.
type extraction struct {
	cfg      *config.Config
	logger   *slog.Logger
	progress parsers.ProgressReporter
}

// entryFiles returns the configured entry files followed by the files
// matched by project.include, without duplicates.
func (e *extraction) entryFiles() ([]string, error) {
	dir := e.cfg.Project.Directory
	seen := make(map[string]bool)
	var entries []string
	add := func(name string) {
		if !filepath.IsAbs(name) {
			name = filepath.Join(dir, name)
		}
		name = filepath.ToSlash(filepath.Clean(name))
		if !seen[name] {
			seen[name] = true
			entries = append(entries, name)
		}
	}

	for _, entry := range e.cfg.Project.Entry {
		add(entry)
	}

	if len(e.cfg.Project.Include) > 0 {
		discovery, err := parsers.NewFileDiscovery(dir, e.cfg.Project.Include, e.cfg.Project.Ignore)
		if err != nil {
			return nil, fmt.Errorf("failed to create file discovery: %w", err)
		}
		files, err := discovery.DiscoverFiles()
		if err != nil {
			return nil, fmt.Errorf("failed to discover entry files: %w", err)
		}
		for _, f := range files {
			add(f)
		}
	}
	return entries, nil
}

// run loads the program and extracts the document. Diagnostics go to the
// logger and are also returned.
func (e *extraction) run(ctx context.Context) (*document.Document, []diag.Diagnostic, error) {
	opts, err := e.cfg.ToExtractorOptions()
	if err != nil {
		return nil, nil, err
	}

	entries, err := e.entryFiles()
	if err != nil {
		return nil, nil, err
	}

	collector := diag.NewCollector()
	sink := diag.Tee(collector, diag.NewLogSink(e.logger))

	loaderOpts := []parsers.LoaderOption{parsers.WithSink(sink)}
	if e.progress != nil {
		loaderOpts = append(loaderOpts, parsers.WithProgress(e.progress))
	}
	program, err := parsers.NewLoader(e.cfg.Project.Directory, loaderOpts...).Load(ctx, entries)
	if err != nil {
		return nil, collector.Diagnostics(), fmt.Errorf("failed to load program: %w", err)
	}

	doc, err := extractor.Extract(program, nil, opts, sink)
	if err != nil {
		return nil, collector.Diagnostics(), fmt.Errorf("extraction failed: %w", err)
	}

	if e.cfg.Output.StripPrivate {
		doc, err = doc.FilterPrivate()
		if err != nil {
			return nil, collector.Diagnostics(), fmt.Errorf("failed to strip private members: %w", err)
		}
	}

	e.logger.Debug("extraction complete",
		"entries", len(doc.EntryFiles),
		"items", len(doc.Registry),
		"diagnostics", len(collector.Diagnostics()))
	return doc, collector.Diagnostics(), nil
}
