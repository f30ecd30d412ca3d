package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mvp-joe/ts-extractor/internal/config"
	"github.com/mvp-joe/ts-extractor/internal/document"
	"github.com/mvp-joe/ts-extractor/internal/storage"
)

// writeOutput writes doc in the configured format. A path of "-" writes
// JSON to stdout.
func writeOutput(doc *document.Document, out config.OutputConfig, baseDir string, stdout io.Writer) error {
	format := strings.ToLower(out.Format)
	if out.Path == "-" {
		if format != config.FormatJSON {
			return fmt.Errorf("%w: %s output cannot be written to stdout", config.ErrInvalidFormat, format)
		}
		return doc.Encode(stdout, out.Pretty)
	}

	path := out.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	switch format {
	case config.FormatSQLite:
		return writeSQLite(doc, path)
	default:
		return writeJSON(doc, path, out.Pretty)
	}
}

// writeJSON writes to a temporary file and renames it so that readers never
// see a partial document.
func writeJSON(doc *document.Document, path string, pretty bool) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmp, err)
	}
	if err := doc.Encode(f, pretty); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

// writeSQLite builds the database next to path and renames it into place,
// the same way writeJSON does.
func writeSQLite(doc *document.Document, path string) error {
	tmp := path + ".tmp"
	db, err := storage.Create(tmp)
	if err != nil {
		return err
	}
	if err := storage.NewItemWriter(db).WriteDocument(doc); err != nil {
		db.Close()
		os.Remove(tmp)
		return err
	}
	if err := db.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

// readInput reads a document written by writeOutput. Files ending in .db
// or .sqlite are read as SQLite; everything else as JSON. A path of "-"
// reads JSON from stdin.
func readInput(path string, stdin io.Reader) (*document.Document, error) {
	if path == "-" {
		return document.Decode(stdin)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		db, err := storage.Open(path)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return storage.NewItemReader(db).ReadDocument()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return document.Decode(f)
}
