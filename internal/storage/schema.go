// Package storage persists an extracted document to SQLite.
//
// The registry is stored one row per item with the full DTO as JSON, next to
// an edge table of every reference between items so that consumers can query
// the API surface without decoding the whole document.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SchemaVersion is the version written to the metadata table.
const SchemaVersion = "1"

// CreateSchema creates all tables and indexes.
// Uses a transaction so that schema creation succeeds or fails as a whole.
//
// Must be called with SQLite PRAGMA foreign_keys = ON.
func CreateSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	// Create all tables in dependency order
	tables := []struct {
		name string
		ddl  string
	}{
		{"items", createItemsTable},
		{"item_references", createItemReferencesTable},
		{"entry_files", createEntryFilesTable},
		{"metadata", createMetadataTable},
	}

	for _, table := range tables {
		if _, err := tx.Exec(table.ddl); err != nil {
			return fmt.Errorf("failed to create %s table: %w", table.name, err)
		}
	}

	for i, idx := range getAllIndexes() {
		if _, err := tx.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index %d: %w", i+1, err)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec(
		`INSERT INTO metadata (key, value, updated_at) VALUES ('schema_version', ?, ?)`,
		SchemaVersion, now,
	); err != nil {
		return fmt.Errorf("failed to bootstrap metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema transaction: %w", err)
	}
	return nil
}

// GetSchemaVersion retrieves the schema version from metadata.
// Returns "0" if the table doesn't exist (new database).
func GetSchemaVersion(db *sql.DB) (string, error) {
	var tableExists int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='metadata'").Scan(&tableExists)
	if err != nil {
		return "", fmt.Errorf("failed to check metadata existence: %w", err)
	}
	if tableExists == 0 {
		return "0", nil
	}

	var version string
	err = db.QueryRow("SELECT value FROM metadata WHERE key = 'schema_version'").Scan(&version)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("schema_version key not found in metadata")
	}
	if err != nil {
		return "", fmt.Errorf("failed to query schema version: %w", err)
	}
	return version, nil
}

// items holds one row per registry entry. The location columns are NULL for
// items without a declaration position.
const createItemsTable = `
CREATE TABLE items (
    id TEXT PRIMARY KEY,
    api_kind TEXT NOT NULL,
    name TEXT NOT NULL,
    parent_id TEXT,
    file_name TEXT,
    line INTEGER,
    character INTEGER,
    dto_json TEXT NOT NULL
)
`

// item_references holds one row per child reference. to_id is not a foreign
// key: a document may be written before dangling references are pruned.
const createItemReferencesTable = `
CREATE TABLE item_references (
    from_id TEXT NOT NULL,
    to_id TEXT NOT NULL,
    alias TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (from_id, position),
    FOREIGN KEY (from_id) REFERENCES items(id) ON DELETE CASCADE
)
`

const createEntryFilesTable = `
CREATE TABLE entry_files (
    position INTEGER NOT NULL,
    alias TEXT NOT NULL,
    item_id TEXT NOT NULL,
    id_index INTEGER NOT NULL,
    PRIMARY KEY (position, id_index)
)
`

const createMetadataTable = `
CREATE TABLE metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
)
`

// getAllIndexes returns all index creation statements.
func getAllIndexes() []string {
	return []string{
		"CREATE INDEX idx_items_kind ON items(api_kind)",
		"CREATE INDEX idx_items_name ON items(name)",
		"CREATE INDEX idx_items_parent ON items(parent_id)",
		"CREATE INDEX idx_items_file ON items(file_name)",
		"CREATE INDEX idx_item_references_to ON item_references(to_id)",
	}
}
