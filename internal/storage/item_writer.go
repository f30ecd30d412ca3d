package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/mvp-joe/ts-extractor/internal/contracts"
	"github.com/mvp-joe/ts-extractor/internal/document"
)

// ItemWriter writes documents to SQLite.
type ItemWriter struct {
	db *sql.DB
}

// NewItemWriter creates an ItemWriter instance.
// DB must have schema already created via CreateSchema().
func NewItemWriter(db *sql.DB) *ItemWriter {
	return &ItemWriter{db: db}
}

// WriteDocument replaces the stored document with doc in a single
// transaction.
func (w *ItemWriter) WriteDocument(doc *document.Document) error {
	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	for _, table := range []string{"item_references", "items", "entry_files"} {
		if _, err := sq.Delete(table).RunWith(tx).Exec(); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	itemStmt, err := prepare(tx, sq.Insert("items").
		Columns("id", "api_kind", "name", "parent_id", "file_name", "line", "character", "dto_json").
		Values("", "", "", nil, nil, nil, nil, ""))
	if err != nil {
		return err
	}
	defer itemStmt.Close()

	refStmt, err := prepare(tx, sq.Insert("item_references").
		Columns("from_id", "to_id", "alias", "position").
		Values("", "", "", 0))
	if err != nil {
		return err
	}
	defer refStmt.Close()

	for _, id := range doc.IDs() {
		dto := doc.Registry[id]
		if err := writeItem(itemStmt, id, dto); err != nil {
			return err
		}

		var refErr error
		position := 0
		contracts.WalkAliasedReferences(dto, func(to, alias string, role contracts.RefRole) {
			if role != contracts.RefChild || refErr != nil {
				return
			}
			if _, err := refStmt.Exec(id, to, alias, position); err != nil {
				refErr = fmt.Errorf("failed to write reference %s -> %s: %w", id, to, err)
			}
			position++
		})
		if refErr != nil {
			return refErr
		}
	}

	for pos, ref := range doc.EntryFiles {
		for i, id := range ref.Ids {
			_, err := sq.Insert("entry_files").
				Columns("position", "alias", "item_id", "id_index").
				Values(pos, ref.Alias, id, i).
				RunWith(tx).
				Exec()
			if err != nil {
				return fmt.Errorf("failed to write entry file %s: %w", ref.Alias, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func writeItem(stmt *sql.Stmt, id string, dto contracts.ItemDto) error {
	data, err := json.Marshal(dto)
	if err != nil {
		return fmt.Errorf("failed to encode item %s: %w", id, err)
	}

	base := dto.Base()
	var parent, fileName any
	var line, character any
	if base.ParentId != "" {
		parent = base.ParentId
	}
	if loc := base.Location; loc != nil {
		fileName, line, character = loc.FileName, loc.Line, loc.Character
	}

	if _, err := stmt.Exec(id, string(base.ApiKind), base.Name, parent, fileName, line, character, string(data)); err != nil {
		return fmt.Errorf("failed to write item %s: %w", id, err)
	}
	return nil
}

// prepare builds the statement once with Squirrel and prepares it on tx.
func prepare(tx *sql.Tx, builder sq.InsertBuilder) (*sql.Stmt, error) {
	sqlStr, _, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL: %w", err)
	}
	stmt, err := tx.Prepare(sqlStr)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}
	return stmt, nil
}
