package storage

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/mvp-joe/ts-extractor/internal/contracts"
	"github.com/mvp-joe/ts-extractor/internal/document"
)

// ItemReader reads documents and items from SQLite.
type ItemReader struct {
	db *sql.DB
}

// ItemRow is the indexed projection of one stored item.
type ItemRow struct {
	ID        string
	ApiKind   contracts.ApiKind
	Name      string
	ParentID  string
	FileName  string
	Line      int
	Character int
	HasLoc    bool
}

// Reference is one stored edge between items.
type Reference struct {
	FromID string
	ToID   string
	Alias  string
}

// NewItemReader creates an ItemReader instance.
// DB should have schema already created.
func NewItemReader(db *sql.DB) *ItemReader {
	return &ItemReader{db: db}
}

// ReadDocument restores the stored document.
func (r *ItemReader) ReadDocument() (*document.Document, error) {
	doc := document.New()

	rows, err := sq.Select("id", "dto_json").
		From("items").
		OrderBy("id").
		RunWith(r.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		dto, err := document.DecodeItem([]byte(data))
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", id, err)
		}
		doc.Registry[id] = dto
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	entries, err := r.entryFiles()
	if err != nil {
		return nil, err
	}
	doc.EntryFiles = entries
	return doc, nil
}

func (r *ItemReader) entryFiles() ([]contracts.ItemReference, error) {
	rows, err := sq.Select("position", "alias", "item_id").
		From("entry_files").
		OrderBy("position", "id_index").
		RunWith(r.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query entry files: %w", err)
	}
	defer rows.Close()

	entries := []contracts.ItemReference{}
	last := -1
	for rows.Next() {
		var pos int
		var alias, id string
		if err := rows.Scan(&pos, &alias, &id); err != nil {
			return nil, fmt.Errorf("failed to scan entry file: %w", err)
		}
		if pos != last {
			entries = append(entries, contracts.ItemReference{Alias: alias, Ids: []string{}})
			last = pos
		}
		cur := &entries[len(entries)-1]
		cur.Ids = append(cur.Ids, id)
	}
	return entries, rows.Err()
}

// GetItem returns the DTO stored under id.
// Returns (nil, nil) if the item is not found.
func (r *ItemReader) GetItem(id string) (contracts.ItemDto, error) {
	var data string
	err := sq.Select("dto_json").
		From("items").
		Where(sq.Eq{"id": id}).
		RunWith(r.db).
		QueryRow().
		Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item %s: %w", id, err)
	}
	return document.DecodeItem([]byte(data))
}

// ItemsByKind returns the rows of every item of kind, ordered by ID.
func (r *ItemReader) ItemsByKind(kind contracts.ApiKind) ([]ItemRow, error) {
	return r.queryRows(sq.Eq{"api_kind": string(kind)})
}

// Children returns the rows of every item whose parent is id.
func (r *ItemReader) Children(id string) ([]ItemRow, error) {
	return r.queryRows(sq.Eq{"parent_id": id})
}

func (r *ItemReader) queryRows(where sq.Sqlizer) ([]ItemRow, error) {
	rows, err := sq.Select("id", "api_kind", "name", "parent_id", "file_name", "line", "character").
		From("items").
		Where(where).
		OrderBy("id").
		RunWith(r.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var out []ItemRow
	for rows.Next() {
		var row ItemRow
		var kind string
		var parent, fileName sql.NullString
		var line, character sql.NullInt64
		if err := rows.Scan(&row.ID, &kind, &row.Name, &parent, &fileName, &line, &character); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		row.ApiKind = contracts.ApiKind(kind)
		row.ParentID = parent.String
		row.FileName = fileName.String
		row.Line = int(line.Int64)
		row.Character = int(character.Int64)
		row.HasLoc = fileName.Valid
		out = append(out, row)
	}
	return out, rows.Err()
}

// ReferencesFrom returns the references held by id in field order.
func (r *ItemReader) ReferencesFrom(id string) ([]Reference, error) {
	return r.queryReferences(sq.Eq{"from_id": id}, "position")
}

// ReferencesTo returns every reference pointing at id.
func (r *ItemReader) ReferencesTo(id string) ([]Reference, error) {
	return r.queryReferences(sq.Eq{"to_id": id}, "from_id", "position")
}

func (r *ItemReader) queryReferences(where sq.Sqlizer, orderBy ...string) ([]Reference, error) {
	rows, err := sq.Select("from_id", "to_id", "alias").
		From("item_references").
		Where(where).
		OrderBy(orderBy...).
		RunWith(r.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query references: %w", err)
	}
	defer rows.Close()

	var out []Reference
	for rows.Next() {
		var ref Reference
		if err := rows.Scan(&ref.FromID, &ref.ToID, &ref.Alias); err != nil {
			return nil, fmt.Errorf("failed to scan reference: %w", err)
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}
