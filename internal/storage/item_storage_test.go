package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/ts-extractor/internal/contracts"
	"github.com/mvp-joe/ts-extractor/internal/document"
)

// Test Plan for item storage:
// - CreateSchema records the schema version; a new database reports "0"
// - WriteDocument/ReadDocument round trip registry and entry files
// - Item rows carry kind, parent and location; missing locations are NULL
// - References are stored with aliases in field order, parents excluded
// - Writing again replaces the previous document
// - Create replaces an existing file; Open fails on a missing one

// sampleDocument models:
//
//	export class Box<T> { value: T }
func sampleDocument() *document.Document {
	doc := document.New()
	doc.EntryFiles = []contracts.ItemReference{{Alias: `"/project/box"`, Ids: []string{"source-file-0"}}}
	doc.Registry["source-file-0"] = &contracts.SourceFileDto{
		BaseItemDto: contracts.BaseItemDto{ApiKind: contracts.KindSourceFile, Name: `"/project/box"`},
		Path:        "./box.ts",
		Members:     []contracts.ItemReference{{Alias: "Box", Ids: []string{"class-1"}}},
	}
	doc.Registry["class-1"] = &contracts.ClassDto{
		BaseItemDto: contracts.BaseItemDto{
			ApiKind:  contracts.KindClass,
			Name:     "Box",
			ParentId: "source-file-0",
			Location: &contracts.LocationDto{FileName: "./box.ts", Line: 0, Character: 7},
		},
		Members:        []contracts.ItemReference{{Alias: "value", Ids: []string{"class-property-3"}}},
		TypeParameters: []contracts.ItemReference{{Alias: "T", Ids: []string{"type-parameter-2"}}},
		Implements:     []*contracts.TypeDto{},
	}
	doc.Registry["type-parameter-2"] = &contracts.TypeParameterDto{
		BaseItemDto: contracts.BaseItemDto{ApiKind: contracts.KindTypeParameter, Name: "T", ParentId: "class-1"},
	}
	doc.Registry["class-property-3"] = &contracts.ClassPropertyDto{
		BaseItemDto:    contracts.BaseItemDto{ApiKind: contracts.KindClassProperty, Name: "value", ParentId: "class-1"},
		AccessModifier: contracts.AccessPublic,
		Type: &contracts.TypeDto{
			ApiTypeKind: contracts.TypeReference,
			Text:        "T",
			Reference:   &contracts.ItemReference{Alias: "T", Ids: []string{"type-parameter-2"}},
		},
	}
	return doc
}

func TestCreateSchema_Version(t *testing.T) {
	t.Parallel()

	db := NewTestDB(t)
	version, err := GetSchemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, version)

	empty, err := open(":memory:")
	require.NoError(t, err)
	defer empty.Close()
	version, err = GetSchemaVersion(empty)
	require.NoError(t, err)
	assert.Equal(t, "0", version)
}

func TestItemStorage_RoundTrip(t *testing.T) {
	t.Parallel()

	db := NewTestDB(t)
	doc := sampleDocument()
	require.NoError(t, NewItemWriter(db).WriteDocument(doc))

	got, err := NewItemReader(db).ReadDocument()
	require.NoError(t, err)

	want, err := doc.Clone()
	require.NoError(t, err)
	assert.Equal(t, want.EntryFiles, got.EntryFiles)
	assert.Equal(t, want.Registry, got.Registry)
}

func TestItemReader_Rows(t *testing.T) {
	t.Parallel()

	db := NewTestDB(t)
	require.NoError(t, NewItemWriter(db).WriteDocument(sampleDocument()))
	reader := NewItemReader(db)

	classes, err := reader.ItemsByKind(contracts.KindClass)
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, ItemRow{
		ID:        "class-1",
		ApiKind:   contracts.KindClass,
		Name:      "Box",
		ParentID:  "source-file-0",
		FileName:  "./box.ts",
		Character: 7,
		HasLoc:    true,
	}, classes[0])

	children, err := reader.Children("class-1")
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "class-property-3", children[0].ID)
	assert.False(t, children[0].HasLoc)
	assert.Equal(t, "type-parameter-2", children[1].ID)

	dto, err := reader.GetItem("class-property-3")
	require.NoError(t, err)
	prop, ok := dto.(*contracts.ClassPropertyDto)
	require.True(t, ok)
	assert.Equal(t, "T", prop.Type.Text)

	missing, err := reader.GetItem("nope")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestItemReader_References(t *testing.T) {
	t.Parallel()

	db := NewTestDB(t)
	require.NoError(t, NewItemWriter(db).WriteDocument(sampleDocument()))
	reader := NewItemReader(db)

	from, err := reader.ReferencesFrom("class-1")
	require.NoError(t, err)
	assert.Equal(t, []Reference{
		{FromID: "class-1", ToID: "class-property-3", Alias: "value"},
		{FromID: "class-1", ToID: "type-parameter-2", Alias: "T"},
	}, from)

	to, err := reader.ReferencesTo("type-parameter-2")
	require.NoError(t, err)
	assert.Equal(t, []Reference{
		{FromID: "class-1", ToID: "type-parameter-2", Alias: "T"},
		{FromID: "class-property-3", ToID: "type-parameter-2", Alias: "T"},
	}, to)

	// ParentId back-references are not edges.
	parents, err := reader.ReferencesTo("source-file-0")
	require.NoError(t, err)
	assert.Empty(t, parents)
}

func TestItemWriter_ReplacesPreviousDocument(t *testing.T) {
	t.Parallel()

	db := NewTestDB(t)
	writer := NewItemWriter(db)
	require.NoError(t, writer.WriteDocument(sampleDocument()))

	smaller := document.New()
	smaller.Registry["variable-0"] = &contracts.VariableDto{
		BaseItemDto:  contracts.BaseItemDto{ApiKind: contracts.KindVariable, Name: "x"},
		VariableKind: "const",
	}
	require.NoError(t, writer.WriteDocument(smaller))

	got, err := NewItemReader(db).ReadDocument()
	require.NoError(t, err)
	assert.Equal(t, []string{"variable-0"}, got.IDs())
	assert.Empty(t, got.EntryFiles)

	refs, err := NewItemReader(db).ReferencesTo("type-parameter-2")
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestCreateAndOpen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "api.db")

	_, err := Open(path)
	assert.Error(t, err)

	db, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, NewItemWriter(db).WriteDocument(sampleDocument()))
	require.NoError(t, db.Close())

	// Create starts over.
	db, err = Create(path)
	require.NoError(t, err)
	got, err := NewItemReader(db).ReadDocument()
	require.NoError(t, err)
	assert.Empty(t, got.Registry)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()
	version, err := GetSchemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, version)
}
