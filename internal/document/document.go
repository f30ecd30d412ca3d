// Package document holds the extraction output: the entry file references
// and the registry of item DTOs keyed by ID.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/mvp-joe/ts-extractor/internal/contracts"
)

// Document is the serialized result of one extraction run.
type Document struct {
	EntryFiles []contracts.ItemReference     `json:"EntryFiles"`
	Registry   map[string]contracts.ItemDto `json:"Registry"`
}

// New creates an empty document.
func New() *Document {
	return &Document{
		EntryFiles: []contracts.ItemReference{},
		Registry:   make(map[string]contracts.ItemDto),
	}
}

// IDs returns the registry IDs in sorted order.
func (d *Document) IDs() []string {
	ids := make([]string, 0, len(d.Registry))
	for id := range d.Registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Get returns the DTO of id.
func (d *Document) Get(id string) (contracts.ItemDto, bool) {
	dto, ok := d.Registry[id]
	return dto, ok
}

// Encode writes the document as JSON.
func (d *Document) Encode(w io.Writer, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return nil
}

type rawDocument struct {
	EntryFiles []contracts.ItemReference   `json:"EntryFiles"`
	Registry   map[string]json.RawMessage `json:"Registry"`
}

// Decode reads a document, restoring the concrete DTO type of every item from
// its ApiKind.
func Decode(r io.Reader) (*Document, error) {
	var raw rawDocument
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}

	doc := New()
	if raw.EntryFiles != nil {
		doc.EntryFiles = raw.EntryFiles
	}
	for id, msg := range raw.Registry {
		dto, err := DecodeItem(msg)
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", id, err)
		}
		doc.Registry[id] = dto
	}
	return doc, nil
}

// DecodeItem decodes one DTO.
func DecodeItem(data []byte) (contracts.ItemDto, error) {
	var head struct {
		ApiKind contracts.ApiKind `json:"ApiKind"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("failed to read item kind: %w", err)
	}
	dto, ok := contracts.NewDto(head.ApiKind)
	if !ok {
		return nil, fmt.Errorf("unknown item kind %q", head.ApiKind)
	}
	if err := json.Unmarshal(data, dto); err != nil {
		return nil, fmt.Errorf("failed to decode %s item: %w", head.ApiKind, err)
	}
	return dto, nil
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() (*Document, error) {
	var buf bytes.Buffer
	if err := d.Encode(&buf, false); err != nil {
		return nil, err
	}
	return Decode(&buf)
}
