package document

import (
	"errors"
	"fmt"

	"github.com/dominikbraun/graph"

	"github.com/mvp-joe/ts-extractor/internal/contracts"
)

// DanglingReference is a reference to an ID missing from the registry.
type DanglingReference struct {
	From string
	To   string
	Role contracts.RefRole
}

// Graph builds the directed reference graph of the registry. Edges run from
// an item to every item it references, its parent included, so a reachable
// item keeps its enclosing items. References to missing IDs are skipped.
func (d *Document) Graph() (graph.Graph[string, string], error) {
	g := graph.New(graph.StringHash, graph.Directed())

	for _, id := range d.IDs() {
		if err := g.AddVertex(id); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
			return nil, fmt.Errorf("failed to add item %s: %w", id, err)
		}
	}

	for _, id := range d.IDs() {
		var addErr error
		contracts.WalkReferences(d.Registry[id], func(to string, _ contracts.RefRole) {
			if addErr != nil || to == id {
				return
			}
			if _, ok := d.Registry[to]; !ok {
				return
			}
			if err := g.AddEdge(id, to); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
				addErr = fmt.Errorf("failed to add reference %s -> %s: %w", id, to, err)
			}
		})
		if addErr != nil {
			return nil, addErr
		}
	}
	return g, nil
}

// Reachable returns every ID reachable from the entry files.
func (d *Document) Reachable() (map[string]bool, error) {
	g, err := d.Graph()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, entry := range d.EntryFiles {
		for _, id := range entry.Ids {
			if seen[id] {
				continue
			}
			if _, ok := d.Registry[id]; !ok {
				continue
			}
			err := graph.BFS(g, id, func(v string) bool {
				seen[v] = true
				return false
			})
			if err != nil {
				return nil, fmt.Errorf("failed to walk from %s: %w", id, err)
			}
		}
	}
	return seen, nil
}

// Prune removes items unreachable from the entry files, then drops
// references to removed items. It returns the number of removed items.
func (d *Document) Prune() (int, error) {
	reachable, err := d.Reachable()
	if err != nil {
		return 0, err
	}
	removed := 0
	for id := range d.Registry {
		if !reachable[id] {
			delete(d.Registry, id)
			removed++
		}
	}
	d.pruneDangling()
	return removed, nil
}

func (d *Document) pruneDangling() {
	keep := func(id string) bool {
		_, ok := d.Registry[id]
		return ok
	}
	for _, dto := range d.Registry {
		contracts.PruneReferences(dto, keep)
	}
	entries := d.EntryFiles[:0]
	for _, entry := range d.EntryFiles {
		ids := entry.Ids[:0]
		for _, id := range entry.Ids {
			if keep(id) {
				ids = append(ids, id)
			}
		}
		if len(ids) > 0 {
			entry.Ids = ids
			entries = append(entries, entry)
		}
	}
	d.EntryFiles = entries
}

// Validate lists every reference, including entry files and parents, that
// points at a missing ID.
func (d *Document) Validate() []DanglingReference {
	var dangling []DanglingReference
	for _, entry := range d.EntryFiles {
		for _, id := range entry.Ids {
			if _, ok := d.Registry[id]; !ok {
				dangling = append(dangling, DanglingReference{To: id, Role: contracts.RefChild})
			}
		}
	}
	for _, from := range d.IDs() {
		contracts.WalkReferences(d.Registry[from], func(to string, role contracts.RefRole) {
			if _, ok := d.Registry[to]; !ok {
				dangling = append(dangling, DanglingReference{From: from, To: to, Role: role})
			}
		})
	}
	return dangling
}
