package document

import (
	"github.com/mvp-joe/ts-extractor/internal/contracts"
)

// FilterPrivate returns a copy of d without private class members. Items
// only reachable through a private member are dropped too; d is unchanged.
func (d *Document) FilterPrivate() (*Document, error) {
	out, err := d.Clone()
	if err != nil {
		return nil, err
	}
	out.RemoveWhere(contracts.IsPrivate)
	if _, err := out.Prune(); err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveWhere deletes every item matching pred and the references to it.
// It returns the number of removed items.
func (d *Document) RemoveWhere(pred func(contracts.ItemDto) bool) int {
	removed := 0
	for id, dto := range d.Registry {
		if pred(dto) {
			delete(d.Registry, id)
			removed++
		}
	}
	if removed > 0 {
		d.pruneDangling()
	}
	return removed
}
