package contracts

import "reflect"

// RefRole tells how a DTO points at another item.
type RefRole int

const (
	// RefChild is a reference to a member, parameter, type or alias target.
	RefChild RefRole = iota
	// RefParent is the ParentId back-reference.
	RefParent
)

var (
	itemReferenceType = reflect.TypeOf(ItemReference{})
	typeDtoType       = reflect.TypeOf(TypeDto{})
)

type visitFunc func(id, alias string, role RefRole) bool

// WalkReferences calls fn for every item ID dto refers to, in field order.
// Fields holding IDs are ItemReference values, TypeDto references and string
// fields tagged `ref:"id"` or `ref:"parent"`.
func WalkReferences(dto ItemDto, fn func(id string, role RefRole)) {
	if dto == nil {
		return
	}
	visitValue(reflect.ValueOf(dto), func(id, _ string, role RefRole) bool {
		fn(id, role)
		return true
	})
}

// WalkAliasedReferences is WalkReferences with the alias of the enclosing
// ItemReference. IDs held outside an ItemReference have an empty alias.
func WalkAliasedReferences(dto ItemDto, fn func(id, alias string, role RefRole)) {
	if dto == nil {
		return
	}
	visitValue(reflect.ValueOf(dto), func(id, alias string, role RefRole) bool {
		fn(id, alias, role)
		return true
	})
}

// PruneReferences removes every referenced ID for which keep returns false.
// Item references emptied by pruning are dropped and cleared ID fields are
// set to "".
func PruneReferences(dto ItemDto, keep func(id string) bool) {
	if dto == nil {
		return
	}
	visitValue(reflect.ValueOf(dto), func(id, _ string, _ RefRole) bool {
		return keep(id)
	})
}

func visitValue(v reflect.Value, fn visitFunc) {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return
		}
		if v.Kind() == reflect.Pointer && v.Type().Elem() == itemReferenceType {
			ref := v.Interface().(*ItemReference)
			ids, removed := filterIDs(ref.Ids, ref.Alias, RefChild, fn)
			ref.Ids = ids
			if removed && len(ids) == 0 && v.CanSet() {
				v.Set(reflect.Zero(v.Type()))
			}
			return
		}
		visitValue(v.Elem(), fn)

	case reflect.Struct:
		switch v.Type() {
		case itemReferenceType:
			ref := v.Addr().Interface().(*ItemReference)
			ref.Ids, _ = filterIDs(ref.Ids, ref.Alias, RefChild, fn)
			return
		case typeDtoType:
			visitType(v.Addr().Interface().(*TypeDto), fn)
			return
		}
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			switch field.Tag.Get("ref") {
			case "id":
				visitTagged(v.Field(i), RefChild, fn)
			case "parent":
				visitTagged(v.Field(i), RefParent, fn)
			default:
				visitValue(v.Field(i), fn)
			}
		}

	case reflect.Slice:
		if v.Type().Elem() == itemReferenceType {
			refs := v.Interface().([]ItemReference)
			out := refs[:0]
			for _, ref := range refs {
				ids, removed := filterIDs(ref.Ids, ref.Alias, RefChild, fn)
				if removed && len(ids) == 0 {
					continue
				}
				ref.Ids = ids
				out = append(out, ref)
			}
			v.Set(reflect.ValueOf(out))
			return
		}
		for i := 0; i < v.Len(); i++ {
			visitValue(v.Index(i), fn)
		}
	}
}

func visitType(t *TypeDto, fn visitFunc) {
	if t.Reference != nil {
		ids, removed := filterIDs(t.Reference.Ids, t.Reference.Alias, RefChild, fn)
		t.Reference.Ids = ids
		if removed && len(ids) == 0 {
			t.Reference = nil
		}
	}
	for _, g := range t.Generics {
		if g != nil {
			visitType(g, fn)
		}
	}
	for _, m := range t.Types {
		if m != nil {
			visitType(m, fn)
		}
	}
}

func visitTagged(v reflect.Value, role RefRole, fn visitFunc) {
	switch v.Kind() {
	case reflect.String:
		if id := v.String(); id != "" && !fn(id, "", role) {
			v.SetString("")
		}
	case reflect.Slice:
		if v.Type().Elem().Kind() != reflect.String {
			return
		}
		ids, removed := filterIDs(v.Interface().([]string), "", role, fn)
		if removed {
			v.Set(reflect.ValueOf(ids))
		}
	}
}

func filterIDs(ids []string, alias string, role RefRole, fn visitFunc) ([]string, bool) {
	out := ids[:0]
	removed := false
	for _, id := range ids {
		if fn(id, alias, role) {
			out = append(out, id)
		} else {
			removed = true
		}
	}
	return out, removed
}
