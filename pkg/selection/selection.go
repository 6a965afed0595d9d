// Package selection implements multi-select toggle behavior for variable
// pills. Each category keeps its own ordered, duplicate-free id list.
package selection

// Toggle removes id from ids when present, otherwise appends it.
// Removal keeps the relative order of the remaining ids. The input slice is
// never modified.
func Toggle(ids []string, id string) []string {
	for i, existing := range ids {
		if existing == id {
			out := make([]string, 0, len(ids)-1)
			out = append(out, ids[:i]...)
			return append(out, ids[i+1:]...)
		}
	}
	out := make([]string, len(ids), len(ids)+1)
	copy(out, ids)
	return append(out, id)
}

// Set is an insertion-ordered set of ids. The zero value is empty and ready
// to use. Sets are values: Toggle returns a new Set.
type Set struct {
	ids []string
}

// NewSet builds a set from ids, dropping duplicates.
func NewSet(ids ...string) Set {
	var s Set
	for _, id := range ids {
		if !s.Has(id) {
			s.ids = append(s.ids, id)
		}
	}
	return s
}

// Has reports membership.
func (s Set) Has(id string) bool {
	for _, existing := range s.ids {
		if existing == id {
			return true
		}
	}
	return false
}

// Toggle returns the set with id flipped.
func (s Set) Toggle(id string) Set {
	return Set{ids: Toggle(s.ids, id)}
}

// Len returns the number of members.
func (s Set) Len() int { return len(s.ids) }

// IDs returns a copy of the members in selection order.
func (s Set) IDs() []string {
	if len(s.ids) == 0 {
		return nil
	}
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Groups maps a category id to its selection. Categories are independent.
type Groups map[string]Set

// NewGroups seeds groups from a category -> ids map.
func NewGroups(seed map[string][]string) Groups {
	g := make(Groups, len(seed))
	for cat, ids := range seed {
		g[cat] = NewSet(ids...)
	}
	return g
}

// Toggle returns a copy of g with id flipped in category. Other categories
// are shared with g; Sets are immutable so that is safe.
func (g Groups) Toggle(category, id string) Groups {
	out := make(Groups, len(g)+1)
	for k, v := range g {
		out[k] = v
	}
	out[category] = g[category].Toggle(id)
	return out
}

// Selected reports whether id is selected in category.
func (g Groups) Selected(category, id string) bool {
	return g[category].Has(id)
}

// Retain returns a copy of g keeping only ids accepted by keep. Used when the
// underlying scenario is reloaded and some pills disappear.
func (g Groups) Retain(keep func(category, id string) bool) Groups {
	out := make(Groups, len(g))
	for cat, set := range g {
		var kept []string
		for _, id := range set.ids {
			if keep(cat, id) {
				kept = append(kept, id)
			}
		}
		out[cat] = Set{ids: kept}
	}
	return out
}
