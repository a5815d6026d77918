package creaturecache

import (
	"maps"
	"slices"

	"github.com/KirkDiggler/rpg-encounters/internal/entities/bestiary"
)

// Filters selects creatures by category values. Values within a dimension
// are alternatives and dimensions narrow each other.
type Filters map[bestiary.Dimension][]string

// Active reports whether any dimension carries a value
func (f Filters) Active() bool {
	for _, values := range f {
		if len(values) > 0 {
			return true
		}
	}
	return false
}

// IDSet is a set of creature ids
type IDSet map[int64]struct{}

// Has reports whether id is in the set
func (s IDSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the ids in ascending order
func (s IDSet) Sorted() []int64 {
	out := slices.AppendSeq(make([]int64, 0, len(s)), maps.Keys(s))
	slices.Sort(out)
	return out
}

// Intersect returns the ids present in both the set and ids, keeping the
// order of ids
func (s IDSet) Intersect(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if s.Has(id) {
			out = append(out, id)
		}
	}
	return out
}

// Match resolves the filters to an id set: the union of the value sets of
// each dimension, intersected across dimensions. The second result is false
// when no filter is active, in which case every creature matches.
func (s *Snapshot) Match(f Filters) (IDSet, bool) {
	if !f.Active() {
		return nil, false
	}

	var result IDSet
	for _, d := range bestiary.Dimensions() {
		values := f[d]
		if len(values) == 0 {
			continue
		}

		union := make(IDSet)
		for _, v := range values {
			for _, id := range s.IDs(d, v) {
				union[id] = struct{}{}
			}
		}

		if result == nil {
			result = union
			continue
		}
		for id := range result {
			if !union.Has(id) {
				delete(result, id)
			}
		}
	}
	return result, true
}
