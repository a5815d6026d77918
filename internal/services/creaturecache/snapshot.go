// Package creaturecache keeps an immutable, fully indexed snapshot of the
// bestiary in memory and refreshes it from the repository on a timer.
package creaturecache

import (
	"maps"
	"slices"
	"time"

	"github.com/KirkDiggler/rpg-encounters/internal/entities/bestiary"
	"github.com/KirkDiggler/rpg-encounters/internal/errors"
)

// SnapshotEntityType is the core.Entity type reported by snapshots
const SnapshotEntityType = "creature_snapshot"

// BuildMeta identifies one snapshot build
type BuildMeta struct {
	ID      string
	BuiltAt time.Time
}

// Snapshot is one fully built, read-only view of the bestiary. Slices and
// maps returned by its methods are shared and must not be modified.
type Snapshot struct {
	meta       BuildMeta
	all        []*bestiary.Creature
	sorted     [numSortFields][2][]*bestiary.Creature
	byID       map[int64]*bestiary.Creature
	categories map[bestiary.Dimension]map[string][]int64
	duplicates int
}

// Build indexes the creatures into a new snapshot. Input creatures are
// copied; when an id repeats, the first record wins.
func Build(creatures []*bestiary.Creature, meta BuildMeta) *Snapshot {
	s := &Snapshot{
		meta:       meta,
		all:        make([]*bestiary.Creature, 0, len(creatures)),
		byID:       make(map[int64]*bestiary.Creature, len(creatures)),
		categories: make(map[bestiary.Dimension]map[string][]int64),
	}

	for _, c := range creatures {
		if c == nil {
			continue
		}
		if _, seen := s.byID[c.ID]; seen {
			s.duplicates++
			continue
		}
		clone := c.Clone()
		s.all = append(s.all, clone)
		s.byID[clone.ID] = clone
	}

	for _, f := range SortFields() {
		asc := slices.Clone(s.all)
		slices.SortFunc(asc, f.compareWithTieBreak)
		desc := slices.Clone(asc)
		slices.Reverse(desc)
		s.sorted[f][Ascending] = asc
		s.sorted[f][Descending] = desc
	}

	// Walking the id order keeps every category list ascending.
	for _, d := range bestiary.Dimensions() {
		index := make(map[string][]int64)
		for _, c := range s.sorted[SortByID][Ascending] {
			for _, v := range d.ValuesOf(c) {
				index[v] = append(index[v], c.ID)
			}
		}
		s.categories[d] = index
	}

	return s
}

// GetID implements core.Entity
func (s *Snapshot) GetID() string {
	return s.meta.ID
}

// GetType implements core.Entity
func (s *Snapshot) GetType() string {
	return SnapshotEntityType
}

// BuiltAt returns when the snapshot was built
func (s *Snapshot) BuiltAt() time.Time {
	return s.meta.BuiltAt
}

// Len returns the number of creatures
func (s *Snapshot) Len() int {
	return len(s.all)
}

// Duplicates returns how many input records were dropped for a repeated id
func (s *Snapshot) Duplicates() int {
	return s.duplicates
}

// All returns the creatures in input order
func (s *Snapshot) All() []*bestiary.Creature {
	return s.all
}

// Sorted returns the precomputed view for the field and direction.
// Descending views are the exact reverse of ascending ones.
func (s *Snapshot) Sorted(field SortField, dir Direction) []*bestiary.Creature {
	if field < 0 || field >= numSortFields {
		errors.Invariantf("unknown sort field %d", int(field))
	}
	if dir != Descending {
		dir = Ascending
	}
	return s.sorted[field][dir]
}

// Category returns the value to ascending id list map of a dimension
func (s *Snapshot) Category(d bestiary.Dimension) map[string][]int64 {
	return s.categories[d]
}

// IDs returns the ascending ids holding the value in the dimension
func (s *Snapshot) IDs(d bestiary.Dimension, value string) []int64 {
	return s.categories[d][d.Canonical(value)]
}

// Values returns the distinct values of a dimension in listing order
func (s *Snapshot) Values(d bestiary.Dimension) []string {
	values := slices.Collect(maps.Keys(s.categories[d]))
	d.SortValues(values)
	return values
}

// ByID returns a copy of the creature, which callers may modify freely
func (s *Snapshot) ByID(id int64) (*bestiary.Creature, bool) {
	c, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return c.Clone(), true
}
