package creaturecache

import (
	"cmp"
	"strings"

	"github.com/KirkDiggler/rpg-encounters/internal/entities/bestiary"
	"github.com/KirkDiggler/rpg-encounters/internal/errors"
)

// SortField is an attribute the snapshot keeps an ordered view for
type SortField int

// SortField constants
const (
	SortByID SortField = iota
	SortByName
	SortByHP
	SortByLevel
	SortByFamily
	SortByAlignment
	SortBySize
	SortByRarity

	numSortFields
)

type sortSpec struct {
	name    string
	compare func(a, b *bestiary.Creature) int
}

var sortSpecs = [...]sortSpec{
	SortByID: {name: "ID", compare: func(a, b *bestiary.Creature) int { return cmp.Compare(a.ID, b.ID) }},
	SortByName: {name: "NAME", compare: func(a, b *bestiary.Creature) int {
		return strings.Compare(a.Name, b.Name)
	}},
	SortByHP:     {name: "HP", compare: func(a, b *bestiary.Creature) int { return cmp.Compare(a.HP, b.HP) }},
	SortByLevel:  {name: "LEVEL", compare: func(a, b *bestiary.Creature) int { return cmp.Compare(a.Level, b.Level) }},
	SortByFamily: {name: "FAMILY", compare: func(a, b *bestiary.Creature) int { return strings.Compare(a.Family, b.Family) }},
	SortByAlignment: {name: "ALIGNMENT", compare: func(a, b *bestiary.Creature) int {
		return strings.Compare(string(a.Alignment), string(b.Alignment))
	}},
	SortBySize: {name: "SIZE", compare: func(a, b *bestiary.Creature) int {
		return cmp.Compare(a.Size.Ordinal(), b.Size.Ordinal())
	}},
	SortByRarity: {name: "RARITY", compare: func(a, b *bestiary.Creature) int {
		return cmp.Compare(a.Rarity.Ordinal(), b.Rarity.Ordinal())
	}},
}

var _ = [1]struct{}{}[len(sortSpecs)-int(numSortFields)]

// String returns the field name
func (f SortField) String() string {
	if f < 0 || f >= numSortFields {
		return "UNKNOWN"
	}
	return sortSpecs[f].name
}

// SortFields returns every sortable field
func SortFields() []SortField {
	out := make([]SortField, numSortFields)
	for i := range out {
		out[i] = SortField(i)
	}
	return out
}

// ParseSortField converts a case-insensitive name into a SortField.
// An empty name selects ID.
func ParseSortField(s string) (SortField, error) {
	want := strings.ToUpper(strings.TrimSpace(s))
	if want == "" {
		return SortByID, nil
	}
	for i, spec := range sortSpecs {
		if spec.name == want {
			return SortField(i), nil
		}
	}
	return 0, errors.InvalidArgumentf("unknown sort field %q", s)
}

// Direction is the order of a sorted view
type Direction int

// Direction constants
const (
	Ascending Direction = iota
	Descending
)

// String returns ASC or DESC
func (d Direction) String() string {
	if d == Descending {
		return "DESC"
	}
	return "ASC"
}

// ParseDirection converts ASC or DESC, case-insensitive. An empty string
// selects ascending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "ASC":
		return Ascending, nil
	case "DESC":
		return Descending, nil
	default:
		return 0, errors.InvalidArgumentf("unknown sort direction %q", s)
	}
}

// compareWithTieBreak orders by the field, then by ascending id
func (f SortField) compareWithTieBreak(a, b *bestiary.Creature) int {
	if c := sortSpecs[f].compare(a, b); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
