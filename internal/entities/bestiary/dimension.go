package bestiary

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-encounters/internal/errors"
)

// Dimension is a categorical attribute creatures can be filtered by
type Dimension int

// Dimension constants
const (
	DimensionFamily Dimension = iota
	DimensionLevel
	DimensionAlignment
	DimensionSize
	DimensionRarity
	DimensionMelee
	DimensionRanged
	DimensionSpellCaster
	DimensionSource

	numDimensions
)

type dimensionSpec struct {
	name string
	// values lists the category values a creature belongs to
	values func(c *Creature) []string
	// canon maps a caller supplied value onto the stored form
	canon func(v string) string
	// compare orders values for listing; nil means lexical
	compare func(a, b string) int
}

var dimensionSpecs = [...]dimensionSpec{
	DimensionFamily: {
		name:   "FAMILY",
		values: func(c *Creature) []string { return []string{c.Family} },
		canon:  strings.TrimSpace,
	},
	DimensionLevel: {
		name:    "LEVEL",
		values:  func(c *Creature) []string { return []string{strconv.Itoa(c.Level)} },
		canon:   strings.TrimSpace,
		compare: compareNumeric,
	},
	DimensionAlignment: {
		name:   "ALIGNMENT",
		values: func(c *Creature) []string { return []string{string(c.Alignment)} },
		canon:  upper,
	},
	DimensionSize: {
		name:   "SIZE",
		values: func(c *Creature) []string { return []string{string(c.Size)} },
		canon:  upper,
		compare: func(a, b string) int {
			return cmp.Compare(Size(a).Ordinal(), Size(b).Ordinal())
		},
	},
	DimensionRarity: {
		name:   "RARITY",
		values: func(c *Creature) []string { return []string{string(c.Rarity)} },
		canon:  upper,
		compare: func(a, b string) int {
			return cmp.Compare(Rarity(a).Ordinal(), Rarity(b).Ordinal())
		},
	},
	DimensionMelee: {
		name:   "MELEE",
		values: func(c *Creature) []string { return []string{strconv.FormatBool(c.IsMelee)} },
		canon:  lower,
	},
	DimensionRanged: {
		name:   "RANGED",
		values: func(c *Creature) []string { return []string{strconv.FormatBool(c.IsRanged)} },
		canon:  lower,
	},
	DimensionSpellCaster: {
		name:   "SPELLCASTER",
		values: func(c *Creature) []string { return []string{strconv.FormatBool(c.IsSpellCaster)} },
		canon:  lower,
	},
	DimensionSource: {
		name:   "SOURCE",
		values: func(c *Creature) []string { return c.Sources },
		canon:  strings.TrimSpace,
	},
}

// Fails to compile when a dimension is added without a table row.
var _ = [1]struct{}{}[len(dimensionSpecs)-int(numDimensions)]

func upper(v string) string { return strings.ToUpper(strings.TrimSpace(v)) }
func lower(v string) string { return strings.ToLower(strings.TrimSpace(v)) }

// compareNumeric orders integers numerically and anything unparsable last
func compareNumeric(a, b string) int {
	x, errA := strconv.Atoi(a)
	y, errB := strconv.Atoi(b)
	switch {
	case errA != nil && errB != nil:
		return strings.Compare(a, b)
	case errA != nil:
		return 1
	case errB != nil:
		return -1
	default:
		return cmp.Compare(x, y)
	}
}

func (d Dimension) spec() dimensionSpec {
	if d < 0 || d >= numDimensions {
		errors.Invariantf("unknown filter dimension %d", int(d))
	}
	return dimensionSpecs[d]
}

// String returns the dimension name
func (d Dimension) String() string {
	if d < 0 || d >= numDimensions {
		return "UNKNOWN"
	}
	return dimensionSpecs[d].name
}

// Key returns the lower case form used in storage keys
func (d Dimension) Key() string {
	return strings.ToLower(d.spec().name)
}

// ValuesOf returns the category values the creature holds for the dimension
func (d Dimension) ValuesOf(c *Creature) []string {
	return d.spec().values(c)
}

// Canonical maps a caller supplied value onto the stored form
func (d Dimension) Canonical(v string) string {
	return d.spec().canon(v)
}

// SortValues orders dimension values in place: levels numerically, sizes
// and rarities by rank, everything else lexically
func (d Dimension) SortValues(values []string) {
	compare := d.spec().compare
	if compare == nil {
		compare = strings.Compare
	}
	slices.SortFunc(values, compare)
}

// MarshalText implements encoding.TextMarshaler
func (d Dimension) MarshalText() ([]byte, error) {
	if d < 0 || d >= numDimensions {
		return nil, errors.InvalidArgumentf("unknown filter dimension %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Dimension) UnmarshalText(b []byte) error {
	parsed, err := ParseDimension(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Dimensions returns every registered dimension
func Dimensions() []Dimension {
	out := make([]Dimension, numDimensions)
	for i := range out {
		out[i] = Dimension(i)
	}
	return out
}

// ParseDimension converts a case-insensitive name into a Dimension
func ParseDimension(s string) (Dimension, error) {
	want := strings.ToUpper(strings.TrimSpace(s))
	for i, spec := range dimensionSpecs {
		if spec.name == want {
			return Dimension(i), nil
		}
	}
	return 0, errors.InvalidArgumentf("unknown filter dimension %q", s)
}
