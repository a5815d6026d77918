package bestiary

import "slices"

// hpStep is one row of a variant hit point table
type hpStep struct {
	fromLevel int
	delta     int
}

// Rows are ordered by fromLevel.
var (
	weakHPTable = []hpStep{
		{fromLevel: 1, delta: -10},
		{fromLevel: 3, delta: -15},
		{fromLevel: 6, delta: -20},
		{fromLevel: 21, delta: -30},
	}
	eliteHPTable = []hpStep{
		{fromLevel: 1, delta: 10},
		{fromLevel: 2, delta: 15},
		{fromLevel: 5, delta: 20},
		{fromLevel: 20, delta: 30},
	}
)

// WeakLevel returns the level of the weak variant of a creature at level
func WeakLevel(level int) int {
	if level == 1 {
		return -1
	}
	return level - 1
}

// EliteLevel returns the level of the elite variant of a creature at level
func EliteLevel(level int) int {
	if level == -1 || level == 0 {
		return level + 2
	}
	return level + 1
}

// WeakBaseLevels returns the base levels whose weak variant lands on level
func WeakBaseLevels(level int) []int {
	return baseLevels(level, []int{level + 1, level + 2}, WeakLevel)
}

// EliteBaseLevels returns the base levels whose elite variant lands on level
func EliteBaseLevels(level int) []int {
	return baseLevels(level, []int{level - 1, level - 2}, EliteLevel)
}

func baseLevels(target int, candidates []int, shift func(int) int) []int {
	var out []int
	for _, c := range candidates {
		if shift(c) == target {
			out = append(out, c)
		}
	}
	return out
}

func hpDelta(table []hpStep, level int) int {
	idx := slices.IndexFunc(table, func(s hpStep) bool { return s.fromLevel > level })
	switch idx {
	case 0:
		return table[0].delta
	case -1:
		return table[len(table)-1].delta
	default:
		return table[idx-1].delta
	}
}

// WithVariant returns a copy of the creature adjusted to the variant.
// The receiver is left untouched.
func (c *Creature) WithVariant(v Variant) *Creature {
	out := c.Clone()
	switch v {
	case VariantWeak:
		out.HP += hpDelta(weakHPTable, c.Level)
		out.Level = WeakLevel(c.Level)
	case VariantElite:
		out.HP += hpDelta(eliteHPTable, c.Level)
		out.Level = EliteLevel(c.Level)
	default:
		v = VariantBase
	}
	out.HP = max(out.HP, 1)
	out.Variant = v
	out.ArchiveLink = ArchiveLink(c.ID, v)
	return out
}
