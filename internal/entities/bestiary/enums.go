package bestiary

import (
	"strings"

	"github.com/KirkDiggler/rpg-encounters/internal/errors"
)

// Alignment is a creature's moral alignment
type Alignment string

// Alignment constants
const (
	AlignmentCE  Alignment = "CE"
	AlignmentCN  Alignment = "CN"
	AlignmentCG  Alignment = "CG"
	AlignmentNE  Alignment = "NE"
	AlignmentN   Alignment = "N"
	AlignmentNG  Alignment = "NG"
	AlignmentLE  Alignment = "LE"
	AlignmentLN  Alignment = "LN"
	AlignmentLG  Alignment = "LG"
	AlignmentNO  Alignment = "NO"
	AlignmentAny Alignment = "ANY"
)

// Alignments returns every known alignment
func Alignments() []Alignment {
	return []Alignment{
		AlignmentCE, AlignmentCN, AlignmentCG,
		AlignmentNE, AlignmentN, AlignmentNG,
		AlignmentLE, AlignmentLN, AlignmentLG,
		AlignmentNO, AlignmentAny,
	}
}

// ParseAlignment converts a case-insensitive string into an Alignment
func ParseAlignment(s string) (Alignment, error) {
	want := Alignment(strings.ToUpper(strings.TrimSpace(s)))
	for _, a := range Alignments() {
		if a == want {
			return a, nil
		}
	}
	return "", errors.InvalidArgumentf("unknown alignment %q", s)
}

// Size is a creature's physical size category
type Size string

// Size constants, smallest first
const (
	SizeTiny       Size = "TINY"
	SizeSmall      Size = "SMALL"
	SizeMedium     Size = "MEDIUM"
	SizeLarge      Size = "LARGE"
	SizeHuge       Size = "HUGE"
	SizeGargantuan Size = "GARGANTUAN"
)

var sizeOrder = []Size{SizeTiny, SizeSmall, SizeMedium, SizeLarge, SizeHuge, SizeGargantuan}

// Sizes returns every size, smallest first
func Sizes() []Size {
	return append([]Size(nil), sizeOrder...)
}

// Ordinal returns the position of the size from TINY upward, or -1 if unknown
func (s Size) Ordinal() int {
	for i, v := range sizeOrder {
		if v == s {
			return i
		}
	}
	return -1
}

// ParseSize converts a case-insensitive string into a Size
func ParseSize(s string) (Size, error) {
	want := Size(strings.ToUpper(strings.TrimSpace(s)))
	if want.Ordinal() < 0 {
		return "", errors.InvalidArgumentf("unknown size %q", s)
	}
	return want, nil
}

// Rarity is how common a creature is
type Rarity string

// Rarity constants, most common first
const (
	RarityCommon   Rarity = "COMMON"
	RarityUncommon Rarity = "UNCOMMON"
	RarityRare     Rarity = "RARE"
	RarityUnique   Rarity = "UNIQUE"
)

var rarityOrder = []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityUnique}

// Rarities returns every rarity, most common first
func Rarities() []Rarity {
	return append([]Rarity(nil), rarityOrder...)
}

// Ordinal returns the position of the rarity from COMMON upward, or -1 if unknown
func (r Rarity) Ordinal() int {
	for i, v := range rarityOrder {
		if v == r {
			return i
		}
	}
	return -1
}

// ParseRarity converts a case-insensitive string into a Rarity.
// An empty string yields COMMON.
func ParseRarity(s string) (Rarity, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return RarityCommon, nil
	}
	want := Rarity(strings.ToUpper(trimmed))
	if want.Ordinal() < 0 {
		return "", errors.InvalidArgumentf("unknown rarity %q", s)
	}
	return want, nil
}

// Variant marks whether a creature is the base statblock or an adjusted one
type Variant string

// Variant constants
const (
	VariantBase  Variant = "BASE"
	VariantWeak  Variant = "WEAK"
	VariantElite Variant = "ELITE"
)
