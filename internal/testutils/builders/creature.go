// Package builders provides test data builders for creating test fixtures
package builders

import (
	"fmt"

	"github.com/KirkDiggler/rpg-encounters/internal/entities/bestiary"
)

// CreatureBuilder provides a fluent interface for building test creatures
type CreatureBuilder struct {
	creature *bestiary.Creature
}

// NewCreatureBuilder creates a builder for a medium, neutral, common creature
func NewCreatureBuilder(id int64) *CreatureBuilder {
	return &CreatureBuilder{
		creature: &bestiary.Creature{
			ID:        id,
			Name:      fmt.Sprintf("Creature %d", id),
			HP:        20,
			Alignment: bestiary.AlignmentN,
			Size:      bestiary.SizeMedium,
			Family:    bestiary.NoFamily,
			Rarity:    bestiary.RarityCommon,
			IsMelee:   true,
			Sources:   []string{"Bestiary"},
		},
	}
}

// WithName sets the name
func (b *CreatureBuilder) WithName(name string) *CreatureBuilder {
	b.creature.Name = name
	return b
}

// WithLevel sets the level
func (b *CreatureBuilder) WithLevel(level int) *CreatureBuilder {
	b.creature.Level = level
	return b
}

// WithHP sets the hit points
func (b *CreatureBuilder) WithHP(hp int) *CreatureBuilder {
	b.creature.HP = hp
	return b
}

// WithFamily sets the family
func (b *CreatureBuilder) WithFamily(family string) *CreatureBuilder {
	b.creature.Family = family
	return b
}

// WithAlignment sets the alignment
func (b *CreatureBuilder) WithAlignment(a bestiary.Alignment) *CreatureBuilder {
	b.creature.Alignment = a
	return b
}

// WithSize sets the size
func (b *CreatureBuilder) WithSize(size bestiary.Size) *CreatureBuilder {
	b.creature.Size = size
	return b
}

// WithRarity sets the rarity
func (b *CreatureBuilder) WithRarity(r bestiary.Rarity) *CreatureBuilder {
	b.creature.Rarity = r
	return b
}

// WithCombat sets the combat style flags
func (b *CreatureBuilder) WithCombat(melee, ranged, spellCaster bool) *CreatureBuilder {
	b.creature.IsMelee = melee
	b.creature.IsRanged = ranged
	b.creature.IsSpellCaster = spellCaster
	return b
}

// WithSources replaces the source tags
func (b *CreatureBuilder) WithSources(sources ...string) *CreatureBuilder {
	b.creature.Sources = sources
	return b
}

// Build returns the normalized creature
func (b *CreatureBuilder) Build() *bestiary.Creature {
	out := b.creature.Clone()
	out.Normalize()
	return out
}
