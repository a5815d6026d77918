package bestiary

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

const (
	// EntityType is the core.Entity type reported by creatures
	EntityType = "creature"

	// NoFamily is stored when a creature does not belong to a family
	NoFamily = "-"

	archiveLinkFormat = "https://2e.aonprd.com/Monsters.aspx?ID=%d"
)

var _ core.Entity = (*Creature)(nil)

// Creature is a single bestiary entry
type Creature struct {
	ID            int64     `json:"id" yaml:"id"`
	Name          string    `json:"name" yaml:"name"`
	HP            int       `json:"hp" yaml:"hp"`
	Level         int       `json:"level" yaml:"level"`
	Alignment     Alignment `json:"alignment" yaml:"alignment"`
	Size          Size      `json:"size" yaml:"size"`
	Family        string    `json:"family" yaml:"family"`
	Rarity        Rarity    `json:"rarity" yaml:"rarity"`
	IsMelee       bool      `json:"is_melee" yaml:"is_melee"`
	IsRanged      bool      `json:"is_ranged" yaml:"is_ranged"`
	IsSpellCaster bool      `json:"is_spell_caster" yaml:"is_spell_caster"`
	Sources       []string  `json:"sources,omitempty" yaml:"sources,omitempty"`
	ArchiveLink   string    `json:"archive_link" yaml:"-"`
	Variant       Variant   `json:"variant,omitempty" yaml:"-"`
}

// GetID implements core.Entity
func (c *Creature) GetID() string {
	return strconv.FormatInt(c.ID, 10)
}

// GetType implements core.Entity
func (c *Creature) GetType() string {
	return EntityType
}

// Normalize trims the name, fills defaults for family and rarity and derives
// the archive link. It is applied to every record read from storage.
func (c *Creature) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Family = strings.TrimSpace(c.Family)
	if c.Family == "" {
		c.Family = NoFamily
	}
	if c.Rarity == "" {
		c.Rarity = RarityCommon
	}
	c.Alignment = Alignment(strings.ToUpper(string(c.Alignment)))
	c.Size = Size(strings.ToUpper(string(c.Size)))
	c.Rarity = Rarity(strings.ToUpper(string(c.Rarity)))
	if c.Variant == "" {
		c.Variant = VariantBase
	}
	c.ArchiveLink = ArchiveLink(c.ID, c.Variant)
}

// Clone returns a deep copy
func (c *Creature) Clone() *Creature {
	if c == nil {
		return nil
	}
	out := *c
	out.Sources = slices.Clone(c.Sources)
	return &out
}

// ArchiveLink builds the reference link for a creature id and variant
func ArchiveLink(id int64, variant Variant) string {
	link := fmt.Sprintf(archiveLinkFormat, id)
	switch variant {
	case VariantWeak:
		link += "&Weak=true"
	case VariantElite:
		link += "&Elite=true"
	}
	return link
}
