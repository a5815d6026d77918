package v1alpha1

import (
	"github.com/KirkDiggler/rpg-encounters/internal/engine/difficulty"
	"github.com/KirkDiggler/rpg-encounters/internal/entities/bestiary"
	"github.com/KirkDiggler/rpg-encounters/internal/errors"
	"github.com/KirkDiggler/rpg-encounters/internal/services/creaturecache"
)

func convertCreatureToMessage(c *bestiary.Creature) *Creature {
	if c == nil {
		return nil
	}
	return &Creature{
		ID:            c.ID,
		Name:          c.Name,
		HP:            c.HP,
		Level:         c.Level,
		Alignment:     string(c.Alignment),
		Size:          string(c.Size),
		Family:        c.Family,
		Rarity:        string(c.Rarity),
		IsMelee:       c.IsMelee,
		IsRanged:      c.IsRanged,
		IsSpellCaster: c.IsSpellCaster,
		Sources:       c.Sources,
		ArchiveLink:   c.ArchiveLink,
		Variant:       string(c.Variant),
	}
}

func convertCreaturesToMessages(creatures []*bestiary.Creature) []*Creature {
	out := make([]*Creature, 0, len(creatures))
	for _, c := range creatures {
		out = append(out, convertCreatureToMessage(c))
	}
	return out
}

func convertThresholds(t difficulty.Thresholds) map[string]int {
	out := make(map[string]int, len(t))
	for tier, budget := range t {
		out[tier.String()] = budget
	}
	return out
}

// parseFilters resolves dimension names. Empty value lists are dropped.
func parseFilters(raw map[string][]string) (creaturecache.Filters, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	vb := errors.NewValidationBuilder()
	out := make(creaturecache.Filters, len(raw))
	for name, values := range raw {
		d, err := bestiary.ParseDimension(name)
		if err != nil {
			vb.Fieldf("filters", "unknown dimension %q", name)
			continue
		}
		if len(values) > 0 {
			out[d] = append(out[d], values...)
		}
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}
	return out, nil
}
