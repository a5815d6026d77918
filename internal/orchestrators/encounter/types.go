package encounter

import (
	"github.com/KirkDiggler/rpg-encounters/internal/engine/difficulty"
	"github.com/KirkDiggler/rpg-encounters/internal/engine/xp"
	"github.com/KirkDiggler/rpg-encounters/internal/entities/bestiary"
	"github.com/KirkDiggler/rpg-encounters/internal/services/creaturecache"
)

// Reasons attached as the "reason" meta of an ungeneratable encounter
const (
	ReasonNoLevelCombination = "no_level_combination"
	ReasonNoFilterMatch      = "no_filter_match"
	ReasonNoCreatureForLevel = "no_creature_for_level"
)

// MaxPartySize bounds the party of a generated encounter. The IMPOSSIBLE
// budget grows with every member and the number of level combinations grows
// much faster: eight members already yield tens of thousands.
const MaxPartySize = 8

// GetEncounterInfoInput defines the request for rating a fight
type GetEncounterInfoInput struct {
	PartyLevels []int
	EnemyLevels []int
}

// GetEncounterInfoOutput defines the rating of a fight
type GetEncounterInfoOutput struct {
	XP         int
	Tier       difficulty.Tier
	Thresholds difficulty.Thresholds
}

// GenerateEncounterInput defines the request for a random encounter
type GenerateEncounterInput struct {
	PartyLevels []int
	// Tier is picked at random when nil
	Tier *difficulty.Tier
	// AdventureGroup replaces the budget search with a fixed template
	AdventureGroup xp.AdventureGroup
	Filters        creaturecache.Filters
	// MinCreatures and MaxCreatures bound the creature count; zero is unbounded
	MinCreatures int
	MaxCreatures int
	AllowWeak    bool
	AllowElite   bool
}

// GenerateEncounterOutput defines a generated encounter
type GenerateEncounterOutput struct {
	EncounterID string
	Creatures   []*bestiary.Creature
	Count       int
	XP          int
	Tier        difficulty.Tier
	Thresholds  difficulty.Thresholds
}
